package card

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	"github.com/thenoetrevino/tablero/internal/filter"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ListCmd returns the card list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List and filter the cards of a board",
		Long: `List a board's cards in board order, narrowed by any combination of
filters. Values within one filter are ORed; different filters are ANDed.

Examples:
  tablero card list --board=<board-id>
  tablero card list --search=login --priority=high --priority=medium
  tablero card list --due=overdue --hide-completed --assignee=ana
  tablero card list --label=<label-id> --list=<list-id> --quiet
`,
		RunE: handler.Command(handler.HandlerFunc(listCards), parseListFlags),
	}

	cmd.Flags().String("board", "", "Board ID (uses TABLERO_BOARD env var if not specified)")
	cmd.Flags().String("search", "", "Match title or description (case-insensitive)")
	cmd.Flags().StringSlice("label", nil, "Label IDs")
	cmd.Flags().StringSlice("list", nil, "List IDs")
	cmd.Flags().StringSlice("assignee", nil, "Assignees")
	cmd.Flags().StringSlice("priority", nil, "Priorities: low, medium, high, none")
	cmd.Flags().String("due", string(filter.DueAll), "Due date filter: all, overdue, today, week, has-date, no-date")
	cmd.Flags().Bool("hide-completed", false, "Leave completed cards out")
	cli.AddOutputFlags(cmd)

	return cmd
}

func listCards(ctx context.Context, args *handler.Arguments) (any, error) {
	boardID, err := cli.GetBoardID(args.GetCmd())
	if err != nil {
		return nil, err
	}
	f, err := filtersFromArgs(args)
	if err != nil {
		return nil, err
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	svc := cliInstance.App.BoardService
	if err := svc.LoadBoard(ctx, boardID); err != nil {
		return nil, err
	}
	return cardsResult(svc.FilteredCards(boardID, f, cliInstance.App.Clock.Now())), nil
}

func filtersFromArgs(args *handler.Arguments) (filter.Filters, error) {
	f := filter.Default()
	f.SearchQuery = args.GetString("search", "")
	f.SelectedLabels = args.GetStringSlice("label", nil)
	f.SelectedLists = args.GetStringSlice("list", nil)
	f.SelectedAssignees = args.GetStringSlice("assignee", nil)
	f.ShowCompleted = !args.GetBool("hide-completed")

	for _, raw := range args.GetStringSlice("priority", nil) {
		p, err := models.ParsePriority(raw)
		if err != nil {
			return f, err
		}
		f.SelectedPriorities = append(f.SelectedPriorities, p)
	}

	due, err := filter.ParseDueDateFilter(args.GetString("due", string(filter.DueAll)))
	if err != nil {
		return f, err
	}
	f.DueDate = due
	return f, nil
}

func parseListFlags(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseBoardID()
	return err
}

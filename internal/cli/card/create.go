package card

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
)

// CreateCmd returns the card create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a card to the end of a list",
		Long: `Add a card after the last card of a list.

Due dates accept YYYY-MM-DD, RFC 3339, or a day offset such as +3.

Examples:
  tablero card create --list=<list-id> --title="Fix login" --priority=high --due=+2
  tablero card create --list=<list-id> --title="Pair on API" --assignee=ana --assignee=ben
  CARD_ID=$(tablero card create --list=<list-id> --title="Spike" --quiet)
`,
		RunE: handler.Command(handler.HandlerFunc(createCard), parseCreateFlags),
	}

	cmd.Flags().String("list", "", "List ID (required)")
	_ = cmd.MarkFlagRequired("list")
	cmd.Flags().String("title", "", "Card title (required)")
	_ = cmd.MarkFlagRequired("title")
	cmd.Flags().String("description", "", "Card description")
	cmd.Flags().String("priority", "", "Priority: low, medium, high or none")
	cmd.Flags().String("due", "", "Due date")
	cmd.Flags().StringSlice("assignee", nil, "Assignee (repeatable)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func createCard(ctx context.Context, args *handler.Arguments) (any, error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	p := handler.NewFlagParser(args.GetCmd())
	priority, err := p.ParsePriority("priority")
	if err != nil {
		return nil, err
	}
	due, err := p.ParseDueDate("due", cliInstance.App.Clock.Now())
	if err != nil {
		return nil, err
	}

	c, err := cliInstance.App.BoardService.CreateCard(ctx, boardservice.CreateCardRequest{
		ListID:      args.GetString("list", ""),
		Title:       args.GetString("title", ""),
		Description: args.GetString("description", ""),
		Priority:    priority,
		DueDate:     due,
		Assignees:   args.GetStringSlice("assignee", nil),
	})
	if err != nil {
		return nil, fmt.Errorf("card creation error: %w", err)
	}
	return &cardResult{Card: c, verb: "created"}, nil
}

func parseCreateFlags(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseString("title")
	return err
}

package list

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// CreateCmd returns the list create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Append a list to a board",
		Long: `Append a new list after the last list of a board.

Examples:
  tablero list create --board=<board-id> --title="In Review"
  LIST_ID=$(tablero list create --title="Ideas" --quiet)
`,
		RunE: handler.Command(handler.HandlerFunc(createList), parseCreateFlags),
	}

	cmd.Flags().String("board", "", "Board ID (uses TABLERO_BOARD env var if not specified)")
	cmd.Flags().String("title", "", "List title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cli.AddOutputFlags(cmd)

	return cmd
}

func createList(ctx context.Context, args *handler.Arguments) (any, error) {
	boardID, err := cli.GetBoardID(args.GetCmd())
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
	l, err := svc.CreateList(ctx, boardID, args.GetString("title", ""))
	if err != nil {
		return nil, fmt.Errorf("list creation error: %w", err)
	}
	return &listResult{List: l, verb: "created"}, nil
}

func parseCreateFlags(cmd *cobra.Command) error {
	p := handler.NewFlagParser(cmd)
	if _, err := p.ParseBoardID(); err != nil {
		return err
	}
	_, err := p.ParseString("title")
	return err
}

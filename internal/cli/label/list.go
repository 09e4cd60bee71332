package label

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// ListCmd returns the label list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List labels on a board",
		Long: `List all labels on a board.

Examples:
  # Human-readable list
  tablero label list --board=<board-id>

  # Quiet mode (one ID per line)
  tablero label list --quiet
`,
		RunE: handler.Command(handler.HandlerFunc(listLabels), func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseBoardID()
			return err
		}),
	}

	cmd.Flags().String("board", "", "Board ID (uses TABLERO_BOARD env var if not specified)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func listLabels(ctx context.Context, args *handler.Arguments) (any, error) {
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
	return labelsResult(svc.Labels(boardID)), nil
}

package list

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// MoveCmd returns the list move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Reorder a list within its board",
		Long: `Reorder a list. Give either the exact position or the drop index.

--index places the list at that slot of the board's lists once it has been
taken out, the way a drag and drop would. --position sets the raw sort key.

Examples:
  # Make a list the first one
  tablero list move --list=<list-id> --index=0

  # Put a list between positions 1 and 2
  tablero list move --list=<list-id> --position=1.5
`,
		RunE: handler.Command(handler.HandlerFunc(moveList), parseMoveFlags),
	}

	addListFlag(cmd)
	cmd.Flags().Float64("position", 0, "New position (sort key)")
	cmd.Flags().Int("index", 0, "Zero-based drop index")
	cli.AddOutputFlags(cmd)

	return cmd
}

func moveList(ctx context.Context, args *handler.Arguments) (any, error) {
	listID := args.GetString("list", "")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	svc := cliInstance.App.BoardService
	if _, err := svc.LoadBoardForList(ctx, listID); err != nil {
		return nil, err
	}

	if args.Changed("index") {
		err = svc.DropList(ctx, listID, args.GetInt("index", 0))
	} else {
		err = svc.MoveList(ctx, listID, args.GetFloat("position", 0))
	}
	if err != nil {
		return nil, fmt.Errorf("list move error: %w", err)
	}
	return result(ctx, svc, listID, "moved")
}

func parseMoveFlags(cmd *cobra.Command) error {
	pos := cmd.Flags().Changed("position")
	idx := cmd.Flags().Changed("index")
	if pos == idx {
		return errors.New("give exactly one of --position or --index")
	}
	if idx {
		if i, _ := cmd.Flags().GetInt("index"); i < 0 {
			return errors.New("--index must not be negative")
		}
	}
	return nil
}

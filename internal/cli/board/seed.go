package board

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// DemoBoardTitle names the board seed creates when no board is given
const DemoBoardTitle = "Demo"

// SeedCmd returns the top-level seed command
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill a board with demo data",
		Long: `Fill a board with example lists, labels and cards. Without --board
(or ` + cli.EnvBoard + `) a new "` + DemoBoardTitle + `" board is created. Seeding
twice reuses the lists and labels already there.

Examples:
  tablero seed
  tablero seed --board=<board-id> --json
`,
		RunE: handler.Command(handler.HandlerFunc(seedBoard), nil),
	}

	cmd.Flags().String("board", "", "Board ID to seed (creates a demo board when unset)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func seedBoard(ctx context.Context, args *handler.Arguments) (any, error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	svc := cliInstance.App.BoardService
	boardID, err := cli.GetBoardID(args.GetCmd())
	if err != nil {
		b, err := svc.CreateBoard(ctx, DemoBoardTitle)
		if err != nil {
			return nil, fmt.Errorf("board creation error: %w", err)
		}
		boardID = b.ID
	}

	if err := svc.Seed(ctx, boardID); err != nil {
		return nil, fmt.Errorf("failed to seed board: %w", err)
	}
	return buildView(svc, boardID)
}

package board

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// DeleteCmd returns the board delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a board",
		Long:  "Delete a board with all of its lists, cards and labels (requires confirmation unless --force, --json or --quiet).",
		RunE:  handler.Command(handler.HandlerFunc(deleteBoard), parseBoardFlag),
	}

	cmd.Flags().String("board", "", "Board ID (uses TABLERO_BOARD env var if not specified)")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func deleteBoard(ctx context.Context, args *handler.Arguments) (any, error) {
	cmd := args.GetCmd()
	boardID, err := cli.GetBoardID(cmd)
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
	b, _ := svc.Board(boardID)

	if cli.NeedsConfirmation(cmd) && !cli.Confirm(cmd, fmt.Sprintf("Delete board '%s' and everything on it?", b.Title)) {
		return &cli.DeleteResult{ID: boardID, Kind: "Board"}, nil
	}

	if err := svc.DeleteBoard(ctx, boardID); err != nil {
		return nil, fmt.Errorf("board deletion error: %w", err)
	}
	return &cli.DeleteResult{ID: boardID, Kind: "Board", Deleted: true}, nil
}

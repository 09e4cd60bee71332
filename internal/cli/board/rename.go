package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	"github.com/thenoetrevino/tablero/internal/models"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
)

// RenameCmd returns the board rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Change a board's title",
		RunE:  handler.Command(handler.HandlerFunc(renameBoard), parseBoardFlag),
	}

	cmd.Flags().String("board", "", "Board ID (uses TABLERO_BOARD env var if not specified)")
	cmd.Flags().String("title", "", "New title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cli.AddOutputFlags(cmd)

	return cmd
}

// ViewCmd returns the board view subcommand
func ViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Switch a board between card and list view",
		Long: `Switch how a board is displayed.

Examples:
  tablero board view --board=<board-id> --mode=list
  tablero board view --board=<board-id> --mode=cards
`,
		RunE: handler.Command(handler.HandlerFunc(setView), parseBoardFlag),
	}

	cmd.Flags().String("board", "", "Board ID (uses TABLERO_BOARD env var if not specified)")
	cmd.Flags().String("mode", "", "View mode: cards or list (required)")
	if err := cmd.MarkFlagRequired("mode"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cli.AddOutputFlags(cmd)

	return cmd
}

func renameBoard(ctx context.Context, args *handler.Arguments) (any, error) {
	title := args.GetString("title", "")
	return updateBoard(ctx, args, boardservice.BoardUpdate{Title: &title}, "renamed")
}

func setView(ctx context.Context, args *handler.Arguments) (any, error) {
	mode, err := models.ParseViewMode(args.GetString("mode", ""))
	if err != nil {
		return nil, err
	}
	return updateBoard(ctx, args, boardservice.BoardUpdate{ViewMode: &mode}, "switched to "+string(mode)+" view")
}

func updateBoard(ctx context.Context, args *handler.Arguments, update boardservice.BoardUpdate, verb string) (any, error) {
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
	if err := svc.UpdateBoard(ctx, boardID, update); err != nil {
		return nil, fmt.Errorf("board update error: %w", err)
	}

	b, _ := svc.Board(boardID)
	return &boardResult{Board: b, verb: verb}, nil
}

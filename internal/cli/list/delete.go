package list

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// DeleteCmd returns the list delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a list and its cards",
		Long:  "Delete a list together with every card on it (requires confirmation unless --force, --json or --quiet).",
		RunE:  handler.SimpleCommand(handler.HandlerFunc(deleteList)),
	}

	addListFlag(cmd)
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func deleteList(ctx context.Context, args *handler.Arguments) (any, error) {
	cmd := args.GetCmd()
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

	if cli.NeedsConfirmation(cmd) {
		n := len(svc.Cards(listID))
		if !cli.Confirm(cmd, fmt.Sprintf("Delete list %s and its %d card(s)?", listID, n)) {
			return &cli.DeleteResult{ID: listID, Kind: "List"}, nil
		}
	}

	if err := svc.DeleteList(ctx, listID); err != nil {
		return nil, fmt.Errorf("list deletion error: %w", err)
	}
	return &cli.DeleteResult{ID: listID, Kind: "List", Deleted: true}, nil
}

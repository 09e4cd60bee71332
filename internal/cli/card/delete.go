package card

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// DeleteCmd returns the card delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a card",
		Long:  "Delete a card by ID (requires confirmation unless --force, --json or --quiet).",
		RunE:  handler.SimpleCommand(handler.HandlerFunc(deleteCard)),
	}

	addCardFlag(cmd)
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func deleteCard(ctx context.Context, args *handler.Arguments) (any, error) {
	cmd := args.GetCmd()
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	svc := cliInstance.App.BoardService
	cardID := args.GetString("card", "")
	c, err := loadCard(ctx, svc, cardID)
	if err != nil {
		return nil, err
	}

	if cli.NeedsConfirmation(cmd) && !cli.Confirm(cmd, fmt.Sprintf("Delete card '%s'?", c.Title)) {
		return &cli.DeleteResult{ID: cardID, Kind: "Card"}, nil
	}
	if err := svc.DeleteCard(ctx, cardID); err != nil {
		return nil, fmt.Errorf("card deletion error: %w", err)
	}
	return &cli.DeleteResult{ID: cardID, Kind: "Card", Deleted: true}, nil
}

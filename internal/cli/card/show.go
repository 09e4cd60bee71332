package card

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// ShowCmd returns the card show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show every field of a card",
		RunE:  handler.SimpleCommand(handler.HandlerFunc(showCard)),
	}

	addCardFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func showCard(ctx context.Context, args *handler.Arguments) (any, error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	svc := cliInstance.App.BoardService
	cardID := args.GetString("card", "")
	boardID, err := svc.LoadBoardForCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	c, err := loadCard(ctx, svc, cardID)
	if err != nil {
		return nil, err
	}
	return &cardDetail{Card: c, List: listTitle(svc, boardID, c.ListID)}, nil
}

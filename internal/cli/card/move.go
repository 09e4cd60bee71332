package card

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
)

// MoveCmd returns the card move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a card within or across lists",
		Long: `Move a card to another list, or reorder it within its own list.

With --index the card lands at that slot among the destination's other
cards, halfway between its new neighbours. With --position the raw sort key
is set. With neither the card goes to the end of the destination list.

Examples:
  # Move a card to the top of another list
  tablero card move --card=<card-id> --to=<list-id> --index=0

  # Send a card to the bottom of its own list
  tablero card move --card=<card-id>
`,
		RunE: handler.Command(handler.HandlerFunc(moveCard), parseMoveFlags),
	}

	addCardFlag(cmd)
	cmd.Flags().String("to", "", "Destination list ID (defaults to the card's list)")
	cmd.Flags().Float64("position", 0, "New position (sort key)")
	cmd.Flags().Int("index", 0, "Zero-based drop index")
	cli.AddOutputFlags(cmd)

	return cmd
}

func moveCard(ctx context.Context, args *handler.Arguments) (any, error) {
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

	toListID := args.GetString("to", c.ListID)
	if _, err := svc.LoadBoardForList(ctx, toListID); err != nil {
		return nil, err
	}

	switch {
	case args.Changed("index"):
		err = svc.DropCard(ctx, cardID, toListID, args.GetInt("index", 0))
	default:
		// a zero position appends to the destination list
		err = svc.MoveCard(ctx, cardID, toListID, args.GetFloat("position", 0))
	}
	if err != nil {
		return nil, fmt.Errorf("card move error: %w", err)
	}

	moved, ok := svc.Card(cardID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", boardservice.ErrCardNotFound, cardID)
	}
	return &cardResult{Card: moved, verb: "moved"}, nil
}

func parseMoveFlags(cmd *cobra.Command) error {
	if cmd.Flags().Changed("position") && cmd.Flags().Changed("index") {
		return errors.New("--position and --index cannot be combined")
	}
	if i, _ := cmd.Flags().GetInt("index"); i < 0 {
		return errors.New("--index must not be negative")
	}
	return nil
}

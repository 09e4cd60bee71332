package label

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	"github.com/thenoetrevino/tablero/internal/models"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
)

// AttachCmd returns the label attach subcommand
func AttachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Attach a label to a card",
		Long: `Attach a label to a card, keeping the card's other labels.

Examples:
  tablero label attach --card=<card-id> --label=<label-id>
`,
		RunE: handler.SimpleCommand(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			return relabel(ctx, args, true)
		})),
	}

	addRelabelFlags(cmd)
	return cmd
}

// DetachCmd returns the label detach subcommand
func DetachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detach",
		Short: "Remove a label from a card",
		RunE: handler.SimpleCommand(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			return relabel(ctx, args, false)
		})),
	}

	addRelabelFlags(cmd)
	return cmd
}

func addRelabelFlags(cmd *cobra.Command) {
	cmd.Flags().String("card", "", "Card ID (required)")
	_ = cmd.MarkFlagRequired("card")
	addLabelFlag(cmd)
	cli.AddOutputFlags(cmd)
}

// relabel rewrites the card's label set with labelID added or removed
func relabel(ctx context.Context, args *handler.Arguments, attach bool) (any, error) {
	cardID := args.GetString("card", "")
	labelID := args.GetString("label", "")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	svc := cliInstance.App.BoardService
	if _, err := svc.LoadBoardForCard(ctx, cardID); err != nil {
		return nil, err
	}
	c, ok := svc.Card(cardID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", boardservice.ErrCardNotFound, cardID)
	}

	ids := make([]string, 0, len(c.Labels)+1)
	for _, l := range c.Labels {
		if l.ID != labelID {
			ids = append(ids, l.ID)
		}
	}
	verb := "detached"
	if attach {
		ids = append(ids, labelID)
		verb = "attached"
	} else if !slices.ContainsFunc(c.Labels, func(l models.Label) bool { return l.ID == labelID }) {
		return nil, fmt.Errorf("%w: card %s does not carry label %s", boardservice.ErrLabelNotFound, cardID, labelID)
	}

	if err := svc.UpdateCard(ctx, cardID, boardservice.CardUpdate{LabelIDs: ids}); err != nil {
		return nil, fmt.Errorf("failed to update card labels: %w", err)
	}
	return &cli.UpdateResult{ID: cardID, Kind: "Card", Message: "label " + labelID + " " + verb}, nil
}

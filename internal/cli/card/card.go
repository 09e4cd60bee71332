// Package card holds all cli commands related to cards
// e.g., tablero card ...
package card

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli/styles"
	"github.com/thenoetrevino/tablero/internal/models"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
)

// CardCmd returns the card parent command
func CardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(DropCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(ListCmd())

	return cmd
}

// cardResult wraps a card with the message printed in human mode
type cardResult struct {
	*models.Card
	verb string
}

// Human implements cli.Humanizer
func (r *cardResult) Human() string {
	return fmt.Sprintf("✓ Card '%s' %s (ID: %s)", r.Title, r.verb, r.ID)
}

// cardDetail is the output of card show
type cardDetail struct {
	*models.Card
	List string `json:"list"`
}

// Human implements cli.Humanizer
func (d *cardDetail) Human() string {
	return styles.RenderCardDetail(d.Card, d.List)
}

// cardsResult is the output of card list
type cardsResult []models.Card

// IDs implements quiet mode output
func (r cardsResult) IDs() []string {
	ids := make([]string, len(r))
	for i := range r {
		ids[i] = r[i].ID
	}
	return ids
}

// Human implements cli.Humanizer
func (r cardsResult) Human() string {
	if len(r) == 0 {
		return "No matching cards"
	}
	lines := make([]string, len(r))
	for i := range r {
		lines[i] = styles.RenderCardLine(&r[i])
	}
	return strings.Join(lines, "\n")
}

func addCardFlag(cmd *cobra.Command) {
	cmd.Flags().String("card", "", "Card ID (required)")
	_ = cmd.MarkFlagRequired("card")
}

// loadCard loads the card's board and returns a copy of the card
func loadCard(ctx context.Context, svc boardservice.Service, cardID string) (*models.Card, error) {
	if _, err := svc.LoadBoardForCard(ctx, cardID); err != nil {
		return nil, err
	}
	c, ok := svc.Card(cardID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", boardservice.ErrCardNotFound, cardID)
	}
	return c, nil
}

// listTitle finds the title of a loaded list
func listTitle(svc boardservice.Service, boardID, listID string) string {
	for _, l := range svc.Lists(boardID) {
		if l.ID == listID {
			return l.Title
		}
	}
	return listID
}

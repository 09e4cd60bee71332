package analytics

import (
	"time"

	"github.com/thenoetrevino/tablero/internal/models"
)

// ============================================================================
// TEST FIXTURES
// ============================================================================

// Wednesday afternoon
var now = time.Date(2025, 6, 11, 15, 30, 0, 0, time.UTC)

func ago(days float64) time.Time {
	return now.Add(-time.Duration(days * float64(24*time.Hour)))
}

func ptr(t time.Time) *time.Time { return &t }

// fixtureSnapshot has two boards: b1 with lists l1 and l2, b2 with l3.
func fixtureSnapshot(cards ...models.Card) *models.Snapshot {
	snap := &models.Snapshot{
		Boards: []models.Board{
			{ID: "b1", Title: "Product"},
			{ID: "b2", Title: "Ops"},
		},
		Lists: []models.List{
			{ID: "l2", BoardID: "b1", Title: "Doing", Position: 1},
			{ID: "l1", BoardID: "b1", Title: "Todo", Position: 0},
			{ID: "l3", BoardID: "b2", Title: "Backlog", Position: 0},
		},
		Cards: cards,
	}
	snap.Normalize()
	return snap
}

// open returns an open card created and last touched at the given age
func open(id, listID string, ageDays float64, assignees ...string) models.Card {
	return models.Card{
		ID:        id,
		ListID:    listID,
		Title:     "Card " + id,
		Assignees: assignees,
		CreatedAt: ago(ageDays),
		UpdatedAt: ago(ageDays),
	}
}

// done returns a card created createdDays ago and completed doneDays ago
func done(id, listID string, createdDays, doneDays float64, assignees ...string) models.Card {
	c := open(id, listID, createdDays, assignees...)
	c.Completed = true
	c.UpdatedAt = ago(doneDays)
	return c
}

func many(n int, mk func(i int) models.Card) []models.Card {
	out := make([]models.Card, 0, n)
	for i := range n {
		out = append(out, mk(i))
	}
	return out
}

func cardIDs[T interface{ refID() string }](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.refID())
	}
	return out
}

func (r StaleCard) refID() string  { return r.ID }
func (r AtRiskCard) refID() string { return r.ID }

func modelIDs(cards []models.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

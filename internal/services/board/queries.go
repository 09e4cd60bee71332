package board

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/thenoetrevino/tablero/internal/filter"
	"github.com/thenoetrevino/tablero/internal/models"
)

// AllBoards lists every stored board, loaded or not
func (s *service) AllBoards(ctx context.Context) ([]*models.Board, error) {
	return s.repo.GetAllBoards(ctx)
}

// Board returns a copy of a loaded board
func (s *service) Board(boardID string) (*models.Board, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.boards[boardID]
	if !ok {
		return nil, false
	}
	out := *st.board
	return &out, true
}

// Lists returns copies of a loaded board's lists in position order
func (s *service) Lists(boardID string) []*models.List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.boards[boardID]
	if !ok {
		return []*models.List{}
	}
	out := make([]*models.List, 0, len(st.lists))
	for _, l := range st.lists {
		cp := *l
		out = append(out, &cp)
	}
	return out
}

// Cards returns copies of a loaded list's cards in position order
func (s *service) Cards(listID string) []*models.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, l := s.findList(listID)
	if l == nil {
		return []*models.Card{}
	}
	return cloneCards(st.cardsIn(listID, ""))
}

// BoardCards returns copies of every card on a loaded board, ordered by
// list position and then card position.
func (s *service) BoardCards(boardID string) []*models.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.boards[boardID]
	if !ok {
		return []*models.Card{}
	}
	return cloneCards(st.ordered())
}

// Card returns a copy of a loaded card
func (s *service) Card(cardID string) (*models.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, c := s.findCard(cardID)
	if c == nil {
		return nil, false
	}
	return c.Clone(), true
}

// Labels returns copies of a loaded board's labels
func (s *service) Labels(boardID string) []*models.Label {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.boards[boardID]
	if !ok {
		return []*models.Label{}
	}
	out := make([]*models.Label, 0, len(st.labels))
	for _, l := range st.labels {
		cp := *l
		out = append(out, &cp)
	}
	return out
}

// FilteredCards applies f to a loaded board's cards in board order
func (s *service) FilteredCards(boardID string, f filter.Filters, now time.Time) []models.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.boards[boardID]
	if !ok {
		return []models.Card{}
	}
	ordered := st.ordered()
	cards := make([]models.Card, 0, len(ordered))
	for _, c := range ordered {
		cards = append(cards, *c.Clone())
	}
	return filter.Apply(cards, f, now)
}

// Snapshot deep-copies every loaded board
func (s *service) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.boards))
	for id := range s.boards {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	snap := &models.Snapshot{}
	for _, id := range ids {
		st := s.boards[id]
		snap.Boards = append(snap.Boards, *st.board)
		for _, l := range st.lists {
			snap.Lists = append(snap.Lists, *l)
		}
		for _, c := range st.ordered() {
			snap.Cards = append(snap.Cards, *c.Clone())
		}
		for _, l := range st.labels {
			snap.Labels = append(snap.Labels, *l)
		}
	}
	snap.Normalize()
	return snap
}

// ordered returns the board's cards by list order, then card position.
// Cards whose list is gone sort last.
func (st *boardState) ordered() []*models.Card {
	rank := make(map[string]int, len(st.lists))
	for i, l := range st.lists {
		rank[l.ID] = i
	}
	listRank := func(c *models.Card) int {
		if r, ok := rank[c.ListID]; ok {
			return r
		}
		return len(st.lists)
	}
	out := slices.Clone(st.cards)
	slices.SortStableFunc(out, func(a, b *models.Card) int {
		if c := cmp.Compare(listRank(a), listRank(b)); c != 0 {
			return c
		}
		return cmp.Compare(a.Position, b.Position)
	})
	return out
}

func cloneCards(in []*models.Card) []*models.Card {
	out := make([]*models.Card, 0, len(in))
	for _, c := range in {
		out = append(out, c.Clone())
	}
	return out
}

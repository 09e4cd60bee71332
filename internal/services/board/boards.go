package board

import (
	"context"
	"errors"

	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/types"
)

// BoardUpdate holds the optional board fields to change
type BoardUpdate struct {
	Title    *string
	ViewMode *models.ViewMode
}

// CreateBoard stores a new board and loads it
func (s *service) CreateBoard(ctx context.Context, title string) (*models.Board, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	var chg changes
	defer s.publish(&chg)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	b := &models.Board{
		ID:        types.NewID(),
		Title:     title,
		ViewMode:  models.ViewModeCards,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.boards[b.ID] = &boardState{board: b}
	chg.add(events.EventBoardChanged, b.ID, b.ID, false)

	out := *b
	return &out, persisted("create board", b.ID, s.repo.AddBoard(ctx, &out))
}

// UpdateBoard renames a board or toggles its view mode
func (s *service) UpdateBoard(ctx context.Context, id string, update BoardUpdate) error {
	var title string
	if update.Title != nil {
		t, err := validateTitle(*update.Title)
		if err != nil {
			return err
		}
		title = t
	}
	if update.ViewMode != nil && !update.ViewMode.Valid() {
		return ErrInvalidViewMode
	}

	var chg changes
	defer s.publish(&chg)
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.boards[id]
	if !ok {
		return noop("update board", id)
	}
	if update.Title != nil {
		st.board.Title = title
	}
	if update.ViewMode != nil {
		st.board.ViewMode = *update.ViewMode
	}
	st.board.UpdatedAt = s.clock.Now()
	chg.add(events.EventBoardChanged, id, id, false)

	out := *st.board
	return persisted("update board", id, s.repo.UpdateBoard(ctx, &out))
}

// DeleteBoard removes a board and cascades to its cards, lists and labels.
// Each child is deleted with its own storage call, cards first.
func (s *service) DeleteBoard(ctx context.Context, id string) error {
	var chg changes
	defer s.publish(&chg)
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.boards[id]
	if !ok {
		return noop("delete board", id)
	}
	delete(s.boards, id)
	chg.add(events.EventBoardChanged, id, id, true)

	var errs []error
	for _, c := range st.cards {
		errs = append(errs, persisted("delete card", c.ID, s.repo.DeleteCard(ctx, c.ID)))
	}
	for _, l := range st.lists {
		errs = append(errs, persisted("delete list", l.ID, s.repo.DeleteList(ctx, l.ID)))
	}
	for _, l := range st.labels {
		errs = append(errs, persisted("delete label", l.ID, s.repo.DeleteLabel(ctx, l.ID)))
	}
	errs = append(errs, persisted("delete board", id, s.repo.DeleteBoard(ctx, id)))
	return errors.Join(errs...)
}

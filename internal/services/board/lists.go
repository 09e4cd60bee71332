package board

import (
	"context"
	"errors"
	"slices"

	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/position"
	"github.com/thenoetrevino/tablero/internal/types"
)

// CreateList appends a list to a board at max(position)+1, or 0 when the
// board has no lists. The board is loaded if it is not in memory yet.
func (s *service) CreateList(ctx context.Context, boardID, title string) (*models.List, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	var chg changes
	defer s.publish(&chg)
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.ensureLoaded(ctx, boardID)
	if err != nil {
		return nil, err
	}

	positions := make([]float64, 0, len(st.lists))
	for _, l := range st.lists {
		positions = append(positions, l.Position)
	}

	now := s.clock.Now()
	l := &models.List{
		ID:        types.NewID(),
		BoardID:   boardID,
		Title:     title,
		Position:  position.Next(positions),
		CreatedAt: now,
		UpdatedAt: now,
	}
	st.lists = append(st.lists, l)
	st.sortLists()
	chg.add(events.EventListChanged, boardID, l.ID, false)

	out := *l
	return &out, persisted("create list", l.ID, s.repo.AddList(ctx, &out))
}

// UpdateList renames a list
func (s *service) UpdateList(ctx context.Context, id, title string) error {
	title, err := validateTitle(title)
	if err != nil {
		return err
	}

	var chg changes
	defer s.publish(&chg)
	s.mu.Lock()
	defer s.mu.Unlock()

	st, l := s.findList(id)
	if l == nil {
		return noop("update list", id)
	}
	l.Title = title
	l.UpdatedAt = s.clock.Now()
	chg.add(events.EventListChanged, st.board.ID, id, false)

	out := *l
	return persisted("update list", id, s.repo.UpdateList(ctx, &out))
}

// MoveList gives a list a new position and shifts the lists between the
// old and the new position by one step toward the gap it left. Lists
// outside that range keep their positions.
func (s *service) MoveList(ctx context.Context, id string, newPosition float64) error {
	var chg changes
	defer s.publish(&chg)
	s.mu.Lock()
	defer s.mu.Unlock()

	st, moved := s.findList(id)
	if moved == nil {
		return noop("move list", id)
	}

	oldPosition := moved.Position
	var touched []*models.List
	for _, l := range st.lists {
		switch {
		case l == moved:
			l.Position = newPosition
		case oldPosition < newPosition && l.Position > oldPosition && l.Position <= newPosition:
			l.Position--
		case oldPosition > newPosition && l.Position < oldPosition && l.Position >= newPosition:
			l.Position++
		default:
			continue
		}
		touched = append(touched, l)
	}
	st.sortLists()
	chg.add(events.EventListChanged, st.board.ID, id, false)

	return s.persistLists(ctx, touched)
}

// DropList places a list at index among the board's other lists using the
// midpoint strategy, renumbering the board's lists when the gap is spent.
func (s *service) DropList(ctx context.Context, id string, index int) error {
	var chg changes
	defer s.publish(&chg)
	s.mu.Lock()
	defer s.mu.Unlock()

	st, moved := s.findList(id)
	if moved == nil {
		return noop("drop list", id)
	}

	others := slices.DeleteFunc(slices.Clone(st.lists), func(l *models.List) bool { return l == moved })
	positions := make([]float64, 0, len(others))
	for _, l := range others {
		positions = append(positions, l.Position)
	}

	touched := []*models.List{moved}
	pos, ok := position.At(positions, index)
	if ok {
		moved.Position = pos
	} else {
		index = max(0, min(index, len(others)))
		ordered := slices.Insert(others, index, moved)
		for i, p := range position.Renumber(len(ordered)) {
			if l := ordered[i]; l != moved && l.Position != p {
				touched = append(touched, l)
			}
			ordered[i].Position = p
		}
	}
	st.sortLists()
	chg.add(events.EventListChanged, st.board.ID, id, false)

	return s.persistLists(ctx, touched)
}

func (s *service) persistLists(ctx context.Context, lists []*models.List) error {
	var errs []error
	for _, l := range lists {
		out := *l
		errs = append(errs, persisted("update list", l.ID, s.repo.UpdateList(ctx, &out)))
	}
	return errors.Join(errs...)
}

// DeleteList removes a list and every card in it. Sibling positions are
// left as they are.
func (s *service) DeleteList(ctx context.Context, id string) error {
	var chg changes
	defer s.publish(&chg)
	s.mu.Lock()
	defer s.mu.Unlock()

	st, l := s.findList(id)
	if l == nil {
		return noop("delete list", id)
	}

	doomed := st.cardsIn(id, "")
	st.cards = slices.DeleteFunc(st.cards, func(c *models.Card) bool { return c.ListID == id })
	st.lists = slices.DeleteFunc(st.lists, func(x *models.List) bool { return x.ID == id })
	chg.add(events.EventListChanged, st.board.ID, id, true)

	var errs []error
	for _, c := range doomed {
		errs = append(errs, persisted("delete card", c.ID, s.repo.DeleteCard(ctx, c.ID)))
	}
	errs = append(errs, persisted("delete list", id, s.repo.DeleteList(ctx, id)))
	return errors.Join(errs...)
}

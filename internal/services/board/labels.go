package board

import (
	"context"
	"errors"
	"slices"

	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/types"
)

// LabelUpdate holds the optional label fields to change
type LabelUpdate struct {
	Name  *string
	Color *string
}

// CreateLabel adds a label to a board, loading the board if needed
func (s *service) CreateLabel(ctx context.Context, boardID, name, color string) (*models.Label, error) {
	name, err := validateLabelName(name)
	if err != nil {
		return nil, err
	}
	if err := validateColor(color); err != nil {
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

	l := &models.Label{ID: types.NewID(), BoardID: boardID, Name: name, Color: color}
	st.labels = append(st.labels, l)
	chg.add(events.EventLabelChanged, boardID, l.ID, false)

	out := *l
	return &out, persisted("create label", l.ID, s.repo.AddLabel(ctx, &out))
}

// UpdateLabel edits a label and rewrites the copy embedded in every card
// of the board that carries it.
func (s *service) UpdateLabel(ctx context.Context, id string, update LabelUpdate) error {
	var name string
	if update.Name != nil {
		n, err := validateLabelName(*update.Name)
		if err != nil {
			return err
		}
		name = n
	}
	if update.Color != nil {
		if err := validateColor(*update.Color); err != nil {
			return err
		}
	}

	var chg changes
	defer s.publish(&chg)
	s.mu.Lock()
	defer s.mu.Unlock()

	st, l := s.findLabel(id)
	if l == nil {
		return noop("update label", id)
	}
	if update.Name != nil {
		l.Name = name
	}
	if update.Color != nil {
		l.Color = *update.Color
	}
	chg.add(events.EventLabelChanged, st.board.ID, id, false)

	out := *l
	errs := []error{persisted("update label", id, s.repo.UpdateLabel(ctx, &out))}
	for _, c := range st.cards {
		i := slices.IndexFunc(c.Labels, func(x models.Label) bool { return x.ID == id })
		if i < 0 {
			continue
		}
		c.Labels[i] = out
		chg.add(events.EventCardChanged, st.board.ID, c.ID, false)
		errs = append(errs, persisted("sweep label", c.ID, s.repo.UpdateCard(ctx, c.Clone())))
	}
	return errors.Join(errs...)
}

// DeleteLabel removes a label from the board and from every card holding it
func (s *service) DeleteLabel(ctx context.Context, id string) error {
	var chg changes
	defer s.publish(&chg)
	s.mu.Lock()
	defer s.mu.Unlock()

	st, l := s.findLabel(id)
	if l == nil {
		return noop("delete label", id)
	}
	st.labels = slices.DeleteFunc(st.labels, func(x *models.Label) bool { return x.ID == id })
	chg.add(events.EventLabelChanged, st.board.ID, id, true)

	var errs []error
	for _, c := range st.cards {
		if !c.HasLabel(id) {
			continue
		}
		c.Labels = slices.DeleteFunc(c.Labels, func(x models.Label) bool { return x.ID == id })
		chg.add(events.EventCardChanged, st.board.ID, c.ID, false)
		errs = append(errs, persisted("sweep label", c.ID, s.repo.UpdateCard(ctx, c.Clone())))
	}
	errs = append(errs, persisted("delete label", id, s.repo.DeleteLabel(ctx, id)))
	return errors.Join(errs...)
}

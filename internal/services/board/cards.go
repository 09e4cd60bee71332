package board

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/position"
	"github.com/thenoetrevino/tablero/internal/types"
)

// CreateCardRequest encapsulates data for creating a card
type CreateCardRequest struct {
	ListID      string
	Title       string
	Description string
	Priority    models.Priority
	DueDate     *time.Time
	Assignees   []string
}

// CardUpdate holds the optional card fields to change. A nil slice keeps
// the previous value; an empty slice clears it.
type CardUpdate struct {
	Title         *string
	Description   *string
	Completed     *bool
	DueDate       *time.Time
	ClearDueDate  bool
	Priority      *models.Priority
	ClearPriority bool
	LabelIDs      []string
	Checklist     []models.ChecklistItem
	Assignees     []string
}

// CreateCard appends a card to a list at max(position)+1, or 0 when the
// list is empty. The owning board is loaded if needed.
func (s *service) CreateCard(ctx context.Context, req CreateCardRequest) (*models.Card, error) {
	title, err := validateTitle(req.Title)
	if err != nil {
		return nil, err
	}
	if !req.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	var chg changes
	defer s.publish(&chg)
	s.mu.Lock()
	defer s.mu.Unlock()

	st, l := s.findList(req.ListID)
	if l == nil {
		if st, l, err = s.loadForList(ctx, req.ListID); err != nil {
			return nil, err
		}
	}

	siblings := st.cardsIn(l.ID, "")
	positions := make([]float64, 0, len(siblings))
	for _, c := range siblings {
		positions = append(positions, c.Position)
	}

	now := s.clock.Now()
	c := &models.Card{
		ID:          types.NewID(),
		ListID:      l.ID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Position:    position.Next(positions),
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Assignees:   cleanAssignees(req.Assignees),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c.Normalize()
	st.cards = append(st.cards, c)
	chg.add(events.EventCardChanged, st.board.ID, c.ID, false)

	return c.Clone(), persisted("create card", c.ID, s.repo.AddCard(ctx, c.Clone()))
}

// loadForList loads the board owning listID from storage
func (s *service) loadForList(ctx context.Context, listID string) (*boardState, *models.List, error) {
	stored, err := s.repo.GetList(ctx, listID)
	if err != nil {
		return nil, nil, ErrListNotFound
	}
	st, err := s.loadLocked(ctx, stored.BoardID)
	if err != nil {
		return nil, nil, err
	}
	l := st.list(listID)
	if l == nil {
		return nil, nil, ErrListNotFound
	}
	return st, l, nil
}

// UpdateCard merges the set fields of update into the card. Label ids are
// resolved against the board's labels and attached as copies.
func (s *service) UpdateCard(ctx context.Context, id string, update CardUpdate) error {
	var title string
	if update.Title != nil {
		t, err := validateTitle(*update.Title)
		if err != nil {
			return err
		}
		title = t
	}
	if update.Priority != nil && !update.Priority.Valid() {
		return ErrInvalidPriority
	}

	var chg changes
	defer s.publish(&chg)
	s.mu.Lock()
	defer s.mu.Unlock()

	st, c := s.findCard(id)
	if c == nil {
		return noop("update card", id)
	}

	var labels []models.Label
	if update.LabelIDs != nil {
		labels = make([]models.Label, 0, len(update.LabelIDs))
		for _, labelID := range update.LabelIDs {
			l := st.label(labelID)
			if l == nil {
				return ErrLabelNotFound
			}
			if !slices.ContainsFunc(labels, func(x models.Label) bool { return x.ID == labelID }) {
				labels = append(labels, *l)
			}
		}
	}

	if update.Title != nil {
		c.Title = title
	}
	if update.Description != nil {
		c.Description = strings.TrimSpace(*update.Description)
	}
	if update.Completed != nil {
		c.Completed = *update.Completed
	}
	switch {
	case update.ClearDueDate:
		c.DueDate = nil
	case update.DueDate != nil:
		due := *update.DueDate
		c.DueDate = &due
	}
	switch {
	case update.ClearPriority:
		c.Priority = models.PriorityNone
	case update.Priority != nil:
		c.Priority = *update.Priority
	}
	if labels != nil {
		c.Labels = labels
	}
	if update.Checklist != nil {
		c.Checklist = cleanChecklist(update.Checklist)
	}
	if update.Assignees != nil {
		c.Assignees = cleanAssignees(update.Assignees)
	}
	c.Normalize()
	c.UpdatedAt = s.clock.Now()
	chg.add(events.EventCardChanged, st.board.ID, id, false)

	return persisted("update card", id, s.repo.UpdateCard(ctx, c.Clone()))
}

// MoveCard puts a card into toListID at position. A zero position appends
// after the last card of the destination list.
func (s *service) MoveCard(ctx context.Context, id, toListID string, pos float64) error {
	var chg changes
	defer s.publish(&chg)
	s.mu.Lock()
	defer s.mu.Unlock()

	src, c := s.findCard(id)
	dst, l := s.findList(toListID)
	if c == nil || l == nil {
		return noop("move card", id)
	}

	if pos == 0 {
		siblings := dst.cardsIn(toListID, id)
		if len(siblings) > 0 {
			pos = position.Tail(siblings[len(siblings)-1].Position)
		}
	}
	return s.placeCard(ctx, &chg, src, dst, c, toListID, pos, nil)
}

// DropCard puts a card at index among the destination list's other cards.
// The position is the midpoint of its new neighbours; when that gap is
// spent the destination list is renumbered 0..n-1 first.
func (s *service) DropCard(ctx context.Context, id, toListID string, index int) error {
	var chg changes
	defer s.publish(&chg)
	s.mu.Lock()
	defer s.mu.Unlock()

	src, c := s.findCard(id)
	dst, l := s.findList(toListID)
	if c == nil || l == nil {
		return noop("drop card", id)
	}

	siblings := dst.cardsIn(toListID, id)
	positions := make([]float64, 0, len(siblings))
	for _, sib := range siblings {
		positions = append(positions, sib.Position)
	}

	pos, ok := position.At(positions, index)
	var renumbered []*models.Card
	if !ok {
		index = max(0, min(index, len(siblings)))
		ordered := slices.Insert(slices.Clone(siblings), index, c)
		for i, p := range position.Renumber(len(ordered)) {
			if sib := ordered[i]; sib != c && sib.Position != p {
				sib.Position = p
				renumbered = append(renumbered, sib)
			}
		}
		pos = float64(index)
	}
	return s.placeCard(ctx, &chg, src, dst, c, toListID, pos, renumbered)
}

// placeCard applies a move in memory and persists the card plus any
// siblings whose positions were rewritten.
func (s *service) placeCard(ctx context.Context, chg *changes, src, dst *boardState, c *models.Card, toListID string, pos float64, renumbered []*models.Card) error {
	c.ListID = toListID
	c.Position = pos
	c.UpdatedAt = s.clock.Now()
	if src != dst {
		src.removeCard(c.ID)
		dst.cards = append(dst.cards, c)
		chg.add(events.EventCardChanged, src.board.ID, c.ID, true)
	}
	chg.add(events.EventCardChanged, dst.board.ID, c.ID, false)

	var errs []error
	for _, sib := range renumbered {
		errs = append(errs, persisted("renumber card", sib.ID, s.repo.UpdateCard(ctx, sib.Clone())))
	}
	errs = append(errs, persisted("move card", c.ID, s.repo.UpdateCard(ctx, c.Clone())))
	return errors.Join(errs...)
}

// DeleteCard removes a card. Sibling positions are left as they are.
func (s *service) DeleteCard(ctx context.Context, id string) error {
	var chg changes
	defer s.publish(&chg)
	s.mu.Lock()
	defer s.mu.Unlock()

	st, c := s.findCard(id)
	if c == nil {
		return noop("delete card", id)
	}
	st.removeCard(id)
	chg.add(events.EventCardChanged, st.board.ID, id, true)

	return persisted("delete card", id, s.repo.DeleteCard(ctx, id))
}

// cleanAssignees trims names and drops blanks and duplicates
func cleanAssignees(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		a = strings.TrimSpace(a)
		if a != "" && !slices.Contains(out, a) {
			out = append(out, a)
		}
	}
	return out
}

// cleanChecklist gives new items an id and drops items without text
func cleanChecklist(in []models.ChecklistItem) []models.ChecklistItem {
	out := make([]models.ChecklistItem, 0, len(in))
	for _, item := range in {
		item.Text = strings.TrimSpace(item.Text)
		if item.Text == "" {
			continue
		}
		if item.ID == "" {
			item.ID = types.NewID()
		}
		out = append(out, item)
	}
	return out
}

// Package board is the ordering engine: it keeps the lists, cards and labels
// of the loaded boards in memory, applies every mutation there first, and
// then writes the change through to the storage collaborator.
package board

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/thenoetrevino/tablero/internal/clock"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/filter"
	"github.com/thenoetrevino/tablero/internal/models"
)

// Hex color regex pattern
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// publishRetries bounds PublishWithRetry attempts per change
const publishRetries = 3

// Service defines the ordering engine operations
type Service interface {
	// Board context
	LoadBoard(ctx context.Context, boardID string) error
	LoadBoardForList(ctx context.Context, listID string) (string, error)
	LoadBoardForCard(ctx context.Context, cardID string) (string, error)
	LoadBoardForLabel(ctx context.Context, labelID string) (string, error)
	UnloadBoard(boardID string)
	LoadedBoards() []string

	// Read operations
	AllBoards(ctx context.Context) ([]*models.Board, error)
	Board(boardID string) (*models.Board, bool)
	Lists(boardID string) []*models.List
	Cards(listID string) []*models.Card
	BoardCards(boardID string) []*models.Card
	Card(cardID string) (*models.Card, bool)
	Labels(boardID string) []*models.Label
	FilteredCards(boardID string, f filter.Filters, now time.Time) []models.Card
	Snapshot() *models.Snapshot

	// Board writes
	CreateBoard(ctx context.Context, title string) (*models.Board, error)
	UpdateBoard(ctx context.Context, id string, update BoardUpdate) error
	DeleteBoard(ctx context.Context, id string) error

	// List writes
	CreateList(ctx context.Context, boardID, title string) (*models.List, error)
	UpdateList(ctx context.Context, id, title string) error
	MoveList(ctx context.Context, id string, newPosition float64) error
	DropList(ctx context.Context, id string, index int) error
	DeleteList(ctx context.Context, id string) error

	// Card writes
	CreateCard(ctx context.Context, req CreateCardRequest) (*models.Card, error)
	UpdateCard(ctx context.Context, id string, update CardUpdate) error
	MoveCard(ctx context.Context, id, toListID string, position float64) error
	DropCard(ctx context.Context, id, toListID string, index int) error
	DeleteCard(ctx context.Context, id string) error

	// Label writes
	CreateLabel(ctx context.Context, boardID, name, color string) (*models.Label, error)
	UpdateLabel(ctx context.Context, id string, update LabelUpdate) error
	DeleteLabel(ctx context.Context, id string) error

	// Demo data
	Seed(ctx context.Context, boardID string) error
}

// boardState is the in-memory context of one loaded board
type boardState struct {
	board  *models.Board
	lists  []*models.List // sorted by position, stable
	cards  []*models.Card
	labels []*models.Label
}

// service implements Service on top of a DataStore
type service struct {
	mu          sync.RWMutex
	repo        database.DataStore
	eventClient events.EventPublisher
	clock       clock.Clock
	boards      map[string]*boardState
}

// NewService creates a new ordering engine. eventClient may be nil.
func NewService(repo database.DataStore, eventClient events.EventPublisher, clk clock.Clock) Service {
	if clk == nil {
		clk = clock.Real()
	}
	return &service{
		repo:        repo,
		eventClient: eventClient,
		clock:       clk,
		boards:      make(map[string]*boardState),
	}
}

// ============================================================================
// Board context
// ============================================================================

// LoadBoard reads a board with its lists, cards and labels into memory,
// replacing any previously loaded copy.
func (s *service) LoadBoard(ctx context.Context, boardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.loadLocked(ctx, boardID)
	return err
}

func (s *service) loadLocked(ctx context.Context, boardID string) (*boardState, error) {
	b, err := s.repo.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	lists, err := s.repo.GetListsByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lists: %w", err)
	}
	cards, err := s.repo.GetCardsByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	labels, err := s.repo.GetLabelsByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}

	for _, c := range cards {
		c.Normalize()
	}
	st := &boardState{board: b, lists: lists, cards: cards, labels: labels}
	st.sortLists()
	s.boards[boardID] = st

	slog.Debug("board loaded", "board_id", boardID, "lists", len(lists), "cards", len(cards))
	return st, nil
}

// ensureLoaded returns the board's state, loading it when needed
func (s *service) ensureLoaded(ctx context.Context, boardID string) (*boardState, error) {
	if st, ok := s.boards[boardID]; ok {
		return st, nil
	}
	return s.loadLocked(ctx, boardID)
}

// LoadBoardForList loads the board owning a list and returns its id
func (s *service) LoadBoardForList(ctx context.Context, listID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, _ := s.findList(listID); st != nil {
		return st.board.ID, nil
	}
	l, err := s.repo.GetList(ctx, listID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", ErrListNotFound
		}
		return "", fmt.Errorf("failed to get list: %w", err)
	}
	if _, err := s.loadLocked(ctx, l.BoardID); err != nil {
		return "", err
	}
	return l.BoardID, nil
}

// LoadBoardForCard loads the board owning a card and returns its id
func (s *service) LoadBoardForCard(ctx context.Context, cardID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, _ := s.findCard(cardID); st != nil {
		return st.board.ID, nil
	}
	c, err := s.repo.GetCard(ctx, cardID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", ErrCardNotFound
		}
		return "", fmt.Errorf("failed to get card: %w", err)
	}
	l, err := s.repo.GetList(ctx, c.ListID)
	if err != nil {
		return "", fmt.Errorf("failed to get list: %w", err)
	}
	if _, err := s.loadLocked(ctx, l.BoardID); err != nil {
		return "", err
	}
	return l.BoardID, nil
}

// LoadBoardForLabel loads the board owning a label and returns its id
func (s *service) LoadBoardForLabel(ctx context.Context, labelID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, _ := s.findLabel(labelID); st != nil {
		return st.board.ID, nil
	}
	l, err := s.repo.GetLabel(ctx, labelID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", ErrLabelNotFound
		}
		return "", fmt.Errorf("failed to get label: %w", err)
	}
	if _, err := s.loadLocked(ctx, l.BoardID); err != nil {
		return "", err
	}
	return l.BoardID, nil
}

// UnloadBoard drops a board from memory; later mutations on it are no-ops
func (s *service) UnloadBoard(boardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, boardID)
}

// LoadedBoards returns the ids of the boards held in memory, sorted
func (s *service) LoadedBoards() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.boards))
	for id := range s.boards {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ============================================================================
// Lookups (callers hold s.mu)
// ============================================================================

func (s *service) findList(id string) (*boardState, *models.List) {
	for _, st := range s.boards {
		if l := st.list(id); l != nil {
			return st, l
		}
	}
	return nil, nil
}

func (s *service) findCard(id string) (*boardState, *models.Card) {
	for _, st := range s.boards {
		for _, c := range st.cards {
			if c.ID == id {
				return st, c
			}
		}
	}
	return nil, nil
}

func (s *service) findLabel(id string) (*boardState, *models.Label) {
	for _, st := range s.boards {
		for _, l := range st.labels {
			if l.ID == id {
				return st, l
			}
		}
	}
	return nil, nil
}

func (st *boardState) list(id string) *models.List {
	for _, l := range st.lists {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (st *boardState) label(id string) *models.Label {
	for _, l := range st.labels {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// sortLists keeps lists ordered by position; ties keep their current order
func (st *boardState) sortLists() {
	slices.SortStableFunc(st.lists, func(a, b *models.List) int {
		return cmp.Compare(a.Position, b.Position)
	})
}

// cardsIn returns the cards of a list ordered by position, skipping exclude
func (st *boardState) cardsIn(listID, exclude string) []*models.Card {
	var out []*models.Card
	for _, c := range st.cards {
		if c.ListID == listID && c.ID != exclude {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b *models.Card) int {
		return cmp.Compare(a.Position, b.Position)
	})
	return out
}

func (st *boardState) removeCard(id string) {
	st.cards = slices.DeleteFunc(st.cards, func(c *models.Card) bool { return c.ID == id })
}

// ============================================================================
// Persistence and change notification
// ============================================================================

// persisted wraps a failed write in a PersistError. The in-memory change
// stays applied.
func persisted(op, entityID string, err error) error {
	if err == nil {
		return nil
	}
	slog.Error("failed to persist change", "op", op, "entity_id", entityID, "error", err)
	return &PersistError{Op: op, EntityID: entityID, Err: err}
}

// changes collects events while s.mu is held; they are published after
// the lock is released.
type changes []events.Event

func (c *changes) add(t events.EventType, boardID, entityID string, deleted bool) {
	*c = append(*c, events.Event{Type: t, BoardID: boardID, EntityID: entityID, Deleted: deleted})
}

func (s *service) publish(c *changes) {
	if s.eventClient == nil {
		return
	}
	for _, e := range *c {
		if err := events.PublishWithRetry(s.eventClient, e, publishRetries); err != nil {
			slog.Warn("change notification dropped", "type", e.Type, "entity_id", e.EntityID, "error", err)
		}
	}
}

// noop logs a mutation against an id outside the loaded boards
func noop(op, id string) error {
	slog.Debug("ignoring operation on unknown id", "op", op, "id", id)
	return nil
}

// ============================================================================
// Validation
// ============================================================================

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > models.MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

func validateLabelName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > models.MaxLabelNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

func validateColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return ErrInvalidColor
	}
	return nil
}

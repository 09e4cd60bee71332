package testutil

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ErrInjected is returned by FailingStore writes while failures are on
var ErrInjected = errors.New("injected storage failure")

// FailingStore wraps a DataStore and rejects every write while Fail is set.
// Reads always pass through.
type FailingStore struct {
	database.DataStore
	fail   atomic.Bool
	writes atomic.Int64
}

// NewFailingStore wraps store; failures start switched off
func NewFailingStore(store database.DataStore) *FailingStore {
	return &FailingStore{DataStore: store}
}

// Fail switches write failures on or off
func (s *FailingStore) Fail(on bool) { s.fail.Store(on) }

// Writes returns how many write calls were attempted
func (s *FailingStore) Writes() int64 { return s.writes.Load() }

func (s *FailingStore) write() error {
	s.writes.Add(1)
	if s.fail.Load() {
		return ErrInjected
	}
	return nil
}

func (s *FailingStore) AddBoard(ctx context.Context, b *models.Board) error {
	if err := s.write(); err != nil {
		return err
	}
	return s.DataStore.AddBoard(ctx, b)
}

func (s *FailingStore) UpdateBoard(ctx context.Context, b *models.Board) error {
	if err := s.write(); err != nil {
		return err
	}
	return s.DataStore.UpdateBoard(ctx, b)
}

func (s *FailingStore) DeleteBoard(ctx context.Context, id string) error {
	if err := s.write(); err != nil {
		return err
	}
	return s.DataStore.DeleteBoard(ctx, id)
}

func (s *FailingStore) AddList(ctx context.Context, l *models.List) error {
	if err := s.write(); err != nil {
		return err
	}
	return s.DataStore.AddList(ctx, l)
}

func (s *FailingStore) UpdateList(ctx context.Context, l *models.List) error {
	if err := s.write(); err != nil {
		return err
	}
	return s.DataStore.UpdateList(ctx, l)
}

func (s *FailingStore) DeleteList(ctx context.Context, id string) error {
	if err := s.write(); err != nil {
		return err
	}
	return s.DataStore.DeleteList(ctx, id)
}

func (s *FailingStore) AddCard(ctx context.Context, c *models.Card) error {
	if err := s.write(); err != nil {
		return err
	}
	return s.DataStore.AddCard(ctx, c)
}

func (s *FailingStore) UpdateCard(ctx context.Context, c *models.Card) error {
	if err := s.write(); err != nil {
		return err
	}
	return s.DataStore.UpdateCard(ctx, c)
}

func (s *FailingStore) DeleteCard(ctx context.Context, id string) error {
	if err := s.write(); err != nil {
		return err
	}
	return s.DataStore.DeleteCard(ctx, id)
}

func (s *FailingStore) AddLabel(ctx context.Context, l *models.Label) error {
	if err := s.write(); err != nil {
		return err
	}
	return s.DataStore.AddLabel(ctx, l)
}

func (s *FailingStore) UpdateLabel(ctx context.Context, l *models.Label) error {
	if err := s.write(); err != nil {
		return err
	}
	return s.DataStore.UpdateLabel(ctx, l)
}

func (s *FailingStore) DeleteLabel(ctx context.Context, id string) error {
	if err := s.write(); err != nil {
		return err
	}
	return s.DataStore.DeleteLabel(ctx, id)
}

// RecordingPublisher keeps every event it is handed
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

// SendEvent records the event
func (p *RecordingPublisher) SendEvent(e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

// Events returns a copy of the recorded events
func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// Types returns the recorded event types in order
func (p *RecordingPublisher) Types() []events.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// Reset forgets recorded events
func (p *RecordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

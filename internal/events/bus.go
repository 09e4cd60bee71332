package events

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ErrBusClosed is returned when sending on a closed bus
var ErrBusClosed = errors.New("event bus closed")

// DefaultBufferSize is the per-subscriber channel capacity
const DefaultBufferSize = 64

type subscription struct {
	boardID string
	ch      chan Event
}

// Bus fans events out to in-process subscribers. Sends never block: a
// subscriber whose buffer is full misses the event and should resync
// from a fresh snapshot.
type Bus struct {
	mu         sync.RWMutex
	subs       map[int]*subscription
	nextID     int
	bufferSize int
	closed     bool

	sequence atomic.Int64
	dropped  atomic.Int64
}

// NewBus creates a bus with the given per-subscriber buffer (<= 0 uses the default)
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Bus{
		subs:       make(map[int]*subscription),
		bufferSize: bufferSize,
	}
}

// SendEvent stamps the event and delivers it to every matching subscriber
func (b *Bus) SendEvent(event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	event.SequenceID = b.sequence.Add(1)
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	for id, sub := range b.subs {
		if sub.boardID != "" && sub.boardID != event.BoardID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			b.dropped.Add(1)
			slog.Debug("subscriber buffer full, dropping event",
				"subscriber", id,
				"event_type", event.Type,
				"board_id", event.BoardID)
		}
	}
	return nil
}

// Subscribe registers a subscriber for boardID ("" = all boards)
func (b *Bus) Subscribe(boardID string) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.bufferSize)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = &subscription{boardID: boardID, ch: ch}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub.ch)
			}
		})
	}
	return ch, cancel
}

// Subscribers returns the number of active subscriptions
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped returns how many deliveries were skipped because of full buffers
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

// Close closes every subscriber channel; later sends return ErrBusClosed
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for id, sub := range b.subs {
		close(sub.ch)
		delete(b.subs, id)
	}
	return nil
}

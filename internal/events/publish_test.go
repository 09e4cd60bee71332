package events

import (
	"errors"
	"testing"
	"time"
)

// mockRetryPublisher fails until a given attempt number
type mockRetryPublisher struct {
	sendAttempts int
	failUntil    int // Fail until this attempt number (0-indexed)
	lastEvent    Event
}

func (m *mockRetryPublisher) SendEvent(event Event) error {
	m.lastEvent = event
	currentAttempt := m.sendAttempts
	m.sendAttempts++

	if currentAttempt < m.failUntil {
		return errors.New("simulated send failure")
	}
	return nil
}

func TestPublishWithRetry_Success(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 0}
	event := Event{Type: EventCardChanged, BoardID: "b1"}

	if err := PublishWithRetry(mock, event, 3); err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}
	if mock.sendAttempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", mock.sendAttempts)
	}
	if mock.lastEvent.BoardID != "b1" {
		t.Errorf("Expected event board b1, got %s", mock.lastEvent.BoardID)
	}
}

func TestPublishWithRetry_SuccessAfterRetries(t *testing.T) {
	// Fail first 2 attempts, succeed on 3rd
	mock := &mockRetryPublisher{failUntil: 2}

	start := time.Now()
	err := PublishWithRetry(mock, Event{Type: EventListChanged}, 3)
	elapsed := time.Since(start)

	if err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}
	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
	// 50ms + 100ms of backoff
	if elapsed < 150*time.Millisecond {
		t.Errorf("Expected at least 150ms of backoff, got %v", elapsed)
	}
}

func TestPublishWithRetry_FailureAfterAllRetries(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999}

	err := PublishWithRetry(mock, Event{Type: EventCardChanged}, 3)
	if err == nil || err.Error() != "simulated send failure" {
		t.Errorf("Expected final send error, got %v", err)
	}
	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_NilClient(t *testing.T) {
	if err := PublishWithRetry(nil, Event{Type: EventCardChanged}, 3); err != nil {
		t.Errorf("Expected nil error for nil client, got: %v", err)
	}
}

func TestPublishWithRetry_ZeroRetries(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999}

	if err := PublishWithRetry(mock, Event{Type: EventCardChanged}, 0); err != nil {
		t.Errorf("Expected nil error with 0 retries, got: %v", err)
	}
	if mock.sendAttempts != 0 {
		t.Errorf("Expected 0 attempts with maxRetries=0, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_ClosedBusStopsEarly(t *testing.T) {
	bus := NewBus(1)
	bus.Close()

	start := time.Now()
	err := PublishWithRetry(bus, Event{Type: EventCardChanged}, 3)
	if !errors.Is(err, ErrBusClosed) {
		t.Errorf("Expected ErrBusClosed, got %v", err)
	}
	if time.Since(start) > 40*time.Millisecond {
		t.Error("Expected no backoff for a closed bus")
	}
}

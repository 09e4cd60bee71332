package events

import "time"

// EventType indicates what kind of entity changed
type EventType string

const (
	EventBoardChanged EventType = "board_changed"
	EventListChanged  EventType = "list_changed"
	EventCardChanged  EventType = "card_changed"
	EventLabelChanged EventType = "label_changed"
)

// Event notifies subscribers that an entity on a board changed
type Event struct {
	Type       EventType `json:"type"`
	BoardID    string    `json:"board_id"`  // For filtering - which board was modified
	EntityID   string    `json:"entity_id"` // Board, list, card or label id
	Deleted    bool      `json:"deleted,omitempty"`
	Timestamp  time.Time `json:"timestamp"`   // Set by the bus when empty
	SequenceID int64     `json:"sequence_id"` // Monotonically increasing, assigned by the bus
}

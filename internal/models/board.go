package models

import (
	"fmt"
	"time"
)

// ViewMode controls how a board renders its cards
type ViewMode string

const (
	ViewModeCards ViewMode = "cards"
	ViewModeList  ViewMode = "list"
)

// Valid reports whether the view mode is one of the known modes
func (v ViewMode) Valid() bool {
	return v == ViewModeCards || v == ViewModeList
}

// Board is the root container for lists, cards and labels
type Board struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ViewMode  ViewMode  `json:"view_mode"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID returns the board id (used by quiet CLI output)
func (b *Board) GetID() string { return b.ID }

// List is an ordered column of cards within a board.
// Lists are ordered by Position ascending; positions are real numbers
// and need not be contiguous.
type List struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"board_id"`
	Title     string    `json:"title"`
	Position  float64   `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID returns the list id
func (l *List) GetID() string { return l.ID }

// ParseViewMode accepts "cards" or "list"
func ParseViewMode(s string) (ViewMode, error) {
	v := ViewMode(s)
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownViewMode, s)
	}
	return v, nil
}

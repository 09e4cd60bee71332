package types

import "github.com/google/uuid"

// IDs are random UUID strings so that entities can be created offline
// and merged from snapshots without collisions.

// Unassigned is the assignee scope value that selects cards with no assignees
const Unassigned = "unassigned"

// NewID returns a fresh entity identifier
func NewID() string {
	return uuid.New().String()
}

// ValidID reports whether s parses as an entity identifier
func ValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

package models

import (
	"fmt"
	"strings"
)

// ============================================================================
// PRIORITY
// ============================================================================

// Priority is a card's optional urgency. The zero value means no priority.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the priority buckets from most to least urgent
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow, PriorityNone}

// Valid reports whether p is a known priority (including none)
func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities for sorting, high first
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// String returns "none" for the zero priority
func (p Priority) String() string {
	if p == PriorityNone {
		return "none"
	}
	return string(p)
}

// ParsePriority accepts low, medium, high and none (or empty)
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return PriorityNone, nil
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return PriorityNone, fmt.Errorf("%w: %q", ErrUnknownPriority, s)
}

// ============================================================================
// LIMITS
// ============================================================================

const (
	// MaxTitleLength bounds board, list and card titles
	MaxTitleLength = 255

	// MaxLabelNameLength bounds label names
	MaxLabelNameLength = 50
)

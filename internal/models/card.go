package models

import (
	"slices"
	"time"
)

// Card is a task within a list. Labels, Checklist and Assignees are never
// nil once a card has passed through Normalize.
type Card struct {
	ID          string          `json:"id"`
	ListID      string          `json:"list_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Position    float64         `json:"position"`
	Completed   bool            `json:"completed"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Priority    Priority        `json:"priority,omitempty"`
	Labels      []Label         `json:"labels"`
	Checklist   []ChecklistItem `json:"checklist"`
	Assignees   []string        `json:"assignees"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// GetID returns the card id
func (c *Card) GetID() string { return c.ID }

// Normalize replaces nil collections with empty ones
func (c *Card) Normalize() {
	if c.Labels == nil {
		c.Labels = []Label{}
	}
	if c.Checklist == nil {
		c.Checklist = []ChecklistItem{}
	}
	if c.Assignees == nil {
		c.Assignees = []string{}
	}
}

// Clone returns a deep copy of the card
func (c *Card) Clone() *Card {
	out := *c
	out.Labels = slices.Clone(c.Labels)
	out.Checklist = slices.Clone(c.Checklist)
	out.Assignees = slices.Clone(c.Assignees)
	if c.DueDate != nil {
		due := *c.DueDate
		out.DueDate = &due
	}
	out.Normalize()
	return &out
}

// LastActivity is UpdatedAt, falling back to CreatedAt when unset
func (c *Card) LastActivity() time.Time {
	if c.UpdatedAt.IsZero() {
		return c.CreatedAt
	}
	return c.UpdatedAt
}

// HasLabel reports whether the card carries a copy of the label
func (c *Card) HasLabel(labelID string) bool {
	for _, l := range c.Labels {
		if l.ID == labelID {
			return true
		}
	}
	return false
}

// IsAssignedTo reports whether assignee is one of the card's assignees
func (c *Card) IsAssignedTo(assignee string) bool {
	return slices.Contains(c.Assignees, assignee)
}

// ChecklistProgress returns completed and total checklist items
func (c *Card) ChecklistProgress() (done, total int) {
	for _, item := range c.Checklist {
		if item.Completed {
			done++
		}
	}
	return done, len(c.Checklist)
}

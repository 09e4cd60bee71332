// Package filter narrows a card collection by search text, labels,
// priorities, lists, assignees, completion and due date. Every criterion
// is AND-combined; list-valued criteria match on any member.
package filter

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/thenoetrevino/tablero/internal/clock"
	"github.com/thenoetrevino/tablero/internal/models"
)

// DueDateFilter restricts cards by due date relative to today
type DueDateFilter string

const (
	DueAll     DueDateFilter = "all"
	DueOverdue DueDateFilter = "overdue"
	DueToday   DueDateFilter = "today"
	DueWeek    DueDateFilter = "week"
	DueHasDate DueDateFilter = "has-date"
	DueNoDate  DueDateFilter = "no-date"
)

// ParseDueDateFilter accepts all, overdue, today, week, has-date and
// no-date ("" = all)
func ParseDueDateFilter(s string) (DueDateFilter, error) {
	switch d := DueDateFilter(strings.ToLower(s)); d {
	case "":
		return DueAll, nil
	case DueAll, DueOverdue, DueToday, DueWeek, DueHasDate, DueNoDate:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDueDateFilter, s)
}

// Filters is the board view filter configuration
type Filters struct {
	SearchQuery        string            `json:"search_query"`
	SelectedLabels     []string          `json:"selected_labels"`
	SelectedPriorities []models.Priority `json:"selected_priorities"`
	SelectedLists      []string          `json:"selected_lists"`
	SelectedAssignees  []string          `json:"selected_assignees"`
	ShowCompleted      bool              `json:"show_completed"`
	DueDate            DueDateFilter     `json:"due_date"`
}

// Default returns filters that let every card through
func Default() Filters {
	return Filters{ShowCompleted: true, DueDate: DueAll}
}

// IsActive reports whether f excludes anything
func (f Filters) IsActive() bool {
	return strings.TrimSpace(f.SearchQuery) != "" ||
		len(f.SelectedLabels) > 0 ||
		len(f.SelectedPriorities) > 0 ||
		len(f.SelectedLists) > 0 ||
		len(f.SelectedAssignees) > 0 ||
		!f.ShowCompleted ||
		(f.DueDate != "" && f.DueDate != DueAll)
}

// Apply returns the cards matching f, in input order. It does not modify
// cards and is idempotent: Apply(Apply(c, f), f) == Apply(c, f).
func Apply(cards []models.Card, f Filters, now time.Time) []models.Card {
	out := make([]models.Card, 0, len(cards))
	for i := range cards {
		if Matches(&cards[i], f, now) {
			out = append(out, cards[i])
		}
	}
	return out
}

// Matches reports whether a single card passes every criterion in f
func Matches(card *models.Card, f Filters, now time.Time) bool {
	if !f.ShowCompleted && card.Completed {
		return false
	}
	if q := strings.TrimSpace(f.SearchQuery); q != "" && !MatchesSearch(card, q) {
		return false
	}
	if len(f.SelectedLabels) > 0 && !slices.ContainsFunc(card.Labels, func(l models.Label) bool {
		return slices.Contains(f.SelectedLabels, l.ID)
	}) {
		return false
	}
	if len(f.SelectedPriorities) > 0 && !slices.Contains(f.SelectedPriorities, card.Priority) {
		return false
	}
	if len(f.SelectedLists) > 0 && !slices.Contains(f.SelectedLists, card.ListID) {
		return false
	}
	if len(f.SelectedAssignees) > 0 && !slices.ContainsFunc(card.Assignees, func(a string) bool {
		return slices.Contains(f.SelectedAssignees, a)
	}) {
		return false
	}
	return matchesDueDate(card, f.DueDate, now)
}

// MatchesSearch does a case-insensitive substring match against the
// title, description, label names and checklist item text.
func MatchesSearch(card *models.Card, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(card.Title), q) ||
		strings.Contains(strings.ToLower(card.Description), q) {
		return true
	}
	for _, l := range card.Labels {
		if strings.Contains(strings.ToLower(l.Name), q) {
			return true
		}
	}
	for _, item := range card.Checklist {
		if strings.Contains(strings.ToLower(item.Text), q) {
			return true
		}
	}
	return false
}

func matchesDueDate(card *models.Card, d DueDateFilter, now time.Time) bool {
	if d == "" || d == DueAll {
		return true
	}
	if card.DueDate == nil {
		return d == DueNoDate
	}

	due := *card.DueDate
	today := clock.StartOfDay(now)

	switch d {
	case DueOverdue:
		return !card.Completed && due.Before(today)
	case DueToday:
		return !due.Before(today) && due.Before(today.AddDate(0, 0, 1))
	case DueWeek:
		return !due.Before(today) && due.Before(today.AddDate(0, 0, 7))
	case DueHasDate:
		return true
	case DueNoDate:
		return false
	}
	return true
}

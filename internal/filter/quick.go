package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/thenoetrevino/tablero/internal/clock"
	"github.com/thenoetrevino/tablero/internal/models"
)

// QuickFilter is a one-click preset used by the my-tasks view
type QuickFilter string

const (
	QuickAll          QuickFilter = "all"
	QuickOverdue      QuickFilter = "overdue"
	QuickHighPriority QuickFilter = "high-priority"
	QuickNoDueDate    QuickFilter = "no-due-date"
	QuickCompleted    QuickFilter = "completed"
)

// ParseQuickFilter accepts the preset names ("" = all)
func ParseQuickFilter(s string) (QuickFilter, error) {
	switch q := QuickFilter(strings.ToLower(s)); q {
	case "":
		return QuickAll, nil
	case QuickAll, QuickOverdue, QuickHighPriority, QuickNoDueDate, QuickCompleted:
		return q, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownQuickFilter, s)
}

// Match reports whether card passes the preset
func (q QuickFilter) Match(card *models.Card, now time.Time) bool {
	switch q {
	case QuickOverdue:
		return !card.Completed && card.DueDate != nil && card.DueDate.Before(clock.StartOfDay(now))
	case QuickHighPriority:
		return card.Priority == models.PriorityHigh
	case QuickNoDueDate:
		return card.DueDate == nil
	case QuickCompleted:
		return card.Completed
	default:
		return true
	}
}

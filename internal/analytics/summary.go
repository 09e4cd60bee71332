package analytics

import (
	"time"

	"github.com/thenoetrevino/tablero/internal/clock"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/types"
)

// Summary holds the headline counts
type Summary struct {
	TotalCards      int `json:"total_cards" yaml:"total_cards"`
	CompletedCards  int `json:"completed_cards" yaml:"completed_cards"`
	ActiveCards     int `json:"active_cards" yaml:"active_cards"`
	OverdueCards    int `json:"overdue_cards" yaml:"overdue_cards"`
	DueToday        int `json:"due_today" yaml:"due_today"`
	DueThisWeek     int `json:"due_this_week" yaml:"due_this_week"`
	UnassignedCards int `json:"unassigned_cards" yaml:"unassigned_cards"`
	CompletionRate  int `json:"completion_rate" yaml:"completion_rate"`
}

// PriorityCount is one bucket of the open-card priority distribution
type PriorityCount struct {
	Priority string `json:"priority" yaml:"priority"`
	Count    int    `json:"count" yaml:"count"`
}

// ChecklistStats aggregates checklist progress across cards
type ChecklistStats struct {
	CardsWithChecklist int `json:"cards_with_checklist" yaml:"cards_with_checklist"`
	TotalItems         int `json:"total_items" yaml:"total_items"`
	CompletedItems     int `json:"completed_items" yaml:"completed_items"`
	CompletionRate     int `json:"completion_rate" yaml:"completion_rate"`
}

// TargetProgress compares recent completions to personal targets
type TargetProgress struct {
	User              string `json:"user,omitempty" yaml:"user,omitempty"`
	CompletedToday    int    `json:"completed_today" yaml:"completed_today"`
	DailyTarget       int    `json:"daily_target" yaml:"daily_target"`
	DailyProgress     int    `json:"daily_progress" yaml:"daily_progress"`
	CompletedThisWeek int    `json:"completed_this_week" yaml:"completed_this_week"`
	WeeklyTarget      int    `json:"weekly_target" yaml:"weekly_target"`
	WeeklyProgress    int    `json:"weekly_progress" yaml:"weekly_progress"`
}

// CompletionRate is round(completed/total*100), 0 for no cards.
func CompletionRate(cards []models.Card) int {
	done := 0
	for i := range cards {
		if cards[i].Completed {
			done++
		}
	}
	return percent(done, len(cards))
}

// IsOverdue reports !completed && due < start of today.
func IsOverdue(c *models.Card, now time.Time) bool {
	return !c.Completed && c.DueDate != nil && c.DueDate.Before(clock.StartOfDay(now))
}

// IsDueToday reports !completed && due in [start of today, end of today].
func IsDueToday(c *models.Card, now time.Time) bool {
	if c.Completed || c.DueDate == nil {
		return false
	}
	return !c.DueDate.Before(clock.StartOfDay(now)) && !c.DueDate.After(clock.EndOfDay(now))
}

// IsDueThisWeek reports !completed && due in (now, now+7d).
func IsDueThisWeek(c *models.Card, now time.Time) bool {
	if c.Completed || c.DueDate == nil {
		return false
	}
	return c.DueDate.After(now) && c.DueDate.Before(now.Add(7*clock.Day))
}

func (p *pass) summary() Summary {
	var s Summary
	s.TotalCards = len(p.cards)
	for _, c := range p.cards {
		if c.Completed {
			s.CompletedCards++
			continue
		}
		s.ActiveCards++
		if IsOverdue(c, p.now) {
			s.OverdueCards++
		}
		if IsDueToday(c, p.now) {
			s.DueToday++
		}
		if IsDueThisWeek(c, p.now) {
			s.DueThisWeek++
		}
		if len(c.Assignees) == 0 {
			s.UnassignedCards++
		}
	}
	s.CompletionRate = percent(s.CompletedCards, s.TotalCards)
	return s
}

// priorityDistribution counts open cards per priority, high first, and
// omits empty buckets.
func (p *pass) priorityDistribution() []PriorityCount {
	counts := make(map[models.Priority]int)
	for _, c := range p.active() {
		counts[c.Priority]++
	}
	out := []PriorityCount{}
	for _, pr := range models.Priorities {
		if n := counts[pr]; n > 0 {
			out = append(out, PriorityCount{Priority: pr.String(), Count: n})
		}
	}
	return out
}

func (p *pass) checklist() ChecklistStats {
	var s ChecklistStats
	for _, c := range p.cards {
		done, total := c.ChecklistProgress()
		if total == 0 {
			continue
		}
		s.CardsWithChecklist++
		s.TotalItems += total
		s.CompletedItems += done
	}
	s.CompletionRate = percent(s.CompletedItems, s.TotalItems)
	return s
}

func (p *pass) targets(user UserContext) TargetProgress {
	t := TargetProgress{
		User:         user.ActiveUserID,
		DailyTarget:  user.DailyTarget,
		WeeklyTarget: user.WeeklyTarget,
	}
	for _, c := range p.cards {
		if user.ActiveUserID != "" && user.ActiveUserID != types.Unassigned && !c.IsAssignedTo(user.ActiveUserID) {
			continue
		}
		if completedIn(c, p.today, p.now, false) {
			t.CompletedToday++
		}
		if completedIn(c, p.weekAgo, p.now, false) {
			t.CompletedThisWeek++
		}
	}
	t.DailyProgress = min(100, percent(t.CompletedToday, t.DailyTarget))
	t.WeeklyProgress = min(100, percent(t.CompletedThisWeek, t.WeeklyTarget))
	return t
}

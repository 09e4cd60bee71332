// Package analytics derives dashboard metrics from a board snapshot.
//
// Every function here is pure: the result depends only on the snapshot,
// the scope, the user context and the supplied reference time. Compute
// captures the reference time once so that all metrics in a bundle agree
// on what "today" and "this week" mean.
package analytics

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/thenoetrevino/tablero/internal/clock"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/types"
)

// Thresholds used by the derivations
const (
	WIPLimit             = 10
	StaleAfterDays       = 14
	StuckAfterDays       = 7
	BottleneckAgeDays    = 10
	BottleneckStuckCount = 3
	AssigneeCapacity     = 8
	TeamVelocityLimit    = 10
	BurndownDays         = 30
	ThroughputDays       = 30
	ForecastFallbackRate = 0.5
	MaxRecommendations   = 4
)

// DateRange narrows the cards considered to those active within a window
type DateRange string

const (
	RangeToday DateRange = "today"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
	RangeAll   DateRange = "all"
)

// ParseDateRange accepts today, week, month and all ("" = all)
func ParseDateRange(s string) (DateRange, error) {
	switch r := DateRange(strings.ToLower(s)); r {
	case "":
		return RangeAll, nil
	case RangeToday, RangeWeek, RangeMonth, RangeAll:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDateRange, s)
}

// Scope is the (board, assignee, date range) narrowing applied before any
// metric is computed.
type Scope struct {
	BoardID   string    `json:"board_id,omitempty" yaml:"board_id,omitempty"` // "" = all boards
	Assignee  string    `json:"assignee,omitempty" yaml:"assignee,omitempty"` // "" = everyone, "unassigned" = no assignees
	DateRange DateRange `json:"date_range" yaml:"date_range"`
}

// UserContext carries the active user and personal targets explicitly
// instead of reading ambient preferences.
type UserContext struct {
	ActiveUserID string `json:"active_user_id" yaml:"active_user_id"`
	DailyTarget  int    `json:"daily_target" yaml:"daily_target"`
	WeeklyTarget int    `json:"weekly_target" yaml:"weekly_target"`
}

// Metrics is the full dashboard bundle
type Metrics struct {
	GeneratedAt          time.Time          `json:"generated_at" yaml:"generated_at"`
	Scope                Scope              `json:"scope" yaml:"scope"`
	Summary              Summary            `json:"summary" yaml:"summary"`
	PriorityDistribution []PriorityCount    `json:"priority_distribution" yaml:"priority_distribution"`
	Velocity             Velocity           `json:"velocity" yaml:"velocity"`
	AvgCycleTimeDays     float64            `json:"avg_cycle_time_days" yaml:"avg_cycle_time_days"`
	Throughput           Throughput         `json:"throughput" yaml:"throughput"`
	Burndown             []BurndownPoint    `json:"burndown" yaml:"burndown"`
	WIP                  []ListWIP          `json:"wip" yaml:"wip"`
	Workload             []AssigneeWorkload `json:"workload" yaml:"workload"`
	TeamVelocity         []AssigneeVelocity `json:"team_velocity" yaml:"team_velocity"`
	Collaboration        Collaboration      `json:"collaboration" yaml:"collaboration"`
	StaleCards           []StaleCard        `json:"stale_cards" yaml:"stale_cards"`
	Bottlenecks          []Bottleneck       `json:"bottlenecks" yaml:"bottlenecks"`
	AtRisk               []AtRiskCard       `json:"at_risk" yaml:"at_risk"`
	Forecast             Forecast           `json:"forecast" yaml:"forecast"`
	AgeDistribution      []AgeBucket        `json:"age_distribution" yaml:"age_distribution"`
	Checklist            ChecklistStats     `json:"checklist" yaml:"checklist"`
	Targets              TargetProgress     `json:"targets" yaml:"targets"`
	Recommendations      []Recommendation   `json:"recommendations" yaml:"recommendations"`
}

// CardRef is the slice of card data the dashboard lists display
type CardRef struct {
	ID        string          `json:"id" yaml:"id"`
	Title     string          `json:"title" yaml:"title"`
	ListID    string          `json:"list_id" yaml:"list_id"`
	ListTitle string          `json:"list_title" yaml:"list_title"`
	BoardID   string          `json:"board_id" yaml:"board_id"`
	Priority  models.Priority `json:"priority,omitempty" yaml:"priority,omitempty"`
	DueDate   *time.Time      `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Assignees []string        `json:"assignees" yaml:"assignees"`
}

// pass holds the scoped inputs and time windows of one computation
type pass struct {
	now         time.Time
	today       time.Time
	weekAgo     time.Time
	twoWeeksAgo time.Time
	monthAgo    time.Time

	cards     []*models.Card
	lists     []*models.List
	listIndex map[string]*models.List
}

func newPass(snap *models.Snapshot, scope Scope, now time.Time) *pass {
	p := &pass{
		now:         now,
		today:       clock.StartOfDay(now),
		weekAgo:     now.Add(-7 * clock.Day),
		twoWeeksAgo: now.Add(-14 * clock.Day),
		monthAgo:    now.Add(-30 * clock.Day),
		listIndex:   make(map[string]*models.List, len(snap.Lists)),
	}

	boardOrder := make(map[string]int, len(snap.Boards))
	for i, b := range snap.Boards {
		boardOrder[b.ID] = i
	}

	for i := range snap.Lists {
		l := &snap.Lists[i]
		p.listIndex[l.ID] = l
		if scope.BoardID == "" || l.BoardID == scope.BoardID {
			p.lists = append(p.lists, l)
		}
	}
	slices.SortStableFunc(p.lists, func(a, b *models.List) int {
		if c := cmp.Compare(boardOrder[a.BoardID], boardOrder[b.BoardID]); c != 0 {
			return c
		}
		return cmp.Compare(a.Position, b.Position)
	})

	windowStart, windowed := scope.DateRange.start(now)
	for i := range snap.Cards {
		c := &snap.Cards[i]
		if scope.BoardID != "" {
			l, ok := p.listIndex[c.ListID]
			if !ok || l.BoardID != scope.BoardID {
				continue
			}
		}
		switch scope.Assignee {
		case "":
		case types.Unassigned:
			if len(c.Assignees) > 0 {
				continue
			}
		default:
			if !c.IsAssignedTo(scope.Assignee) {
				continue
			}
		}
		if windowed && c.LastActivity().Before(windowStart) {
			continue
		}
		p.cards = append(p.cards, c)
	}
	return p
}

// start returns the inclusive lower bound of the range, if any
func (r DateRange) start(now time.Time) (time.Time, bool) {
	switch r {
	case RangeToday:
		return clock.StartOfDay(now), true
	case RangeWeek:
		return now.Add(-7 * clock.Day), true
	case RangeMonth:
		return now.Add(-30 * clock.Day), true
	}
	return time.Time{}, false
}

// ref builds a CardRef, resolving the list title
func (p *pass) ref(c *models.Card) CardRef {
	r := CardRef{
		ID:        c.ID,
		Title:     c.Title,
		ListID:    c.ListID,
		Priority:  c.Priority,
		DueDate:   c.DueDate,
		Assignees: c.Assignees,
	}
	if r.Assignees == nil {
		r.Assignees = []string{}
	}
	if l, ok := p.listIndex[c.ListID]; ok {
		r.ListTitle = l.Title
		r.BoardID = l.BoardID
	}
	return r
}

// active returns the scoped cards that are not completed
func (p *pass) active() []*models.Card {
	out := make([]*models.Card, 0, len(p.cards))
	for _, c := range p.cards {
		if !c.Completed {
			out = append(out, c)
		}
	}
	return out
}

// completedBetween counts completed cards with UpdatedAt in [from, to]
// (or [from, to) when halfOpen is set).
func completedBetween(cards []*models.Card, from, to time.Time, halfOpen bool) int {
	n := 0
	for _, c := range cards {
		if completedIn(c, from, to, halfOpen) {
			n++
		}
	}
	return n
}

func completedIn(c *models.Card, from, to time.Time, halfOpen bool) bool {
	if !c.Completed || c.UpdatedAt.IsZero() || c.UpdatedAt.Before(from) {
		return false
	}
	if halfOpen {
		return c.UpdatedAt.Before(to)
	}
	return !c.UpdatedAt.After(to)
}

// Compute derives the full metrics bundle. now is read once by the caller
// and used for every window in the pass.
func Compute(snap *models.Snapshot, scope Scope, now time.Time, user UserContext) *Metrics {
	if scope.DateRange == "" {
		scope.DateRange = RangeAll
	}
	p := newPass(snap, scope, now)

	m := &Metrics{
		GeneratedAt: now,
		Scope:       scope,
	}
	m.Summary = p.summary()
	m.PriorityDistribution = p.priorityDistribution()
	m.Velocity = p.velocity()
	m.AvgCycleTimeDays = p.avgCycleTime()
	m.Throughput = p.throughput()
	m.Burndown = p.burndown()
	m.WIP = p.wip()
	m.Workload = p.workload()
	m.TeamVelocity = p.teamVelocity()
	m.Collaboration = p.collaboration()
	m.StaleCards = p.staleCards()
	m.Bottlenecks = p.bottlenecks()
	m.AtRisk = p.atRisk(m.Velocity)
	m.Forecast = p.forecast(m.Throughput)
	m.AgeDistribution = p.ageDistribution()
	m.Checklist = p.checklist()
	m.Targets = p.targets(user)
	m.Recommendations = Recommend(m)
	return m
}

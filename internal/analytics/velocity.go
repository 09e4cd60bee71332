package analytics

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/thenoetrevino/tablero/internal/clock"
	"github.com/thenoetrevino/tablero/internal/models"
)

// Velocity compares completions in the trailing week to the week before
type Velocity struct {
	ThisWeek     int `json:"this_week" yaml:"this_week"`
	LastWeek     int `json:"last_week" yaml:"last_week"`
	TrendPercent int `json:"trend_percent" yaml:"trend_percent"`
}

// Throughput is the trailing 30-day completion rate
type Throughput struct {
	CompletedLast30Days int     `json:"completed_last_30_days" yaml:"completed_last_30_days"`
	Daily               float64 `json:"daily" yaml:"daily"`
	Weekly              int     `json:"weekly" yaml:"weekly"`
}

// BurndownPoint is one day of the burndown chart
type BurndownPoint struct {
	Date      time.Time `json:"date" yaml:"date"`
	Remaining int       `json:"remaining" yaml:"remaining"`
	Ideal     float64   `json:"ideal" yaml:"ideal"`
}

// AssigneeVelocity is one row of the team velocity table
type AssigneeVelocity struct {
	Assignee string `json:"assignee" yaml:"assignee"`
	Current  int    `json:"current_week" yaml:"current_week"`
	Previous int    `json:"previous_week" yaml:"previous_week"`
}

// Forecast estimates when the open cards will be done
type Forecast struct {
	ActiveCards         int       `json:"active_cards" yaml:"active_cards"`
	DailyRate           float64   `json:"daily_rate" yaml:"daily_rate"`
	DaysToComplete      int       `json:"days_to_complete" yaml:"days_to_complete"`
	EstimatedCompletion time.Time `json:"estimated_completion" yaml:"estimated_completion"`
}

// Trend returns round((this-last)/last*100), 0 when last is 0.
func Trend(thisWeek, lastWeek int) int {
	if lastWeek == 0 {
		return 0
	}
	return roundHalfUp(float64(thisWeek-lastWeek) / float64(lastWeek) * 100)
}

func (p *pass) velocity() Velocity {
	v := Velocity{
		ThisWeek: completedBetween(p.cards, p.weekAgo, p.now, false),
		LastWeek: completedBetween(p.cards, p.twoWeeksAgo, p.weekAgo, true),
	}
	v.TrendPercent = Trend(v.ThisWeek, v.LastWeek)
	return v
}

// avgCycleTime is the mean created-to-updated span of completed cards, in days.
func (p *pass) avgCycleTime() float64 {
	var total float64
	n := 0
	for _, c := range p.cards {
		if !c.Completed || c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
			continue
		}
		total += clock.DaysBetween(c.CreatedAt, c.UpdatedAt)
		n++
	}
	if n == 0 {
		return 0
	}
	return round1(total / float64(n))
}

func (p *pass) throughput() Throughput {
	n := completedBetween(p.cards, p.monthAgo, p.now, false)
	daily := round1(float64(n) / ThroughputDays)
	return Throughput{
		CompletedLast30Days: n,
		Daily:               daily,
		Weekly:              roundHalfUp(daily * 7),
	}
}

// burndown returns BurndownDays+1 points from BurndownDays ago through
// today. remaining counts cards created by the end of the day and not
// completed by then; ideal falls linearly from the first remaining value.
func (p *pass) burndown() []BurndownPoint {
	points := make([]BurndownPoint, 0, BurndownDays+1)
	for i := BurndownDays; i >= 0; i-- {
		day := p.today.AddDate(0, 0, -i)
		end := clock.EndOfDay(day)

		remaining := 0
		for _, c := range p.cards {
			if c.CreatedAt.After(end) {
				continue
			}
			if c.Completed && !c.UpdatedAt.After(end) {
				continue
			}
			remaining++
		}
		points = append(points, BurndownPoint{Date: day, Remaining: remaining})
	}

	total := float64(points[0].Remaining)
	for k := range points {
		points[k].Ideal = round1(total * float64(BurndownDays-k) / BurndownDays)
	}
	return points
}

// teamVelocity returns per-assignee completions in the current and previous
// 7-day windows, busiest first, capped at TeamVelocityLimit.
func (p *pass) teamVelocity() []AssigneeVelocity {
	byAssignee := make(map[string]*AssigneeVelocity)
	for _, c := range p.cards {
		for _, a := range uniqueAssignees(c) {
			row, ok := byAssignee[a]
			if !ok {
				row = &AssigneeVelocity{Assignee: a}
				byAssignee[a] = row
			}
			if completedIn(c, p.weekAgo, p.now, false) {
				row.Current++
			}
			if completedIn(c, p.twoWeeksAgo, p.weekAgo, true) {
				row.Previous++
			}
		}
	}

	out := make([]AssigneeVelocity, 0, len(byAssignee))
	for _, row := range byAssignee {
		out = append(out, *row)
	}
	slices.SortFunc(out, func(a, b AssigneeVelocity) int {
		if c := cmp.Compare(b.Current, a.Current); c != 0 {
			return c
		}
		return cmp.Compare(a.Assignee, b.Assignee)
	})
	if len(out) > TeamVelocityLimit {
		out = out[:TeamVelocityLimit]
	}
	return out
}

// forecast projects the open card count forward at the daily throughput,
// never slower than ForecastFallbackRate.
func (p *pass) forecast(t Throughput) Forecast {
	active := len(p.active())
	rate := math.Max(t.Daily, ForecastFallbackRate)
	days := int(math.Ceil(float64(active) / rate))
	return Forecast{
		ActiveCards:         active,
		DailyRate:           rate,
		DaysToComplete:      days,
		EstimatedCompletion: p.today.AddDate(0, 0, days),
	}
}

// uniqueAssignees returns the card's assignees without duplicates or blanks
func uniqueAssignees(c *models.Card) []string {
	out := make([]string, 0, len(c.Assignees))
	for _, a := range c.Assignees {
		if a != "" && !slices.Contains(out, a) {
			out = append(out, a)
		}
	}
	return out
}

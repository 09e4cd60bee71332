package analytics

import (
	"cmp"
	"slices"
	"time"

	"github.com/thenoetrevino/tablero/internal/clock"
)

// ListWIP is the open card count of one list
type ListWIP struct {
	ListID    string `json:"list_id" yaml:"list_id"`
	ListTitle string `json:"list_title" yaml:"list_title"`
	BoardID   string `json:"board_id" yaml:"board_id"`
	Count     int    `json:"count" yaml:"count"`
	Warning   bool   `json:"warning" yaml:"warning"`
}

// AssigneeWorkload is one assignee's load against a fixed capacity
type AssigneeWorkload struct {
	Assignee    string `json:"assignee" yaml:"assignee"`
	Active      int    `json:"active" yaml:"active"`
	Completed   int    `json:"completed" yaml:"completed"`
	Capacity    int    `json:"capacity" yaml:"capacity"`
	Utilization int    `json:"utilization" yaml:"utilization"`
}

// AssigneePair is an unordered pair of assignees, A < B
type AssigneePair struct {
	A     string `json:"a" yaml:"a"`
	B     string `json:"b" yaml:"b"`
	Count int    `json:"count" yaml:"count"`
}

// Collaboration summarizes how cards are shared between assignees
type Collaboration struct {
	MultiAssigneeCards  int           `json:"multi_assignee_cards" yaml:"multi_assignee_cards"`
	AvgAssigneesPerCard float64       `json:"avg_assignees_per_card" yaml:"avg_assignees_per_card"`
	TopPair             *AssigneePair `json:"top_pair,omitempty" yaml:"top_pair,omitempty"`
}

// StaleCard is an open card with no activity for StaleAfterDays
type StaleCard struct {
	CardRef `yaml:",inline"`
	LastActivity time.Time `json:"last_activity" yaml:"last_activity"`
	DaysStale    int       `json:"days_stale" yaml:"days_stale"`
}

// Bottleneck describes the open cards sitting in one list
type Bottleneck struct {
	ListID      string  `json:"list_id" yaml:"list_id"`
	ListTitle   string  `json:"list_title" yaml:"list_title"`
	BoardID     string  `json:"board_id" yaml:"board_id"`
	ActiveCards int     `json:"active_cards" yaml:"active_cards"`
	AvgAgeDays  float64 `json:"avg_age_days" yaml:"avg_age_days"`
	StuckCount  int     `json:"stuck_count" yaml:"stuck_count"`
	Flagged     bool    `json:"flagged" yaml:"flagged"`
}

// AtRiskCard is an open card unlikely to make its due date
type AtRiskCard struct {
	CardRef `yaml:",inline"`
	DaysRemaining float64 `json:"days_remaining" yaml:"days_remaining"`
}

// AgeBucket counts open cards by age since creation
type AgeBucket struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// ageBuckets are matched in order; the first upper bound above the age wins
var ageBuckets = []struct {
	label   string
	maxDays float64
}{
	{"<3d", 3},
	{"3-7d", 7},
	{"1-2wk", 14},
	{"2-4wk", 28},
}

const oldestAgeBucket = ">4wk"

// wip counts open cards per scoped list; a list over WIPLimit is a warning.
func (p *pass) wip() []ListWIP {
	counts := make(map[string]int)
	for _, c := range p.active() {
		counts[c.ListID]++
	}
	out := make([]ListWIP, 0, len(p.lists))
	for _, l := range p.lists {
		n := counts[l.ID]
		out = append(out, ListWIP{
			ListID:    l.ID,
			ListTitle: l.Title,
			BoardID:   l.BoardID,
			Count:     n,
			Warning:   n > WIPLimit,
		})
	}
	return out
}

func (p *pass) workload() []AssigneeWorkload {
	byAssignee := make(map[string]*AssigneeWorkload)
	for _, c := range p.cards {
		for _, a := range uniqueAssignees(c) {
			row, ok := byAssignee[a]
			if !ok {
				row = &AssigneeWorkload{Assignee: a, Capacity: AssigneeCapacity}
				byAssignee[a] = row
			}
			if c.Completed {
				row.Completed++
			} else {
				row.Active++
			}
		}
	}

	out := make([]AssigneeWorkload, 0, len(byAssignee))
	for _, row := range byAssignee {
		row.Utilization = percent(row.Active, row.Capacity)
		out = append(out, *row)
	}
	slices.SortFunc(out, func(a, b AssigneeWorkload) int {
		if c := cmp.Compare(b.Active, a.Active); c != 0 {
			return c
		}
		return cmp.Compare(a.Assignee, b.Assignee)
	})
	return out
}

func (p *pass) collaboration() Collaboration {
	var (
		col           Collaboration
		assignedCards int
		assignments   int
		pairs         = make(map[[2]string]int)
	)

	for _, c := range p.cards {
		people := uniqueAssignees(c)
		if len(people) == 0 {
			continue
		}
		assignedCards++
		assignments += len(people)
		if len(people) < 2 {
			continue
		}
		col.MultiAssigneeCards++
		slices.Sort(people)
		for i := 0; i < len(people); i++ {
			for j := i + 1; j < len(people); j++ {
				pairs[[2]string{people[i], people[j]}]++
			}
		}
	}

	if assignedCards > 0 {
		col.AvgAssigneesPerCard = round1(float64(assignments) / float64(assignedCards))
	}

	for key, n := range pairs {
		best := col.TopPair
		if best == nil || n > best.Count ||
			(n == best.Count && (key[0] < best.A || (key[0] == best.A && key[1] < best.B))) {
			col.TopPair = &AssigneePair{A: key[0], B: key[1], Count: n}
		}
	}
	return col
}

// staleCards returns open cards idle for more than StaleAfterDays, oldest first.
func (p *pass) staleCards() []StaleCard {
	cutoff := p.now.Add(-StaleAfterDays * clock.Day)
	out := []StaleCard{}
	for _, c := range p.active() {
		last := c.LastActivity()
		if !last.Before(cutoff) {
			continue
		}
		out = append(out, StaleCard{
			CardRef:      p.ref(c),
			LastActivity: last,
			DaysStale:    int(clock.DaysBetween(last, p.now)),
		})
	}
	slices.SortStableFunc(out, func(a, b StaleCard) int {
		return a.LastActivity.Compare(b.LastActivity)
	})
	return out
}

// bottlenecks reports every scoped list holding open cards, most stuck first.
func (p *pass) bottlenecks() []Bottleneck {
	stuckCutoff := p.now.Add(-StuckAfterDays * clock.Day)

	type acc struct {
		ageTotal float64
		active   int
		stuck    int
	}
	byList := make(map[string]*acc)
	for _, c := range p.active() {
		a, ok := byList[c.ListID]
		if !ok {
			a = &acc{}
			byList[c.ListID] = a
		}
		a.active++
		a.ageTotal += clock.DaysBetween(c.CreatedAt, p.now)
		if c.LastActivity().Before(stuckCutoff) {
			a.stuck++
		}
	}

	out := []Bottleneck{}
	for _, l := range p.lists {
		a, ok := byList[l.ID]
		if !ok {
			continue
		}
		avg := round1(a.ageTotal / float64(a.active))
		out = append(out, Bottleneck{
			ListID:      l.ID,
			ListTitle:   l.Title,
			BoardID:     l.BoardID,
			ActiveCards: a.active,
			AvgAgeDays:  avg,
			StuckCount:  a.stuck,
			Flagged:     avg > BottleneckAgeDays || a.stuck > BottleneckStuckCount,
		})
	}
	slices.SortStableFunc(out, func(a, b Bottleneck) int {
		return cmp.Compare(b.StuckCount, a.StuckCount)
	})
	return out
}

// atRisk flags open cards due within a week while the team completes
// fewer than one card a day.
func (p *pass) atRisk(v Velocity) []AtRiskCard {
	out := []AtRiskCard{}
	if float64(v.ThisWeek)/7 >= 1 {
		return out
	}
	for _, c := range p.active() {
		if c.DueDate == nil {
			continue
		}
		remaining := clock.DaysBetween(p.now, *c.DueDate)
		if remaining <= 0 || remaining >= 7 {
			continue
		}
		out = append(out, AtRiskCard{CardRef: p.ref(c), DaysRemaining: round1(remaining)})
	}
	slices.SortStableFunc(out, func(a, b AtRiskCard) int {
		return a.DueDate.Compare(*b.DueDate)
	})
	return out
}

func (p *pass) ageDistribution() []AgeBucket {
	out := make([]AgeBucket, 0, len(ageBuckets)+1)
	for _, b := range ageBuckets {
		out = append(out, AgeBucket{Label: b.label})
	}
	out = append(out, AgeBucket{Label: oldestAgeBucket})

	for _, c := range p.active() {
		out[ageBucketIndex(clock.DaysBetween(c.CreatedAt, p.now))].Count++
	}
	return out
}

func ageBucketIndex(days float64) int {
	for i, b := range ageBuckets {
		if days < b.maxDays {
			return i
		}
	}
	return len(ageBuckets)
}

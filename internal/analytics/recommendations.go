package analytics

import "fmt"

// Severity orders recommendations for display
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Recommendation is one actionable insight derived from a metrics bundle
type Recommendation struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Severity Severity `json:"severity" yaml:"severity"`
	Title    string   `json:"title" yaml:"title"`
	Message  string   `json:"message" yaml:"message"`
}

// rule yields a recommendation when its condition holds
type rule func(m *Metrics) (Recommendation, bool)

// rules are evaluated in priority order; the first MaxRecommendations hits win.
var rules = []rule{
	func(m *Metrics) (Recommendation, bool) {
		n := len(m.StaleCards)
		return Recommendation{
			Kind:     "stale-cards",
			Severity: SeverityHigh,
			Title:    "Review stale cards",
			Message:  fmt.Sprintf("%d cards have had no activity for over %d days. Close or re-plan them.", n, StaleAfterDays),
		}, n > 5
	},
	func(m *Metrics) (Recommendation, bool) {
		n := m.Summary.OverdueCards
		return Recommendation{
			Kind:     "overdue",
			Severity: SeverityHigh,
			Title:    "Address overdue cards",
			Message:  fmt.Sprintf("%d cards are past their due date.", n),
		}, n > 0
	},
	func(m *Metrics) (Recommendation, bool) {
		var over []string
		for _, w := range m.WIP {
			if w.Warning {
				over = append(over, w.ListTitle)
			}
		}
		return Recommendation{
			Kind:     "wip-limit",
			Severity: SeverityMedium,
			Title:    "Reduce work in progress",
			Message:  fmt.Sprintf("%d lists hold more than %d open cards: %v.", len(over), WIPLimit, over),
		}, len(over) > 0
	},
	func(m *Metrics) (Recommendation, bool) {
		trend := m.Velocity.TrendPercent
		return Recommendation{
			Kind:     "velocity-drop",
			Severity: SeverityMedium,
			Title:    "Velocity is dropping",
			Message:  fmt.Sprintf("Completions are down %d%% compared to last week.", -trend),
		}, trend < -20
	},
	func(m *Metrics) (Recommendation, bool) {
		cl := m.Checklist
		return Recommendation{
			Kind:     "checklist-completion",
			Severity: SeverityLow,
			Title:    "Checklists are lagging",
			Message:  fmt.Sprintf("Only %d%% of checklist items across %d cards are done.", cl.CompletionRate, cl.CardsWithChecklist),
		}, cl.CardsWithChecklist > 5 && cl.CompletedItems*2 < cl.TotalItems
	},
}

// Recommend evaluates the rules against a computed bundle
func Recommend(m *Metrics) []Recommendation {
	out := []Recommendation{}
	for _, r := range rules {
		if rec, ok := r(m); ok {
			out = append(out, rec)
			if len(out) == MaxRecommendations {
				break
			}
		}
	}
	return out
}

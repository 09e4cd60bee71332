package export

import (
	"fmt"
	"strings"
)

const dateLayout = "2006-01-02"

// Markdown renders d as a Markdown report, skipping the sections hidden
// by d.Layout
func (d *Document) Markdown() string {
	var b strings.Builder

	b.WriteString("# Dashboard report\n\n")
	fmt.Fprintf(&b, "Generated %s by %s", d.Metadata.GeneratedAt.Format("2006-01-02 15:04 MST"), d.Metadata.Generator)
	if scope := describeScope(d); scope != "" {
		fmt.Fprintf(&b, " for %s", scope)
	}
	b.WriteString(".\n\n")

	s := d.Summary
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total cards | %d |\n", s.TotalCards)
	fmt.Fprintf(&b, "| Completed | %d |\n", s.CompletedCards)
	fmt.Fprintf(&b, "| Active | %d |\n", s.ActiveCards)
	fmt.Fprintf(&b, "| Overdue | %d |\n", s.OverdueCards)
	fmt.Fprintf(&b, "| Due today | %d |\n", s.DueToday)
	fmt.Fprintf(&b, "| Due this week | %d |\n", s.DueThisWeek)
	fmt.Fprintf(&b, "| Unassigned | %d |\n", s.UnassignedCards)
	fmt.Fprintf(&b, "| Completion rate | %d%% |\n\n", s.CompletionRate)

	l := d.Layout
	var velocity []string
	if !l.HideTeamPerformance {
		v := d.Velocity
		velocity = append(velocity,
			fmt.Sprintf("- This week: %d", v.ThisWeek),
			fmt.Sprintf("- Last week: %d", v.LastWeek),
			fmt.Sprintf("- Trend: %+d%%", v.TrendPercent))
	}
	if f := d.Insights.Forecast; f.ActiveCards > 0 && !l.HideTimeInsights {
		velocity = append(velocity, fmt.Sprintf("- Forecast: %d open cards at %.1f/day, about %d days (%s)",
			f.ActiveCards, f.DailyRate, f.DaysToComplete, f.EstimatedCompletion.Format(dateLayout)))
	}
	if len(velocity) > 0 {
		b.WriteString("## Velocity\n\n")
		b.WriteString(strings.Join(velocity, "\n") + "\n\n")
	}

	if len(d.Insights.Bottlenecks) > 0 && !l.HideActionableInsights {
		b.WriteString("## Bottlenecks\n\n")
		b.WriteString("| List | Open | Avg age (days) | Stuck | Flagged |\n|---|---|---|---|---|\n")
		for _, bn := range d.Insights.Bottlenecks {
			fmt.Fprintf(&b, "| %s | %d | %.1f | %d | %s |\n", escape(bn.ListTitle), bn.ActiveCards, bn.AvgAgeDays, bn.StuckCount, yesNo(bn.Flagged))
		}
		b.WriteString("\n")
	}

	if len(d.Insights.AtRisk) > 0 && !l.HideTimeInsights {
		b.WriteString("## At risk\n\n")
		for _, c := range d.Insights.AtRisk {
			fmt.Fprintf(&b, "- %s (%s), %.1f days left\n", c.Title, c.ListTitle, c.DaysRemaining)
		}
		b.WriteString("\n")
	}

	if len(d.Insights.Stale) > 0 && !l.HideTimeInsights {
		b.WriteString("## Stale cards\n\n")
		for _, c := range d.Insights.Stale {
			fmt.Fprintf(&b, "- %s (%s), idle %d days\n", c.Title, c.ListTitle, c.DaysStale)
		}
		b.WriteString("\n")
	}

	if len(d.Utilization) > 0 && !l.HideTeamPerformance {
		b.WriteString("## Utilization\n\n")
		b.WriteString("| Assignee | Active | Completed | Utilization |\n|---|---|---|---|\n")
		for _, u := range d.Utilization {
			fmt.Fprintf(&b, "| %s | %d | %d | %d%% |\n", escape(u.Assignee), u.Active, u.Completed, u.Utilization)
		}
		b.WriteString("\n")
	}

	if len(d.Recommendations) > 0 && !l.HideActionableInsights {
		b.WriteString("## Recommendations\n\n")
		for _, r := range d.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func describeScope(d *Document) string {
	var parts []string
	sc := d.Metadata.Scope
	if sc.BoardID != "" {
		parts = append(parts, "board "+sc.BoardID)
	}
	if sc.Assignee != "" {
		parts = append(parts, "assignee "+sc.Assignee)
	}
	if sc.DateRange != "" {
		parts = append(parts, "range "+string(sc.DateRange))
	}
	return strings.Join(parts, ", ")
}

// escape keeps pipes in titles from breaking table rows
func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

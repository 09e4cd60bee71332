// Package export turns a computed metrics bundle into a portable report.
// The document is a plain serialization of analytics.Metrics; it adds no
// derivations of its own.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/tablero/internal/analytics"
)

// Generator identifies the producer in exported metadata
const Generator = "tablero"

// Format is an output encoding for a Document
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts json, yaml (or yml) and markdown (or md)
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Metadata describes when and for what scope a document was produced
type Metadata struct {
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Scope       analytics.Scope `json:"scope" yaml:"scope"`
	Generator   string          `json:"generator" yaml:"generator"`
}

// Insights groups the attention lists of a report
type Insights struct {
	Bottlenecks []analytics.Bottleneck `json:"bottlenecks" yaml:"bottlenecks"`
	AtRisk      []analytics.AtRiskCard `json:"at_risk" yaml:"at_risk"`
	Stale       []analytics.StaleCard  `json:"stale" yaml:"stale"`
	Forecast    analytics.Forecast     `json:"forecast" yaml:"forecast"`
}

// Layout hides groups of sections in the Markdown and terminal reports.
// The zero value shows everything. JSON and YAML exports are unaffected.
//
// Team performance covers velocity and utilization, time insights the
// forecast, at-risk and stale cards, actionable insights the bottlenecks
// and recommendations.
type Layout struct {
	HideTeamPerformance    bool
	HideTimeInsights       bool
	HideActionableInsights bool
}

// Document is the exported dashboard report
type Document struct {
	Metadata        Metadata                     `json:"metadata" yaml:"metadata"`
	Summary         analytics.Summary            `json:"summary" yaml:"summary"`
	Velocity        analytics.Velocity           `json:"velocity" yaml:"velocity"`
	Insights        Insights                     `json:"insights" yaml:"insights"`
	Utilization     []analytics.AssigneeWorkload `json:"utilization" yaml:"utilization"`
	Recommendations []string                     `json:"recommendations" yaml:"recommendations"`

	Layout Layout `json:"-" yaml:"-"`
}

// FromMetrics builds a Document out of a metrics bundle
func FromMetrics(m *analytics.Metrics) *Document {
	recs := make([]string, 0, len(m.Recommendations))
	for _, r := range m.Recommendations {
		recs = append(recs, fmt.Sprintf("%s: %s", r.Title, r.Message))
	}
	return &Document{
		Metadata: Metadata{
			GeneratedAt: m.GeneratedAt,
			Scope:       m.Scope,
			Generator:   Generator,
		},
		Summary:  m.Summary,
		Velocity: m.Velocity,
		Insights: Insights{
			Bottlenecks: nonNil(m.Bottlenecks),
			AtRisk:      nonNil(m.AtRisk),
			Stale:       nonNil(m.StaleCards),
			Forecast:    m.Forecast,
		},
		Utilization:     nonNil(m.Workload),
		Recommendations: recs,
	}
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// Write encodes d to w in the given format
func (d *Document) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return d.WriteJSON(w)
	case FormatYAML:
		return d.WriteYAML(w)
	case FormatMarkdown:
		_, err := io.WriteString(w, d.Markdown())
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WriteJSON writes d as indented JSON
func (d *Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode export as json: %w", err)
	}
	return nil
}

// WriteYAML writes d as YAML
func (d *Document) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode export as yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush yaml export: %w", err)
	}
	return nil
}

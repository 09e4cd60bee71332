package styles

import (
	"strings"
	"testing"
	"time"

	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/models"
)

func TestRenderCardLine(t *testing.T) {
	Init(config.MonochromeColorScheme())

	due := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	c := &models.Card{
		ID:        "card-1",
		Title:     "Fix login",
		Priority:  models.PriorityHigh,
		DueDate:   &due,
		Completed: true,
		Labels:    []models.Label{{ID: "l1", Name: "bug", Color: "#FF0000"}},
	}

	line := RenderCardLine(c)
	for _, want := range []string{"[x]", "Fix login", "high", "bug", "2025-06-12", "card-1"} {
		if !strings.Contains(line, want) {
			t.Errorf("expected %q in %q", want, line)
		}
	}
}

func TestRenderCardDetail(t *testing.T) {
	Init(config.DefaultColorScheme())

	c := &models.Card{
		ID:          "card-2",
		Title:       "Write docs",
		Description: "Cover the API",
		Assignees:   []string{"ana"},
		Checklist: []models.ChecklistItem{
			{ID: "i1", Text: "outline", Completed: true},
			{ID: "i2", Text: "draft"},
		},
	}

	out := RenderCardDetail(c, "Sprint")
	for _, want := range []string{"Write docs", "Sprint", "none", "ana", "Cover the API", "Checklist 1/2", "draft"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

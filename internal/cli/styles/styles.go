// Package styles holds the lipgloss styles used by human-readable CLI output
package styles

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "List:", "Priority:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Checklist", "Labels"

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style

	priorityColors map[models.Priority]string
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Accent)).
		Bold(true).
		MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.InfoFg)).
		Background(lipgloss.Color(colors.InfoBg)).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.WarningFg)).
		Background(lipgloss.Color(colors.WarningBg)).
		Padding(0, 1)

	priorityColors = map[models.Priority]string{
		models.PriorityHigh:   colors.PriorityHigh,
		models.PriorityMedium: colors.PriorityMedium,
		models.PriorityLow:    colors.PriorityLow,
		models.PriorityNone:   colors.Subtle,
	}
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderLabelChip renders a label as "[name]" with the label's color
func RenderLabelChip(label models.Label) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(label.Color)).
		Bold(true).
		Render("[" + label.Name + "]")
}

// RenderPriority renders a priority in its theme color
func RenderPriority(p models.Priority) string {
	return ColoredText(p.String(), priorityColors[p])
}

// Field renders a "Name: value" line
func Field(name, value string) string {
	return LabelStyle.Render(name+":") + " " + ValueStyle.Render(value)
}

// RenderCardLine renders a one-line card summary:
// "[x] Title  high  [bug] [ui]  due 2025-06-12  (id)"
func RenderCardLine(c *models.Card) string {
	var b strings.Builder
	if c.Completed {
		b.WriteString("[x] ")
	} else {
		b.WriteString("[ ] ")
	}
	b.WriteString(c.Title)
	if c.Priority != models.PriorityNone {
		b.WriteString("  " + RenderPriority(c.Priority))
	}
	for _, l := range c.Labels {
		b.WriteString(" " + RenderLabelChip(l))
	}
	if c.DueDate != nil {
		b.WriteString("  due " + c.DueDate.Format("2006-01-02"))
	}
	b.WriteString("  " + SubtitleStyle.Render("("+c.ID+")"))
	return b.String()
}

// RenderCardDetail renders every field of a card inside a bordered box
func RenderCardDetail(c *models.Card, listTitle string) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(c.Title) + "\n")
	b.WriteString(SubtitleStyle.Render(c.ID) + "\n\n")
	b.WriteString(Field("List", listTitle) + "\n")
	b.WriteString(Field("Priority", RenderPriority(c.Priority)) + "\n")
	status := "open"
	if c.Completed {
		status = "completed"
	}
	b.WriteString(Field("Status", status) + "\n")
	if c.DueDate != nil {
		b.WriteString(Field("Due", c.DueDate.Format("2006-01-02 15:04")) + "\n")
	}
	if len(c.Assignees) > 0 {
		b.WriteString(Field("Assignees", strings.Join(c.Assignees, ", ")) + "\n")
	}
	if len(c.Labels) > 0 {
		chips := make([]string, len(c.Labels))
		for i, l := range c.Labels {
			chips[i] = RenderLabelChip(l)
		}
		b.WriteString(Field("Labels", strings.Join(chips, " ")) + "\n")
	}
	if c.Description != "" {
		b.WriteString(SectionStyle.Render("Description") + "\n")
		b.WriteString(c.Description + "\n")
	}
	if len(c.Checklist) > 0 {
		done, total := c.ChecklistProgress()
		b.WriteString(SectionStyle.Render(fmt.Sprintf("Checklist %d/%d", done, total)) + "\n")
		for _, item := range c.Checklist {
			mark := "[ ]"
			if item.Completed {
				mark = "[x]"
			}
			b.WriteString(mark + " " + item.Text + "\n")
		}
	}
	return RenderCard(strings.TrimRight(b.String(), "\n"))
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}

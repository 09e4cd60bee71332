// Package board holds all cli commands related to boards
// e.g., tablero board ...
package board

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli/styles"
	"github.com/thenoetrevino/tablero/internal/models"
)

// BoardCmd returns the board parent command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(RenameCmd())
	cmd.AddCommand(ViewCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// boardResult wraps a board with the message printed in human mode
type boardResult struct {
	*models.Board
	verb string
}

// Human implements cli.Humanizer
func (r *boardResult) Human() string {
	return fmt.Sprintf("✓ Board '%s' %s (ID: %s)", r.Title, r.verb, r.ID)
}

// boardsResult is the output of board list
type boardsResult []*models.Board

// IDs implements quiet mode output
func (r boardsResult) IDs() []string {
	ids := make([]string, len(r))
	for i, b := range r {
		ids[i] = b.ID
	}
	return ids
}

// Human implements cli.Humanizer
func (r boardsResult) Human() string {
	if len(r) == 0 {
		return "No boards yet. Create one with: tablero board create --title <title>"
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "TITLE", "VIEW", "UPDATED")
	for _, b := range r {
		t.Row(b.ID, b.Title, string(b.ViewMode), b.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return t.String()
}

// listView is a list with its ordered cards
type listView struct {
	*models.List
	Cards []*models.Card `json:"cards"`
}

// boardView is the output of board show
type boardView struct {
	*models.Board
	Lists  []listView      `json:"lists"`
	Labels []*models.Label `json:"labels"`
}

// Human implements cli.Humanizer
func (v *boardView) Human() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(v.Title))
	b.WriteString("  " + styles.SubtitleStyle.Render(v.ID) + "\n")
	if len(v.Labels) > 0 {
		chips := make([]string, len(v.Labels))
		for i, l := range v.Labels {
			chips[i] = styles.RenderLabelChip(*l)
		}
		b.WriteString(styles.Field("Labels", strings.Join(chips, " ")) + "\n")
	}
	for _, l := range v.Lists {
		b.WriteString("\n" + styles.SectionStyle.Render(fmt.Sprintf("%s (%d)", l.Title, len(l.Cards))))
		b.WriteString("  " + styles.SubtitleStyle.Render(l.ID) + "\n")
		if len(l.Cards) == 0 {
			b.WriteString(styles.SubtitleStyle.Render("  (empty)") + "\n")
			continue
		}
		for _, c := range l.Cards {
			b.WriteString("  " + styles.RenderCardLine(c) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Package label holds all cli commands related to labels
// e.g., tablero label ...
package label

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli/styles"
	"github.com/thenoetrevino/tablero/internal/models"
)

// LabelCmd returns the label parent command
func LabelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Manage labels",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(AttachCmd())
	cmd.AddCommand(DetachCmd())

	return cmd
}

// labelResult wraps a label with the message printed in human mode
type labelResult struct {
	*models.Label
	verb string
}

// Human implements cli.Humanizer
func (r *labelResult) Human() string {
	return fmt.Sprintf("✓ Label %s %s (ID: %s)", styles.RenderLabelChip(*r.Label), r.verb, r.ID)
}

// labelsResult is the output of label list
type labelsResult []*models.Label

// IDs implements quiet mode output
func (r labelsResult) IDs() []string {
	ids := make([]string, len(r))
	for i, l := range r {
		ids[i] = l.ID
	}
	return ids
}

// Human implements cli.Humanizer
func (r labelsResult) Human() string {
	if len(r) == 0 {
		return "No labels on this board"
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "NAME", "COLOR")
	for _, l := range r {
		t.Row(l.ID, styles.RenderLabelChip(*l), l.Color)
	}
	return t.String()
}

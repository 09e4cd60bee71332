// Package tutorial prints the getting-started guide
// e.g., tablero tutorial
package tutorial

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/export"
)

//go:embed tutorial.md
var tutorialContent string

// TutorialCmd returns the tutorial command
func TutorialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Show a walkthrough of the common workflows",
		Long: `Show a short guide to boards, lists, cards, labels and the dashboard.

Use --raw for the plain Markdown, e.g. to paste into notes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetBool("raw")
			width, _ := cmd.Flags().GetInt("width")
			out := tutorialContent
			if !raw {
				out = export.RenderMarkdown(tutorialContent, width)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().Bool("raw", false, "Print the Markdown source")
	cmd.Flags().Int("width", 80, "Rendered width in columns")

	return cmd
}

// Package list holds all cli commands related to lists
// e.g., tablero list ...
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/models"
)

// ListCmd returns the list parent command
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage the lists of a board",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(RenameCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// listResult wraps a list with the message printed in human mode
type listResult struct {
	*models.List
	verb string
}

// Human implements cli.Humanizer
func (r *listResult) Human() string {
	return fmt.Sprintf("✓ List '%s' %s (ID: %s, position %g)", r.Title, r.verb, r.ID, r.Position)
}

func addListFlag(cmd *cobra.Command) {
	cmd.Flags().String("list", "", "List ID (required)")
	_ = cmd.MarkFlagRequired("list")
}

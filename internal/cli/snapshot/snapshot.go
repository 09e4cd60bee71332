// Package snapshot holds the cli commands for snapshot files
// e.g., tablero snapshot ...
package snapshot

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/models"
)

// SnapshotCmd returns the snapshot parent command
func SnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save and inspect snapshot files",
		Long: `A snapshot file holds every board, list, card and label as compressed
CBOR. The dashboard can be computed from one with
'tablero dashboard --snapshot <file>'.`,
	}

	cmd.AddCommand(SaveCmd())
	cmd.AddCommand(InspectCmd())

	return cmd
}

// Counts is the size of a snapshot
type Counts struct {
	Boards int `json:"boards"`
	Lists  int `json:"lists"`
	Cards  int `json:"cards"`
	Labels int `json:"labels"`
}

func countsOf(s *models.Snapshot) Counts {
	return Counts{
		Boards: len(s.Boards),
		Lists:  len(s.Lists),
		Cards:  len(s.Cards),
		Labels: len(s.Labels),
	}
}

func (c Counts) String() string {
	return fmt.Sprintf("%d board(s), %d list(s), %d card(s), %d label(s)", c.Boards, c.Lists, c.Cards, c.Labels)
}

// fileInfo describes a snapshot file
type fileInfo struct {
	Path    string    `json:"path"`
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	Counts  Counts    `json:"counts"`

	verb string
}

// GetID returns the path for quiet mode
func (f *fileInfo) GetID() string { return f.Path }

// Human implements cli.Humanizer
func (f *fileInfo) Human() string {
	if f.verb != "" {
		return fmt.Sprintf("✓ Snapshot %s to %s: %s", f.verb, f.Path, f.Counts)
	}
	return fmt.Sprintf("%s\n  version:  %d\n  saved at: %s\n  contents: %s",
		f.Path, f.Version, f.SavedAt.Local().Format(time.RFC3339), f.Counts)
}

// Package cmd assembles the tablero command tree
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/board"
	"github.com/thenoetrevino/tablero/internal/cli/card"
	"github.com/thenoetrevino/tablero/internal/cli/dashboard"
	"github.com/thenoetrevino/tablero/internal/cli/label"
	"github.com/thenoetrevino/tablero/internal/cli/list"
	"github.com/thenoetrevino/tablero/internal/cli/serve"
	"github.com/thenoetrevino/tablero/internal/cli/snapshot"
	"github.com/thenoetrevino/tablero/internal/cli/styles"
	"github.com/thenoetrevino/tablero/internal/cli/tutorial"
	"github.com/thenoetrevino/tablero/internal/cli/use"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/logging"
)

// NewRootCmd builds the full command tree
func NewRootCmd() *cobra.Command {
	var logFile io.Closer

	root := &cobra.Command{
		Use:   "tablero",
		Short: "Tablero - kanban boards with an analytics dashboard",
		Long: `Tablero keeps kanban boards of ordered lists and cards, and derives a
dashboard of velocity, workload, bottlenecks and forecasts from them.

Every command accepts --json for scripts and --quiet for bare ids.
Run 'tablero tutorial' for a walkthrough.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if logFile, err = logging.Init(cfg.Logging.Dir, cfg.Logging.Level); err != nil {
				// keep going with the default logger
				slog.Warn("failed to initialize file logging", "error", err)
			}
			styles.Init(cfg.ColorScheme)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				_ = logFile.Close()
			}
		},
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	})

	root.AddGroup(
		&cobra.Group{ID: "boards", Title: "Boards:"},
		&cobra.Group{ID: "dashboard", Title: "Dashboard:"},
	)
	for _, c := range []*cobra.Command{
		board.BoardCmd(),
		list.ListCmd(),
		card.CardCmd(),
		label.LabelCmd(),
		board.SeedCmd(),
		use.UseCmd(),
	} {
		c.GroupID = "boards"
		root.AddCommand(c)
	}
	for _, c := range []*cobra.Command{
		dashboard.DashboardCmd(),
		snapshot.SnapshotCmd(),
		serve.ServeCmd(),
	} {
		c.GroupID = "dashboard"
		root.AddCommand(c)
	}
	root.AddCommand(tutorial.TutorialCmd())

	return root
}

// Execute runs the root command. Errors already reported by a command
// handler are not printed again.
func Execute(ctx context.Context) error {
	err := NewRootCmd().ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *cli.CommandError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

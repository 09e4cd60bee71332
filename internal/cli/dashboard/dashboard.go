// Package dashboard holds the cli commands for the cross-board dashboard
// e.g., tablero dashboard ...
package dashboard

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/analytics"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	"github.com/thenoetrevino/tablero/internal/export"
	"github.com/thenoetrevino/tablero/internal/snapshot"
)

// DashboardCmd returns the dashboard command. Run bare it prints the
// metrics report; the subcommands cover the personal view, exports and
// bulk actions.
func DashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show analytics across every board",
		Long: `Show the dashboard report: summary counts, velocity, workload,
bottlenecks, at-risk cards, forecast and recommendations.

Examples:
  tablero dashboard
  tablero dashboard --board=<board-id> --range=week
  tablero dashboard --assignee=ana --json
  tablero dashboard --snapshot=backup.tablero
`,
		RunE: handler.Command(handler.HandlerFunc(showMetrics), nil),
	}

	addScopeFlags(cmd)
	cmd.Flags().String("snapshot", "", "Read a snapshot file instead of the database")
	cmd.Flags().Int("width", 100, "Report width in columns")
	cli.AddOutputFlags(cmd)

	cmd.AddCommand(MyTasksCmd())
	cmd.AddCommand(ExportCmd())
	cmd.AddCommand(CompleteCmd())
	cmd.AddCommand(RescheduleCmd())
	cmd.AddCommand(ClaimCmd())

	return cmd
}

// metricsView renders a metrics bundle as the styled report
type metricsView struct {
	*analytics.Metrics
	width  int
	layout export.Layout
}

// Human implements cli.Humanizer
func (v *metricsView) Human() string {
	doc := export.FromMetrics(v.Metrics)
	doc.Layout = v.layout
	return doc.RenderTerminal(v.width)
}

func addScopeFlags(cmd *cobra.Command) {
	cmd.Flags().String("board", "", "Only this board")
	cmd.Flags().String("assignee", "", "Only cards assigned to this person")
	cmd.Flags().String("range", "", "Date range: today, week, month or all (default from config)")
}

// scopeFromArgs reads the scope flags, falling back to the configured range
func scopeFromArgs(args *handler.Arguments, c *cli.CLI) (analytics.Scope, error) {
	dr := c.App.Config.Dashboard.DateRange()
	if raw := args.GetString("range", ""); raw != "" {
		parsed, err := analytics.ParseDateRange(raw)
		if err != nil {
			return analytics.Scope{}, err
		}
		dr = parsed
	}
	return analytics.Scope{
		BoardID:   args.GetString("board", ""),
		Assignee:  args.GetString("assignee", ""),
		DateRange: dr,
	}, nil
}

func showMetrics(ctx context.Context, args *handler.Arguments) (any, error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	scope, err := scopeFromArgs(args, cliInstance)
	if err != nil {
		return nil, err
	}
	m, err := metrics(ctx, cliInstance, scope, args.GetString("snapshot", ""))
	if err != nil {
		return nil, err
	}
	return &metricsView{
		Metrics: m,
		width:   args.GetInt("width", 100),
		layout:  cliInstance.App.Config.Dashboard.ReportLayout(),
	}, nil
}

// metrics computes the bundle from the database, or from a snapshot file
// when path is set
func metrics(ctx context.Context, c *cli.CLI, scope analytics.Scope, path string) (*analytics.Metrics, error) {
	if path == "" {
		return c.App.DashboardService.Metrics(ctx, scope)
	}
	file, err := snapshot.Load(path)
	if err != nil {
		return nil, err
	}
	return analytics.Compute(&file.Snapshot, scope, c.App.Clock.Now(), c.App.User), nil
}

package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/analytics"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	"github.com/thenoetrevino/tablero/internal/cli/styles"
	"github.com/thenoetrevino/tablero/internal/filter"
	"github.com/thenoetrevino/tablero/internal/models"
)

// MyTasksCmd returns the dashboard my-tasks subcommand
func MyTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "my-tasks",
		Short: "Show the cards assigned to you",
		Long: `Show the active user's cards grouped by due date, plus recently
completed and unassigned cards. The active user comes from the config
file, TABLERO_USER, or the OS account. The --pool-* flags narrow the
unassigned cards only.

Examples:
  tablero dashboard my-tasks
  tablero dashboard my-tasks --quick=overdue
  tablero dashboard my-tasks --search=api --json
  tablero dashboard my-tasks --pool-due=no-date --pool-priority=high
`,
		RunE: handler.Command(handler.HandlerFunc(myTasks), nil),
	}

	cmd.Flags().String("search", "", "Match title or description")
	cmd.Flags().String("quick", "", "Quick filter: all, overdue, high-priority, no-due-date, completed (default from config)")
	cmd.Flags().String("pool-board", "", "Only unassigned cards on this board")
	cmd.Flags().String("pool-search", "", "Only unassigned cards matching this text")
	cmd.Flags().StringSlice("pool-priority", nil, "Only unassigned cards with these priorities")
	cmd.Flags().StringSlice("pool-label", nil, "Only unassigned cards with any of these label IDs")
	cmd.Flags().String("pool-due", string(filter.DueAll), "Unassigned due date filter: all, overdue, today, week, has-date, no-date")
	cli.AddOutputFlags(cmd)

	return cmd
}

// tasksView renders the personal view section by section
type tasksView struct {
	*analytics.MyTasks
}

// Human implements cli.Humanizer
func (v *tasksView) Human() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("My tasks"))
	b.WriteString("  " + styles.SubtitleStyle.Render(fmt.Sprintf("%s, %d open", v.User, v.OpenCount)) + "\n")

	sections := []struct {
		title string
		cards []models.Card
	}{
		{"Overdue", v.Overdue},
		{"Due today", v.DueToday},
		{"Upcoming", v.Upcoming},
		{"No due date", v.NoDate},
		{"Completed", v.Completed},
		{"Recently completed", v.RecentlyCompleted},
		{"Unassigned", v.Unassigned},
	}
	for _, s := range sections {
		if len(s.cards) == 0 {
			continue
		}
		b.WriteString(styles.SectionStyle.Render(fmt.Sprintf("%s (%d)", s.title, len(s.cards))) + "\n")
		for i := range s.cards {
			b.WriteString("  " + styles.RenderCardLine(&s.cards[i]) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func myTasks(ctx context.Context, args *handler.Arguments) (any, error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	quick := cliInstance.App.Config.Dashboard.QuickFilter()
	if raw := args.GetString("quick", ""); raw != "" {
		if quick, err = filter.ParseQuickFilter(raw); err != nil {
			return nil, err
		}
	}

	pool, err := poolFromArgs(args)
	if err != nil {
		return nil, err
	}

	tasks, err := cliInstance.App.DashboardService.MyTasks(ctx, args.GetString("search", ""), quick, pool)
	if err != nil {
		return nil, err
	}
	return &tasksView{MyTasks: tasks}, nil
}

func poolFromArgs(args *handler.Arguments) (analytics.PoolFilter, error) {
	pool := analytics.PoolFilter{
		BoardID:  args.GetString("pool-board", ""),
		Search:   args.GetString("pool-search", ""),
		LabelIDs: args.GetStringSlice("pool-label", nil),
	}
	for _, raw := range args.GetStringSlice("pool-priority", nil) {
		p, err := models.ParsePriority(raw)
		if err != nil {
			return pool, err
		}
		pool.Priorities = append(pool.Priorities, p)
	}
	due, err := filter.ParseDueDateFilter(args.GetString("pool-due", string(filter.DueAll)))
	if err != nil {
		return pool, err
	}
	pool.Due = due
	return pool, nil
}

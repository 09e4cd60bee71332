package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	dashboardservice "github.com/thenoetrevino/tablero/internal/services/dashboard"
)

// CompleteCmd returns the dashboard complete subcommand
func CompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Mark several cards completed",
		Long: `Mark cards completed across any number of boards. Unknown ids are
reported as missing.

Examples:
  tablero dashboard complete --card=<id> --card=<id>
  tablero card list --due=overdue --quiet | xargs -I{} tablero dashboard complete --card={}
`,
		RunE: handler.Command(handler.HandlerFunc(completeCards), requireCards),
	}

	cmd.Flags().StringSlice("card", nil, "Card IDs (repeatable)")
	cli.AddOutputFlags(cmd)

	return cmd
}

// RescheduleCmd returns the dashboard reschedule subcommand
func RescheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reschedule",
		Short: "Reschedule several cards relative to today",
		Long: `Set the due date of each card to the start of today plus --days.

Examples:
  tablero dashboard reschedule --card=<id> --days=3
  tablero dashboard reschedule --card=<id> --card=<id> --days=-1
`,
		RunE: handler.Command(handler.HandlerFunc(rescheduleCards), func(cmd *cobra.Command) error {
			if err := requireCards(cmd); err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				return errors.New("--days is required")
			}
			return nil
		}),
	}

	cmd.Flags().StringSlice("card", nil, "Card IDs (repeatable)")
	cmd.Flags().Int("days", 0, "Days from today (negative is in the past)")
	cli.AddOutputFlags(cmd)

	return cmd
}

// ClaimCmd returns the dashboard claim subcommand
func ClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Assign a card to yourself",
		RunE:  handler.SimpleCommand(handler.HandlerFunc(claimCard)),
	}

	cmd.Flags().String("card", "", "Card ID (required)")
	_ = cmd.MarkFlagRequired("card")
	cli.AddOutputFlags(cmd)

	return cmd
}

// bulkView renders a bulk action result
type bulkView struct {
	*dashboardservice.BulkResult
	verb string
}

// IDs implements quiet mode output
func (v *bulkView) IDs() []string { return v.Updated }

// Human implements cli.Humanizer
func (v *bulkView) Human() string {
	out := fmt.Sprintf("✓ %d card(s) %s", len(v.Updated), v.verb)
	if len(v.Missing) > 0 {
		out += fmt.Sprintf("\n  not found: %s", strings.Join(v.Missing, ", "))
	}
	return out
}

func requireCards(cmd *cobra.Command) error {
	if ids, _ := cmd.Flags().GetStringSlice("card"); len(ids) == 0 {
		return errors.New("at least one --card is required")
	}
	return nil
}

func completeCards(ctx context.Context, args *handler.Arguments) (any, error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	res, err := cliInstance.App.DashboardService.CompleteCards(ctx, args.GetStringSlice("card", nil))
	if err != nil {
		return nil, err
	}
	return &bulkView{BulkResult: res, verb: "completed"}, nil
}

func rescheduleCards(ctx context.Context, args *handler.Arguments) (any, error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	days := args.GetInt("days", 0)
	res, err := cliInstance.App.DashboardService.RescheduleCards(ctx, args.GetStringSlice("card", nil), days)
	if err != nil {
		return nil, err
	}
	return &bulkView{BulkResult: res, verb: fmt.Sprintf("rescheduled to today %+d day(s)", days)}, nil
}

func claimCard(ctx context.Context, args *handler.Arguments) (any, error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	cardID := args.GetString("card", "")
	if err := cliInstance.App.DashboardService.ClaimCard(ctx, cardID); err != nil {
		return nil, err
	}
	return &cli.UpdateResult{
		ID:      cardID,
		Kind:    "Card",
		Message: "assigned to " + cliInstance.App.User.ActiveUserID,
	}, nil
}

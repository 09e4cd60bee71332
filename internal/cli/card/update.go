package card

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	"github.com/thenoetrevino/tablero/internal/models"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
)

// doneMarker prefixes a --check item that starts completed
const doneMarker = "[x] "

// UpdateCmd returns the card update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change the fields of a card",
		Long: `Change any subset of a card's fields. Unset flags keep their value.

--label, --assignee and --check replace the whole collection; pass the
matching --clear-* flag to empty it. A --check item starting with "[x] " is
created completed. --toggle flips one checklist item by id.

Examples:
  tablero card update --card=<card-id> --complete
  tablero card update --card=<card-id> --priority=high --due=2025-07-01
  tablero card update --card=<card-id> --label=<label-id> --label=<label-id>
  tablero card update --card=<card-id> --check="write tests" --check="[x] spike"
  tablero card update --card=<card-id> --clear-due --clear-assignees
`,
		RunE: handler.Command(handler.HandlerFunc(updateCard), parseUpdateFlags),
	}

	addCardFlag(cmd)
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().Bool("complete", false, "Mark the card completed")
	cmd.Flags().Bool("reopen", false, "Mark the card open again")
	cmd.Flags().String("priority", "", "Priority: low, medium, high or none")
	cmd.Flags().Bool("clear-priority", false, "Remove the priority")
	cmd.Flags().String("due", "", "Due date")
	cmd.Flags().Bool("clear-due", false, "Remove the due date")
	cmd.Flags().StringSlice("label", nil, "Label IDs to attach (replaces current labels)")
	cmd.Flags().Bool("clear-labels", false, "Detach every label")
	cmd.Flags().StringSlice("assignee", nil, "Assignees (replaces current assignees)")
	cmd.Flags().Bool("clear-assignees", false, "Remove every assignee")
	cmd.Flags().StringArray("check", nil, "Checklist item text (replaces the checklist)")
	cmd.Flags().StringSlice("toggle", nil, "Checklist item IDs to flip")
	cmd.Flags().Bool("clear-checklist", false, "Remove every checklist item")
	cli.AddOutputFlags(cmd)

	return cmd
}

func updateCard(ctx context.Context, args *handler.Arguments) (any, error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	svc := cliInstance.App.BoardService
	cardID := args.GetString("card", "")
	current, err := loadCard(ctx, svc, cardID)
	if err != nil {
		return nil, err
	}

	update, err := buildUpdate(args, current, cliInstance)
	if err != nil {
		return nil, err
	}
	if err := svc.UpdateCard(ctx, cardID, update); err != nil {
		return nil, fmt.Errorf("card update error: %w", err)
	}

	c, _ := svc.Card(cardID)
	return &cardResult{Card: c, verb: "updated"}, nil
}

func buildUpdate(args *handler.Arguments, current *models.Card, c *cli.CLI) (boardservice.CardUpdate, error) {
	p := handler.NewFlagParser(args.GetCmd())
	update := boardservice.CardUpdate{
		Title:         args.GetStringPtr("title"),
		Description:   args.GetStringPtr("description"),
		ClearDueDate:  args.GetBool("clear-due"),
		ClearPriority: args.GetBool("clear-priority"),
	}

	switch {
	case args.GetBool("complete"):
		update.Completed = boolPtr(true)
	case args.GetBool("reopen"):
		update.Completed = boolPtr(false)
	}

	if args.Changed("priority") {
		priority, err := p.ParsePriority("priority")
		if err != nil {
			return update, err
		}
		update.Priority = &priority
	}
	if args.Changed("due") {
		due, err := p.ParseDueDate("due", c.App.Clock.Now())
		if err != nil {
			return update, err
		}
		update.DueDate = due
	}

	switch {
	case args.GetBool("clear-labels"):
		update.LabelIDs = []string{}
	case args.Changed("label"):
		update.LabelIDs = args.GetStringSlice("label", nil)
	}
	switch {
	case args.GetBool("clear-assignees"):
		update.Assignees = []string{}
	case args.Changed("assignee"):
		update.Assignees = args.GetStringSlice("assignee", nil)
	}

	switch {
	case args.GetBool("clear-checklist"):
		update.Checklist = []models.ChecklistItem{}
	case args.Changed("check"):
		update.Checklist = checklistFromFlags(args.GetStringSlice("check", nil))
	}
	if toggles := args.GetStringSlice("toggle", nil); len(toggles) > 0 {
		items, err := toggleItems(current.Checklist, update.Checklist, toggles)
		if err != nil {
			return update, err
		}
		update.Checklist = items
	}

	return update, nil
}

func checklistFromFlags(values []string) []models.ChecklistItem {
	items := make([]models.ChecklistItem, 0, len(values))
	for _, v := range values {
		item := models.ChecklistItem{Text: v}
		if rest, ok := strings.CutPrefix(v, doneMarker); ok {
			item.Text = rest
			item.Completed = true
		}
		items = append(items, item)
	}
	return items
}

// toggleItems flips the named items of the checklist being written, or of
// the current one when the update leaves the checklist alone
func toggleItems(current, next []models.ChecklistItem, ids []string) ([]models.ChecklistItem, error) {
	base := next
	if base == nil {
		base = current
	}
	items := slices.Clone(base)
	for _, id := range ids {
		i := slices.IndexFunc(items, func(it models.ChecklistItem) bool { return it.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("%w: no checklist item %q", cli.ErrUsage, id)
		}
		items[i].Completed = !items[i].Completed
	}
	return items, nil
}

func parseUpdateFlags(cmd *cobra.Command) error {
	f := cmd.Flags()
	pairs := [][2]string{
		{"complete", "reopen"},
		{"priority", "clear-priority"},
		{"due", "clear-due"},
		{"label", "clear-labels"},
		{"assignee", "clear-assignees"},
		{"check", "clear-checklist"},
	}
	for _, p := range pairs {
		if f.Changed(p[0]) && f.Changed(p[1]) {
			return fmt.Errorf("--%s and --%s cannot be combined", p[0], p[1])
		}
	}

	changed := false
	f.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "card", "json", "quiet":
		default:
			changed = true
		}
	})
	if !changed {
		return errors.New("nothing to update: pass at least one field flag")
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }

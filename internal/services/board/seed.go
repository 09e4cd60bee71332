package board

import (
	"context"
	"fmt"
	"time"

	"github.com/thenoetrevino/tablero/internal/clock"
	"github.com/thenoetrevino/tablero/internal/models"
)

type seedCard struct {
	list      int
	title     string
	priority  models.Priority
	dueInDays *int
	label     int // index into seedLabels, -1 for none
	checklist []string
	done      int // checklist items already done
}

var seedLabels = []struct{ name, color string }{
	{"Bug", "#EF4444"},
	{"Feature", "#3B82F6"},
	{"Enhancement", "#10B981"},
	{"Documentation", "#F59E0B"},
	{"Testing", "#8B5CF6"},
	{"Urgent", "#DC2626"},
}

var seedLists = []string{"Backlog", "Sprint", "In Progress", "Testing", "Done"}

func days(n int) *int { return &n }

var seedCards = []seedCard{
	{list: 0, title: "Refactor user service", priority: models.PriorityMedium, label: 2},
	{list: 0, title: "Write API reference", priority: models.PriorityLow, label: 3, checklist: []string{"Outline endpoints", "Document errors", "Publish"}},
	{list: 0, title: "Evaluate search backends", label: -1},
	{list: 1, title: "Fix login redirect", priority: models.PriorityHigh, dueInDays: days(-2), label: 0},
	{list: 1, title: "Add CSV import", priority: models.PriorityMedium, dueInDays: days(5), label: 1, checklist: []string{"Parse headers", "Map columns", "Preview", "Import"}, done: 1},
	{list: 2, title: "Rate limit public API", priority: models.PriorityHigh, dueInDays: days(1), label: 5},
	{list: 2, title: "Dark mode", priority: models.PriorityLow, label: 1, checklist: []string{"Palette", "Toggle", "Persist choice"}, done: 2},
	{list: 3, title: "Regression suite for billing", priority: models.PriorityMedium, dueInDays: days(0), label: 4},
	{list: 4, title: "Upgrade database driver", label: 2},
	{list: 4, title: "Release notes for 1.2", label: 3},
}

// Seed fills a board with demo lists, labels and cards. Lists and labels
// that already exist by name are reused.
func (s *service) Seed(ctx context.Context, boardID string) error {
	if err := s.LoadBoard(ctx, boardID); err != nil {
		return err
	}

	labelIDs := make([]string, len(seedLabels))
	existingLabels := make(map[string]string)
	for _, l := range s.Labels(boardID) {
		existingLabels[l.Name] = l.ID
	}
	for i, sl := range seedLabels {
		if id, ok := existingLabels[sl.name]; ok {
			labelIDs[i] = id
			continue
		}
		l, err := s.CreateLabel(ctx, boardID, sl.name, sl.color)
		if err != nil {
			return fmt.Errorf("failed to seed label %q: %w", sl.name, err)
		}
		labelIDs[i] = l.ID
	}

	listIDs := make([]string, len(seedLists))
	existingLists := make(map[string]string)
	for _, l := range s.Lists(boardID) {
		existingLists[l.Title] = l.ID
	}
	for i, title := range seedLists {
		if id, ok := existingLists[title]; ok {
			listIDs[i] = id
			continue
		}
		l, err := s.CreateList(ctx, boardID, title)
		if err != nil {
			return fmt.Errorf("failed to seed list %q: %w", title, err)
		}
		listIDs[i] = l.ID
	}

	today := clock.StartOfDay(s.clock.Now())
	for _, sc := range seedCards {
		req := CreateCardRequest{ListID: listIDs[sc.list], Title: sc.title, Priority: sc.priority}
		if sc.dueInDays != nil {
			due := today.AddDate(0, 0, *sc.dueInDays).Add(17 * time.Hour)
			req.DueDate = &due
		}
		c, err := s.CreateCard(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to seed card %q: %w", sc.title, err)
		}

		update := CardUpdate{}
		if sc.label >= 0 {
			update.LabelIDs = []string{labelIDs[sc.label]}
		}
		if len(sc.checklist) > 0 {
			for i, text := range sc.checklist {
				update.Checklist = append(update.Checklist, models.ChecklistItem{Text: text, Completed: i < sc.done})
			}
		}
		if sc.list == len(seedLists)-1 {
			completed := true
			update.Completed = &completed
		}
		if err := s.UpdateCard(ctx, c.ID, update); err != nil {
			return fmt.Errorf("failed to seed card %q: %w", sc.title, err)
		}
	}
	return nil
}

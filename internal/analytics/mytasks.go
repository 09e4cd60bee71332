package analytics

import (
	"cmp"
	"slices"
	"time"

	"github.com/thenoetrevino/tablero/internal/clock"
	"github.com/thenoetrevino/tablero/internal/filter"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/types"
)

const (
	// RecentlyCompletedDays bounds the recently completed section
	RecentlyCompletedDays = 7
	// RecentlyCompletedLimit caps the recently completed section
	RecentlyCompletedLimit = 10
)

// TaskGroup is a titled group of cards
type TaskGroup struct {
	Key   string        `json:"key" yaml:"key"`
	Title string        `json:"title" yaml:"title"`
	Cards []models.Card `json:"cards" yaml:"cards"`
}

// MyTasks is the personal task view for the active user
type MyTasks struct {
	User              string        `json:"user" yaml:"user"`
	Overdue           []models.Card `json:"overdue" yaml:"overdue"`
	DueToday          []models.Card `json:"due_today" yaml:"due_today"`
	Upcoming          []models.Card `json:"upcoming" yaml:"upcoming"`
	NoDate            []models.Card `json:"no_date" yaml:"no_date"`
	ByPriority        []TaskGroup   `json:"by_priority" yaml:"by_priority"`
	ByBoard           []TaskGroup   `json:"by_board" yaml:"by_board"`
	RecentlyCompleted []models.Card `json:"recently_completed" yaml:"recently_completed"`
	Completed         []models.Card `json:"completed" yaml:"completed"`
	Unassigned        []models.Card `json:"unassigned" yaml:"unassigned"`
	OpenCount         int           `json:"open_count" yaml:"open_count"`
}

// PoolFilter narrows the unassigned pool. The zero value keeps every card.
type PoolFilter struct {
	BoardID    string               `json:"board_id,omitempty"`
	Search     string               `json:"search,omitempty"`
	Priorities []models.Priority    `json:"priorities,omitempty"`
	LabelIDs   []string             `json:"label_ids,omitempty"`
	Due        filter.DueDateFilter `json:"due,omitempty"`
}

func (p PoolFilter) match(c *models.Card, lists map[string]*models.List, now time.Time) bool {
	if p.BoardID != "" {
		if l, ok := lists[c.ListID]; !ok || l.BoardID != p.BoardID {
			return false
		}
	}
	return filter.Matches(c, filter.Filters{
		SearchQuery:        p.Search,
		SelectedPriorities: p.Priorities,
		SelectedLabels:     p.LabelIDs,
		ShowCompleted:      true,
		DueDate:            p.Due,
	}, now)
}

// BuildMyTasks derives the personal view. Cards belong to the user when
// they list the active user as an assignee; with no active user (or the
// "unassigned" user) the view shows cards without assignees. The search
// query and quick filter narrow the open sections only. The completed
// quick filter moves matching done cards into Completed; they never count
// as open. pool narrows the unassigned section.
func BuildMyTasks(snap *models.Snapshot, user UserContext, query string, quick filter.QuickFilter, pool PoolFilter, now time.Time) *MyTasks {
	mine := func(c *models.Card) bool {
		if user.ActiveUserID == "" || user.ActiveUserID == types.Unassigned {
			return len(c.Assignees) == 0
		}
		return c.IsAssignedTo(user.ActiveUserID)
	}

	today := clock.StartOfDay(now)
	endOfToday := clock.EndOfDay(now)
	recentCutoff := now.Add(-RecentlyCompletedDays * clock.Day)

	mt := &MyTasks{
		User:              user.ActiveUserID,
		Overdue:           []models.Card{},
		DueToday:          []models.Card{},
		Upcoming:          []models.Card{},
		NoDate:            []models.Card{},
		RecentlyCompleted: []models.Card{},
		Completed:         []models.Card{},
		Unassigned:        []models.Card{},
	}

	lists := snap.ListIndex()
	var open []models.Card
	for i := range snap.Cards {
		c := &snap.Cards[i]
		if !c.Completed && len(c.Assignees) == 0 && pool.match(c, lists, now) {
			mt.Unassigned = append(mt.Unassigned, *c)
		}
		if !mine(c) {
			continue
		}
		if c.Completed {
			if !c.UpdatedAt.Before(recentCutoff) {
				mt.RecentlyCompleted = append(mt.RecentlyCompleted, *c)
			}
			if quick == filter.QuickCompleted && filter.MatchesSearch(c, query) {
				mt.Completed = append(mt.Completed, *c)
			}
			continue
		}
		if !filter.MatchesSearch(c, query) || !quick.Match(c, now) {
			continue
		}
		open = append(open, *c)
	}

	byDue := func(a, b models.Card) int {
		if c := a.DueDate.Compare(*b.DueDate); c != 0 {
			return c
		}
		return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
	}
	for _, c := range open {
		switch {
		case c.DueDate == nil:
			mt.NoDate = append(mt.NoDate, c)
		case c.DueDate.Before(today):
			mt.Overdue = append(mt.Overdue, c)
		case !c.DueDate.After(endOfToday):
			mt.DueToday = append(mt.DueToday, c)
		default:
			mt.Upcoming = append(mt.Upcoming, c)
		}
	}
	slices.SortStableFunc(mt.Overdue, byDue)
	slices.SortStableFunc(mt.DueToday, byDue)
	slices.SortStableFunc(mt.Upcoming, byDue)
	slices.SortStableFunc(mt.NoDate, func(a, b models.Card) int {
		return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
	})

	slices.SortStableFunc(mt.RecentlyCompleted, func(a, b models.Card) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	if len(mt.RecentlyCompleted) > RecentlyCompletedLimit {
		mt.RecentlyCompleted = mt.RecentlyCompleted[:RecentlyCompletedLimit]
	}
	slices.SortStableFunc(mt.Completed, func(a, b models.Card) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	mt.OpenCount = len(open)
	mt.ByPriority = groupByPriority(open)
	mt.ByBoard = groupByBoard(snap, lists, open)
	return mt
}

func groupByPriority(cards []models.Card) []TaskGroup {
	groups := []TaskGroup{}
	for _, pr := range models.Priorities {
		var members []models.Card
		for _, c := range cards {
			if c.Priority == pr {
				members = append(members, c)
			}
		}
		if len(members) == 0 {
			continue
		}
		groups = append(groups, TaskGroup{Key: pr.String(), Title: pr.String(), Cards: members})
	}
	return groups
}

func groupByBoard(snap *models.Snapshot, lists map[string]*models.List, cards []models.Card) []TaskGroup {
	groups := []TaskGroup{}
	for _, b := range snap.Boards {
		var members []models.Card
		for _, c := range cards {
			if l, ok := lists[c.ListID]; ok && l.BoardID == b.ID {
				members = append(members, c)
			}
		}
		if len(members) == 0 {
			continue
		}
		groups = append(groups, TaskGroup{Key: b.ID, Title: b.Title, Cards: members})
	}
	return groups
}

// Package dashboard serves the cross-board views: it reads a snapshot of
// every board from storage, runs the analytics over it, and routes the
// dashboard's bulk actions back through the board engine.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/thenoetrevino/tablero/internal/analytics"
	"github.com/thenoetrevino/tablero/internal/clock"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/export"
	"github.com/thenoetrevino/tablero/internal/filter"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/services/board"
	"github.com/thenoetrevino/tablero/internal/types"
)

// MaxRescheduleDays bounds RescheduleCards offsets in either direction
const MaxRescheduleDays = 365

// Service defines dashboard operations
type Service interface {
	User() analytics.UserContext
	Snapshot(ctx context.Context) (*models.Snapshot, error)
	Metrics(ctx context.Context, scope analytics.Scope) (*analytics.Metrics, error)
	MyTasks(ctx context.Context, query string, quick filter.QuickFilter, pool analytics.PoolFilter) (*analytics.MyTasks, error)
	Export(ctx context.Context, scope analytics.Scope) (*export.Document, error)

	// Bulk actions
	CompleteCards(ctx context.Context, ids []string) (*BulkResult, error)
	RescheduleCards(ctx context.Context, ids []string, days int) (*BulkResult, error)
	ClaimCard(ctx context.Context, id string) error
}

// BulkResult reports which cards a bulk action touched
type BulkResult struct {
	Updated []string `json:"updated"`
	Missing []string `json:"missing"`
}

type service struct {
	repo   database.DataStore
	boards board.Service
	user   analytics.UserContext
	clock  clock.Clock
}

// NewService creates a dashboard service reading from repo and writing
// through boards
func NewService(repo database.DataStore, boards board.Service, user analytics.UserContext, clk clock.Clock) Service {
	if clk == nil {
		clk = clock.Real()
	}
	return &service{repo: repo, boards: boards, user: user, clock: clk}
}

// User returns the active user context
func (s *service) User() analytics.UserContext {
	return s.user
}

// Snapshot reads every board, list, card and label from storage
func (s *service) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	snap, err := database.LoadSnapshot(ctx, s.repo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotFailure, err)
	}
	return snap, nil
}

// Metrics computes the dashboard bundle for scope
func (s *service) Metrics(ctx context.Context, scope analytics.Scope) (*analytics.Metrics, error) {
	scope, err := normalizeScope(scope)
	if err != nil {
		return nil, err
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Compute(snap, scope, s.clock.Now(), s.user), nil
}

// MyTasks builds the personal task view for the active user
func (s *service) MyTasks(ctx context.Context, query string, quick filter.QuickFilter, pool analytics.PoolFilter) (*analytics.MyTasks, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.BuildMyTasks(snap, s.user, query, quick, pool, s.clock.Now()), nil
}

// Export computes the metrics for scope and wraps them in a report
func (s *service) Export(ctx context.Context, scope analytics.Scope) (*export.Document, error) {
	m, err := s.Metrics(ctx, scope)
	if err != nil {
		return nil, err
	}
	return export.FromMetrics(m), nil
}

// CompleteCards marks every card in ids completed
func (s *service) CompleteCards(ctx context.Context, ids []string) (*BulkResult, error) {
	done := true
	return s.bulk(ctx, ids, func(*models.Card) board.CardUpdate {
		return board.CardUpdate{Completed: &done}
	})
}

// RescheduleCards sets the due date of every card in ids to the start of
// today plus days
func (s *service) RescheduleCards(ctx context.Context, ids []string, days int) (*BulkResult, error) {
	if days < -MaxRescheduleDays || days > MaxRescheduleDays {
		return nil, ErrInvalidDays
	}
	due := clock.StartOfDay(s.clock.Now()).AddDate(0, 0, days)
	return s.bulk(ctx, ids, func(*models.Card) board.CardUpdate {
		return board.CardUpdate{DueDate: &due}
	})
}

// ClaimCard adds the active user to a card's assignees
func (s *service) ClaimCard(ctx context.Context, id string) error {
	who := s.user.ActiveUserID
	if who == "" || who == types.Unassigned {
		return ErrNoActiveUser
	}
	res, err := s.bulk(ctx, []string{id}, func(c *models.Card) board.CardUpdate {
		return board.CardUpdate{Assignees: append(slices.Clone(c.Assignees), who)}
	})
	if err != nil {
		return err
	}
	if len(res.Missing) > 0 {
		return board.ErrCardNotFound
	}
	return nil
}

// bulk loads the board of each card and applies the update built for it.
// Unknown ids are reported as missing; storage failures are joined.
func (s *service) bulk(ctx context.Context, ids []string, update func(*models.Card) board.CardUpdate) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, ErrNoCards
	}

	res := &BulkResult{Updated: []string{}, Missing: []string{}}
	var errs []error
	for _, id := range ids {
		if _, err := s.boards.LoadBoardForCard(ctx, id); err != nil {
			if errors.Is(err, board.ErrCardNotFound) {
				res.Missing = append(res.Missing, id)
				continue
			}
			errs = append(errs, err)
			continue
		}
		c, ok := s.boards.Card(id)
		if !ok {
			res.Missing = append(res.Missing, id)
			continue
		}
		if err := s.boards.UpdateCard(ctx, id, update(c)); err != nil {
			errs = append(errs, err)
			if !errors.Is(err, board.ErrPersistence) {
				continue
			}
		}
		res.Updated = append(res.Updated, id)
	}

	if len(res.Missing) > 0 {
		slog.Debug("bulk action skipped unknown cards", "missing", res.Missing)
	}
	return res, errors.Join(errs...)
}

func normalizeScope(scope analytics.Scope) (analytics.Scope, error) {
	r, err := analytics.ParseDateRange(string(scope.DateRange))
	if err != nil {
		return scope, fmt.Errorf("%w: %w", ErrInvalidScope, err)
	}
	scope.DateRange = r
	return scope, nil
}

package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tablero/internal/models"
)

// Repository implements DataStore on SQLite by composing the per-entity
// repositories.
type Repository struct {
	*BoardRepo
	*ListRepo
	*CardRepo
	*LabelRepo

	db *sqlx.DB
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)

// NewRepository wraps an open database connection
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		BoardRepo: &BoardRepo{db: db},
		ListRepo:  &ListRepo{db: db},
		CardRepo:  &CardRepo{db: db},
		LabelRepo: &LabelRepo{db: db},
		db:        db,
	}
}

// Close closes the underlying connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// Snapshot reads every board, list, card and label
func (r *Repository) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	return LoadSnapshot(ctx, r)
}

// LoadSnapshot reads a full snapshot through any DataStore
func LoadSnapshot(ctx context.Context, store DataStore) (*models.Snapshot, error) {
	boards, err := store.GetAllBoards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load boards: %w", err)
	}
	lists, err := store.GetAllLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load lists: %w", err)
	}
	cards, err := store.GetAllCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	labels, err := store.GetAllLabels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}

	snap := &models.Snapshot{
		Boards: make([]models.Board, 0, len(boards)),
		Lists:  make([]models.List, 0, len(lists)),
		Cards:  make([]models.Card, 0, len(cards)),
		Labels: make([]models.Label, 0, len(labels)),
	}
	for _, b := range boards {
		snap.Boards = append(snap.Boards, *b)
	}
	for _, l := range lists {
		snap.Lists = append(snap.Lists, *l)
	}
	for _, c := range cards {
		snap.Cards = append(snap.Cards, *c)
	}
	for _, l := range labels {
		snap.Labels = append(snap.Labels, *l)
	}
	snap.Normalize()
	return snap, nil
}

// ReplaceAll discards all stored data and writes snap in one transaction
func (r *Repository) ReplaceAll(ctx context.Context, snap *models.Snapshot) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, table := range []string{"cards", "labels", "lists", "boards"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		for i := range snap.Boards {
			if _, err := tx.NamedExecContext(ctx, insertBoardSQL, toBoardRow(&snap.Boards[i])); err != nil {
				return fmt.Errorf("failed to insert board %s: %w", snap.Boards[i].ID, err)
			}
		}
		for i := range snap.Lists {
			if _, err := tx.NamedExecContext(ctx, insertListSQL, toListRow(&snap.Lists[i])); err != nil {
				return fmt.Errorf("failed to insert list %s: %w", snap.Lists[i].ID, err)
			}
		}
		for i := range snap.Labels {
			if _, err := tx.NamedExecContext(ctx, insertLabelSQL, toLabelRow(&snap.Labels[i])); err != nil {
				return fmt.Errorf("failed to insert label %s: %w", snap.Labels[i].ID, err)
			}
		}
		for i := range snap.Cards {
			row, err := toCardRow(&snap.Cards[i])
			if err != nil {
				return err
			}
			if _, err := tx.NamedExecContext(ctx, insertCardSQL, row); err != nil {
				return fmt.Errorf("failed to insert card %s: %w", snap.Cards[i].ID, err)
			}
		}
		return nil
	})
}

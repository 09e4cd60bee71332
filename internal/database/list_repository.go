package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ============================================================================
// List Operations
// ============================================================================

// ListRepo persists lists
type ListRepo struct {
	db *sqlx.DB
}

type listRow struct {
	ID        string  `db:"id"`
	BoardID   string  `db:"board_id"`
	Title     string  `db:"title"`
	Position  float64 `db:"position"`
	CreatedAt int64   `db:"created_at"`
	UpdatedAt int64   `db:"updated_at"`
}

const (
	selectListSQL = `SELECT id, board_id, title, position, created_at, updated_at FROM lists`
	insertListSQL = `INSERT INTO lists (id, board_id, title, position, created_at, updated_at)
	VALUES (:id, :board_id, :title, :position, :created_at, :updated_at)`
)

func toListRow(l *models.List) listRow {
	return listRow{
		ID:        l.ID,
		BoardID:   l.BoardID,
		Title:     l.Title,
		Position:  l.Position,
		CreatedAt: toMillis(l.CreatedAt),
		UpdatedAt: toMillis(l.UpdatedAt),
	}
}

func (r listRow) model() *models.List {
	return &models.List{
		ID:        r.ID,
		BoardID:   r.BoardID,
		Title:     r.Title,
		Position:  r.Position,
		CreatedAt: fromMillis(r.CreatedAt),
		UpdatedAt: fromMillis(r.UpdatedAt),
	}
}

func (r *ListRepo) selectLists(ctx context.Context, query string, args ...any) ([]*models.List, error) {
	var rows []listRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	lists := make([]*models.List, 0, len(rows))
	for _, row := range rows {
		lists = append(lists, row.model())
	}
	return lists, nil
}

// GetAllLists returns every list ordered by board then position
func (r *ListRepo) GetAllLists(ctx context.Context) ([]*models.List, error) {
	return r.selectLists(ctx, selectListSQL+` ORDER BY board_id, position, created_at`)
}

// GetListsByBoard returns a board's lists ordered by position
func (r *ListRepo) GetListsByBoard(ctx context.Context, boardID string) ([]*models.List, error) {
	return r.selectLists(ctx, selectListSQL+` WHERE board_id = ? ORDER BY position, created_at`, boardID)
}

// GetList returns a list by id or ErrNotFound
func (r *ListRepo) GetList(ctx context.Context, id string) (*models.List, error) {
	var row listRow
	if err := r.db.GetContext(ctx, &row, selectListSQL+` WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "list", id)
	}
	return row.model(), nil
}

// AddList inserts a list
func (r *ListRepo) AddList(ctx context.Context, list *models.List) error {
	if _, err := r.db.NamedExecContext(ctx, insertListSQL, toListRow(list)); err != nil {
		return fmt.Errorf("failed to insert list: %w", err)
	}
	return nil
}

// UpdateList overwrites the list row with the same id
func (r *ListRepo) UpdateList(ctx context.Context, list *models.List) error {
	res, err := r.db.NamedExecContext(ctx,
		`UPDATE lists SET board_id = :board_id, title = :title, position = :position, updated_at = :updated_at
		WHERE id = :id`, toListRow(list))
	if err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}
	return expectRow(res, "list", list.ID)
}

// DeleteList removes a list; its cards cascade
func (r *ListRepo) DeleteList(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return expectRow(res, "list", id)
}

package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ============================================================================
// Board Operations
// ============================================================================

// BoardRepo persists boards
type BoardRepo struct {
	db *sqlx.DB
}

type boardRow struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	ViewMode  string `db:"view_mode"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

const insertBoardSQL = `INSERT INTO boards (id, title, view_mode, created_at, updated_at)
	VALUES (:id, :title, :view_mode, :created_at, :updated_at)`

func toBoardRow(b *models.Board) boardRow {
	return boardRow{
		ID:        b.ID,
		Title:     b.Title,
		ViewMode:  string(b.ViewMode),
		CreatedAt: toMillis(b.CreatedAt),
		UpdatedAt: toMillis(b.UpdatedAt),
	}
}

func (r boardRow) model() *models.Board {
	return &models.Board{
		ID:        r.ID,
		Title:     r.Title,
		ViewMode:  models.ViewMode(r.ViewMode),
		CreatedAt: fromMillis(r.CreatedAt),
		UpdatedAt: fromMillis(r.UpdatedAt),
	}
}

// GetAllBoards returns boards oldest first
func (r *BoardRepo) GetAllBoards(ctx context.Context) ([]*models.Board, error) {
	var rows []boardRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT id, title, view_mode, created_at, updated_at FROM boards ORDER BY created_at, id`); err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	boards := make([]*models.Board, 0, len(rows))
	for _, row := range rows {
		boards = append(boards, row.model())
	}
	return boards, nil
}

// GetBoard returns a board by id or ErrNotFound
func (r *BoardRepo) GetBoard(ctx context.Context, id string) (*models.Board, error) {
	var row boardRow
	if err := r.db.GetContext(ctx, &row,
		`SELECT id, title, view_mode, created_at, updated_at FROM boards WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "board", id)
	}
	return row.model(), nil
}

// AddBoard inserts a board
func (r *BoardRepo) AddBoard(ctx context.Context, board *models.Board) error {
	if _, err := r.db.NamedExecContext(ctx, insertBoardSQL, toBoardRow(board)); err != nil {
		return fmt.Errorf("failed to insert board: %w", err)
	}
	return nil
}

// UpdateBoard overwrites the board row with the same id
func (r *BoardRepo) UpdateBoard(ctx context.Context, board *models.Board) error {
	res, err := r.db.NamedExecContext(ctx,
		`UPDATE boards SET title = :title, view_mode = :view_mode, updated_at = :updated_at WHERE id = :id`,
		toBoardRow(board))
	if err != nil {
		return fmt.Errorf("failed to update board: %w", err)
	}
	return expectRow(res, "board", board.ID)
}

// DeleteBoard removes a board; lists, cards and labels cascade
func (r *BoardRepo) DeleteBoard(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return expectRow(res, "board", id)
}

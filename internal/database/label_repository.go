package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ============================================================================
// Label Operations
// ============================================================================

// LabelRepo persists board labels. The copies embedded on cards are
// stored with the card row.
type LabelRepo struct {
	db *sqlx.DB
}

type labelRow struct {
	ID      string `db:"id"`
	BoardID string `db:"board_id"`
	Name    string `db:"name"`
	Color   string `db:"color"`
}

const (
	selectLabelSQL = `SELECT id, board_id, name, color FROM labels`
	insertLabelSQL = `INSERT INTO labels (id, board_id, name, color) VALUES (:id, :board_id, :name, :color)`
)

func toLabelRow(l *models.Label) labelRow {
	return labelRow{ID: l.ID, BoardID: l.BoardID, Name: l.Name, Color: l.Color}
}

func (r labelRow) model() *models.Label {
	return &models.Label{ID: r.ID, BoardID: r.BoardID, Name: r.Name, Color: r.Color}
}

func (r *LabelRepo) selectLabels(ctx context.Context, query string, args ...any) ([]*models.Label, error) {
	var rows []labelRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	labels := make([]*models.Label, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, row.model())
	}
	return labels, nil
}

// GetAllLabels returns every label ordered by name
func (r *LabelRepo) GetAllLabels(ctx context.Context) ([]*models.Label, error) {
	return r.selectLabels(ctx, selectLabelSQL+` ORDER BY board_id, name`)
}

// GetLabelsByBoard returns a board's labels ordered by name
func (r *LabelRepo) GetLabelsByBoard(ctx context.Context, boardID string) ([]*models.Label, error) {
	return r.selectLabels(ctx, selectLabelSQL+` WHERE board_id = ? ORDER BY name`, boardID)
}

// GetLabel returns a label by id or ErrNotFound
func (r *LabelRepo) GetLabel(ctx context.Context, id string) (*models.Label, error) {
	var row labelRow
	if err := r.db.GetContext(ctx, &row, selectLabelSQL+` WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "label", id)
	}
	return row.model(), nil
}

// AddLabel inserts a label
func (r *LabelRepo) AddLabel(ctx context.Context, label *models.Label) error {
	if _, err := r.db.NamedExecContext(ctx, insertLabelSQL, toLabelRow(label)); err != nil {
		return fmt.Errorf("failed to insert label: %w", err)
	}
	return nil
}

// UpdateLabel overwrites the label row with the same id
func (r *LabelRepo) UpdateLabel(ctx context.Context, label *models.Label) error {
	res, err := r.db.NamedExecContext(ctx,
		`UPDATE labels SET name = :name, color = :color WHERE id = :id`, toLabelRow(label))
	if err != nil {
		return fmt.Errorf("failed to update label: %w", err)
	}
	return expectRow(res, "label", label.ID)
}

// DeleteLabel removes a label row
func (r *LabelRepo) DeleteLabel(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM labels WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return expectRow(res, "label", id)
}

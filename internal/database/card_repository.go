package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ============================================================================
// Card Operations
// ============================================================================

// CardRepo persists cards with their embedded labels, checklist and assignees
type CardRepo struct {
	db *sqlx.DB
}

type cardRow struct {
	ID          string        `db:"id"`
	ListID      string        `db:"list_id"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	Position    float64       `db:"position"`
	Completed   bool          `db:"completed"`
	DueDate     sql.NullInt64 `db:"due_date"`
	Priority    string        `db:"priority"`
	Labels      string        `db:"labels"`
	Checklist   string        `db:"checklist"`
	Assignees   string        `db:"assignees"`
	CreatedAt   int64         `db:"created_at"`
	UpdatedAt   int64         `db:"updated_at"`
}

const (
	selectCardSQL = `SELECT c.id, c.list_id, c.title, c.description, c.position, c.completed, c.due_date,
	c.priority, c.labels, c.checklist, c.assignees, c.created_at, c.updated_at FROM cards c`
	insertCardSQL = `INSERT INTO cards (id, list_id, title, description, position, completed, due_date,
	priority, labels, checklist, assignees, created_at, updated_at)
	VALUES (:id, :list_id, :title, :description, :position, :completed, :due_date,
	:priority, :labels, :checklist, :assignees, :created_at, :updated_at)`
	updateCardSQL = `UPDATE cards SET list_id = :list_id, title = :title, description = :description,
	position = :position, completed = :completed, due_date = :due_date, priority = :priority,
	labels = :labels, checklist = :checklist, assignees = :assignees, updated_at = :updated_at
	WHERE id = :id`
)

func toCardRow(c *models.Card) (cardRow, error) {
	labels, err := encodeJSON(c.Labels)
	if err != nil {
		return cardRow{}, fmt.Errorf("failed to encode labels for card %s: %w", c.ID, err)
	}
	checklist, err := encodeJSON(c.Checklist)
	if err != nil {
		return cardRow{}, fmt.Errorf("failed to encode checklist for card %s: %w", c.ID, err)
	}
	assignees, err := encodeJSON(c.Assignees)
	if err != nil {
		return cardRow{}, fmt.Errorf("failed to encode assignees for card %s: %w", c.ID, err)
	}
	return cardRow{
		ID:          c.ID,
		ListID:      c.ListID,
		Title:       c.Title,
		Description: c.Description,
		Position:    c.Position,
		Completed:   c.Completed,
		DueDate:     nullMillis(c.DueDate),
		Priority:    string(c.Priority),
		Labels:      labels,
		Checklist:   checklist,
		Assignees:   assignees,
		CreatedAt:   toMillis(c.CreatedAt),
		UpdatedAt:   toMillis(c.UpdatedAt),
	}, nil
}

func (r cardRow) model() (*models.Card, error) {
	c := &models.Card{
		ID:          r.ID,
		ListID:      r.ListID,
		Title:       r.Title,
		Description: r.Description,
		Position:    r.Position,
		Completed:   r.Completed,
		DueDate:     fromNullMillis(r.DueDate),
		Priority:    models.Priority(r.Priority),
		CreatedAt:   fromMillis(r.CreatedAt),
		UpdatedAt:   fromMillis(r.UpdatedAt),
	}
	if err := decodeJSON(r.Labels, &c.Labels); err != nil {
		return nil, fmt.Errorf("failed to decode labels for card %s: %w", r.ID, err)
	}
	if err := decodeJSON(r.Checklist, &c.Checklist); err != nil {
		return nil, fmt.Errorf("failed to decode checklist for card %s: %w", r.ID, err)
	}
	if err := decodeJSON(r.Assignees, &c.Assignees); err != nil {
		return nil, fmt.Errorf("failed to decode assignees for card %s: %w", r.ID, err)
	}
	c.Normalize()
	return c, nil
}

func (r *CardRepo) selectCards(ctx context.Context, query string, args ...any) ([]*models.Card, error) {
	var rows []cardRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	cards := make([]*models.Card, 0, len(rows))
	for _, row := range rows {
		card, err := row.model()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// GetAllCards returns every card ordered by list then position
func (r *CardRepo) GetAllCards(ctx context.Context) ([]*models.Card, error) {
	return r.selectCards(ctx, selectCardSQL+` ORDER BY c.list_id, c.position, c.created_at`)
}

// GetCardsByList returns a list's cards ordered by position
func (r *CardRepo) GetCardsByList(ctx context.Context, listID string) ([]*models.Card, error) {
	return r.selectCards(ctx, selectCardSQL+` WHERE c.list_id = ? ORDER BY c.position, c.created_at`, listID)
}

// GetCardsByBoard returns every card on a board
func (r *CardRepo) GetCardsByBoard(ctx context.Context, boardID string) ([]*models.Card, error) {
	return r.selectCards(ctx, selectCardSQL+`
	JOIN lists l ON l.id = c.list_id
	WHERE l.board_id = ?
	ORDER BY l.position, c.position, c.created_at`, boardID)
}

// GetCard returns a card by id or ErrNotFound
func (r *CardRepo) GetCard(ctx context.Context, id string) (*models.Card, error) {
	var row cardRow
	if err := r.db.GetContext(ctx, &row, selectCardSQL+` WHERE c.id = ?`, id); err != nil {
		return nil, notFound(err, "card", id)
	}
	return row.model()
}

// AddCard inserts a card
func (r *CardRepo) AddCard(ctx context.Context, card *models.Card) error {
	row, err := toCardRow(card)
	if err != nil {
		return err
	}
	if _, err := r.db.NamedExecContext(ctx, insertCardSQL, row); err != nil {
		return fmt.Errorf("failed to insert card: %w", err)
	}
	return nil
}

// UpdateCard overwrites the card row with the same id
func (r *CardRepo) UpdateCard(ctx context.Context, card *models.Card) error {
	row, err := toCardRow(card)
	if err != nil {
		return err
	}
	res, err := r.db.NamedExecContext(ctx, updateCardSQL, row)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	return expectRow(res, "card", card.ID)
}

// DeleteCard removes a card
func (r *CardRepo) DeleteCard(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return expectRow(res, "card", id)
}

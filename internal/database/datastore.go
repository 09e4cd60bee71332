package database

import (
	"context"
	"errors"

	"github.com/thenoetrevino/tablero/internal/models"
)

// ErrNotFound is returned when a row addressed by id does not exist
var ErrNotFound = errors.New("not found")

// BoardRepository stores boards
type BoardRepository interface {
	GetAllBoards(ctx context.Context) ([]*models.Board, error)
	GetBoard(ctx context.Context, id string) (*models.Board, error)
	AddBoard(ctx context.Context, board *models.Board) error
	UpdateBoard(ctx context.Context, board *models.Board) error
	DeleteBoard(ctx context.Context, id string) error
}

// ListRepository stores lists
type ListRepository interface {
	GetAllLists(ctx context.Context) ([]*models.List, error)
	GetListsByBoard(ctx context.Context, boardID string) ([]*models.List, error)
	GetList(ctx context.Context, id string) (*models.List, error)
	AddList(ctx context.Context, list *models.List) error
	UpdateList(ctx context.Context, list *models.List) error
	DeleteList(ctx context.Context, id string) error
}

// CardRepository stores cards
type CardRepository interface {
	GetAllCards(ctx context.Context) ([]*models.Card, error)
	GetCardsByList(ctx context.Context, listID string) ([]*models.Card, error)
	GetCardsByBoard(ctx context.Context, boardID string) ([]*models.Card, error)
	GetCard(ctx context.Context, id string) (*models.Card, error)
	AddCard(ctx context.Context, card *models.Card) error
	UpdateCard(ctx context.Context, card *models.Card) error
	DeleteCard(ctx context.Context, id string) error
}

// LabelRepository stores board labels
type LabelRepository interface {
	GetAllLabels(ctx context.Context) ([]*models.Label, error)
	GetLabelsByBoard(ctx context.Context, boardID string) ([]*models.Label, error)
	GetLabel(ctx context.Context, id string) (*models.Label, error)
	AddLabel(ctx context.Context, label *models.Label) error
	UpdateLabel(ctx context.Context, label *models.Label) error
	DeleteLabel(ctx context.Context, id string) error
}

// DataStore is the storage collaborator used by the services. Each call
// stands alone; callers must not assume atomicity across calls.
type DataStore interface {
	BoardRepository
	ListRepository
	CardRepository
	LabelRepository
}

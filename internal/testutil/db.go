package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/types"
)

// SetupTestDB creates an in-memory database with every migration applied
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// SetupTestRepo returns a Repository over a fresh in-memory database
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t))
}

// FixedTime is the reference time used by fixtures. Millisecond precision
// so values survive a storage round trip unchanged.
func FixedTime() time.Time {
	return time.Date(2025, 6, 11, 15, 30, 0, 0, time.UTC)
}

// CreateTestBoard stores a board and returns it
func CreateTestBoard(t *testing.T, repo database.DataStore, title string) *models.Board {
	t.Helper()
	b := &models.Board{
		ID:        types.NewID(),
		Title:     title,
		ViewMode:  models.ViewModeCards,
		CreatedAt: FixedTime(),
		UpdatedAt: FixedTime(),
	}
	if err := repo.AddBoard(context.Background(), b); err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}
	return b
}

// CreateTestList stores a list at the given position and returns it
func CreateTestList(t *testing.T, repo database.DataStore, boardID, title string, position float64) *models.List {
	t.Helper()
	l := &models.List{
		ID:        types.NewID(),
		BoardID:   boardID,
		Title:     title,
		Position:  position,
		CreatedAt: FixedTime(),
		UpdatedAt: FixedTime(),
	}
	if err := repo.AddList(context.Background(), l); err != nil {
		t.Fatalf("Failed to create test list: %v", err)
	}
	return l
}

// CreateTestCard stores a card at the given position and returns it
func CreateTestCard(t *testing.T, repo database.DataStore, listID, title string, position float64) *models.Card {
	t.Helper()
	c := &models.Card{
		ID:        types.NewID(),
		ListID:    listID,
		Title:     title,
		Position:  position,
		CreatedAt: FixedTime(),
		UpdatedAt: FixedTime(),
	}
	c.Normalize()
	if err := repo.AddCard(context.Background(), c); err != nil {
		t.Fatalf("Failed to create test card: %v", err)
	}
	return c
}

// CreateTestLabel stores a label and returns it
func CreateTestLabel(t *testing.T, repo database.DataStore, boardID, name, color string) *models.Label {
	t.Helper()
	l := &models.Label{ID: types.NewID(), BoardID: boardID, Name: name, Color: color}
	if err := repo.AddLabel(context.Background(), l); err != nil {
		t.Fatalf("Failed to create test label: %v", err)
	}
	return l
}

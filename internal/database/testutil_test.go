package database

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database with migrations applied
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}

// setupTestRepo wraps setupTestDB in a Repository
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(setupTestDB(t))
}

// ============================================================================
// FIXTURE HELPERS
// ============================================================================

// testTime returns a millisecond-precision time so values survive storage
func testTime() time.Time {
	return time.UnixMilli(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).UnixMilli())
}

func createTestBoard(t *testing.T, repo *Repository, id, title string) *models.Board {
	t.Helper()
	b := &models.Board{ID: id, Title: title, ViewMode: models.ViewModeCards, CreatedAt: testTime(), UpdatedAt: testTime()}
	if err := repo.AddBoard(context.Background(), b); err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	return b
}

func createTestList(t *testing.T, repo *Repository, id, boardID string, pos float64) *models.List {
	t.Helper()
	l := &models.List{ID: id, BoardID: boardID, Title: "List " + id, Position: pos, CreatedAt: testTime(), UpdatedAt: testTime()}
	if err := repo.AddList(context.Background(), l); err != nil {
		t.Fatalf("Failed to create list: %v", err)
	}
	return l
}

func createTestCard(t *testing.T, repo *Repository, id, listID string, pos float64) *models.Card {
	t.Helper()
	c := &models.Card{ID: id, ListID: listID, Title: "Card " + id, Position: pos, CreatedAt: testTime(), UpdatedAt: testTime()}
	c.Normalize()
	if err := repo.AddCard(context.Background(), c); err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}
	return c
}

// Package cli holds helpers for CLI command tests. It lives apart from
// testutil so service tests can import testutil without pulling in the app.
package cli

import (
	"testing"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/clock"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

// TestUser is the active user of every CLI test app
const TestUser = "tester"

// SetupCLITest creates an in-memory repository and an App over it. The
// app's clock is frozen at testutil.FixedTime().
func SetupCLITest(t *testing.T) (*database.Repository, *app.App) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)

	cfg := config.Default()
	cfg.User.Active = TestUser
	appInstance := app.New(repo, cfg, app.WithClock(clock.Fake(testutil.FixedTime())))
	t.Cleanup(func() {
		_ = appInstance.Close()
	})

	return repo, appInstance
}

// SeedBoard creates a board with a Todo and a Done list through the app's
// board service and returns the board, todo and done ids
func SeedBoard(t *testing.T, a *app.App, title string) (boardID, todoID, doneID string) {
	t.Helper()
	ctx := t.Context()

	b, err := a.BoardService.CreateBoard(ctx, title)
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	todo, err := a.BoardService.CreateList(ctx, b.ID, "Todo")
	if err != nil {
		t.Fatalf("Failed to create list: %v", err)
	}
	done, err := a.BoardService.CreateList(ctx, b.ID, "Done")
	if err != nil {
		t.Fatalf("Failed to create list: %v", err)
	}
	return b.ID, todo.ID, done.ID
}

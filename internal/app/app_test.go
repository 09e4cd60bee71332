package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/tablero/internal/clock"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

func TestNew(t *testing.T) {
	repo := testutil.SetupTestRepo(t)

	cfg := config.Default()
	cfg.User.Active = "ana"
	cfg.Dashboard.PersonalTargets.Daily = 3

	app := New(repo, cfg)
	t.Cleanup(func() { _ = app.Close() })

	if app.BoardService == nil {
		t.Error("Expected BoardService to be initialized")
	}
	if app.DashboardService == nil {
		t.Error("Expected DashboardService to be initialized")
	}
	if app.Bus == nil {
		t.Error("Expected a default event bus")
	}
	if app.User.ActiveUserID != "ana" || app.User.DailyTarget != 3 {
		t.Errorf("User = %+v, want ana with daily target 3", app.User)
	}
	if app.DashboardService.User() != app.User {
		t.Error("dashboard should share the app user context")
	}
	if app.Repo() != repo {
		t.Error("Repo() should return the injected store")
	}
}

func TestNew_Options(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	bus := events.NewBus(4)
	clk := clock.Fake(testutil.FixedTime())

	app := New(repo, nil, WithBus(bus), WithClock(clk))
	t.Cleanup(func() { _ = app.Close() })

	if app.Bus != bus {
		t.Error("WithBus should be used")
	}
	if app.Clock != clk {
		t.Error("WithClock should be used")
	}

	ch, cancel := bus.Subscribe("")
	defer cancel()
	b, err := app.BoardService.CreateBoard(context.Background(), "Product")
	if err != nil {
		t.Fatalf("CreateBoard failed: %v", err)
	}
	ev := <-ch
	if ev.BoardID != b.ID {
		t.Errorf("event board = %s, want %s", ev.BoardID, b.ID)
	}
	if !b.CreatedAt.Equal(testutil.FixedTime()) {
		t.Errorf("CreatedAt = %v, want fake clock time", b.CreatedAt)
	}
}

func TestOpen(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "nested", "tablero.db")

	app, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := app.BoardService.CreateBoard(context.Background(), "Product"); err != nil {
		t.Fatalf("CreateBoard failed: %v", err)
	}
	if err := app.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopen and confirm the board was persisted
	app, err = Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = app.Close() }()
	boards, err := app.BoardService.AllBoards(context.Background())
	if err != nil {
		t.Fatalf("AllBoards failed: %v", err)
	}
	if len(boards) != 1 || boards[0].Title != "Product" {
		t.Errorf("boards = %+v, want Product", boards)
	}
}

func TestServer(t *testing.T) {
	app := New(testutil.SetupTestRepo(t), nil)
	t.Cleanup(func() { _ = app.Close() })

	if app.Server() == nil {
		t.Fatal("Server() returned nil")
	}
}

func TestClose(t *testing.T) {
	app := New(testutil.SetupTestRepo(t), nil)

	if err := app.Close(); err != nil {
		t.Errorf("Expected Close to succeed, got error: %v", err)
	}
	// second close is harmless
	if err := app.Close(); err != nil {
		t.Errorf("Expected second Close to succeed, got error: %v", err)
	}
}

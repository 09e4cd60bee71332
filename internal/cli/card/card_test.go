package card

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
	"github.com/thenoetrevino/tablero/internal/testutil"
	clitest "github.com/thenoetrevino/tablero/internal/testutil/cli"
)

func titles(cards []*models.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Title
	}
	return out
}

func newCard(t *testing.T, svc boardservice.Service, listID, title string) *models.Card {
	t.Helper()
	c, err := svc.CreateCard(t.Context(), boardservice.CreateCardRequest{ListID: listID, Title: title})
	require.NoError(t, err)
	return c
}

// ============================================================================
// card create / show
// ============================================================================

func TestCreateCard(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	_, todoID, _ := clitest.SeedBoard(t, app, "Board")

	out, err := clitest.ExecuteCLICommand(t, app, CardCmd(), []string{
		"create", "--list", todoID, "--title", "Fix login",
		"--priority", "high", "--due", "+1", "--assignee", "ana,ben", "--json",
	})
	require.NoError(t, err)

	c := clitest.ParseData[models.Card](t, out)
	assert.Equal(t, "Fix login", c.Title)
	assert.Equal(t, models.PriorityHigh, c.Priority)
	assert.Equal(t, []string{"ana", "ben"}, c.Assignees)
	require.NotNil(t, c.DueDate)
	assert.True(t, c.DueDate.Equal(time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)), "due %v", c.DueDate)
	assert.Equal(t, 0.0, c.Position)

	out, err = clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"create", "--list", todoID, "--title", "Second", "--quiet"})
	require.NoError(t, err)
	second, ok := app.BoardService.Card(strings.TrimSpace(out))
	require.True(t, ok)
	assert.Equal(t, 1.0, second.Position)
}

func TestCreateCard_Errors(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	_, todoID, _ := clitest.SeedBoard(t, app, "Board")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"bad priority", []string{"--list", todoID, "--title", "x", "--priority", "urgent"}, cli.ExitValidation},
		{"bad due date", []string{"--list", todoID, "--title", "x", "--due", "soon"}, cli.ExitValidation},
		{"unknown list", []string{"--list", "missing", "--title", "x"}, cli.ExitNotFound},
		{"blank title", []string{"--list", todoID, "--title", " "}, cli.ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"create", "--json"}, tt.args...)
			_, err := clitest.ExecuteCLICommand(t, app, CardCmd(), args)
			assert.Equal(t, tt.code, cli.ExitCode(err))
		})
	}
}

func TestShowCard(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	_, todoID, _ := clitest.SeedBoard(t, app, "Board")
	c := newCard(t, app.BoardService, todoID, "Inspect me")

	out, err := clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"show", "--card", c.ID, "--json"})
	require.NoError(t, err)
	detail := clitest.ParseData[struct {
		ID   string `json:"id"`
		List string `json:"list"`
	}](t, out)
	assert.Equal(t, c.ID, detail.ID)
	assert.Equal(t, "Todo", detail.List)

	out, err = clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"show", "--card", c.ID})
	require.NoError(t, err)
	assert.Contains(t, out, "Inspect me")

	_, err = clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"show", "--card", "missing", "--json"})
	assert.ErrorIs(t, err, boardservice.ErrCardNotFound)
}

// ============================================================================
// card update
// ============================================================================

func TestUpdateCard(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	boardID, todoID, _ := clitest.SeedBoard(t, app, "Board")
	label, err := app.BoardService.CreateLabel(t.Context(), boardID, "bug", "#FF0000")
	require.NoError(t, err)
	c := newCard(t, app.BoardService, todoID, "Before")

	_, err = clitest.ExecuteCLICommand(t, app, CardCmd(), []string{
		"update", "--card", c.ID,
		"--title", "After", "--priority", "medium", "--label", label.ID,
		"--assignee", "ana", "--check", "write tests", "--check", "[x] spike",
		"--complete", "--quiet",
	})
	require.NoError(t, err)

	got, ok := app.BoardService.Card(c.ID)
	require.True(t, ok)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, models.PriorityMedium, got.Priority)
	assert.True(t, got.Completed)
	require.Len(t, got.Labels, 1)
	assert.Equal(t, "bug", got.Labels[0].Name)
	assert.Equal(t, []string{"ana"}, got.Assignees)
	require.Len(t, got.Checklist, 2)
	assert.Equal(t, "spike", got.Checklist[1].Text)
	assert.True(t, got.Checklist[1].Completed)
	assert.NotEmpty(t, got.Checklist[0].ID)

	// toggle keeps the rest of the checklist
	_, err = clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"update", "--card", c.ID, "--toggle", got.Checklist[0].ID, "--quiet"})
	require.NoError(t, err)
	got, _ = app.BoardService.Card(c.ID)
	require.Len(t, got.Checklist, 2)
	assert.True(t, got.Checklist[0].Completed)

	// clear flags empty the collections and leave the rest alone
	_, err = clitest.ExecuteCLICommand(t, app, CardCmd(), []string{
		"update", "--card", c.ID, "--clear-labels", "--clear-assignees", "--clear-priority", "--reopen", "--quiet",
	})
	require.NoError(t, err)
	got, _ = app.BoardService.Card(c.ID)
	assert.Empty(t, got.Labels)
	assert.Empty(t, got.Assignees)
	assert.Equal(t, models.PriorityNone, got.Priority)
	assert.False(t, got.Completed)
	assert.Len(t, got.Checklist, 2)
	assert.Equal(t, "After", got.Title)
}

func TestUpdateCard_DueDate(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	_, todoID, _ := clitest.SeedBoard(t, app, "Board")
	c := newCard(t, app.BoardService, todoID, "Dated")

	_, err := clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"update", "--card", c.ID, "--due", "2025-06-20", "--quiet"})
	require.NoError(t, err)
	got, _ := app.BoardService.Card(c.ID)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, 20, got.DueDate.Day())

	_, err = clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"update", "--card", c.ID, "--clear-due", "--quiet"})
	require.NoError(t, err)
	got, _ = app.BoardService.Card(c.ID)
	assert.Nil(t, got.DueDate)
}

func TestUpdateCard_Errors(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	_, todoID, _ := clitest.SeedBoard(t, app, "Board")
	c := newCard(t, app.BoardService, todoID, "Card")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"nothing to update", nil, cli.ExitUsage},
		{"conflicting flags", []string{"--complete", "--reopen"}, cli.ExitUsage},
		{"unknown label", []string{"--label", "missing"}, cli.ExitNotFound},
		{"unknown checklist item", []string{"--toggle", "missing"}, cli.ExitUsage},
		{"empty title", []string{"--title", ""}, cli.ExitValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"update", "--card", c.ID, "--json"}, tt.args...)
			_, err := clitest.ExecuteCLICommand(t, app, CardCmd(), args)
			assert.Equal(t, tt.code, cli.ExitCode(err))
		})
	}
}

// ============================================================================
// card move / delete
// ============================================================================

func TestMoveCard(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	_, todoID, doneID := clitest.SeedBoard(t, app, "Board")
	a := newCard(t, app.BoardService, todoID, "A")
	b := newCard(t, app.BoardService, todoID, "B")
	c := newCard(t, app.BoardService, todoID, "C")

	// drop C between A and B
	out, err := clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"move", "--card", c.ID, "--index", "1", "--json"})
	require.NoError(t, err)
	moved := clitest.ParseData[models.Card](t, out)
	assert.Equal(t, 0.5, moved.Position)
	assert.Equal(t, []string{"A", "C", "B"}, titles(app.BoardService.Cards(todoID)))

	// no position sends A to the tail of Done
	_, err = clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"move", "--card", b.ID, "--to", doneID, "--quiet"})
	require.NoError(t, err)
	_, err = clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"move", "--card", a.ID, "--to", doneID, "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, titles(app.BoardService.Cards(doneID)))
	assert.Equal(t, []string{"C"}, titles(app.BoardService.Cards(todoID)))

	// explicit position
	_, err = clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"move", "--card", a.ID, "--position", "-1", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, titles(app.BoardService.Cards(doneID)))
}

func TestMoveCard_Errors(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	_, todoID, _ := clitest.SeedBoard(t, app, "Board")
	c := newCard(t, app.BoardService, todoID, "Card")

	_, err := clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"move", "--card", c.ID, "--to", "missing", "--json"})
	assert.ErrorIs(t, err, boardservice.ErrListNotFound)

	_, err = clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"move", "--card", c.ID, "--index", "0", "--position", "2", "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

func TestDropCard(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	_, todoID, doneID := clitest.SeedBoard(t, app, "Board")
	a := newCard(t, app.BoardService, todoID, "A")
	newCard(t, app.BoardService, doneID, "X")
	newCard(t, app.BoardService, doneID, "Y")

	_, err := clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"drop", "--card", a.ID, "--to", doneID, "--index", "0", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "X", "Y"}, titles(app.BoardService.Cards(doneID)))
	assert.Empty(t, app.BoardService.Cards(todoID))

	_, err = clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"drop", "--card", a.ID, "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

func TestDeleteCard(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	_, todoID, _ := clitest.SeedBoard(t, app, "Board")
	c := newCard(t, app.BoardService, todoID, "Gone")

	out, err := clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"delete", "--card", c.ID, "--force"})
	require.NoError(t, err)
	assert.Contains(t, out, "Card "+c.ID+" deleted")
	assert.Empty(t, app.BoardService.Cards(todoID))
}

// ============================================================================
// card list
// ============================================================================

func TestListCards_Filters(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	boardID, todoID, doneID := clitest.SeedBoard(t, app, "Board")
	ctx := t.Context()
	svc := app.BoardService

	overdue := testutil.FixedTime().AddDate(0, 0, -2)
	_, err := svc.CreateCard(ctx, boardservice.CreateCardRequest{ListID: todoID, Title: "Late login fix", Priority: models.PriorityHigh, DueDate: &overdue})
	require.NoError(t, err)
	_, err = svc.CreateCard(ctx, boardservice.CreateCardRequest{ListID: todoID, Title: "Docs", Assignees: []string{"ana"}})
	require.NoError(t, err)
	done, err := svc.CreateCard(ctx, boardservice.CreateCardRequest{ListID: doneID, Title: "Shipped login"})
	require.NoError(t, err)
	completed := true
	require.NoError(t, svc.UpdateCard(ctx, done.ID, boardservice.CardUpdate{Completed: &completed}))

	run := func(extra ...string) []string {
		t.Helper()
		args := append([]string{"list", "--board", boardID, "--json"}, extra...)
		out, err := clitest.ExecuteCLICommand(t, app, CardCmd(), args)
		require.NoError(t, err)
		cards := clitest.ParseData[[]models.Card](t, out)
		names := make([]string, len(cards))
		for i, c := range cards {
			names[i] = c.Title
		}
		return names
	}

	assert.Equal(t, []string{"Late login fix", "Docs", "Shipped login"}, run())
	assert.Equal(t, []string{"Late login fix", "Shipped login"}, run("--search", "LOGIN"))
	assert.Equal(t, []string{"Late login fix"}, run("--search", "login", "--hide-completed"))
	assert.Equal(t, []string{"Late login fix"}, run("--due", "overdue"))
	assert.Equal(t, []string{"Docs"}, run("--assignee", "ana"))
	assert.Equal(t, []string{"Docs", "Shipped login"}, run("--priority", "none"))
	assert.Equal(t, []string{"Shipped login"}, run("--list", doneID))

	_, err = clitest.ExecuteCLICommand(t, app, CardCmd(), []string{"list", "--board", boardID, "--due", "someday", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
}

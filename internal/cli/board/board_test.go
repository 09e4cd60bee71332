package board

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
	clitest "github.com/thenoetrevino/tablero/internal/testutil/cli"
)

// ============================================================================
// board create
// ============================================================================

func TestCreateBoard(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	t.Run("human output", func(t *testing.T) {
		out, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"create", "--title", "Roadmap"})
		require.NoError(t, err)
		assert.Contains(t, out, "Board 'Roadmap' created")
	})

	t.Run("quiet prints only the id", func(t *testing.T) {
		out, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"create", "--title", "Quiet", "--quiet"})
		require.NoError(t, err)
		id := strings.TrimSpace(out)
		b, ok := app.BoardService.Board(id)
		require.True(t, ok, "board %q should be loaded", id)
		assert.Equal(t, "Quiet", b.Title)
	})

	t.Run("json", func(t *testing.T) {
		out, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"create", "--title", "Json", "--json"})
		require.NoError(t, err)
		b := clitest.ParseData[models.Board](t, out)
		assert.Equal(t, "Json", b.Title)
		assert.Equal(t, models.ViewModeCards, b.ViewMode)
	})

	t.Run("seed", func(t *testing.T) {
		out, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"create", "--title", "Demo", "--seed", "--quiet"})
		require.NoError(t, err)
		lists := app.BoardService.Lists(strings.TrimSpace(out))
		require.NotEmpty(t, lists)
		assert.Equal(t, "Backlog", lists[0].Title)
	})

	t.Run("blank title is a usage error", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"create", "--title", "  ", "--json"})
		require.Error(t, err)
		assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
	})
}

// ============================================================================
// board list / show
// ============================================================================

func TestListBoards(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	out, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"list"})
	require.NoError(t, err)
	assert.Contains(t, out, "No boards yet")

	first, _, _ := clitest.SeedBoard(t, app, "Alpha")
	second, _, _ := clitest.SeedBoard(t, app, "Beta")

	out, err = clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"list", "--quiet"})
	require.NoError(t, err)
	ids := strings.Fields(out)
	assert.ElementsMatch(t, []string{first, second}, ids)

	out, err = clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"list"})
	require.NoError(t, err)
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "Beta")
}

func TestShowBoard(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	boardID, todoID, _ := clitest.SeedBoard(t, app, "Sprint 12")
	_, err := app.BoardService.CreateCard(t.Context(), boardservice.CreateCardRequest{ListID: todoID, Title: "Ship API"})
	require.NoError(t, err)

	out, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"show", "--board", boardID, "--json"})
	require.NoError(t, err)

	view := clitest.ParseData[struct {
		Title string `json:"title"`
		Lists []struct {
			Title string        `json:"title"`
			Cards []models.Card `json:"cards"`
		} `json:"lists"`
	}](t, out)
	assert.Equal(t, "Sprint 12", view.Title)
	require.Len(t, view.Lists, 2)
	assert.Equal(t, "Todo", view.Lists[0].Title)
	require.Len(t, view.Lists[0].Cards, 1)
	assert.Equal(t, "Ship API", view.Lists[0].Cards[0].Title)

	out, err = clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"show", "--board", boardID})
	require.NoError(t, err)
	assert.Contains(t, out, "Ship API")
	assert.Contains(t, out, "(empty)")
}

func TestShowBoard_EnvFallback(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	boardID, _, _ := clitest.SeedBoard(t, app, "From env")
	t.Setenv(cli.EnvBoard, boardID)

	out, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"show", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, boardID, strings.TrimSpace(out))
}

func TestShowBoard_Errors(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	t.Setenv(cli.EnvBoard, "")

	_, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"show", "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))

	out, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"show", "--board", "missing", "--json"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	assert.True(t, errors.Is(err, boardservice.ErrBoardNotFound))
	assert.Contains(t, out, cli.CodeNotFound)
}

// ============================================================================
// board rename / view / delete
// ============================================================================

func TestRenameAndView(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	boardID, _, _ := clitest.SeedBoard(t, app, "Old")

	out, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"rename", "--board", boardID, "--title", "New"})
	require.NoError(t, err)
	assert.Contains(t, out, "'New' renamed")

	_, err = clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"view", "--board", boardID, "--mode", "list", "--quiet"})
	require.NoError(t, err)
	b, _ := app.BoardService.Board(boardID)
	assert.Equal(t, models.ViewModeList, b.ViewMode)

	_, err = clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"view", "--board", boardID, "--mode", "kanban", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
}

func TestDeleteBoard(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	boardID, _, _ := clitest.SeedBoard(t, app, "Doomed")

	out, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"delete", "--board", boardID, "--force"})
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	boards, err := app.BoardService.AllBoards(t.Context())
	require.NoError(t, err)
	assert.Empty(t, boards)
}

func TestDeleteBoard_Declined(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	boardID, _, _ := clitest.SeedBoard(t, app, "Kept")

	cmd := BoardCmd()
	cmd.SetIn(strings.NewReader("n\n"))
	out, err := clitest.ExecuteCLICommand(t, app, cmd, []string{"delete", "--board", boardID})
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")

	_, ok := app.BoardService.Board(boardID)
	assert.True(t, ok)
}

// ============================================================================
// seed
// ============================================================================

func TestSeed(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	t.Run("creates a demo board", func(t *testing.T) {
		t.Setenv(cli.EnvBoard, "")
		out, err := clitest.ExecuteCLICommand(t, app, SeedCmd(), []string{"--json"})
		require.NoError(t, err)

		view := clitest.ParseData[struct {
			ID     string           `json:"id"`
			Title  string           `json:"title"`
			Lists  []map[string]any `json:"lists"`
			Labels []map[string]any `json:"labels"`
		}](t, out)
		assert.Equal(t, DemoBoardTitle, view.Title)
		assert.NotEmpty(t, view.Lists)
		assert.NotEmpty(t, view.Labels)
	})

	t.Run("seeds an existing board", func(t *testing.T) {
		boardID, _, _ := clitest.SeedBoard(t, app, "Mine")
		_, err := clitest.ExecuteCLICommand(t, app, SeedCmd(), []string{"--board", boardID, "--quiet"})
		require.NoError(t, err)
		assert.NotEmpty(t, app.BoardService.Labels(boardID))
	})

	t.Run("unknown board", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, SeedCmd(), []string{"--board", "missing", "--json"})
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	})
}

package label

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
	clitest "github.com/thenoetrevino/tablero/internal/testutil/cli"
)

func TestCreateLabel(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	boardID, _, _ := clitest.SeedBoard(t, app, "Board")

	out, err := clitest.ExecuteCLICommand(t, app, LabelCmd(), []string{"create", "--board", boardID, "--name", "bug", "--color", "#FF0000", "--json"})
	require.NoError(t, err)
	l := clitest.ParseData[models.Label](t, out)
	assert.Equal(t, "bug", l.Name)
	assert.Equal(t, boardID, l.BoardID)

	out, err = clitest.ExecuteCLICommand(t, app, LabelCmd(), []string{"list", "--board", boardID, "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, l.ID, strings.TrimSpace(out))
}

func TestCreateLabel_Negative(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	boardID, _, _ := clitest.SeedBoard(t, app, "Board")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"invalid color", []string{"--board", boardID, "--name", "bug", "--color", "red"}, cli.ExitValidation},
		{"short color", []string{"--board", boardID, "--name", "bug", "--color", "#FFF"}, cli.ExitValidation},
		{"blank name", []string{"--board", boardID, "--name", "  ", "--color", "#FF0000"}, cli.ExitUsage},
		{"unknown board", []string{"--board", "missing", "--name", "bug", "--color", "#FF0000"}, cli.ExitNotFound},
		{"name too long", []string{"--board", boardID, "--name", strings.Repeat("n", 60), "--color", "#FF0000"}, cli.ExitValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"create", "--json"}, tt.args...)
			_, err := clitest.ExecuteCLICommand(t, app, LabelCmd(), args)
			assert.Equal(t, tt.code, cli.ExitCode(err))
		})
	}
	assert.Empty(t, app.BoardService.Labels(boardID))
}

func TestUpdateLabel_SweepsCards(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	boardID, todoID, _ := clitest.SeedBoard(t, app, "Board")
	ctx := t.Context()

	l, err := app.BoardService.CreateLabel(ctx, boardID, "bug", "#FF0000")
	require.NoError(t, err)
	c, err := app.BoardService.CreateCard(ctx, boardservice.CreateCardRequest{ListID: todoID, Title: "Card"})
	require.NoError(t, err)

	_, err = clitest.ExecuteCLICommand(t, app, LabelCmd(), []string{"attach", "--card", c.ID, "--label", l.ID, "--quiet"})
	require.NoError(t, err)

	out, err := clitest.ExecuteCLICommand(t, app, LabelCmd(), []string{"update", "--label", l.ID, "--name", "defect"})
	require.NoError(t, err)
	assert.Contains(t, out, "defect")

	got, _ := app.BoardService.Card(c.ID)
	require.Len(t, got.Labels, 1)
	assert.Equal(t, "defect", got.Labels[0].Name)
	assert.Equal(t, "#FF0000", got.Labels[0].Color)

	_, err = clitest.ExecuteCLICommand(t, app, LabelCmd(), []string{"update", "--label", l.ID, "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

func TestAttachDetach(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	boardID, todoID, _ := clitest.SeedBoard(t, app, "Board")
	ctx := t.Context()

	bug, err := app.BoardService.CreateLabel(ctx, boardID, "bug", "#FF0000")
	require.NoError(t, err)
	ui, err := app.BoardService.CreateLabel(ctx, boardID, "ui", "#00FF00")
	require.NoError(t, err)
	c, err := app.BoardService.CreateCard(ctx, boardservice.CreateCardRequest{ListID: todoID, Title: "Card"})
	require.NoError(t, err)

	for _, id := range []string{bug.ID, ui.ID, bug.ID} {
		_, err = clitest.ExecuteCLICommand(t, app, LabelCmd(), []string{"attach", "--card", c.ID, "--label", id, "--quiet"})
		require.NoError(t, err)
	}
	got, _ := app.BoardService.Card(c.ID)
	assert.Len(t, got.Labels, 2, "attaching twice keeps one copy")

	_, err = clitest.ExecuteCLICommand(t, app, LabelCmd(), []string{"detach", "--card", c.ID, "--label", bug.ID, "--quiet"})
	require.NoError(t, err)
	got, _ = app.BoardService.Card(c.ID)
	require.Len(t, got.Labels, 1)
	assert.Equal(t, "ui", got.Labels[0].Name)

	_, err = clitest.ExecuteCLICommand(t, app, LabelCmd(), []string{"detach", "--card", c.ID, "--label", bug.ID, "--json"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}

func TestDeleteLabel(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	boardID, todoID, _ := clitest.SeedBoard(t, app, "Board")
	ctx := t.Context()

	l, err := app.BoardService.CreateLabel(ctx, boardID, "bug", "#FF0000")
	require.NoError(t, err)
	c, err := app.BoardService.CreateCard(ctx, boardservice.CreateCardRequest{ListID: todoID, Title: "Card"})
	require.NoError(t, err)
	require.NoError(t, app.BoardService.UpdateCard(ctx, c.ID, boardservice.CardUpdate{LabelIDs: []string{l.ID}}))

	_, err = clitest.ExecuteCLICommand(t, app, LabelCmd(), []string{"delete", "--label", l.ID, "--force"})
	require.NoError(t, err)

	assert.Empty(t, app.BoardService.Labels(boardID))
	got, _ := app.BoardService.Card(c.ID)
	assert.Empty(t, got.Labels)
}

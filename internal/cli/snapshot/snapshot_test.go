package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/cli"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
	snapfile "github.com/thenoetrevino/tablero/internal/snapshot"
	"github.com/thenoetrevino/tablero/internal/testutil"
	clitest "github.com/thenoetrevino/tablero/internal/testutil/cli"
)

type infoData struct {
	Path    string `json:"path"`
	Version int    `json:"version"`
	Counts  Counts `json:"counts"`
}

func TestSaveAndInspect(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	boardID, todoID, _ := clitest.SeedBoard(t, app, "Board")
	ctx := t.Context()
	_, err := app.BoardService.CreateCard(ctx, boardservice.CreateCardRequest{ListID: todoID, Title: "Card"})
	require.NoError(t, err)
	_, err = app.BoardService.CreateLabel(ctx, boardID, "bug", "#FF0000")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "backup.tablero")
	out, err := clitest.ExecuteCLICommand(t, app, SnapshotCmd(), []string{"save", "--output", path, "--json"})
	require.NoError(t, err)

	saved := clitest.ParseData[infoData](t, out)
	assert.Equal(t, path, saved.Path)
	assert.Equal(t, Counts{Boards: 1, Lists: 2, Cards: 1, Labels: 1}, saved.Counts)

	file, err := snapfile.Load(path)
	require.NoError(t, err)
	assert.True(t, testutil.FixedTime().Equal(file.SavedAt))

	out, err = clitest.ExecuteCLICommand(t, app, SnapshotCmd(), []string{"inspect", "--file", path})
	require.NoError(t, err)
	assert.Contains(t, out, "1 board(s), 2 list(s), 1 card(s), 1 label(s)")

	out, err = clitest.ExecuteCLICommand(t, app, SnapshotCmd(), []string{"inspect", "--file", path, "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(out))
}

func TestInspect_Corrupt(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	path := filepath.Join(t.TempDir(), "bad.tablero")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	out, err := clitest.ExecuteCLICommand(t, app, SnapshotCmd(), []string{"inspect", "--file", path, "--json"})
	assert.Equal(t, cli.ExitDataErr, cli.ExitCode(err))
	assert.Contains(t, out, cli.CodeDataErr)
}

func TestSave_MissingOutput(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	_, err := clitest.ExecuteCLICommand(t, app, SnapshotCmd(), []string{"save", "--json"})
	assert.Error(t, err)
}

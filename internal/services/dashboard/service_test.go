package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/analytics"
	"github.com/thenoetrevino/tablero/internal/clock"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/filter"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/services/board"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type fixture struct {
	svc    Service
	boards board.Service
	store  *testutil.FailingStore
	clock  *clock.FakeClock
	todo   string
	done   string
}

func setup(t *testing.T, user string) *fixture {
	t.Helper()
	store := testutil.NewFailingStore(testutil.SetupTestRepo(t))
	clk := clock.Fake(testutil.FixedTime())
	boards := board.NewService(store, nil, clk)

	ctx := context.Background()
	b, err := boards.CreateBoard(ctx, "Product")
	require.NoError(t, err)
	todo, err := boards.CreateList(ctx, b.ID, "Todo")
	require.NoError(t, err)
	done, err := boards.CreateList(ctx, b.ID, "Done")
	require.NoError(t, err)

	uc := analytics.UserContext{ActiveUserID: user, DailyTarget: 5, WeeklyTarget: 25}
	return &fixture{
		svc:    NewService(store, boards, uc, clk),
		boards: boards,
		store:  store,
		clock:  clk,
		todo:   todo.ID,
		done:   done.ID,
	}
}

func (f *fixture) card(t *testing.T, title string, assignees ...string) string {
	t.Helper()
	c, err := f.boards.CreateCard(context.Background(), board.CreateCardRequest{ListID: f.todo, Title: title, Assignees: assignees})
	require.NoError(t, err)
	return c.ID
}

// stored reads a card straight from storage
func (f *fixture) stored(t *testing.T, id string) *models.Card {
	t.Helper()
	c, err := f.store.GetCard(context.Background(), id)
	require.NoError(t, err)
	return c
}

// ============================================================================
// Read Tests
// ============================================================================

func TestSnapshot_ReadsStorage(t *testing.T) {
	f := setup(t, "ana")
	f.card(t, "a")

	// a board the engine never loaded still shows up
	other := testutil.CreateTestBoard(t, f.store, "Ops")
	l := testutil.CreateTestList(t, f.store, other.ID, "Backlog", 0)
	testutil.CreateTestCard(t, f.store, l.ID, "b", 0)

	snap, err := f.svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Boards, 2)
	assert.Len(t, snap.Lists, 3)
	assert.Len(t, snap.Cards, 2)
}

func TestMetrics(t *testing.T) {
	f := setup(t, "ana")
	ctx := context.Background()
	f.card(t, "mine", "ana")
	id := f.card(t, "finished", "ana")
	_, err := f.svc.CompleteCards(ctx, []string{id})
	require.NoError(t, err)

	m, err := f.svc.Metrics(ctx, analytics.Scope{})
	require.NoError(t, err)
	assert.Equal(t, analytics.RangeAll, m.Scope.DateRange)
	assert.Equal(t, 2, m.Summary.TotalCards)
	assert.Equal(t, 1, m.Summary.CompletedCards)
	assert.Equal(t, 50, m.Summary.CompletionRate)
	assert.Equal(t, "ana", m.Targets.User)
	assert.Equal(t, 1, m.Targets.CompletedToday)
	assert.Equal(t, testutil.FixedTime(), m.GeneratedAt)
}

func TestMetrics_InvalidRange(t *testing.T) {
	f := setup(t, "ana")
	_, err := f.svc.Metrics(context.Background(), analytics.Scope{DateRange: "decade"})
	assert.ErrorIs(t, err, ErrInvalidScope)
	assert.ErrorIs(t, err, analytics.ErrUnknownDateRange)
}

func TestMyTasks(t *testing.T) {
	f := setup(t, "ana")
	f.card(t, "mine", "ana")
	f.card(t, "theirs", "bo")
	f.card(t, "nobody")

	tasks, err := f.svc.MyTasks(context.Background(), "", filter.QuickAll, analytics.PoolFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, tasks.OpenCount)
	require.Len(t, tasks.NoDate, 1)
	assert.Equal(t, "mine", tasks.NoDate[0].Title)
	require.Len(t, tasks.Unassigned, 1)
	assert.Equal(t, "nobody", tasks.Unassigned[0].Title)

	tasks, err = f.svc.MyTasks(context.Background(), "", filter.QuickAll, analytics.PoolFilter{Due: filter.DueHasDate})
	require.NoError(t, err)
	assert.Empty(t, tasks.Unassigned)
	assert.Equal(t, 1, tasks.OpenCount)
}

func TestExport(t *testing.T) {
	f := setup(t, "ana")
	f.card(t, "a", "ana")

	doc, err := f.svc.Export(context.Background(), analytics.Scope{DateRange: analytics.RangeWeek})
	require.NoError(t, err)
	assert.Equal(t, analytics.RangeWeek, doc.Metadata.Scope.DateRange)
	assert.Equal(t, 1, doc.Summary.TotalCards)
	assert.NotNil(t, doc.Recommendations)
}

// ============================================================================
// Bulk Action Tests
// ============================================================================

func TestCompleteCards(t *testing.T) {
	f := setup(t, "ana")
	a := f.card(t, "a")
	b := f.card(t, "b")

	res, err := f.svc.CompleteCards(context.Background(), []string{a, "missing", b})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, res.Updated)
	assert.Equal(t, []string{"missing"}, res.Missing)
	assert.True(t, f.stored(t, a).Completed)
	assert.True(t, f.stored(t, b).Completed)
}

func TestCompleteCards_LoadsUnloadedBoards(t *testing.T) {
	f := setup(t, "ana")
	b := testutil.CreateTestBoard(t, f.store, "Elsewhere")
	l := testutil.CreateTestList(t, f.store, b.ID, "Todo", 0)
	c := testutil.CreateTestCard(t, f.store, l.ID, "remote", 0)

	res, err := f.svc.CompleteCards(context.Background(), []string{c.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, res.Updated)
	assert.Contains(t, f.boards.LoadedBoards(), b.ID)
	assert.True(t, f.stored(t, c.ID).Completed)
}

func TestCompleteCards_Empty(t *testing.T) {
	f := setup(t, "ana")
	_, err := f.svc.CompleteCards(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoCards)
}

func TestCompleteCards_PersistFailure(t *testing.T) {
	f := setup(t, "ana")
	a := f.card(t, "a")

	f.store.Fail(true)
	res, err := f.svc.CompleteCards(context.Background(), []string{a})
	assert.ErrorIs(t, err, board.ErrPersistence)
	assert.Equal(t, []string{a}, res.Updated, "the in-memory change still applied")

	c, ok := f.boards.Card(a)
	require.True(t, ok)
	assert.True(t, c.Completed)
}

func TestRescheduleCards(t *testing.T) {
	f := setup(t, "ana")
	a := f.card(t, "a")

	tests := []struct {
		days int
		want time.Time
	}{
		{0, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)},
		{3, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)},
		{-1, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		_, err := f.svc.RescheduleCards(context.Background(), []string{a}, tt.days)
		require.NoError(t, err)

		c, _ := f.boards.Card(a)
		require.NotNil(t, c.DueDate)
		assert.True(t, tt.want.Equal(*c.DueDate), "days=%d got %s", tt.days, c.DueDate)
	}

	_, err := f.svc.RescheduleCards(context.Background(), []string{a}, MaxRescheduleDays+1)
	assert.ErrorIs(t, err, ErrInvalidDays)
}

func TestClaimCard(t *testing.T) {
	f := setup(t, "ana")
	ctx := context.Background()
	id := f.card(t, "shared", "bo")

	require.NoError(t, f.svc.ClaimCard(ctx, id))
	require.NoError(t, f.svc.ClaimCard(ctx, id))

	assert.Equal(t, []string{"bo", "ana"}, f.stored(t, id).Assignees)
	assert.ErrorIs(t, f.svc.ClaimCard(ctx, "missing"), board.ErrCardNotFound)
}

func TestClaimCard_NoActiveUser(t *testing.T) {
	for _, user := range []string{"", "unassigned"} {
		f := setup(t, user)
		id := f.card(t, "x")
		assert.ErrorIs(t, f.svc.ClaimCard(context.Background(), id), ErrNoActiveUser, user)
	}
}

func TestSnapshot_StorageError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	svc := NewService(repo, board.NewService(repo, nil, nil), analytics.UserContext{}, nil)
	require.NoError(t, db.Close())

	_, err := svc.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotFailure)
}

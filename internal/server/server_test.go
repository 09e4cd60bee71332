package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/analytics"
	"github.com/thenoetrevino/tablero/internal/clock"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/services/board"
	"github.com/thenoetrevino/tablero/internal/services/dashboard"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type fixture struct {
	srv    *Server
	ts     *httptest.Server
	boards board.Service
	store  *testutil.FailingStore
	bus    *events.Bus
}

type response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewFailingStore(testutil.SetupTestRepo(t))
	clk := clock.Fake(testutil.FixedTime())
	bus := events.NewBus(0)
	t.Cleanup(func() { _ = bus.Close() })

	boards := board.NewService(store, bus, clk)
	user := analytics.UserContext{ActiveUserID: "ana", DailyTarget: 5, WeeklyTarget: 25}
	srv := New(Options{
		AllowedOrigins: []string{"http://localhost:5173"},
		Boards:         boards,
		Dashboard:      dashboard.NewService(store, boards, user, clk),
		Bus:            bus,
		Clock:          clk,
		DefaultRange:   analytics.RangeAll,
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go srv.hub.Run(ctx, bus)
	require.Eventually(t, func() bool { return bus.Subscribers() == 1 }, 2*time.Second, 5*time.Millisecond)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &fixture{srv: srv, ts: ts, boards: boards, store: store, bus: bus}
}

// do sends a JSON request and decodes the envelope
func (f *fixture) do(t *testing.T, method, path string, body any) (int, response) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, f.ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var out response
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

// into decodes the data of a successful response
func into[T any](t *testing.T, r response) T {
	t.Helper()
	require.True(t, r.Success, "expected success, got %+v", r.Error)
	var v T
	require.NoError(t, json.Unmarshal(r.Data, &v))
	return v
}

func (f *fixture) board(t *testing.T, title string) *models.Board {
	t.Helper()
	status, resp := f.do(t, "POST", "/api/boards", map[string]any{"title": title})
	require.Equal(t, http.StatusCreated, status)
	return into[*models.Board](t, resp)
}

func (f *fixture) list(t *testing.T, boardID, title string) *models.List {
	t.Helper()
	status, resp := f.do(t, "POST", "/api/boards/"+boardID+"/lists", map[string]any{"title": title})
	require.Equal(t, http.StatusCreated, status)
	return into[*models.List](t, resp)
}

func (f *fixture) card(t *testing.T, listID, title string, extra ...map[string]any) *models.Card {
	t.Helper()
	body := map[string]any{"title": title}
	for _, e := range extra {
		for k, v := range e {
			body[k] = v
		}
	}
	status, resp := f.do(t, "POST", "/api/lists/"+listID+"/cards", body)
	require.Equal(t, http.StatusCreated, status)
	return into[*models.Card](t, resp)
}

func cardTitles(lv ListView) []string {
	out := make([]string, 0, len(lv.Cards))
	for _, c := range lv.Cards {
		out = append(out, c.Title)
	}
	return out
}

// ============================================================================
// Board Tests
// ============================================================================

func TestBoards_CreateListGet(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	todo := f.list(t, b.ID, "Todo")
	f.list(t, b.ID, "Done")
	f.card(t, todo.ID, "Write docs")

	status, resp := f.do(t, "GET", "/api/boards", nil)
	require.Equal(t, http.StatusOK, status)
	boards := into[[]models.Board](t, resp)
	require.Len(t, boards, 1)
	assert.Equal(t, "Product", boards[0].Title)

	status, resp = f.do(t, "GET", "/api/boards/"+b.ID, nil)
	require.Equal(t, http.StatusOK, status)
	view := into[BoardView](t, resp)
	assert.Equal(t, b.ID, view.ID)
	require.Len(t, view.Lists, 2)
	assert.Equal(t, "Todo", view.Lists[0].Title)
	assert.Equal(t, []string{"Write docs"}, cardTitles(view.Lists[0]))
	assert.Empty(t, view.Lists[1].Cards)
}

func TestBoards_Validation(t *testing.T) {
	f := setup(t)

	status, resp := f.do(t, "POST", "/api/boards", map[string]any{"title": "  "})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeValidation, resp.Error.Code)
	assert.False(t, resp.Success)

	status, resp = f.do(t, "POST", "/api/boards", map[string]any{"title": "x", "owner": "bo"})
	assert.Equal(t, http.StatusBadRequest, status, "unknown fields are rejected")
	assert.Equal(t, CodeValidation, resp.Error.Code)

	b := f.board(t, "Product")
	status, _ = f.do(t, "PATCH", "/api/boards/"+b.ID, map[string]any{"view_mode": "grid"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestBoards_UpdateAndDelete(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")

	status, resp := f.do(t, "PATCH", "/api/boards/"+b.ID, map[string]any{"title": "Platform", "view_mode": "list"})
	require.Equal(t, http.StatusOK, status)
	updated := into[models.Board](t, resp)
	assert.Equal(t, "Platform", updated.Title)
	assert.Equal(t, models.ViewModeList, updated.ViewMode)

	status, _ = f.do(t, "DELETE", "/api/boards/"+b.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, resp = f.do(t, "GET", "/api/boards/"+b.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, CodeNotFound, resp.Error.Code)
}

func TestUnknownRoute(t *testing.T) {
	f := setup(t)
	status, resp := f.do(t, "GET", "/api/nothing", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, CodeNotFound, resp.Error.Code)
}

// ============================================================================
// List Tests
// ============================================================================

func TestLists_MoveRenameDelete(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	a := f.list(t, b.ID, "A")
	f.list(t, b.ID, "B")
	c := f.list(t, b.ID, "C")

	status, resp := f.do(t, "POST", "/api/lists/"+c.ID+"/move", map[string]any{"index": 0})
	require.Equal(t, http.StatusOK, status)
	lists := into[[]models.List](t, resp)
	require.Len(t, lists, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{lists[0].Title, lists[1].Title, lists[2].Title})

	status, resp = f.do(t, "PATCH", "/api/lists/"+a.ID, map[string]any{"title": "Alpha"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Alpha", into[models.List](t, resp).Title)

	status, _ = f.do(t, "DELETE", "/api/lists/"+a.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Len(t, f.boards.Lists(b.ID), 2)
}

func TestLists_MoveNeedsOneTarget(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	l := f.list(t, b.ID, "A")

	status, _ := f.do(t, "POST", "/api/lists/"+l.ID+"/move", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.do(t, "POST", "/api/lists/"+l.ID+"/move", map[string]any{"index": 0, "position": 1})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.do(t, "POST", "/api/lists/missing/move", map[string]any{"index": 0})
	assert.Equal(t, http.StatusNotFound, status)
}

// ============================================================================
// Card Tests
// ============================================================================

func TestCards_CreateWithFields(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	l := f.list(t, b.ID, "Todo")

	due := testutil.FixedTime().Add(48 * time.Hour)
	c := f.card(t, l.ID, "Ship", map[string]any{
		"priority":  "high",
		"due_date":  due,
		"assignees": []string{"ana", "ana", "bo"},
	})
	assert.Equal(t, models.PriorityHigh, c.Priority)
	require.NotNil(t, c.DueDate)
	assert.True(t, c.DueDate.Equal(due))
	assert.Equal(t, []string{"ana", "bo"}, c.Assignees)
	assert.NotNil(t, c.Labels)
	assert.NotNil(t, c.Checklist)

	status, resp := f.do(t, "POST", "/api/lists/"+l.ID+"/cards", map[string]any{"title": "x", "priority": "urgent"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, CodeValidation, resp.Error.Code)

	status, _ = f.do(t, "POST", "/api/lists/missing/cards", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCards_MoveByIndexUsesMidpoint(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	todo := f.list(t, b.ID, "Todo")
	done := f.list(t, b.ID, "Done")
	f.card(t, todo.ID, "one")
	f.card(t, todo.ID, "two")
	x := f.card(t, done.ID, "x")

	status, resp := f.do(t, "POST", "/api/cards/"+x.ID+"/move", map[string]any{"list_id": todo.ID, "index": 1})
	require.Equal(t, http.StatusOK, status)
	moved := into[models.Card](t, resp)
	assert.Equal(t, todo.ID, moved.ListID)
	assert.Equal(t, 0.5, moved.Position)

	_, resp = f.do(t, "GET", "/api/boards/"+b.ID, nil)
	view := into[BoardView](t, resp)
	assert.Equal(t, []string{"one", "x", "two"}, cardTitles(view.Lists[0]))
	assert.Empty(t, view.Lists[1].Cards)
}

func TestCards_MoveByPositionAndTail(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	l := f.list(t, b.ID, "Todo")
	a := f.card(t, l.ID, "a")
	f.card(t, l.ID, "b")
	f.card(t, l.ID, "c")

	// no target appends after the last card
	status, resp := f.do(t, "POST", "/api/cards/"+a.ID+"/move", map[string]any{})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3.0, into[models.Card](t, resp).Position)

	status, resp = f.do(t, "POST", "/api/cards/"+a.ID+"/move", map[string]any{"list_id": l.ID, "position": 1.5})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1.5, into[models.Card](t, resp).Position)

	status, _ = f.do(t, "POST", "/api/cards/"+a.ID+"/move", map[string]any{"list_id": "nope", "index": 0})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCards_UpdateMergesAndClears(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	l := f.list(t, b.ID, "Todo")
	c := f.card(t, l.ID, "Ship", map[string]any{"priority": "low", "assignees": []string{"ana"}})

	status, resp := f.do(t, "PATCH", "/api/cards/"+c.ID, map[string]any{
		"description": "details",
		"checklist":   []map[string]any{{"text": "tests"}},
	})
	require.Equal(t, http.StatusOK, status)
	updated := into[models.Card](t, resp)
	assert.Equal(t, "details", updated.Description)
	assert.Equal(t, models.PriorityLow, updated.Priority, "omitted fields keep their value")
	assert.Equal(t, []string{"ana"}, updated.Assignees)
	require.Len(t, updated.Checklist, 1)
	assert.NotEmpty(t, updated.Checklist[0].ID)

	status, resp = f.do(t, "PATCH", "/api/cards/"+c.ID, map[string]any{"assignees": []string{}, "priority": "none", "completed": true})
	require.Equal(t, http.StatusOK, status)
	updated = into[models.Card](t, resp)
	assert.Empty(t, updated.Assignees)
	assert.NotNil(t, updated.Assignees)
	assert.Equal(t, models.PriorityNone, updated.Priority)
	assert.True(t, updated.Completed)

	status, _ = f.do(t, "PATCH", "/api/cards/missing", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCards_GetAndDelete(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	l := f.list(t, b.ID, "Todo")
	c := f.card(t, l.ID, "Ship")

	// a fresh engine has nothing loaded; the handler loads on demand
	f.boards.UnloadBoard(b.ID)
	status, resp := f.do(t, "GET", "/api/cards/"+c.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ship", into[models.Card](t, resp).Title)

	status, _ = f.do(t, "DELETE", "/api/cards/"+c.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = f.do(t, "GET", "/api/cards/"+c.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCards_Filtered(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	l := f.list(t, b.ID, "Todo")
	f.card(t, l.ID, "Fix login", map[string]any{"priority": "high", "assignees": []string{"ana"}})
	f.card(t, l.ID, "Write docs", map[string]any{"priority": "low"})
	f.card(t, l.ID, "Fix logout", map[string]any{"priority": "medium", "assignees": []string{"bo"}})

	status, resp := f.do(t, "GET", "/api/boards/"+b.ID+"/cards?q=fix&priority=high,medium", nil)
	require.Equal(t, http.StatusOK, status)
	cards := into[[]models.Card](t, resp)
	require.Len(t, cards, 2)
	assert.Equal(t, "Fix login", cards[0].Title)
	assert.Equal(t, "Fix logout", cards[1].Title)

	_, resp = f.do(t, "GET", "/api/boards/"+b.ID+"/cards?assignee=bo", nil)
	assert.Len(t, into[[]models.Card](t, resp), 1)

	status, _ = f.do(t, "GET", "/api/boards/"+b.ID+"/cards?due=someday", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = f.do(t, "GET", "/api/boards/"+b.ID+"/cards?show_completed=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCards_PersistenceFailure(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	l := f.list(t, b.ID, "Todo")
	c := f.card(t, l.ID, "Ship")

	f.store.Fail(true)
	status, resp := f.do(t, "PATCH", "/api/cards/"+c.ID, map[string]any{"title": "Shipped"})
	assert.Equal(t, http.StatusInternalServerError, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodePersistence, resp.Error.Code)

	// the in-memory update stays applied
	got, ok := f.boards.Card(c.ID)
	require.True(t, ok)
	assert.Equal(t, "Shipped", got.Title)
}

// ============================================================================
// Label Tests
// ============================================================================

func TestLabels_RenameSweepsCards(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	l := f.list(t, b.ID, "Todo")
	c := f.card(t, l.ID, "Ship")

	status, resp := f.do(t, "POST", "/api/boards/"+b.ID+"/labels", map[string]any{"name": "bug", "color": "#FF0000"})
	require.Equal(t, http.StatusCreated, status)
	label := into[models.Label](t, resp)

	status, _ = f.do(t, "PATCH", "/api/cards/"+c.ID, map[string]any{"label_ids": []string{label.ID}})
	require.Equal(t, http.StatusOK, status)

	status, resp = f.do(t, "PATCH", "/api/labels/"+label.ID, map[string]any{"name": "defect"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "defect", into[models.Label](t, resp).Name)

	_, resp = f.do(t, "GET", "/api/cards/"+c.ID, nil)
	card := into[models.Card](t, resp)
	require.Len(t, card.Labels, 1)
	assert.Equal(t, "defect", card.Labels[0].Name)

	_, resp = f.do(t, "GET", "/api/boards/"+b.ID+"/labels", nil)
	assert.Len(t, into[[]models.Label](t, resp), 1)

	status, _ = f.do(t, "DELETE", "/api/labels/"+label.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)
	_, resp = f.do(t, "GET", "/api/cards/"+c.ID, nil)
	assert.Empty(t, into[models.Card](t, resp).Labels)
}

func TestLabels_Validation(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")

	status, _ := f.do(t, "POST", "/api/boards/"+b.ID+"/labels", map[string]any{"name": "bug", "color": "red"})
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = f.do(t, "PATCH", "/api/labels/missing", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, status)
}

// ============================================================================
// Dashboard Tests
// ============================================================================

func TestDashboard_Metrics(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	l := f.list(t, b.ID, "Todo")
	c := f.card(t, l.ID, "a")
	f.card(t, l.ID, "b")
	f.do(t, "PATCH", "/api/cards/"+c.ID, map[string]any{"completed": true})

	status, resp := f.do(t, "GET", "/api/dashboard/metrics?board="+b.ID, nil)
	require.Equal(t, http.StatusOK, status)
	m := into[analytics.Metrics](t, resp)
	assert.Equal(t, 2, m.Summary.TotalCards)
	assert.Equal(t, 50, m.Summary.CompletionRate)
	assert.Equal(t, analytics.RangeAll, m.Scope.DateRange)

	status, resp = f.do(t, "GET", "/api/dashboard/metrics?range=decade", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, CodeValidation, resp.Error.Code)
}

func TestDashboard_MyTasks(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	l := f.list(t, b.ID, "Todo")
	f.card(t, l.ID, "mine", map[string]any{"assignees": []string{"ana"}})
	f.card(t, l.ID, "theirs", map[string]any{"assignees": []string{"bo"}})

	status, resp := f.do(t, "GET", "/api/dashboard/my-tasks", nil)
	require.Equal(t, http.StatusOK, status)
	tasks := into[analytics.MyTasks](t, resp)
	assert.Equal(t, 1, tasks.OpenCount)

	status, _ = f.do(t, "GET", "/api/dashboard/my-tasks?quick=urgent", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDashboard_MyTasksPoolFilter(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	l := f.list(t, b.ID, "Todo")
	other := f.list(t, f.board(t, "Ops").ID, "Backlog")
	undated := f.card(t, l.ID, "undated", map[string]any{"priority": "high"})
	dated := f.card(t, l.ID, "dated", map[string]any{"due_date": testutil.FixedTime().Add(48 * time.Hour)})
	elsewhere := f.card(t, other.ID, "elsewhere")

	poolIDs := func(query string) []string {
		t.Helper()
		status, resp := f.do(t, "GET", "/api/dashboard/my-tasks"+query, nil)
		require.Equal(t, http.StatusOK, status)
		tasks := into[analytics.MyTasks](t, resp)
		out := []string{}
		for _, c := range tasks.Unassigned {
			out = append(out, c.ID)
		}
		return out
	}

	assert.ElementsMatch(t, []string{undated.ID, dated.ID, elsewhere.ID}, poolIDs(""))
	assert.ElementsMatch(t, []string{undated.ID, elsewhere.ID}, poolIDs("?pool_due=no-date"))
	assert.ElementsMatch(t, []string{dated.ID}, poolIDs("?pool_due=has-date"))
	assert.ElementsMatch(t, []string{elsewhere.ID}, poolIDs("?pool_board="+other.BoardID))
	assert.ElementsMatch(t, []string{undated.ID}, poolIDs("?pool_priority=high&pool_board="+b.ID))
	assert.ElementsMatch(t, []string{dated.ID}, poolIDs("?pool_q=DATED&pool_due=week"))

	status, _ := f.do(t, "GET", "/api/dashboard/my-tasks?pool_due=someday", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = f.do(t, "GET", "/api/dashboard/my-tasks?pool_priority=urgent", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDashboard_ExportFormats(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	f.card(t, f.list(t, b.ID, "Todo").ID, "a")

	status, resp := f.do(t, "GET", "/api/dashboard/export", nil)
	require.Equal(t, http.StatusOK, status)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &doc))
	assert.Contains(t, doc, "metadata")
	assert.Contains(t, doc, "recommendations")

	raw, err := http.Get(f.ts.URL + "/api/dashboard/export?format=markdown")
	require.NoError(t, err)
	defer func() { _ = raw.Body.Close() }()
	body, err := io.ReadAll(raw.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, raw.StatusCode)
	assert.Contains(t, raw.Header.Get("Content-Type"), "text/markdown")
	assert.Contains(t, raw.Header.Get("Content-Disposition"), "dashboard.md")
	assert.Contains(t, string(body), "# Dashboard report")

	status, _ = f.do(t, "GET", "/api/dashboard/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDashboard_BulkActions(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	l := f.list(t, b.ID, "Todo")
	a := f.card(t, l.ID, "a")
	c := f.card(t, l.ID, "c")

	status, resp := f.do(t, "POST", "/api/dashboard/complete", map[string]any{"card_ids": []string{a.ID, "ghost"}})
	require.Equal(t, http.StatusOK, status)
	res := into[dashboard.BulkResult](t, resp)
	assert.Equal(t, []string{a.ID}, res.Updated)
	assert.Equal(t, []string{"ghost"}, res.Missing)

	status, _ = f.do(t, "POST", "/api/dashboard/complete", map[string]any{"card_ids": []string{}})
	assert.Equal(t, http.StatusBadRequest, status)

	status, resp = f.do(t, "POST", "/api/dashboard/reschedule", map[string]any{"card_ids": []string{c.ID}, "days": 3})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{c.ID}, into[dashboard.BulkResult](t, resp).Updated)
	got, _ := f.boards.Card(c.ID)
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(clock.StartOfDay(testutil.FixedTime()).AddDate(0, 0, 3)))

	status, _ = f.do(t, "POST", "/api/dashboard/reschedule", map[string]any{"card_ids": []string{c.ID}, "days": 1000})
	assert.Equal(t, http.StatusBadRequest, status)

	status, resp = f.do(t, "POST", "/api/dashboard/claim/"+c.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"ana"}, into[models.Card](t, resp).Assignees)

	status, _ = f.do(t, "POST", "/api/dashboard/claim/ghost", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// ============================================================================
// Metrics, CORS and Lifecycle Tests
// ============================================================================

func TestMetricsEndpoint(t *testing.T) {
	f := setup(t)
	f.board(t, "Product")
	f.do(t, "POST", "/api/boards", map[string]any{"title": ""})

	status, resp := f.do(t, "GET", "/api/metrics", nil)
	require.Equal(t, http.StatusOK, status)
	snap := into[MetricsSnapshot](t, resp)
	assert.Equal(t, int64(3), snap.RequestsTotal)
	assert.Equal(t, int64(1), snap.RequestErrors)
	assert.Equal(t, 1, snap.LoadedBoards)
	assert.Equal(t, 1, snap.Subscribers, "the hub holds one subscription")
	assert.NotEmpty(t, snap.Uptime)
}

func TestCORS_Preflight(t *testing.T) {
	f := setup(t)

	req, err := http.NewRequest("OPTIONS", f.ts.URL+"/api/boards", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "http://evil.example")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{board.ErrEmptyTitle, http.StatusBadRequest, CodeValidation},
		{dashboard.ErrInvalidDays, http.StatusBadRequest, CodeValidation},
		{board.ErrListNotFound, http.StatusNotFound, CodeNotFound},
		{&board.PersistError{Op: "update card", EntityID: "c1", Err: testutil.ErrInjected}, http.StatusInternalServerError, CodePersistence},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		status, code := classify(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	f := setup(t)
	srv := New(Options{Boards: f.boards, Bus: f.bus})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/metrics")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

// ============================================================================
// WebSocket Tests
// ============================================================================

func (f *fixture) dial(t *testing.T, query string) *websocket.Conn {
	t.Helper()
	before := f.srv.metrics.ConnectedClients.Load()
	url := "ws" + strings.TrimPrefix(f.ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool {
		return f.srv.metrics.ConnectedClients.Load() > before
	}, 2*time.Second, 10*time.Millisecond)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// nextEvent skips messages until an event of type typ arrives
func nextEvent(t *testing.T, conn *websocket.Conn, typ events.EventType) Message {
	t.Helper()
	for {
		msg := readMessage(t, conn)
		if msg.Type == MessageEvent && msg.Data != nil && msg.Data.Type == typ {
			return msg
		}
	}
}

func TestWebSocket_PushesEvents(t *testing.T) {
	f := setup(t)
	b := f.board(t, "Product")
	conn := f.dial(t, "")

	l := f.list(t, b.ID, "Todo")

	msg := nextEvent(t, conn, events.EventListChanged)
	require.NotNil(t, msg.Data)
	assert.Equal(t, b.ID, msg.Data.BoardID)
	assert.Equal(t, l.ID, msg.Data.EntityID)
	assert.Positive(t, msg.Data.SequenceID)
}

func TestWebSocket_BoardFilter(t *testing.T) {
	f := setup(t)
	watched := f.board(t, "Watched")
	other := f.board(t, "Other")
	conn := f.dial(t, "?board="+watched.ID)

	f.list(t, other.ID, "ignored")
	f.list(t, watched.ID, "seen")

	msg := nextEvent(t, conn, events.EventListChanged)
	assert.Equal(t, watched.ID, msg.Data.BoardID)
}

func TestWebSocket_PingPong(t *testing.T) {
	f := setup(t)
	conn := f.dial(t, "")

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
	msg := readMessage(t, conn)
	assert.Equal(t, MessagePong, msg.Type)
	assert.Nil(t, msg.Data)
}

func TestWebSocket_DisconnectUpdatesCount(t *testing.T) {
	f := setup(t)
	conn := f.dial(t, "")
	require.Equal(t, int32(1), f.srv.metrics.ConnectedClients.Load())

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()
	assert.Eventually(t, func() bool {
		return f.srv.metrics.ConnectedClients.Load() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHub_RunAgainAfterShutdown(t *testing.T) {
	bus := events.NewBus(0)
	t.Cleanup(func() { _ = bus.Close() })
	hub := NewHub(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NotPanics(t, func() {
		hub.Run(ctx, bus)
		hub.Run(ctx, bus)
	})
	assert.False(t, hub.registerClient(&client{send: make(chan []byte, 1)}), "a stopped hub refuses clients")
}

package server

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/thenoetrevino/tablero/internal/analytics"
	"github.com/thenoetrevino/tablero/internal/export"
	"github.com/thenoetrevino/tablero/internal/filter"
	"github.com/thenoetrevino/tablero/internal/models"
)

type bulkRequest struct {
	CardIDs []string `json:"card_ids"`
}

type rescheduleRequest struct {
	CardIDs []string `json:"card_ids"`
	Days    int      `json:"days"`
}

// scope reads board, assignee and range from the query string
func (s *Server) scope(r *http.Request) (analytics.Scope, error) {
	q := r.URL.Query()
	raw := q.Get("range")
	if raw == "" {
		raw = string(s.opts.DefaultRange)
	}
	dr, err := analytics.ParseDateRange(raw)
	if err != nil {
		return analytics.Scope{}, err
	}
	return analytics.Scope{
		BoardID:   q.Get("board"),
		Assignee:  q.Get("assignee"),
		DateRange: dr,
	}, nil
}

func (s *Server) handleDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	scope, err := s.scope(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.opts.Dashboard.Metrics(r.Context(), scope)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, m)
}

func (s *Server) handleMyTasks(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("quick")
	if raw == "" {
		raw = string(s.opts.DefaultQuick)
	}
	quick, err := filter.ParseQuickFilter(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	pool, err := parsePoolFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tasks, err := s.opts.Dashboard.MyTasks(r.Context(), r.URL.Query().Get("q"), quick, pool)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, tasks)
}

// parsePoolFilter reads the unassigned pool filter from the pool_*
// query parameters
func parsePoolFilter(r *http.Request) (analytics.PoolFilter, error) {
	q := r.URL.Query()
	pool := analytics.PoolFilter{
		BoardID:  q.Get("pool_board"),
		Search:   q.Get("pool_q"),
		LabelIDs: multi(q["pool_label"]),
	}
	for _, p := range multi(q["pool_priority"]) {
		priority, err := models.ParsePriority(p)
		if err != nil {
			return pool, err
		}
		pool.Priorities = append(pool.Priorities, priority)
	}
	due, err := filter.ParseDueDateFilter(q.Get("pool_due"))
	if err != nil {
		return pool, err
	}
	pool.Due = due
	return pool, nil
}

// handleExport answers JSON in the envelope; yaml and markdown are sent
// as raw documents
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	scope, err := s.scope(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.opts.Dashboard.Export(r.Context(), scope)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if format == export.FormatJSON {
		s.writeData(w, http.StatusOK, doc)
		return
	}
	doc.Layout = s.opts.Layout
	var buf bytes.Buffer
	if err := doc.Write(&buf, format); err != nil {
		s.writeError(w, r, err)
		return
	}
	contentType := "application/yaml"
	if format == export.FormatMarkdown {
		contentType = "text/markdown; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="dashboard.`+extension(format)+`"`)
	_, _ = w.Write(buf.Bytes())
}

func extension(f export.Format) string {
	if f == export.FormatMarkdown {
		return "md"
	}
	return string(f)
}

func (s *Server) handleCompleteCards(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.opts.Dashboard.CompleteCards(r.Context(), req.CardIDs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, res)
}

func (s *Server) handleRescheduleCards(w http.ResponseWriter, r *http.Request) {
	var req rescheduleRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.opts.Dashboard.RescheduleCards(r.Context(), req.CardIDs, req.Days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, res)
}

func (s *Server) handleClaimCard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.opts.Dashboard.ClaimCard(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, _ := s.opts.Boards.Card(id)
	s.writeData(w, http.StatusOK, c)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snap := s.metrics.Snapshot()
	if s.opts.Bus != nil {
		snap.Subscribers = s.opts.Bus.Subscribers()
		snap.EventsDropped = s.opts.Bus.Dropped()
	}
	snap.LoadedBoards = len(s.opts.Boards.LoadedBoards())
	s.writeData(w, http.StatusOK, snap)
}

// handleWebSocket upgrades the connection and registers it with the hub.
// ?board=<id> narrows the stream to one board.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		s.metrics.IncErrors()
		return
	}

	c := &client{
		hub:     s.hub,
		conn:    conn,
		send:    make(chan []byte, clientBufferSize),
		pong:    make(chan struct{}, 1),
		boardID: r.URL.Query().Get("board"),
	}
	if !s.hub.registerClient(c) {
		_ = conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/thenoetrevino/tablero/internal/filter"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/services/board"
)

// ListView is a list with its cards in position order
type ListView struct {
	*models.List
	Cards []*models.Card `json:"cards"`
}

// BoardView is the full board payload
type BoardView struct {
	*models.Board
	Lists  []ListView      `json:"lists"`
	Labels []*models.Label `json:"labels"`
}

type createBoardRequest struct {
	Title string `json:"title"`
}

type updateBoardRequest struct {
	Title    *string `json:"title"`
	ViewMode *string `json:"view_mode"`
}

type titleRequest struct {
	Title string `json:"title"`
}

type moveListRequest struct {
	Position *float64 `json:"position"`
	Index    *int     `json:"index"`
}

type createCardRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Assignees   []string   `json:"assignees"`
}

type updateCardRequest struct {
	Title        *string                 `json:"title"`
	Description  *string                 `json:"description"`
	Completed    *bool                   `json:"completed"`
	DueDate      *time.Time              `json:"due_date"`
	ClearDueDate bool                    `json:"clear_due_date"`
	Priority     *string                 `json:"priority"`
	LabelIDs     *[]string               `json:"label_ids"`
	Checklist    *[]models.ChecklistItem `json:"checklist"`
	Assignees    *[]string               `json:"assignees"`
}

type moveCardRequest struct {
	ListID   string   `json:"list_id"`
	Position *float64 `json:"position"`
	Index    *int     `json:"index"`
}

type labelRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// ============================================================================
// Boards
// ============================================================================

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.opts.Boards.AllBoards(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if boards == nil {
		boards = []*models.Board{}
	}
	s.writeData(w, http.StatusOK, boards)
}

func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var req createBoardRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := s.opts.Boards.CreateBoard(r.Context(), req.Title)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusCreated, b)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	view, err := s.boardView(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, view)
}

func (s *Server) handleUpdateBoard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req updateBoardRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	update := board.BoardUpdate{Title: req.Title}
	if req.ViewMode != nil {
		mode, err := models.ParseViewMode(*req.ViewMode)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		update.ViewMode = &mode
	}

	if err := s.ensureBoard(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.opts.Boards.UpdateBoard(r.Context(), id, update); err != nil {
		s.writeError(w, r, err)
		return
	}
	b, _ := s.opts.Boards.Board(id)
	s.writeData(w, http.StatusOK, b)
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.ensureBoard(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.opts.Boards.DeleteBoard(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFilterCards(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	f, err := parseFilters(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.ensureBoard(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, s.opts.Boards.FilteredCards(id, f, s.opts.Clock.Now()))
}

// ============================================================================
// Lists
// ============================================================================

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req titleRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.opts.Boards.CreateList(r.Context(), id, req.Title)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusCreated, l)
}

func (s *Server) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req titleRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	boardID, err := s.opts.Boards.LoadBoardForList(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.opts.Boards.UpdateList(r.Context(), id, req.Title); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, findList(s.opts.Boards.Lists(boardID), id))
}

func (s *Server) handleMoveList(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req moveListRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if (req.Position == nil) == (req.Index == nil) {
		s.writeError(w, r, fmt.Errorf("%w: exactly one of position or index is required", errBadRequest))
		return
	}
	boardID, err := s.opts.Boards.LoadBoardForList(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Position != nil {
		err = s.opts.Boards.MoveList(r.Context(), id, *req.Position)
	} else {
		err = s.opts.Boards.DropList(r.Context(), id, *req.Index)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, s.opts.Boards.Lists(boardID))
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.opts.Boards.LoadBoardForList(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.opts.Boards.DeleteList(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// Cards
// ============================================================================

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	listID := mux.Vars(r)["id"]
	var req createCardRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	priority, err := models.ParsePriority(req.Priority)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.opts.Boards.CreateCard(r.Context(), board.CreateCardRequest{
		ListID:      listID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     req.DueDate,
		Assignees:   req.Assignees,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusCreated, c)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.opts.Boards.LoadBoardForCard(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, ok := s.opts.Boards.Card(id)
	if !ok {
		s.writeError(w, r, board.ErrCardNotFound)
		return
	}
	s.writeData(w, http.StatusOK, c)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req updateCardRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	update, err := req.toUpdate()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.opts.Boards.LoadBoardForCard(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.opts.Boards.UpdateCard(r.Context(), id, update); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, _ := s.opts.Boards.Card(id)
	s.writeData(w, http.StatusOK, c)
}

func (req updateCardRequest) toUpdate() (board.CardUpdate, error) {
	update := board.CardUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Completed:    req.Completed,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
	}
	if req.Priority != nil {
		p, err := models.ParsePriority(*req.Priority)
		if err != nil {
			return update, err
		}
		if p == models.PriorityNone {
			update.ClearPriority = true
		} else {
			update.Priority = &p
		}
	}
	// A present array replaces the field, an empty one clears it
	if req.LabelIDs != nil {
		update.LabelIDs = append([]string{}, *req.LabelIDs...)
	}
	if req.Checklist != nil {
		update.Checklist = append([]models.ChecklistItem{}, *req.Checklist...)
	}
	if req.Assignees != nil {
		update.Assignees = append([]string{}, *req.Assignees...)
	}
	return update, nil
}

func (s *Server) handleMoveCard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req moveCardRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Position != nil && req.Index != nil {
		s.writeError(w, r, fmt.Errorf("%w: position and index are mutually exclusive", errBadRequest))
		return
	}

	ctx := r.Context()
	if _, err := s.opts.Boards.LoadBoardForCard(ctx, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, ok := s.opts.Boards.Card(id)
	if !ok {
		s.writeError(w, r, board.ErrCardNotFound)
		return
	}
	toList := req.ListID
	if toList == "" {
		toList = c.ListID
	} else if _, err := s.opts.Boards.LoadBoardForList(ctx, toList); err != nil {
		s.writeError(w, r, err)
		return
	}

	var err error
	switch {
	case req.Index != nil:
		err = s.opts.Boards.DropCard(ctx, id, toList, *req.Index)
	case req.Position != nil:
		err = s.opts.Boards.MoveCard(ctx, id, toList, *req.Position)
	default:
		err = s.opts.Boards.MoveCard(ctx, id, toList, 0)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	moved, _ := s.opts.Boards.Card(id)
	s.writeData(w, http.StatusOK, moved)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.opts.Boards.LoadBoardForCard(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.opts.Boards.DeleteCard(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// Labels
// ============================================================================

func (s *Server) handleListLabels(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.ensureBoard(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, s.opts.Boards.Labels(id))
}

func (s *Server) handleCreateLabel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req labelRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	var name, color string
	if req.Name != nil {
		name = *req.Name
	}
	if req.Color != nil {
		color = *req.Color
	}
	l, err := s.opts.Boards.CreateLabel(r.Context(), id, name, color)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusCreated, l)
}

func (s *Server) handleUpdateLabel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req labelRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	boardID, err := s.opts.Boards.LoadBoardForLabel(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.opts.Boards.UpdateLabel(r.Context(), id, board.LabelUpdate{Name: req.Name, Color: req.Color}); err != nil {
		s.writeError(w, r, err)
		return
	}
	for _, l := range s.opts.Boards.Labels(boardID) {
		if l.ID == id {
			s.writeData(w, http.StatusOK, l)
			return
		}
	}
	s.writeError(w, r, board.ErrLabelNotFound)
}

func (s *Server) handleDeleteLabel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.opts.Boards.LoadBoardForLabel(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.opts.Boards.DeleteLabel(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// Helpers
// ============================================================================

// ensureBoard loads a board into the engine unless it already is
func (s *Server) ensureBoard(ctx context.Context, id string) error {
	if _, ok := s.opts.Boards.Board(id); ok {
		return nil
	}
	return s.opts.Boards.LoadBoard(ctx, id)
}

func (s *Server) boardView(ctx context.Context, id string) (*BoardView, error) {
	if err := s.ensureBoard(ctx, id); err != nil {
		return nil, err
	}
	b, ok := s.opts.Boards.Board(id)
	if !ok {
		return nil, board.ErrBoardNotFound
	}
	view := &BoardView{Board: b, Lists: []ListView{}, Labels: s.opts.Boards.Labels(id)}
	for _, l := range s.opts.Boards.Lists(id) {
		view.Lists = append(view.Lists, ListView{List: l, Cards: s.opts.Boards.Cards(l.ID)})
	}
	return view, nil
}

func findList(lists []*models.List, id string) *models.List {
	for _, l := range lists {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// parseFilters reads the board filter from the query string. Repeated and
// comma separated values are both accepted.
func parseFilters(r *http.Request) (filter.Filters, error) {
	q := r.URL.Query()
	f := filter.Default()
	f.SearchQuery = q.Get("q")
	f.SelectedLabels = multi(q["label"])
	f.SelectedLists = multi(q["list"])
	f.SelectedAssignees = multi(q["assignee"])
	for _, p := range multi(q["priority"]) {
		priority, err := models.ParsePriority(p)
		if err != nil {
			return f, err
		}
		f.SelectedPriorities = append(f.SelectedPriorities, priority)
	}
	if v := q.Get("show_completed"); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			return f, fmt.Errorf("%w: show_completed: %w", errBadRequest, err)
		}
		f.ShowCompleted = show
	}
	due, err := filter.ParseDueDateFilter(q.Get("due"))
	if err != nil {
		return f, err
	}
	f.DueDate = due
	return f, nil
}

func multi(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

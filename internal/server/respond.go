package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/thenoetrevino/tablero/internal/analytics"
	"github.com/thenoetrevino/tablero/internal/export"
	"github.com/thenoetrevino/tablero/internal/filter"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/services/board"
	"github.com/thenoetrevino/tablero/internal/services/dashboard"
)

// Error codes carried in the envelope
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodePersistence = "PERSISTENCE_ERROR"
	CodeInternal    = "INTERNAL_ERROR"
)

// errBadRequest wraps request decoding problems
var errBadRequest = errors.New("bad request")

// Envelope is the body of every JSON API response
type Envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError describes a failed request
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var validationErrors = []error{
	errBadRequest,
	board.ErrEmptyTitle,
	board.ErrTitleTooLong,
	board.ErrEmptyName,
	board.ErrNameTooLong,
	board.ErrInvalidColor,
	board.ErrInvalidViewMode,
	board.ErrInvalidPriority,
	board.ErrInvalidID,
	dashboard.ErrNoCards,
	dashboard.ErrNoActiveUser,
	dashboard.ErrInvalidDays,
	dashboard.ErrInvalidScope,
	analytics.ErrUnknownDateRange,
	filter.ErrUnknownDueDateFilter,
	filter.ErrUnknownQuickFilter,
	models.ErrUnknownPriority,
	models.ErrUnknownViewMode,
	export.ErrUnknownFormat,
}

var notFoundErrors = []error{
	board.ErrBoardNotFound,
	board.ErrListNotFound,
	board.ErrCardNotFound,
	board.ErrLabelNotFound,
	errRouteNotFound,
}

// classify maps an error to its HTTP status and envelope code
func classify(err error) (int, string) {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, CodeValidation
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound, CodeNotFound
		}
	}
	if errors.Is(err, board.ErrPersistence) {
		return http.StatusInternalServerError, CodePersistence
	}
	return http.StatusInternalServerError, CodeInternal
}

func (s *Server) writeData(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, Envelope{Success: true, Data: data})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.metrics.IncErrors()
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		slog.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeEnvelope(w, status, Envelope{Error: &APIError{Code: code, Message: err.Error()}})
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

// decode reads a JSON body into v, rejecting unknown fields
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return nil
}

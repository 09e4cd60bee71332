// Package server exposes the board engine and the dashboard over a JSON
// HTTP API and pushes change events to browsers over a websocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/thenoetrevino/tablero/internal/analytics"
	"github.com/thenoetrevino/tablero/internal/clock"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/export"
	"github.com/thenoetrevino/tablero/internal/filter"
	"github.com/thenoetrevino/tablero/internal/services/board"
	"github.com/thenoetrevino/tablero/internal/services/dashboard"
)

const shutdownTimeout = 5 * time.Second

var errRouteNotFound = errors.New("route not found")

// Bus is the part of the event bus the server reads from
type Bus interface {
	events.Subscriber
	Subscribers() int
	Dropped() int64
}

// Options configures a Server
type Options struct {
	Addr           string
	AllowedOrigins []string
	Boards         board.Service
	Dashboard      dashboard.Service
	Bus            Bus
	Clock          clock.Clock

	// Used when a dashboard request leaves range or quick unset
	DefaultRange analytics.DateRange
	DefaultQuick filter.QuickFilter

	// Sections hidden from Markdown exports
	Layout export.Layout
}

// Server serves the API and the websocket endpoint
type Server struct {
	opts     Options
	router   *mux.Router
	hub      *Hub
	metrics  *Metrics
	upgrader websocket.Upgrader
}

// New builds the router for opts. Call Run to serve or Handler to mount
// it elsewhere.
func New(opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	metrics := NewMetrics()
	s := &Server{
		opts:    opts,
		router:  mux.NewRouter(),
		hub:     NewHub(metrics),
		metrics: metrics,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.countRequests)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errRouteNotFound)
	})

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/boards", s.handleListBoards).Methods("GET")
	api.HandleFunc("/boards", s.handleCreateBoard).Methods("POST")
	api.HandleFunc("/boards/{id}", s.handleGetBoard).Methods("GET")
	api.HandleFunc("/boards/{id}", s.handleUpdateBoard).Methods("PATCH")
	api.HandleFunc("/boards/{id}", s.handleDeleteBoard).Methods("DELETE")
	api.HandleFunc("/boards/{id}/lists", s.handleCreateList).Methods("POST")
	api.HandleFunc("/boards/{id}/labels", s.handleListLabels).Methods("GET")
	api.HandleFunc("/boards/{id}/labels", s.handleCreateLabel).Methods("POST")
	api.HandleFunc("/boards/{id}/cards", s.handleFilterCards).Methods("GET")

	api.HandleFunc("/lists/{id}", s.handleUpdateList).Methods("PATCH")
	api.HandleFunc("/lists/{id}", s.handleDeleteList).Methods("DELETE")
	api.HandleFunc("/lists/{id}/move", s.handleMoveList).Methods("POST")
	api.HandleFunc("/lists/{id}/cards", s.handleCreateCard).Methods("POST")

	api.HandleFunc("/cards/{id}", s.handleGetCard).Methods("GET")
	api.HandleFunc("/cards/{id}", s.handleUpdateCard).Methods("PATCH")
	api.HandleFunc("/cards/{id}", s.handleDeleteCard).Methods("DELETE")
	api.HandleFunc("/cards/{id}/move", s.handleMoveCard).Methods("POST")

	api.HandleFunc("/labels/{id}", s.handleUpdateLabel).Methods("PATCH")
	api.HandleFunc("/labels/{id}", s.handleDeleteLabel).Methods("DELETE")

	api.HandleFunc("/dashboard/metrics", s.handleDashboardMetrics).Methods("GET")
	api.HandleFunc("/dashboard/my-tasks", s.handleMyTasks).Methods("GET")
	api.HandleFunc("/dashboard/export", s.handleExport).Methods("GET")
	api.HandleFunc("/dashboard/complete", s.handleCompleteCards).Methods("POST")
	api.HandleFunc("/dashboard/reschedule", s.handleRescheduleCards).Methods("POST")
	api.HandleFunc("/dashboard/claim/{id}", s.handleClaimCard).Methods("POST")

	api.HandleFunc("/metrics", s.handleMetrics).Methods("GET")
	r.HandleFunc("/ws", s.handleWebSocket).Methods("GET")
}

// Handler returns the router wrapped with CORS
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(s.router)
}

// Metrics exposes the server counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run relays bus events to websocket clients and serves HTTP on
// opts.Addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.opts.Bus != nil {
		go s.hub.Run(ctx, s.opts.Bus)
	}

	srv := &http.Server{
		Handler:      s.Handler(),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// countRequests is the router middleware feeding the request counter
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncRequests()
		next.ServeHTTP(w, r)
	})
}

// checkOrigin accepts same-host requests and the configured origins
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.opts.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

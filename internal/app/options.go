package app

import (
	"log/slog"

	"github.com/thenoetrevino/tablero/internal/clock"
	"github.com/thenoetrevino/tablero/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	bus    *events.Bus
	clock  clock.Clock
	logger *slog.Logger
}

// WithBus sets the event bus the services publish to
func WithBus(bus *events.Bus) Option {
	return func(cfg *appConfig) {
		cfg.bus = bus
	}
}

// WithClock replaces the wall clock, mostly for tests
func WithClock(clk clock.Clock) Option {
	return func(cfg *appConfig) {
		cfg.clock = clk
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

package server

import (
	"sync/atomic"
	"time"
)

// Metrics tracks server statistics using atomic operations for thread-safety
type Metrics struct {
	RequestsTotal    atomic.Int64
	RequestErrors    atomic.Int64
	EventsPushed     atomic.Int64
	ClientsDropped   atomic.Int64
	ConnectedClients atomic.Int32
	StartTime        time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncRequests counts one handled API request
func (m *Metrics) IncRequests() {
	m.RequestsTotal.Add(1)
}

// IncErrors counts one request answered with an error envelope
func (m *Metrics) IncErrors() {
	m.RequestErrors.Add(1)
}

// IncEventsPushed counts one event written to a websocket client
func (m *Metrics) IncEventsPushed() {
	m.EventsPushed.Add(1)
}

// IncClientsDropped counts a client disconnected for falling behind
func (m *Metrics) IncClientsDropped() {
	m.ClientsDropped.Add(1)
}

// SetConnectedClients sets the current websocket client count
func (m *Metrics) SetConnectedClients(count int32) {
	m.ConnectedClients.Store(count)
}

// MetricsSnapshot is a point-in-time view of the counters
type MetricsSnapshot struct {
	RequestsTotal    int64  `json:"requests_total"`
	RequestErrors    int64  `json:"request_errors"`
	EventsPushed     int64  `json:"events_pushed"`
	EventsDropped    int64  `json:"events_dropped"`
	ClientsDropped   int64  `json:"clients_dropped"`
	ConnectedClients int32  `json:"connected_clients"`
	Subscribers      int    `json:"subscribers"`
	LoadedBoards     int    `json:"loaded_boards"`
	Uptime           string `json:"uptime"`
}

// Snapshot returns the counters. Bus and engine figures are filled in by
// the caller.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		RequestsTotal:    m.RequestsTotal.Load(),
		RequestErrors:    m.RequestErrors.Load(),
		EventsPushed:     m.EventsPushed.Load(),
		ClientsDropped:   m.ClientsDropped.Load(),
		ConnectedClients: m.ConnectedClients.Load(),
		Uptime:           time.Since(m.StartTime).Round(time.Second).String(),
	}
}

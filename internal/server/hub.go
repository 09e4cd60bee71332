package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/thenoetrevino/tablero/internal/events"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Per-client queue of outbound messages
	clientBufferSize = 64
)

// Message types written to websocket clients
const (
	MessageEvent = "event"
	MessagePong  = "pong"
)

// Message is the envelope for every websocket frame
type Message struct {
	Type string        `json:"type"`
	Data *events.Event `json:"data,omitempty"`
}

// client is one websocket connection, optionally narrowed to a board
type client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	pong    chan struct{}
	boardID string
}

// readPump drains the connection, answering application level pings and
// keeping the read deadline alive on pongs
func (c *client) readPump() {
	defer func() {
		c.hub.unregisterClient(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read error", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Debug("ignoring malformed websocket message", "error", err)
			continue
		}
		if msg.Type == "ping" {
			select {
			case c.pong <- struct{}{}:
			default:
			}
		}
	}
}

// writePump sends queued messages and periodic pings until send closes
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-c.pong:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(Message{Type: MessagePong}); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Hub relays change events from the bus to connected websocket clients.
// A client whose queue is full is disconnected and must reconnect and
// refetch.
type Hub struct {
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	done       chan struct{}
	closeOnce  sync.Once
	metrics    *Metrics
}

// NewHub creates a hub; call Run to start relaying
func NewHub(metrics *Metrics) *Hub {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		metrics:    metrics,
	}
}

// registerClient hands c to the running hub. It gives up when the hub has
// stopped or is not running.
func (h *Hub) registerClient(c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	case <-time.After(writeWait):
		slog.Warn("websocket hub not running, refusing client")
		return false
	}
}

func (h *Hub) unregisterClient(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run relays events from sub until ctx is done or the bus closes the
// subscription. Every client is disconnected on return and later
// registrations are refused. Run may be called again after it returns
// but never concurrently.
func (h *Hub) Run(ctx context.Context, sub events.Subscriber) {
	ch, cancel := sub.Subscribe("")
	defer cancel()
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.metrics.SetConnectedClients(int32(len(h.clients)))
			slog.Debug("websocket client connected", "board_id", c.boardID)
		case c := <-h.unregister:
			h.remove(c)
		case ev, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast(ev)
		}
	}
}

func (h *Hub) broadcast(ev events.Event) {
	data, err := json.Marshal(Message{Type: MessageEvent, Data: &ev})
	if err != nil {
		slog.Error("failed to encode event", "error", err)
		return
	}
	for c := range h.clients {
		if c.boardID != "" && c.boardID != ev.BoardID {
			continue
		}
		select {
		case c.send <- data:
			h.metrics.IncEventsPushed()
		default:
			slog.Warn("websocket client too slow, disconnecting", "board_id", c.boardID)
			h.metrics.IncClientsDropped()
			h.remove(c)
		}
	}
}

func (h *Hub) remove(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.metrics.SetConnectedClients(int32(len(h.clients)))
}

func (h *Hub) shutdown() {
	for c := range h.clients {
		h.remove(c)
	}
	h.closeOnce.Do(func() { close(h.done) })
}

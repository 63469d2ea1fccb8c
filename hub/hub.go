// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"
)

// Message is the envelope broadcast to every open connection.
type Message struct {
	Message string `json:"message"`
}

// Conn is an ephemeral handle to one live client. It exists only while
// the transport session is open and guards its socket with a mutex so
// concurrent broadcasts never interleave frames.
type Conn struct {
	id string

	mu sync.Mutex
	ws *websocket.Conn
}

func (c *Conn) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return websocket.JSON.Send(c.ws, msg)
}

// Hub is the process-wide connection registry. Register, Deregister and
// Broadcast may run concurrently from independent connection lifetimes.
type Hub struct {
	mu    sync.Mutex
	conns map[*Conn]struct{}
}

func New() *Hub {
	return &Hub{conns: make(map[*Conn]struct{})}
}

// Register adds a live socket to the connection set.
func (h *Hub) Register(ws *websocket.Conn) *Conn {
	conn := &Conn{id: uuid.NewString(), ws: ws}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	count := len(h.conns)
	h.mu.Unlock()

	slog.Info("client connected", "conn_id", conn.id, "connections", count)
	return conn
}

// Deregister removes a connection from the set. Safe to call twice.
func (h *Hub) Deregister(conn *Conn) {
	h.mu.Lock()
	_, present := h.conns[conn]
	delete(h.conns, conn)
	count := len(h.conns)
	h.mu.Unlock()

	if present {
		slog.Info("client disconnected", "conn_id", conn.id, "connections", count)
	}
}

// Broadcast relays a message to every currently open connection,
// including the sender. The set is snapshotted under the lock; writes
// happen outside it so a slow client never blocks registration. A write
// failure only means that client is on its way out - its own receive
// loop handles deregistration.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	conns := make([]*Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		if err := conn.send(msg); err != nil {
			slog.Warn("broadcast write failed", "conn_id", conn.id, "error", err)
		}
	}
}

// Len reports the number of registered connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Handler returns the HTTP handler serving the /ws endpoint.
func (h *Hub) Handler() websocket.Handler {
	return websocket.Handler(h.serve)
}

// serve runs one connection's lifecycle: register, relay inbound text
// frames to everyone, deregister on transport error or close.
func (h *Hub) serve(ws *websocket.Conn) {
	conn := h.Register(ws)
	defer h.Deregister(conn)

	for {
		var text string
		if err := websocket.Message.Receive(ws, &text); err != nil {
			// io.EOF on clean close; anything else is a dead transport
			return
		}
		h.Broadcast(Message{Message: text})
	}
}

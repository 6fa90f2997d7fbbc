// Package server exposes a read-only websocket spectator feed: every tick
// the simulation broadcasts one JSON snapshot to all connected clients.
// It carries no input channel back into the game and no shared state;
// clients that fall behind are dropped rather than slowing the tick loop.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 5 * time.Second
	// sendBuffer is how many snapshots a slow client may lag before being
	// disconnected.
	sendBuffer = 16
)

// Hub fans one stream of snapshots out to websocket spectators.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
	closed  bool
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Spectating is public read-only data.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

// ServeHTTP upgrades the request to a websocket and streams snapshots
// until the client disconnects or falls too far behind.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "err", err)
		return
	}

	send := make(chan []byte, sendBuffer)
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[conn] = send
	n := len(h.clients)
	h.mu.Unlock()
	slog.Info("spectator connected", "remote", conn.RemoteAddr().String(), "clients", n)

	// Drain (and ignore) client frames so pings and close frames are
	// processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)
				return
			}
		}
	}()

	for msg := range send {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.drop(conn)
			return
		}
	}
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown"))
	_ = conn.Close()
}

// Broadcast marshals v once and queues it to every client. Clients whose
// queue is full are dropped; the simulation never blocks on a spectator.
func (h *Hub) Broadcast(v any) {
	msg, err := json.Marshal(v)
	if err != nil {
		slog.Error("snapshot marshal failed", "err", err)
		return
	}

	h.mu.Lock()
	var slow []*websocket.Conn
	for conn, send := range h.clients {
		select {
		case send <- msg:
		default:
			slow = append(slow, conn)
		}
	}
	h.mu.Unlock()

	for _, conn := range slow {
		slog.Info("dropping slow spectator", "remote", conn.RemoteAddr().String())
		h.drop(conn)
	}
}

// ClientCount returns the number of connected spectators.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects future ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	for conn, send := range h.clients {
		delete(h.clients, conn)
		close(send)
		_ = conn
	}
	h.mu.Unlock()
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	send, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
		close(send)
	}
	h.mu.Unlock()
	if ok {
		_ = conn.Close()
	}
}

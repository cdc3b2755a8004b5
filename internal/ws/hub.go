package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"alerting-service/internal/logging"
	"alerting-service/internal/models"
)

// writeTimeout is the deadline for a single write to a client.
const writeTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins — CORS is applied at the reverse proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is the JSON envelope broadcast to clients for every alert.
type Message struct {
	Event string              `json:"event"`
	Data  models.AlertPayload `json:"data"`
}

// Hub holds the live WebSocket connections and pushes every dispatched alert
// to all of them. It satisfies the dispatcher's Sender interface so the feed
// participates in severity routing like any other channel.
type Hub struct {
	logger *logging.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewHub creates an empty hub.
func NewHub(logger *logging.Logger) *Hub {
	return &Hub{
		logger: logger,
		conns:  make(map[*websocket.Conn]bool),
	}
}

// Handle upgrades an HTTP request and tracks the connection until the peer
// closes it.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorf("WebSocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = true
	count := len(h.conns)
	h.mu.Unlock()
	h.logger.Infof("WebSocket client connected (%d active)", count)

	// Drain reads to detect close; inbound messages are ignored.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.remove(conn)
				return
			}
		}
	}()
}

// Send broadcasts the alert to every connected client. Dead connections are
// dropped. Broadcast is best-effort and never returns an error.
func (h *Hub) Send(_ context.Context, p models.AlertPayload) error {
	msg := Message{Event: "alert", Data: p}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Warnf("WebSocket write failed, dropping client: %v", err)
			_ = conn.Close()
			delete(h.conns, conn)
		}
	}
	return nil
}

// Close shuts down all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.Close()
		delete(h.conns, conn)
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[conn] {
		_ = conn.Close()
		delete(h.conns, conn)
	}
}

// Package ws pushes order/bill/payment events to connected dashboard
// clients so the admin UI does not have to poll.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard origin is enforced by the CORS layer; the upgrade
	// itself accepts any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type event struct {
	Tenant_id string    `json:"tenant_id"`
	Event     string    `json:"event"`
	Payload   any       `json:"payload,omitempty"`
	Time      time.Time `json:"time"`
}

type client struct {
	tenantID string
	conn     *websocket.Conn
	send     chan []byte
}

// Hub fans events out to every dashboard connection of the same tenant.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Publish implements the services event sink. An empty tenant id is a
// broadcast to every connection.
func (h *Hub) Publish(tenantID, name string, payload any) {
	msg, err := json.Marshal(event{
		Tenant_id: tenantID,
		Event:     name,
		Payload:   payload,
		Time:      time.Now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Str("event", name).Msg("event not serializable")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if tenantID != "" && c.tenantID != tenantID {
			continue
		}
		select {
		case c.send <- msg:
		default:
			// Slow consumer: drop the connection rather than the hub.
			close(c.send)
			delete(h.clients, c)
		}
	}
}

// Serve upgrades the request and streams events for the given tenant
// until the client disconnects.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, tenantID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	c := &client{tenantID: tenantID, conn: conn, send: make(chan []byte, 32)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) writeLoop(c *client) {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
	c.conn.Close()
}

// readLoop discards inbound frames; it exists to notice disconnects.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		close(c.send)
		delete(h.clients, c)
	}
	h.mu.Unlock()
	c.conn.Close()
}

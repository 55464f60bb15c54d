package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"pipeguard/src/logger"
)

// Hub tracks connected dashboard websockets and broadcasts refresh
// events to all of them. Clients are write-only from the server's point
// of view; inbound frames are drained and discarded.
type Hub struct {
	mu sync.RWMutex
	// Each connection carries its own write mutex; gorilla/websocket
	// allows at most one concurrent writer per connection.
	clients  map[*websocket.Conn]*sync.Mutex
	upgrader websocket.Upgrader
	log      logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*sync.Mutex),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The dashboard is served from the same process.
				return true
			},
		},
		log: log,
	}
}

// HandleWebSocket upgrades the request and keeps the connection
// registered until the client goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("failed to upgrade websocket: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = &sync.Mutex{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Debug("websocket closed: %v", err)
			}
			return
		}
	}
}

// Broadcast sends v as JSON to every connected client. Write failures
// are logged; the failing client is cleaned up by its read loop.
func (h *Hub) Broadcast(v interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn, wmu := range h.clients {
		wmu.Lock()
		err := conn.WriteJSON(v)
		wmu.Unlock()
		if err != nil {
			h.log.Error("failed to send websocket message: %v", err)
		}
	}
}

// ClientCount reports the number of connected dashboards.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

package ws

import (
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/perkola/ty-fighter/internal/game"
	"github.com/perkola/ty-fighter/internal/metrics"
)

// Hub upgrades HTTP requests to websocket connections and tracks every live
// client. All game semantics live in the orchestrator; the hub only moves
// frames.
type Hub struct {
	orchestrator *game.Orchestrator
	metrics      metrics.Metrics
	upgrader     websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*Client
	closed  bool
}

func NewHub(orchestrator *game.Orchestrator, m metrics.Metrics, allowedOrigin string) *Hub {
	return &Hub{
		orchestrator: orchestrator,
		metrics:      m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
		clients: make(map[string]*Client),
	}
}

// ServeWS is the /ws handler.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade websocket", "error", err)
		return
	}

	client := newClient(h, conn)
	if !h.register(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	log.Debug("Websocket connected", "conn", client.ID())
}

func (h *Hub) register(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[client.ID()] = client
	h.metrics.IncActiveConnections()
	return true
}

// unregister drops the client from the hub and sweeps it out of any room it
// occupied. Safe to call more than once per client.
func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	_, known := h.clients[client.ID()]
	if known {
		delete(h.clients, client.ID())
	}
	h.mu.Unlock()

	if !known {
		return
	}
	h.metrics.DecActiveConnections()
	h.orchestrator.Disconnect(client)
	log.Debug("Websocket disconnected", "conn", client.ID())
}

// ClientCount reports the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown closes every live connection and refuses new registrations.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	// Sweep each client out of the hub and its room before signalling the
	// connection teardown, so no room broadcast can reach a closing client.
	for _, c := range clients {
		h.unregister(c)
		c.close()
	}
	log.Info("Websocket hub stopped", "connections_closed", len(clients))
}

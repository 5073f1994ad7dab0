// Package stream fans world events out to connected spectators. A single
// Hub serves every subscriber regardless of whether they arrived over SSE
// or a websocket; transports only differ in how they frame the bytes.
package stream

import (
	"log/slog"
	"sync"
	"time"
)

// Frame is one event ready for delivery: the event name plus its JSON
// encoded envelope.
type Frame struct {
	Event string
	Data  []byte
}

// Hub manages the set of subscribed clients
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan Frame
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("component", "stream")),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Frame, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("event hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("subscriber registered",
				slog.Uint64("player_id", uint64(client.playerID)),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("subscriber unregistered",
					slog.Uint64("player_id", uint64(client.playerID)),
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case frame := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				select {
				case client.send <- frame:
				default:
					dropped++
					h.logger.Warn("frame dropped - client buffer full",
						slog.Uint64("player_id", uint64(client.playerID)),
						slog.String("event", frame.Event))
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("broadcast partial failure",
					slog.String("event", frame.Event),
					slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("event hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// Register adds a client to the hub. Registrations arriving after Close
// are dropped.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a client from the hub. After Close this is a no-op;
// the shutdown path already released every registered client.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues a frame for delivery to all clients. Frames are
// dropped rather than blocking the caller when the hub is backed up.
func (h *Hub) Broadcast(frame Frame) {
	select {
	case h.broadcast <- frame:
	default:
		h.logger.Warn("broadcast dropped - hub buffer full",
			slog.String("event", frame.Event))
	}
}

// Close shuts down the hub and disconnects all clients. Safe to call
// more than once.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

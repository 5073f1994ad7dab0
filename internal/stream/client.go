package stream

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
)

const (
	// Time between keepalive comments on SSE connections
	pingPeriod = 15 * time.Second

	// Buffer size for outgoing frames
	sendBufferSize = 256
)

// Client represents one subscribed spectator
type Client struct {
	hub         *Hub
	playerID    model.PlayerID
	send        chan Frame
	connectedAt time.Time
}

// NewClient creates a new client for the given player
func NewClient(hub *Hub, playerID model.PlayerID) *Client {
	return &Client{
		hub:         hub,
		playerID:    playerID,
		send:        make(chan Frame, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// Frames returns the channel the hub delivers on. The channel is closed
// when the client is unregistered.
func (c *Client) Frames() <-chan Frame {
	return c.send
}

// ServeSSE subscribes the request to the hub and streams frames until the
// client goes away.
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, playerID model.PlayerID) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := NewClient(hub, playerID)
	hub.Register(client)
	defer hub.Unregister(client)

	// Confirm the subscription before the first world event arrives
	_, _ = w.Write(formatSSEMessage("connected", []byte(`{"status":"connected"}`)))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case frame, ok := <-client.send:
			if !ok {
				// Hub closed the channel
				return
			}
			if _, err := w.Write(formatSSEMessage(frame.Event, frame.Data)); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// formatSSEMessage renders an event name and data block in SSE wire
// format. Each line of data gets its own "data: " prefix.
func formatSSEMessage(event string, data []byte) []byte {
	var b bytes.Buffer
	b.WriteString("event: ")
	b.WriteString(event)
	b.WriteByte('\n')

	body := strings.ReplaceAll(string(data), "\r\n", "\n")
	body = strings.TrimSuffix(body, "\n")
	for _, line := range strings.Split(body, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	return b.Bytes()
}

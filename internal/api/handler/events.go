package handler

import (
	"net/http"

	"github.com/Remblej/Game-of-Space-and-Time/internal/api/middleware"
	"github.com/Remblej/Game-of-Space-and-Time/internal/stream"
)

// EventsHandler handles the server-sent events endpoint
type EventsHandler struct {
	hub *stream.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *stream.Hub) *EventsHandler {
	return &EventsHandler{
		hub: hub,
	}
}

// Stream handles GET /api/v1/events. The connection stays open until the
// client goes away; every world event published after subscription is
// delivered in order.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetPlayer(r.Context())
	stream.ServeSSE(w, r, h.hub, caller.ID)
}

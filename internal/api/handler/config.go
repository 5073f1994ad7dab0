package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Remblej/Game-of-Space-and-Time/internal/api/request"
	"github.com/Remblej/Game-of-Space-and-Time/internal/api/response"
	"github.com/Remblej/Game-of-Space-and-Time/internal/services/world"
)

// ConfigHandler handles world configuration endpoints
type ConfigHandler struct {
	world *world.Controller
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(world *world.Controller) *ConfigHandler {
	return &ConfigHandler{
		world: world,
	}
}

// Get handles GET /api/v1/config
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.world.Config(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ConfigFromModel(cfg))
}

// UpdateTickInterval handles PUT /api/v1/config/tick-interval
func (h *ConfigHandler) UpdateTickInterval(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateTickIntervalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	cfg, err := h.world.UpdateTickInterval(r.Context(), req.TickIntervalMS)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ConfigFromModel(cfg))
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Remblej/Game-of-Space-and-Time/internal/api/middleware"
	"github.com/Remblej/Game-of-Space-and-Time/internal/api/request"
	"github.com/Remblej/Game-of-Space-and-Time/internal/api/response"
	"github.com/Remblej/Game-of-Space-and-Time/internal/services/player"
	"github.com/Remblej/Game-of-Space-and-Time/internal/services/world"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	directory *player.Directory
	world     *world.Controller
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(directory *player.Directory, world *world.Controller) *PlayerHandler {
	return &PlayerHandler{
		directory: directory,
		world:     world,
	}
}

// Connect handles POST /api/v1/connect. It registers the caller identity
// if unseen and hands back their player record plus the current grid, so
// a client can render the world from its first response.
func (h *PlayerHandler) Connect(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	if identity == "" {
		WriteError(w, NewUnauthorizedError())
		return
	}

	caller, err := h.directory.Connect(r.Context(), identity)
	if err != nil {
		WriteError(w, err)
		return
	}

	generation, cells, err := h.world.Snapshot(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ConnectResponse{
		Player: response.PlayerFromModel(caller),
		Grid:   response.GridFromModel(generation, cells),
	})
}

// GetMe handles GET /api/v1/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetPlayer(r.Context())
	response.JSON(w, http.StatusOK, response.PlayerFromModel(caller))
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.directory.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// SetColor handles PUT /api/v1/players/me/color
func (h *PlayerHandler) SetColor(w http.ResponseWriter, r *http.Request) {
	var req request.SetColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Color == "" {
		WriteError(w, NewInvalidRequestError("color is required"))
		return
	}

	caller := middleware.MustGetPlayer(r.Context())
	updated, err := h.directory.SetColor(r.Context(), caller.Identity, req.Color)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(updated))
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Remblej/Game-of-Space-and-Time/internal/api/middleware"
	"github.com/Remblej/Game-of-Space-and-Time/internal/api/request"
	"github.com/Remblej/Game-of-Space-and-Time/internal/api/response"
	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
	"github.com/Remblej/Game-of-Space-and-Time/internal/services/world"
)

// GridHandler handles grid endpoints
type GridHandler struct {
	world *world.Controller
}

// NewGridHandler creates a new grid handler
func NewGridHandler(world *world.Controller) *GridHandler {
	return &GridHandler{
		world: world,
	}
}

// Get handles GET /api/v1/grid
func (h *GridHandler) Get(w http.ResponseWriter, r *http.Request) {
	generation, cells, err := h.world.Snapshot(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GridFromModel(generation, cells))
}

// AddCells handles POST /api/v1/cells. Positions are taken as sent; the
// simulation's boundary cull deals with anything off the playfield.
func (h *GridHandler) AddCells(w http.ResponseWriter, r *http.Request) {
	var req request.AddCellsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	cells := make([]model.Cell, len(req.Cells))
	for i, c := range req.Cells {
		cells[i] = model.Cell{X: c.X, Y: c.Y}
	}

	caller := middleware.MustGetPlayer(r.Context())
	if err := h.world.AddCells(r.Context(), caller.Identity, cells); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

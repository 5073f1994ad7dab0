package request

// Cell is a grid position in request bodies
type Cell struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// AddCellsRequest is the request body for seeding cells
type AddCellsRequest struct {
	Cells []Cell `json:"cells"`
}

// SetColorRequest is the request body for changing the caller's color
type SetColorRequest struct {
	Color string `json:"color"`
}

// UpdateTickIntervalRequest is the request body for changing the tick cadence
type UpdateTickIntervalRequest struct {
	TickIntervalMS uint32 `json:"tick_interval_ms"`
}

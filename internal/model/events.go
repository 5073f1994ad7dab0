package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventPlayerConnected     EventType = "player_connected"
	EventCellsAdded          EventType = "cells_added"
	EventColorChanged        EventType = "color_changed"
	EventTickCompleted       EventType = "tick_completed"
	EventTickIntervalChanged EventType = "tick_interval_changed"
)

// Event is the base structure for all world events
type Event struct {
	Type      EventType
	Timestamp time.Time
	Payload   any // Type-specific data
}

// PlayerConnectedPayload contains data for player connected events
type PlayerConnectedPayload struct {
	Player Player
}

// CellsAddedPayload contains data for cells added events
type CellsAddedPayload struct {
	PlayerID PlayerID
	Cells    []Cell
}

// ColorChangedPayload contains data for color changed events
type ColorChangedPayload struct {
	PlayerID PlayerID
	ColorHex string
}

// TickSummary describes one completed generation. It doubles as the
// payload for tick completed events. Births and Deaths are sorted by
// (y, x) so consumers see a stable order.
type TickSummary struct {
	Generation uint64
	Births     []AliveCell
	Deaths     []Cell
	Alive      int
}

// TickIntervalChangedPayload contains data for interval change events
type TickIntervalChangedPayload struct {
	TickIntervalMS uint32
}

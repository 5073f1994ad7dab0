package response

import (
	"time"

	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
)

// Cell identifies a single grid position
type Cell struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// CellFromModel converts a model.Cell to a response Cell
func CellFromModel(c model.Cell) Cell {
	return Cell{X: c.X, Y: c.Y}
}

// CellsFromModel converts a slice of model cells
func CellsFromModel(cells []model.Cell) []Cell {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		out[i] = CellFromModel(c)
	}
	return out
}

// AliveCell is a live cell together with its owning player
type AliveCell struct {
	X        int32  `json:"x"`
	Y        int32  `json:"y"`
	PlayerID uint32 `json:"player_id"`
}

// AliveCellFromModel converts a model.AliveCell to a response AliveCell
func AliveCellFromModel(c model.AliveCell) AliveCell {
	return AliveCell{X: c.X, Y: c.Y, PlayerID: uint32(c.PlayerID)}
}

// AliveCellsFromModel converts a slice of model alive cells
func AliveCellsFromModel(cells []model.AliveCell) []AliveCell {
	out := make([]AliveCell, len(cells))
	for i, c := range cells {
		out[i] = AliveCellFromModel(c)
	}
	return out
}

// Player represents a player in API responses. The identity string is a
// credential, so it is never included here.
type Player struct {
	ID        uint32    `json:"id"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:        uint32(p.ID),
		Color:     p.ColorHex,
		CreatedAt: p.CreatedAt,
	}
}

// PlayersFromModel converts a slice of model players
func PlayersFromModel(players []model.Player) []Player {
	out := make([]Player, len(players))
	for i := range players {
		out[i] = PlayerFromModel(&players[i])
	}
	return out
}

// Config represents the world configuration
type Config struct {
	TickIntervalMS uint32 `json:"tick_interval_ms"`
}

// ConfigFromModel converts a model.Config to a response Config
func ConfigFromModel(c *model.Config) Config {
	return Config{TickIntervalMS: c.TickIntervalMS}
}

// Grid is a snapshot of the world at a generation
type Grid struct {
	Generation uint64      `json:"generation"`
	Width      int32       `json:"width"`
	Height     int32       `json:"height"`
	Cells      []AliveCell `json:"cells"`
}

// GridFromModel builds a Grid response from a generation and alive set
func GridFromModel(generation uint64, cells []model.AliveCell) Grid {
	return Grid{
		Generation: generation,
		Width:      model.PlayfieldWidth,
		Height:     model.PlayfieldHeight,
		Cells:      AliveCellsFromModel(cells),
	}
}

// TickSummary describes one completed generation
type TickSummary struct {
	Generation uint64      `json:"generation"`
	Births     []AliveCell `json:"births"`
	Deaths     []Cell      `json:"deaths"`
	Alive      int         `json:"alive"`
}

// TickSummaryFromModel converts a model.TickSummary
func TickSummaryFromModel(s *model.TickSummary) TickSummary {
	return TickSummary{
		Generation: s.Generation,
		Births:     AliveCellsFromModel(s.Births),
		Deaths:     CellsFromModel(s.Deaths),
		Alive:      s.Alive,
	}
}

// ConnectResponse is the response for the connect endpoint
type ConnectResponse struct {
	Player Player `json:"player"`
	Grid   Grid   `json:"grid"`
}

// Event is the envelope for streamed world events
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// PlayerConnectedEvent is the payload for player connected events
type PlayerConnectedEvent struct {
	Player Player `json:"player"`
}

// CellsAddedEvent is the payload for cells added events
type CellsAddedEvent struct {
	PlayerID uint32 `json:"player_id"`
	Cells    []Cell `json:"cells"`
}

// ColorChangedEvent is the payload for color changed events
type ColorChangedEvent struct {
	PlayerID uint32 `json:"player_id"`
	Color    string `json:"color"`
}

// EventFromModel converts a model.Event, translating its payload to the
// matching wire type. Unknown payloads pass through unconverted.
func EventFromModel(e model.Event) Event {
	out := Event{
		Type:      string(e.Type),
		Timestamp: e.Timestamp,
		Payload:   e.Payload,
	}

	switch p := e.Payload.(type) {
	case model.PlayerConnectedPayload:
		out.Payload = PlayerConnectedEvent{Player: PlayerFromModel(&p.Player)}
	case model.CellsAddedPayload:
		out.Payload = CellsAddedEvent{
			PlayerID: uint32(p.PlayerID),
			Cells:    CellsFromModel(p.Cells),
		}
	case model.ColorChangedPayload:
		out.Payload = ColorChangedEvent{
			PlayerID: uint32(p.PlayerID),
			Color:    p.ColorHex,
		}
	case model.TickSummary:
		out.Payload = TickSummaryFromModel(&p)
	case model.TickIntervalChangedPayload:
		out.Payload = Config{TickIntervalMS: p.TickIntervalMS}
	}

	return out
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Viewport bounds for text grid rendering. Larger boards are cropped to the
// top-left of the live cells' bounding box.
const (
	maxViewportWidth  = 96
	maxViewportHeight = 48
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case ConnectResult:
		o.printConnectResult(v)
	case Grid:
		o.printGrid(v)
	case WorldConfig:
		o.printWorldConfig(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID        uint32    `json:"id"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// AliveCell response type
type AliveCell struct {
	X        int32  `json:"x"`
	Y        int32  `json:"y"`
	PlayerID uint32 `json:"player_id"`
}

// Grid response type
type Grid struct {
	Generation uint64      `json:"generation"`
	Width      int32       `json:"width"`
	Height     int32       `json:"height"`
	Cells      []AliveCell `json:"cells"`
}

// ConnectResult combines the player and the current grid
type ConnectResult struct {
	Player Player `json:"player"`
	Grid   Grid   `json:"grid"`
}

// WorldConfig response type
type WorldConfig struct {
	TickIntervalMS uint32 `json:"tick_interval_ms"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %d\n", p.ID)
	fmt.Printf("Color: %s\n", p.Color)
	fmt.Printf("Joined: %s\n", p.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printPlayers(players []Player) {
	fmt.Printf("Players (%d):\n", len(players))
	for _, p := range players {
		fmt.Printf("  - %d  %s  joined %s\n", p.ID, p.Color, p.CreatedAt.Format(time.RFC3339))
	}
}

func (o *Output) printConnectResult(c ConnectResult) {
	o.printPlayer(c.Player)
	fmt.Printf("Generation: %d\n", c.Grid.Generation)
	fmt.Printf("Live Cells: %d\n", len(c.Grid.Cells))
}

func (o *Output) printGrid(g Grid) {
	fmt.Printf("Generation: %d\n", g.Generation)
	fmt.Printf("Live Cells: %d\n", len(g.Cells))

	if len(g.Cells) == 0 {
		return
	}

	minX, maxX := g.Cells[0].X, g.Cells[0].X
	minY, maxY := g.Cells[0].Y, g.Cells[0].Y
	for _, c := range g.Cells[1:] {
		minX = min(minX, c.X)
		maxX = max(maxX, c.X)
		minY = min(minY, c.Y)
		maxY = max(maxY, c.Y)
	}
	if maxX-minX+1 > maxViewportWidth {
		maxX = minX + maxViewportWidth - 1
	}
	if maxY-minY+1 > maxViewportHeight {
		maxY = minY + maxViewportHeight - 1
	}

	owners := make(map[[2]int32]uint32, len(g.Cells))
	for _, c := range g.Cells {
		owners[[2]int32{c.X, c.Y}] = c.PlayerID
	}

	// Live cells render as the owner's id modulo 10 so neighbouring
	// territories are distinguishable at a glance
	fmt.Printf("Viewport: (%d,%d) to (%d,%d)\n", minX, minY, maxX, maxY)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if id, ok := owners[[2]int32{x, y}]; ok {
				fmt.Print(id % 10)
			} else {
				fmt.Print(".")
			}
		}
		fmt.Println()
	}
}

func (o *Output) printWorldConfig(c WorldConfig) {
	fmt.Printf("Tick Interval: %dms\n", c.TickIntervalMS)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

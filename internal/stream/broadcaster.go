package stream

import (
	"encoding/json"
	"log/slog"

	"github.com/Remblej/Game-of-Space-and-Time/internal/api/response"
	"github.com/Remblej/Game-of-Space-and-Time/internal/dependencies/clock"
	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
)

// Broadcaster publishes world events to the hub as JSON frames. Services
// call it after a successful mutation so REST, websocket, and scheduler
// triggered changes all produce the same stream.
type Broadcaster struct {
	hub    *Hub
	clock  clock.Clock
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, clock clock.Clock, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		clock:  clock,
		logger: logger.With(slog.String("component", "broadcaster")),
	}
}

// BroadcastPlayerConnected announces a newly registered player
func (b *Broadcaster) BroadcastPlayerConnected(player *model.Player) {
	b.publish(model.EventPlayerConnected, model.PlayerConnectedPayload{Player: *player})
}

// BroadcastCellsAdded announces cells seeded by a player
func (b *Broadcaster) BroadcastCellsAdded(playerID model.PlayerID, cells []model.Cell) {
	b.publish(model.EventCellsAdded, model.CellsAddedPayload{PlayerID: playerID, Cells: cells})
}

// BroadcastColorChanged announces a player's new color
func (b *Broadcaster) BroadcastColorChanged(playerID model.PlayerID, colorHex string) {
	b.publish(model.EventColorChanged, model.ColorChangedPayload{PlayerID: playerID, ColorHex: colorHex})
}

// BroadcastTickCompleted announces the delta of a finished generation
func (b *Broadcaster) BroadcastTickCompleted(summary *model.TickSummary) {
	b.publish(model.EventTickCompleted, *summary)
}

// BroadcastTickIntervalChanged announces a new tick interval
func (b *Broadcaster) BroadcastTickIntervalChanged(tickIntervalMS uint32) {
	b.publish(model.EventTickIntervalChanged, model.TickIntervalChangedPayload{TickIntervalMS: tickIntervalMS})
}

func (b *Broadcaster) publish(eventType model.EventType, payload any) {
	event := model.Event{
		Type:      eventType,
		Timestamp: b.clock.Now(),
		Payload:   payload,
	}

	data, err := json.Marshal(response.EventFromModel(event))
	if err != nil {
		b.logger.Error("failed to encode event",
			slog.String("type", string(eventType)),
			slog.Any("error", err))
		return
	}

	b.hub.Broadcast(Frame{Event: string(eventType), Data: data})
}

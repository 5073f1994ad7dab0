package stream

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Remblej/Game-of-Space-and-Time/internal/dependencies/mocks"
	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
	"github.com/Remblej/Game-of-Space-and-Time/internal/testutil"
)

func newBroadcasterTestRig(t *testing.T) (*Broadcaster, *Client, func()) {
	t.Helper()

	hub := NewHub(testutil.NopLogger())
	go hub.Run()

	clk := mocks.NewMockClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	broadcaster := NewBroadcaster(hub, clk, testutil.NopLogger())

	client := NewClient(hub, 1)
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	return broadcaster, client, hub.Close
}

func recvFrame(t *testing.T, client *Client) Frame {
	t.Helper()
	select {
	case frame := <-client.Frames():
		return frame
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client did not receive frame")
		return Frame{}
	}
}

func TestBroadcaster_PlayerConnected(t *testing.T) {
	broadcaster, client, done := newBroadcasterTestRig(t)
	defer done()

	broadcaster.BroadcastPlayerConnected(&model.Player{
		ID:        3,
		Identity:  "super-secret-token",
		ColorHex:  "#FF0000",
		CreatedAt: time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC),
	})

	frame := recvFrame(t, client)
	if frame.Event != string(model.EventPlayerConnected) {
		t.Errorf("frame event = %q, want %q", frame.Event, model.EventPlayerConnected)
	}

	data := string(frame.Data)
	if !strings.Contains(data, `"type":"player_connected"`) {
		t.Errorf("frame missing event type: %s", data)
	}
	if !strings.Contains(data, `"id":3`) {
		t.Errorf("frame missing player id: %s", data)
	}
	if !strings.Contains(data, `"color":"#FF0000"`) {
		t.Errorf("frame missing color: %s", data)
	}
	// The identity is a credential and must never reach subscribers
	if strings.Contains(data, "super-secret-token") {
		t.Errorf("frame leaks player identity: %s", data)
	}
}

func TestBroadcaster_CellsAdded(t *testing.T) {
	broadcaster, client, done := newBroadcasterTestRig(t)
	defer done()

	broadcaster.BroadcastCellsAdded(2, []model.Cell{{X: 5, Y: 6}, {X: 7, Y: 8}})

	frame := recvFrame(t, client)
	data := string(frame.Data)
	if !strings.Contains(data, `"player_id":2`) {
		t.Errorf("frame missing player id: %s", data)
	}
	if !strings.Contains(data, `{"x":5,"y":6}`) || !strings.Contains(data, `{"x":7,"y":8}`) {
		t.Errorf("frame missing cells: %s", data)
	}
}

func TestBroadcaster_ColorChanged(t *testing.T) {
	broadcaster, client, done := newBroadcasterTestRig(t)
	defer done()

	broadcaster.BroadcastColorChanged(4, "#00FF00")

	frame := recvFrame(t, client)
	data := string(frame.Data)
	if !strings.Contains(data, `"player_id":4`) || !strings.Contains(data, `"color":"#00FF00"`) {
		t.Errorf("unexpected color change frame: %s", data)
	}
}

func TestBroadcaster_TickCompleted(t *testing.T) {
	broadcaster, client, done := newBroadcasterTestRig(t)
	defer done()

	broadcaster.BroadcastTickCompleted(&model.TickSummary{
		Generation: 42,
		Births:     []model.AliveCell{{X: 1, Y: 2, PlayerID: 3}},
		Deaths:     []model.Cell{{X: 9, Y: 9}},
		Alive:      17,
	})

	frame := recvFrame(t, client)
	if frame.Event != string(model.EventTickCompleted) {
		t.Errorf("frame event = %q, want %q", frame.Event, model.EventTickCompleted)
	}

	var envelope struct {
		Type      string    `json:"type"`
		Timestamp time.Time `json:"timestamp"`
		Payload   struct {
			Generation uint64 `json:"generation"`
			Births     []struct {
				X        int32  `json:"x"`
				Y        int32  `json:"y"`
				PlayerID uint32 `json:"player_id"`
			} `json:"births"`
			Deaths []struct {
				X int32 `json:"x"`
				Y int32 `json:"y"`
			} `json:"deaths"`
			Alive int `json:"alive"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(frame.Data, &envelope); err != nil {
		t.Fatalf("failed to decode frame: %v", err)
	}

	if envelope.Type != "tick_completed" {
		t.Errorf("envelope type = %q, want %q", envelope.Type, "tick_completed")
	}
	wantTime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if !envelope.Timestamp.Equal(wantTime) {
		t.Errorf("envelope timestamp = %v, want %v", envelope.Timestamp, wantTime)
	}
	if envelope.Payload.Generation != 42 || envelope.Payload.Alive != 17 {
		t.Errorf("unexpected payload: %+v", envelope.Payload)
	}
	if len(envelope.Payload.Births) != 1 || envelope.Payload.Births[0].PlayerID != 3 {
		t.Errorf("unexpected births: %+v", envelope.Payload.Births)
	}
	if len(envelope.Payload.Deaths) != 1 || envelope.Payload.Deaths[0].X != 9 {
		t.Errorf("unexpected deaths: %+v", envelope.Payload.Deaths)
	}
}

func TestBroadcaster_TickIntervalChanged(t *testing.T) {
	broadcaster, client, done := newBroadcasterTestRig(t)
	defer done()

	broadcaster.BroadcastTickIntervalChanged(250)

	frame := recvFrame(t, client)
	if !strings.Contains(string(frame.Data), `"tick_interval_ms":250`) {
		t.Errorf("unexpected interval frame: %s", string(frame.Data))
	}
}

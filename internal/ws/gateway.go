// Package ws bridges websocket clients onto the world. A connected socket
// is a command channel and an event feed in one: commands arrive as small
// JSON actions, and every world event goes back out in the same envelope
// the SSE endpoint uses. Commands are acknowledged by the events they
// cause, so there are no per-command replies, only error frames.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Remblej/Game-of-Space-and-Time/internal/api/apierr"
	"github.com/Remblej/Game-of-Space-and-Time/internal/api/request"
	"github.com/Remblej/Game-of-Space-and-Time/internal/api/response"
	"github.com/Remblej/Game-of-Space-and-Time/internal/dependencies/clock"
	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
	"github.com/Remblej/Game-of-Space-and-Time/internal/services/player"
	"github.com/Remblej/Game-of-Space-and-Time/internal/services/world"
	"github.com/Remblej/Game-of-Space-and-Time/internal/stream"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Commands carrying whole
	// patterns still fit comfortably.
	maxMessageSize = 64 * 1024
)

// Client actions
const (
	actionAddCells = "add_cells"
	actionSetColor = "set_color"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// command is the inbound message format
type command struct {
	Action string         `json:"action"`
	Cells  []request.Cell `json:"cells,omitempty"`
	Color  string         `json:"color,omitempty"`
}

// Gateway upgrades HTTP requests to websocket sessions. Upgrading doubles
// as connecting: the identity on the request is registered before the
// handshake completes, and the first frame on the socket carries the
// player and a grid snapshot.
type Gateway struct {
	directory *player.Directory
	world     *world.Controller
	hub       *stream.Hub
	clock     clock.Clock
	logger    *slog.Logger
}

// NewGateway creates a new websocket gateway
func NewGateway(
	directory *player.Directory,
	world *world.Controller,
	hub *stream.Hub,
	clk clock.Clock,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		directory: directory,
		world:     world,
		hub:       hub,
		clock:     clk,
		logger:    logger.With(slog.String("component", "ws")),
	}
}

// ServeHTTP implements http.Handler
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)
	if identity == "" {
		apierr.WriteError(w, apierr.NewUnauthorizedError())
		return
	}

	connected, err := g.directory.Connect(r.Context(), identity)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	generation, cells, err := g.world.Snapshot(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		g.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	s := &session{
		gateway:  g,
		conn:     conn,
		identity: identity,
		client:   stream.NewClient(g.hub, connected.ID),
		out:      make(chan []byte, 16),
		done:     make(chan struct{}),
		logger: g.logger.With(
			slog.Uint64("player_id", uint64(connected.ID)),
			slog.String("remote_addr", conn.RemoteAddr().String()),
		),
	}

	s.logger.Info("websocket session opened")

	// The hello frame goes out before the write loop starts, so it always
	// precedes the first world event
	hello, err := json.Marshal(response.Event{
		Type:      "connected",
		Timestamp: g.clock.Now(),
		Payload: response.ConnectResponse{
			Player: response.PlayerFromModel(connected),
			Grid:   response.GridFromModel(generation, cells),
		},
	})
	if err != nil || s.write(hello) != nil {
		s.close()
		return
	}

	g.hub.Register(s.client)
	defer func() {
		g.hub.Unregister(s.client)
		s.close()
		if err := g.directory.Disconnect(context.Background(), identity); err != nil {
			s.logger.Warn("disconnect failed", slog.String("error", err.Error()))
		}
		s.logger.Info("websocket session closed")
	}()

	go s.writeLoop()
	s.readLoop(r.Context())
}

// identityFromRequest extracts the caller identity. The query parameter
// comes first because the browser websocket API cannot set headers; a
// bearer token works for everything else.
func identityFromRequest(r *http.Request) model.Identity {
	if identity := r.URL.Query().Get("identity"); identity != "" {
		return model.Identity(identity)
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return model.Identity(strings.TrimPrefix(authHeader, "Bearer "))
	}

	return ""
}

// session is one upgraded connection. The write loop is the only writer
// on the socket; direct frames from the read loop go through out.
type session struct {
	gateway  *Gateway
	conn     *websocket.Conn
	identity model.Identity
	client   *stream.Client
	out      chan []byte

	done      chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		_ = s.conn.Close()
		close(s.done)
	})
}

// readLoop consumes commands until the peer goes away
func (s *session) readLoop(ctx context.Context) {
	defer s.close()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read failed", slog.String("error", err.Error()))
			}
			return
		}
		s.dispatch(ctx, data)
	}
}

// writeLoop pushes hub frames, direct frames, and pings to the peer
func (s *session) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.close()
	}()

	for {
		select {
		case frame, ok := <-s.client.Frames():
			if !ok {
				// Hub dropped us, likely on shutdown
				_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = s.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := s.write(frame.Data); err != nil {
				return
			}

		case data := <-s.out:
			if err := s.write(data); err != nil {
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.done:
			return
		}
	}
}

func (s *session) write(data []byte) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Warn("websocket write failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// dispatch routes one inbound command. Successful commands answer through
// the world events they trigger; only failures get a direct frame back.
func (s *session) dispatch(ctx context.Context, data []byte) {
	var cmd command
	if err := json.Unmarshal(data, &cmd); err != nil {
		s.sendError(apierr.APIError{
			Code:    apierr.CodeInvalidRequest,
			Message: "Malformed command",
		})
		return
	}

	switch cmd.Action {
	case actionAddCells:
		cells := make([]model.Cell, len(cmd.Cells))
		for i, c := range cmd.Cells {
			cells[i] = model.Cell{X: c.X, Y: c.Y}
		}
		if err := s.gateway.world.AddCells(ctx, s.identity, cells); err != nil {
			s.sendError(apierr.FromError(err))
		}

	case actionSetColor:
		if cmd.Color == "" {
			s.sendError(apierr.APIError{
				Code:    apierr.CodeInvalidRequest,
				Message: "Color is required",
			})
			return
		}
		if _, err := s.gateway.directory.SetColor(ctx, s.identity, cmd.Color); err != nil {
			s.sendError(apierr.FromError(err))
		}

	default:
		s.sendError(apierr.APIError{
			Code:    apierr.CodeInvalidRequest,
			Message: "Unknown action: " + cmd.Action,
		})
	}
}

// sendEvent queues a direct frame in the shared event envelope
func (s *session) sendEvent(eventType string, payload any) {
	data, err := json.Marshal(response.Event{
		Type:      eventType,
		Timestamp: s.gateway.clock.Now(),
		Payload:   payload,
	})
	if err != nil {
		s.logger.Error("marshal event failed", slog.String("error", err.Error()))
		return
	}

	select {
	case s.out <- data:
	case <-s.done:
	}
}

func (s *session) sendError(apiError apierr.APIError) {
	s.sendEvent("error", apiError)
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Remblej/Game-of-Space-and-Time/internal/api/handler"
	"github.com/Remblej/Game-of-Space-and-Time/internal/api/middleware"
	"github.com/Remblej/Game-of-Space-and-Time/internal/services/player"
	"github.com/Remblej/Game-of-Space-and-Time/internal/services/world"
	"github.com/Remblej/Game-of-Space-and-Time/internal/stream"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	Directory       *player.Directory
	WorldController *world.Controller
	Hub             *stream.Hub
	WSHandler       http.Handler
	AdminTokenHash  string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.Directory, cfg.WorldController)
	gridHandler := handler.NewGridHandler(cfg.WorldController)
	configHandler := handler.NewConfigHandler(cfg.WorldController)
	eventsHandler := handler.NewEventsHandler(cfg.Hub)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.Directory)
	adminMiddleware := middleware.Admin(cfg.AdminTokenHash, cfg.Logger)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	authed := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}

	// Connecting needs no prior registration; the identity on the request
	// is the registration
	api.HandleFunc("/connect", playerHandler.Connect).Methods(http.MethodPost)

	// World routes (all require auth)
	api.Handle("/grid", authed(gridHandler.Get)).Methods(http.MethodGet)
	api.Handle("/cells", authed(gridHandler.AddCells)).Methods(http.MethodPost)
	api.Handle("/events", authed(eventsHandler.Stream)).Methods(http.MethodGet)

	// Config routes: reading is for players, changing the tick cadence is
	// for operators
	api.Handle("/config", authed(configHandler.Get)).Methods(http.MethodGet)
	api.Handle("/config/tick-interval",
		adminMiddleware(http.HandlerFunc(configHandler.UpdateTickInterval))).Methods(http.MethodPut)

	// Player routes (all require auth)
	players := api.PathPrefix("/players").Subrouter()
	players.Use(authMiddleware)
	players.HandleFunc("", playerHandler.List).Methods(http.MethodGet)
	players.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	players.HandleFunc("/me/color", playerHandler.SetColor).Methods(http.MethodPut)

	// Websocket gateway runs its own handshake, auth included
	if cfg.WSHandler != nil {
		api.Handle("/ws", cfg.WSHandler).Methods(http.MethodGet)
	}

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

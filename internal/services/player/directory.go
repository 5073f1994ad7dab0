// Package player tracks everyone who has joined the world. Callers are
// known by an opaque identity string they present on every request; the
// directory maps identities to numbered player records.
package player

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/Remblej/Game-of-Space-and-Time/internal/dependencies/clock"
	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
	"github.com/Remblej/Game-of-Space-and-Time/internal/storage"
	"github.com/Remblej/Game-of-Space-and-Time/internal/stream"
)

// Directory manages the registry of players
type Directory struct {
	storage     storage.Storage
	broadcaster *stream.Broadcaster
	clock       clock.Clock
	logger      *slog.Logger
}

// NewDirectory creates a new Directory
func NewDirectory(
	storage storage.Storage,
	broadcaster *stream.Broadcaster,
	clock clock.Clock,
	logger *slog.Logger,
) *Directory {
	return &Directory{
		storage:     storage,
		broadcaster: broadcaster,
		clock:       clock,
		logger:      logger.With(slog.String("component", "player-directory")),
	}
}

// Connect registers an identity if it has not been seen before and returns
// its player record. Reconnecting with a known identity returns the
// existing record untouched, so colors and cell ownership survive.
func (d *Directory) Connect(ctx context.Context, identity model.Identity) (*model.Player, error) {
	player, err := d.storage.GetPlayerByIdentity(ctx, identity)
	if err == nil {
		d.logger.Debug("player reconnected", slog.Uint64("player_id", uint64(player.ID)))
		return player, nil
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	player = &model.Player{
		Identity:  identity,
		ColorHex:  model.DefaultColorHex,
		CreatedAt: d.clock.Now(),
	}
	if err := d.storage.CreatePlayer(ctx, player); err != nil {
		if errors.Is(err, model.ErrIdentityExists) {
			// Two connects raced on the same identity; the winner's row
			// is authoritative
			return d.storage.GetPlayerByIdentity(ctx, identity)
		}
		return nil, err
	}

	d.logger.Info("player connected",
		slog.Uint64("player_id", uint64(player.ID)),
		slog.String("color", player.ColorHex),
	)
	d.broadcaster.BroadcastPlayerConnected(player)

	return player, nil
}

// Resolve maps a caller identity to its player record
func (d *Directory) Resolve(ctx context.Context, identity model.Identity) (*model.Player, error) {
	return d.storage.GetPlayerByIdentity(ctx, identity)
}

// Get returns a player by id
func (d *Directory) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return d.storage.GetPlayer(ctx, id)
}

// SetColor updates the caller's display color. Only the caller's own
// record is touched; cells already on the grid keep their owner and pick
// the new color up on the client side.
func (d *Directory) SetColor(ctx context.Context, identity model.Identity, colorHex string) (*model.Player, error) {
	player, err := d.storage.GetPlayerByIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}

	player.ColorHex = colorHex
	if err := d.storage.UpdatePlayer(ctx, player); err != nil {
		return nil, err
	}

	d.logger.Info("player color changed",
		slog.Uint64("player_id", uint64(player.ID)),
		slog.String("color", colorHex),
	)
	d.broadcaster.BroadcastColorChanged(player.ID, colorHex)

	return player, nil
}

// Disconnect notes a player's departure. Player records and their cells
// are permanent, so the world does not change; a later reconnect with the
// same identity picks the record back up.
func (d *Directory) Disconnect(ctx context.Context, identity model.Identity) error {
	player, err := d.storage.GetPlayerByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			// Never connected; nothing to note
			return nil
		}
		return err
	}

	d.logger.Info("player disconnected", slog.Uint64("player_id", uint64(player.ID)))
	return nil
}

// List returns all known players sorted by id
func (d *Directory) List(ctx context.Context) ([]model.Player, error) {
	players, err := d.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})
	return players, nil
}

// Interface for dependency injection
type DirectoryInterface interface {
	Connect(ctx context.Context, identity model.Identity) (*model.Player, error)
	Resolve(ctx context.Context, identity model.Identity) (*model.Player, error)
	Get(ctx context.Context, id model.PlayerID) (*model.Player, error)
	SetColor(ctx context.Context, identity model.Identity, colorHex string) (*model.Player, error)
	Disconnect(ctx context.Context, identity model.Identity) error
	List(ctx context.Context) ([]model.Player, error)
}

var _ DirectoryInterface = (*Directory)(nil)

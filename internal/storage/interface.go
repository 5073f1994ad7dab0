package storage

import (
	"context"

	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Grid operations. UpsertCell overwrites the owner when the coordinate
	// is already alive. ApplyGridDelta applies a tick's births and deaths
	// as one atomic unit: all of them become visible together or none do.
	GetCell(ctx context.Context, pos model.Cell) (*model.AliveCell, error)
	UpsertCell(ctx context.Context, cell *model.AliveCell) error
	DeleteCell(ctx context.Context, pos model.Cell) error
	ListCells(ctx context.Context) ([]model.AliveCell, error)
	ApplyGridDelta(ctx context.Context, births []model.AliveCell, deaths []model.Cell) error

	// Player operations. CreatePlayer assigns the next id (starting at 1)
	// in place and fails with model.ErrIdentityExists when the identity is
	// already registered.
	CreatePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByIdentity(ctx context.Context, identity model.Identity) (*model.Player, error)
	UpdatePlayer(ctx context.Context, player *model.Player) error
	ListPlayers(ctx context.Context) ([]model.Player, error)

	// Config singleton operations
	GetConfig(ctx context.Context) (*model.Config, error)
	SaveConfig(ctx context.Context, config *model.Config) error
}

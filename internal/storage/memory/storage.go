package memory

import (
	"context"
	"sync"

	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
	"github.com/Remblej/Game-of-Space-and-Time/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	cells         map[model.Cell]model.AliveCell
	players       map[model.PlayerID]model.Player
	identityIndex map[model.Identity]model.PlayerID
	nextPlayerID  model.PlayerID
	config        *model.Config
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		cells:         make(map[model.Cell]model.AliveCell),
		players:       make(map[model.PlayerID]model.Player),
		identityIndex: make(map[model.Identity]model.PlayerID),
		nextPlayerID:  1,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Grid operations

func (s *Storage) GetCell(ctx context.Context, pos model.Cell) (*model.AliveCell, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cell, ok := s.cells[pos]
	if !ok {
		return nil, model.ErrCellNotFound
	}
	return &cell, nil
}

func (s *Storage) UpsertCell(ctx context.Context, cell *model.AliveCell) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells[cell.Pos()] = *cell
	return nil
}

func (s *Storage) DeleteCell(ctx context.Context, pos model.Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cells, pos)
	return nil
}

func (s *Storage) ListCells(ctx context.Context) ([]model.AliveCell, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cells := make([]model.AliveCell, 0, len(s.cells))
	for _, cell := range s.cells {
		cells = append(cells, cell)
	}
	return cells, nil
}

func (s *Storage) ApplyGridDelta(ctx context.Context, births []model.AliveCell, deaths []model.Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pos := range deaths {
		delete(s.cells, pos)
	}
	for _, cell := range births {
		s.cells[cell.Pos()] = cell
	}
	return nil
}

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.identityIndex[player.Identity]; ok {
		return model.ErrIdentityExists
	}
	player.ID = s.nextPlayerID
	s.nextPlayerID++
	s.players[player.ID] = *player
	s.identityIndex[player.Identity] = player.ID
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return &player, nil
}

func (s *Storage) GetPlayerByIdentity(ctx context.Context, identity model.Identity) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.identityIndex[identity]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return &player, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[player.ID]; !ok {
		return model.ErrPlayerNotFound
	}
	s.players[player.ID] = *player
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]model.Player, 0, len(s.players))
	for _, player := range s.players {
		players = append(players, player)
	}
	return players, nil
}

// Config operations

func (s *Storage) GetConfig(ctx context.Context) (*model.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.config == nil {
		return nil, model.ErrConfigNotFound
	}
	config := *s.config
	return &config, nil
}

func (s *Storage) SaveConfig(ctx context.Context, config *model.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := *config
	s.config = &saved
	return nil
}

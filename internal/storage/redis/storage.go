package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
	"github.com/Remblej/Game-of-Space-and-Time/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Grid operations

func (s *Storage) GetCell(ctx context.Context, pos model.Cell) (*model.AliveCell, error) {
	data, err := s.client.Get(ctx, cellKey(pos)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCellNotFound
		}
		return nil, err
	}

	var cell model.AliveCell
	if err := json.Unmarshal(data, &cell); err != nil {
		return nil, err
	}
	return &cell, nil
}

func (s *Storage) UpsertCell(ctx context.Context, cell *model.AliveCell) error {
	data, err := json.Marshal(cell)
	if err != nil {
		return err
	}

	key := cellKey(cell.Pos())

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, cellIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) DeleteCell(ctx context.Context, pos model.Cell) error {
	key := cellKey(pos)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, cellIndexKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListCells(ctx context.Context) ([]model.AliveCell, error) {
	cellKeys, err := s.client.SMembers(ctx, cellIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(cellKeys) == 0 {
		return []model.AliveCell{}, nil
	}

	values, err := s.client.MGet(ctx, cellKeys...).Result()
	if err != nil {
		return nil, err
	}

	cells := make([]model.AliveCell, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // index entry removed since the SMEMBERS read
		}
		var cell model.AliveCell
		if err := json.Unmarshal([]byte(val.(string)), &cell); err != nil {
			continue // Skip invalid data
		}
		cells = append(cells, cell)
	}

	return cells, nil
}

func (s *Storage) ApplyGridDelta(ctx context.Context, births []model.AliveCell, deaths []model.Cell) error {
	// MULTI/EXEC so the whole generation lands as one unit
	pipe := s.client.TxPipeline()

	for _, pos := range deaths {
		key := cellKey(pos)
		pipe.Del(ctx, key)
		pipe.SRem(ctx, cellIndexKey(), key)
	}

	for _, cell := range births {
		data, err := json.Marshal(cell)
		if err != nil {
			return err
		}
		key := cellKey(cell.Pos())
		pipe.Set(ctx, key, data, 0)
		pipe.SAdd(ctx, cellIndexKey(), key)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	id, err := s.client.Incr(ctx, playerSeqKey()).Result()
	if err != nil {
		return err
	}
	player.ID = model.PlayerID(id)

	// SETNX on the identity index claims the identity; a lost race leaks
	// one counter value, which is harmless
	claimed, err := s.client.SetNX(ctx, identityIndexKey(player.Identity), strconv.FormatUint(uint64(player.ID), 10), 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrIdentityExists
	}

	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, playerIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByIdentity(ctx context.Context, identity model.Identity) (*model.Player, error) {
	idStr, err := s.client.Get(ctx, identityIndexKey(identity)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return nil, err
	}

	return s.GetPlayer(ctx, model.PlayerID(id))
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) error {
	exists, err := s.client.Exists(ctx, playerKey(player.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrPlayerNotFound
	}

	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, playerKey(player.ID), data, 0).Err()
}

func (s *Storage) ListPlayers(ctx context.Context) ([]model.Player, error) {
	playerKeys, err := s.client.SMembers(ctx, playerIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(playerKeys) == 0 {
		return []model.Player{}, nil
	}

	values, err := s.client.MGet(ctx, playerKeys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, player)
	}

	return players, nil
}

// Config operations

func (s *Storage) GetConfig(ctx context.Context) (*model.Config, error) {
	data, err := s.client.Get(ctx, configKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrConfigNotFound
		}
		return nil, err
	}

	var config model.Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func (s *Storage) SaveConfig(ctx context.Context, config *model.Config) error {
	data, err := json.Marshal(config)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, configKey(), data, 0).Err()
}

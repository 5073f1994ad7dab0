package redis

import (
	"fmt"

	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
)

// Key prefix for all world data
const keyPrefix = "gost"

// Key generation functions for each entity type

// cellKey returns the Redis key for one alive cell
func cellKey(pos model.Cell) string {
	return fmt.Sprintf("%s:cell:%d:%d", keyPrefix, pos.X, pos.Y)
}

// cellIndexKey returns the Redis key for the SET of all alive cell keys
func cellIndexKey() string {
	return fmt.Sprintf("%s:idx:cells", keyPrefix)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, id)
}

// playerIndexKey returns the Redis key for the SET of all player keys
func playerIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// identityIndexKey returns the Redis key for the identity -> player_id index
func identityIndexKey(identity model.Identity) string {
	return fmt.Sprintf("%s:idx:identity:%s", keyPrefix, identity)
}

// playerSeqKey returns the Redis key of the player id counter
func playerSeqKey() string {
	return fmt.Sprintf("%s:seq:player", keyPrefix)
}

// configKey returns the Redis key for the config singleton
func configKey() string {
	return fmt.Sprintf("%s:config", keyPrefix)
}

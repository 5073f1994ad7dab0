package model

import "time"

// ConfigID is the fixed id of the configuration singleton.
const ConfigID uint32 = 0

// DefaultTickIntervalMS seeds the configuration at bootstrap.
const DefaultTickIntervalMS uint32 = 500

// Config is the world configuration singleton. Exactly one row exists after
// bootstrap; the tick interval and the scheduler's period are always updated
// together.
type Config struct {
	ID             uint32
	TickIntervalMS uint32
}

// TickInterval returns the configured interval as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

package model

import "time"

// PlayerID uniquely identifies a player across the system. IDs are assigned
// from a counter starting at 1; 0 is reserved as the "no owner" value used
// when ownership of a birth cannot be resolved.
type PlayerID uint32

// NoOwner is the PlayerID used when a birth has no resolvable owner.
const NoOwner PlayerID = 0

// Identity is the opaque connection credential a client presents. The server
// never interprets it beyond equality.
type Identity string

// DefaultColorHex is assigned to newly created players.
const DefaultColorHex = "#FFFFFF"

// Player represents a participant in the world. Players are created lazily on
// first connection and are never deleted; disconnecting leaves the row
// untouched, so a player's cells keep their owner across sessions.
type Player struct {
	ID        PlayerID
	Identity  Identity
	ColorHex  string
	CreatedAt time.Time
}

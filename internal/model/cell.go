package model

// Playfield dimensions. Living cells are tolerated up to PlayfieldMargin
// cells beyond the visible field on every side; anything further out is
// culled on the next tick.
const (
	PlayfieldWidth  int32 = 192
	PlayfieldHeight int32 = 108
	PlayfieldMargin int32 = 5

	MinX = -PlayfieldMargin
	MaxX = PlayfieldWidth + PlayfieldMargin
	MinY = -PlayfieldMargin
	MaxY = PlayfieldHeight + PlayfieldMargin
)

// Cell is an integer coordinate on the board. It is a value type with no
// identity beyond (x, y) and is used directly as a map key.
type Cell struct {
	X int32
	Y int32
}

// InPlayfield reports whether the cell lies inside the culling rectangle
// [MinX, MaxX] x [MinY, MaxY] (bounds inclusive).
func (c Cell) InPlayfield() bool {
	return c.X >= MinX && c.X <= MaxX && c.Y >= MinY && c.Y <= MaxY
}

// AliveCell is one living cell on the grid together with its owning player.
// Uniqueness of (x, y) is enforced by the grid store: inserting at an
// occupied coordinate overwrites the owner.
type AliveCell struct {
	X        int32
	Y        int32
	PlayerID PlayerID
}

// Pos returns the cell's coordinate.
func (a AliveCell) Pos() Cell {
	return Cell{X: a.X, Y: a.Y}
}

package mysql

import (
	"time"

	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
)

// Row types with schema tags. The composite primary key on alive_cells is
// what makes grid insertion an upsert rather than a duplicate row.

type aliveCellRow struct {
	X        int32  `gorm:"column:x;primaryKey;autoIncrement:false"`
	Y        int32  `gorm:"column:y;primaryKey;autoIncrement:false"`
	PlayerID uint32 `gorm:"column:player_id;not null"`
}

func (aliveCellRow) TableName() string {
	return "alive_cells"
}

func (r aliveCellRow) toModel() model.AliveCell {
	return model.AliveCell{X: r.X, Y: r.Y, PlayerID: model.PlayerID(r.PlayerID)}
}

func newAliveCellRow(cell model.AliveCell) aliveCellRow {
	return aliveCellRow{X: cell.X, Y: cell.Y, PlayerID: uint32(cell.PlayerID)}
}

type playerRow struct {
	ID        uint32    `gorm:"column:id;primaryKey;autoIncrement"`
	Identity  string    `gorm:"column:identity;type:varchar(191);uniqueIndex;not null"`
	ColorHex  string    `gorm:"column:color_hex;type:varchar(16);not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (playerRow) TableName() string {
	return "players"
}

func (r playerRow) toModel() model.Player {
	return model.Player{
		ID:        model.PlayerID(r.ID),
		Identity:  model.Identity(r.Identity),
		ColorHex:  r.ColorHex,
		CreatedAt: r.CreatedAt,
	}
}

func newPlayerRow(player model.Player) playerRow {
	return playerRow{
		ID:        uint32(player.ID),
		Identity:  string(player.Identity),
		ColorHex:  player.ColorHex,
		CreatedAt: player.CreatedAt,
	}
}

type configRow struct {
	ID             uint32 `gorm:"column:id;primaryKey;autoIncrement:false"`
	TickIntervalMS uint32 `gorm:"column:tick_interval_ms;not null"`
}

func (configRow) TableName() string {
	return "config"
}

package mysql

import (
	"context"
	"errors"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
	"github.com/Remblej/Game-of-Space-and-Time/internal/storage"
)

// Storage is a MySQL-backed implementation of the storage interface
type Storage struct {
	db *gorm.DB
}

// New creates a new MySQL storage instance and migrates the schema
func New(cfg Config) (*Storage, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	return NewWithDB(db)
}

// NewWithDB creates a MySQL storage with an existing gorm handle (for testing)
func NewWithDB(db *gorm.DB) (*Storage, error) {
	if err := db.AutoMigrate(&aliveCellRow{}, &playerRow{}, &configRow{}); err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the underlying connection pool
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Grid operations

func (s *Storage) GetCell(ctx context.Context, pos model.Cell) (*model.AliveCell, error) {
	var row aliveCellRow
	err := s.db.WithContext(ctx).First(&row, "x = ? AND y = ?", pos.X, pos.Y).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrCellNotFound
		}
		return nil, err
	}
	cell := row.toModel()
	return &cell, nil
}

func (s *Storage) UpsertCell(ctx context.Context, cell *model.AliveCell) error {
	row := newAliveCellRow(*cell)
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "x"}, {Name: "y"}},
		DoUpdates: clause.AssignmentColumns([]string{"player_id"}),
	}).Create(&row).Error
}

func (s *Storage) DeleteCell(ctx context.Context, pos model.Cell) error {
	return s.db.WithContext(ctx).Delete(&aliveCellRow{}, "x = ? AND y = ?", pos.X, pos.Y).Error
}

func (s *Storage) ListCells(ctx context.Context) ([]model.AliveCell, error) {
	var rows []aliveCellRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	cells := make([]model.AliveCell, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, row.toModel())
	}
	return cells, nil
}

func (s *Storage) ApplyGridDelta(ctx context.Context, births []model.AliveCell, deaths []model.Cell) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, pos := range deaths {
			if err := tx.Delete(&aliveCellRow{}, "x = ? AND y = ?", pos.X, pos.Y).Error; err != nil {
				return err
			}
		}
		for _, cell := range births {
			row := newAliveCellRow(cell)
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "x"}, {Name: "y"}},
				DoUpdates: clause.AssignmentColumns([]string{"player_id"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	row := newPlayerRow(*player)
	row.ID = 0 // let the database assign it
	err := s.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.ErrIdentityExists
		}
		return err
	}
	player.ID = model.PlayerID(row.ID)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var row playerRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", uint32(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	player := row.toModel()
	return &player, nil
}

func (s *Storage) GetPlayerByIdentity(ctx context.Context, identity model.Identity) (*model.Player, error) {
	var row playerRow
	err := s.db.WithContext(ctx).First(&row, "identity = ?", string(identity)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	player := row.toModel()
	return &player, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) error {
	var existing playerRow
	err := s.db.WithContext(ctx).First(&existing, "id = ?", uint32(player.ID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrPlayerNotFound
		}
		return err
	}
	row := newPlayerRow(*player)
	return s.db.WithContext(ctx).Save(&row).Error
}

func (s *Storage) ListPlayers(ctx context.Context) ([]model.Player, error) {
	var rows []playerRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	players := make([]model.Player, 0, len(rows))
	for _, row := range rows {
		players = append(players, row.toModel())
	}
	return players, nil
}

// Config operations

func (s *Storage) GetConfig(ctx context.Context) (*model.Config, error) {
	var row configRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", model.ConfigID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrConfigNotFound
		}
		return nil, err
	}
	return &model.Config{ID: row.ID, TickIntervalMS: row.TickIntervalMS}, nil
}

func (s *Storage) SaveConfig(ctx context.Context, config *model.Config) error {
	row := configRow{ID: config.ID, TickIntervalMS: config.TickIntervalMS}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tick_interval_ms"}),
	}).Create(&row).Error
}

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Grid tests

func (s *StorageSuite) TestUpsertAndGetCell() {
	cell := &model.AliveCell{X: 3, Y: -2, PlayerID: 1}

	err := s.storage.UpsertCell(s.ctx, cell)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetCell(s.ctx, model.Cell{X: 3, Y: -2})
	s.Require().NoError(err)
	s.Equal(cell.PlayerID, retrieved.PlayerID)
}

func (s *StorageSuite) TestGetCellNotFound() {
	_, err := s.storage.GetCell(s.ctx, model.Cell{X: 0, Y: 0})
	s.ErrorIs(err, model.ErrCellNotFound)
}

func (s *StorageSuite) TestUpsertOverwritesOwner() {
	_ = s.storage.UpsertCell(s.ctx, &model.AliveCell{X: 1, Y: 1, PlayerID: 1})
	_ = s.storage.UpsertCell(s.ctx, &model.AliveCell{X: 1, Y: 1, PlayerID: 2})

	retrieved, err := s.storage.GetCell(s.ctx, model.Cell{X: 1, Y: 1})
	s.Require().NoError(err)
	s.Equal(model.PlayerID(2), retrieved.PlayerID)

	cells, err := s.storage.ListCells(s.ctx)
	s.Require().NoError(err)
	s.Len(cells, 1)
}

func (s *StorageSuite) TestDeleteCell() {
	_ = s.storage.UpsertCell(s.ctx, &model.AliveCell{X: 1, Y: 1, PlayerID: 1})

	err := s.storage.DeleteCell(s.ctx, model.Cell{X: 1, Y: 1})
	s.Require().NoError(err)

	_, err = s.storage.GetCell(s.ctx, model.Cell{X: 1, Y: 1})
	s.ErrorIs(err, model.ErrCellNotFound)
}

func (s *StorageSuite) TestDeleteCellAbsentIsNoop() {
	err := s.storage.DeleteCell(s.ctx, model.Cell{X: 9, Y: 9})
	s.Require().NoError(err)
}

func (s *StorageSuite) TestListCells() {
	_ = s.storage.UpsertCell(s.ctx, &model.AliveCell{X: 0, Y: 0, PlayerID: 1})
	_ = s.storage.UpsertCell(s.ctx, &model.AliveCell{X: 1, Y: 0, PlayerID: 1})
	_ = s.storage.UpsertCell(s.ctx, &model.AliveCell{X: -5, Y: 113, PlayerID: 2})

	cells, err := s.storage.ListCells(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]model.AliveCell{
		{X: 0, Y: 0, PlayerID: 1},
		{X: 1, Y: 0, PlayerID: 1},
		{X: -5, Y: 113, PlayerID: 2},
	}, cells)
}

func (s *StorageSuite) TestApplyGridDelta() {
	_ = s.storage.UpsertCell(s.ctx, &model.AliveCell{X: 0, Y: 0, PlayerID: 1})
	_ = s.storage.UpsertCell(s.ctx, &model.AliveCell{X: 2, Y: 0, PlayerID: 1})

	births := []model.AliveCell{{X: 1, Y: -1, PlayerID: 1}, {X: 1, Y: 1, PlayerID: 1}}
	deaths := []model.Cell{{X: 0, Y: 0}, {X: 2, Y: 0}}

	err := s.storage.ApplyGridDelta(s.ctx, births, deaths)
	s.Require().NoError(err)

	cells, err := s.storage.ListCells(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]model.AliveCell{
		{X: 1, Y: -1, PlayerID: 1},
		{X: 1, Y: 1, PlayerID: 1},
	}, cells)
}

func (s *StorageSuite) TestApplyGridDeltaEmpty() {
	err := s.storage.ApplyGridDelta(s.ctx, nil, nil)
	s.Require().NoError(err)

	cells, err := s.storage.ListCells(s.ctx)
	s.Require().NoError(err)
	s.Empty(cells)
}

// Player tests

func (s *StorageSuite) TestCreatePlayerAssignsSequentialIDs() {
	p1 := &model.Player{Identity: "conn-a", ColorHex: model.DefaultColorHex, CreatedAt: time.Now()}
	p2 := &model.Player{Identity: "conn-b", ColorHex: model.DefaultColorHex, CreatedAt: time.Now()}

	s.Require().NoError(s.storage.CreatePlayer(s.ctx, p1))
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, p2))

	s.Equal(model.PlayerID(1), p1.ID)
	s.Equal(model.PlayerID(2), p2.ID)
}

func (s *StorageSuite) TestCreatePlayerDuplicateIdentity() {
	p1 := &model.Player{Identity: "conn-a", ColorHex: model.DefaultColorHex}
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, p1))

	p2 := &model.Player{Identity: "conn-a", ColorHex: model.DefaultColorHex}
	err := s.storage.CreatePlayer(s.ctx, p2)
	s.ErrorIs(err, model.ErrIdentityExists)
}

func (s *StorageSuite) TestGetPlayerByIdentity() {
	p := &model.Player{Identity: "conn-a", ColorHex: model.DefaultColorHex}
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, p))

	retrieved, err := s.storage.GetPlayerByIdentity(s.ctx, "conn-a")
	s.Require().NoError(err)
	s.Equal(p.ID, retrieved.ID)
}

func (s *StorageSuite) TestGetPlayerByIdentityNotFound() {
	_, err := s.storage.GetPlayerByIdentity(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, 42)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestUpdatePlayer() {
	p := &model.Player{Identity: "conn-a", ColorHex: model.DefaultColorHex}
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, p))

	updated := *p
	updated.ColorHex = "#00FF00"
	s.Require().NoError(s.storage.UpdatePlayer(s.ctx, &updated))

	retrieved, err := s.storage.GetPlayer(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("#00FF00", retrieved.ColorHex)
}

func (s *StorageSuite) TestUpdatePlayerNotFound() {
	err := s.storage.UpdatePlayer(s.ctx, &model.Player{ID: 42, Identity: "x"})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListPlayers() {
	_ = s.storage.CreatePlayer(s.ctx, &model.Player{Identity: "conn-a", ColorHex: model.DefaultColorHex})
	_ = s.storage.CreatePlayer(s.ctx, &model.Player{Identity: "conn-b", ColorHex: "#FF0000"})

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
}

// Config tests

func (s *StorageSuite) TestGetConfigNotFound() {
	_, err := s.storage.GetConfig(s.ctx)
	s.ErrorIs(err, model.ErrConfigNotFound)
}

func (s *StorageSuite) TestSaveAndGetConfig() {
	cfg := &model.Config{ID: model.ConfigID, TickIntervalMS: 500}
	s.Require().NoError(s.storage.SaveConfig(s.ctx, cfg))

	retrieved, err := s.storage.GetConfig(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint32(500), retrieved.TickIntervalMS)

	cfg2 := &model.Config{ID: model.ConfigID, TickIntervalMS: 250}
	s.Require().NoError(s.storage.SaveConfig(s.ctx, cfg2))

	retrieved, err = s.storage.GetConfig(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint32(250), retrieved.TickIntervalMS)
}

package life

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
)

// applyDelta replays a generation's delta onto an alive set.
func applyDelta(alive []model.AliveCell, delta Delta) []model.AliveCell {
	grid := make(map[model.Cell]model.AliveCell, len(alive))
	for _, cell := range alive {
		grid[cell.Pos()] = cell
	}
	for _, pos := range delta.Deaths {
		delete(grid, pos)
	}
	for _, cell := range delta.Births {
		grid[cell.Pos()] = cell
	}
	next := make([]model.AliveCell, 0, len(grid))
	for _, cell := range grid {
		next = append(next, cell)
	}
	return next
}

func TestAggregateSingleCell(t *testing.T) {
	votes := Aggregate([]model.AliveCell{{X: 5, Y: 5, PlayerID: 4}})

	// the cell plus its 8 neighbors
	require.Len(t, votes, 9)

	self, ok := votes[model.Cell{X: 5, Y: 5}]
	require.True(t, ok, "an alive cell must be its own candidate")
	assert.Empty(t, self, "a cell never votes for itself")

	for _, pos := range []model.Cell{
		{X: 4, Y: 4}, {X: 5, Y: 4}, {X: 6, Y: 4},
		{X: 4, Y: 5}, {X: 6, Y: 5},
		{X: 4, Y: 6}, {X: 5, Y: 6}, {X: 6, Y: 6},
	} {
		assert.Equal(t, []model.PlayerID{4}, votes[pos])
	}
}

func TestAggregateDistantDeadCellsAreNotCandidates(t *testing.T) {
	votes := Aggregate([]model.AliveCell{
		{X: 0, Y: 0, PlayerID: 1},
		{X: 50, Y: 50, PlayerID: 2},
	})

	_, ok := votes[model.Cell{X: 25, Y: 25}]
	assert.False(t, ok)
	assert.Len(t, votes, 18)
}

func TestAggregateNeighborCounts(t *testing.T) {
	// horizontal blinker
	votes := Aggregate([]model.AliveCell{
		{X: 0, Y: 0, PlayerID: 1},
		{X: 1, Y: 0, PlayerID: 1},
		{X: 2, Y: 0, PlayerID: 1},
	})

	assert.Len(t, votes[model.Cell{X: 1, Y: -1}], 3)
	assert.Len(t, votes[model.Cell{X: 1, Y: 1}], 3)
	assert.Len(t, votes[model.Cell{X: 1, Y: 0}], 2)
	assert.Len(t, votes[model.Cell{X: 0, Y: 0}], 1)
	assert.Len(t, votes[model.Cell{X: 2, Y: 0}], 1)
	assert.Len(t, votes[model.Cell{X: -1, Y: 0}], 1)
}

func TestStepEmptyWorldStaysEmpty(t *testing.T) {
	delta := Step(nil)
	assert.True(t, delta.IsEmpty())
}

func TestStepBlockIsStable(t *testing.T) {
	block := []model.AliveCell{
		{X: 0, Y: 0, PlayerID: 1},
		{X: 1, Y: 0, PlayerID: 1},
		{X: 0, Y: 1, PlayerID: 1},
		{X: 1, Y: 1, PlayerID: 1},
	}

	delta := Step(block)
	assert.True(t, delta.IsEmpty())
}

func TestStepBlinkerOscillates(t *testing.T) {
	start := []model.AliveCell{
		{X: 0, Y: 0, PlayerID: 7},
		{X: 1, Y: 0, PlayerID: 7},
		{X: 2, Y: 0, PlayerID: 7},
	}

	first := Step(start)
	assert.ElementsMatch(t, []model.AliveCell{
		{X: 1, Y: -1, PlayerID: 7},
		{X: 1, Y: 1, PlayerID: 7},
	}, first.Births, "owner must propagate to the new cells")
	assert.ElementsMatch(t, []model.Cell{
		{X: 0, Y: 0},
		{X: 2, Y: 0},
	}, first.Deaths)

	vertical := applyDelta(start, first)
	assert.ElementsMatch(t, []model.AliveCell{
		{X: 1, Y: -1, PlayerID: 7},
		{X: 1, Y: 0, PlayerID: 7},
		{X: 1, Y: 1, PlayerID: 7},
	}, vertical)

	// period 2: the second step restores the original row
	second := Step(vertical)
	assert.ElementsMatch(t, start, applyDelta(vertical, second))
}

func TestStepBoundaryCullWinsOverSurvival(t *testing.T) {
	// the target sits just past the +5 margin and has exactly two live
	// neighbors, which would otherwise mean survival
	target := model.Cell{X: 198, Y: 10}
	alive := []model.AliveCell{
		{X: 198, Y: 10, PlayerID: 1},
		{X: 197, Y: 9, PlayerID: 1},
		{X: 197, Y: 11, PlayerID: 1},
	}

	delta := Step(alive)
	assert.Contains(t, delta.Deaths, target)
}

func TestStepCulledCellDiesExactlyOnce(t *testing.T) {
	// out of bounds and zero neighbors: matched by both the cull and the
	// death rule, deleted once
	delta := Step([]model.AliveCell{{X: 300, Y: 300, PlayerID: 1}})

	assert.Empty(t, delta.Births)
	assert.Equal(t, []model.Cell{{X: 300, Y: 300}}, delta.Deaths)
}

func TestStepBirthsAreNotClipped(t *testing.T) {
	// vertical blinker entirely past the boundary: every source cell is
	// culled, but the births it votes for still land out of bounds
	delta := Step([]model.AliveCell{
		{X: 199, Y: 9, PlayerID: 3},
		{X: 199, Y: 10, PlayerID: 3},
		{X: 199, Y: 11, PlayerID: 3},
	})

	assert.ElementsMatch(t, []model.AliveCell{
		{X: 198, Y: 10, PlayerID: 3},
		{X: 200, Y: 10, PlayerID: 3},
	}, delta.Births)
	assert.ElementsMatch(t, []model.Cell{
		{X: 199, Y: 9},
		{X: 199, Y: 10},
		{X: 199, Y: 11},
	}, delta.Deaths)
}

func TestStepMajorityOwnershipOnBirth(t *testing.T) {
	// two votes for player 1, one for player 2
	alive := []model.AliveCell{
		{X: 0, Y: 0, PlayerID: 1},
		{X: 1, Y: 0, PlayerID: 1},
		{X: 2, Y: 0, PlayerID: 2},
	}

	delta := Step(alive)
	require.NotEmpty(t, delta.Births)
	for _, birth := range delta.Births {
		assert.Equal(t, model.PlayerID(1), birth.PlayerID)
	}
}

func TestStepTieBreakIsDeterministic(t *testing.T) {
	// three distinct owners split 1/1/1: the smallest id wins, every run
	alive := []model.AliveCell{
		{X: 0, Y: 0, PlayerID: 3},
		{X: 1, Y: 0, PlayerID: 1},
		{X: 2, Y: 0, PlayerID: 2},
	}

	for run := 0; run < 50; run++ {
		delta := Step(alive)
		require.NotEmpty(t, delta.Births)
		for _, birth := range delta.Births {
			assert.Equal(t, model.PlayerID(1), birth.PlayerID)
		}
	}
}

func TestResolveOwner(t *testing.T) {
	tests := []struct {
		name   string
		ballot []model.PlayerID
		want   model.PlayerID
	}{
		{name: "unanimous", ballot: []model.PlayerID{4, 4, 4}, want: 4},
		{name: "majority first", ballot: []model.PlayerID{2, 2, 9}, want: 2},
		{name: "majority last", ballot: []model.PlayerID{9, 2, 2}, want: 2},
		{name: "three way tie picks smallest", ballot: []model.PlayerID{3, 1, 2}, want: 1},
		{name: "two way tie picks smallest", ballot: []model.PlayerID{8, 5, 8, 5}, want: 5},
		{name: "single vote", ballot: []model.PlayerID{6}, want: 6},
		{name: "empty ballot", ballot: nil, want: model.NoOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveOwner(tt.ballot))
		})
	}
}

func TestEvaluateSurvivalLeavesCellAlone(t *testing.T) {
	alive := []model.AliveCell{
		{X: 0, Y: 0, PlayerID: 1},
		{X: 1, Y: 0, PlayerID: 1},
		{X: 2, Y: 0, PlayerID: 1},
	}

	delta := Step(alive)
	assert.NotContains(t, delta.Deaths, model.Cell{X: 1, Y: 0})
	for _, birth := range delta.Births {
		assert.NotEqual(t, model.Cell{X: 1, Y: 0}, birth.Pos())
	}
}

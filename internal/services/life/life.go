// Package life implements the per-tick update rule for the world: neighbor
// vote aggregation, the birth/death/survive decision, boundary culling, and
// ownership resolution on birth. It is pure computation over a snapshot; it
// never touches storage.
package life

import (
	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
)

// Votes maps each candidate cell to the owner ids contributed by its live
// 8-neighbors. The length of a vote list is the cell's live neighbor count;
// an empty list means "no live neighbors".
type Votes map[model.Cell][]model.PlayerID

// Delta is the batch of point mutations one generation produces. Births and
// Deaths never overlap: a birth requires the cell to be dead at tick start
// and a death requires it to be alive.
type Delta struct {
	Births []model.AliveCell
	Deaths []model.Cell
}

// IsEmpty reports whether the generation changed nothing.
func (d Delta) IsEmpty() bool {
	return len(d.Births) == 0 && len(d.Deaths) == 0
}

// Aggregate visits the 3x3 block centered on every alive cell. Each of the 9
// coordinates becomes a candidate; the 8 neighbor coordinates additionally
// receive the cell's owner as a vote. A cell never votes for itself, but it
// is always its own candidate so an isolated cell can still be evaluated for
// death. Dead cells with no live neighbor never become candidates: they
// cannot be born and hold nothing to kill.
func Aggregate(alive []model.AliveCell) Votes {
	votes := make(Votes, len(alive)*4)
	for _, cell := range alive {
		for dy := int32(-1); dy <= 1; dy++ {
			for dx := int32(-1); dx <= 1; dx++ {
				pos := model.Cell{X: cell.X + dx, Y: cell.Y + dy}
				if dx == 0 && dy == 0 {
					if _, ok := votes[pos]; !ok {
						votes[pos] = nil
					}
					continue
				}
				votes[pos] = append(votes[pos], cell.PlayerID)
			}
		}
	}
	return votes
}

// Evaluate decides the fate of every candidate against the tick-start
// snapshot. Decisions are independent point mutations: an alive cell outside
// the playfield dies regardless of its neighbor count (the cull wins over
// survival), a dead cell with exactly three neighbors is born, an alive cell
// without two or three neighbors dies, and everything else is left alone.
// Deaths are collected as a set, so a cell that is both out of bounds and
// rule-dead is deleted once.
func Evaluate(snapshot map[model.Cell]model.AliveCell, votes Votes) Delta {
	var delta Delta
	deaths := make(map[model.Cell]struct{})

	for pos, ballot := range votes {
		_, isAlive := snapshot[pos]

		if isAlive && !pos.InPlayfield() {
			deaths[pos] = struct{}{}
		}

		n := len(ballot)
		switch {
		case n == 3 && !isAlive:
			delta.Births = append(delta.Births, model.AliveCell{
				X:        pos.X,
				Y:        pos.Y,
				PlayerID: ResolveOwner(ballot),
			})
		case n != 2 && n != 3 && isAlive:
			deaths[pos] = struct{}{}
		}
	}

	if len(deaths) > 0 {
		delta.Deaths = make([]model.Cell, 0, len(deaths))
		for pos := range deaths {
			delta.Deaths = append(delta.Deaths, pos)
		}
	}
	return delta
}

// ResolveOwner picks the owner for a birth: the player with the most votes,
// ties broken by the smallest player id so the outcome is reproducible
// regardless of map iteration order. An empty ballot yields NoOwner; it
// cannot occur for a birth (three votes are required) and is kept only for
// totality.
func ResolveOwner(ballot []model.PlayerID) model.PlayerID {
	counts := make(map[model.PlayerID]int, len(ballot))
	for _, id := range ballot {
		counts[id]++
	}

	owner := model.NoOwner
	best := 0
	for id, count := range counts {
		if count > best || (count == best && id < owner) {
			owner = id
			best = count
		}
	}
	return owner
}

// Step computes one full generation from the given snapshot: aggregate,
// evaluate, return the delta. The snapshot is read once; applying the delta
// is the caller's responsibility.
func Step(alive []model.AliveCell) Delta {
	snapshot := make(map[model.Cell]model.AliveCell, len(alive))
	for _, cell := range alive {
		snapshot[cell.Pos()] = cell
	}
	return Evaluate(snapshot, Aggregate(alive))
}

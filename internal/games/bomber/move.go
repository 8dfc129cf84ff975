package bomber

import (
	"github.com/vovakirdan/blastpong/internal/core"
	"github.com/vovakirdan/blastpong/internal/entity"
)

// Move tries to shift a by (dx, dy). The move commits only if the target
// cell is inside the arena, is neither a wall nor a block, and, when
// blockOnHazards is set, holds no live hazard. A blocked move leaves the
// actor where it was and returns false.
func Move(a *entity.Actor, dx, dy int, arena *Arena, hazards []*entity.Hazard, blockOnHazards bool) bool {
	if !a.Alive {
		return false
	}
	target := a.Cell.Add(dx, dy)
	if !arena.Passable(target) {
		return false
	}
	if blockOnHazards && hazardAt(hazards, target) != nil {
		return false
	}
	a.Cell = target
	return true
}

// hazardAt returns the live hazard on c, if any.
func hazardAt(hazards []*entity.Hazard, c core.Cell) *entity.Hazard {
	for _, h := range hazards {
		if h.Live() && h.Cell == c {
			return h
		}
	}
	return nil
}

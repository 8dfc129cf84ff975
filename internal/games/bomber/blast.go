package bomber

import (
	"github.com/vovakirdan/blastpong/internal/core"
	"github.com/vovakirdan/blastpong/internal/entity"
)

// StopFunc decides how a blast ray treats a cell. stop ends the ray;
// include keeps the stopping cell itself in the area.
type StopFunc func(c core.Cell) (stop, include bool)

var directions = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// ComputeBlast returns the area covered by a detonation at center: the
// center plus up to rng cells in each cardinal direction. Rays always end
// at the grid edge; stopAt may end them earlier.
func ComputeBlast(center core.Cell, rng, w, h int, stopAt StopFunc) entity.BlastArea {
	area := entity.BlastArea{
		Center: center,
		Cells:  []core.Cell{center},
	}

	for _, d := range directions {
		for i := 1; i <= rng; i++ {
			c := center.Add(d[0]*i, d[1]*i)
			if !c.In(w, h) {
				break
			}
			if stopAt != nil {
				stop, include := stopAt(c)
				if stop {
					if include {
						area.Cells = append(area.Cells, c)
					}
					break
				}
			}
			area.Cells = append(area.Cells, c)
		}
	}
	return area
}

// ClassicStop is the stopping rule where walls absorb a ray and the first
// block is hit but shields everything behind it.
func ClassicStop(a *Arena) StopFunc {
	return func(c core.Cell) (bool, bool) {
		switch {
		case a.IsWall(c):
			return true, false
		case a.HasBlock(c):
			return true, true
		default:
			return false, false
		}
	}
}

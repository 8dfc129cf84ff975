package bomber

import (
	"time"

	"github.com/vovakirdan/blastpong/internal/core"
	"github.com/vovakirdan/blastpong/internal/entity"
)

// LiveBombs counts the live hazards owned by id.
func (w *World) LiveBombs(id entity.ActorID) int {
	n := 0
	for _, h := range w.Hazards {
		if h.Owner == id && h.Live() {
			n++
		}
	}
	return n
}

// PlaceBomb arms a hazard under a. It is refused, changing nothing, when
// the actor is eliminated, already has BombsAllowed live hazards, or its
// cell already holds a live hazard.
func (w *World) PlaceBomb(a *entity.Actor, now time.Duration) (*entity.Hazard, bool) {
	if !a.Alive {
		return nil, false
	}
	if w.LiveBombs(a.ID) >= a.BombsAllowed {
		return nil, false
	}
	if hazardAt(w.Hazards, a.Cell) != nil {
		return nil, false
	}
	h := entity.NewHazard(a.ID, a.Cell, a.BombRange, now, w.rules.Fuse, w.rules.Explosion)
	w.Hazards = append(w.Hazards, h)
	return h, true
}

// blastFor computes the area of h against the current arena.
func (w *World) blastFor(h *entity.Hazard) entity.BlastArea {
	var stop StopFunc
	if w.rules.BlastStopsAtWalls {
		stop = ClassicStop(w.Arena)
	}
	return ComputeBlast(h.Cell, h.Range, w.Arena.Width(), w.Arena.Height(), stop)
}

// UpdateHazards advances every hazard to now.
//
// Hazards whose fuse has run out detonate in placement order. Each
// detonation destroys the blocks and eliminates the actors inside its own
// area in the same tick. Hazards whose explosion has run out then expire
// and leave the live set. Both passes collect first and apply after the
// scan, so the hazard list is never modified while it is being walked.
func (w *World) UpdateHazards(now time.Duration) []core.Event {
	var events []core.Event

	var due []*entity.Hazard
	for _, h := range w.Hazards {
		if h.FuseElapsed(now) {
			due = append(due, h)
		}
	}
	for _, h := range due {
		area := w.blastFor(h)
		if !h.Detonate(now, area) {
			continue
		}
		events = append(events, core.Event{
			Kind:   core.EventDetonated,
			Player: playerOf(h.Owner),
			Cell:   h.Cell,
			Value:  len(area.Cells),
		})
		for _, c := range area.Cells {
			if w.Arena.DestroyBlock(c) {
				w.score += w.rules.BlockPoints
				events = append(events, core.Event{
					Kind:   core.EventBlockDestroyed,
					Player: playerOf(h.Owner),
					Cell:   c,
					Value:  w.score,
				})
			}
		}
		for _, a := range w.Actors {
			if a.Alive && area.Contains(a.Cell) {
				a.Alive = false
				events = append(events, core.Event{
					Kind:   core.EventEliminated,
					Player: playerOf(a.ID),
					Cell:   a.Cell,
				})
			}
		}
	}

	var expired []*entity.Hazard
	for _, h := range w.Hazards {
		if h.ExplosionElapsed(now) {
			expired = append(expired, h)
		}
	}
	if len(expired) == 0 {
		return events
	}
	for _, h := range expired {
		h.Expire()
		events = append(events, core.Event{
			Kind:   core.EventHazardExpired,
			Player: playerOf(h.Owner),
			Cell:   h.Cell,
		})
	}

	live := make([]*entity.Hazard, 0, len(w.Hazards)-len(expired))
	for _, h := range w.Hazards {
		if h.Live() {
			live = append(live, h)
		}
	}
	w.Hazards = live
	return events
}

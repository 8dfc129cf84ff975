package entity

import (
	"math"
	"time"

	"github.com/vovakirdan/blastpong/internal/core"
)

// HazardState is the bomb lifecycle. It only moves forward.
type HazardState int

const (
	HazardArmed HazardState = iota
	HazardExploding
	HazardExpired
)

func (s HazardState) String() string {
	switch s {
	case HazardArmed:
		return "armed"
	case HazardExploding:
		return "exploding"
	case HazardExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// BlastArea is the set of cells hit by one detonation. Each hazard owns its
// own area, so concurrent explosions never share bookkeeping.
type BlastArea struct {
	Center core.Cell
	Cells  []core.Cell
}

// Contains reports whether c is part of the area.
func (b BlastArea) Contains(c core.Cell) bool {
	for _, cell := range b.Cells {
		if cell == c {
			return true
		}
	}
	return false
}

// Hazard is a placed bomb.
type Hazard struct {
	Owner             ActorID // lookup only
	Cell              core.Cell
	Range             int
	PlacedAt          time.Duration
	Fuse              time.Duration
	ExplosionDuration time.Duration

	State       HazardState
	DetonatedAt time.Duration
	Blast       BlastArea
}

// NewHazard arms a bomb at cell.
func NewHazard(owner ActorID, cell core.Cell, rng int, now, fuse, explosion time.Duration) *Hazard {
	return &Hazard{
		Owner:             owner,
		Cell:              cell,
		Range:             rng,
		PlacedAt:          now,
		Fuse:              fuse,
		ExplosionDuration: explosion,
		State:             HazardArmed,
	}
}

func (*Hazard) Kind() Kind                  { return KindHazard }
func (h *Hazard) Bounds(tile int) core.Rect { return core.GridToPixelRect(h.Cell, tile) }
func (*Hazard) entity()                     {}

// Live reports whether the hazard still occupies the arena.
func (h *Hazard) Live() bool {
	return h.State == HazardArmed || h.State == HazardExploding
}

// FuseElapsed reports whether an armed hazard is due to detonate.
func (h *Hazard) FuseElapsed(now time.Duration) bool {
	return h.State == HazardArmed && now-h.PlacedAt >= h.Fuse
}

// ExplosionElapsed reports whether an exploding hazard is due to expire.
func (h *Hazard) ExplosionElapsed(now time.Duration) bool {
	return h.State == HazardExploding && now-h.DetonatedAt >= h.ExplosionDuration
}

// Detonate moves Armed -> Exploding and records the blast.
// It returns false, changing nothing, from any other state.
func (h *Hazard) Detonate(now time.Duration, area BlastArea) bool {
	if h.State != HazardArmed {
		return false
	}
	h.State = HazardExploding
	h.DetonatedAt = now
	h.Blast = area
	return true
}

// Expire moves Exploding -> Expired.
// It returns false, changing nothing, from any other state.
func (h *Hazard) Expire() bool {
	if h.State != HazardExploding {
		return false
	}
	h.State = HazardExpired
	return true
}

// PulsePhase returns the animation phase in [0, 1) of an armed bomb.
func (h *Hazard) PulsePhase(now, period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	elapsed := now - h.PlacedAt
	if elapsed < 0 {
		return 0
	}
	return float64(elapsed%period) / float64(period)
}

// PulseScale maps the phase to a size factor in [1, 1+amplitude].
func PulseScale(phase, amplitude float64) float64 {
	return 1 + amplitude*math.Abs(math.Sin(phase*math.Pi))
}

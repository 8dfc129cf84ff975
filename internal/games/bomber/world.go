package bomber

import (
	"time"

	"github.com/vovakirdan/blastpong/internal/core"
	"github.com/vovakirdan/blastpong/internal/entity"
)

// Rules are the per-game constants the simulation needs.
type Rules struct {
	Fuse               time.Duration
	Explosion          time.Duration
	BlastStopsAtWalls  bool
	BombsBlockMovement bool
	BlockPoints        int
}

// World owns every live entity of one bomb game. It has no notion of
// input devices or rendering; Game drives it once per tick.
type World struct {
	Arena   *Arena
	Actors  []*entity.Actor
	Hazards []*entity.Hazard // live only, in placement order

	rules Rules
	score int
}

// NewWorld creates a world on arena with no actors.
func NewWorld(arena *Arena, rules Rules) *World {
	return &World{
		Arena: arena,
		rules: rules,
	}
}

// Spawn adds an actor.
func (w *World) Spawn(a *entity.Actor) {
	w.Actors = append(w.Actors, a)
}

// Actor looks up an actor by id.
func (w *World) Actor(id entity.ActorID) *entity.Actor {
	for _, a := range w.Actors {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Score returns points earned from destroyed blocks.
func (w *World) Score() int {
	return w.score
}

// Rules returns the world's rules.
func (w *World) Rules() Rules {
	return w.rules
}

// MoveActor moves a through the world's arena and hazards.
func (w *World) MoveActor(a *entity.Actor, dx, dy int) bool {
	return Move(a, dx, dy, w.Arena, w.Hazards, w.rules.BombsBlockMovement)
}

func playerOf(id entity.ActorID) core.PlayerID {
	return core.PlayerID(id)
}

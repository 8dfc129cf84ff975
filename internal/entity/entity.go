// Package entity defines the closed set of things that live in an arena.
// Every variant carries an explicit Kind; code that handles entities
// switches over Kind instead of probing for fields.
package entity

import (
	"fmt"

	"github.com/vovakirdan/blastpong/internal/core"
)

// Kind is the entity discriminant.
type Kind int

const (
	KindActor Kind = iota
	KindHazard
	KindWall
	KindBlock
	KindBall
	KindPaddle
)

func (k Kind) String() string {
	switch k {
	case KindActor:
		return "actor"
	case KindHazard:
		return "hazard"
	case KindWall:
		return "wall"
	case KindBlock:
		return "block"
	case KindBall:
		return "ball"
	case KindPaddle:
		return "paddle"
	default:
		return "unknown"
	}
}

// Entity is implemented only by the variants in this package.
type Entity interface {
	Kind() Kind
	// Bounds returns the pixel-space footprint. Grid entities use tile
	// to convert their cell; continuous entities ignore it.
	Bounds(tile int) core.Rect
	entity()
}

// ActorID identifies an actor within one game.
type ActorID int

// Actor is a player-controlled (or AI) piece on the grid.
type Actor struct {
	ID           ActorID
	Cell         core.Cell
	Speed        int // cells per move
	Alive        bool
	BombsAllowed int
	BombRange    int
}

// NewActor creates a living actor.
func NewActor(id ActorID, cell core.Cell, bombsAllowed, bombRange int) *Actor {
	return &Actor{
		ID:           id,
		Cell:         cell,
		Speed:        1,
		Alive:        true,
		BombsAllowed: bombsAllowed,
		BombRange:    bombRange,
	}
}

func (*Actor) Kind() Kind                  { return KindActor }
func (a *Actor) Bounds(tile int) core.Rect { return core.GridToPixelRect(a.Cell, tile) }
func (*Actor) entity()                     {}

// Wall is a permanent obstacle.
type Wall struct {
	Cell core.Cell
}

func (Wall) Kind() Kind                  { return KindWall }
func (w Wall) Bounds(tile int) core.Rect { return core.GridToPixelRect(w.Cell, tile) }
func (Wall) entity()                     {}

// Block is an obstacle removed by a blast.
type Block struct {
	Cell core.Cell
}

func (Block) Kind() Kind                  { return KindBlock }
func (b Block) Bounds(tile int) core.Rect { return core.GridToPixelRect(b.Cell, tile) }
func (Block) entity()                     {}

// Ball is the continuous-space projectile of the paddle game.
type Ball struct {
	Pos   core.RectF
	VX    float64
	VY    float64
	Color core.Color
}

func (*Ball) Kind() Kind             { return KindBall }
func (b *Ball) Bounds(int) core.Rect { return b.Pos.Rect() }
func (*Ball) entity()                {}

// Paddle is one side of the paddle game. Score only ever increases.
type Paddle struct {
	Side  core.PlayerID
	Rect  core.RectF
	Speed float64
	Score int
	Color core.Color
}

func (*Paddle) Kind() Kind             { return KindPaddle }
func (p *Paddle) Bounds(int) core.Rect { return p.Rect.Rect() }
func (*Paddle) entity()                {}

// AddPoint increments the score.
func (p *Paddle) AddPoint() int {
	p.Score++
	return p.Score
}

// Describe renders a one-line summary of any entity.
func Describe(e Entity) string {
	switch v := e.(type) {
	case *Actor:
		state := "alive"
		if !v.Alive {
			state = "eliminated"
		}
		return fmt.Sprintf("actor#%d at (%d,%d) %s", v.ID, v.Cell.X, v.Cell.Y, state)
	case *Hazard:
		return fmt.Sprintf("hazard of actor#%d at (%d,%d) %s", v.Owner, v.Cell.X, v.Cell.Y, v.State)
	case Wall:
		return fmt.Sprintf("wall at (%d,%d)", v.Cell.X, v.Cell.Y)
	case Block:
		return fmt.Sprintf("block at (%d,%d)", v.Cell.X, v.Cell.Y)
	case *Ball:
		return fmt.Sprintf("ball at (%.1f,%.1f) v=(%.2f,%.2f)", v.Pos.X, v.Pos.Y, v.VX, v.VY)
	case *Paddle:
		return fmt.Sprintf("paddle p%d at y=%.1f score=%d", v.Side, v.Rect.Y, v.Score)
	default:
		return e.Kind().String()
	}
}

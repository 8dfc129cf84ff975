package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickPeriod returns the duration of one fixed tick.
func (c RuntimeConfig) TickPeriod() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// Tick identifies one iteration of the game loop.
// Now is sampled exactly once per tick; every duration comparison made
// during the tick uses it.
type Tick struct {
	N   uint64
	Now time.Duration
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Won      bool // Set together with GameOver when the player won
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// EventKind enumerates simulation events reported by games.
type EventKind int

const (
	EventBombPlaced EventKind = iota
	EventBombRefused
	EventDetonated
	EventBlockDestroyed
	EventEliminated
	EventHazardExpired
	EventArenaCleared
	EventWallBounce
	EventPaddleHit
	EventScored
	EventMatchWon
)

func (k EventKind) String() string {
	switch k {
	case EventBombPlaced:
		return "bomb_placed"
	case EventBombRefused:
		return "bomb_refused"
	case EventDetonated:
		return "detonated"
	case EventBlockDestroyed:
		return "block_destroyed"
	case EventEliminated:
		return "eliminated"
	case EventHazardExpired:
		return "hazard_expired"
	case EventArenaCleared:
		return "arena_cleared"
	case EventWallBounce:
		return "wall_bounce"
	case EventPaddleHit:
		return "paddle_hit"
	case EventScored:
		return "scored"
	case EventMatchWon:
		return "match_won"
	default:
		return "unknown"
	}
}

// Event is a single notable occurrence during a tick.
type Event struct {
	Kind   EventKind
	Player PlayerID // Zero when not player related
	Cell   Cell     // Grid games only
	Value  int      // Event specific (score after scoring, blast size, ...)
}

// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every Validate error.
var ErrInvalid = errors.New("invalid config")

// BomberConfig contains all configuration for the bomb game.
type BomberConfig struct {
	Arena      BomberArena      `yaml:"arena"`
	Player     BomberPlayer     `yaml:"player"`
	Bombs      BomberBombs      `yaml:"bombs"`
	Rules      BomberRules      `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BomberArena defines the grid and its generation parameters.
type BomberArena struct {
	Width       int      `yaml:"width"`
	Height      int      `yaml:"height"`
	TileSize    int      `yaml:"tile_size"`
	BlockChance float64  `yaml:"block_chance"`
	ClearStart  [][2]int `yaml:"clear_start"`
	Layout      string   `yaml:"layout"` // optional path to a YAML layout, overrides generation
}

// BomberPlayer defines the starting actor.
type BomberPlayer struct {
	Start        [2]int `yaml:"start"`
	BombsAllowed int    `yaml:"bombs_allowed"`
	BombRange    int    `yaml:"bomb_range"`
}

// BomberBombs defines hazard timings.
type BomberBombs struct {
	Fuse        time.Duration `yaml:"fuse"`
	Explosion   time.Duration `yaml:"explosion"`
	PulsePeriod time.Duration `yaml:"pulse_period"`
}

// BomberRules holds the switchable rule variants.
type BomberRules struct {
	BlastStopsAtWalls  bool `yaml:"blast_stops_at_walls"`
	BombsBlockMovement bool `yaml:"bombs_block_movement"`
	BlockPoints        int  `yaml:"block_points"`
}

// PongConfig contains all configuration for the Pong game.
type PongConfig struct {
	Arena      PongArena        `yaml:"arena"`
	Physics    PongPhysics      `yaml:"physics"`
	Paddles    PongPaddles      `yaml:"paddles"`
	Gameplay   PongGameplay     `yaml:"gameplay"`
	CPU        PongCPU          `yaml:"cpu"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PongArena is the playfield size in pixels.
type PongArena struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	GridSpacing int `yaml:"grid_spacing"` // background lines, 0 disables
}

// PongPhysics defines ball and paddle motion.
type PongPhysics struct {
	BallSpeed     float64 `yaml:"ball_speed"`   // per tick, both axes
	BallSize      float64 `yaml:"ball_size"`
	PaddleSpeed   float64 `yaml:"paddle_speed"` // per tick
	HitMultiplier float64 `yaml:"hit_multiplier"`
	HitTrigger    string  `yaml:"hit_trigger"` // "edge" or "level"
}

// PongPaddles defines paddle geometry.
type PongPaddles struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Offset float64 `yaml:"offset"` // distance from the side edge
}

// PongGameplay defines match rules.
type PongGameplay struct {
	WinScore int `yaml:"win_score"` // 0 plays forever
}

// PongCPU defines the opponent paddle.
type PongCPU struct {
	SpeedFactor float64 `yaml:"speed_factor"`
	MaxFactor   float64 `yaml:"max_factor"`
}

// Hit trigger modes.
const (
	HitTriggerEdge  = "edge"
	HitTriggerLevel = "level"
)

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`   // Multiplier added to speed at max difficulty
	BlockChanceBonus float64 `yaml:"block_chance_bonus"` // Extra block probability at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks the bomb game config.
func (c BomberConfig) Validate() error {
	a := c.Arena
	switch {
	case a.Width < 3 || a.Height < 3:
		return fmt.Errorf("%w: arena %dx%d is smaller than 3x3", ErrInvalid, a.Width, a.Height)
	case a.TileSize <= 0:
		return fmt.Errorf("%w: tile_size must be positive", ErrInvalid)
	case a.BlockChance < 0 || a.BlockChance > 1:
		return fmt.Errorf("%w: block_chance %.2f outside [0, 1]", ErrInvalid, a.BlockChance)
	case c.Player.BombsAllowed < 1:
		return fmt.Errorf("%w: bombs_allowed must be at least 1", ErrInvalid)
	case c.Player.BombRange < 0:
		return fmt.Errorf("%w: bomb_range must not be negative", ErrInvalid)
	case c.Bombs.Fuse <= 0 || c.Bombs.Explosion <= 0:
		return fmt.Errorf("%w: fuse and explosion must be positive", ErrInvalid)
	}
	sx, sy := c.Player.Start[0], c.Player.Start[1]
	if sx < 0 || sy < 0 || sx >= a.Width || sy >= a.Height {
		return fmt.Errorf("%w: player start (%d,%d) outside the arena", ErrInvalid, sx, sy)
	}
	return nil
}

// Validate checks the Pong config.
func (c PongConfig) Validate() error {
	switch {
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("%w: arena must have a positive size", ErrInvalid)
	case c.Arena.GridSpacing < 0:
		return fmt.Errorf("%w: grid_spacing must not be negative", ErrInvalid)
	case c.Paddles.Height <= 0 || c.Paddles.Height > float64(c.Arena.Height):
		return fmt.Errorf("%w: paddle height %.0f does not fit the arena", ErrInvalid, c.Paddles.Height)
	case c.Physics.BallSize <= 0:
		return fmt.Errorf("%w: ball_size must be positive", ErrInvalid)
	case c.Physics.HitMultiplier < 1:
		return fmt.Errorf("%w: hit_multiplier must be at least 1", ErrInvalid)
	case c.Physics.HitTrigger != HitTriggerEdge && c.Physics.HitTrigger != HitTriggerLevel:
		return fmt.Errorf("%w: hit_trigger %q, expected edge or level", ErrInvalid, c.Physics.HitTrigger)
	case c.Gameplay.WinScore < 0:
		return fmt.Errorf("%w: win_score must not be negative", ErrInvalid)
	}
	return nil
}

// Package pong implements a neon Pong game with a CPU opponent.
// Player 1 controls the left paddle, CPU controls the right paddle.
package pong

import (
	"math/rand"

	"github.com/vovakirdan/blastpong/internal/config"
	"github.com/vovakirdan/blastpong/internal/core"
	"github.com/vovakirdan/blastpong/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game implements the Pong game logic.
type Game struct {
	world *World

	// Game state
	gameOver  bool
	paused    bool
	winner    core.PlayerID
	tickCount uint64

	// Settings
	runtime    core.RuntimeConfig
	cfg        config.PongConfig
	fixedCfg   bool
	difficulty *config.DifficultyManager
}

// New creates a game that loads its configuration on Reset.
func New() *Game {
	return &Game{cfg: config.DefaultPongConfig()}
}

// NewWithConfig creates a game with a fixed configuration.
func NewWithConfig(cfg config.PongConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Neon Pong"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixedCfg {
		cfg, err := config.LoadPong(configPath)
		if err != nil {
			cfg = config.DefaultPongConfig()
		}
		if difficultyPreset != "" {
			config.ApplyPongPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.world = NewWorld(g.cfg, rand.New(rand.NewSource(runtime.Seed)))
	g.gameOver = false
	g.paused = false
	g.winner = core.PlayerNone
	g.tickCount = 0
}

// Step advances the game by one tick.
func (g *Game) Step(_ core.Tick, in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.JustPressed(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	g.world.SetCPUFactor(g.difficulty.Factor(
		g.cfg.CPU.SpeedFactor, g.cfg.CPU.MaxFactor,
		g.world.Left.Score, int(g.tickCount), //nolint:gosec // tick counts stay far below MaxInt
	))

	ev, scored := g.world.Step(in)
	events := append([]core.Event(nil), g.world.Events()...)

	if scored && g.cfg.Gameplay.WinScore > 0 && ev.Score >= g.cfg.Gameplay.WinScore {
		g.gameOver = true
		g.winner = ev.Side
		events = append(events, core.Event{Kind: core.EventMatchWon, Player: ev.Side, Value: ev.Score})
	}

	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.world != nil {
		score = g.world.Left.Score // Report player's score
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver,
		Won:      g.gameOver && g.winner == core.Player1,
		Paused:   g.paused,
	}
}

// Viewport returns the arena size in pixels.
func (g *Game) Viewport() (int, int) {
	return g.cfg.Arena.Width, g.cfg.Arena.Height
}

// World exposes the simulation state.
func (g *Game) World() *World {
	return g.world
}

// Winner returns the winning side, or PlayerNone while the match runs.
func (g *Game) Winner() core.PlayerID {
	return g.winner
}

// Register the game with the registry
func init() {
	registry.Register("pong", func() registry.Game {
		return New()
	})
}

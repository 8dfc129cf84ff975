// Package bomber implements a grid bomb game: walk the arena, drop bombs
// and clear every destructible block without getting caught in a blast.
package bomber

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/blastpong/internal/config"
	"github.com/vovakirdan/blastpong/internal/core"
	"github.com/vovakirdan/blastpong/internal/entity"
	"github.com/vovakirdan/blastpong/internal/registry"
)

// PlayerActor is the id of the local player.
const PlayerActor entity.ActorID = 1

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

// Game implements the bomb game logic.
type Game struct {
	world  *World
	player *entity.Actor

	// Game state
	now           time.Duration // time sample of the last step
	tickCount     uint64
	initialBlocks int
	gameOver      bool
	won           bool
	paused        bool

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.BomberConfig
	fixedCfg   bool // cfg came from NewWithConfig, skip loading
	difficulty *config.DifficultyManager
}

// New creates a game that loads its configuration on Reset.
func New() *Game {
	return &Game{cfg: config.DefaultBomberConfig()}
}

// NewWithConfig creates a game with a fixed configuration.
func NewWithConfig(cfg config.BomberConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "bomber"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Bomber"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixedCfg {
		cfg, err := config.LoadBomber(configPath)
		if err != nil {
			cfg = config.DefaultBomberConfig()
		}
		if difficultyPreset != "" {
			config.ApplyBomberPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	rng := rand.New(rand.NewSource(runtime.Seed))
	arena, start := g.buildArena(rng)

	g.world = NewWorld(arena, Rules{
		Fuse:               g.cfg.Bombs.Fuse,
		Explosion:          g.cfg.Bombs.Explosion,
		BlastStopsAtWalls:  g.cfg.Rules.BlastStopsAtWalls,
		BombsBlockMovement: g.cfg.Rules.BombsBlockMovement,
		BlockPoints:        g.cfg.Rules.BlockPoints,
	})
	g.player = entity.NewActor(PlayerActor, start, g.cfg.Player.BombsAllowed, g.cfg.Player.BombRange)
	g.world.Spawn(g.player)

	g.now = 0
	g.tickCount = 0
	g.initialBlocks = arena.BlockCount()
	g.gameOver = false
	g.won = false
	g.paused = false
}

// buildArena loads the configured layout or generates a random arena.
// A broken layout falls back to generation.
func (g *Game) buildArena(rng *rand.Rand) (*Arena, core.Cell) {
	if g.cfg.Arena.Layout != "" {
		if arena, err := LoadLayout(g.cfg.Arena.Layout); err == nil {
			start, _ := arena.Start()
			return arena, start
		}
	}

	spec := ArenaSpec{
		Width:       g.cfg.Arena.Width,
		Height:      g.cfg.Arena.Height,
		BlockChance: g.difficulty.BlockChance(g.cfg.Arena.BlockChance, 0, 0),
	}
	for _, c := range g.cfg.Arena.ClearStart {
		spec.ClearStart = append(spec.ClearStart, core.C(c[0], c[1]))
	}
	start := core.C(g.cfg.Player.Start[0], g.cfg.Player.Start[1])
	if ValidateClearStart(spec, start) != nil {
		spec.ClearStart = append(spec.ClearStart, start)
	}
	return GenerateArena(spec, rng), start
}

// Step advances the game by one tick.
func (g *Game) Step(tick core.Tick, in core.InputFrame) core.StepResult {
	g.now = tick.Now

	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.JustPressed(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	var events []core.Event

	if in.JustPressed(core.ActionBomb) {
		kind := core.EventBombRefused
		if _, ok := g.world.PlaceBomb(g.player, tick.Now); ok {
			kind = core.EventBombPlaced
		}
		events = append(events, core.Event{Kind: kind, Player: core.Player1, Cell: g.player.Cell})
	}

	// One cell per key press, checked in a fixed order.
	moves := [...]struct {
		action core.Action
		dx, dy int
	}{
		{core.ActionLeft, -1, 0},
		{core.ActionRight, 1, 0},
		{core.ActionUp, 0, -1},
		{core.ActionDown, 0, 1},
	}
	for _, m := range moves {
		if in.JustPressed(m.action) {
			g.world.MoveActor(g.player, m.dx, m.dy)
		}
	}

	events = append(events, g.world.UpdateHazards(tick.Now)...)

	switch {
	case !g.player.Alive:
		g.gameOver = true
	case g.initialBlocks > 0 && g.world.Arena.BlockCount() == 0:
		g.gameOver = true
		g.won = true
		events = append(events, core.Event{Kind: core.EventArenaCleared, Player: core.Player1, Value: g.world.Score()})
	}

	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.world != nil {
		score = g.world.Score()
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Viewport returns the arena size in pixels.
func (g *Game) Viewport() (int, int) {
	tile := g.cfg.Arena.TileSize
	if g.world == nil {
		return g.cfg.Arena.Width * tile, g.cfg.Arena.Height * tile
	}
	return g.world.Arena.Width() * tile, g.world.Arena.Height() * tile
}

// World exposes the simulation state.
func (g *Game) World() *World {
	return g.world
}

// Player returns the local player's actor.
func (g *Game) Player() *entity.Actor {
	return g.player
}

// Register the game with the registry
func init() {
	registry.Register("bomber", func() registry.Game {
		return New()
	})
}

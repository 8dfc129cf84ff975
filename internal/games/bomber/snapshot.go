package bomber

import "github.com/vovakirdan/blastpong/internal/multiplayer"

// BombSnapshot is one live hazard.
type BombSnapshot struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	State string `yaml:"state"`
}

// BomberSnapshot contains the observable state of a bomb game.
// Uses primitive types only for stable serialization.
type BomberSnapshot struct {
	Tick     uint64         `yaml:"tick"`
	PlayerX  int            `yaml:"player_x"`
	PlayerY  int            `yaml:"player_y"`
	Alive    bool           `yaml:"alive"`
	Blocks   int            `yaml:"blocks"`
	Bombs    []BombSnapshot `yaml:"bombs"`
	Score    int            `yaml:"score"`
	GameOver bool           `yaml:"game_over"`
	Won      bool           `yaml:"won"`
}

// IsGameSnapshot implements the GameSnapshot interface marker.
func (BomberSnapshot) IsGameSnapshot() {}

// Ensure BomberSnapshot implements multiplayer.GameSnapshot
var _ multiplayer.GameSnapshot = BomberSnapshot{}

// Snapshot returns the current game state as a BomberSnapshot.
func (g *Game) Snapshot() multiplayer.GameSnapshot {
	snap := BomberSnapshot{
		Tick:     g.tickCount,
		GameOver: g.gameOver,
		Won:      g.won,
	}
	if g.world == nil {
		return snap
	}
	snap.PlayerX, snap.PlayerY = g.player.Cell.X, g.player.Cell.Y
	snap.Alive = g.player.Alive
	snap.Blocks = g.world.Arena.BlockCount()
	snap.Score = g.world.Score()
	for _, h := range g.world.Hazards {
		snap.Bombs = append(snap.Bombs, BombSnapshot{X: h.Cell.X, Y: h.Cell.Y, State: h.State.String()})
	}
	return snap
}

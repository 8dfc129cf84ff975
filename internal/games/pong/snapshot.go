package pong

import (
	"github.com/vovakirdan/blastpong/internal/multiplayer"
)

// PongSnapshot contains the observable state of a Pong game.
// Uses primitive types only for stable serialization.
type PongSnapshot struct {
	Tick     uint64 `yaml:"tick"`
	BallX    int    `yaml:"ball_x"`
	BallY    int    `yaml:"ball_y"`
	BallVX   int    `yaml:"ball_vx"` // Velocity scaled by 1000 (for precision)
	BallVY   int    `yaml:"ball_vy"` // Velocity scaled by 1000
	Paddle1Y int    `yaml:"paddle1_y"`
	Paddle2Y int    `yaml:"paddle2_y"`
	Score1   int    `yaml:"score1"`
	Score2   int    `yaml:"score2"`
	GameOver bool   `yaml:"game_over"`
	Winner   int    `yaml:"winner"` // 0=none, 1=Player1, 2=Player2
}

// IsGameSnapshot implements the GameSnapshot interface marker.
func (PongSnapshot) IsGameSnapshot() {}

// Ensure PongSnapshot implements multiplayer.GameSnapshot
var _ multiplayer.GameSnapshot = PongSnapshot{}

// Snapshot returns the current game state as a PongSnapshot.
func (g *Game) Snapshot() multiplayer.GameSnapshot {
	snap := PongSnapshot{
		Tick:     g.tickCount,
		GameOver: g.gameOver,
		Winner:   int(g.winner),
	}
	if g.world == nil {
		return snap
	}
	w := g.world
	snap.BallX = int(w.Ball.Pos.X)
	snap.BallY = int(w.Ball.Pos.Y)
	snap.BallVX = int(w.Ball.VX * 1000)
	snap.BallVY = int(w.Ball.VY * 1000)
	snap.Paddle1Y = int(w.Left.Rect.Y)
	snap.Paddle2Y = int(w.Right.Rect.Y)
	snap.Score1 = w.Left.Score
	snap.Score2 = w.Right.Score
	return snap
}

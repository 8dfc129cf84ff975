package pong

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/blastpong/internal/config"
	"github.com/vovakirdan/blastpong/internal/core"
	"github.com/vovakirdan/blastpong/internal/entity"
)

// Neon palette the ball picks from on every serve.
var ballPalette = [...]core.Color{
	core.ColorBrightYellow,
	core.ColorPink,
	core.ColorBrightGreen,
	core.ColorBrightCyan,
}

// ScoreEvent reports a point.
type ScoreEvent struct {
	Side  core.PlayerID // who scored
	Score int           // their score after the point
}

// World is the continuous-space simulation: one ball, two paddles.
// Units are arena pixels; velocities are pixels per tick.
type World struct {
	Ball  entity.Ball
	Left  entity.Paddle // player
	Right entity.Paddle // CPU

	Width  float64
	Height float64

	ballSpeed     float64
	hitMultiplier float64
	levelTrigger  bool
	cpuFactor     float64

	rng     *rand.Rand
	contact bool // ball overlapped a paddle on the previous tick
	events  []core.Event
}

// NewWorld lays out paddles and serves the first ball.
func NewWorld(cfg config.PongConfig, rng *rand.Rand) *World {
	w := &World{
		Width:         float64(cfg.Arena.Width),
		Height:        float64(cfg.Arena.Height),
		ballSpeed:     cfg.Physics.BallSpeed,
		hitMultiplier: cfg.Physics.HitMultiplier,
		levelTrigger:  cfg.Physics.HitTrigger == config.HitTriggerLevel,
		cpuFactor:     cfg.CPU.SpeedFactor,
		rng:           rng,
	}

	paddleY := w.Height/2 - cfg.Paddles.Height/2
	w.Left = entity.Paddle{
		Side:  core.Player1,
		Rect:  core.RectF{X: cfg.Paddles.Offset, Y: paddleY, W: cfg.Paddles.Width, H: cfg.Paddles.Height},
		Speed: cfg.Physics.PaddleSpeed,
		Color: core.ColorPink,
	}
	w.Right = entity.Paddle{
		Side:  core.Player2,
		Rect:  core.RectF{X: w.Width - cfg.Paddles.Offset - cfg.Paddles.Width, Y: paddleY, W: cfg.Paddles.Width, H: cfg.Paddles.Height},
		Speed: cfg.Physics.PaddleSpeed,
		Color: core.ColorBrightCyan,
	}

	size := cfg.Physics.BallSize
	w.Ball = entity.Ball{Pos: core.RectF{W: size, H: size}}
	w.Serve()
	w.Ball.Color = core.ColorBrightYellow
	return w
}

// Serve centers the ball and gives it a random diagonal direction and a
// random palette color.
func (w *World) Serve() {
	w.Ball.Pos.X = w.Width/2 - w.Ball.Pos.W/2
	w.Ball.Pos.Y = w.Height/2 - w.Ball.Pos.H/2
	w.Ball.VX = w.ballSpeed * w.randomSign()
	w.Ball.VY = w.ballSpeed * w.randomSign()
	w.Ball.Color = ballPalette[w.rng.Intn(len(ballPalette))]
	w.contact = false
}

func (w *World) randomSign() float64 {
	if w.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// SetCPUFactor changes the CPU paddle speed as a fraction of its nominal speed.
func (w *World) SetCPUFactor(f float64) {
	w.cpuFactor = f
}

// Events returns what happened during the last Step.
func (w *World) Events() []core.Event {
	return w.events
}

// Step advances one tick: player paddle, ball, walls, paddles, scoring,
// then the CPU paddle.
func (w *World) Step(in core.InputFrame) (ScoreEvent, bool) {
	w.events = w.events[:0]

	if in.Has(core.ActionUp) {
		w.Left.Rect.Y -= w.Left.Speed
	}
	if in.Has(core.ActionDown) {
		w.Left.Rect.Y += w.Left.Speed
	}
	w.clampPaddle(&w.Left)

	w.Ball.Pos.X += w.Ball.VX
	w.Ball.Pos.Y += w.Ball.VY

	w.bounceWalls()
	w.hitPaddles()
	score, scored := w.checkScore()

	w.moveCPU()
	return score, scored
}

// bounceWalls reflects the ball off the top and bottom edges and keeps it
// inside the arena.
func (w *World) bounceWalls() {
	b := &w.Ball
	switch {
	case b.Pos.Y <= 0:
		b.Pos.Y = 0
		b.VY = math.Abs(b.VY)
	case b.Pos.Bottom() >= w.Height:
		b.Pos.Y = w.Height - b.Pos.H
		b.VY = -math.Abs(b.VY)
	default:
		return
	}
	w.events = append(w.events, core.Event{Kind: core.EventWallBounce})
}

// hitPaddles flips the horizontal direction and speeds the ball up on
// paddle contact. In edge mode a contact counts once until the ball
// separates from the paddle again.
func (w *World) hitPaddles() {
	var side core.PlayerID
	switch {
	case w.Ball.Pos.Intersects(w.Left.Rect):
		side = core.Player1
	case w.Ball.Pos.Intersects(w.Right.Rect):
		side = core.Player2
	default:
		w.contact = false
		return
	}

	fresh := !w.contact
	w.contact = true
	if !fresh && !w.levelTrigger {
		return
	}

	w.Ball.VX *= -w.hitMultiplier
	w.Ball.VY *= w.hitMultiplier
	w.events = append(w.events, core.Event{Kind: core.EventPaddleHit, Player: side})
}

// checkScore awards a point when the ball reaches a side edge.
func (w *World) checkScore() (ScoreEvent, bool) {
	var p *entity.Paddle
	switch {
	case w.Ball.Pos.X <= 0:
		p = &w.Right
	case w.Ball.Pos.Right() >= w.Width:
		p = &w.Left
	default:
		return ScoreEvent{}, false
	}

	ev := ScoreEvent{Side: p.Side, Score: p.AddPoint()}
	w.events = append(w.events, core.Event{Kind: core.EventScored, Player: ev.Side, Value: ev.Score})
	w.Serve()
	return ev, true
}

// moveCPU tracks the ball's vertical center with no prediction.
func (w *World) moveCPU() {
	p := &w.Right
	step := p.Speed * w.cpuFactor
	ballY := w.Ball.Pos.CenterY()

	switch {
	case p.Rect.CenterY() < ballY && p.Rect.Bottom() < w.Height:
		p.Rect.Y += step
	case p.Rect.CenterY() > ballY && p.Rect.Y > 0:
		p.Rect.Y -= step
	}
	w.clampPaddle(p)
}

func (w *World) clampPaddle(p *entity.Paddle) {
	p.Rect.Y = core.ClampF(p.Rect.Y, 0, w.Height-p.Rect.H)
}

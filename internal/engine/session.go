// Package engine drives a registered game at a fixed tick rate.
// A Session owns everything one loop needs: the game, renderer, clock,
// pacer, input source and logger. Nothing in this package is global, so
// any number of sessions can run side by side (one per SSH connection).
package engine

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blastpong/internal/core"
	"github.com/vovakirdan/blastpong/internal/registry"
)

// Exit is the reason a session stopped.
type Exit int

const (
	ExitNone Exit = iota
	ExitQuit
	ExitGameOver
	ExitCanceled
	ExitTickLimit
)

func (e Exit) String() string {
	switch e {
	case ExitNone:
		return "running"
	case ExitQuit:
		return "quit"
	case ExitGameOver:
		return "game_over"
	case ExitCanceled:
		return "canceled"
	case ExitTickLimit:
		return "tick_limit"
	default:
		return "unknown"
	}
}

// Advancer is implemented by clocks that only move when told to.
// The session advances them once after every tick.
type Advancer interface {
	Advance()
}

// Options configures a session. Zero fields get defaults in NewSession.
type Options struct {
	Runtime  core.RuntimeConfig
	Renderer core.Renderer   // default: NopRenderer
	Clock    core.Clock      // default: SystemClock
	Pacer    core.FramePacer // default: SleepPacer
	Input    InputSource     // default: NoInput
	Logger   *log.Logger     // default: discards everything

	// MaxTicks stops Run after that many ticks; 0 runs until exit.
	MaxTicks uint64

	// StayOnGameOver keeps the session alive after game over so the
	// player can restart. Interactive front-ends set it.
	StayOnGameOver bool

	// Reseed picks the seed for Restart. Nil keeps the current seed.
	Reseed func() int64
}

// Session is the loop context for one running game.
type Session struct {
	game     registry.Game
	runtime  core.RuntimeConfig
	renderer core.Renderer
	base     core.Clock
	clock    *core.PausableClock
	pacer    core.FramePacer
	input    InputSource
	logger   *log.Logger
	maxTicks uint64
	stay     bool
	reseed   func() int64

	tick      uint64 // ticks since the last (re)start
	frames    uint64 // input polls since NewSession
	state     core.GameState
	events    map[core.EventKind]int
	started   bool
	closed    bool
	overSeen  bool
	exit      Exit
	restarts  int
	startedAt time.Duration
}

// NewSession wires a game to its loop dependencies. The game is not reset
// until Start.
func NewSession(game registry.Game, opts Options) *Session {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	if opts.Renderer == nil {
		opts.Renderer = core.NopRenderer{}
	}
	if opts.Clock == nil {
		opts.Clock = core.NewSystemClock()
	}
	if opts.Pacer == nil {
		opts.Pacer = core.NewSleepPacer()
	}
	if opts.Input == nil {
		opts.Input = NoInput{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Session{
		game:     game,
		runtime:  opts.Runtime,
		renderer: opts.Renderer,
		base:     opts.Clock,
		clock:    core.NewPausableClock(opts.Clock),
		pacer:    opts.Pacer,
		input:    opts.Input,
		logger:   opts.Logger.With("game", game.ID()),
		maxTicks: opts.MaxTicks,
		stay:     opts.StayOnGameOver,
		reseed:   opts.Reseed,
		events:   make(map[core.EventKind]int),
	}
}

// Start resets the game and draws the first frame. Calling it again is a no-op.
func (s *Session) Start() {
	if s.started {
		return
	}
	s.started = true
	s.game.Reset(s.runtime)
	s.state = s.game.State()
	s.startedAt = s.clock.Now()
	s.draw()

	s.logger.Info("session started", "seed", s.runtime.Seed, "tick_rate", s.runtime.TickRate)
}

// Frame runs exactly one loop iteration: poll input once, sample the clock
// once, step, render, present. It returns ExitNone while the session
// should keep going.
func (s *Session) Frame() Exit {
	if s.closed {
		return s.exit
	}
	s.Start()

	in, quit := s.input.Poll(s.frames)
	s.frames++
	if quit {
		return s.finish(ExitQuit)
	}
	if s.state.GameOver && in.JustPressed(core.ActionRestart) {
		s.Restart()
		return ExitNone
	}

	now := s.clock.Now()
	res := s.game.Step(core.Tick{N: s.tick, Now: now}, in)
	s.tick++
	s.state = res.State

	switch {
	case res.State.Paused && !s.clock.Paused():
		s.clock.Pause()
		s.logger.Debug("paused", "tick", s.tick)
	case !res.State.Paused && s.clock.Paused():
		s.clock.Resume()
		s.logger.Debug("resumed", "tick", s.tick)
	}

	for _, ev := range res.Events {
		s.events[ev.Kind]++
		s.logger.Debug("event", "tick", s.tick, "kind", ev.Kind, "player", ev.Player,
			"cell", ev.Cell, "value", ev.Value)
	}

	s.draw()

	if a, ok := s.base.(Advancer); ok {
		a.Advance()
	}

	if res.State.GameOver && !s.overSeen {
		s.overSeen = true
		s.logger.Info("game over", "tick", s.tick, "score", res.State.Score, "won", res.State.Won)
		if !s.stay {
			return s.finish(ExitGameOver)
		}
	}
	if s.maxTicks > 0 && s.tick >= s.maxTicks {
		return s.finish(ExitTickLimit)
	}
	return ExitNone
}

func (s *Session) draw() {
	s.game.Render(s.renderer)
	s.renderer.Present()
}

// Run repeats Frame, pacing each iteration to the tick rate, until the
// session exits or ctx is canceled.
func (s *Session) Run(ctx context.Context) Summary {
	s.Start()
	for {
		select {
		case <-ctx.Done():
			s.finish(ExitCanceled)
			return s.Summary()
		default:
		}

		if exit := s.Frame(); exit != ExitNone {
			return s.Summary()
		}
		s.pacer.Wait(s.runtime.TickRate)
	}
}

// Restart resets the game in place, keeping the session's clock, renderer
// and input source.
func (s *Session) Restart() {
	if s.reseed != nil {
		s.runtime.Seed = s.reseed()
	}
	s.clock.Resume()
	s.game.Reset(s.runtime)
	s.state = s.game.State()
	s.tick = 0
	s.overSeen = false
	s.restarts++
	s.startedAt = s.clock.Now()
	clear(s.events)
	s.draw()

	s.logger.Info("restarted", "seed", s.runtime.Seed, "restarts", s.restarts)
}

// Close stops the session. Later Frame calls return the recorded exit.
func (s *Session) Close() Summary {
	s.finish(ExitQuit)
	return s.Summary()
}

func (s *Session) finish(e Exit) Exit {
	if s.closed {
		return s.exit
	}
	s.closed = true
	s.exit = e
	s.logger.Info("session ended", "exit", e, "ticks", s.tick, "score", s.state.Score)
	return e
}

// Resize forwards a new screen size to the runtime config used by Restart.
func (s *Session) Resize(cols, rows int) {
	s.runtime.ScreenW = cols
	s.runtime.ScreenH = rows
}

// Game returns the driven game.
func (s *Session) Game() registry.Game {
	return s.game
}

// State returns the game state after the last tick.
func (s *Session) State() core.GameState {
	return s.state
}

// Ticks returns the number of ticks stepped since the last (re)start.
func (s *Session) Ticks() uint64 {
	return s.tick
}

// Now returns the session's pause-aware time.
func (s *Session) Now() time.Duration {
	return s.clock.Now()
}

// Closed reports whether the session has exited.
func (s *Session) Closed() bool {
	return s.closed
}

package engine

import (
	"context"
	"testing"

	"github.com/vovakirdan/blastpong/internal/config"
	"github.com/vovakirdan/blastpong/internal/core"
	"github.com/vovakirdan/blastpong/internal/games/bomber"
	"github.com/vovakirdan/blastpong/internal/games/pong"
)

func mustScript(t *testing.T, src string) *Script {
	t.Helper()
	s, err := ParseScript([]byte(src))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	return s
}

func headless(input InputSource, dl *core.DrawList) Options {
	return Options{
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42},
		Renderer: dl,
		Clock:    core.NewStepClock(60),
		Pacer:    core.NoopPacer{},
		Input:    input,
	}
}

func newBomber() *bomber.Game {
	return bomber.NewWithConfig(config.DefaultBomberConfig())
}

func TestSessionBombOnStartEndsGame(t *testing.T) {
	dl := &core.DrawList{}
	g := newBomber()
	s := NewSession(g, headless(mustScript(t, "steps:\n  - tick: 0\n    press: [Bomb]\n"), dl))

	sum := s.Run(context.Background())

	// 3s fuse at 60 ticks/s: tick 181 is the first at or past 3s.
	if sum.Ticks != 182 {
		t.Errorf("Ticks = %d, expected 182", sum.Ticks)
	}
	if sum.Exit != ExitGameOver.String() || !sum.GameOver || sum.Won {
		t.Errorf("Summary = %+v, expected a lost game", sum)
	}
	if sum.Outcome() != "lost" {
		t.Errorf("Outcome() = %q, expected lost", sum.Outcome())
	}
	if sum.Count(core.EventBombPlaced) != 1 || sum.Count(core.EventEliminated) != 1 {
		t.Errorf("Events = %v", sum.Events)
	}
	snap, ok := sum.Final.(bomber.BomberSnapshot)
	if !ok {
		t.Fatalf("Final = %T, expected BomberSnapshot", sum.Final)
	}
	if snap.Alive {
		t.Error("snapshot player still alive")
	}
	if dl.Frames != 183 {
		t.Errorf("Frames = %d, expected 183 (start frame plus one per tick)", dl.Frames)
	}
	if s.Frame() != ExitGameOver {
		t.Error("Frame after exit should keep reporting the exit")
	}
}

func TestSessionPauseFreezesFuse(t *testing.T) {
	g := newBomber()
	script := mustScript(t, `
steps:
  - tick: 0
    press: [Bomb]
  - tick: 10
    press: [Pause]
  - tick: 110
    press: [Pause]
`)
	s := NewSession(g, headless(script, &core.DrawList{}))
	sum := s.Run(context.Background())

	// 100 paused ticks push detonation from tick 181 to 281.
	if sum.Ticks != 282 {
		t.Errorf("Ticks = %d, expected 282", sum.Ticks)
	}
	if !sum.GameOver {
		t.Error("expected game over")
	}
}

func TestSessionTickLimit(t *testing.T) {
	g := pong.NewWithConfig(config.DefaultPongConfig())
	opts := headless(NoInput{}, &core.DrawList{})
	opts.MaxTicks = 100
	s := NewSession(g, opts)

	sum := s.Run(context.Background())
	if sum.Exit != "tick_limit" || sum.Ticks != 100 {
		t.Errorf("Summary = %+v, expected tick_limit after 100 ticks", sum)
	}
	if _, ok := sum.Final.(pong.PongSnapshot); !ok {
		t.Errorf("Final = %T, expected PongSnapshot", sum.Final)
	}
	if sum.Outcome() != "tick_limit" {
		t.Errorf("Outcome() = %q", sum.Outcome())
	}
}

func TestSessionQuit(t *testing.T) {
	g := newBomber()
	s := NewSession(g, headless(mustScript(t, "steps:\n  - tick: 5\n    quit: true\n"), &core.DrawList{}))
	sum := s.Run(context.Background())
	if sum.Exit != "quit" || sum.Ticks != 5 {
		t.Errorf("Summary = %+v, expected quit after 5 ticks", sum)
	}
}

func TestSessionCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newBomber()
	s := NewSession(g, headless(NoInput{}, &core.DrawList{}))
	sum := s.Run(ctx)
	if sum.Exit != "canceled" || sum.Ticks != 0 {
		t.Errorf("Summary = %+v, expected canceled before any tick", sum)
	}
	if !s.Closed() {
		t.Error("Closed() = false after cancel")
	}
}

func TestSessionRestartAfterGameOver(t *testing.T) {
	g := newBomber()
	script := mustScript(t, `
steps:
  - tick: 0
    press: [bomb]
  - tick: 200
    press: [restart]
`)
	opts := headless(script, &core.DrawList{})
	opts.StayOnGameOver = true
	opts.Reseed = func() int64 { return 7 }
	s := NewSession(g, opts)

	for i := 0; i < 200; i++ {
		if exit := s.Frame(); exit != ExitNone {
			t.Fatalf("frame %d: exit %v with StayOnGameOver", i, exit)
		}
	}
	if !s.State().GameOver {
		t.Fatal("expected game over before restart")
	}

	s.Frame()
	if s.State().GameOver || s.Ticks() != 0 {
		t.Errorf("after restart: state=%+v ticks=%d", s.State(), s.Ticks())
	}
	if !g.Player().Alive {
		t.Error("player not revived by restart")
	}

	sum := s.Close()
	if sum.Restarts != 1 || sum.Seed != 7 || sum.Exit != "quit" {
		t.Errorf("Summary = %+v", sum)
	}
	if len(sum.Events) != 0 {
		t.Errorf("events not reset on restart: %v", sum.Events)
	}
}

func TestSessionFrameOrder(t *testing.T) {
	dl := &core.DrawList{}
	g := newBomber()
	s := NewSession(g, headless(NoInput{}, dl))
	s.Start()
	s.Start()
	if dl.Frames != 1 {
		t.Fatalf("Frames after Start = %d, expected 1", dl.Frames)
	}

	s.Frame()
	if dl.Frames != 2 {
		t.Errorf("Frames = %d, expected 2", dl.Frames)
	}
	last := dl.Cmds[len(dl.Cmds)-1]
	if last.Op != core.OpPresent {
		t.Errorf("last command = %v, expected present", last.Op)
	}
	if dl.Cmds[0].Op != core.OpClear {
		t.Errorf("first command = %v, expected clear", dl.Cmds[0].Op)
	}
}

package bomber

import (
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/blastpong/internal/config"
	"github.com/vovakirdan/blastpong/internal/core"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func press(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func at(n uint64, now time.Duration) core.Tick {
	return core.Tick{N: n, Now: now}
}

func newTestGame(seed int64) *Game {
	g := NewWithConfig(config.DefaultBomberConfig())
	g.Reset(testRuntime(seed))
	return g
}

func TestGameStartsClear(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := newTestGame(seed)
		p := g.Player()
		if p.Cell != core.C(1, 1) || !p.Alive {
			t.Fatalf("seed %d: player = %+v, expected alive at (1,1)", seed, p)
		}
		if !g.World().Arena.Passable(p.Cell) {
			t.Fatalf("seed %d: player starts on an obstacle", seed)
		}
	}
}

func TestGameStandingOnBombEndsGame(t *testing.T) {
	g := newTestGame(42)

	res := g.Step(at(1, 0), press(core.ActionBomb))
	if len(res.Events) != 1 || res.Events[0].Kind != core.EventBombPlaced {
		t.Fatalf("events = %+v, expected one bomb_placed", res.Events)
	}

	res = g.Step(at(2, 2*time.Second), core.NewInputFrame())
	if res.State.GameOver {
		t.Fatal("game over before the fuse ran out")
	}

	res = g.Step(at(3, 3*time.Second), core.NewInputFrame())
	if !res.State.GameOver || res.State.Won {
		t.Errorf("State = %+v, expected lost game", res.State)
	}

	// Further steps are inert.
	snap := g.Snapshot()
	g.Step(at(4, 10*time.Second), press(core.ActionRight, core.ActionBomb))
	if !reflect.DeepEqual(snap, g.Snapshot()) {
		t.Error("game changed after game over")
	}
}

func TestGameRefusedBombReported(t *testing.T) {
	g := newTestGame(1)
	g.Step(at(1, 0), press(core.ActionBomb))
	res := g.Step(at(2, time.Second), press(core.ActionBomb))
	if len(res.Events) != 1 || res.Events[0].Kind != core.EventBombRefused {
		t.Errorf("events = %+v, expected one bomb_refused", res.Events)
	}
}

func TestGameMovesOnePressAtATime(t *testing.T) {
	g := newTestGame(7)

	held := core.NewInputFrame()
	held.Hold(core.ActionRight)
	g.Step(at(1, 0), held)
	if g.Player().Cell != core.C(1, 1) {
		t.Errorf("held key moved the player to %v", g.Player().Cell)
	}

	g.Step(at(2, 0), press(core.ActionRight))
	if g.Player().Cell != core.C(2, 1) {
		t.Errorf("cell = %v, expected (2,1)", g.Player().Cell)
	}
}

func TestGamePauseFreezesSimulation(t *testing.T) {
	g := newTestGame(3)
	g.Step(at(1, 0), press(core.ActionBomb))

	res := g.Step(at(2, time.Second), press(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused")
	}
	g.Step(at(3, time.Second), press(core.ActionRight))
	if g.Player().Cell != core.C(1, 1) {
		t.Error("player moved while paused")
	}
	res = g.Step(at(4, time.Second), press(core.ActionPause))
	if res.State.Paused {
		t.Error("second pause press should resume")
	}
}

func TestGameWinsWhenArenaCleared(t *testing.T) {
	cfg := config.DefaultBomberConfig()
	cfg.Arena.Width, cfg.Arena.Height = 5, 1
	cfg.Arena.BlockChance = 0
	cfg.Arena.ClearStart = [][2]int{{0, 0}}
	cfg.Player.Start = [2]int{0, 0}
	g := NewWithConfig(cfg)
	g.Reset(testRuntime(1))
	g.World().Arena.blocks[core.C(2, 0)] = true
	g.initialBlocks = 1

	g.Step(at(1, 0), press(core.ActionBomb))
	for i := 0; i < 3; i++ {
		g.Step(at(uint64(2+i), 0), press(core.ActionRight))
	}
	// (0,0) -> (1,0), then (2,0) is a block.
	if g.Player().Cell != core.C(1, 0) {
		t.Fatalf("cell = %v, expected (1,0)", g.Player().Cell)
	}

	res := g.Step(at(10, 3*time.Second), core.NewInputFrame())
	if res.State.Won {
		t.Error("player inside the blast cannot win")
	}

	// Same arena, but the player hides out of range first.
	cfg.Arena.Width = 6
	cfg.Player.BombRange = 1
	g = NewWithConfig(cfg)
	g.Reset(testRuntime(1))
	g.World().Arena.blocks[core.C(1, 0)] = true
	g.initialBlocks = 1
	g.Player().Cell = core.C(2, 0)
	g.Step(at(1, 0), press(core.ActionBomb))
	g.Step(at(2, 0), press(core.ActionRight))
	g.Step(at(3, 0), press(core.ActionRight))

	res = g.Step(at(4, 3*time.Second), core.NewInputFrame())
	if !res.State.GameOver || !res.State.Won {
		t.Errorf("State = %+v, expected won", res.State)
	}
	if res.State.Score != cfg.Rules.BlockPoints {
		t.Errorf("Score = %d, expected %d", res.State.Score, cfg.Rules.BlockPoints)
	}
}

func TestGameDeterminism(t *testing.T) {
	script := func(i int) core.InputFrame {
		switch i % 7 {
		case 0:
			return press(core.ActionRight)
		case 2:
			return press(core.ActionDown)
		case 4:
			return press(core.ActionBomb)
		case 5:
			return press(core.ActionLeft)
		default:
			return core.NewInputFrame()
		}
	}
	run := func() BomberSnapshot {
		g := newTestGame(12345)
		period := time.Second / 60
		for i := 0; i < 600; i++ {
			res := g.Step(at(uint64(i), time.Duration(i)*period), script(i))
			if res.State.GameOver {
				break
			}
		}
		return g.Snapshot().(BomberSnapshot)
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("runs differ:\n%+v\n%+v", a, b)
	}
}

func TestGameRenderIsPure(t *testing.T) {
	g := newTestGame(9)
	g.Step(at(1, 0), press(core.ActionBomb))
	g.Step(at(2, 100*time.Millisecond), press(core.ActionRight))

	var first, second core.DrawList
	g.Render(&first)
	g.Render(&second)

	if !reflect.DeepEqual(first.Cmds, second.Cmds) {
		t.Error("two renders of the same state differ")
	}
	if first.Cmds[0].Op != core.OpClear || first.Cmds[0].Color != core.ColorGreen {
		t.Errorf("first command = %v, expected green clear", first.Cmds[0])
	}

	arena := g.World().Arena
	// walls + blocks + body + two legs
	wantRects := len(arena.Walls()) + arena.BlockCount() + 3
	if got := first.Count(core.OpRect); got != wantRects {
		t.Errorf("FillRect count = %d, expected %d", got, wantRects)
	}
	// bomb body + spark + head + two eyes
	if got := first.Count(core.OpCircle); got != 5 {
		t.Errorf("FillCircle count = %d, expected 5", got)
	}
	if first.Count(core.OpPresent) != 0 {
		t.Error("games must not present their own frames")
	}
}

func TestGameViewport(t *testing.T) {
	g := newTestGame(1)
	if w, h := g.Viewport(); w != 600 || h != 520 {
		t.Errorf("Viewport() = %dx%d, expected 600x520", w, h)
	}
}

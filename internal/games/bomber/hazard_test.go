package bomber

import (
	"sort"
	"testing"
	"time"

	"github.com/vovakirdan/blastpong/internal/core"
	"github.com/vovakirdan/blastpong/internal/entity"
)

func defaultRules() Rules {
	return Rules{
		Fuse:        3 * time.Second,
		Explosion:   500 * time.Millisecond,
		BlockPoints: 10,
	}
}

// emptyWorld is the default 15x13 arena without blocks, one actor at (1,1).
func emptyWorld(rules Rules) (*World, *entity.Actor) {
	w := NewWorld(GenerateArena(defaultSpec(), constSource(0.99)), rules)
	a := entity.NewActor(PlayerActor, core.C(1, 1), 1, 2)
	w.Spawn(a)
	return w, a
}

func layoutWorld(t *testing.T, rules Rules, rows ...string) (*World, *entity.Actor) {
	t.Helper()
	arena, err := Layout{Name: t.Name(), Rows: rows}.Arena()
	if err != nil {
		t.Fatal(err)
	}
	start, _ := arena.Start()
	w := NewWorld(arena, rules)
	a := entity.NewActor(PlayerActor, start, 1, 2)
	w.Spawn(a)
	return w, a
}

func sortCells(cells []core.Cell) []core.Cell {
	out := append([]core.Cell(nil), cells...)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func sameCells(a, b []core.Cell) bool {
	a, b = sortCells(a), sortCells(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestComputeBlast(t *testing.T) {
	tests := []struct {
		name   string
		center core.Cell
		rng    int
		want   []core.Cell
	}{
		{
			name:   "start corner",
			center: core.C(1, 1),
			rng:    2,
			want: []core.Cell{
				core.C(1, 1), core.C(2, 1), core.C(3, 1), core.C(0, 1),
				core.C(1, 0), core.C(1, 2), core.C(1, 3),
			},
		},
		{
			name:   "grid corner",
			center: core.C(0, 0),
			rng:    2,
			want:   []core.Cell{core.C(0, 0), core.C(1, 0), core.C(2, 0), core.C(0, 1), core.C(0, 2)},
		},
		{
			name:   "zero range",
			center: core.C(7, 6),
			rng:    0,
			want:   []core.Cell{core.C(7, 6)},
		},
		{
			name:   "bottom right",
			center: core.C(14, 12),
			rng:    1,
			want:   []core.Cell{core.C(14, 12), core.C(13, 12), core.C(14, 11)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBlast(tt.center, tt.rng, 15, 13, nil)
			if got.Center != tt.center {
				t.Errorf("Center = %v, expected %v", got.Center, tt.center)
			}
			if !sameCells(got.Cells, tt.want) {
				t.Errorf("Cells = %v, expected %v", sortCells(got.Cells), sortCells(tt.want))
			}
		})
	}
}

func TestComputeBlastClassicStop(t *testing.T) {
	arena, err := Layout{Name: "row", Rows: []string{"P.+..#."}}.Arena()
	if err != nil {
		t.Fatal(err)
	}

	open := ComputeBlast(core.C(0, 0), 6, arena.Width(), arena.Height(), nil)
	if len(open.Cells) != 7 {
		t.Errorf("open blast covers %d cells, expected 7", len(open.Cells))
	}

	classic := ComputeBlast(core.C(0, 0), 6, arena.Width(), arena.Height(), ClassicStop(arena))
	want := []core.Cell{core.C(0, 0), core.C(1, 0), core.C(2, 0)}
	if !sameCells(classic.Cells, want) {
		t.Errorf("classic blast = %v, expected %v", classic.Cells, want)
	}

	wall := ComputeBlast(core.C(4, 0), 3, arena.Width(), arena.Height(), ClassicStop(arena))
	want = []core.Cell{core.C(4, 0), core.C(3, 0), core.C(2, 0)}
	if !sameCells(wall.Cells, want) {
		t.Errorf("blast next to wall = %v, expected %v", wall.Cells, want)
	}
}

func TestHazardLifecycle(t *testing.T) {
	w, a := emptyWorld(defaultRules())

	h, ok := w.PlaceBomb(a, 0)
	if !ok {
		t.Fatal("PlaceBomb refused on an empty cell")
	}
	// Walk out of range: (1,1) -> (2,1) -> (2,2).
	if !w.MoveActor(a, 1, 0) || !w.MoveActor(a, 0, 1) {
		t.Fatal("escape route blocked")
	}

	steps := []struct {
		now   time.Duration
		state entity.HazardState
		live  int
	}{
		{2999 * time.Millisecond, entity.HazardArmed, 1},
		{3 * time.Second, entity.HazardExploding, 1},
		{3499 * time.Millisecond, entity.HazardExploding, 1},
		{3500 * time.Millisecond, entity.HazardExpired, 0},
		{4 * time.Second, entity.HazardExpired, 0},
	}
	for _, s := range steps {
		w.UpdateHazards(s.now)
		if h.State != s.state {
			t.Errorf("at %v: state = %v, expected %v", s.now, h.State, s.state)
		}
		if len(w.Hazards) != s.live {
			t.Errorf("at %v: live hazards = %d, expected %d", s.now, len(w.Hazards), s.live)
		}
	}

	want := []core.Cell{
		core.C(1, 1), core.C(2, 1), core.C(3, 1), core.C(0, 1),
		core.C(1, 0), core.C(1, 2), core.C(1, 3),
	}
	if !sameCells(h.Blast.Cells, want) {
		t.Errorf("Blast = %v, expected %v", h.Blast.Cells, want)
	}
	if !a.Alive {
		t.Error("actor outside the blast should survive")
	}
}

func TestDetonationEffectsSameTick(t *testing.T) {
	w, a := layoutWorld(t, defaultRules(),
		"+.P.+",
		".....",
		"....+",
	)

	if _, ok := w.PlaceBomb(a, 0); !ok {
		t.Fatal("PlaceBomb refused")
	}
	events := w.UpdateHazards(3 * time.Second)

	if a.Alive {
		t.Error("actor on the bomb should be eliminated")
	}
	if w.Arena.BlockCount() != 1 {
		t.Errorf("BlockCount() = %d, expected 1 (corner blocks destroyed)", w.Arena.BlockCount())
	}
	if !w.Arena.HasBlock(core.C(4, 2)) {
		t.Error("block outside the blast was destroyed")
	}
	if w.Score() != 20 {
		t.Errorf("Score() = %d, expected 20", w.Score())
	}

	var kinds []core.EventKind
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	wantKinds := []core.EventKind{
		core.EventDetonated,
		core.EventBlockDestroyed,
		core.EventBlockDestroyed,
		core.EventEliminated,
	}
	if len(kinds) != len(wantKinds) {
		t.Fatalf("events = %v, expected %v", kinds, wantKinds)
	}
	for i := range kinds {
		if kinds[i] != wantKinds[i] {
			t.Errorf("event %d = %v, expected %v", i, kinds[i], wantKinds[i])
		}
	}
}

func TestPlaceBombRefusals(t *testing.T) {
	w, a := emptyWorld(defaultRules())

	if _, ok := w.PlaceBomb(a, 0); !ok {
		t.Fatal("first bomb refused")
	}
	w.MoveActor(a, 1, 0)
	if _, ok := w.PlaceBomb(a, 0); ok {
		t.Error("bomb over the cap should be refused")
	}

	a.BombsAllowed = 2
	w.MoveActor(a, -1, 0)
	if _, ok := w.PlaceBomb(a, 0); ok {
		t.Error("bomb on an occupied cell should be refused")
	}
	if w.LiveBombs(a.ID) != 1 {
		t.Errorf("LiveBombs() = %d, expected 1", w.LiveBombs(a.ID))
	}

	a.Alive = false
	w.MoveActor(a, 1, 0)
	if _, ok := w.PlaceBomb(a, 0); ok {
		t.Error("eliminated actors cannot place bombs")
	}
}

func TestBombCapacityFreesAfterExpiry(t *testing.T) {
	w, a := emptyWorld(defaultRules())
	a.Cell = core.C(10, 10)

	w.PlaceBomb(a, 0)
	w.MoveActor(a, 0, 1)
	w.MoveActor(a, 0, 1)
	w.MoveActor(a, 1, 0)
	w.MoveActor(a, 1, 0)
	w.MoveActor(a, 1, 0)

	w.UpdateHazards(3 * time.Second)
	if _, ok := w.PlaceBomb(a, 3*time.Second); ok {
		t.Error("exploding bomb still counts against the cap")
	}
	w.UpdateHazards(3500 * time.Millisecond)
	if _, ok := w.PlaceBomb(a, 3500*time.Millisecond); !ok {
		t.Error("cap should free once the bomb expires")
	}
}

func TestConcurrentHazardsOwnTheirAreas(t *testing.T) {
	w, a := emptyWorld(defaultRules())
	a.BombsAllowed = 2
	a.Cell = core.C(0, 12)

	first, _ := w.PlaceBomb(a, 0)
	a.Cell = core.C(14, 0)
	second, _ := w.PlaceBomb(a, 200*time.Millisecond)
	a.Cell = core.C(8, 6)

	w.UpdateHazards(3 * time.Second)
	w.UpdateHazards(3200 * time.Millisecond)
	if first.State != entity.HazardExploding || second.State != entity.HazardExploding {
		t.Fatalf("states = %v/%v, expected both exploding", first.State, second.State)
	}

	w.UpdateHazards(3500 * time.Millisecond)
	if first.State != entity.HazardExpired {
		t.Errorf("first = %v, expected expired", first.State)
	}
	if second.State != entity.HazardExploding {
		t.Errorf("second = %v, expected exploding", second.State)
	}
	if len(w.Hazards) != 1 || w.Hazards[0] != second {
		t.Error("only the second hazard should remain live")
	}
	if !second.Blast.Contains(core.C(14, 0)) || second.Blast.Contains(core.C(0, 12)) {
		t.Error("second blast area was changed by the first hazard's expiry")
	}
}

func TestMove(t *testing.T) {
	w, a := layoutWorld(t, defaultRules(),
		"P#",
		".+",
	)

	tests := []struct {
		name   string
		dx, dy int
		ok     bool
		want   core.Cell
	}{
		{"out of bounds left", -1, 0, false, core.C(0, 0)},
		{"out of bounds up", 0, -1, false, core.C(0, 0)},
		{"into wall", 1, 0, false, core.C(0, 0)},
		{"floor", 0, 1, true, core.C(0, 1)},
		{"into block", 1, 0, false, core.C(0, 1)},
		{"diagonal into wall", 1, -1, false, core.C(0, 1)},
	}
	for _, tt := range tests {
		if got := w.MoveActor(a, tt.dx, tt.dy); got != tt.ok {
			t.Errorf("%s: Move() = %v, expected %v", tt.name, got, tt.ok)
		}
		if a.Cell != tt.want {
			t.Errorf("%s: cell = %v, expected %v", tt.name, a.Cell, tt.want)
		}
	}
}

func TestMoveBombsBlockMovement(t *testing.T) {
	rules := defaultRules()
	rules.BombsBlockMovement = true
	w, a := emptyWorld(rules)
	a.BombsAllowed = 2

	w.PlaceBomb(a, 0)
	w.MoveActor(a, 1, 0)
	if w.MoveActor(a, -1, 0) {
		t.Error("actor walked back onto a live bomb")
	}

	other, _ := emptyWorld(defaultRules())
	b := other.Actor(PlayerActor)
	other.PlaceBomb(b, 0)
	other.MoveActor(b, 1, 0)
	if !other.MoveActor(b, -1, 0) {
		t.Error("bombs should not block movement by default")
	}

	a.Alive = false
	if w.MoveActor(a, 0, 1) {
		t.Error("eliminated actors never move")
	}
}

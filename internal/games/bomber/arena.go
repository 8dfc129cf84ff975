package bomber

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blastpong/internal/core"
)

// Float64Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Float64Source interface {
	Float64() float64
}

// ArenaSpec describes a procedurally generated arena.
type ArenaSpec struct {
	Width       int
	Height      int
	BlockChance float64
	ClearStart  []core.Cell
}

// Arena is the static grid: permanent walls plus destructible blocks.
// Walls and blocks never share a cell.
type Arena struct {
	width  int
	height int
	walls  map[core.Cell]bool
	blocks map[core.Cell]bool
	start  core.Cell
	fixed  bool // loaded from a layout, start is authoritative
}

// IsWallCell reports whether generation places a wall at c: both
// coordinates odd.
func IsWallCell(c core.Cell) bool {
	return c.X%2 == 1 && c.Y%2 == 1
}

// GenerateArena builds an arena from spec. Cells are scanned column by
// column (x outer, y inner), drawing one value from rng per cell that
// could hold a block. Clear-start cells stay empty even where the wall
// pattern would put a wall.
func GenerateArena(spec ArenaSpec, rng Float64Source) *Arena {
	a := newArena(spec.Width, spec.Height)

	keep := make(map[core.Cell]bool, len(spec.ClearStart))
	for _, c := range spec.ClearStart {
		keep[c] = true
	}

	for x := 0; x < spec.Width; x++ {
		for y := 0; y < spec.Height; y++ {
			c := core.C(x, y)
			if keep[c] {
				continue
			}
			if IsWallCell(c) {
				a.walls[c] = true
				continue
			}
			if rng.Float64() < spec.BlockChance {
				a.blocks[c] = true
			}
		}
	}
	return a
}

// ValidateClearStart reports clear-start cells outside the grid and
// checks that start is one of them.
func ValidateClearStart(spec ArenaSpec, start core.Cell) error {
	found := false
	for _, c := range spec.ClearStart {
		if !c.In(spec.Width, spec.Height) {
			return fmt.Errorf("bomber: clear-start cell (%d,%d) outside %dx%d arena", c.X, c.Y, spec.Width, spec.Height)
		}
		if c == start {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("bomber: start (%d,%d) is not in the clear-start area", start.X, start.Y)
	}
	return nil
}

func newArena(w, h int) *Arena {
	return &Arena{
		width:  w,
		height: h,
		walls:  make(map[core.Cell]bool),
		blocks: make(map[core.Cell]bool),
	}
}

// Width returns the number of columns.
func (a *Arena) Width() int { return a.width }

// Height returns the number of rows.
func (a *Arena) Height() int { return a.height }

// InBounds reports whether c lies on the grid.
func (a *Arena) InBounds(c core.Cell) bool {
	return c.In(a.width, a.height)
}

// IsWall reports whether c holds a wall.
func (a *Arena) IsWall(c core.Cell) bool {
	return a.walls[c]
}

// HasBlock reports whether c holds a block that has not been destroyed.
func (a *Arena) HasBlock(c core.Cell) bool {
	return a.blocks[c]
}

// Passable reports whether an actor may stand on c.
func (a *Arena) Passable(c core.Cell) bool {
	return a.InBounds(c) && !a.walls[c] && !a.blocks[c]
}

// DestroyBlock removes the block at c. It returns false and does nothing
// when there is no block, so repeated calls are harmless.
func (a *Arena) DestroyBlock(c core.Cell) bool {
	if !a.blocks[c] {
		return false
	}
	delete(a.blocks, c)
	return true
}

// BlockCount returns the number of remaining blocks.
func (a *Arena) BlockCount() int {
	return len(a.blocks)
}

// Walls returns the wall cells in row-major order.
func (a *Arena) Walls() []core.Cell {
	return sortedCells(a.walls)
}

// Blocks returns the remaining block cells in row-major order.
func (a *Arena) Blocks() []core.Cell {
	return sortedCells(a.blocks)
}

// Start returns the player start cell of a loaded layout.
func (a *Arena) Start() (core.Cell, bool) {
	return a.start, a.fixed
}

func sortedCells(set map[core.Cell]bool) []core.Cell {
	cells := make([]core.Cell, 0, len(set))
	for c := range set {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Less(cells[j])
	})
	return cells
}

// Layout is a hand-drawn arena. Each row uses
//
//	#  wall
//	+  block
//	.  floor
//	P  floor, player start
type Layout struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// LoadLayout reads a YAML layout file.
func LoadLayout(path string) (*Arena, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bomber: read layout %s: %w", path, err)
	}
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("bomber: parse layout %s: %w", path, err)
	}
	return l.Arena()
}

// Arena converts the layout into an arena.
func (l Layout) Arena() (*Arena, error) {
	if len(l.Rows) == 0 {
		return nil, fmt.Errorf("bomber: layout %q has no rows", l.Name)
	}
	w := len(strings.TrimRight(l.Rows[0], " "))
	a := newArena(w, len(l.Rows))
	starts := 0

	for y, row := range l.Rows {
		row = strings.TrimRight(row, " ")
		if len(row) != w {
			return nil, fmt.Errorf("bomber: layout %q row %d has width %d, expected %d", l.Name, y, len(row), w)
		}
		for x, ch := range row {
			c := core.C(x, y)
			switch ch {
			case '#':
				a.walls[c] = true
			case '+':
				a.blocks[c] = true
			case '.':
			case 'P':
				a.start = c
				starts++
			default:
				return nil, fmt.Errorf("bomber: layout %q has unknown tile %q at (%d,%d)", l.Name, ch, x, y)
			}
		}
	}

	if starts != 1 {
		return nil, fmt.Errorf("bomber: layout %q needs exactly one P, found %d", l.Name, starts)
	}
	a.fixed = true
	return a, nil
}

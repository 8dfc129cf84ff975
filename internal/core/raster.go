package core

import "math"

// Glyphs used when rasterizing pixel-space shapes into character cells.
const (
	GlyphFill    = '█'
	GlyphDot     = '●'
	GlyphHLine   = '─'
	GlyphVLine   = '│'
	GlyphDiag    = '·'
	minPixelSize = 1e-6
)

// ScreenRenderer rasterizes pixel-space draw commands into a character
// Screen. It keeps a back buffer that commands draw into and a front buffer
// that Present publishes, so a reader of Front never sees a half drawn frame.
//
// The logical view is scaled uniformly to fit the screen, assuming a
// terminal cell is twice as tall as it is wide.
type ScreenRenderer struct {
	back  *Screen
	front *Screen
	viewW int
	viewH int

	sx, sy     float64 // pixels per column / row
	offX, offY int     // centering offset in cells
}

// NewScreenRenderer creates a renderer for a view of viewW x viewH pixels
// shown on a cols x rows screen.
func NewScreenRenderer(cols, rows, viewW, viewH int) *ScreenRenderer {
	r := &ScreenRenderer{
		back:  NewScreen(cols, rows),
		front: NewScreen(cols, rows),
		viewW: viewW,
		viewH: viewH,
	}
	r.fit()
	return r
}

// Resize adapts both buffers to a new screen size.
func (r *ScreenRenderer) Resize(cols, rows int) {
	r.back.Resize(cols, rows)
	r.front.Resize(cols, rows)
	r.fit()
}

// SetView changes the logical pixel size being displayed.
func (r *ScreenRenderer) SetView(viewW, viewH int) {
	r.viewW, r.viewH = viewW, viewH
	r.fit()
}

// Front returns the last presented frame.
func (r *ScreenRenderer) Front() *Screen {
	return r.front
}

// Scale returns pixels per column and pixels per row.
func (r *ScreenRenderer) Scale() (float64, float64) {
	return r.sx, r.sy
}

func (r *ScreenRenderer) fit() {
	cols := Max(1, r.back.Width())
	rows := Max(1, r.back.Height())
	vw := math.Max(float64(r.viewW), 1)
	vh := math.Max(float64(r.viewH), 1)

	s := math.Max(vw/float64(cols), vh/(2*float64(rows)))
	s = math.Max(s, minPixelSize)
	r.sx, r.sy = s, 2*s

	usedCols := int(math.Ceil(vw / r.sx))
	usedRows := int(math.Ceil(vh / r.sy))
	r.offX = Max(0, (cols-usedCols)/2)
	r.offY = Max(0, (rows-usedRows)/2)
}

// span returns the half-open cell range whose centers fall inside
// [lo, hi) on an axis with the given scale. Shapes thinner than a cell
// still cover the cell holding their midpoint.
func span(lo, hi, scale float64) (int, int) {
	start := int(math.Ceil(lo/scale - 0.5))
	end := int(math.Ceil(hi/scale - 0.5))
	if end <= start {
		start = int(math.Floor((lo + hi) / 2 / scale))
		end = start + 1
	}
	return start, end
}

func (r *ScreenRenderer) set(col, row int, g rune, c Color) {
	r.back.SetColor(col+r.offX, row+r.offY, g, c)
}

// Clear resets the back buffer to the background color.
func (r *ScreenRenderer) Clear(bg Color) {
	r.back.ClearTo(bg)
}

// FillRect fills every cell whose center lies inside rect.
func (r *ScreenRenderer) FillRect(rect Rect, c Color) {
	c0, c1 := span(float64(rect.X), float64(rect.Right()), r.sx)
	r0, r1 := span(float64(rect.Y), float64(rect.Bottom()), r.sy)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			r.set(col, row, GlyphFill, c)
		}
	}
}

// FillCircle fills the cells whose centers lie inside the circle.
func (r *ScreenRenderer) FillCircle(cx, cy, radius int, c Color) {
	d := 2 * radius
	r.FillEllipse(Rect{X: cx - radius, Y: cy - radius, W: d, H: d}, c)
}

// FillEllipse fills the cells whose centers lie inside the inscribed ellipse.
func (r *ScreenRenderer) FillEllipse(rect Rect, c Color) {
	rx := float64(rect.W) / 2
	ry := float64(rect.H) / 2
	cx := float64(rect.X) + rx
	cy := float64(rect.Y) + ry

	c0, c1 := span(float64(rect.X), float64(rect.Right()), r.sx)
	r0, r1 := span(float64(rect.Y), float64(rect.Bottom()), r.sy)
	if c1-c0 == 1 && r1-r0 == 1 {
		r.set(c0, r0, GlyphDot, c)
		return
	}

	drawn := false
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			px := (float64(col) + 0.5) * r.sx
			py := (float64(row) + 0.5) * r.sy
			nx := (px - cx) / math.Max(rx, minPixelSize)
			ny := (py - cy) / math.Max(ry, minPixelSize)
			if nx*nx+ny*ny <= 1 {
				r.set(col, row, GlyphFill, c)
				drawn = true
			}
		}
	}
	if !drawn {
		r.set(int(math.Floor(cx/r.sx)), int(math.Floor(cy/r.sy)), GlyphDot, c)
	}
}

// Line walks the segment in sub-cell steps. Width is a pixel-space hint and
// does not thicken the line in character space.
func (r *ScreenRenderer) Line(x1, y1, x2, y2, _ int, c Color) {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)

	glyph := GlyphDiag
	switch {
	case math.Abs(dy)*r.sx < math.Abs(dx)*r.sy/2:
		glyph = GlyphHLine
	case math.Abs(dx)*r.sy < math.Abs(dy)*r.sx/2:
		glyph = GlyphVLine
	}

	step := math.Min(r.sx, r.sy) / 2
	n := int(math.Ceil(math.Hypot(dx, dy)/step)) + 1
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		px := float64(x1) + dx*t
		py := float64(y1) + dy*t
		col := int(math.Floor(px / r.sx))
		row := int(math.Floor(py / r.sy))
		if px == float64(r.viewW) {
			col--
		}
		if py == float64(r.viewH) {
			row--
		}
		r.set(col, row, glyph, c)
	}
}

// Text places one rune per cell starting at the cell holding (x, y).
func (r *ScreenRenderer) Text(x, y int, text string, align Align, c Color) {
	col := int(math.Floor(float64(x) / r.sx))
	row := int(math.Floor(float64(y) / r.sy))
	if align == AlignCenter {
		col -= len([]rune(text)) / 2
	}
	r.back.DrawText(col+r.offX, row+r.offY, text, c)
}

// Present publishes the back buffer.
func (r *ScreenRenderer) Present() {
	r.front.CopyFrom(r.back)
}

var _ Renderer = (*ScreenRenderer)(nil)

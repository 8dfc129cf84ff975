package core

import "fmt"

// Align controls horizontal placement of a text label around its anchor.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Renderer receives draw commands in pixel space.
// Games issue a deterministic command sequence derived only from their
// state; nothing in a game reads back from the renderer.
type Renderer interface {
	Clear(bg Color)
	FillRect(r Rect, c Color)
	FillCircle(cx, cy, radius int, c Color)
	FillEllipse(r Rect, c Color)
	Line(x1, y1, x2, y2, width int, c Color)
	Text(x, y int, text string, align Align, c Color)
	Present()
}

// DrawOp is the kind of a recorded draw command.
type DrawOp int

const (
	OpClear DrawOp = iota
	OpRect
	OpCircle
	OpEllipse
	OpLine
	OpText
	OpPresent
)

func (o DrawOp) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpRect:
		return "rect"
	case OpCircle:
		return "circle"
	case OpEllipse:
		return "ellipse"
	case OpLine:
		return "line"
	case OpText:
		return "text"
	case OpPresent:
		return "present"
	default:
		return "unknown"
	}
}

// DrawCmd is one recorded command. Only the fields relevant to Op are set.
type DrawCmd struct {
	Op    DrawOp
	Rect  Rect // rect, ellipse, text anchor; circle stores center in X/Y and radius in W
	Line  [4]int
	Width int
	Text  string
	Align Align
	Color Color
}

func (d DrawCmd) String() string {
	switch d.Op {
	case OpLine:
		return fmt.Sprintf("%s %v w=%d %s", d.Op, d.Line, d.Width, d.Color)
	case OpText:
		return fmt.Sprintf("%s (%d,%d) %q %s", d.Op, d.Rect.X, d.Rect.Y, d.Text, d.Color)
	case OpPresent:
		return d.Op.String()
	default:
		return fmt.Sprintf("%s %+v %s", d.Op, d.Rect, d.Color)
	}
}

// DrawList is a Renderer that records every command of the current frame.
// Present closes the frame; Frames counts presented frames.
type DrawList struct {
	Cmds   []DrawCmd
	Frames int
}

// Reset drops recorded commands.
func (l *DrawList) Reset() {
	l.Cmds = l.Cmds[:0]
}

// Count returns how many commands of the given op were recorded.
func (l *DrawList) Count(op DrawOp) int {
	n := 0
	for _, c := range l.Cmds {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (l *DrawList) Clear(bg Color) {
	l.Reset()
	l.Cmds = append(l.Cmds, DrawCmd{Op: OpClear, Color: bg})
}

func (l *DrawList) FillRect(r Rect, c Color) {
	l.Cmds = append(l.Cmds, DrawCmd{Op: OpRect, Rect: r, Color: c})
}

func (l *DrawList) FillCircle(cx, cy, radius int, c Color) {
	l.Cmds = append(l.Cmds, DrawCmd{Op: OpCircle, Rect: Rect{X: cx, Y: cy, W: radius}, Color: c})
}

func (l *DrawList) FillEllipse(r Rect, c Color) {
	l.Cmds = append(l.Cmds, DrawCmd{Op: OpEllipse, Rect: r, Color: c})
}

func (l *DrawList) Line(x1, y1, x2, y2, width int, c Color) {
	l.Cmds = append(l.Cmds, DrawCmd{Op: OpLine, Line: [4]int{x1, y1, x2, y2}, Width: width, Color: c})
}

func (l *DrawList) Text(x, y int, text string, align Align, c Color) {
	l.Cmds = append(l.Cmds, DrawCmd{Op: OpText, Rect: Rect{X: x, Y: y}, Text: text, Align: align, Color: c})
}

func (l *DrawList) Present() {
	l.Cmds = append(l.Cmds, DrawCmd{Op: OpPresent})
	l.Frames++
}

var _ Renderer = (*DrawList)(nil)

// NopRenderer discards everything; used by headless runs.
type NopRenderer struct{}

func (NopRenderer) Clear(Color)                         {}
func (NopRenderer) FillRect(Rect, Color)                {}
func (NopRenderer) FillCircle(int, int, int, Color)     {}
func (NopRenderer) FillEllipse(Rect, Color)             {}
func (NopRenderer) Line(int, int, int, int, int, Color) {}
func (NopRenderer) Text(int, int, string, Align, Color) {}
func (NopRenderer) Present()                            {}

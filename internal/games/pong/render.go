package pong

import (
	"strconv"

	"github.com/vovakirdan/blastpong/internal/core"
)

const (
	colorBackground = core.ColorBlack
	colorGrid       = core.ColorPurple
	colorCenterLine = core.ColorBrightGreen
)

// Render draws the current game state.
func (g *Game) Render(dst core.Renderer) {
	dst.Clear(colorBackground)
	if g.world == nil {
		return
	}
	w, h := g.Viewport()

	if spacing := g.cfg.Arena.GridSpacing; spacing > 0 {
		for y := 0; y < h; y += spacing {
			dst.Line(0, y, w, y, 1, colorGrid)
		}
	}

	left, right := g.world.Left, g.world.Right
	dst.FillRect(left.Rect.Rect(), left.Color)
	dst.FillRect(right.Rect.Rect(), right.Color)
	dst.FillEllipse(g.world.Ball.Pos.Rect(), g.world.Ball.Color)

	dst.Line(w/2, 0, w/2, h, 3, colorCenterLine)

	dst.Text(w/4, 20, strconv.Itoa(left.Score), core.AlignLeft, left.Color)
	dst.Text(3*w/4, 20, strconv.Itoa(right.Score), core.AlignLeft, right.Color)

	switch {
	case g.gameOver && g.winner == core.Player1:
		dst.Text(w/2, h/2, "YOU WIN!", core.AlignCenter, core.ColorBrightWhite)
	case g.gameOver:
		dst.Text(w/2, h/2, "CPU WINS!", core.AlignCenter, core.ColorBrightWhite)
	case g.paused:
		dst.Text(w/2, h/2, "PAUSED", core.AlignCenter, core.ColorBrightWhite)
	}
}

package bomber

import (
	"time"

	"github.com/vovakirdan/blastpong/internal/core"
	"github.com/vovakirdan/blastpong/internal/entity"
)

// Palette
const (
	colorFloor     = core.ColorGreen
	colorWall      = core.ColorGray
	colorBlock     = core.ColorBrown
	colorBomb      = core.ColorBlack
	colorFuse      = core.ColorRed
	colorSpark     = core.ColorYellow
	colorExplosion = core.ColorRed
	colorBody      = core.ColorBlue
	colorHead      = core.ColorSkin
	colorDetail    = core.ColorBlack
)

const pulseAmplitude = 0.2

// Render draws the current game state. It reads state only.
func (g *Game) Render(dst core.Renderer) {
	dst.Clear(colorFloor)
	if g.world == nil {
		return
	}
	tile := g.cfg.Arena.TileSize
	arena := g.world.Arena

	for _, c := range arena.Walls() {
		dst.FillRect(core.GridToPixelRect(c, tile), colorWall)
	}
	for _, c := range arena.Blocks() {
		dst.FillRect(core.GridToPixelRect(c, tile), colorBlock)
	}

	// Exploding bombs stay on screen under their blast.
	for _, h := range g.world.Hazards {
		drawBomb(dst, h, tile, g.now, g.cfg.Bombs.PulsePeriod)
	}
	for _, h := range g.world.Hazards {
		if h.State != entity.HazardExploding {
			continue
		}
		for _, c := range h.Blast.Cells {
			cx, cy := core.GridToPixelRect(c, tile).Center()
			dst.FillCircle(cx, cy, tile/2, colorExplosion)
		}
	}

	if g.player.Alive {
		drawActor(dst, g.player, tile)
	}

	w, h := g.Viewport()
	switch {
	case g.gameOver && g.won:
		dst.Text(w/2, h/2, "Arena Cleared!", core.AlignCenter, core.ColorBrightYellow)
	case g.gameOver:
		dst.Text(w/2, h/2, "Game Over!", core.AlignCenter, core.ColorRed)
	case g.paused:
		dst.Text(w/2, h/2, "PAUSED", core.AlignCenter, core.ColorWhite)
	}
}

// drawBomb draws a pulsing bomb with its fuse.
func drawBomb(dst core.Renderer, h *entity.Hazard, tile int, now, period time.Duration) {
	cx, cy := core.GridToPixelRect(h.Cell, tile).Center()
	base := float64(tile) * 0.6
	radius := int(base * entity.PulseScale(h.PulsePhase(now, period), pulseAmplitude))

	dst.FillCircle(cx, cy, radius, colorBomb)
	dst.Line(cx, cy-radius, cx, cy-radius-8, 3, colorFuse)
	dst.FillCircle(cx, cy-radius-8, 4, colorSpark)
}

// drawActor draws the player figure inside its tile.
func drawActor(dst core.Renderer, a *entity.Actor, tile int) {
	r := a.Bounds(tile)
	cx, _ := r.Center()

	dst.FillRect(core.NewRect(r.X+10, r.Y+15, tile-20, tile-25), colorBody)

	headY := r.Y + 12
	dst.FillCircle(cx, headY, 8, colorHead)
	dst.FillCircle(cx-3, headY-2, 2, colorDetail)
	dst.FillCircle(cx+3, headY-2, 2, colorDetail)

	dst.FillRect(core.NewRect(r.X+12, r.Bottom()-10, 4, 8), colorDetail)
	dst.FillRect(core.NewRect(r.Right()-16, r.Bottom()-10, 4, 8), colorDetail)
}

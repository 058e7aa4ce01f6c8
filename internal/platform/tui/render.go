package tui

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Glyphs used for world entities.
const (
	glyphPlatform   = '█'
	glyphSpike      = '^'
	glyphCoin       = 'o'
	glyphEnemy      = 'M'
	glyphCheckpoint = 'F'
	glyphGoal       = '#'
	glyphPlayer     = '@'
)

// Camera is the top-left corner of the visible world window.
type Camera struct {
	X, Y float64
}

// cameraFor centers the view on the player, clamped to level bounds.
func cameraFor(w *physics.World, view config.WorldConfig) Camera {
	p := w.Player
	camX := p.X + p.W/2 - view.ViewWidth/2
	camY := p.Y + p.H/2 - view.ViewHeight/2

	camX = core.ClampF(camX, 0, maxF(0, w.Layout.Width-view.ViewWidth))
	camY = core.ClampF(camY, 0, maxF(0, w.Layout.Height-view.ViewHeight))
	return Camera{X: camX, Y: camY}
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// worldRenderer projects world-space rectangles into screen cells.
// The top hudRows rows of the screen are reserved for the HUD.
type worldRenderer struct {
	screen  *core.Screen
	cam     Camera
	scaleX  float64
	scaleY  float64
	hudRows int
}

func newWorldRenderer(s *core.Screen, cam Camera, view config.WorldConfig, hudRows int) worldRenderer {
	rows := s.Height() - hudRows
	if rows < 1 {
		rows = 1
	}
	cols := s.Width()
	if cols < 1 {
		cols = 1
	}
	return worldRenderer{
		screen:  s,
		cam:     cam,
		scaleX:  view.ViewWidth / float64(cols),
		scaleY:  view.ViewHeight / float64(rows),
		hudRows: hudRows,
	}
}

// cell converts a world point to screen cell coordinates.
func (r worldRenderer) cell(wx, wy float64) (int, int) {
	cx := int((wx - r.cam.X) / r.scaleX)
	cy := int((wy-r.cam.Y)/r.scaleY) + r.hudRows
	return cx, cy
}

// fillRect draws a world-space rectangle, always covering at least one
// cell so thin geometry stays visible.
func (r worldRenderer) fillRect(rect core.Rect, glyph rune) {
	x0, y0 := r.cell(rect.X, rect.Y)
	x1, y1 := r.cell(rect.Right(), rect.Bottom())
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	r.screen.FillCells(x0, y0, x1-x0, y1-y0, glyph)
}

// RenderWorld draws the level and its entities into the screen buffer
// below the HUD rows.
func RenderWorld(s *core.Screen, w *physics.World, view config.WorldConfig, hudRows int) {
	cam := cameraFor(w, view)
	r := newWorldRenderer(s, cam, view, hudRows)

	for _, p := range w.Layout.Platforms {
		r.fillRect(p, glyphPlatform)
	}
	for _, spike := range w.Layout.Spikes {
		r.fillRect(spike, glyphSpike)
	}
	for _, cp := range w.Layout.Checkpoints {
		cx, cy := r.cell(cp.X, cp.Y)
		s.Set(cx, cy, glyphCheckpoint)
	}
	r.fillRect(w.Layout.Goal, glyphGoal)

	for _, c := range w.Coins {
		if !c.Active {
			continue
		}
		cx, cy := r.cell(c.X, c.Y)
		s.Set(cx, cy, glyphCoin)
	}
	for i := range w.Enemies {
		e := &w.Enemies[i]
		if !e.Active {
			continue
		}
		r.fillRect(e.Rect(), glyphEnemy)
	}

	r.fillRect(w.Player.Rect(), glyphPlayer)
}

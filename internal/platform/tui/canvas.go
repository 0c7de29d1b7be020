package tui

import (
	"math"

	"github.com/vovakirdan/berrynoid/internal/core"
)

// Canvas is a core.Surface backed by a Screen. The outer band of the
// world, as thick as the inset, maps onto a one-cell frame and the
// interior is scaled onto the remaining cells.
type Canvas struct {
	screen *core.Screen
	world  core.Rect
	inset  float64
}

// NewCanvas creates a canvas of cols x rows cells for the world rectangle.
func NewCanvas(cols, rows int, world core.Rect, inset float64) *Canvas {
	return &Canvas{
		screen: core.NewScreen(cols, rows),
		world:  world,
		inset:  inset,
	}
}

// Screen returns the back buffer.
func (c *Canvas) Screen() *core.Screen {
	return c.screen
}

// Resize changes the cell size of the canvas.
func (c *Canvas) Resize(cols, rows int) {
	c.screen.Resize(cols, rows)
}

// Clear blanks the back buffer for the next frame.
func (c *Canvas) Clear() {
	c.screen.Clear()
}

// project maps one world coordinate onto a cell index along an axis of n
// cells spanning [lo, hi).
func (c *Canvas) project(v, lo, hi float64, n int) int {
	if n <= 2 {
		return core.Clamp(int(math.Floor((v-lo)/(hi-lo)*float64(n))), 0, n-1)
	}
	switch {
	case v < lo+c.inset:
		return 0
	case v >= hi-c.inset:
		return n - 1
	}
	span := hi - lo - 2*c.inset
	if span <= 0 {
		return 0
	}
	cell := 1 + int(math.Floor((v-lo-c.inset)/span*float64(n-2)))
	return core.Clamp(cell, 1, n-2)
}

// CellX returns the column of a world x.
func (c *Canvas) CellX(x float64) int {
	return c.project(x, c.world.Left(), c.world.Right(), c.screen.Width())
}

// CellY returns the row of a world y.
func (c *Canvas) CellY(y float64) int {
	return c.project(y, c.world.Top(), c.world.Bottom(), c.screen.Height())
}

// cells returns the cell rectangle covering r. Empty rects cover nothing.
func (c *Canvas) cells(r core.Rect) (x, y, w, h int, ok bool) {
	if r.IsEmpty() {
		return 0, 0, 0, 0, false
	}
	const eps = 1e-9
	x0, y0 := c.CellX(r.Left()), c.CellY(r.Top())
	x1, y1 := c.CellX(r.Right()-eps), c.CellY(r.Bottom()-eps)
	return x0, y0, core.Max(x1-x0+1, 1), core.Max(y1-y0+1, 1), true
}

// FillRect fills the cells covered by r.
func (c *Canvas) FillRect(r core.Rect, glyph rune, color core.Color) {
	if x, y, w, h, ok := c.cells(r); ok {
		c.screen.FillCells(x, y, w, h, core.Cell{Rune: glyph, Color: color})
	}
}

// FillCircle marks the cell under the centre. A ball is always smaller
// than a cell at playable terminal sizes.
func (c *Canvas) FillCircle(cx, cy, radius float64, glyph rune, color core.Color) {
	if radius <= 0 {
		return
	}
	c.screen.SetCell(c.CellX(cx), c.CellY(cy), core.Cell{Rune: glyph, Color: color})
}

// DrawImage fills dst with the sprite glyph.
func (c *Canvas) DrawImage(img core.Sprite, dst core.Rect) {
	if img.IsZero() {
		return
	}
	c.FillRect(dst, img.Glyph, img.Color)
}

// DrawText writes text starting at the cell of (x, y).
func (c *Canvas) DrawText(x, y float64, text string, color core.Color) {
	c.screen.DrawTextColor(c.CellX(x), c.CellY(y), text, color)
}

// DrawTextCentered writes text centred on the row of y.
func (c *Canvas) DrawTextCentered(y float64, text string, color core.Color) {
	c.screen.DrawTextCenteredColor(c.CellY(y), text, color)
}

// CanvasSize picks a cell size for the world that fits the terminal.
// Cells are about twice as tall as wide, so the width follows the world
// aspect ratio at double density.
func CanvasSize(termW, termH int, world core.Rect) (cols, rows int) {
	rows = termH
	if world.H <= 0 {
		return termW, rows
	}
	cols = int(math.Round(float64(rows) * world.W / world.H * 2))
	if cols > termW {
		cols = termW
	}
	return cols, rows
}

// MinCanvasSize is the smallest canvas on which every block row and
// column still gets its own cells.
func MinCanvasSize(world core.Rect, inset, blockW, blockH float64) (cols, rows int) {
	cols, rows = 20, 10
	if blockW > 0 {
		cols = core.Max(cols, int(math.Ceil((world.W-2*inset)/blockW))*2+2)
	}
	if blockH > 0 {
		rows = core.Max(rows, int(math.Ceil((world.H-2*inset)/blockH))+2)
	}
	return cols, rows
}

// DrawPrompt overlays a modal box with the prompt in the middle of the
// canvas.
func (c *Canvas) DrawPrompt(p prompt) {
	hint := "press any key"
	if p.confirm {
		hint = "y: yes   n: no"
	}
	inner := core.Max(len([]rune(p.msg)), len([]rune(hint))) + 4
	w, h := core.Min(inner+2, c.screen.Width()), 6
	x := (c.screen.Width() - w) / 2
	y := (c.screen.Height() - h) / 2

	c.screen.FillCells(x, y, w, h, core.Cell{Rune: ' '})
	c.screen.DrawBox(x, y, w, h, core.ColorBrightMagenta)
	c.screen.DrawTextCenteredColor(y+2, p.msg, core.ColorBrightWhite)
	c.screen.DrawTextCenteredColor(y+3, hint, core.ColorGray)
}

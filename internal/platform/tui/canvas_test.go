package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/berrynoid/internal/core"
)

// A 100x100 world with a 2 unit wall on a 12x12 canvas: the wall band is
// the outer cell ring and each interior cell covers 9.6 units.
func newTestCanvas() *Canvas {
	return NewCanvas(12, 12, core.NewRect(0, 0, 100, 100), 2)
}

func TestCanvasProjection(t *testing.T) {
	c := newTestCanvas()

	tests := []struct {
		v    float64
		want int
	}{
		{-5, 0},
		{0, 0},
		{1.9, 0},
		{2, 1},
		{11.5, 1},
		{11.7, 2},
		{97.9, 10},
		{98, 11},
		{100, 11},
		{150, 11},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.CellX(tt.v), "x=%v", tt.v)
		assert.Equal(t, tt.want, c.CellY(tt.v), "y=%v", tt.v)
	}
}

func TestCanvasWallsBecomeFrame(t *testing.T) {
	c := newTestCanvas()

	c.FillRect(core.NewRect(0, 0, 100, 2), '░', core.ColorGray)
	c.FillRect(core.NewRect(0, 0, 2, 100), '░', core.ColorGray)

	assert.Equal(t, "░░░░░░░░░░░░", c.Screen().Row(0))
	assert.Equal(t, '░', c.Screen().Get(0, 5))
	assert.Equal(t, ' ', c.Screen().Get(1, 1))
}

func TestCanvasFillRect(t *testing.T) {
	c := newTestCanvas()

	// Units [2, 21.2) are exactly interior cells 1 and 2.
	c.FillRect(core.NewRect(2, 2, 19.2, 9.6), '#', core.ColorRed)
	assert.Equal(t, " ## ", c.Screen().Row(1)[:4])
	assert.Equal(t, ' ', c.Screen().Get(1, 2))
	assert.Equal(t, core.ColorRed, c.Screen().GetCell(2, 1).Color)

	// Tiny rects still cover one cell; empty rects cover none.
	c.Clear()
	c.FillRect(core.NewRect(50, 50, 0.5, 0.5), '.', core.ColorWhite)
	c.FillRect(core.NewRect(0, 0, 0, 0), 'X', core.ColorWhite)
	assert.Equal(t, '.', c.Screen().Get(c.CellX(50), c.CellY(50)))
	assert.NotContains(t, c.Screen().String(), "X")
}

func TestCanvasCircleImageText(t *testing.T) {
	c := newTestCanvas()

	c.FillCircle(50, 50, 7, '●', core.ColorWhite)
	assert.Equal(t, '●', c.Screen().Get(c.CellX(50), c.CellY(50)))

	c.DrawImage(core.Sprite{Glyph: '█', Color: core.ColorCyan}, core.NewRect(2, 2, 9.6, 9.6))
	assert.Equal(t, '█', c.Screen().Get(1, 1))

	c.DrawImage(core.Sprite{}, core.NewRect(30, 30, 10, 10))
	assert.Equal(t, ' ', c.Screen().Get(c.CellX(30), c.CellY(30)))

	c.DrawText(2, 0, "hud", core.ColorGreen)
	assert.Equal(t, " hud", c.Screen().Row(0)[:4])

	c.DrawTextCentered(50, "mid", core.ColorWhite)
	assert.Contains(t, c.Screen().Row(c.CellY(50)), "mid")
}

func TestCanvasSize(t *testing.T) {
	world := core.NewRect(0, 0, 696, 800)

	cols, rows := CanvasSize(200, 40, world)
	assert.Equal(t, 40, rows)
	assert.Equal(t, 70, cols)

	cols, rows = CanvasSize(50, 40, world)
	assert.Equal(t, 40, rows)
	assert.Equal(t, 50, cols)

	minW, minH := MinCanvasSize(world, 2, 58, 29)
	assert.Equal(t, 26, minW)
	assert.Equal(t, 30, minH)
}

func TestCanvasPrompt(t *testing.T) {
	c := NewCanvas(40, 12, core.NewRect(0, 0, 100, 100), 2)
	c.DrawPrompt(prompt{msg: "Quit?", confirm: true})

	out := c.Screen().String()
	assert.Contains(t, out, "Quit?")
	assert.Contains(t, out, "y: yes")
	assert.Contains(t, out, "┌")
}

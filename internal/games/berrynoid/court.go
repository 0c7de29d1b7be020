package berrynoid

import (
	"github.com/vovakirdan/berrynoid/internal/config"
	"github.com/vovakirdan/berrynoid/internal/core"
)

// WallChar is the glyph walls are filled with.
const WallChar = '░'

// Court holds the four walls around the field.
type Court struct {
	Walls [4]core.Rect // top, bottom, left, right
}

// NewCourt builds the walls for the configured field.
func NewCourt(cfg config.Config) *Court {
	w, h, ww := cfg.Field.Width, cfg.Field.Height, cfg.Field.WallWidth
	return &Court{
		Walls: [4]core.Rect{
			core.NewRect(0, 0, w, ww),
			core.NewRect(0, h-ww, w, ww),
			core.NewRect(0, 0, ww, h-ww),
			core.NewRect(w-ww, 0, ww, h-ww),
		},
	}
}

// Draw renders the walls.
func (c *Court) Draw(dst core.Surface) {
	for _, wall := range c.Walls {
		if wall.IsEmpty() {
			continue
		}
		dst.FillRect(wall, WallChar, core.ColorGray)
	}
}

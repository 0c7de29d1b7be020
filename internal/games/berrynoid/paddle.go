package berrynoid

import (
	"github.com/vovakirdan/berrynoid/internal/config"
	"github.com/vovakirdan/berrynoid/internal/core"
)

// PaddleChar is the glyph the paddle is filled with.
const PaddleChar = '▀'

// Paddle is the player-controlled bar at the bottom of the field.
type Paddle struct {
	core.Rect
	MinX, MaxX float64
	Speed      float64 // world units per second

	toLeft  float64
	toRight float64
}

// NewPaddle places a paddle centred between its bounds above the bottom margin.
func NewPaddle(cfg config.Config) *Paddle {
	p := &Paddle{
		MinX: cfg.Field.WallWidth,
		MaxX: cfg.Field.Width - cfg.Field.WallWidth - cfg.Paddle.Width,
	}
	p.Speed = (p.MaxX - p.MinX) / cfg.Paddle.Speed
	p.Rect = core.NewRect(
		p.MaxX/2,
		cfg.Field.Height-cfg.Paddle.Height-cfg.Field.BottomMargin,
		cfg.Paddle.Width,
		cfg.Paddle.Height,
	)
	return p
}

// MoveLeft sets the leftward intent. Magnitudes <= 0 mean 1.
func (p *Paddle) MoveLeft(magnitude float64) {
	p.toLeft = intent(magnitude)
}

// MoveRight sets the rightward intent. Magnitudes <= 0 mean 1.
func (p *Paddle) MoveRight(magnitude float64) {
	p.toRight = intent(magnitude)
}

// StopLeft clears the leftward intent.
func (p *Paddle) StopLeft() {
	p.toLeft = 0
}

// StopRight clears the rightward intent.
func (p *Paddle) StopRight() {
	p.toRight = 0
}

// Stop clears both intents.
func (p *Paddle) Stop() {
	p.toLeft, p.toRight = 0, 0
}

func intent(m float64) float64 {
	if m <= 0 {
		return 1
	}
	return m
}

// Direction is the net intent: negative moves left, positive moves right.
func (p *Paddle) Direction() float64 {
	return p.toRight - p.toLeft
}

// Update moves the paddle by its net intent and clamps it to its bounds.
func (p *Paddle) Update(dt float64) {
	amount := p.Direction()
	if amount == 0 {
		return
	}
	p.X = core.ClampF(p.X+amount*dt*p.Speed, p.MinX, p.MaxX)
}

// Draw renders the paddle.
func (p *Paddle) Draw(dst core.Surface) {
	dst.FillRect(p.Rect, PaddleChar, core.ColorBrightWhite)
}

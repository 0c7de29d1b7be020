package berrynoid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/berrynoid/internal/config"
)

func TestNewPaddle(t *testing.T) {
	p := NewPaddle(config.Default())

	assert.Equal(t, 2.0, p.MinX)
	assert.Equal(t, 594.0, p.MaxX)
	assert.Equal(t, 592.0, p.Speed)
	assert.Equal(t, 297.0, p.X)
	assert.Equal(t, 780.0, p.Y)
	assert.Zero(t, p.Direction())
}

func TestPaddleClampsForAnyDt(t *testing.T) {
	tests := []struct {
		name string
		move func(*Paddle)
		dt   float64
		want func(*Paddle) float64
	}{
		{"far right", func(p *Paddle) { p.MoveRight(1) }, 100, func(p *Paddle) float64 { return p.MaxX }},
		{"far left", func(p *Paddle) { p.MoveLeft(1) }, 100, func(p *Paddle) float64 { return p.MinX }},
		{"strong tilt", func(p *Paddle) { p.MoveLeft(50) }, 1, func(p *Paddle) float64 { return p.MinX }},
		{"short step", func(p *Paddle) { p.MoveRight(1) }, 0.1, func(p *Paddle) float64 { return 297 + 59.2 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPaddle(config.Default())
			tc.move(p)
			p.Update(tc.dt)
			assert.InDelta(t, tc.want(p), p.X, 1e-9)
			assert.GreaterOrEqual(t, p.X, p.MinX)
			assert.LessOrEqual(t, p.X, p.MaxX)
		})
	}
}

func TestPaddleIntents(t *testing.T) {
	p := NewPaddle(config.Default())

	p.MoveLeft(0)
	assert.Equal(t, -1.0, p.Direction(), "zero magnitude means 1")

	p.MoveRight(1)
	assert.Zero(t, p.Direction(), "opposing intents cancel")
	x := p.X
	p.Update(1)
	assert.Equal(t, x, p.X)

	p.StopLeft()
	assert.Equal(t, 1.0, p.Direction())

	p.MoveLeft(2.5)
	assert.Equal(t, -1.5, p.Direction())

	p.Stop()
	assert.Zero(t, p.Direction())
}

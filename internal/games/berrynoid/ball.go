package berrynoid

import (
	"math"
	"math/rand/v2"

	"github.com/vovakirdan/berrynoid/internal/config"
	"github.com/vovakirdan/berrynoid/internal/core"
)

// BallChar is the glyph the ball is drawn with.
const BallChar = '●'

// Target identifies what the ball bounced off during an update.
type Target int

const (
	TargetNone Target = iota
	TargetBlock
	TargetPaddle
)

// String returns the target name.
func (t Target) String() string {
	switch t {
	case TargetBlock:
		return "block"
	case TargetPaddle:
		return "paddle"
	default:
		return "none"
	}
}

// Collision describes the outcome of one ball update.
type Collision struct {
	Target    Target
	Block     *Block // set for TargetBlock
	Intercept Intercept
	Wall      bool // a wall reflected the ball this step
}

// Ball is the ball. While docked it rides on the paddle.
type Ball struct {
	X, Y   float64
	Radius float64
	DX, DY float64
	Accel  float64

	MinX, MaxX float64
	MinY, MaxY float64

	Speed    float64 // launch speed, world units per second
	MinSpeed float64
	MaxSpeed float64

	accel0    float64
	accelStep float64
	dockY     float64
	playing   bool
}

// NewBall creates a docked ball for the given field.
// Speeds derive from vertical crossing times.
func NewBall(cfg config.Config) *Ball {
	wall, r := cfg.Field.WallWidth, cfg.Ball.Radius
	b := &Ball{
		Radius:    r,
		MinX:      wall + r,
		MaxX:      cfg.Field.Width - wall - r,
		MinY:      wall + r,
		MaxY:      cfg.Field.Height - wall - r,
		Accel:     cfg.Ball.Accel,
		accel0:    cfg.Ball.Accel,
		accelStep: cfg.Ball.AccelStep,
	}
	span := b.MaxY - b.MinY
	b.Speed = span / cfg.Ball.Speed
	b.MaxSpeed = span / cfg.Ball.MaxSpeed
	b.MinSpeed = span / cfg.Ball.MinSpeed
	b.dockY = b.MaxY - cfg.Paddle.Height - cfg.Field.BottomMargin
	return b
}

// Playing reports whether the ball has been launched.
func (b *Ball) Playing() bool {
	return b.playing
}

// Left returns the x-coordinate of the ball's left extent.
func (b *Ball) Left() float64 { return b.X - b.Radius }

// Right returns the x-coordinate of the ball's right extent.
func (b *Ball) Right() float64 { return b.X + b.Radius }

// Top returns the y-coordinate of the ball's top extent.
func (b *Ball) Top() float64 { return b.Y - b.Radius }

// Bottom returns the y-coordinate of the ball's bottom extent.
func (b *Ball) Bottom() float64 { return b.Y + b.Radius }

// Reset docks the ball on the paddle.
func (b *Ball) Reset(p *Paddle) {
	b.playing = false
	b.Accel = b.accel0
	b.dock(p)
}

func (b *Ball) dock(p *Paddle) {
	b.X = p.X + p.W/2
	b.Y = b.dockY
	b.DX, b.DY = 0, 0
}

// Launch releases a docked ball upward with a random horizontal component
// in [-Speed, Speed]. A ball already in play is left alone.
func (b *Ball) Launch(rng *rand.Rand) {
	if b.playing {
		return
	}
	b.playing = true
	b.DX = -b.Speed + rng.Float64()*2*b.Speed
	b.DY = -b.Speed
}

// Update advances the ball by dt seconds, bouncing it off the walls, the
// first live block in its path (scanning from the end of blocks) or the
// paddle. A hit block loses a life. A docked ball only follows the paddle.
// Callers keep dt short: a step that crosses a wall and an obstacle edge on
// the same axis flips that axis twice.
func (b *Ball) Update(dt float64, paddle *Paddle, blocks []*Block) Collision {
	if !b.playing {
		b.dock(paddle)
		return Collision{}
	}

	pos := Integrate(b.X, b.Y, b.DX, b.DY, b.Accel, dt)
	var c Collision

	if pos.DY > 0 && pos.Y > b.MaxY {
		pos.Y, pos.DY, c.Wall = b.MaxY, -pos.DY, true
	} else if pos.DY < 0 && pos.Y < b.MinY {
		pos.Y, pos.DY, c.Wall = b.MinY, -pos.DY, true
	}
	if pos.DX > 0 && pos.X > b.MaxX {
		pos.X, pos.DX, c.Wall = b.MaxX, -pos.DX, true
	} else if pos.DX < 0 && pos.X < b.MinX {
		pos.X, pos.DX, c.Wall = b.MinX, -pos.DX, true
	}

	for i := len(blocks) - 1; i >= 0; i-- {
		blk := blocks[i]
		if !blk.Solid() {
			continue
		}
		if pt, ok := BallIntercept(b, blk.Rect, pos.NX, pos.NY); ok {
			blk.Hit()
			c.Target, c.Block, c.Intercept = TargetBlock, blk, pt
			break
		}
	}
	if c.Target == TargetNone {
		if pt, ok := BallIntercept(b, paddle.Rect, pos.NX, pos.NY); ok {
			c.Target, c.Intercept = TargetPaddle, pt
		}
	}

	if c.Target != TargetNone {
		if c.Intercept.Edge.Horizontal() {
			pos.X, pos.DX = c.Intercept.X, -pos.DX
		} else {
			pos.Y, pos.DY = c.Intercept.Y, -pos.DY
		}
	}

	if c.Target == TargetPaddle {
		pos.DX, pos.DY = spin(pos.DX, paddle.Direction()), spin(pos.DY, paddle.Direction())
		b.Accel += b.accelStep
	} else {
		b.Accel = 0
	}

	b.X = core.ClampF(pos.X, b.MinX, b.MaxX)
	b.Y = core.ClampF(pos.Y, b.MinY, b.MaxY)
	b.DX = b.clampSpeed(pos.DX)
	b.DY = b.clampSpeed(pos.DY)
	return c
}

// spin speeds up a velocity component moving the same way as the paddle
// and slows down one moving against it.
func spin(v, dir float64) float64 {
	switch {
	case dir == 0:
		return v
	case (dir < 0) == (v < 0):
		return v * 1.5
	default:
		return v * 0.5
	}
}

// clampSpeed keeps |v| within [MinSpeed, MaxSpeed] and its sign.
// Zero becomes the positive minimum.
func (b *Ball) clampSpeed(v float64) float64 {
	return core.SignF(v) * core.ClampF(math.Abs(v), b.MinSpeed, b.MaxSpeed)
}

// Draw renders the ball.
func (b *Ball) Draw(dst core.Surface) {
	dst.FillCircle(b.X, b.Y, b.Radius, BallChar, core.ColorBrightYellow)
}

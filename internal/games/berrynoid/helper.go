package berrynoid

import "github.com/vovakirdan/berrynoid/internal/core"

// Motion is the result of integrating one step of ball movement.
// NX/NY is the raw displacement used for intercept tests.
type Motion struct {
	NX, NY float64
	X, Y   float64
	DX, DY float64
}

// reinforce returns the direction acceleration is applied in: with positive
// velocity it pushes forward, otherwise backward.
func reinforce(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}

// Integrate advances a position under constant acceleration for dt seconds.
// The acceleration is applied per axis in the direction of the current
// velocity, so it never slows the ball down.
func Integrate(x, y, dx, dy, accel, dt float64) Motion {
	ax := accel * reinforce(dx)
	ay := accel * reinforce(dy)

	x2 := x + dt*dx + ax*dt*dt*0.5
	y2 := y + dt*dy + ay*dt*dt*0.5

	return Motion{
		NX: x2 - x,
		NY: y2 - y,
		X:  x2,
		Y:  y2,
		DX: dx + ax*dt,
		DY: dy + ay*dt,
	}
}

// Edge names the side of a rectangle an intercept happened on.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeTop
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "none"
	}
}

// Horizontal reports whether hitting this edge reverses horizontal motion.
func (e Edge) Horizontal() bool {
	return e == EdgeLeft || e == EdgeRight
}

// Point is a position in world units.
type Point struct {
	X, Y float64
}

// Intercept is where a moving ball met an edge.
type Intercept struct {
	X, Y float64
	Edge Edge
}

// SegmentIntersect intersects segment p1-p2 with segment p3-p4.
// Parallel segments never intersect, including collinear overlaps.
func SegmentIntersect(p1, p2, p3, p4 Point, edge Edge) (Intercept, bool) {
	denom := (p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y)
	if denom == 0 {
		return Intercept{}, false
	}

	ua := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) / denom
	if ua < 0 || ua > 1 {
		return Intercept{}, false
	}
	ub := ((p2.X-p1.X)*(p1.Y-p3.Y) - (p2.Y-p1.Y)*(p1.X-p3.X)) / denom
	if ub < 0 || ub > 1 {
		return Intercept{}, false
	}

	return Intercept{
		X:    p1.X + ua*(p2.X-p1.X),
		Y:    p1.Y + ua*(p2.Y-p1.Y),
		Edge: edge,
	}, true
}

// BallIntercept tests the ball's movement (nx, ny) from its current centre
// against rect grown by the ball radius.
//
// The edge facing the horizontal movement is tested first; the edge facing
// the vertical movement only when that misses. A path through a corner is
// therefore credited to the side edge.
func BallIntercept(ball *Ball, rect core.Rect, nx, ny float64) (Intercept, bool) {
	r := ball.Radius
	from := Point{ball.X, ball.Y}
	to := Point{ball.X + nx, ball.Y + ny}

	left, right := rect.Left()-r, rect.Right()+r
	top, bottom := rect.Top()-r, rect.Bottom()+r

	var (
		pt  Intercept
		hit bool
	)
	switch {
	case nx < 0:
		pt, hit = SegmentIntersect(from, to, Point{right, top}, Point{right, bottom}, EdgeRight)
	case nx > 0:
		pt, hit = SegmentIntersect(from, to, Point{left, top}, Point{left, bottom}, EdgeLeft)
	}
	if hit {
		return pt, true
	}

	switch {
	case ny < 0:
		return SegmentIntersect(from, to, Point{left, bottom}, Point{right, bottom}, EdgeBottom)
	case ny > 0:
		return SegmentIntersect(from, to, Point{left, top}, Point{right, top}, EdgeTop)
	}
	return Intercept{}, false
}

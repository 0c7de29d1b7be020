package berrynoid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/berrynoid/internal/core"
)

func TestIntegrateWithoutAcceleration(t *testing.T) {
	m := Integrate(10, 20, 100, -50, 0, 0.5)

	assert.InDelta(t, 50, m.NX, 1e-9)
	assert.InDelta(t, -25, m.NY, 1e-9)
	assert.InDelta(t, 60, m.X, 1e-9)
	assert.InDelta(t, -5, m.Y, 1e-9)
	assert.Equal(t, 100.0, m.DX)
	assert.Equal(t, -50.0, m.DY)
}

func TestIntegrateAccelerationReinforcesDirection(t *testing.T) {
	m := Integrate(0, 0, 100, -100, 10, 1)

	// Both axes gain speed in their own direction.
	assert.InDelta(t, 110, m.DX, 1e-9)
	assert.InDelta(t, -110, m.DY, 1e-9)
	assert.InDelta(t, 105, m.NX, 1e-9)
	assert.InDelta(t, -105, m.NY, 1e-9)
}

func TestSegmentIntersect(t *testing.T) {
	tests := []struct {
		name   string
		p      [4]Point
		hit    bool
		expect Point
	}{
		{
			name:   "crossing diagonals",
			p:      [4]Point{{0, 0}, {10, 10}, {0, 10}, {10, 0}},
			hit:    true,
			expect: Point{5, 5},
		},
		{
			name: "parallel",
			p:    [4]Point{{0, 0}, {10, 0}, {0, 5}, {10, 5}},
		},
		{
			name: "collinear overlap",
			p:    [4]Point{{0, 0}, {10, 0}, {5, 0}, {15, 0}},
		},
		{
			name: "lines cross outside the segments",
			p:    [4]Point{{0, 0}, {1, 1}, {0, 10}, {10, 0}},
		},
		{
			name:   "touching at an end point",
			p:      [4]Point{{0, 0}, {5, 5}, {0, 10}, {10, 0}},
			hit:    true,
			expect: Point{5, 5},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pt, ok := SegmentIntersect(tc.p[0], tc.p[1], tc.p[2], tc.p[3], EdgeTop)
			require.Equal(t, tc.hit, ok)
			if tc.hit {
				assert.InDelta(t, tc.expect.X, pt.X, 1e-9)
				assert.InDelta(t, tc.expect.Y, pt.Y, 1e-9)
				assert.Equal(t, EdgeTop, pt.Edge)
			}
		})
	}
}

func TestBallIntercept(t *testing.T) {
	rect := core.NewRect(100, 100, 50, 20) // grown by radius 5: x 95..155, y 95..125

	tests := []struct {
		name   string
		x, y   float64
		nx, ny float64
		hit    bool
		edge   Edge
		at     Point
	}{
		{"moving left hits right edge", 170, 110, -20, 0, true, EdgeRight, Point{155, 110}},
		{"moving right hits left edge", 80, 110, 20, 0, true, EdgeLeft, Point{95, 110}},
		{"moving down hits top edge", 120, 80, 0, 20, true, EdgeTop, Point{120, 95}},
		{"moving up hits bottom edge", 120, 140, 0, -20, true, EdgeBottom, Point{120, 125}},
		{"side edge missed falls back to top", 90, 85, 10, 10, true, EdgeTop, Point{100, 95}},
		{"corner is credited to the side edge", 85, 90, 20, 10, true, EdgeLeft, Point{95, 95}},
		{"short of the rect", 120, 60, 0, 20, false, EdgeNone, Point{}},
		{"not moving", 120, 110, 0, 0, false, EdgeNone, Point{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ball := &Ball{X: tc.x, Y: tc.y, Radius: 5}
			pt, ok := BallIntercept(ball, rect, tc.nx, tc.ny)
			require.Equal(t, tc.hit, ok)
			if !tc.hit {
				return
			}
			assert.Equal(t, tc.edge, pt.Edge)
			assert.InDelta(t, tc.at.X, pt.X, 1e-9)
			assert.InDelta(t, tc.at.Y, pt.Y, 1e-9)
		})
	}
}

func TestEdgeString(t *testing.T) {
	assert.Equal(t, "top", EdgeTop.String())
	assert.Equal(t, "right", EdgeRight.String())
	assert.Equal(t, "none", EdgeNone.String())
	assert.True(t, EdgeLeft.Horizontal())
	assert.False(t, EdgeBottom.Horizontal())
}

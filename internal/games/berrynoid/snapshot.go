package berrynoid

import "math"

// Snapshot contains the observable game state for renderers, replays and
// determinism tests. Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick            uint64
	Lives           int
	Level           int
	Phase           string
	PaddleX         float64
	BallX, BallY    float64
	BallDX, BallDY  float64
	BallAccel       float64
	BallPlaying     bool
	BlocksRemaining int

	// Lives of every block in scan order
	BlockLives []int
}

// Snapshot returns the current game state as a Snapshot.
func (s *Session) Snapshot() Snapshot {
	lives := make([]int, len(s.blocks))
	for i, b := range s.blocks {
		lives[i] = b.Lives
	}
	return Snapshot{
		Tick:            s.ticks,
		Lives:           s.lives,
		Level:           s.level,
		Phase:           s.Phase(),
		PaddleX:         s.paddle.X,
		BallX:           s.ball.X,
		BallY:           s.ball.Y,
		BallDX:          s.ball.DX,
		BallDY:          s.ball.DY,
		BallAccel:       s.ball.Accel,
		BallPlaying:     s.ball.Playing(),
		BlocksRemaining: s.BlocksRemaining(),
		BlockLives:      lives,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Lives)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BlocksRemaining) //#nosec G115 -- hash computation
	for _, c := range snap.Phase {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}

	for _, f := range []float64{snap.PaddleX, snap.BallX, snap.BallY, snap.BallDX, snap.BallDY, snap.BallAccel} {
		h = h*31 + math.Float64bits(f)
	}
	if snap.BallPlaying {
		h = h*31 + 1
	}

	for _, v := range snap.BlockLives {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}

package berrynoid

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/berrynoid/internal/config"
	"github.com/vovakirdan/berrynoid/internal/core"
)

// fakeHost records prompts and answers confirmations with a fixed value.
type fakeHost struct {
	answer   bool
	alerts   []string
	confirms []string
	cursor   bool
}

func (h *fakeHost) Alert(msg string) { h.alerts = append(h.alerts, msg) }

func (h *fakeHost) Confirm(msg string) bool {
	h.confirms = append(h.confirms, msg)
	return h.answer
}

func (h *fakeHost) ShowCursor() { h.cursor = true }

func (h *fakeHost) HideCursor() { h.cursor = false }

// fakeSurface counts draw calls by glyph.
type fakeSurface struct {
	rects   map[rune]int
	circles int
	images  int
	texts   []string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{rects: make(map[rune]int)}
}

func (f *fakeSurface) FillRect(_ core.Rect, glyph rune, _ core.Color) { f.rects[glyph]++ }

func (f *fakeSurface) FillCircle(_, _, _ float64, _ rune, _ core.Color) { f.circles++ }

func (f *fakeSurface) DrawImage(_ core.Sprite, _ core.Rect) { f.images++ }

func (f *fakeSurface) DrawText(_, _ float64, text string, _ core.Color) {
	f.texts = append(f.texts, text)
}

func (f *fakeSurface) DrawTextCentered(_ float64, text string, _ core.Color) {
	f.texts = append(f.texts, text)
}

func newTestSession(t *testing.T, opts Options) (*Session, *fakeHost) {
	t.Helper()
	host := &fakeHost{answer: true}
	if opts.Host == nil {
		opts.Host = host
	}
	s, err := NewSession(config.Default(), opts)
	require.NoError(t, err)
	return s, host
}

// singleBlock is a layout with one breakable block in the top-left cell.
func singleBlock(t *testing.T, name string) Layout {
	t.Helper()
	l, err := ParseLayout(name, []string{"1"})
	require.NoError(t, err)
	return l
}

// strikeFirstBlock puts the ball in play just below the first block,
// moving up into it.
func strikeFirstBlock(s *Session) {
	blk := s.blocks[0]
	s.ball.playing = true
	s.ball.X = blk.X + blk.W/2
	s.ball.Y = blk.Bottom() + s.ball.Radius + 4
	s.ball.DX, s.ball.DY = 0, -300
	s.Update(0.02)
}

func TestNewSessionStartsIdle(t *testing.T) {
	s, _ := newTestSession(t, Options{})

	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Equal(t, 5, s.Lives())
	assert.Zero(t, s.Level())
	assert.Len(t, s.Blocks(), 48)
	assert.Equal(t, core.NewRect(0, 0, 696, 800), s.Bounds())
}

func TestNewSessionRejectsBadInput(t *testing.T) {
	cfg := config.Default()
	cfg.Runner.FPS = 0
	_, err := NewSession(cfg, Options{})
	assert.ErrorContains(t, err, "runner.fps")

	_, err = NewSession(config.Default(), Options{Layouts: []Layout{}})
	assert.ErrorContains(t, err, "no layouts")

	wide := Layout{Name: "wide", Rows: [][]int{{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}}}
	_, err = NewSession(config.Default(), Options{Layouts: []Layout{wide}})
	assert.ErrorContains(t, err, "outside the field")
}

func TestStartAndLaunch(t *testing.T) {
	s, host := newTestSession(t, Options{})

	s.Launch()
	assert.False(t, s.Ball().Playing(), "launch is ignored while idle")

	s.Start()
	assert.Equal(t, PhaseActive, s.Phase())
	assert.False(t, host.cursor)
	assert.False(t, s.Ball().Playing())

	s.Launch()
	assert.True(t, s.Ball().Playing())

	// Starting again does not redock the ball.
	s.Start()
	assert.True(t, s.Ball().Playing())
}

func TestLostWithLivesLeftRestartsDocked(t *testing.T) {
	s, host := newTestSession(t, Options{})
	s.lives = 2
	s.Start()
	s.Launch()

	s.Lost()

	assert.Equal(t, 1, s.Lives())
	assert.Equal(t, PhaseActive, s.Phase())
	assert.False(t, s.Ball().Playing(), "ball is docked again")
	assert.Empty(t, host.alerts)
}

func TestLostLastLifeIsGameOver(t *testing.T) {
	s, host := newTestSession(t, Options{})
	s.lives = 1
	s.Start()

	s.Lost()

	assert.Zero(t, s.Lives())
	assert.Equal(t, PhaseGameOver, s.Phase())
	assert.True(t, s.State().GameOver)
	assert.Equal(t, []string{MsgLost}, host.alerts)

	s.Start()
	assert.False(t, s.Playing(), "no start without lives")

	s.Lost()
	assert.Zero(t, s.Lives(), "losing again is a no-op")
	assert.Len(t, host.alerts, 1)
}

func TestProgressIsLogged(t *testing.T) {
	var buf bytes.Buffer
	layouts := []Layout{singleBlock(t, "one"), singleBlock(t, "two")}
	s, _ := newTestSession(t, Options{Layouts: layouts, Logger: log.New(&buf)})
	s.lives = 2
	s.Start()

	strikeFirstBlock(s)
	assert.Contains(t, buf.String(), "level complete")
	assert.Contains(t, buf.String(), "board=1")

	s.Start()
	s.Lost()
	assert.Contains(t, buf.String(), "life lost")
	assert.Contains(t, buf.String(), "board=2")

	buf.Reset()
	s.Lost()
	assert.Contains(t, buf.String(), "game over")
	assert.Contains(t, buf.String(), "board=2")
}

func TestBallLeavingTheFieldCostsALife(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	s.Start()
	s.paddle.X = s.paddle.MinX // out of the way
	s.ball.playing = true
	s.ball.X, s.ball.Y = 600, s.ball.MaxY-2
	s.ball.DX, s.ball.DY = 300, 300

	s.Update(0.02)

	assert.Equal(t, 4, s.Lives())
	assert.False(t, s.Ball().Playing())
}

func TestLevelCompletesWhenAllBreakableBlocksAreGone(t *testing.T) {
	s, host := newTestSession(t, Options{})
	s.Start()

	for _, b := range s.blocks[1:] {
		b.Lives = Destroyed
	}
	s.blocks[0].Lives = Indestructible
	s.checkFinished()

	assert.Equal(t, 1, s.Level())
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Len(t, s.Blocks(), 56, "next layout is built")
	assert.False(t, s.Ball().Playing())
	assert.True(t, host.cursor)
}

func TestLevelDoesNotCompleteWithABreakableBlockLeft(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	s.Start()
	for _, b := range s.blocks[1:] {
		b.Lives = Destroyed
	}
	s.checkFinished()

	assert.Zero(t, s.Level())
	assert.True(t, s.Playing())
}

func TestBreakingTheLastBlockAdvances(t *testing.T) {
	layouts := []Layout{singleBlock(t, "one"), singleBlock(t, "two")}
	s, _ := newTestSession(t, Options{Layouts: layouts})
	s.Start()

	strikeFirstBlock(s)

	assert.Equal(t, 1, s.Level())
	assert.Equal(t, PhaseIdle, s.Phase())
	require.Len(t, s.Blocks(), 1)
	assert.Equal(t, 1, s.Blocks()[0].Lives)
}

func TestCampaignIsWonAfterTheLastLayout(t *testing.T) {
	s, host := newTestSession(t, Options{Layouts: []Layout{singleBlock(t, "only")}})
	s.Start()

	strikeFirstBlock(s)

	assert.Equal(t, PhaseWon, s.Phase())
	assert.True(t, s.State().GameOver)
	assert.Equal(t, []string{MsgWon}, host.alerts)

	s.Start()
	assert.False(t, s.Playing(), "no start after winning")

	s.Restart()
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Zero(t, s.Level())
	assert.Equal(t, 5, s.Lives())
}

func TestEndlessModeWrapsLayouts(t *testing.T) {
	layouts := []Layout{singleBlock(t, "a"), {Name: "b", Rows: [][]int{{1, 1}}}}
	s, host := newTestSession(t, Options{Mode: ModeEndless, Layouts: layouts})

	for level := 1; level <= 3; level++ {
		s.Start()
		for len(s.blocks) > 1 {
			s.blocks[len(s.blocks)-1].Lives = Destroyed
			s.blocks = s.blocks[:len(s.blocks)-1]
		}
		strikeFirstBlock(s)
		require.Equal(t, level, s.Level())
	}

	assert.Equal(t, "b", s.layout().Name)
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Empty(t, host.alerts)
}

func TestPauseTogglesAndFreezes(t *testing.T) {
	s, host := newTestSession(t, Options{})

	s.Pause()
	assert.Equal(t, PhaseIdle, s.Phase(), "nothing to pause while idle")

	s.Start()
	s.Launch()
	s.Pause()
	assert.Equal(t, PhasePaused, s.Phase())
	assert.False(t, s.Playing())
	assert.True(t, s.Paused())
	assert.True(t, host.cursor)

	before := s.Snapshot()
	s.HandleInput(core.Press(core.ActionRight))
	s.Update(0.5)
	after := s.Snapshot()
	assert.Equal(t, before.Hash(), after.Hash(), "nothing moves while paused")

	s.Start()
	assert.Equal(t, PhasePaused, s.Phase(), "start is ignored while paused")

	s.Pause()
	assert.Equal(t, PhaseActive, s.Phase())
	assert.True(t, s.Ball().Playing(), "ball keeps its flight")
	assert.False(t, host.cursor)
}

func TestStopAsksBeforeAbandoning(t *testing.T) {
	s, host := newTestSession(t, Options{})
	s.Start()

	host.answer = false
	s.HandleInput(core.Press(core.ActionAbandon))
	assert.Equal(t, []string{MsgAbandon}, host.confirms)
	assert.True(t, s.Playing())

	host.answer = true
	s.Stop(true)
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Equal(t, 5, s.Lives())

	// Abandoning from pause works too; idle does not ask.
	s.Start()
	s.Pause()
	s.Stop(true)
	assert.Equal(t, PhaseIdle, s.Phase())
	n := len(host.confirms)
	s.Stop(true)
	assert.Len(t, host.confirms, n)
}

func TestHandleInputMovesPaddle(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	x := s.Paddle().X

	s.HandleInput(core.Press(core.ActionLeft))
	s.Update(0.1)
	assert.Less(t, s.Paddle().X, x, "paddle moves even while idle")

	s.HandleInput(core.Release(core.ActionLeft))
	x = s.Paddle().X
	s.Update(0.1)
	assert.Equal(t, x, s.Paddle().X)

	s.HandleInput(core.Press(core.ActionRight))
	s.Update(0.1)
	assert.Greater(t, s.Paddle().X, x)
	s.HandleInput(core.Release(core.ActionRight))
	assert.Zero(t, s.Paddle().Direction())
}

func TestTapGestures(t *testing.T) {
	s, _ := newTestSession(t, Options{})

	s.HandleInput(core.DoubleTap())
	assert.Equal(t, PhaseActive, s.Phase())

	s.HandleInput(core.Tap())
	assert.True(t, s.Ball().Playing())
}

func TestTilt(t *testing.T) {
	s, _ := newTestSession(t, Options{})

	s.Tilt(8)
	assert.Equal(t, 2.0, s.Paddle().Direction())

	s.Tilt(-4)
	assert.Equal(t, -1.0, s.Paddle().Direction())

	s.Tilt(0.5)
	assert.Zero(t, s.Paddle().Direction())
}

func TestDraw(t *testing.T) {
	s, _ := newTestSession(t, Options{})

	idle := newFakeSurface()
	s.Draw(idle)
	assert.Equal(t, 4, idle.rects[WallChar])
	assert.Equal(t, 1, idle.rects[PaddleChar])
	assert.Zero(t, idle.circles, "no ball while idle")
	assert.Equal(t, 48, idle.images)
	assert.Contains(t, idle.texts, "press ENTER to start")

	s.Start()
	s.blocks[0].Hit()
	active := newFakeSurface()
	s.Draw(active)
	assert.Equal(t, 1, active.circles)
	assert.Equal(t, 47, active.images, "destroyed blocks are not drawn")

	s.Pause()
	paused := newFakeSurface()
	s.Draw(paused)
	assert.Contains(t, paused.texts, "PAUSED")
}

func TestRestartOnlyAfterGameOver(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	s.Start()
	s.lives = 3

	s.HandleInput(core.Press(core.ActionRestart))
	assert.Equal(t, 3, s.Lives(), "restart is ignored mid-game")

	s.lives = 1
	s.Lost()
	s.HandleInput(core.Press(core.ActionRestart))
	assert.Equal(t, 5, s.Lives())
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestSessionDeterminism(t *testing.T) {
	run := func() Snapshot {
		s, _ := newTestSession(t, Options{Seed: 42})
		s.Start()
		s.Launch()
		for i := 0; i < 600; i++ {
			switch i % 90 {
			case 0:
				s.HandleInput(core.Press(core.ActionLeft))
			case 30:
				s.HandleInput(core.Release(core.ActionLeft))
				s.HandleInput(core.Press(core.ActionRight))
			case 60:
				s.HandleInput(core.Release(core.ActionRight))
				s.Launch()
			}
			s.Update(1.0 / 60)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a, b)
	assert.Equal(t, uint64(600), a.Tick)
}

package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/berrynoid/internal/assets"
	"github.com/vovakirdan/berrynoid/internal/config"
	"github.com/vovakirdan/berrynoid/internal/core"
	"github.com/vovakirdan/berrynoid/internal/registry"
	"github.com/vovakirdan/berrynoid/internal/storage"
)

// Two clicks closer than this are a double tap.
const doubleTapWindow = 300 * time.Millisecond

// maxFrameDT caps the simulated time of one tick. A longer step can carry
// the ball across a wall and a grown obstacle edge on the same axis.
const maxFrameDT = 0.1

// Options configures a runner.
type Options struct {
	Config    config.Config
	Runtime   core.RuntimeConfig
	Sprites   assets.Table
	Logger    *log.Logger
	LevelPack []byte
	Clock     core.Clock // nil means the system clock
	Record    bool
}

// Model is the Bubble Tea model that runs one game at a fixed tick rate.
type Model struct {
	game   registry.Game
	canvas *Canvas
	host   *promptHost
	hold   *holdTracker
	keys   KeyMap
	help   help.Model
	clock  core.Clock
	logger *log.Logger
	rec    *storage.Recorder
	stats  *frameStats

	fps           int
	gen           int
	lastFrame     time.Time
	lastClick     time.Time
	width, height int
	minW, minH    int
	cursorShown   bool
	quitting      bool
}

// NewModel resets the game with the options and prepares the runner.
func NewModel(game registry.Game, opts Options) (Model, error) {
	rt := opts.Runtime
	// Use time-based seed if not specified
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	rt.TickRate = opts.Config.Runner.FPS

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := opts.Clock
	if clock == nil {
		clock = core.SystemClock{}
	}

	host := newPromptHost(logger)
	err := game.Reset(rt, registry.Env{
		Config:    opts.Config,
		Host:      host,
		Sprites:   opts.Sprites,
		Logger:    logger,
		LevelPack: opts.LevelPack,
	})
	if err != nil {
		return Model{}, err
	}

	m := Model{
		game:        game,
		host:        host,
		hold:        newHoldTracker(),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		clock:       clock,
		logger:      logger,
		fps:         rt.TickRate,
		lastFrame:   clock.Now(),
		width:       rt.ScreenW,
		height:      rt.ScreenH,
		cursorShown: true,
	}

	cfg := opts.Config
	world := game.Bounds()
	m.minW, m.minH = MinCanvasSize(world, cfg.Field.WallWidth, cfg.Block.Width, cfg.Block.Height)
	m.minH++ // help line
	m.canvas = NewCanvas(m.minW, m.minH-1, world, cfg.Field.WallWidth)
	m.layout()

	if opts.Record {
		cfgYAML, err := config.Marshal(cfg)
		if err != nil {
			return Model{}, fmt.Errorf("tui: cannot encode config: %w", err)
		}
		m.rec = storage.NewRecorder(game.ID(), rt.Seed, cfgYAML, opts.LevelPack)
	}
	if cfg.Runner.Stats {
		m.stats = newFrameStats(logger, m.lastFrame)
	}

	logger.Info("game started", "game", game.ID(), "seed", rt.Seed, "fps", m.fps, "record", opts.Record)
	return m, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.fps, m.gen), tea.HideCursor)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// layout sizes the canvas for the terminal, leaving a row for help.
func (m *Model) layout() {
	if m.tooSmall() {
		return
	}
	cols, rows := CanvasSize(m.width, m.height-1, m.game.Bounds())
	m.canvas.Resize(core.Max(cols, m.minW), rows)
}

func (m Model) tooSmall() bool {
	return m.width < m.minW || m.height < m.minH
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.logger.Info("quit", "game", m.game.ID(), "state", m.game.State().Phase)
		return m, tea.Quit
	}
	if m.host.open() {
		return m.answer(msg)
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if m.tooSmall() {
		return m, nil
	}

	a := m.keys.Action(msg)
	switch a {
	case core.ActionNone:
		return m, nil
	case core.ActionLeft, core.ActionRight:
		if o := opposite(a); m.hold.release(o) {
			m.dispatch(core.Release(o))
		}
		if !m.hold.press(a, m.clock.Now()) {
			return m, nil
		}
	}

	m.dispatch(core.Press(a))
	return m.settle()
}

// handleMouse turns left clicks into tap gestures.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.host.open() || m.tooSmall() {
		return m, nil
	}

	now := m.clock.Now()
	if !m.lastClick.IsZero() && now.Sub(m.lastClick) <= doubleTapWindow {
		m.lastClick = time.Time{}
		m.dispatch(core.DoubleTap())
	} else {
		m.lastClick = now
		m.dispatch(core.Tap())
	}
	return m.settle()
}

// handleTick advances the simulation by the time since the last frame.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.host.open() {
		return m, nil
	}

	now := m.clock.Now()
	elapsed := max(now.Sub(m.lastFrame).Seconds(), 0)
	dt := min(elapsed, maxFrameDT)
	m.lastFrame = now
	if m.tooSmall() {
		return m, tickCmd(m.fps, m.gen)
	}

	for _, a := range m.hold.expired(now) {
		m.dispatch(core.Release(a))
	}
	m.game.Update(dt)
	if m.rec != nil {
		m.rec.Tick(dt)
	}
	if m.stats != nil {
		m.stats.observe(now, elapsed)
	}

	if m.host.open() {
		return m.settle()
	}
	return m, tea.Batch(tickCmd(m.fps, m.gen), m.syncCursor())
}

// dispatch hands one event to the game and records it.
func (m *Model) dispatch(ev core.InputEvent) {
	m.host.current = ev
	confirmed := m.host.armed && m.host.answer
	m.game.HandleInput(ev)
	if m.rec != nil {
		m.rec.Input(ev, confirmed)
	}
}

// settle stops the tick loop if the last step opened a modal.
func (m Model) settle() (tea.Model, tea.Cmd) {
	if m.host.open() {
		m.suspend()
	}
	return m, m.syncCursor()
}

// suspend drops in-flight ticks and lets go of held keys while a modal
// is showing.
func (m *Model) suspend() {
	m.gen++
	for _, a := range m.hold.releaseAll() {
		m.dispatch(core.Release(a))
	}
	m.logger.Debug("modal opened", "msg", m.host.top().msg)
}

// answer handles a key while a modal is showing.
func (m Model) answer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.host.top()
	yes := false
	if p.confirm {
		switch msg.String() {
		case "y", "Y", "enter":
			yes = true
		case "n", "N", "esc":
		default:
			return m, nil
		}
	}
	m.host.close()
	m.logger.Debug("modal closed", "msg", p.msg, "yes", yes)

	if yes {
		m.host.arm(true)
		m.dispatch(p.event)
		m.host.disarm()
	}
	if m.host.open() {
		return m, m.syncCursor()
	}

	m.gen++
	m.lastFrame = m.clock.Now()
	return m, tea.Batch(tickCmd(m.fps, m.gen), m.syncCursor())
}

// syncCursor emits a cursor command when the game changed visibility.
func (m *Model) syncCursor() tea.Cmd {
	if m.host.cursor == m.cursorShown {
		return nil
	}
	m.cursorShown = m.host.cursor
	if m.cursorShown {
		return tea.ShowCursor
	}
	return tea.HideCursor
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.tooSmall() {
		return renderTooSmall(m.width, m.height, m.minW, m.minH)
	}

	m.canvas.Clear()
	m.game.Draw(m.canvas)
	if m.host.open() {
		m.canvas.DrawPrompt(m.host.top())
	}

	board := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, RenderScreen(m.canvas.Screen()))
	return board + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// hasher is implemented by games whose state can be fingerprinted.
type hasher interface {
	Hash() uint64
}

// Recording returns the finished recording, nil unless recording was on.
func (m Model) Recording() *storage.Recording {
	if m.rec == nil {
		return nil
	}
	st := m.game.State()
	var hash uint64
	if h, ok := m.game.(hasher); ok {
		hash = h.Hash()
	}
	rec := m.rec.Finish(st.Lives, st.Level, hash)
	return &rec
}

// Run starts the Bubble Tea program for the game. It returns the
// recording when opts.Record is set.
func Run(game registry.Game, opts Options) (*storage.Recording, error) {
	model, err := NewModel(game, opts)
	if err != nil {
		return nil, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks are taps
	)

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(Model)
	if !ok {
		return nil, nil
	}
	return m.Recording(), nil
}

// frameStats logs frame timing once per second.
type frameStats struct {
	logger *log.Logger
	since  time.Time
	frames int
	sum    float64
	worst  float64
}

func newFrameStats(logger *log.Logger, now time.Time) *frameStats {
	return &frameStats{logger: logger, since: now}
}

func (s *frameStats) observe(now time.Time, dt float64) {
	s.frames++
	s.sum += dt
	s.worst = max(s.worst, dt)

	elapsed := now.Sub(s.since).Seconds()
	if elapsed < 1 {
		return
	}
	s.logger.Debug("frame stats",
		"fps", fmt.Sprintf("%.1f", float64(s.frames)/elapsed),
		"avg_ms", fmt.Sprintf("%.2f", s.sum/float64(s.frames)*1000),
		"max_ms", fmt.Sprintf("%.2f", s.worst*1000),
	)
	*s = frameStats{logger: s.logger, since: now}
}

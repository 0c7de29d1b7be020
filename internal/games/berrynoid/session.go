package berrynoid

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/berrynoid/internal/assets"
	"github.com/vovakirdan/berrynoid/internal/config"
	"github.com/vovakirdan/berrynoid/internal/core"
)

// AssetTable maps block life values to sprites.
type AssetTable = assets.Table

// Phase constants
const (
	PhaseIdle     = "idle"     // Waiting for start
	PhaseActive   = "active"   // Simulation running, ball docked or in play
	PhasePaused   = "paused"   // Frozen until unpaused
	PhaseGameOver = "gameover" // No lives left
	PhaseWon      = "won"      // Last layout cleared (campaign only)
)

// Prompt texts shown through the host.
const (
	MsgAbandon = "Abandon game in progress?"
	MsgLost    = "You LOST the GAME"
	MsgWon     = "You WON the GAME"
)

// Mode represents the game mode.
type Mode int

const (
	ModeCampaign Mode = iota // Play through the layouts once
	ModeEndless              // Layouts wrap around forever
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeEndless {
		return "endless"
	}
	return "campaign"
}

// Options configures a Session beyond the game config.
type Options struct {
	Mode    Mode
	Layouts []Layout // nil means BuiltinLayouts
	Host    core.Host
	Sprites AssetTable
	Logger  *log.Logger
	Seed    uint64
}

// Session is one game: lives, level progression and the objects on the
// field. It owns the court, paddle, ball and the current blocks.
type Session struct {
	cfg     config.Config
	mode    Mode
	layouts []Layout
	host    core.Host
	sprites AssetTable
	logger  *log.Logger
	rng     *rand.Rand

	court  *Court
	paddle *Paddle
	ball   *Ball
	blocks []*Block

	lives   int
	level   int
	playing bool
	paused  bool
	won     bool
	ticks   uint64
}

// NewSession validates cfg and the layouts and sets up level 0, idle.
func NewSession(cfg config.Config, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layouts := opts.Layouts
	if layouts == nil {
		layouts = BuiltinLayouts()
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("berrynoid: no layouts")
	}
	for _, l := range layouts {
		if err := l.Check(); err != nil {
			return nil, fmt.Errorf("berrynoid: %w", err)
		}
		if err := l.Fits(cfg); err != nil {
			return nil, fmt.Errorf("berrynoid: %w", err)
		}
	}

	s := &Session{
		cfg:     cfg,
		mode:    opts.Mode,
		layouts: layouts,
		host:    opts.Host,
		sprites: opts.Sprites,
		logger:  opts.Logger,
		rng:     rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
	}
	if s.host == nil {
		s.host = core.NopHost{Answer: true}
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.court = NewCourt(cfg)
	s.reset()
	return s, nil
}

func (s *Session) reset() {
	s.lives = s.cfg.Gameplay.Lives
	s.level = 0
	s.playing = false
	s.paused = false
	s.won = false
	s.paddle = NewPaddle(s.cfg)
	s.ball = NewBall(s.cfg)
	s.ball.Reset(s.paddle)
	s.blocks = BuildBlocks(s.layout(), s.cfg, s.sprites)
}

// layout returns the layout of the current level.
func (s *Session) layout() Layout {
	return s.layouts[s.level%len(s.layouts)]
}

// Start begins play from idle. Ignored without lives, while paused or
// after the campaign was won.
func (s *Session) Start() {
	if s.playing || s.paused || s.won || s.lives <= 0 {
		return
	}
	s.playing = true
	s.ball.Reset(s.paddle)
	s.host.HideCursor()
}

// Launch releases the docked ball while playing.
func (s *Session) Launch() {
	if s.playing && s.lives > 0 {
		s.ball.Launch(s.rng)
	}
}

// Pause toggles between active and paused.
func (s *Session) Pause() {
	if !(s.playing || s.paused) || s.lives <= 0 {
		return
	}
	s.paused = !s.paused
	s.playing = !s.playing
	if s.paused {
		s.host.ShowCursor()
	} else {
		s.host.HideCursor()
	}
}

// Stop abandons the game in progress. With ask set the host must confirm.
func (s *Session) Stop(ask bool) {
	if !s.playing && !s.paused {
		return
	}
	if ask && !s.host.Confirm(MsgAbandon) {
		return
	}
	s.playing = false
	s.paused = false
	s.host.ShowCursor()
}

// Lost handles a ball that left the field: one life is taken and play
// restarts with a docked ball, or the game ends.
func (s *Session) Lost() {
	if s.lives <= 0 {
		return
	}
	s.Stop(false)
	s.lives--
	if s.lives > 0 {
		s.logger.Info("life lost", "lives", s.lives, "board", s.level+1)
		s.Start()
		return
	}
	s.logger.Info("game over", "board", s.level+1)
	s.host.Alert(MsgLost)
}

// Restart begins a new game after game over or a won campaign.
func (s *Session) Restart() {
	if !s.GameOver() {
		return
	}
	s.logger.Info("restart")
	s.reset()
}

// checkFinished advances the level once no breakable block is left.
func (s *Session) checkFinished() {
	for _, b := range s.blocks {
		if b.Breakable() {
			return
		}
	}

	s.playing = false
	s.level++
	s.logger.Info("level complete", "board", s.level, "mode", s.mode)

	if s.mode == ModeCampaign && s.level >= len(s.layouts) {
		s.won = true
		s.host.ShowCursor()
		s.host.Alert(MsgWon)
		return
	}
	s.blocks = BuildBlocks(s.layout(), s.cfg, s.sprites)
	s.ball.Reset(s.paddle)
	s.host.ShowCursor()
}

// Update advances the game by dt seconds. Nothing moves while paused.
func (s *Session) Update(dt float64) {
	if s.paused {
		return
	}
	if dt < 0 {
		dt = 0
	}
	s.ticks++
	s.paddle.Update(dt)
	if !s.playing {
		return
	}

	c := s.ball.Update(dt, s.paddle, s.blocks)
	if c.Target == TargetBlock {
		s.checkFinished()
	}
	if s.playing && s.ball.Bottom() >= s.cfg.Field.Height-s.cfg.Field.WallWidth {
		s.Lost()
	}
}

// HandleInput applies one input event.
func (s *Session) HandleInput(ev core.InputEvent) {
	switch ev.Kind {
	case core.EventPress:
		switch ev.Action {
		case core.ActionStart:
			s.Start()
		case core.ActionLaunch:
			s.Launch()
		case core.ActionPause:
			s.Pause()
		case core.ActionAbandon:
			s.Stop(true)
		case core.ActionRestart:
			s.Restart()
		case core.ActionLeft:
			s.paddle.MoveLeft(1)
		case core.ActionRight:
			s.paddle.MoveRight(1)
		}
	case core.EventRelease:
		switch ev.Action {
		case core.ActionLeft:
			s.paddle.StopLeft()
		case core.ActionRight:
			s.paddle.StopRight()
		}
	case core.EventTap:
		s.Launch()
	case core.EventDoubleTap:
		s.Start()
	}
}

// Tilt steers the paddle from a device tilt reading. Readings within
// [-1, 1] stop it; stronger tilts move it at a quarter of the reading.
func (s *Session) Tilt(x float64) {
	switch {
	case x > 1:
		s.paddle.StopLeft()
		s.paddle.MoveRight(x / 4)
	case x < -1:
		s.paddle.StopRight()
		s.paddle.MoveLeft(-x / 4)
	default:
		s.paddle.Stop()
	}
}

// Draw renders the field, then the HUD.
func (s *Session) Draw(dst core.Surface) {
	s.court.Draw(dst)
	s.paddle.Draw(dst)
	if s.playing || s.paused {
		s.ball.Draw(dst)
	}
	for i := len(s.blocks) - 1; i >= 0; i-- {
		s.blocks[i].Draw(dst)
	}
	s.drawHUD(dst)
}

func (s *Session) drawHUD(dst core.Surface) {
	hud := fmt.Sprintf(" lives: %d  level: %d  %s ", s.lives, s.level+1, s.layout().Name)
	if s.won {
		hud = fmt.Sprintf(" lives: %d  all %d levels cleared ", s.lives, len(s.layouts))
	}
	dst.DrawText(30, 0, hud, core.ColorBrightGreen)

	mid := s.cfg.Field.Height * 0.6
	switch s.Phase() {
	case PhasePaused:
		dst.DrawTextCentered(mid, "PAUSED", core.ColorBrightMagenta)
	case PhaseIdle:
		dst.DrawTextCentered(mid, "press ENTER to start", core.ColorWhite)
	case PhaseGameOver:
		dst.DrawTextCentered(mid, "GAME OVER - press R to restart", core.ColorBrightRed)
	case PhaseWon:
		dst.DrawTextCentered(mid, "YOU WIN - press R to play again", core.ColorBrightYellow)
	case PhaseActive:
		if !s.ball.Playing() {
			dst.DrawTextCentered(mid, "SPACE to launch", core.ColorGray)
		}
	}
}

// Phase returns the current state machine phase.
func (s *Session) Phase() string {
	switch {
	case s.won:
		return PhaseWon
	case s.lives <= 0:
		return PhaseGameOver
	case s.paused:
		return PhasePaused
	case s.playing:
		return PhaseActive
	default:
		return PhaseIdle
	}
}

// State returns the platform-level state.
func (s *Session) State() core.GameState {
	return core.GameState{
		Lives:    s.lives,
		Level:    s.level,
		Phase:    s.Phase(),
		Playing:  s.playing,
		Paused:   s.paused,
		GameOver: s.GameOver(),
	}
}

// GameOver reports whether the game ended, lost or won.
func (s *Session) GameOver() bool {
	return s.lives <= 0 || s.won
}

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Level returns the zero-based level index.
func (s *Session) Level() int { return s.level }

// Playing reports whether the simulation is active.
func (s *Session) Playing() bool { return s.playing }

// Paused reports whether the game is paused.
func (s *Session) Paused() bool { return s.paused }

// Paddle returns the paddle.
func (s *Session) Paddle() *Paddle { return s.paddle }

// Ball returns the ball.
func (s *Session) Ball() *Ball { return s.ball }

// Blocks returns the current level's blocks in scan order.
func (s *Session) Blocks() []*Block { return s.blocks }

// Court returns the walls.
func (s *Session) Court() *Court { return s.court }

// Bounds returns the field in world units.
func (s *Session) Bounds() core.Rect {
	return core.NewRect(0, 0, s.cfg.Field.Width, s.cfg.Field.Height)
}

// BlocksRemaining counts blocks that still have to be broken.
func (s *Session) BlocksRemaining() int {
	n := 0
	for _, b := range s.blocks {
		if b.Breakable() {
			n++
		}
	}
	return n
}

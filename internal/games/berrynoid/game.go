// Package berrynoid implements a Breakout/Arkanoid-style brick breaker with
// continuous-time ball physics: a ball, a paddle and a grid of blocks
// inside four walls.
package berrynoid

import (
	"github.com/vovakirdan/berrynoid/internal/core"
	"github.com/vovakirdan/berrynoid/internal/registry"
)

// Game IDs
const (
	IDCampaign = "berrynoid"
	IDEndless  = "berrynoid_endless"
)

// Game adapts a Session to the registry.Game interface.
type Game struct {
	mode    Mode
	session *Session
}

// New creates a new game instance (campaign mode).
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new game instance in endless mode.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDCampaign
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Berrynoid (Endless)"
	}
	return "Berrynoid"
}

// Reset builds a fresh session from env.
func (g *Game) Reset(rt core.RuntimeConfig, env registry.Env) error {
	var layouts []Layout
	if env.LevelPack != nil {
		l, err := ParseLayouts(env.LevelPack)
		if err != nil {
			return err
		}
		layouts = l
	}

	s, err := NewSession(env.Config, Options{
		Mode:    g.mode,
		Layouts: layouts,
		Host:    env.Host,
		Sprites: env.Sprites,
		Logger:  env.Logger,
		Seed:    uint64(rt.Seed), //#nosec G115 -- seed bits are reinterpreted
	})
	if err != nil {
		return err
	}
	g.session = s
	return nil
}

// Session returns the running session, nil before Reset.
func (g *Game) Session() *Session {
	return g.session
}

// Update advances the simulation.
func (g *Game) Update(dt float64) {
	if g.session != nil {
		g.session.Update(dt)
	}
}

// HandleInput forwards one input event.
func (g *Game) HandleInput(ev core.InputEvent) {
	if g.session != nil {
		g.session.HandleInput(ev)
	}
}

// Draw renders the session.
func (g *Game) Draw(dst core.Surface) {
	if g.session != nil {
		g.session.Draw(dst)
	}
}

// Bounds returns the field in world units.
func (g *Game) Bounds() core.Rect {
	if g.session == nil {
		return core.Rect{}
	}
	return g.session.Bounds()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return g.session.State()
}

// Snapshot returns the session snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{}
	}
	return g.session.Snapshot()
}

// Register games with the registry
func init() {
	registry.Register(IDCampaign, func() registry.Game { return New() })
	registry.Register(IDEndless, func() registry.Game { return NewEndless() })
}

// Hash fingerprints the session state. Replays compare it.
func (g *Game) Hash() uint64 {
	s := g.Snapshot()
	return s.Hash()
}

// Package replay re-simulates recorded games without a terminal.
package replay

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/berrynoid/internal/assets"
	"github.com/vovakirdan/berrynoid/internal/config"
	"github.com/vovakirdan/berrynoid/internal/core"
	"github.com/vovakirdan/berrynoid/internal/games/berrynoid"
	"github.com/vovakirdan/berrynoid/internal/registry"
	"github.com/vovakirdan/berrynoid/internal/storage"
)

// Result is the outcome of a replay.
type Result struct {
	Snapshot berrynoid.Snapshot
	State    core.GameState
	Hash     uint64
	Steps    int
	Alerts   []string
	// Match reports whether Hash equals the hash stored with the recording.
	Match bool
}

type snapshotter interface {
	Snapshot() berrynoid.Snapshot
}

// scriptedHost answers confirmations with the recorded answer of the step
// being applied.
type scriptedHost struct {
	answer bool
	alerts []string
}

func (h *scriptedHost) Alert(msg string) { h.alerts = append(h.alerts, msg) }

func (h *scriptedHost) Confirm(string) bool { return h.answer }

func (h *scriptedHost) ShowCursor() {}

func (h *scriptedHost) HideCursor() {}

// Run rebuilds the recorded game and applies every step in order.
// ctx is checked between steps.
func Run(ctx context.Context, rec storage.Recording, logger *log.Logger) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}

	cfg, err := config.Parse(rec.Config)
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}

	g, err := registry.Create(rec.GameID)
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}
	snap, ok := g.(snapshotter)
	if !ok {
		return Result{}, fmt.Errorf("replay: game %q does not expose snapshots", rec.GameID)
	}

	sprites, err := assets.LoadSync(ctx, assets.Builtin(), assets.DefaultSources())
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}

	host := &scriptedHost{}
	rt := core.DefaultConfig()
	rt.TickRate = cfg.Runner.FPS
	rt.Seed = rec.Seed
	err = g.Reset(rt, registry.Env{
		Config:    cfg,
		Host:      host,
		Sprites:   sprites,
		Logger:    logger,
		LevelPack: rec.LevelPack,
	})
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}

	for i, st := range rec.Steps {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("replay: stopped at step %d: %w", i, err)
		}
		switch st.Kind {
		case storage.StepTick:
			g.Update(st.DT)
		case storage.StepInput:
			host.answer = st.Confirmed
			g.HandleInput(st.Event)
			host.answer = false
		default:
			return Result{}, fmt.Errorf("replay: unknown step kind %d at %d", st.Kind, i)
		}
	}

	s := snap.Snapshot()
	res := Result{
		Snapshot: s,
		State:    g.State(),
		Hash:     s.Hash(),
		Steps:    len(rec.Steps),
		Alerts:   host.alerts,
	}
	res.Match = res.Hash == rec.FinalHash
	return res, nil
}

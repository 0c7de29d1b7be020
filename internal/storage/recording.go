package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/berrynoid/internal/core"
)

// StepKind tells a tick step from an input step.
type StepKind int

const (
	StepTick StepKind = iota
	StepInput
)

// Step is one entry of a recording, applied in order on replay.
type Step struct {
	Kind      StepKind
	DT        float64         // seconds, tick steps only
	Event     core.InputEvent // input steps only
	Confirmed bool            // answer given to a confirmation the input raised
}

// Recording is everything needed to re-run a game deterministically.
type Recording struct {
	ID        string
	GameID    string
	Seed      int64
	Config    []byte // YAML
	LevelPack []byte // nil for the built-in layouts
	Steps     []Step

	// Outcome at the time the recording was finished.
	Lives     int
	Level     int
	Ticks     int
	FinalHash uint64
	CreatedAt time.Time
}

// RecordingInfo is a listing row without the steps.
type RecordingInfo struct {
	ID        string
	GameID    string
	Seed      int64
	Lives     int
	Level     int
	Ticks     int
	Steps     int
	CreatedAt time.Time
}

// Recorder accumulates steps while a game runs.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording with a fresh ID.
func NewRecorder(gameID string, seed int64, config, levelPack []byte) *Recorder {
	return &Recorder{rec: Recording{
		ID:        uuid.NewString(),
		GameID:    gameID,
		Seed:      seed,
		Config:    config,
		LevelPack: levelPack,
	}}
}

// ID returns the recording ID.
func (r *Recorder) ID() string {
	return r.rec.ID
}

// Tick records a simulation step.
func (r *Recorder) Tick(dt float64) {
	r.rec.Steps = append(r.rec.Steps, Step{Kind: StepTick, DT: dt})
	r.rec.Ticks++
}

// Input records an input event and the confirmation answer it was given.
func (r *Recorder) Input(ev core.InputEvent, confirmed bool) {
	r.rec.Steps = append(r.rec.Steps, Step{Kind: StepInput, Event: ev, Confirmed: confirmed})
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	return len(r.rec.Steps)
}

// Finish stamps the outcome and returns the recording.
func (r *Recorder) Finish(lives, level int, hash uint64) Recording {
	r.rec.Lives = lives
	r.rec.Level = level
	r.rec.FinalHash = hash
	return r.rec
}

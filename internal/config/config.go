// Package config provides YAML-based game configuration loading and
// difficulty presets for berrynoid.
package config

import (
	"errors"
	"fmt"
)

// Config contains all tunable options of the game.
// Sizes are world units; speeds are traversal times in seconds.
type Config struct {
	Field    FieldConfig    `yaml:"field"`
	Paddle   PaddleConfig   `yaml:"paddle"`
	Block    BlockConfig    `yaml:"block"`
	Ball     BallConfig     `yaml:"ball"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Runner   RunnerConfig   `yaml:"runner"`
}

// FieldConfig defines the playfield and its walls.
type FieldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	WallWidth    float64 `yaml:"wall_width"`
	BottomMargin float64 `yaml:"bottom_margin"`
}

// PaddleConfig defines paddle size and speed.
type PaddleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"` // seconds to cross the field
}

// BlockConfig defines the size of one layout cell.
type BlockConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BallConfig defines ball size, speeds and rally acceleration.
type BallConfig struct {
	Radius    float64 `yaml:"radius"`
	Speed     float64 `yaml:"speed"`     // seconds to cross vertically at launch
	MaxSpeed  float64 `yaml:"max_speed"` // crossing seconds at the fastest
	MinSpeed  float64 `yaml:"min_speed"` // crossing seconds at the slowest
	Accel     float64 `yaml:"accel"`
	AccelStep float64 `yaml:"accel_step"`
}

// GameplayConfig defines session rules.
type GameplayConfig struct {
	Lives int `yaml:"lives"`
}

// RunnerConfig defines the frame loop.
type RunnerConfig struct {
	FPS   int  `yaml:"fps"`
	Stats bool `yaml:"stats"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 7
		cfg.Paddle.Width = 130
		cfg.Ball.Speed = 2.5
	case DifficultyHard:
		cfg.Gameplay.Lives = 3
		cfg.Paddle.Width = 76
		cfg.Ball.Speed = 1.5
	}
}

// Overrides holds individually set options, typically from CLI flags.
// Nil fields leave the config as loaded. An FPS of 0 or less also keeps
// the configured rate.
type Overrides struct {
	FPS   *int
	Lives *int
	Stats *bool
}

// Apply writes every non-nil override into cfg.
func (o Overrides) Apply(cfg *Config) {
	if o.FPS != nil && *o.FPS > 0 {
		cfg.Runner.FPS = *o.FPS
	}
	if o.Lives != nil {
		cfg.Gameplay.Lives = *o.Lives
	}
	if o.Stats != nil {
		cfg.Runner.Stats = *o.Stats
	}
}

// Validate reports every option that would leave the simulation in an
// invalid state.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("field.width", c.Field.Width)
	positive("field.height", c.Field.Height)
	positive("paddle.width", c.Paddle.Width)
	positive("paddle.height", c.Paddle.Height)
	positive("paddle.speed", c.Paddle.Speed)
	positive("block.width", c.Block.Width)
	positive("block.height", c.Block.Height)
	positive("ball.radius", c.Ball.Radius)
	positive("ball.speed", c.Ball.Speed)
	positive("ball.max_speed", c.Ball.MaxSpeed)
	positive("ball.min_speed", c.Ball.MinSpeed)

	if c.Field.WallWidth < 0 {
		errs = append(errs, fmt.Errorf("field.wall_width must not be negative, got %v", c.Field.WallWidth))
	}
	if c.Field.BottomMargin < 0 {
		errs = append(errs, fmt.Errorf("field.bottom_margin must not be negative, got %v", c.Field.BottomMargin))
	}
	if c.Ball.AccelStep < 0 {
		errs = append(errs, fmt.Errorf("ball.accel_step must not be negative, got %v", c.Ball.AccelStep))
	}
	if inner := c.Field.Width - 2*c.Field.WallWidth; c.Paddle.Width >= inner {
		errs = append(errs, fmt.Errorf("paddle.width %v does not fit between the walls (%v)", c.Paddle.Width, inner))
	}
	if 2*c.Ball.Radius >= c.Field.Width-2*c.Field.WallWidth {
		errs = append(errs, fmt.Errorf("ball.radius %v does not fit between the walls", c.Ball.Radius))
	}
	if c.Ball.MaxSpeed > c.Ball.MinSpeed {
		errs = append(errs, fmt.Errorf("ball.max_speed (%vs) must not be slower than ball.min_speed (%vs)", c.Ball.MaxSpeed, c.Ball.MinSpeed))
	}
	if c.Gameplay.Lives < 1 {
		errs = append(errs, fmt.Errorf("gameplay.lives must be at least 1, got %d", c.Gameplay.Lives))
	}
	if c.Runner.FPS < 1 || c.Runner.FPS > 240 {
		errs = append(errs, fmt.Errorf("runner.fps must be within 1..240, got %d", c.Runner.FPS))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

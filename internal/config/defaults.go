package config

import (
	_ "embed"
)

//go:embed defaults/berrynoid.yaml
var defaultYAML []byte

// Default returns the built-in configuration for the classic 696x800
// board.
func Default() Config {
	return Config{
		Field: FieldConfig{
			Width:        696,
			Height:       800,
			WallWidth:    2,
			BottomMargin: 10,
		},
		Paddle: PaddleConfig{
			Width:  100,
			Height: 10,
			Speed:  1,
		},
		Block: BlockConfig{
			Width:  58,
			Height: 29,
		},
		Ball: BallConfig{
			Radius:    7,
			Speed:     2,
			MaxSpeed:  1,
			MinSpeed:  3,
			Accel:     0,
			AccelStep: 0.1,
		},
		Gameplay: GameplayConfig{
			Lives: 5,
		},
		Runner: RunnerConfig{
			FPS:   60,
			Stats: false,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

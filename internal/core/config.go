package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the per-frame status a game reports to the platform.
type GameState struct {
	Lives    int    // Remaining attempts
	Level    int    // Zero-based level index
	Phase    string // Game-specific phase name (idle, active, ...)
	Playing  bool   // Simulation active
	Paused   bool   // Whether the game is paused
	GameOver bool   // No lives left, or the campaign was finished
}

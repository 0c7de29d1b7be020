// berrynoid is a brick breaker for the terminal.
//
// Usage:
//
//	berrynoid play [berrynoid|berrynoid_endless]  - Play (menu when no mode is given)
//	berrynoid list                                - List game modes
//	berrynoid levels                              - Print the level layouts
//	berrynoid replays                             - List recorded games
//	berrynoid replay <id>                         - Re-simulate a recorded game
//
// Global flags:
//
//	--fps <rate>         - Override the tick rate from the config
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.berrynoid/berrynoid.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Log file, "-" for stderr (default: ~/.berrynoid/berrynoid.log)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/berrynoid/internal/games/berrynoid"
	"github.com/vovakirdan/berrynoid/internal/logging"
	"github.com/vovakirdan/berrynoid/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
	flagLogJSON  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "berrynoid",
	Short: "Berrynoid - break bricks in your terminal",
	Long: `Berrynoid is a Breakout/Arkanoid-style brick breaker for the terminal.

Available commands:
  play     - Play the campaign or endless mode
  list     - Show the game modes
  levels   - Print the level layouts
  replays  - List recorded games
  replay   - Re-simulate a recorded game

Examples:
  berrynoid play
  berrynoid play berrynoid_endless --difficulty hard
  berrynoid play --levels ./my-levels.yaml --record
  berrynoid replays
  berrynoid replay 3f2a9c1e`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to recordings database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (\"-\" = stderr, default ~/.berrynoid/berrynoid.log)")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Write logs as JSON")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
}

// openLogger builds the logger from the global flags. It exits on error.
func openLogger() (*log.Logger, io.Closer) {
	logger, closer, err := logging.New(logging.Options{
		File:  flagLogFile,
		Level: flagLogLevel,
		JSON:  flagLogJSON,
	})
	if err != nil {
		fail("Error: %v", err)
	}
	return logger, closer
}

// fail prints an error and exits with status 1.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

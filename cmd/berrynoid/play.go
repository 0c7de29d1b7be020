package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/berrynoid/internal/assets"
	"github.com/vovakirdan/berrynoid/internal/config"
	"github.com/vovakirdan/berrynoid/internal/core"
	"github.com/vovakirdan/berrynoid/internal/games/berrynoid"
	"github.com/vovakirdan/berrynoid/internal/platform/tui"
	"github.com/vovakirdan/berrynoid/internal/registry"
	"github.com/vovakirdan/berrynoid/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagLives      int
	flagStats      bool
	flagRecord     bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game",
	Long: `Start playing. Without a mode a menu asks for campaign or endless.

Controls:
  Left/A, Right/D  - Move paddle
  Space / click    - Launch ball
  Enter / dbl-click - Start
  P                - Pause
  Esc              - Abandon game
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More lives, wider paddle, slower ball
  normal - The config as is
  hard   - Fewer lives, narrow paddle, faster ball

Examples:
  berrynoid play
  berrynoid play berrynoid_endless
  berrynoid play --difficulty hard --lives 1
  berrynoid play --levels ./my-levels.yaml --record
  berrynoid play --config ./my-berrynoid.yaml --stats --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagLevels, "levels", "", "Path to a YAML level pack")
	playCmd.Flags().IntVar(&flagLives, "lives", 0, "Override the number of lives")
	playCmd.Flags().BoolVar(&flagStats, "stats", false, "Log frame timing stats at debug level")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the game for replay")
}

// loadConfig applies the config file, the difficulty preset and the flag
// overrides, in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
	}

	var o config.Overrides
	if cmd.Flags().Changed("fps") {
		o.FPS = &flagFPS
	}
	if cmd.Flags().Changed("lives") {
		o.Lives = &flagLives
	}
	if cmd.Flags().Changed("stats") {
		o.Stats = &flagStats
	}
	o.Apply(&cfg)

	return cfg, cfg.Validate()
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := tui.CheckEnvironment(); err != nil {
		fail("Error: %v", err)
	}

	logger, closer := openLogger()
	defer closer.Close()

	cfg, err := loadConfig(cmd)
	if err != nil {
		fail("Error: %v", err)
	}

	var (
		pack    []byte
		layouts = berrynoid.BuiltinLayouts()
	)
	if flagLevels != "" {
		pack, err = os.ReadFile(flagLevels)
		if err != nil {
			fail("Error: cannot read level pack: %v", err)
		}
		if layouts, err = berrynoid.ParseLayouts(pack); err != nil {
			fail("Error: %v", err)
		}
	}

	width, height := tui.TerminalSize()
	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Runner.FPS,
		Seed:     flagSeed,
	}

	gameID := berrynoid.IDCampaign
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'berrynoid list' to see available modes.")
			os.Exit(1)
		}
	} else {
		selection, err := tui.RunModeMenu(layouts, rt)
		if err != nil {
			fail("Error: %v", err)
		}
		// User quit the menu
		if selection == nil {
			return
		}
		gameID = selection.GameID()
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("Error creating game: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	sprites, err := assets.LoadSync(ctx, assets.Builtin(), assets.DefaultSources())
	stop()
	if err != nil {
		// Missing sprites fall back to a plain glyph
		logger.Warn("sprites incomplete", "err", err)
	}

	rec, err := tui.Run(game, tui.Options{
		Config:    cfg,
		Runtime:   rt,
		Sprites:   sprites,
		Logger:    logger,
		LevelPack: pack,
		Record:    flagRecord,
	})
	if err != nil {
		fail("Error running game: %v", err)
	}
	if rec == nil {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("Error opening recordings database: %v", err)
	}
	defer store.Close()

	if err := store.SaveRecording(*rec); err != nil {
		fail("Error saving recording: %v", err)
	}
	logger.Info("recording saved", "id", rec.ID, "steps", len(rec.Steps))
	fmt.Printf("Recording saved: %s\n", rec.ID)
	fmt.Printf("Run 'berrynoid replay %s' to check it.\n", rec.ID[:8])
}

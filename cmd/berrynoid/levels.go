package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/berrynoid/internal/config"
	"github.com/vovakirdan/berrynoid/internal/games/berrynoid"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Print the level layouts",
	Long: `Prints every layout as an ASCII map: '.' is empty, 'X' indestructible,
and 1-3 are blocks with that many hits.

With --levels the layouts of a level pack are checked against the
config and printed instead of the built-in ones.

Examples:
  berrynoid levels
  berrynoid levels --levels ./my-levels.yaml`,
	Run: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevels, "levels", "", "Path to a YAML level pack")
	levelsCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runLevels(cmd *cobra.Command, args []string) {
	layouts := berrynoid.BuiltinLayouts()
	if flagLevels != "" {
		l, err := berrynoid.LoadLayouts(flagLevels)
		if err != nil {
			fail("Error: %v", err)
		}
		layouts = l
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("Error: %v", err)
	}

	bad := 0
	for i, l := range layouts {
		fmt.Printf("%d. %s (%d blocks to break)\n", i+1, l.Name, l.Breakable())
		fmt.Println(l.String())
		if err := l.Fits(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			bad++
		}
		fmt.Println()
	}
	if bad > 0 {
		os.Exit(1)
	}
}

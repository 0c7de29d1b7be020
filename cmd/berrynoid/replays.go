package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/berrynoid/internal/platform/tui"
	"github.com/vovakirdan/berrynoid/internal/replay"
	"github.com/vovakirdan/berrynoid/internal/storage"
)

var (
	flagLimit  int
	flagBrowse bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List recorded games",
	Long: `Lists the games recorded with 'berrynoid play --record', newest first.

With --browse an interactive table opens; Enter replays the selected
recording and x deletes it.

Examples:
  berrynoid replays
  berrynoid replays --limit 5
  berrynoid replays --browse
  berrynoid replays rm 3f2a9c1e`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

var replaysRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a recording",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysRm,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded game",
	Long: `Runs a recording through the simulation without a terminal and
prints the final state. The state hash is compared with the one stored
when the game was recorded; a mismatch exits with status 1.

The id may be any unique prefix of the recording id.`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum recordings to list")
	replaysCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse recordings interactively")
	replaysCmd.AddCommand(replaysRmCmd)
}

func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("Error opening recordings database: %v", err)
	}
	return store
}

func runReplays(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if flagBrowse {
		if err := tui.CheckEnvironment(); err != nil {
			fail("Error: %v", err)
		}
		width, height := tui.TerminalSize()
		id, err := tui.RunRecordings(store, width, height)
		if err != nil {
			fail("Error: %v", err)
		}
		if id != "" {
			replayAndPrint(store, id)
		}
		return
	}

	infos, err := store.ListRecordings(flagLimit)
	if err != nil {
		fail("Error retrieving recordings: %v", err)
	}

	if len(infos) == 0 {
		fmt.Println("No recordings yet.")
		fmt.Println()
		fmt.Println("Play with 'berrynoid play --record' to keep one.")
		return
	}

	fmt.Printf("  %-8s  %-18s  %-5s  %-5s  %-7s  %s\n", "ID", "Mode", "Lives", "Level", "Ticks", "Date")
	fmt.Printf("  %-8s  %-18s  %-5s  %-5s  %-7s  %s\n", "--", "----", "-----", "-----", "-----", "----")
	for _, r := range infos {
		fmt.Printf("  %-8s  %-18s  %-5d  %-5d  %-7d  %s\n",
			r.ID[:min(8, len(r.ID))], r.GameID, r.Lives, r.Level+1, r.Ticks,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runReplaysRm(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if err := store.DeleteRecording(args[0]); err != nil {
		fail("Error: %v", err)
	}
	fmt.Println("Recording deleted.")
}

func runReplay(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	replayAndPrint(store, args[0])
}

// replayAndPrint re-simulates a recording and prints the outcome. It
// exits with status 1 when the state hash does not match.
func replayAndPrint(store *storage.Store, id string) {
	logger, closer := openLogger()
	defer closer.Close()

	rec, err := store.LoadRecording(id)
	if err != nil {
		fail("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := replay.Run(ctx, rec, logger)
	if err != nil {
		fail("Error: %v", err)
	}

	snap := res.Snapshot
	fmt.Printf("Recording  %s\n", rec.ID)
	fmt.Printf("Mode       %s\n", rec.GameID)
	fmt.Printf("Seed       %d\n", rec.Seed)
	fmt.Printf("Steps      %d (%d ticks)\n", res.Steps, snap.Tick)
	fmt.Printf("Result     lives %d, level %d, %s\n", snap.Lives, snap.Level+1, snap.Phase)
	fmt.Printf("Blocks     %d remaining\n", snap.BlocksRemaining)
	for _, a := range res.Alerts {
		fmt.Printf("Alert      %s\n", a)
	}

	if !res.Match {
		fmt.Printf("Hash       %016x (recorded %016x) MISMATCH\n", res.Hash, rec.FinalHash)
		logger.Error("replay mismatch", "id", rec.ID, "hash", res.Hash, "recorded", rec.FinalHash)
		closer.Close()
		os.Exit(1)
	}
	fmt.Printf("Hash       %016x (matches)\n", res.Hash)
}

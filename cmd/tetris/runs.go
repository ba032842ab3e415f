package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded autoplay runs",
	Long: `Display the autoplay runs stored by 'tetris bench --save'.

On a terminal this opens a scrollable table; when the output is piped it
prints plain text.

Examples:
  tetris runs
  tetris runs --limit 5 --recent
  tetris runs | head
  tetris runs --clear`,
	Run: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print (plain text only)")
	runsCmd.Flags().BoolVar(&flagRecent, "recent", false, "Order by newest instead of most lines (plain text only)")
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all stored runs")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("cleared runs", "db", flagDBPath)
		return
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		cfg := runtimeConfig()
		if _, err := tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printRuns(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printRuns(store *storage.Store) error {
	var (
		runs []storage.Run
		err  error
	)
	title := "Best autoplay runs"
	if flagRecent {
		title = "Recent autoplay runs"
		runs, err = store.RecentRuns(flagLimit)
	} else {
		runs, err = store.TopRuns(flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tetris bench --save' to record some.")
		return nil
	}

	fmt.Printf("  %-4s  %-20s  %-7s  %6s  %5s  %6s  %5s  %s\n",
		"Rank", "Seed", "Preset", "Pieces", "Lines", "Score", "Stack", "Date")
	fmt.Printf("  %-4s  %-20s  %-7s  %6s  %5s  %6s  %5s  %s\n",
		"----", "----", "------", "------", "-----", "-----", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-20d  %-7s  %6d  %5d  %6d  %5d  %s\n",
			i+1, r.Seed, r.Preset, r.Pieces, r.Lines, r.Score, r.StackHeight,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("%d runs, best %d lines, avg %.1f lines over %.1f pieces\n",
		stats.Runs, stats.BestLines, stats.AvgLines, stats.AvgPieces)
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagRuns      int
	flagMaxPieces int
	flagMaxTicks  uint64
	flagSave      bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run headless autoplay games",
	Long: `Play games with the autoplayer and no renderer, one per seed, and
report pieces placed, lines cleared and the highest stack reached.

Seeds start at --seed (or the current time) and count up. With --save each
result is stored in the runs database; a seed that was already recorded is
compared with its stored result.

Examples:
  tetris bench
  tetris bench --runs 50 --seed 1 --save
  tetris bench --max-pieces 500 --difficulty fixed`,
	Run: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagRuns, "runs", 10, "Number of games to play")
	benchCmd.Flags().IntVar(&flagMaxPieces, "max-pieces", 0, "Stop a game after this many pieces (0 = until game over)")
	benchCmd.Flags().Uint64Var(&flagMaxTicks, "max-ticks", tetris.DefaultBenchTickLimit, "Stop a game after this many frames")
	benchCmd.Flags().BoolVar(&flagSave, "save", false, "Store results in the runs database")
	benchCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runBench(cmd *cobra.Command, _ []string) {
	if flagRuns <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --runs must be positive")
		os.Exit(1)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(flagDifficulty)
	cfg, err := tetris.LoadConfig()
	if err != nil {
		logger.Warn("could not load config, using defaults", "path", flagConfig, "error", err)
	}

	var store *storage.Store
	if flagSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	results := benchSeeds(ctx, cfg, seed, flagRuns, func(res tetris.BenchResult) {
		logger.Info("run finished",
			"seed", res.Seed,
			"pieces", res.Pieces,
			"lines", res.Lines,
			"score", res.Score,
			"ticks", res.Ticks,
			"stack", res.StackHeight,
			"game_over", res.GameOver,
		)
		if store != nil {
			saveBenchResult(store, presetLabel(flagDifficulty, preset), res)
		}
	})
	if len(results) < flagRuns {
		logger.Warn("bench interrupted", "completed", len(results), "requested", flagRuns)
	}

	summarizeBench(results)
}

// benchSeeds plays one game per seed, counting up from first, and hands
// each result to done. It stops early when ctx is cancelled and returns the
// games finished so far.
func benchSeeds(ctx context.Context, cfg config.TetrisConfig, first int64, runs int, done func(tetris.BenchResult)) []tetris.BenchResult {
	results := make([]tetris.BenchResult, 0, runs)
	for i := range runs {
		if ctx.Err() != nil {
			break
		}
		start := time.Now()
		res := tetris.RunBench(cfg, tetris.BenchOptions{
			Seed:      first + int64(i),
			MaxPieces: flagMaxPieces,
			MaxTicks:  flagMaxTicks,
		})
		logger.Debug("run timing", "seed", res.Seed, "elapsed", time.Since(start))
		results = append(results, res)
		if done != nil {
			done(res)
		}
	}
	return results
}

// presetLabel names the settings a run was played with. Without a
// --difficulty flag no preset is applied and the YAML speeds are used as-is,
// so the run is labelled "config" rather than "normal".
func presetLabel(flag string, preset config.DifficultyPreset) string {
	if strings.TrimSpace(flag) == "" {
		return configPresetLabel
	}
	return string(preset)
}

const configPresetLabel = "config"

// saveBenchResult stores one result. A finished game whose seed is already
// on record under the same preset label is compared first; the new row is
// still added.
func saveBenchResult(store *storage.Store, preset string, res tetris.BenchResult) {
	prev, err := store.RunBySeed(res.Seed)
	if err != nil {
		logger.Warn("could not look up seed", "seed", res.Seed, "error", err)
	}
	if prev != nil && prev.Preset == preset && prev.GameOver && res.GameOver &&
		(prev.Lines != res.Lines || prev.Pieces != res.Pieces) {
		logger.Warn("result differs from stored run",
			"seed", res.Seed,
			"stored_lines", prev.Lines, "lines", res.Lines,
			"stored_pieces", prev.Pieces, "pieces", res.Pieces,
		)
	}

	id, err := store.SaveRun(storage.Run{
		Seed:        res.Seed,
		Preset:      preset,
		Pieces:      res.Pieces,
		Lines:       res.Lines,
		Score:       res.Score,
		Ticks:       int64(res.Ticks),
		StackHeight: res.StackHeight,
		GameOver:    res.GameOver,
	})
	if err != nil {
		logger.Error("could not save run", "seed", res.Seed, "error", err)
		return
	}
	logger.Debug("run saved", "id", id, "seed", res.Seed)
}

func summarizeBench(results []tetris.BenchResult) {
	if len(results) == 0 {
		return
	}

	var lines, pieces, best int
	for _, r := range results {
		lines += r.Lines
		pieces += r.Pieces
		best = max(best, r.Lines)
	}
	n := float64(len(results))
	logger.Info("bench complete",
		"runs", len(results),
		"best_lines", best,
		"avg_lines", fmt.Sprintf("%.1f", float64(lines)/n),
		"avg_pieces", fmt.Sprintf("%.1f", float64(pieces)/n),
	)
}

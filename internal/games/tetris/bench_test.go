package tetris

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

func TestRunBenchDeterministic(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	opts := BenchOptions{Seed: 99, MaxPieces: 30}

	a := RunBench(cfg, opts)
	b := RunBench(cfg, opts)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("bench runs diverged (-a +b):\n%s", diff)
	}
	if a.Seed != 99 {
		t.Errorf("Seed = %d, expected 99", a.Seed)
	}
}

func TestRunBenchStopsAtMaxPieces(t *testing.T) {
	res := RunBench(config.DefaultTetrisConfig(), BenchOptions{Seed: 1, MaxPieces: 5})

	if res.GameOver {
		t.Fatalf("game ended after %d pieces", res.Pieces)
	}
	if res.Pieces != 5 {
		t.Errorf("Pieces = %d, expected 5", res.Pieces)
	}
	if res.Ticks == 0 {
		t.Error("Ticks = 0, expected frames to be counted")
	}
}

func TestRunBenchEndsOnGameOver(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		res := RunBench(config.DefaultTetrisConfig(), BenchOptions{Seed: seed})

		if !res.GameOver {
			t.Errorf("seed %d: run stopped after %d ticks without game over", seed, res.Ticks)
		}
		if res.Score != res.Lines*40 {
			t.Errorf("seed %d: Score = %d, expected %d for %d lines", seed, res.Score, res.Lines*40, res.Lines)
		}
		if res.StackHeight == 0 {
			t.Errorf("seed %d: StackHeight = 0 after a full game", seed)
		}
	}
}

func TestRunBenchTickLimit(t *testing.T) {
	res := RunBench(config.DefaultTetrisConfig(), BenchOptions{Seed: 1, MaxTicks: 10})

	if res.Ticks > 10 {
		t.Errorf("Ticks = %d, expected at most 10", res.Ticks)
	}
}

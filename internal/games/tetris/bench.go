package tetris

import (
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// DefaultBenchTickLimit bounds a headless run that never tops out.
const DefaultBenchTickLimit = 5_000_000

// BenchOptions controls a headless autoplay run.
type BenchOptions struct {
	Seed      int64
	MaxPieces int    // stop after this many locked pieces, 0 for no limit
	MaxTicks  uint64 // 0 means DefaultBenchTickLimit
}

// BenchResult summarizes a headless autoplay run.
type BenchResult struct {
	Seed        int64
	Pieces      int
	Lines       int
	Score       int
	Ticks       uint64
	StackHeight int // highest stack reached
	GameOver    bool
}

// RunBench plays one game with the autoplayer and no renderer. The
// autoplayer always hard drops; when it finds no landing spot the piece
// falls under gravity as it would on screen.
func RunBench(cfg config.TetrisConfig, opts BenchOptions) BenchResult {
	cfg.Autoplay.HardDrop = true
	limit := opts.MaxTicks
	if limit == 0 {
		limit = DefaultBenchTickLimit
	}

	g := NewWithConfig(ModeAuto, cfg)
	g.Reset(core.RuntimeConfig{Seed: opts.Seed})

	in := core.NewInputFrame()
	for !g.session.GameOver() && g.tick < limit {
		if opts.MaxPieces > 0 && g.session.Pieces() >= opts.MaxPieces {
			break
		}
		g.Step(in)
	}

	snap := g.Snapshot()
	return BenchResult{
		Seed:        opts.Seed,
		Pieces:      snap.Pieces,
		Lines:       snap.Lines,
		Score:       snap.Score,
		Ticks:       snap.Tick,
		StackHeight: snap.MaxHeight,
		GameOver:    snap.State == StateGameOver,
	}
}

package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the canonical configuration: a 10x20 board
// with two hidden rows, 40 points per line and a 120 frame start speed.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:      10,
			Height:     20,
			HiddenRows: 2,
		},
		Scoring: ScoringConfig{
			PointsPerLine: 40,
			InitialSpeed:  120,
			SpeedStep:     30,
			FineThreshold: 30,
			FineStep:      15,
			MinSpeed:      15,
			SpeedUp:       true,
		},
		Autoplay: AutoplayConfig{
			MinLandingRow: 18,
		},
		Render: RenderConfig{
			CellWidth: 2,
			Gap:       0,
			Ghost:     true,
		},
	}
}

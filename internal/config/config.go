// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// TetrisConfig contains all configuration for the falling-block game.
type TetrisConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Autoplay AutoplayConfig `yaml:"autoplay"`
	Render   RenderConfig   `yaml:"render"`
}

// BoardConfig defines the playfield geometry.
type BoardConfig struct {
	Width           int  `yaml:"width"`
	Height          int  `yaml:"height"`
	HiddenRows      int  `yaml:"hidden_rows"`
	DuplicateTopRow bool `yaml:"duplicate_top_row"` // keep the top row in place after a collapse
}

// ScoringConfig defines points per line and the gravity speed curve.
// Speeds are in frames per gravity step; lower is faster.
type ScoringConfig struct {
	PointsPerLine int  `yaml:"points_per_line"`
	InitialSpeed  int  `yaml:"initial_speed"`
	SpeedStep     int  `yaml:"speed_step"`     // subtracted per line while above the fine threshold
	FineThreshold int  `yaml:"fine_threshold"` // speed at which the fine step applies
	FineStep      int  `yaml:"fine_step"`
	MinSpeed      int  `yaml:"min_speed"`
	SpeedUp       bool `yaml:"speed_up"` // false keeps the initial speed for the whole game
}

// AutoplayConfig tunes the automated player.
type AutoplayConfig struct {
	MinLandingRow int  `yaml:"min_landing_row"` // landing spots above this row are ignored
	HardDrop      bool `yaml:"hard_drop"`       // lock immediately instead of letting gravity finish
	Speed         int  `yaml:"speed"`           // frames per gravity step once the autoplayer takes over, 0 keeps the current speed
}

// RenderConfig controls how the board is drawn in the terminal.
type RenderConfig struct {
	CellWidth int  `yaml:"cell_width"` // columns per board cell
	Gap       int  `yaml:"gap"`        // blank columns between cells
	Ghost     bool `yaml:"ghost"`      // draw the landing preview
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate rejects configurations the engine cannot play.
func (c TetrisConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
		}
	}

	b := c.Board
	check(b.Width >= 4, "board.width %d is narrower than the I piece", b.Width)
	check(b.Height >= 4, "board.height %d is shorter than the I piece", b.Height)
	check(b.HiddenRows >= 0, "board.hidden_rows %d is negative", b.HiddenRows)

	s := c.Scoring
	check(s.PointsPerLine >= 0, "scoring.points_per_line %d is negative", s.PointsPerLine)
	check(s.InitialSpeed >= 1, "scoring.initial_speed %d must be at least 1", s.InitialSpeed)
	check(s.SpeedStep >= 0, "scoring.speed_step %d is negative", s.SpeedStep)
	check(s.FineStep >= 0, "scoring.fine_step %d is negative", s.FineStep)
	check(s.MinSpeed >= 1, "scoring.min_speed %d must be at least 1", s.MinSpeed)

	a := c.Autoplay
	check(a.MinLandingRow >= 0 && a.MinLandingRow < b.Height,
		"autoplay.min_landing_row %d outside the board", a.MinLandingRow)
	check(a.Speed >= 0, "autoplay.speed %d is negative", a.Speed)

	r := c.Render
	check(r.CellWidth >= 1 && r.CellWidth <= 4, "render.cell_width %d not in 1..4", r.CellWidth)
	check(r.Gap >= 0 && r.Gap <= 2, "render.gap %d not in 0..2", r.Gap)

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted difficulty names in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// IsFixedPreset returns true if the preset disables speed-up.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

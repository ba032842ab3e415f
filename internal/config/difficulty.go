package config

import (
	"fmt"
	"strings"
)

// InitialSpeedForPreset returns the starting gravity speed, in frames per
// row, for a difficulty preset. Returns 0 when the preset keeps the
// configured value.
func InitialSpeedForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 150
	case DifficultyHard:
		return 60
	default:
		return 0
	}
}

// ParsePreset converts a flag value into a preset. An empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DifficultyNormal, nil
	}
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Scoring.SpeedUp = false
		return
	}
	cfg.Scoring.SpeedUp = true
	if speed := InitialSpeedForPreset(preset); speed > 0 {
		cfg.Scoring.InitialSpeed = speed
	}
	// Faster starts never sit below the floor.
	cfg.Scoring.InitialSpeed = max(cfg.Scoring.InitialSpeed, cfg.Scoring.MinSpeed)
}

// Package tetris adapts the falling-block engine to the platform's Game
// interface: mode registration, configuration, input dispatch and rendering.
package tetris

import (
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode selects who controls the pieces at start.
type Mode string

const (
	ModeManual Mode = "manual"
	ModeAuto   Mode = "auto"
)

// autoSeedSalt separates the autoplayer's random source from the bag's, so
// toggling autoplay never changes the piece sequence.
const autoSeedSalt = 0x5eed

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard, fixed).
// Unknown names clear the preset.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// LoadConfig resolves the configuration the way Reset does: the config file
// search, then the difficulty preset. A broken custom file falls back to
// the defaults and the error is returned alongside them.
func LoadConfig() (config.TetrisConfig, error) {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		cfg = config.DefaultTetrisConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTetrisPreset(&cfg, difficultyPreset)
	}
	return cfg, err
}

// Game implements registry.Game and registry.ActionHandler.
type Game struct {
	mode     Mode
	override *config.TetrisConfig
	cfg      config.TetrisConfig

	session  *engine.Session
	auto     *engine.Autoplayer
	autoplay bool
	autoDone int // pieces count the autoplayer last acted on, -1 for none

	seed    int64
	tick    uint64
	maxHigh int // highest stack seen this game
}

// New creates a game controlled by the keyboard.
func New() *Game {
	return &Game{mode: ModeManual}
}

// NewAuto creates a game that starts with the autoplayer in control.
func NewAuto() *Game {
	return &Game{mode: ModeAuto}
}

// NewWithConfig creates a game that ignores the CLI config path and preset.
func NewWithConfig(mode Mode, cfg config.TetrisConfig) *Game {
	return &Game{mode: mode, override: &cfg}
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
	registry.Register("tetris_auto", func() registry.Game {
		return NewAuto()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeAuto {
		return "tetris_auto"
	}
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeAuto {
		return "Tetris (Autoplay)"
	}
	return "Tetris"
}

// Reset loads the configuration and starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.start(cfg.Seed, g.mode == ModeAuto)
}

// start begins a game from seed, with the autoplayer in control if autoplay
// is set.
func (g *Game) start(seed int64, autoplay bool) {
	if g.override != nil {
		g.cfg = *g.override
	} else {
		// Errors were already reported by the CLI; play on defaults.
		g.cfg, _ = LoadConfig()
	}

	g.seed = seed
	g.session = engine.NewSession(rulesFrom(g.cfg), rand.New(rand.NewSource(g.seed)))
	g.auto = engine.NewAutoplayer(
		rand.New(rand.NewSource(g.seed^autoSeedSalt)),
		g.cfg.Autoplay.MinLandingRow,
		g.cfg.Autoplay.HardDrop,
	)
	g.autoplay = false
	g.autoDone = -1
	g.tick = 0
	g.maxHigh = 0
	if autoplay {
		g.takeOver()
	}
}

// takeOver hands control to the autoplayer, including the piece already in
// play, and applies autoplay.speed when one is set.
func (g *Game) takeOver() {
	g.autoplay = true
	g.autoDone = -1
	if speed := g.cfg.Autoplay.Speed; speed > 0 {
		g.session.SetSpeed(speed)
	}
}

// rulesFrom converts the YAML configuration into engine rules.
func rulesFrom(cfg config.TetrisConfig) engine.Rules {
	return engine.Rules{
		Field: engine.FieldConfig{
			Width:           cfg.Board.Width,
			Height:          cfg.Board.Height,
			HiddenRows:      cfg.Board.HiddenRows,
			DuplicateTopRow: cfg.Board.DuplicateTopRow,
		},
		Scoring: engine.ScoringRules{
			PointsPerLine: cfg.Scoring.PointsPerLine,
			InitialSpeed:  cfg.Scoring.InitialSpeed,
			SpeedStep:     cfg.Scoring.SpeedStep,
			FineThreshold: cfg.Scoring.FineThreshold,
			FineStep:      cfg.Scoring.FineStep,
			MinSpeed:      cfg.Scoring.MinSpeed,
			SpeedUp:       cfg.Scoring.SpeedUp,
		},
	}
}

// restart begins a new game with the next seed from the current one, so a
// seeded session stays reproducible across restarts.
func (g *Game) restart() {
	g.start(g.seed+1, g.autoplay)
}

// stepOrder fixes the order in which frame actions are applied.
var stepOrder = []core.Action{
	core.ActionRestart,
	core.ActionPause,
	core.ActionAutoPlay,
	core.ActionRotate,
	core.ActionLeft,
	core.ActionRight,
	core.ActionSoftDrop,
	core.ActionHardDrop,
}

// Step applies the frame's actions, lets the autoplayer act on a new piece
// and advances gravity by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	for _, a := range stepOrder {
		if in.Has(a) {
			g.HandleAction(a)
		}
	}

	if g.session.GameOver() || g.session.Paused() {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	if g.autoplay && g.session.Pieces() != g.autoDone {
		g.autoDone = g.session.Pieces()
		g.auto.Play(g.session)
	}
	g.session.Tick()
	g.maxHigh = max(g.maxHigh, g.session.Field().StackHeight())

	return core.StepResult{State: g.State()}
}

// HandleAction applies a single action immediately. Returns true if the
// action changed the game.
func (g *Game) HandleAction(a core.Action) bool {
	s := g.session
	switch a {
	case core.ActionLeft:
		return s.MoveLeft()
	case core.ActionRight:
		return s.MoveRight()
	case core.ActionRotate:
		return s.Rotate()
	case core.ActionSoftDrop:
		return s.SoftDrop()
	case core.ActionHardDrop:
		return s.HardDrop()
	case core.ActionPause:
		return s.TogglePause()
	case core.ActionAutoPlay:
		if s.GameOver() {
			return false
		}
		if g.autoplay {
			g.autoplay = false
			return true
		}
		g.takeOver()
		return true
	case core.ActionRestart:
		g.restart()
		return true
	}
	return false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		Lines:    g.session.Lines(),
		Speed:    g.session.Speed(),
		GameOver: g.session.GameOver(),
		Paused:   g.session.Paused(),
	}
}

// Autoplay reports whether the autoplayer is in control.
func (g *Game) Autoplay() bool {
	return g.autoplay
}

// Session exposes the underlying engine session.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Config returns the configuration in effect since the last Reset.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}

// Seed returns the seed of the current game.
func (g *Game) Seed() int64 {
	return g.seed
}

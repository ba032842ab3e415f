package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var (
	flagDifficulty string
	flagAutoplay   bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode, "tetris" when omitted.

Controls:
  Left/Right, h/l  - Move
  Up, k            - Rotate
  Down, j          - Soft drop
  Space            - Hard drop
  A                - Toggle autoplay
  P/Esc            - Pause
  R                - Restart
  ?                - More help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slow start, clears speed the game up
  normal - Config's initial speed, clears speed the game up
  hard   - Fast start, clears speed the game up
  fixed  - Config's initial speed, never speeds up

Examples:
  tetris play
  tetris play --difficulty hard
  tetris play tetris_auto --seed 7
  tetris play --autoplay --difficulty fixed
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagAutoplay, "autoplay", false, "Start with the autoplayer in control")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "tetris"
	if len(args) > 0 {
		gameID = args[0]
	}
	if flagAutoplay {
		gameID = "tetris_auto"
	}

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available modes.")
		os.Exit(1)
	}

	if err := applyGameConfig(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()
	logger.Debug("starting game", "mode", gameID, "seed", cfg.Seed, "fps", cfg.TickRate)

	if err := tui.Run(game, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// applyGameConfig hands the config path and difficulty to the game package
// before any game is created. A config file that cannot be used is logged
// and the game falls back to its defaults.
func applyGameConfig(difficulty string) error {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return err
	}

	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(difficulty)

	cfg, err := tetris.LoadConfig()
	if err != nil {
		logger.Warn("could not load config, using defaults", "path", flagConfig, "error", err)
	}
	logger.Debug("game config",
		"board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"preset", presetLabel(difficulty, preset),
		"speed", cfg.Scoring.InitialSpeed,
		"speed_up", cfg.Scoring.SpeedUp,
	)
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

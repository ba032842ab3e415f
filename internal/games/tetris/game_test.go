package tetris

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

func newTestGame(mode Mode, seed int64) *Game {
	g := NewWithConfig(mode, config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestDefaultConfigMatchesEngineRules(t *testing.T) {
	if diff := cmp.Diff(engine.DefaultRules(), rulesFrom(config.DefaultTetrisConfig())); diff != "" {
		t.Errorf("config defaults drifted from engine defaults (-engine +config):\n%s", diff)
	}
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{"tetris", "tetris_auto"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
		if _, ok := g.(registry.ActionHandler); !ok {
			t.Errorf("%s does not implement ActionHandler", id)
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(ModeManual, 12345)
	g2 := newTestGame(ModeManual, 12345)

	script := map[int][]core.Action{
		10:  {core.ActionLeft},
		20:  {core.ActionRotate},
		30:  {core.ActionHardDrop},
		50:  {core.ActionRight, core.ActionRight},
		60:  {core.ActionHardDrop},
		300: {core.ActionSoftDrop},
	}
	for i := 0; i < 1000; i++ {
		in := frame(script[i]...)
		g1.Step(in)
		g2.Step(in)
	}

	if diff := cmp.Diff(g1.Snapshot(), g2.Snapshot()); diff != "" {
		t.Errorf("snapshots diverged (-g1 +g2):\n%s", diff)
	}
}

func TestAutoplayDeterminism(t *testing.T) {
	g1 := newTestGame(ModeAuto, 7)
	g2 := newTestGame(ModeAuto, 7)

	for i := 0; i < 5000; i++ {
		g1.Step(core.InputFrame{})
		g2.Step(core.InputFrame{})
	}

	if diff := cmp.Diff(g1.Snapshot(), g2.Snapshot()); diff != "" {
		t.Errorf("snapshots diverged (-g1 +g2):\n%s", diff)
	}
}

func TestHandleActionMoves(t *testing.T) {
	g := newTestGame(ModeManual, 1)
	start := g.Snapshot()

	if !g.HandleAction(core.ActionLeft) {
		t.Fatal("HandleAction(Left) = false on an empty board")
	}
	if got := g.Snapshot().ActiveCol; got != start.ActiveCol-1 {
		t.Errorf("ActiveCol = %d, expected %d", got, start.ActiveCol-1)
	}

	if !g.HandleAction(core.ActionSoftDrop) {
		t.Fatal("HandleAction(SoftDrop) = false")
	}
	if got := g.Snapshot().ActiveRow; got != start.ActiveRow+1 {
		t.Errorf("ActiveRow = %d, expected %d", got, start.ActiveRow+1)
	}

	if g.HandleAction(core.ActionQuit) {
		t.Error("HandleAction(Quit) should be left to the platform")
	}
}

func TestHardDropThroughStep(t *testing.T) {
	g := newTestGame(ModeManual, 1)

	res := g.Step(frame(core.ActionHardDrop))

	if g.Snapshot().Pieces != 1 {
		t.Errorf("Pieces = %d, expected 1", g.Snapshot().Pieces)
	}
	if res.State.GameOver {
		t.Error("one hard drop should not end the game")
	}
	if g.Snapshot().StackHeight == 0 {
		t.Error("locked piece should be on the board")
	}
}

func TestPauseStopsGravity(t *testing.T) {
	g := newTestGame(ModeManual, 1)
	start := g.Snapshot()

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("State.Paused = false after pause")
	}
	for i := 0; i < 1000; i++ {
		g.Step(frame(core.ActionLeft))
	}

	snap := g.Snapshot()
	if snap.ActiveRow != start.ActiveRow || snap.ActiveCol != start.ActiveCol {
		t.Errorf("piece moved while paused: (%d,%d) -> (%d,%d)",
			start.ActiveRow, start.ActiveCol, snap.ActiveRow, snap.ActiveCol)
	}
	if snap.State != StatePaused {
		t.Errorf("State = %s, expected %s", snap.State, StatePaused)
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGravityThroughStep(t *testing.T) {
	g := newTestGame(ModeManual, 1)
	start := g.Snapshot()

	for i := 0; i <= start.Speed; i++ {
		g.Step(core.InputFrame{})
	}
	if got := g.Snapshot().ActiveRow; got != start.ActiveRow+1 {
		t.Errorf("ActiveRow = %d after %d frames, expected %d", got, start.Speed+1, start.ActiveRow+1)
	}
}

func topOut(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.HandleAction(core.ActionHardDrop)
	}
	if !g.State().GameOver {
		t.Fatal("stacking hard drops never ended the game")
	}
}

func TestGameOverFreezesUntilRestart(t *testing.T) {
	g := newTestGame(ModeManual, 3)
	topOut(t, g)

	over := g.Snapshot()
	for i := 0; i < 200; i++ {
		g.Step(frame(core.ActionLeft, core.ActionRotate, core.ActionPause, core.ActionAutoPlay))
	}
	if diff := cmp.Diff(over, g.Snapshot()); diff != "" {
		t.Errorf("game changed after game over (-want +got):\n%s", diff)
	}

	g.Step(frame(core.ActionRestart))
	snap := g.Snapshot()
	if snap.State != StatePlaying {
		t.Errorf("State after restart = %s, expected %s", snap.State, StatePlaying)
	}
	if snap.Pieces != 0 || snap.Score != 0 {
		t.Errorf("restart kept progress: pieces=%d score=%d", snap.Pieces, snap.Score)
	}
	if snap.Seed != over.Seed+1 {
		t.Errorf("Seed after restart = %d, expected %d", snap.Seed, over.Seed+1)
	}
}

func TestAutoplayToggle(t *testing.T) {
	g := newTestGame(ModeManual, 1)
	if g.Autoplay() {
		t.Fatal("manual mode should start without autoplay")
	}

	if !g.HandleAction(core.ActionAutoPlay) {
		t.Fatal("HandleAction(AutoPlay) = false")
	}
	g.Step(core.InputFrame{})

	snap := g.Snapshot()
	if !snap.Autoplay {
		t.Error("Autoplay = false after toggle")
	}
	if snap.ActiveRow < engineMinLandingRow() {
		t.Errorf("autoplayer should move the piece to row >= %d, got %d", engineMinLandingRow(), snap.ActiveRow)
	}

	// Restart keeps whoever is in control.
	g.HandleAction(core.ActionRestart)
	if !g.Autoplay() {
		t.Error("restart should keep autoplay on")
	}
}

func TestAutoplaySpeed(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Autoplay.Speed = 60

	g := NewWithConfig(ModeManual, cfg)
	g.Reset(core.RuntimeConfig{Seed: 1})
	if got := g.State().Speed; got != 120 {
		t.Fatalf("Speed = %d before autoplay, expected 120", got)
	}

	g.HandleAction(core.ActionAutoPlay)
	if got := g.State().Speed; got != 60 {
		t.Errorf("Speed = %d once the autoplayer takes over, expected 60", got)
	}

	// Handing control back keeps the faster speed.
	g.HandleAction(core.ActionAutoPlay)
	if got := g.State().Speed; got != 60 {
		t.Errorf("Speed = %d after autoplay off, expected 60", got)
	}

	// A manual restart starts from the initial speed again.
	g.HandleAction(core.ActionRestart)
	if got := g.State().Speed; got != 120 {
		t.Errorf("Speed = %d after restart, expected 120", got)
	}

	auto := NewWithConfig(ModeAuto, cfg)
	auto.Reset(core.RuntimeConfig{Seed: 1})
	if got := auto.State().Speed; got != 60 {
		t.Errorf("auto mode Speed = %d, expected 60", got)
	}
}

func TestAutoplaySpeedZeroKeepsSpeed(t *testing.T) {
	g := newTestGame(ModeManual, 1)
	g.HandleAction(core.ActionAutoPlay)
	if got := g.State().Speed; got != 120 {
		t.Errorf("Speed = %d, expected 120 with autoplay.speed unset", got)
	}
}

func engineMinLandingRow() int {
	return config.DefaultTetrisConfig().Autoplay.MinLandingRow
}

func TestAutoModeStartsWithAutoplay(t *testing.T) {
	g := newTestGame(ModeAuto, 1)
	if !g.Autoplay() {
		t.Error("auto mode should start with autoplay on")
	}
	if g.ID() != "tetris_auto" || g.Title() != "Tetris (Autoplay)" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
}

func TestConfigOverride(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Board.Width = 12
	cfg.Scoring.InitialSpeed = 40

	g := NewWithConfig(ModeManual, cfg)
	g.Reset(core.RuntimeConfig{Seed: 1})

	if w := g.Session().Field().Width(); w != 12 {
		t.Errorf("Field().Width() = %d, expected 12", w)
	}
	if s := g.State().Speed; s != 40 {
		t.Errorf("State().Speed = %d, expected 40", s)
	}
}

func TestCLIConfigAndPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte("board:\n  width: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	SetDifficultyPreset("hard")
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})

	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1})

	if w := g.Config().Board.Width; w != 8 {
		t.Errorf("Board.Width = %d, expected 8 from the config file", w)
	}
	if s := g.State().Speed; s != 60 {
		t.Errorf("State().Speed = %d, expected the hard preset's 60", s)
	}
}

func TestLoadConfigBrokenFileFallsBack(t *testing.T) {
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { SetConfigPath("") })

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("LoadConfig() should report the missing file")
	}
	if cfg != config.DefaultTetrisConfig() {
		t.Errorf("LoadConfig() = %+v, expected defaults", cfg)
	}
}

func TestSetDifficultyPresetUnknown(t *testing.T) {
	SetDifficultyPreset("insane")
	t.Cleanup(func() { SetDifficultyPreset("") })

	if difficultyPreset != "" {
		t.Errorf("difficultyPreset = %q, expected empty for unknown name", difficultyPreset)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(ModeManual, 1)
	for range 4 {
		g.HandleAction(core.ActionSoftDrop)
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"TETRIS", "Score  0", "Lines  0", "Next", "Mode   manual"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if !strings.ContainsRune(out, ghostRune) {
		t.Error("render should show the ghost piece")
	}

	// The active piece is drawn in its own color.
	snap := g.Snapshot()
	p := g.Session().Active()
	l := g.layout(screen)
	found := false
	p.Matrix.Each(func(r, c int) {
		cell := screen.GetCell(l.cellX(snap.ActiveCol+c), l.cellY(snap.ActiveRow+r))
		if cell.Rune == blockRune && cell.Color == p.Kind.Color() {
			found = true
		}
	})
	if !found {
		t.Errorf("active %s piece not drawn in its color", p.Kind)
	}
}

func TestRenderLayout(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Render.CellWidth = 1
	cfg.Render.Gap = 1
	g := NewWithConfig(ModeManual, cfg)
	g.Reset(core.RuntimeConfig{Seed: 1})

	screen := core.NewScreen(60, 24)
	l := g.layout(screen)

	if l.frame.W != 10+9+2 {
		t.Errorf("frame width = %d, expected 21", l.frame.W)
	}
	if l.frame.H != 22 {
		t.Errorf("frame height = %d, expected 22", l.frame.H)
	}
	if l.cellX(1)-l.cellX(0) != 2 {
		t.Errorf("cell pitch = %d, expected 2", l.cellX(1)-l.cellX(0))
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(ModeManual, 1)
	screen := core.NewScreen(30, 10)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too-small message, got:\n%s", screen.String())
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(ModeManual, 1)
	screen := core.NewScreen(80, 24)

	g.HandleAction(core.ActionPause)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused render should show the pause overlay")
	}

	g.HandleAction(core.ActionPause)
	topOut(t, g)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over render should show the banner")
	}
}

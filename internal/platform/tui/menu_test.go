package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T, expected MenuModel", next)
	}
	return model
}

func TestMenuListsModes(t *testing.T) {
	m := NewMenuModel(testRuntime(), "")

	ids := make([]string, len(m.items))
	for i, item := range m.items {
		ids[i] = item.GameID
	}
	joined := strings.Join(ids, ",")
	if !strings.Contains(joined, "tetris") || !strings.Contains(joined, "tetris_auto") {
		t.Errorf("menu items = %v, expected tetris and tetris_auto", ids)
	}
	if m.Preset() != config.DifficultyNormal {
		t.Errorf("Preset() = %q, expected normal", m.Preset())
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(testRuntime(), config.DifficultyHard)

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	res := m.Result()
	if res.Quit || res.WantsRuns {
		t.Fatalf("Result() = %+v, expected a selection", res)
	}
	if res.GameID != m.items[1].GameID {
		t.Errorf("GameID = %q, expected %q", res.GameID, m.items[1].GameID)
	}
	if res.Preset != config.DifficultyFixed {
		t.Errorf("Preset = %q, expected fixed", res.Preset)
	}
}

func TestMenuPresetWraps(t *testing.T) {
	m := NewMenuModel(testRuntime(), config.DifficultyEasy)
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Preset() != config.DifficultyFixed {
		t.Errorf("Preset() = %q after wrapping left, expected fixed", m.Preset())
	}
}

func TestMenuQuitAndRuns(t *testing.T) {
	m := menuUpdate(t, NewMenuModel(testRuntime(), ""), runeKey('q'))
	if !m.Result().Quit {
		t.Error("q should quit the menu")
	}

	m = menuUpdate(t, NewMenuModel(testRuntime(), ""), tea.KeyMsg{Type: tea.KeyTab})
	if !m.Result().WantsRuns {
		t.Error("tab should open the run history")
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := menuUpdate(t, NewMenuModel(testRuntime(), ""), tea.WindowSizeMsg{Width: 120, Height: 50})
	if cfg := m.Config(); cfg.ScreenW != 120 || cfg.ScreenH != 50 {
		t.Errorf("Config() = %dx%d, expected 120x50", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q, expected %q", got, "  ab")
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText = %q, expected text unchanged", got)
	}
}

func TestRunsModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	for _, r := range []storage.Run{
		{Seed: 1, Pieces: 30, Lines: 4, Score: 160},
		{Seed: 2, Pieces: 50, Lines: 9, Score: 360},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	m := NewRunsModel(store, 100, 30)
	if len(m.runs) != 2 || m.runs[0].Seed != 2 {
		t.Fatalf("best runs = %+v, expected seed 2 first", m.runs)
	}
	if !strings.Contains(m.View(), "2 runs") {
		t.Error("View() should show the run count")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RunsModel)
	if m.order != OrderRecent {
		t.Fatalf("order = %v, expected recent", m.order)
	}
	if m.runs[0].Seed != 2 {
		t.Errorf("recent runs start with seed %d, expected 2", m.runs[0].Seed)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(RunsModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestRunsModelWithoutStore(t *testing.T) {
	m := NewRunsModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("View() without a store should show the empty message")
	}
}

func TestRunRowsTrimmed(t *testing.T) {
	rows := RunRows([]storage.Run{{Seed: 7, Preset: "normal", Lines: 3}}, 5)
	if len(rows) != 1 || len(rows[0]) != 5 {
		t.Fatalf("rows = %v, expected one row of 5 cells", rows)
	}
	if rows[0][0] != "1" || rows[0][1] != "7" || rows[0][4] != "3" {
		t.Errorf("row = %v, expected rank 1, seed 7, lines 3", rows[0])
	}
}

package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marki32/scain-ai/internal/config"
	"github.com/marki32/scain-ai/internal/core"
	"github.com/marki32/scain-ai/internal/runner"
	"github.com/marki32/scain-ai/internal/storage"
)

func testSettings() Settings {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.Obstacles.Chance = 0
	cfg.Spawn.Collectibles.Chance = 0
	return Settings{
		Runner:     cfg,
		Runtime:    core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		Difficulty: config.DifficultyNormal,
	}
}

func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func tickN(m Model, start time.Time, n int) Model {
	for i := 1; i <= n; i++ {
		next, _ := m.Update(TickMsg(start.Add(time.Duration(i) * 16670 * time.Microsecond)))
		m = next.(Model)
	}
	return m
}

var (
	spaceKey = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
	pauseKey = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}
	resetKey = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
	quitKey  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestModelStartsOnSpace(t *testing.T) {
	m := NewModel(nil, testSettings())
	m.Init()

	if m.Engine().Phase() != runner.PhaseIdle {
		t.Fatalf("expected idle engine before input, got %v", m.Engine().Phase())
	}

	m = press(m, spaceKey)
	if m.Engine().Phase() != runner.PhaseRunning {
		t.Fatalf("expected running engine after space, got %v", m.Engine().Phase())
	}

	m = tickN(m, time.Now(), 10)
	if got := m.Engine().Snapshot().Frame; got != 10 {
		t.Errorf("expected 10 frames after 10 ticks, got %d", got)
	}
}

func TestModelPauseStopsFrames(t *testing.T) {
	m := NewModel(nil, testSettings())
	m = press(m, spaceKey)
	start := time.Now()
	m = tickN(m, start, 3)

	m = press(m, pauseKey)
	m = tickN(m, start.Add(time.Second), 10)

	if got := m.Engine().Snapshot().Frame; got != 3 {
		t.Errorf("expected frames to stop at 3 while paused, got %d", got)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected paused overlay")
	}
}

func TestModelRestartOnlyWhenFinished(t *testing.T) {
	m := NewModel(nil, testSettings())
	m = press(m, spaceKey)
	m = tickN(m, time.Now(), 5)

	m = press(m, resetKey)
	if got := m.Engine().Snapshot().Frame; got != 5 {
		t.Errorf("restart must be ignored during a live run, frame reset to %d", got)
	}

	m.Engine().Stop()
	m = press(m, resetKey)
	if m.Engine().Phase() != runner.PhaseRunning || m.Engine().Snapshot().Frame != 0 {
		t.Errorf("expected a fresh running run after restart, got %v at frame %d",
			m.Engine().Phase(), m.Engine().Snapshot().Frame)
	}
}

func TestModelSavesFinishedRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	s := testSettings()
	s.Runner.Physics.InitialSpeed = 300
	m := NewModel(store, s)
	m = press(m, spaceKey)

	start := time.Now()
	m = tickN(m, start, 2)
	m.Engine().Stop()
	m = tickN(m, start.Add(time.Second), 5)

	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected exactly 1 saved run, got %d", len(runs))
	}
	if runs[0].Score != m.Engine().State().Score || runs[0].Difficulty != "normal" {
		t.Errorf("saved run does not match engine state: %+v", runs[0])
	}

	// A new engine picks the stored score up as its high score.
	again := NewModel(store, s)
	if again.Engine().State().HighScore != runs[0].Score {
		t.Errorf("expected high score %d from store, got %d", runs[0].Score, again.Engine().State().HighScore)
	}
}

func TestModelAutopilotRestartsWithoutSaving(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	s := testSettings()
	s.Autopilot = true
	s.Runner.Physics.InitialSpeed = 300
	m := NewModel(store, s)
	m.Init()

	if m.Engine().Phase() != runner.PhaseRunning {
		t.Fatalf("expected attract mode to start immediately, got %v", m.Engine().Phase())
	}

	m = tickN(m, time.Now(), 3)
	m.Engine().Stop()
	m = tickN(m, time.Now().Add(time.Second), 1)

	if m.Engine().Phase() != runner.PhaseRunning {
		t.Errorf("expected attract mode to restart, got %v", m.Engine().Phase())
	}
	if high, _ := store.HighScore(); high != 0 {
		t.Errorf("attract mode runs must not be stored, high score is %d", high)
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(nil, testSettings())
	next, cmd := m.Update(quitKey)
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if next.(Model).View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestModelResize(t *testing.T) {
	m := NewModel(nil, testSettings())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("expected 120x39 playfield, got %dx%d", m.screen.Width(), m.screen.Height())
	}
}

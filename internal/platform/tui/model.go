package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/marki32/scain-ai/internal/autopilot"
	"github.com/marki32/scain-ai/internal/config"
	"github.com/marki32/scain-ai/internal/core"
	"github.com/marki32/scain-ai/internal/frame"
	"github.com/marki32/scain-ai/internal/platform/recorder"
	"github.com/marki32/scain-ai/internal/runner"
	"github.com/marki32/scain-ai/internal/storage"
)

// Settings configures one game view.
type Settings struct {
	Runner     config.RunnerConfig
	Runtime    core.RuntimeConfig
	Difficulty config.DifficultyPreset
	Autopilot  bool        // Start in attract mode
	Logger     *log.Logger // Optional; engine lifecycle events
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for one runner session. Every tick advances
// the frame queue by the wall time since the previous tick, so the engine
// only ever runs on the Bubble Tea event loop.
type Model struct {
	engine   *runner.Engine
	queue    *frame.Queue
	pilot    *autopilot.Pilot // nil unless attract mode is on
	recorder *recorder.Recorder
	screen   *core.Screen
	runtime  core.RuntimeConfig
	keys     KeyMap
	help     help.Model

	lastTick time.Time
	quitting bool
}

// NewModel creates a game view. The engine's high score is seeded from the
// store when one is available.
func NewModel(store *storage.Store, s Settings) Model {
	rt := s.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}

	rec := recorder.New(store, string(s.Difficulty), rt.Seed, s.Logger)

	opts := []runner.Option{
		runner.WithSeed(rt.Seed),
		runner.WithHighScore(rec.HighScore()),
	}
	if s.Logger != nil {
		opts = append(opts, runner.WithLogger(s.Logger))
	}

	queue := frame.NewQueue()
	m := Model{
		engine:   runner.New(s.Runner, queue, opts...),
		queue:    queue,
		recorder: rec,
		screen:   core.NewScreen(rt.ScreenW, max(rt.ScreenH-1, 1)),
		runtime:  rt,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
	m.help.Width = rt.ScreenW
	if s.Autopilot {
		m.pilot = autopilot.New()
	}
	return m
}

// Init starts the tick loop. Attract mode starts the run right away.
func (m Model) Init() tea.Cmd {
	if m.pilot != nil {
		m.engine.Start()
	}
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Autopilot):
		if m.pilot == nil {
			m.pilot = autopilot.New()
		} else {
			m.pilot = nil
		}
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionRestart:
		// Only from a finished or paused run, so a stray key can't wipe a live one.
		if phase := m.engine.Phase(); phase == runner.PhaseOver || phase == runner.PhasePaused {
			m.engine.Apply(action)
			m.recorder.Rearm()
		}
	case core.ActionJump, core.ActionPause:
		m.engine.Apply(action)
	}

	return m, nil
}

// handleTick pumps the frame queue by the time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := time.Second / time.Duration(m.runtime.TickRate)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	if m.pilot != nil {
		m.engine.Apply(m.pilot.Act(m.engine.Snapshot()))
	}
	m.queue.Advance(dt)

	if m.engine.Phase() == runner.PhaseOver {
		m = m.finishRun()
	}

	return m, tickCmd(m.runtime.TickRate)
}

// finishRun stores a finished run once. Attract mode runs are not stored and
// restart immediately.
func (m Model) finishRun() Model {
	if m.pilot != nil {
		m.engine.Start()
		m.recorder.Rearm()
		return m
	}
	m.recorder.Finish(m.engine)
	return m
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	DrawSnapshot(m.screen, m.engine.Snapshot())

	dir := filepath.Join(os.Getenv("HOME"), ".runner", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("runner_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current frame with the help footer below it.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawSnapshot(m.screen, m.engine.Snapshot())
	if m.pilot != nil {
		m.screen.DrawTextColored(1, m.screen.Height()-1, " AUTOPILOT ", core.ColorCyan)
	}

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Engine returns the session's engine.
func (m Model) Engine() *runner.Engine {
	return m.engine
}

// Run starts the Bubble Tea program for a local terminal.
func Run(store *storage.Store, s Settings) error {
	model := NewModel(store, s)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// Package gui hosts the runner in a desktop window using ebiten.
package gui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/marki32/scain-ai/internal/autopilot"
	"github.com/marki32/scain-ai/internal/config"
	"github.com/marki32/scain-ai/internal/core"
	"github.com/marki32/scain-ai/internal/frame"
	"github.com/marki32/scain-ai/internal/platform/recorder"
	"github.com/marki32/scain-ai/internal/runner"
	"github.com/marki32/scain-ai/internal/storage"
)

// Settings configures the desktop host.
type Settings struct {
	Runner     config.RunnerConfig
	Runtime    core.RuntimeConfig
	Difficulty config.DifficultyPreset
	Autopilot  bool
	Logger     *log.Logger
}

var (
	skyColor    = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	groundColor = color.RGBA{R: 90, G: 160, B: 70, A: 255}
	playerColor = color.RGBA{R: 60, G: 90, B: 200, A: 255}
	shadeColor  = color.RGBA{A: 140}

	variantColors = map[string]color.RGBA{
		"crate": {R: 150, G: 100, B: 50, A: 255},
		"bone":  {R: 235, G: 230, B: 215, A: 255},
		"stone": {R: 120, G: 120, B: 120, A: 255},
		"coin":  {R: 250, G: 210, B: 40, A: 255},
		"gem":   {R: 60, G: 220, B: 220, A: 255},
		"chest": {R: 230, G: 140, B: 30, A: 255},
	}
	kindColors = map[runner.Kind]color.RGBA{
		runner.KindObstacle:    {R: 200, G: 40, B: 40, A: 255},
		runner.KindCollectible: {R: 240, G: 200, B: 0, A: 255},
	}
)

// Game implements ebiten.Game. Update pumps the frame queue by one ebiten
// tick, so the engine runs on ebiten's update goroutine only.
type Game struct {
	engine   *runner.Engine
	queue    *frame.Queue
	pilot    *autopilot.Pilot
	recorder *recorder.Recorder
}

// New creates a desktop game. The high score is seeded from the store.
func New(store *storage.Store, s Settings) *Game {
	seed := s.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rec := recorder.New(store, string(s.Difficulty), seed, s.Logger)

	opts := []runner.Option{
		runner.WithSeed(seed),
		runner.WithHighScore(rec.HighScore()),
	}
	if s.Logger != nil {
		opts = append(opts, runner.WithLogger(s.Logger))
	}

	queue := frame.NewQueue()
	g := &Game{
		engine:   runner.New(s.Runner, queue, opts...),
		queue:    queue,
		recorder: rec,
	}
	if s.Autopilot {
		g.pilot = autopilot.New()
		g.engine.Start()
	}
	return g
}

// Update handles input and advances the simulation by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		if g.pilot == nil {
			g.pilot = autopilot.New()
		} else {
			g.pilot = nil
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace),
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp),
		inpututil.IsKeyJustPressed(ebiten.KeyW),
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.engine.Apply(core.ActionJump)
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.engine.Apply(core.ActionPause)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if phase := g.engine.Phase(); phase == runner.PhaseOver || phase == runner.PhasePaused {
			g.engine.Apply(core.ActionRestart)
			g.recorder.Rearm()
		}
	}

	if g.pilot != nil {
		g.engine.Apply(g.pilot.Act(g.engine.Snapshot()))
	}

	g.queue.Advance(time.Second / time.Duration(ebiten.TPS()))

	if g.engine.Phase() == runner.PhaseOver {
		g.finishRun()
	}
	return nil
}

// finishRun stores a finished run once; attract mode restarts instead.
func (g *Game) finishRun() {
	if g.pilot != nil {
		g.engine.Start()
		g.recorder.Rearm()
		return
	}
	g.recorder.Finish(g.engine)
}

// Draw renders the latest snapshot in world pixels.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.engine.Snapshot()
	screen.Fill(skyColor)

	floor := s.GroundY
	player, hasPlayer := s.Player()
	if hasPlayer {
		floor += player.Size.Y
	}
	vector.DrawFilledRect(screen, 0, float32(floor), float32(s.World.X), float32(s.World.Y-floor), groundColor, false)

	for _, ent := range s.Entities {
		if ent.Kind == runner.KindPlayer {
			continue
		}
		fillBox(screen, ent.Box(), entityColor(ent))
	}
	if hasPlayer {
		fillBox(screen, player.Box(), playerColor)
	}

	st := s.State
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %d  COINS %d  DIST %dm  SPEED %.1f  HI %d",
		st.Score, st.Coins, int(st.Distance/10), st.Speed, max(st.HighScore, st.Score)), 12, 10)
	if g.pilot != nil {
		ebitenutil.DebugPrintAt(screen, "AUTOPILOT (A to take over)", 12, 28)
	}

	switch s.Phase {
	case runner.PhaseIdle:
		drawBanner(screen, s.World, "ENDLESS RUNNER", "Press SPACE or click to start")
	case runner.PhasePaused:
		drawBanner(screen, s.World, "PAUSED", "Press P to resume")
	case runner.PhaseOver:
		drawBanner(screen, s.World, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", st.Score))
	}
}

// Layout keeps the logical screen at world size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.engine.Config()
	return int(cfg.World.Width), int(cfg.World.Height)
}

func entityColor(ent runner.Entity) color.RGBA {
	if c, ok := variantColors[ent.Variant]; ok {
		return c
	}
	return kindColors[ent.Kind]
}

func fillBox(dst *ebiten.Image, b core.Box, c color.Color) {
	vector.DrawFilledRect(dst, float32(b.Pos.X), float32(b.Pos.Y), float32(b.Size.X), float32(b.Size.Y), c, false)
}

func drawBanner(dst *ebiten.Image, world core.Vec, title, subtitle string) {
	const w, h = 320, 70
	x := float32(world.X-w) / 2
	y := float32(world.Y-h) / 2
	vector.DrawFilledRect(dst, x, y, w, h, shadeColor, false)
	ebitenutil.DebugPrintAt(dst, title, int(x)+16, int(y)+14)
	ebitenutil.DebugPrintAt(dst, subtitle, int(x)+16, int(y)+40)
}

// Run opens the window and blocks until it is closed.
func Run(store *storage.Store, s Settings) error {
	g := New(store, s)
	cfg := g.engine.Config()

	ebiten.SetWindowSize(int(cfg.World.Width), int(cfg.World.Height))
	ebiten.SetWindowTitle("Endless Runner")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if s.Runtime.TickRate > 0 {
		ebiten.SetTPS(s.Runtime.TickRate)
	}

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}

package runner

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/marki32/scain-ai/internal/config"
	"github.com/marki32/scain-ai/internal/core"
	"github.com/marki32/scain-ai/internal/frame"
)

// Engine owns the entity list and run state of one run at a time.
//
// Engine is not safe for concurrent use. Every method, and every frame
// callback, must run on the goroutine that pumps the Scheduler.
type Engine struct {
	cfg   config.RunnerConfig
	sched frame.Scheduler
	rng   *rand.Rand
	log   *log.Logger

	entities []Entity
	state    RunState
	bonus    int // Points earned from pickups this run
	phase    Phase
	frames   uint64

	lastTime  time.Duration
	pending   frame.Handle
	observers []Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed seeds spawning and entity IDs. Without it the engine seeds from the clock.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithHighScore seeds the high score, e.g. from a score store.
func WithHighScore(score int) Option {
	return func(e *Engine) {
		e.state.HighScore = score
	}
}

// WithObserver registers an observer at construction.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.Observe(o)
	}
}

// New creates an engine in the Idle phase with a freshly spawned world.
func New(cfg config.RunnerConfig, sched frame.Scheduler, opts ...Option) *Engine {
	e := &Engine{
		cfg:   cfg,
		sched: sched,
		log:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.Reset()
	return e
}

// Observe registers an observer that receives every completed frame.
func (e *Engine) Observe(o Observer) {
	if o != nil {
		e.observers = append(e.observers, o)
	}
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Config returns the configuration the engine runs with.
func (e *Engine) Config() config.RunnerConfig {
	return e.cfg
}

// Start resets the world and begins a run. Starting while a run is active
// restarts it; the pending frame is cancelled first so only one loop exists.
func (e *Engine) Start() {
	e.Reset()
	e.phase = PhaseRunning
	e.lastTime = e.sched.Now()
	e.arm()
	e.log.Debug("run started", "speed", e.state.Speed, "high_score", e.state.HighScore)
}

// Pause freezes a running run. No-op in any other phase.
func (e *Engine) Pause() {
	if e.phase != PhaseRunning {
		return
	}
	e.cancel()
	e.state.Paused = true
	e.phase = PhasePaused
	e.log.Debug("run paused", "frame", e.frames)
}

// Resume continues a paused run. The clock is re-baselined so the paused
// interval adds no simulated time. No-op unless paused.
func (e *Engine) Resume() {
	if e.phase != PhasePaused {
		return
	}
	e.state.Paused = false
	e.phase = PhaseRunning
	e.lastTime = e.sched.Now()
	e.arm()
	e.log.Debug("run resumed", "frame", e.frames)
}

// Stop ends the run immediately, independent of collisions.
func (e *Engine) Stop() {
	e.cancel()
	e.state.GameOver = true
	e.state.Paused = false
	if e.phase != PhaseOver {
		e.phase = PhaseOver
		e.log.Debug("run stopped", "score", e.state.Score, "frame", e.frames)
	}
}

// Reset discards the current run and prepares a new one in the Idle phase.
// The high score absorbs the score of the run being discarded.
func (e *Engine) Reset() {
	e.cancel()

	high := max(e.state.HighScore, e.state.Score)
	e.entities = nil
	e.state = RunState{
		Speed:     e.cfg.Physics.InitialSpeed,
		HighScore: high,
	}
	e.bonus = 0
	e.frames = 0
	e.phase = PhaseIdle

	e.spawnPlayer()
	e.spawn(KindObstacle, e.cfg.Spawn.Obstacles)
	e.spawn(KindCollectible, e.cfg.Spawn.Collectibles)
}

// Jump gives a grounded player the jump impulse. Airborne or missing player: no-op.
func (e *Engine) Jump() {
	i := e.playerIndex()
	if i < 0 {
		return
	}
	p := &e.entities[i]
	if p.Pos.Y >= e.cfg.GroundY() {
		p.Vel.Y = e.cfg.Physics.JumpImpulse
	}
}

// Apply maps a host action onto engine commands.
// Jump in the Idle phase starts the run; Pause toggles pause and resume.
func (e *Engine) Apply(a core.Action) {
	switch a {
	case core.ActionJump:
		if e.phase == PhaseIdle {
			e.Start()
			return
		}
		e.Jump()
	case core.ActionPause:
		switch e.phase {
		case PhaseRunning:
			e.Pause()
		case PhasePaused:
			e.Resume()
		}
	case core.ActionRestart:
		e.Start()
	}
}

// State returns a copy of the run state.
func (e *Engine) State() RunState {
	return e.state
}

// Snapshot returns a copy of the active entities and run state.
func (e *Engine) Snapshot() Snapshot {
	ents := make([]Entity, 0, len(e.entities))
	for _, ent := range e.entities {
		if ent.Active {
			ents = append(ents, ent)
		}
	}
	return Snapshot{
		Frame:    e.frames,
		Phase:    e.phase,
		State:    e.state,
		Entities: ents,
		World:    core.Vec{X: e.cfg.World.Width, Y: e.cfg.World.Height},
		GroundY:  e.cfg.GroundY(),
	}
}

// arm requests the next frame unless one is already pending.
func (e *Engine) arm() {
	if e.pending != 0 {
		return
	}
	e.pending = e.sched.Request(e.onFrame)
}

// cancel revokes the pending frame, if any.
func (e *Engine) cancel() {
	if e.pending == 0 {
		return
	}
	e.sched.Cancel(e.pending)
	e.pending = 0
}

// onFrame is the per-refresh callback.
func (e *Engine) onFrame(now time.Duration) {
	e.pending = 0
	if e.phase != PhaseRunning {
		return
	}

	e.step(e.timeScale(now))
	e.frames++

	if e.state.GameOver {
		e.phase = PhaseOver
		e.log.Debug("run over", "score", e.state.Score, "coins", e.state.Coins,
			"distance", e.state.Distance, "frame", e.frames)
	}

	snap := e.Snapshot()
	for _, o := range e.observers {
		o.OnFrame(snap)
	}

	// An observer may have paused, stopped or restarted the run.
	if e.phase == PhaseRunning {
		e.arm()
	}
}

// timeScale converts the time since the last frame into baseline frames.
func (e *Engine) timeScale(now time.Duration) float64 {
	elapsed := now - e.lastTime
	e.lastTime = now
	if elapsed < 0 {
		elapsed = 0
	}

	ms := float64(elapsed) / float64(time.Millisecond)
	if limit := e.cfg.Physics.MaxFrameDeltaMS; limit > 0 && ms > limit {
		ms = limit
	}
	return ms / e.cfg.Physics.FrameBaselineMS
}

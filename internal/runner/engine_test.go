package runner

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marki32/scain-ai/internal/config"
	"github.com/marki32/scain-ai/internal/core"
	"github.com/marki32/scain-ai/internal/frame"
)

// baseline is one 60 Hz frame (16.67 ms), i.e. a time scale of exactly 1.
const baseline = 16670 * time.Microsecond

// quietConfig disables random spawning so tests control the world.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.Obstacles.Chance = 0
	cfg.Spawn.Collectibles.Chance = 0
	return cfg
}

func newTestEngine(t *testing.T, cfg config.RunnerConfig) (*Engine, *frame.Queue) {
	t.Helper()
	q := frame.NewQueue()
	return New(cfg, q, WithSeed(7)), q
}

// startBare starts a run and drops everything but the player.
func startBare(t *testing.T, e *Engine) {
	t.Helper()
	e.Start()
	require.Equal(t, 0, e.playerIndex(), "player should be the first entity")
	e.entities = e.entities[:1]
}

// place adds an entity directly to the world.
func place(e *Engine, kind Kind, x, y, w, h float64) uuid.UUID {
	id := e.newID()
	e.entities = append(e.entities, Entity{
		ID:     id,
		Kind:   kind,
		Pos:    core.Vec{X: x, Y: y},
		Size:   core.Vec{X: w, Y: h},
		Active: true,
	})
	return id
}

func findEntity(s Snapshot, id uuid.UUID) (Entity, bool) {
	for _, ent := range s.Entities {
		if ent.ID == id {
			return ent, true
		}
	}
	return Entity{}, false
}

func TestNewEngineIsIdleWithFreshWorld(t *testing.T) {
	e, q := newTestEngine(t, config.DefaultRunnerConfig())

	s := e.Snapshot()
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Equal(t, 1, s.Count(KindPlayer))
	assert.Equal(t, 1, s.Count(KindObstacle))
	assert.Equal(t, 1, s.Count(KindCollectible))
	assert.Equal(t, 6.0, s.State.Speed)
	assert.Zero(t, q.Pending(), "an idle engine must not schedule frames")

	q.Advance(time.Second)
	assert.Equal(t, uint64(0), e.Snapshot().Frame)
}

func TestOneFrameAtSpeed300(t *testing.T) {
	cfg := quietConfig()
	cfg.Physics.InitialSpeed = 300
	cfg.Physics.SpeedRamp = 0.5
	e, q := newTestEngine(t, cfg)

	startBare(t, e)
	require.Equal(t, 1, q.Advance(baseline))

	st := e.State()
	assert.InDelta(t, 300.0, st.Distance, 1e-9)
	assert.Equal(t, 3, st.Score)
	assert.InDelta(t, 300.5, st.Speed, 1e-9)
	assert.Equal(t, uint64(1), e.Snapshot().Frame)
}

func TestTimeScaleFollowsElapsedTime(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())
	startBare(t, e)

	// Two baseline frames elapse in one refresh: everything moves twice as far.
	q.Advance(2 * baseline)
	assert.InDelta(t, 12.0, e.State().Distance, 1e-9)
}

func TestLongStallIsClamped(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())
	startBare(t, e)

	q.Advance(10 * time.Second)

	maxScale := e.cfg.Physics.MaxFrameDeltaMS / e.cfg.Physics.FrameBaselineMS
	assert.InDelta(t, 6*maxScale, e.State().Distance, 1e-6)
}

func TestCollectiblePickup(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())
	startBare(t, e)

	player := e.entities[0]
	coin := place(e, KindCollectible, player.Pos.X, player.Pos.Y, player.Size.X, player.Size.Y)
	before := e.State()

	e.collide()

	assert.Equal(t, 1, e.State().Coins)
	assert.Equal(t, before.Score+10, e.State().Score)

	q.Advance(baseline)
	s := e.Snapshot()
	_, found := findEntity(s, coin)
	assert.False(t, found, "collected entity must not appear in snapshots")
	assert.Equal(t, 1, s.State.Coins)
	assert.Equal(t, int(math.Floor(s.State.Distance/100))+10, s.State.Score)
}

func TestPickupThroughFrameLoop(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())
	startBare(t, e)

	player := e.entities[0]
	gem := place(e, KindCollectible, player.Pos.X+10, player.Pos.Y, 30, 30)

	q.Advance(baseline)

	s := e.Snapshot()
	_, found := findEntity(s, gem)
	assert.False(t, found)
	assert.Equal(t, 1, s.State.Coins)
	assert.Equal(t, 10, s.State.Score, "distance 6 is worth 0 points; the pickup is worth 10")
}

func TestObstacleEndsRun(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())
	startBare(t, e)

	player := e.entities[0]
	place(e, KindObstacle, player.Pos.X+20, player.Pos.Y, 40, 40)

	q.Advance(baseline)

	s := e.Snapshot()
	assert.True(t, s.State.GameOver)
	assert.Equal(t, PhaseOver, s.Phase)
	assert.Zero(t, q.Pending(), "no frame may be scheduled after game over")

	for i := 0; i < 10; i++ {
		q.Advance(baseline)
	}
	assert.True(t, e.State().GameOver, "game over must persist until reset")
	assert.Equal(t, s.Frame, e.Snapshot().Frame)

	e.Reset()
	assert.False(t, e.State().GameOver)
	assert.Equal(t, PhaseIdle, e.Phase())
}

func TestPickupAfterGameOverInSamePassCounts(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())
	startBare(t, e)

	player := e.entities[0]
	place(e, KindObstacle, player.Pos.X+20, player.Pos.Y, 40, 40)
	place(e, KindCollectible, player.Pos.X+5, player.Pos.Y+5, 30, 30)

	q.Advance(baseline)

	st := e.State()
	assert.True(t, st.GameOver)
	assert.Equal(t, 1, st.Coins)
}

func TestNoPlayerMeansNoCollision(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig())
	startBare(t, e)
	e.entities = e.entities[:0]
	place(e, KindObstacle, 100, 300, 50, 50)
	place(e, KindCollectible, 100, 300, 30, 30)

	assert.NotPanics(t, func() {
		e.collide()
		e.Jump()
	})
	assert.False(t, e.State().GameOver)
	assert.Zero(t, e.State().Coins)
}

func TestJumpWhenGrounded(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())
	startBare(t, e)

	e.Jump()
	assert.Equal(t, e.cfg.Physics.JumpImpulse, e.entities[0].Vel.Y)

	q.Advance(baseline)
	p, ok := e.Snapshot().Player()
	require.True(t, ok)
	assert.Less(t, p.Pos.Y, e.cfg.GroundY(), "player should leave the ground")
}

func TestJumpWhileAirborneIsNoop(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())
	startBare(t, e)

	e.Jump()
	q.Advance(baseline)

	vy := e.entities[0].Vel.Y
	require.Less(t, e.entities[0].Pos.Y, e.cfg.GroundY())

	e.Jump()
	assert.Equal(t, vy, e.entities[0].Vel.Y)
}

func TestPlayerLandsOnGround(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())
	startBare(t, e)

	e.Jump()
	for i := 0; i < 120; i++ {
		q.Advance(baseline)
	}

	p, ok := e.Snapshot().Player()
	require.True(t, ok)
	assert.Equal(t, e.cfg.GroundY(), p.Pos.Y)
	assert.Zero(t, p.Vel.Y)
}

func TestOffscreenEntityRemoved(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())
	startBare(t, e)

	// Right edge at x=5; one frame at speed 6 pushes it to -1.
	gone := place(e, KindObstacle, -45, 0, 50, 50)
	// Right edge lands exactly on x=0: still on screen.
	edge := place(e, KindCollectible, -24, 0, 30, 30)

	q.Advance(baseline)

	s := e.Snapshot()
	_, found := findEntity(s, gone)
	assert.False(t, found)
	_, found = findEntity(s, edge)
	assert.True(t, found)
}

func TestPauseFreezesWorld(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())
	startBare(t, e)
	crate := place(e, KindObstacle, 800, 300, 50, 50)

	q.Advance(baseline)
	e.Pause()
	paused := e.Snapshot()
	assert.True(t, paused.State.Paused)
	assert.Equal(t, PhasePaused, paused.Phase)
	assert.Zero(t, q.Pending(), "pause must cancel the pending frame")

	q.Advance(5000 * time.Millisecond)
	during := e.Snapshot()
	assert.Equal(t, paused.State, during.State)
	assert.Equal(t, paused.Entities, during.Entities)

	e.Resume()
	assert.False(t, e.State().Paused)
	q.Advance(baseline)

	before, _ := findEntity(paused, crate)
	after, ok := findEntity(e.Snapshot(), crate)
	require.True(t, ok)
	assert.InDelta(t, paused.State.Speed, before.Pos.X-after.Pos.X, 1e-9,
		"resume must not replay the paused interval")
	assert.InDelta(t, paused.State.Distance+paused.State.Speed, e.State().Distance, 1e-9)
}

func TestPauseAndResumeOutsideTheirPhasesAreNoops(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())

	e.Pause()
	e.Resume()
	assert.Equal(t, PhaseIdle, e.Phase())
	assert.Zero(t, q.Pending())

	e.Start()
	e.Resume()
	assert.Equal(t, 1, q.Pending(), "resume while running must not arm a second loop")
}

func TestStopCancelsFrame(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())
	startBare(t, e)
	q.Advance(baseline)

	e.Stop()
	assert.True(t, e.State().GameOver)
	assert.Equal(t, PhaseOver, e.Phase())
	assert.Zero(t, q.Pending())

	q.Advance(baseline)
	assert.Equal(t, uint64(1), e.Snapshot().Frame)
}

func TestStopWhilePausedClearsPause(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig())
	e.Start()
	e.Pause()
	e.Stop()

	st := e.State()
	assert.True(t, st.GameOver)
	assert.False(t, st.Paused)
}

func TestStartWhileRunningRestartsSingleLoop(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())
	e.Start()
	e.Start()

	assert.Equal(t, 1, q.Pending())
	assert.Equal(t, 1, q.Advance(baseline))
	assert.Equal(t, uint64(1), e.Snapshot().Frame)
}

func TestResetKeepsHighScore(t *testing.T) {
	cfg := quietConfig()
	cfg.Physics.InitialSpeed = 300
	e, q := newTestEngine(t, cfg)

	startBare(t, e)
	for i := 0; i < 5; i++ {
		q.Advance(baseline)
	}
	first := e.State().Score
	require.Greater(t, first, 0)

	e.Reset()
	st := e.State()
	assert.Equal(t, first, st.HighScore)
	assert.Zero(t, st.Score)
	assert.Zero(t, st.Distance)
	assert.Zero(t, st.Coins)
	assert.Equal(t, 300.0, st.Speed)

	s := e.Snapshot()
	assert.Equal(t, 1, s.Count(KindPlayer))
	assert.Equal(t, 1, s.Count(KindObstacle))
	assert.Equal(t, 1, s.Count(KindCollectible))

	// A shorter run does not lower the high score.
	startBare(t, e)
	q.Advance(baseline)
	e.Reset()
	assert.Equal(t, first, e.State().HighScore)
}

func TestWithHighScoreSeed(t *testing.T) {
	e := New(quietConfig(), frame.NewQueue(), WithHighScore(420))
	assert.Equal(t, 420, e.State().HighScore)
}

func TestSpeedCap(t *testing.T) {
	cfg := quietConfig()
	cfg.Physics.SpeedRamp = 1
	cfg.Physics.MaxSpeed = 8
	e, q := newTestEngine(t, cfg)
	startBare(t, e)

	for i := 0; i < 10; i++ {
		q.Advance(baseline)
	}
	assert.Equal(t, 8.0, e.State().Speed)
}

func TestApplyActions(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())

	e.Apply(core.ActionJump)
	assert.Equal(t, PhaseRunning, e.Phase(), "jump starts an idle engine")

	e.Apply(core.ActionPause)
	assert.Equal(t, PhasePaused, e.Phase())
	e.Apply(core.ActionPause)
	assert.Equal(t, PhaseRunning, e.Phase())
	assert.Equal(t, 1, q.Pending())

	e.Stop()
	e.Apply(core.ActionRestart)
	assert.Equal(t, PhaseRunning, e.Phase())
	assert.False(t, e.State().GameOver)
}

func TestSameSeedSameRun(t *testing.T) {
	run := func() Snapshot {
		q := frame.NewQueue()
		e := New(config.DefaultRunnerConfig(), q, WithSeed(99))
		e.Start()
		for i := 0; i < 300 && e.Phase() == PhaseRunning; i++ {
			if i%25 == 0 {
				e.Jump()
			}
			q.Advance(baseline)
		}
		return e.Snapshot()
	}

	assert.Equal(t, run(), run())
}

func TestFrameInvariants(t *testing.T) {
	q := frame.NewQueue()
	sizes := make(map[uuid.UUID]core.Vec)
	lastSpeed := 0.0
	lastDistance := 0.0
	frames := 0

	check := ObserverFunc(func(s Snapshot) {
		frames++
		st := s.State

		assert.Equal(t, int(math.Floor(st.Distance/100))+10*st.Coins, st.Score, "frame %d", s.Frame)
		assert.GreaterOrEqual(t, st.Speed, lastSpeed)
		assert.GreaterOrEqual(t, st.Distance, lastDistance)
		lastSpeed, lastDistance = st.Speed, st.Distance

		assert.Equal(t, 1, s.Count(KindPlayer))
		for _, ent := range s.Entities {
			assert.True(t, ent.Active)
			assert.GreaterOrEqual(t, ent.Pos.X+ent.Size.X, 0.0, "off-screen entity %s in snapshot", ent.ID)
			if prev, seen := sizes[ent.ID]; seen {
				assert.Equal(t, prev, ent.Size, "entity %s changed size", ent.ID)
			}
			sizes[ent.ID] = ent.Size
		}
	})

	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.Collectibles.Chance = 0.05
	e := New(cfg, q, WithSeed(2024), WithObserver(check))

	for run := 0; run < 5; run++ {
		e.Start()
		lastSpeed, lastDistance = 0, 0
		for i := 0; i < 2000 && e.Phase() == PhaseRunning; i++ {
			if i%40 == 0 {
				e.Jump()
			}
			q.Advance(baseline)
		}
	}
	assert.Greater(t, frames, 0)
}

func TestObserverSeesCompletedFrames(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())
	mb := NewMailbox()
	e.Observe(mb)
	startBare(t, e)

	q.Advance(baseline)
	q.Advance(baseline)

	s, ok := mb.Latest()
	require.True(t, ok)
	assert.Equal(t, uint64(2), s.Frame, "mailbox keeps only the latest frame")
	assert.Equal(t, e.Snapshot(), s)

	_, ok = mb.Latest()
	assert.False(t, ok)
}

func TestObserverMayPauseFromCallback(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())
	e.Observe(ObserverFunc(func(s Snapshot) {
		if s.Frame == 3 {
			e.Pause()
		}
	}))
	startBare(t, e)

	for i := 0; i < 10; i++ {
		q.Advance(baseline)
	}
	assert.Equal(t, uint64(3), e.Snapshot().Frame)
	assert.Zero(t, q.Pending())
}

func TestSnapshotIsIsolated(t *testing.T) {
	e, q := newTestEngine(t, quietConfig())
	startBare(t, e)
	place(e, KindObstacle, 800, 300, 50, 50)

	s := e.Snapshot()
	x := s.Entities[1].Pos.X
	q.Advance(baseline)

	assert.Equal(t, x, s.Entities[1].Pos.X, "retained snapshot must not change")

	s.Entities[1].Pos.X = -1000
	assert.NotEqual(t, -1000.0, e.Snapshot().Entities[1].Pos.X)
}

func TestSpawnUsesCatalogAndRightEdge(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	e, _ := newTestEngine(t, cfg)

	names := map[string]config.Variant{}
	for _, v := range cfg.Spawn.Obstacles.Variants {
		names[v.Name] = v
	}

	for i := 0; i < 200; i++ {
		e.spawn(KindObstacle, cfg.Spawn.Obstacles)
	}
	for _, ent := range e.entities {
		if ent.Kind != KindObstacle {
			continue
		}
		v, ok := names[ent.Variant]
		require.True(t, ok, "unknown variant %q", ent.Variant)
		assert.Equal(t, core.Vec{X: v.Width, Y: v.Height}, ent.Size)
		assert.GreaterOrEqual(t, ent.Pos.X, cfg.World.Width)
		assert.LessOrEqual(t, ent.Pos.X, cfg.World.Width+cfg.Spawn.Obstacles.Jitter)
		assert.LessOrEqual(t, ent.Pos.Y, cfg.GroundY())
		assert.GreaterOrEqual(t, ent.Pos.Y, cfg.GroundY()-cfg.Spawn.Obstacles.MaxLift)
	}
}

func TestSpawnRatesFollowChance(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.Obstacles.Chance = 1
	cfg.Spawn.Collectibles.Chance = 1
	e, _ := newTestEngine(t, cfg)
	e.entities = e.entities[:1]

	e.rollSpawns(1)
	assert.Equal(t, 2, len(e.entities)-1, "both rolls fire in the same frame")
}

// Package headless drives the engine without a display, pumping the frame
// queue with a fixed time step. Used by `runner simulate` and for soak tests.
package headless

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/marki32/scain-ai/internal/autopilot"
	"github.com/marki32/scain-ai/internal/config"
	"github.com/marki32/scain-ai/internal/frame"
	"github.com/marki32/scain-ai/internal/platform/recorder"
	"github.com/marki32/scain-ai/internal/runner"
)

// Options configures a headless session.
type Options struct {
	Runner     config.RunnerConfig
	Seed       int64
	Runs       int           // Number of runs; at least 1
	MaxFrames  int           // Per-run cap; 0 means no cap
	FrameDelta time.Duration // Simulated time per refresh
	Autopilot  bool
	TraceEvery uint64 // Log every Nth frame; 0 disables tracing
	Logger     *log.Logger
	Recorder   *recorder.Recorder // Optional; stores every finished run
}

// Result summarizes one run.
type Result struct {
	Run      int
	Score    int
	Distance float64
	Coins    int
	Speed    float64
	Frames   uint64
	Capped   bool // Stopped by MaxFrames rather than a collision
}

// Run plays opts.Runs runs back to back on one engine, so the engine's high
// score carries across them. It returns early with ctx.Err() when cancelled,
// together with the results finished so far.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.FrameDelta <= 0 {
		us := math.Round(opts.Runner.Physics.FrameBaselineMS * 1000)
		opts.FrameDelta = time.Duration(us) * time.Microsecond
	}
	runs := max(opts.Runs, 1)

	queue := frame.NewQueue()
	mailbox := runner.NewMailbox()
	engine := runner.New(opts.Runner, queue,
		runner.WithSeed(opts.Seed),
		runner.WithLogger(logger),
		runner.WithObserver(mailbox),
	)

	var pilot *autopilot.Pilot
	if opts.Autopilot {
		pilot = autopilot.New()
	}

	results := make([]Result, 0, runs)
	for i := 1; i <= runs; i++ {
		engine.Start()

		capped, err := play(ctx, engine, queue, mailbox, pilot, opts, logger)
		if err != nil {
			return results, err
		}

		snap := engine.Snapshot()
		res := Result{
			Run:      i,
			Score:    snap.State.Score,
			Distance: snap.State.Distance,
			Coins:    snap.State.Coins,
			Speed:    snap.State.Speed,
			Frames:   snap.Frame,
			Capped:   capped,
		}
		results = append(results, res)
		logger.Info("run finished",
			"run", res.Run,
			"score", res.Score,
			"coins", res.Coins,
			"distance", int(res.Distance),
			"frames", res.Frames,
			"capped", res.Capped,
		)

		if opts.Recorder != nil {
			opts.Recorder.Finish(engine)
			opts.Recorder.Rearm()
		}
	}

	return results, nil
}

// play advances one run until it ends or hits the frame cap. The run is
// always left in the Over phase.
func play(ctx context.Context, e *runner.Engine, q *frame.Queue, mb *runner.Mailbox,
	pilot *autopilot.Pilot, opts Options, logger *log.Logger,
) (capped bool, err error) {
	for n := 0; e.Phase() == runner.PhaseRunning; n++ {
		if opts.MaxFrames > 0 && n >= opts.MaxFrames {
			e.Stop()
			return true, nil
		}
		if n%256 == 0 {
			if err := ctx.Err(); err != nil {
				e.Stop()
				return false, err
			}
		}

		if pilot != nil {
			e.Apply(pilot.Act(e.Snapshot()))
		}
		q.Advance(opts.FrameDelta)

		if s, ok := mb.Latest(); ok && opts.TraceEvery > 0 && s.Frame%opts.TraceEvery == 0 {
			player, _ := s.Player()
			logger.Debug("frame",
				"frame", s.Frame,
				"score", s.State.Score,
				"speed", s.State.Speed,
				"entities", len(s.Entities),
				"player_y", player.Pos.Y,
			)
		}
	}
	return false, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marki32/scain-ai/internal/platform/headless"
	"github.com/marki32/scain-ai/internal/platform/recorder"
)

var (
	flagSimRuns      int
	flagSimMaxFrames int
	flagSimAutopilot bool
	flagSimTrace     uint64
	flagSimSave      bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play runs headless and print a summary",
	Long: `Run the engine without a display at a fixed time step.

Without --autopilot nobody jumps, so each run ends at the first obstacle.
Same --seed and flags give the same results.

Examples:
  runner simulate
  runner simulate --runs 20 --seed 42 --difficulty hard
  runner simulate --max-frames 5000 --trace 600 --log-level debug
  runner simulate --runs 5 --save`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simulateCmd.Flags().IntVar(&flagSimMaxFrames, "max-frames", 0, "Stop a run after this many frames (0 = until game over)")
	simulateCmd.Flags().BoolVar(&flagSimAutopilot, "autopilot", true, "Let the autopilot jump")
	simulateCmd.Flags().Uint64Var(&flagSimTrace, "trace", 0, "Log every Nth frame at debug level (0 = off)")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store finished runs in the runs database")
}

func runSimulate(_ *cobra.Command, _ []string) {
	cfg, preset := mustLoadRunnerConfig()
	logger := newLogger("simulate")

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := headless.Options{
		Runner:     cfg,
		Seed:       seed,
		Runs:       flagSimRuns,
		MaxFrames:  flagSimMaxFrames,
		Autopilot:  flagSimAutopilot,
		TraceEvery: flagSimTrace,
		Logger:     logger,
	}

	if flagSimSave {
		store := openStoreOrWarn()
		if store != nil {
			defer store.Close()
			opts.Recorder = recorder.New(store, string(preset), seed, logger)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	results, err := headless.Run(ctx, opts)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Simulation - %s, seed %d\n", preset, seed)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No runs finished.")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %-7s  %-8s  %s\n", "Run", "Score", "Dist", "Coins", "Speed", "Frames", "End")
	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %-7s  %-8s  %s\n", "---", "-----", "----", "-----", "-----", "------", "---")

	best, total := 0, 0
	for _, r := range results {
		end := "crash"
		if r.Capped {
			end = "cap"
		}
		fmt.Printf("  %-4d  %-8d  %-8d  %-6d  %-7.2f  %-8d  %s\n",
			r.Run, r.Score, int(r.Distance), r.Coins, r.Speed, r.Frames, end)
		best = max(best, r.Score)
		total += r.Score
	}

	fmt.Println()
	fmt.Printf("Best: %d  Avg: %.1f  (%s)\n", best, float64(total)/float64(len(results)), time.Since(started).Round(time.Millisecond))
	if err != nil {
		fmt.Println("Interrupted.")
	}
}

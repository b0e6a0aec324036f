package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marki32/scain-ai/internal/core"
	"github.com/marki32/scain-ai/internal/platform/tui"
)

var (
	flagAutopilot bool
	flagLogFile   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal.

Controls:
  Space/Up   - Jump (starts the run)
  P/Esc      - Pause / resume
  R          - Restart (after game over or while paused)
  A          - Toggle autopilot
  Ctrl+S     - Save a screenshot to ~/.runner/screenshots
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower start, gentler ramp, fewer obstacles
  normal - The config as written
  hard   - Faster start, steeper ramp, more obstacles
  fixed  - No speed ramp

Examples:
  runner play
  runner play --difficulty easy
  runner play --config ./my-runner.yaml
  runner play --autopilot --log-file runner.log`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Start in attract mode (autopilot plays, runs are not saved)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write engine logs to this file (the terminal is busy with the game)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, preset := mustLoadRunnerConfig()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	settings := tui.Settings{
		Runner: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Difficulty: preset,
		Autopilot:  flagAutopilot,
	}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		settings.Logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "runner"})
		if level, err := log.ParseLevel(flagLogLevel); err == nil {
			settings.Logger.SetLevel(level)
		}
	}

	store := openStoreOrWarn()

	runErr := tui.Run(store, settings)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

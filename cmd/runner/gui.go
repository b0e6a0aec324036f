package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marki32/scain-ai/internal/core"
	"github.com/marki32/scain-ai/internal/platform/gui"
)

var flagGUIAutopilot bool

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play with the keyboard or mouse.

Controls:
  Space/Up/W/Click - Jump (starts the run)
  P/Esc            - Pause / resume
  R                - Restart (after game over or while paused)
  A                - Toggle autopilot
  Q                - Quit

Examples:
  runner gui
  runner gui --fps 120 --difficulty hard`,
	Run: runGUI,
}

func init() {
	guiCmd.Flags().BoolVar(&flagGUIAutopilot, "autopilot", false, "Start in attract mode (autopilot plays, runs are not saved)")
}

func runGUI(_ *cobra.Command, _ []string) {
	cfg, preset := mustLoadRunnerConfig()
	store := openStoreOrWarn()

	runErr := gui.Run(store, gui.Settings{
		Runner: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  int(cfg.World.Width),
			ScreenH:  int(cfg.World.Height),
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Difficulty: preset,
		Autopilot:  flagGUIAutopilot,
		Logger:     newLogger("runner"),
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

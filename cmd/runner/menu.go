package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marki32/scain-ai/internal/config"
	"github.com/marki32/scain-ai/internal/core"
	"github.com/marki32/scain-ai/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a difficulty picker menu",
	Long: `Start the runner in interactive menu mode.

Pick a difficulty (or the autopilot demo) and play. After quitting a run
you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - Scoreboard
  Q            - Quit

Examples:
  runner menu
  runner menu --fps 30
  runner menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStoreOrWarn()

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	current := config.DifficultyPreset(flagDifficulty)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, rt, current)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		rt = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			if err := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			continue
		}

		current = menuResult.Difficulty
		cfg, preset, err := loadRunnerConfig(string(current))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			break
		}

		settings := tui.Settings{
			Runner:     cfg,
			Runtime:    rt,
			Difficulty: preset,
			Autopilot:  menuResult.Autopilot,
		}
		if flagSeed == 0 {
			settings.Runtime.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(store, settings); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}

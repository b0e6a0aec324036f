// runner is an endless runner that plays in the terminal, in a desktop window,
// over SSH, or headless.
//
// Usage:
//
//	runner play              - Play in the terminal
//	runner menu              - Pick a difficulty, then play
//	runner gui               - Play in a desktop window
//	runner simulate          - Run headless with an autopilot and print a summary
//	runner scores            - Show the best and latest runs
//	runner serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Display refresh rate (default: 60)
//	--seed <value>        - RNG seed for reproducible runs
//	--db <path>           - Run history database (default: ~/.runner/runs.db)
//	--config <path>       - Custom runner config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/marki32/scain-ai/internal/config"
	"github.com/marki32/scain-ai/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Endless runner - jump the obstacles, grab the coins",
	Long: `An endless runner: the world scrolls ever faster, obstacles end the
run and collectibles are worth bonus points.

Available commands:
  play      - Play in the terminal
  menu      - Difficulty picker menu
  gui       - Play in a desktop window
  simulate  - Headless runs with an autopilot
  scores    - View run history
  serve     - Start SSH server for remote play

Examples:
  runner play
  runner play --difficulty hard
  runner gui --seed 42
  runner simulate --runs 10 --max-frames 20000
  runner serve --ssh :2222
  runner scores --tui`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Display refresh rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runner/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadRunnerConfig resolves the config file and applies the difficulty preset.
func loadRunnerConfig(difficulty string) (config.RunnerConfig, config.DifficultyPreset, error) {
	preset, err := config.ParseDifficulty(difficulty)
	if err != nil {
		return config.RunnerConfig{}, "", err
	}

	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return cfg, "", err
	}

	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, "", fmt.Errorf("invalid config after %s preset: %w", preset, err)
	}

	if preset == "" {
		preset = config.DifficultyNormal
	}
	return cfg, preset, nil
}

// mustLoadRunnerConfig exits on config errors.
func mustLoadRunnerConfig() (config.RunnerConfig, config.DifficultyPreset) {
	cfg, preset, err := loadRunnerConfig(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg, preset
}

// newLogger creates a timestamped logger at the --log-level level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// openStoreOrWarn opens the run history; play continues without it.
func openStoreOrWarn() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

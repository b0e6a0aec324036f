package config

import (
	"fmt"
	"math"
)

// presetScaling is how a preset bends the base physics.
type presetScaling struct {
	speed        float64 // Initial speed multiplier
	ramp         float64 // Speed ramp multiplier
	obstacleOdds float64 // Obstacle chance multiplier
	disableRamp  bool
}

var presets = map[DifficultyPreset]presetScaling{
	DifficultyEasy:   {speed: 0.8, ramp: 0.5, obstacleOdds: 0.75},
	DifficultyNormal: {speed: 1, ramp: 1, obstacleOdds: 1},
	DifficultyHard:   {speed: 1.25, ramp: 2, obstacleOdds: 1.5},
	DifficultyFixed:  {speed: 1, ramp: 1, obstacleOdds: 1, disableRamp: true},
}

// ParseDifficulty converts a CLI string into a preset.
// An empty string means "use the config as is".
func ParseDifficulty(s string) (DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	p := DifficultyPreset(s)
	if _, ok := presets[p]; !ok {
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
	return p, nil
}

// ApplyPreset modifies the config based on a difficulty preset.
// Unknown or empty presets leave the config untouched.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	s, ok := presets[preset]
	if !ok {
		return
	}

	cfg.Physics.InitialSpeed *= s.speed
	cfg.Physics.SpeedRamp *= s.ramp
	if s.disableRamp {
		cfg.Physics.SpeedRamp = 0
	}
	cfg.Spawn.Obstacles.Chance = math.Min(1, cfg.Spawn.Obstacles.Chance*s.obstacleOdds)

	if cfg.Physics.MaxSpeed > 0 && cfg.Physics.MaxSpeed < cfg.Physics.InitialSpeed {
		cfg.Physics.MaxSpeed = cfg.Physics.InitialSpeed
	}
}

package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner configuration.
// It mirrors defaults/runner.yaml and is used if the embedded file fails to parse.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			Width:        1000,
			Height:       500,
			GroundOffset: 200,
		},
		Physics: PhysicsConfig{
			Gravity:         0.8,
			JumpImpulse:     -16,
			InitialSpeed:    6,
			SpeedRamp:       0.002,
			MaxSpeed:        0,
			FrameBaselineMS: 16.67,
			MaxFrameDeltaMS: 250,
		},
		Player: PlayerConfig{
			X:      100,
			Width:  50,
			Height: 50,
		},
		Spawn: SpawnConfig{
			Obstacles: SpawnRule{
				Chance:  0.02,
				Jitter:  200,
				MaxLift: 100,
				Variants: []Variant{
					{Name: "crate", Width: 50, Height: 50},
					{Name: "bone", Width: 70, Height: 40},
					{Name: "stone", Width: 40, Height: 45},
				},
			},
			Collectibles: SpawnRule{
				Chance:  0.01,
				Jitter:  300,
				MaxLift: 150,
				Variants: []Variant{
					{Name: "coin", Width: 30, Height: 30},
					{Name: "gem", Width: 30, Height: 30},
					{Name: "chest", Width: 30, Height: 30},
				},
			},
		},
		Scoring: ScoringConfig{
			DistancePerPoint: 100,
			PickupBonus:      10,
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `runner config`.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}

// Package config provides YAML-based runner configuration loading and
// difficulty presets.
package config

// RunnerConfig contains all tunables of the endless runner simulation.
type RunnerConfig struct {
	World   WorldConfig   `yaml:"world"`
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// WorldConfig defines the simulated screen in world pixels.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundOffset float64 `yaml:"ground_offset"` // Ground line sits this far above the bottom edge
}

// PhysicsConfig defines per-frame physics. All rates are per baseline frame.
type PhysicsConfig struct {
	Gravity         float64 `yaml:"gravity"`
	JumpImpulse     float64 `yaml:"jump_impulse"` // Negative: up
	InitialSpeed    float64 `yaml:"initial_speed"`
	SpeedRamp       float64 `yaml:"speed_ramp"`
	MaxSpeed        float64 `yaml:"max_speed"` // 0 = unbounded
	FrameBaselineMS float64 `yaml:"frame_baseline_ms"`
	MaxFrameDeltaMS float64 `yaml:"max_frame_delta_ms"` // 0 = no clamp
}

// PlayerConfig defines the player's fixed column and size.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SpawnConfig holds the spawn rules for each spawnable kind.
type SpawnConfig struct {
	Obstacles    SpawnRule `yaml:"obstacles"`
	Collectibles SpawnRule `yaml:"collectibles"`
}

// SpawnRule describes how one kind of entity enters the world.
type SpawnRule struct {
	Chance   float64   `yaml:"chance"`   // Probability per baseline frame
	Jitter   float64   `yaml:"jitter"`   // Max extra distance past the right edge
	MaxLift  float64   `yaml:"max_lift"` // Max height above the ground line
	Variants []Variant `yaml:"variants"` // Picked uniformly
}

// Variant is one catalog entry, e.g. a crate or a coin.
type Variant struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ScoringConfig defines how distance and pickups turn into points.
type ScoringConfig struct {
	DistancePerPoint float64 `yaml:"distance_per_point"`
	PickupBonus      int     `yaml:"pickup_bonus"`
}

// GroundY returns the resting y of the player's top edge.
func (c RunnerConfig) GroundY() float64 {
	return c.World.Height - c.World.GroundOffset
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

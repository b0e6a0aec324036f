package config

import (
	"errors"
	"fmt"
)

// Validate checks the config for values the simulation cannot run with.
// All problems are reported together.
func (c RunnerConfig) Validate() error {
	var errs []error
	bad := func(field string, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %s", field, fmt.Sprintf(format, args...)))
	}

	if c.World.Width <= 0 {
		bad("world.width", "must be positive, got %v", c.World.Width)
	}
	if c.World.Height <= 0 {
		bad("world.height", "must be positive, got %v", c.World.Height)
	}
	if c.World.GroundOffset < 0 || c.World.GroundOffset >= c.World.Height {
		bad("world.ground_offset", "must be in [0, height), got %v", c.World.GroundOffset)
	}

	if c.Physics.Gravity <= 0 {
		bad("physics.gravity", "must be positive, got %v", c.Physics.Gravity)
	}
	if c.Physics.JumpImpulse >= 0 {
		bad("physics.jump_impulse", "must be negative (up), got %v", c.Physics.JumpImpulse)
	}
	if c.Physics.InitialSpeed < 0 {
		bad("physics.initial_speed", "must not be negative, got %v", c.Physics.InitialSpeed)
	}
	if c.Physics.SpeedRamp < 0 {
		bad("physics.speed_ramp", "must not be negative, got %v", c.Physics.SpeedRamp)
	}
	if c.Physics.MaxSpeed != 0 && c.Physics.MaxSpeed < c.Physics.InitialSpeed {
		bad("physics.max_speed", "must be 0 or at least initial_speed, got %v", c.Physics.MaxSpeed)
	}
	if c.Physics.FrameBaselineMS <= 0 {
		bad("physics.frame_baseline_ms", "must be positive, got %v", c.Physics.FrameBaselineMS)
	}
	if c.Physics.MaxFrameDeltaMS < 0 {
		bad("physics.max_frame_delta_ms", "must not be negative, got %v", c.Physics.MaxFrameDeltaMS)
	}

	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		bad("player", "size must be positive, got %vx%v", c.Player.Width, c.Player.Height)
	}

	errs = append(errs, c.Spawn.Obstacles.validate("spawn.obstacles")...)
	errs = append(errs, c.Spawn.Collectibles.validate("spawn.collectibles")...)

	if c.Scoring.DistancePerPoint <= 0 {
		bad("scoring.distance_per_point", "must be positive, got %v", c.Scoring.DistancePerPoint)
	}
	if c.Scoring.PickupBonus < 0 {
		bad("scoring.pickup_bonus", "must not be negative, got %v", c.Scoring.PickupBonus)
	}

	return errors.Join(errs...)
}

func (r SpawnRule) validate(prefix string) []error {
	var errs []error
	if r.Chance < 0 || r.Chance > 1 {
		errs = append(errs, fmt.Errorf("%s.chance: must be in [0, 1], got %v", prefix, r.Chance))
	}
	if r.Jitter < 0 {
		errs = append(errs, fmt.Errorf("%s.jitter: must not be negative, got %v", prefix, r.Jitter))
	}
	if r.MaxLift < 0 {
		errs = append(errs, fmt.Errorf("%s.max_lift: must not be negative, got %v", prefix, r.MaxLift))
	}
	if len(r.Variants) == 0 {
		errs = append(errs, fmt.Errorf("%s.variants: at least one variant required", prefix))
	}
	for i, v := range r.Variants {
		if v.Name == "" {
			errs = append(errs, fmt.Errorf("%s.variants[%d].name: required", prefix, i))
		}
		if v.Width <= 0 || v.Height <= 0 {
			errs = append(errs, fmt.Errorf("%s.variants[%d]: size must be positive, got %vx%v", prefix, i, v.Width, v.Height))
		}
	}
	return errs
}

package runner

import (
	"math"

	"github.com/google/uuid"

	"github.com/marki32/scain-ai/internal/config"
	"github.com/marki32/scain-ai/internal/core"
)

// step advances the world by ts baseline frames.
func (e *Engine) step(ts float64) {
	e.integrate(ts)
	e.advanceRun(ts)
	e.rollSpawns(ts)
	e.collide()
	e.cleanup()
}

// integrate moves every active entity and retires the ones that left the screen.
func (e *Engine) integrate(ts float64) {
	groundY := e.cfg.GroundY()
	gravity := e.cfg.Physics.Gravity

	for i := range e.entities {
		ent := &e.entities[i]
		if !ent.Active {
			continue
		}

		switch ent.Kind {
		case KindPlayer:
			ent.Vel.Y += gravity * ts
			ent.Pos.Y += ent.Vel.Y * ts
			if ent.Pos.Y >= groundY {
				ent.Pos.Y = groundY
				ent.Vel.Y = 0
			}
		case KindObstacle, KindCollectible:
			ent.Pos.X -= e.state.Speed * ts
		}

		if ent.Pos.X+ent.Size.X < 0 {
			ent.Active = false
		}
	}
}

// advanceRun updates distance, score and speed.
func (e *Engine) advanceRun(ts float64) {
	e.state.Distance += e.state.Speed * ts
	e.state.Score = e.distancePoints() + e.bonus

	speed := e.state.Speed + e.cfg.Physics.SpeedRamp*ts
	if limit := e.cfg.Physics.MaxSpeed; limit > 0 && speed > limit {
		speed = math.Max(limit, e.state.Speed)
	}
	e.state.Speed = speed
}

func (e *Engine) distancePoints() int {
	return int(math.Floor(e.state.Distance / e.cfg.Scoring.DistancePerPoint))
}

// rollSpawns makes the two independent per-frame spawn rolls.
func (e *Engine) rollSpawns(ts float64) {
	if e.rng.Float64() < e.cfg.Spawn.Obstacles.Chance*ts {
		e.spawn(KindObstacle, e.cfg.Spawn.Obstacles)
	}
	if e.rng.Float64() < e.cfg.Spawn.Collectibles.Chance*ts {
		e.spawn(KindCollectible, e.cfg.Spawn.Collectibles)
	}
}

// collide tests the player against every other active entity. The scan does
// not stop at game over: pickups later in the same pass still count.
func (e *Engine) collide() {
	pi := e.playerIndex()
	if pi < 0 {
		return
	}
	player := e.entities[pi].Box()

	for i := range e.entities {
		other := &e.entities[i]
		if i == pi || !other.Active || !player.Overlaps(other.Box()) {
			continue
		}

		switch other.Kind {
		case KindObstacle:
			e.state.GameOver = true
		case KindCollectible:
			other.Active = false
			e.state.Coins++
			e.bonus += e.cfg.Scoring.PickupBonus
			e.state.Score += e.cfg.Scoring.PickupBonus
		}
	}
}

// cleanup drops inactive entities in place.
func (e *Engine) cleanup() {
	kept := e.entities[:0]
	for _, ent := range e.entities {
		if ent.Active {
			kept = append(kept, ent)
		}
	}
	clear(e.entities[len(kept):])
	e.entities = kept
}

func (e *Engine) playerIndex() int {
	for i := range e.entities {
		if e.entities[i].Kind == KindPlayer && e.entities[i].Active {
			return i
		}
	}
	return -1
}

func (e *Engine) spawnPlayer() {
	p := e.cfg.Player
	e.entities = append(e.entities, Entity{
		ID:     e.newID(),
		Kind:   KindPlayer,
		Pos:    core.Vec{X: p.X, Y: e.cfg.GroundY()},
		Size:   core.Vec{X: p.Width, Y: p.Height},
		Active: true,
	})
}

// spawn places one entity from the rule's catalog past the right edge,
// lifted a random height above the ground line.
func (e *Engine) spawn(kind Kind, rule config.SpawnRule) {
	if len(rule.Variants) == 0 {
		return
	}
	v := rule.Variants[e.rng.Intn(len(rule.Variants))]

	e.entities = append(e.entities, Entity{
		ID:      e.newID(),
		Kind:    kind,
		Variant: v.Name,
		Pos: core.Vec{
			X: e.cfg.World.Width + e.rng.Float64()*rule.Jitter,
			Y: e.cfg.GroundY() - e.rng.Float64()*rule.MaxLift,
		},
		Size:   core.Vec{X: v.Width, Y: v.Height},
		Active: true,
	})
}

// newID draws a UUID from the engine RNG so seeded runs get stable IDs.
func (e *Engine) newID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(e.rng)
	if err != nil {
		return uuid.New()
	}
	return id
}

// Package runner implements the endless runner simulation engine: one
// authoritative entity list plus scalar run state, advanced once per display
// refresh through a frame.Scheduler.
package runner

import (
	"github.com/google/uuid"

	"github.com/marki32/scain-ai/internal/core"
)

// Kind distinguishes the closed set of simulated objects.
type Kind uint8

const (
	KindPlayer Kind = iota + 1
	KindObstacle
	KindCollectible
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindObstacle:
		return "obstacle"
	case KindCollectible:
		return "collectible"
	default:
		return "unknown"
	}
}

// Entity is one simulated object. Pos is the top-left corner in world pixels.
// Size never changes after creation.
type Entity struct {
	ID      uuid.UUID
	Kind    Kind
	Variant string // Catalog name, e.g. "crate" or "coin"
	Pos     core.Vec
	Size    core.Vec
	Vel     core.Vec
	Active  bool
}

// Box returns the entity's bounding box.
func (e Entity) Box() core.Box {
	return core.Box{Pos: e.Pos, Size: e.Size}
}

// Phase is the engine's lifecycle state.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

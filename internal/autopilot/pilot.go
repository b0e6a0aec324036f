// Package autopilot provides a simple jump policy used for headless runs and
// attract-mode play.
package autopilot

import (
	"github.com/marki32/scain-ai/internal/core"
	"github.com/marki32/scain-ai/internal/runner"
)

// DefaultLookahead is how many baseline frames ahead the pilot reacts.
const DefaultLookahead = 9.0

// Pilot decides when the player should jump.
type Pilot struct {
	// Lookahead is the reaction window in baseline frames. An obstacle
	// that will reach the player within this many frames triggers a jump.
	Lookahead float64
}

// New creates a pilot with the default lookahead.
func New() *Pilot {
	return &Pilot{Lookahead: DefaultLookahead}
}

// ShouldJump reports whether a jump issued now would avoid the nearest
// threatening obstacle. Only obstacles in the player's grounded row count;
// floating ones pass overhead.
func (p *Pilot) ShouldJump(s runner.Snapshot) bool {
	if s.Phase != runner.PhaseRunning {
		return false
	}
	player, ok := s.Player()
	if !ok || player.Pos.Y < s.GroundY {
		return false
	}
	speed := s.State.Speed
	if speed <= 0 {
		return false
	}

	front := player.Pos.X + player.Size.X
	rowTop := s.GroundY
	rowBottom := s.GroundY + player.Size.Y

	for _, ent := range s.Entities {
		if ent.Kind != runner.KindObstacle {
			continue
		}
		// Already passed.
		if ent.Pos.X+ent.Size.X < player.Pos.X {
			continue
		}
		if ent.Pos.Y+ent.Size.Y <= rowTop || ent.Pos.Y >= rowBottom {
			continue
		}

		gap := ent.Pos.X - front
		if gap/speed <= p.Lookahead {
			return true
		}
	}
	return false
}

// Act maps a snapshot to the action a player would take.
func (p *Pilot) Act(s runner.Snapshot) core.Action {
	if p.ShouldJump(s) {
		return core.ActionJump
	}
	return core.ActionNone
}

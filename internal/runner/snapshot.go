package runner

import "github.com/marki32/scain-ai/internal/core"

// RunState is the scalar state of the current run.
type RunState struct {
	Score     int
	Distance  float64
	Speed     float64
	Coins     int
	Paused    bool
	GameOver  bool
	HighScore int // Carried across resets of the same engine
}

// Snapshot is an immutable copy of one completed frame, safe to retain.
type Snapshot struct {
	Frame    uint64
	Phase    Phase
	State    RunState
	Entities []Entity
	World    core.Vec // World size in pixels
	GroundY  float64
}

// Player returns the player entity, if present.
func (s Snapshot) Player() (Entity, bool) {
	for _, e := range s.Entities {
		if e.Kind == KindPlayer {
			return e, true
		}
	}
	return Entity{}, false
}

// Count returns the number of entities of the given kind.
func (s Snapshot) Count(k Kind) int {
	n := 0
	for _, e := range s.Entities {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Observer receives every completed frame.
type Observer interface {
	OnFrame(s Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s Snapshot)

// OnFrame calls f(s).
func (f ObserverFunc) OnFrame(s Snapshot) {
	f(s)
}

// Mailbox is a single-slot, latest-wins Observer. Consumers on another
// goroutine read whole frames from C; an unread frame is replaced by a newer
// one instead of blocking the simulation.
type Mailbox struct {
	ch chan Snapshot
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{ch: make(chan Snapshot, 1)}
}

// OnFrame stores s, evicting any unread snapshot.
func (m *Mailbox) OnFrame(s Snapshot) {
	for {
		select {
		case m.ch <- s:
			return
		default:
		}
		select {
		case <-m.ch:
		default:
		}
	}
}

// C returns the delivery channel.
func (m *Mailbox) C() <-chan Snapshot {
	return m.ch
}

// Latest takes the pending snapshot without blocking.
func (m *Mailbox) Latest() (Snapshot, bool) {
	select {
	case s := <-m.ch:
		return s, true
	default:
		return Snapshot{}, false
	}
}

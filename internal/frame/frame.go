// Package frame provides display-refresh scheduling for frame-driven
// simulations. A simulation asks for "one callback on the next refresh" and
// may cancel that request; the host pumps refreshes from its own loop.
package frame

import "time"

// Callback is invoked once on a display refresh with the host clock.
type Callback func(now time.Duration)

// Handle identifies a pending callback. The zero Handle is never issued.
type Handle uint64

// Scheduler is the display-refresh primitive a simulation runs on.
type Scheduler interface {
	// Now returns the host clock.
	Now() time.Duration
	// Request schedules cb for the next refresh.
	Request(cb Callback) Handle
	// Cancel guarantees that the callback behind h will not run.
	// Cancelling an unknown or already fired handle is a no-op.
	Cancel(h Handle)
}

type pending struct {
	handle Handle
	cb     Callback
}

// Queue is a Scheduler pumped by a host refresh loop (a Bubble Tea tick, an
// ebiten Update, a headless for-loop or a test). It is not safe for
// concurrent use: Request, Cancel and Advance must run on the host loop.
type Queue struct {
	now     time.Duration
	next    Handle
	pending []pending
	firing  []pending // batch of the Advance in progress
}

// NewQueue creates an empty queue whose clock starts at zero.
func NewQueue() *Queue {
	return &Queue{}
}

// Now returns the queue clock.
func (q *Queue) Now() time.Duration {
	return q.now
}

// Request schedules cb for the next Advance.
func (q *Queue) Request(cb Callback) Handle {
	q.next++
	q.pending = append(q.pending, pending{handle: q.next, cb: cb})
	return q.next
}

// Cancel removes the callback behind h if it has not fired yet, including a
// callback due later in the Advance currently in progress.
func (q *Queue) Cancel(h Handle) {
	if h == 0 {
		return
	}
	for i := range q.firing {
		if q.firing[i].handle == h {
			q.firing[i].cb = nil
			return
		}
	}
	for i, p := range q.pending {
		if p.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next refresh.
func (q *Queue) Pending() int {
	return len(q.pending)
}

// Advance moves the clock forward by dt and fires the callbacks that were
// pending when it was called, in request order. Callbacks requested while
// firing wait for the next Advance. Returns the number fired.
func (q *Queue) Advance(dt time.Duration) int {
	if dt > 0 {
		q.now += dt
	}

	q.firing = q.pending
	q.pending = nil
	defer func() { q.firing = nil }()

	fired := 0
	for i := range q.firing {
		cb := q.firing[i].cb
		if cb == nil {
			continue
		}
		q.firing[i].cb = nil
		cb(q.now)
		fired++
	}
	return fired
}

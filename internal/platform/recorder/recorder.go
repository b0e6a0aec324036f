// Package recorder stores finished runs for the interactive hosts.
package recorder

import (
	"github.com/charmbracelet/log"

	"github.com/marki32/scain-ai/internal/runner"
	"github.com/marki32/scain-ai/internal/storage"
)

// Recorder saves each finished run of one engine exactly once.
type Recorder struct {
	store      *storage.Store
	difficulty string
	seed       int64
	log        *log.Logger
	saved      bool
}

// New creates a recorder. A nil store makes every save a no-op.
func New(store *storage.Store, difficulty string, seed int64, logger *log.Logger) *Recorder {
	return &Recorder{
		store:      store,
		difficulty: difficulty,
		seed:       seed,
		log:        logger,
	}
}

// HighScore returns the best stored score, or 0 without a store.
func (r *Recorder) HighScore() int {
	if r.store == nil {
		return 0
	}
	high, err := r.store.HighScore()
	if err != nil {
		r.warn("could not read high score", err)
		return 0
	}
	return high
}

// Finish stores the engine's run if it is over and not yet stored.
// Runs without points are skipped. Reports whether a row was written.
func (r *Recorder) Finish(e *runner.Engine) bool {
	if e.Phase() != runner.PhaseOver || r.saved {
		return false
	}
	r.saved = true

	snap := e.Snapshot()
	if r.store == nil || snap.State.Score <= 0 {
		return false
	}

	_, err := r.store.SaveRun(storage.RunRecord{
		Score:      snap.State.Score,
		Distance:   snap.State.Distance,
		Coins:      snap.State.Coins,
		Frames:     snap.Frame,
		Difficulty: r.difficulty,
		Seed:       r.seed,
	})
	if err != nil {
		r.warn("could not save run", err)
		return false
	}
	if r.log != nil {
		r.log.Info("run saved", "score", snap.State.Score, "coins", snap.State.Coins, "frames", snap.Frame)
	}
	return true
}

// Rearm allows the next finished run to be stored.
func (r *Recorder) Rearm() {
	r.saved = false
}

func (r *Recorder) warn(msg string, err error) {
	if r.log != nil {
		r.log.Warn(msg, "error", err)
	}
}

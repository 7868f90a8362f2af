// internal/status/tracker.go
package status

import "time"

// Tracker owns the health snapshot. Runner-owned, not safe for concurrent use.
type Tracker struct {
	snap Snapshot
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() Snapshot { return t.snap }

// Observe records the outcome of one cycle and reports whether the
// health state changed (recovery, new failure kind, first cycle).
func (t *Tracker) Observe(h Health, err error, failedSends int, at time.Time) bool {
	prev := t.snap.Health

	t.snap.Health = h
	t.snap.FailedSends = failedSends

	if h == HealthOK {
		// Reset on recovery.
		t.snap.LastError = ""
		t.snap.FailedSince = time.Time{}
		return prev != h
	}

	if err != nil {
		t.snap.LastError = err.Error()
	}
	if prev == HealthOK || prev == HealthUnknown || t.snap.FailedSince.IsZero() {
		t.snap.FailedSince = at
	}

	return prev != h
}

// internal/status/tracker_test.go
package status

import (
	"errors"
	"testing"
	"time"
)

func TestTracker_FailureStreakAndRecovery(t *testing.T) {
	var tr Tracker
	t0 := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	if !tr.Observe(HealthError, errors.New("dial"), 0, t0) {
		t.Fatalf("first failure should be a change")
	}

	// same kind again: no change, streak start kept
	if tr.Observe(HealthError, errors.New("dial again"), 0, t0.Add(5*time.Second)) {
		t.Fatalf("repeated failure should not be a change")
	}
	snap := tr.Snapshot()
	if !snap.FailedSince.Equal(t0) {
		t.Fatalf("streak start moved: %v", snap.FailedSince)
	}
	if snap.LastError != "dial again" {
		t.Fatalf("last error not updated: %q", snap.LastError)
	}
	if got := snap.SecondsInError(t0.Add(12 * time.Second)); got != 12 {
		t.Fatalf("seconds in error: got=%d want=12", got)
	}

	// different failure kind is a change but keeps the streak
	if !tr.Observe(HealthRejected, errors.New("code=500"), 0, t0.Add(10*time.Second)) {
		t.Fatalf("kind change should be reported")
	}
	if !tr.Snapshot().FailedSince.Equal(t0) {
		t.Fatalf("streak restarted on kind change")
	}

	// recovery resets
	if !tr.Observe(HealthOK, nil, 1, t0.Add(15*time.Second)) {
		t.Fatalf("recovery should be a change")
	}
	snap = tr.Snapshot()
	if snap.LastError != "" || !snap.FailedSince.IsZero() || snap.SecondsInError(t0.Add(time.Hour)) != 0 {
		t.Fatalf("recovery did not reset: %+v", snap)
	}
	if snap.FailedSends != 1 {
		t.Fatalf("failed sends: got=%d want=1", snap.FailedSends)
	}
}

func TestSecondsInError_Saturates(t *testing.T) {
	t0 := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	s := Snapshot{Health: HealthError, FailedSince: t0}

	if got := s.SecondsInError(t0.Add(48 * time.Hour)); got != 65535 {
		t.Fatalf("seconds_in_error must not wrap: got=%d", got)
	}
}

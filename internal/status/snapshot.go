// internal/status/snapshot.go
package status

import "time"

// Health is the state of the poll pipeline as of the last cycle.
type Health uint8

const (
	// HealthUnknown represents the boot state, before the first cycle.
	HealthUnknown Health = iota
	// HealthOK means the last snapshot was admitted and reconciled.
	HealthOK
	// HealthRejected means the API answered with a non-200 code.
	HealthRejected
	// HealthError means the fetch or decode failed.
	HealthError
)

func (h Health) String() string {
	switch h {
	case HealthOK:
		return "ok"
	case HealthRejected:
		return "rejected"
	case HealthError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot represents the pipeline health after one cycle.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health Health

	// LastError is the message of the last failure; empty when healthy.
	LastError string

	// FailedSince is when the current failure streak began.
	FailedSince time.Time

	// FailedSends counts frames that could not be delivered in the last cycle.
	FailedSends int
}

// SecondsInError is how long the pipeline has been failing, as of now.
// The value saturates at 65535 as the device status block does.
func (s Snapshot) SecondsInError(now time.Time) uint16 {
	if s.Health == HealthOK || s.Health == HealthUnknown || s.FailedSince.IsZero() {
		return 0
	}
	d := now.Sub(s.FailedSince) / time.Second
	if d < 0 {
		return 0
	}
	if d > 65535 {
		return 65535
	}
	return uint16(d)
}

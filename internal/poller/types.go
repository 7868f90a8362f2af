// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/brink-callerid/internal/calls"
)

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	At time.Time

	// Calls are the eligible calls in upstream order.
	// Only meaningful when Err is nil.
	Calls []calls.Record

	// Seen is the number of records in the snapshot before admission.
	Seen int

	// Raw is the response body, kept for logging rejections.
	Raw []byte

	Err error // non-nil means the poll cycle failed
}

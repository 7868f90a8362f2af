// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Scheduler decides the next wake-up and whether it is a poll.
type Scheduler interface {
	Next(now time.Time) (time.Time, bool)
}

// Run sleeps per the schedule and calls cycle on every poll tick.
// Single goroutine, cycles never overlap, no catch-up after a slow cycle.
// Returns when ctx is cancelled.
func Run(ctx context.Context, s Scheduler, cycle func(ctx context.Context)) {
	for {
		at, poll := s.Next(time.Now())

		timer := time.NewTimer(time.Until(at))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if poll {
			cycle(ctx)
		}
	}
}

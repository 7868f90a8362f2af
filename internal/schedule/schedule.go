// internal/schedule/schedule.go
// Package schedule decides when the bridge polls.
//
// Active hours are a cron expression with a seconds field; outside of it
// the runner only wakes every idle interval to re-check.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// parser accepts 6-field expressions: second, minute, hour, dom, month, dow.
var parser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Parse validates a poll expression.
func Parse(expr string) (cron.Schedule, error) {
	s, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("schedule: parse %q: %w", expr, err)
	}
	return s, nil
}

// Schedule is the active-hours gate.
type Schedule struct {
	active cron.Schedule
	idle   time.Duration
}

// New builds a schedule from a cron expression and an idle re-check interval.
func New(expr string, idle time.Duration) (*Schedule, error) {
	if idle <= 0 {
		return nil, errors.New("schedule: idle interval must be > 0")
	}
	s, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return &Schedule{active: s, idle: idle}, nil
}

// Next returns when to wake after now, and whether to poll on waking.
// If the next active fire is within the idle interval it is returned with
// poll=true; otherwise the runner sleeps one idle interval and re-checks.
func (s *Schedule) Next(now time.Time) (time.Time, bool) {
	at := s.active.Next(now)
	if !at.IsZero() && at.Sub(now) <= s.idle {
		return at, true
	}
	return now.Add(s.idle), false
}

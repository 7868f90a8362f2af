// internal/cycle/engine.go
package cycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tamzrod/brink-callerid/internal/calls"
	cfg "github.com/tamzrod/brink-callerid/internal/config"
	"github.com/tamzrod/brink-callerid/internal/lines"
	"github.com/tamzrod/brink-callerid/internal/poller"
	"github.com/tamzrod/brink-callerid/internal/poller/envoi"
	"github.com/tamzrod/brink-callerid/internal/status"
	"github.com/tamzrod/brink-callerid/internal/writer"
)

// Poller yields one admitted snapshot per call.
type Poller interface {
	PollOnce(ctx context.Context) poller.PollResult
}

// Deliverer sends actions to the display.
type Deliverer interface {
	Deliver(ctx context.Context, actions []lines.Action) []writer.Delivery
	ClearAll(ctx context.Context, capacity int) []writer.Delivery
}

// Commit policies.
type Commit uint8

const (
	// Optimistic commits the reconciled table whatever the send results.
	Optimistic Commit = iota
	// Confirmed reverts failed actions so the next cycle retries them.
	Confirmed
)

// ParseCommit maps the config value to a policy. Empty means optimistic.
func ParseCommit(s string) (Commit, error) {
	switch s {
	case "", cfg.CommitOptimistic:
		return Optimistic, nil
	case cfg.CommitConfirmed:
		return Confirmed, nil
	default:
		return 0, fmt.Errorf("cycle: unknown commit policy %q", s)
	}
}

// Config is the engine wiring.
type Config struct {
	Capacity int
	Commit   Commit

	// OnRetriesExhausted is called when the API stayed unreachable for
	// the whole retry budget. Optional.
	OnRetriesExhausted func(ctx context.Context, err error)
}

// Report is the outcome of one cycle.
type Report struct {
	ID         string
	At         time.Time
	Err        error
	Eligible   int
	Actions    []lines.Action
	Deliveries []writer.Delivery
	Failed     int
	Reverted   int
	Dropped    int // distinct eligible calls left without a line
}

// Engine owns the line table. Runner-owned, not safe for concurrent use.
type Engine struct {
	cfg     Config
	poll    Poller
	out     Deliverer
	log     *slog.Logger
	table   lines.Table
	tracker status.Tracker
	now     func() time.Time
}

// New creates an engine with an empty line table.
func New(c Config, p Poller, d Deliverer, log *slog.Logger) (*Engine, error) {
	if p == nil {
		return nil, errors.New("cycle: poller required")
	}
	if d == nil {
		return nil, errors.New("cycle: deliverer required")
	}
	t, err := lines.New(c.Capacity)
	if err != nil {
		return nil, fmt.Errorf("cycle: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{cfg: c, poll: p, out: d, log: log, table: t, now: time.Now}, nil
}

// Table returns a copy of the committed line table.
func (e *Engine) Table() lines.Table { return e.table.Clone() }

// Status returns the current health snapshot.
func (e *Engine) Status() status.Snapshot { return e.tracker.Snapshot() }

// Reset releases every line on the display. The table is already empty.
func (e *Engine) Reset(ctx context.Context) int {
	ds := e.out.ClearAll(ctx, e.table.Capacity())
	failed := writer.Failed(ds)
	if failed > 0 {
		e.log.WarnContext(ctx, "display clear incomplete", "failed", failed, "lines", len(ds))
	} else {
		e.log.InfoContext(ctx, "display cleared", "lines", len(ds))
	}
	return failed
}

// RunOnce runs exactly one cycle to completion.
// A failed poll leaves the table untouched.
func (e *Engine) RunOnce(ctx context.Context) Report {
	rep := Report{ID: uuid.NewString(), At: e.now()}
	log := e.log.With("cycle", rep.ID)

	res := e.poll.PollOnce(ctx)
	if res.Err != nil {
		rep.Err = res.Err
		e.pollFailed(ctx, log, res)
		return rep
	}
	rep.Eligible = len(res.Calls)

	next, actions := lines.Reconcile(res.Calls, e.table)
	rep.Actions = actions
	rep.Dropped = dropped(res.Calls, next)

	if len(actions) > 0 {
		rep.Deliveries = e.out.Deliver(ctx, actions)
		rep.Failed = writer.Failed(rep.Deliveries)
	}

	if e.cfg.Commit == Confirmed && rep.Failed > 0 {
		rep.Reverted = revertFailed(ctx, log, &next, rep.Deliveries)
	}
	e.table = next

	if e.tracker.Observe(status.HealthOK, nil, rep.Failed, rep.At) {
		log.InfoContext(ctx, "calls api healthy")
	}

	if len(actions) > 0 {
		log.InfoContext(ctx, "cycle applied",
			"seen", res.Seen,
			"eligible", rep.Eligible,
			"actions", len(actions),
			"failed", rep.Failed,
			"reverted", rep.Reverted,
			"occupied", e.table.Occupied(),
		)
	} else {
		log.DebugContext(ctx, "cycle idle", "seen", res.Seen, "eligible", rep.Eligible)
	}
	if rep.Dropped > 0 {
		log.WarnContext(ctx, "calls over line capacity dropped", "dropped", rep.Dropped, "capacity", e.table.Capacity())
	}

	return rep
}

func (e *Engine) pollFailed(ctx context.Context, log *slog.Logger, res poller.PollResult) {
	var (
		rejected  *calls.RejectedError
		httpErr   *envoi.StatusError
		exhausted *envoi.RetriesExhaustedError
	)

	health := status.HealthError
	if errors.As(res.Err, &rejected) || errors.As(res.Err, &httpErr) {
		health = status.HealthRejected
	}

	changed := e.tracker.Observe(health, res.Err, 0, res.At)

	switch {
	case rejected != nil:
		log.WarnContext(ctx, "snapshot rejected", "code", rejected.Code, "response", string(rejected.Raw))
	case httpErr != nil:
		log.WarnContext(ctx, "snapshot rejected", "http_status", httpErr.StatusCode, "response", string(httpErr.Body))
	case changed:
		log.ErrorContext(ctx, "poll failed", "error", res.Err)
	default:
		log.DebugContext(ctx, "poll still failing",
			"error", res.Err,
			"seconds_in_error", e.tracker.Snapshot().SecondsInError(e.now()),
		)
	}

	if errors.As(res.Err, &exhausted) && e.cfg.OnRetriesExhausted != nil {
		e.cfg.OnRetriesExhausted(ctx, res.Err)
	}
}

// dropped counts distinct calls that found no line in t.
func dropped(eligible []calls.Record, t lines.Table) int {
	seen := make(map[calls.CallID]struct{}, len(eligible))
	n := 0
	for _, c := range eligible {
		if _, ok := seen[c.UniqueID]; ok {
			continue
		}
		seen[c.UniqueID] = struct{}{}
		if t.Lookup(c.UniqueID) == 0 {
			n++
		}
	}
	return n
}

// revertFailed undoes failed deliveries on t, newest first.
func revertFailed(ctx context.Context, log *slog.Logger, t *lines.Table, ds []writer.Delivery) int {
	n := 0
	for i := len(ds) - 1; i >= 0; i-- {
		d := ds[i]
		if d.Err == nil {
			continue
		}
		if err := t.Revert(d.Action); err != nil {
			log.WarnContext(ctx, "revert skipped", "line", d.Action.Line, "error", err)
			continue
		}
		n++
	}
	return n
}

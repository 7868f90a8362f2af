// internal/lines/reconcile.go
package lines

import "github.com/tamzrod/brink-callerid/internal/calls"

// Kind is the protocol action requested of the display.
type Kind uint8

const (
	Assign Kind = iota + 1
	Release
)

func (k Kind) String() string {
	switch k {
	case Assign:
		return "assign"
	case Release:
		return "release"
	default:
		return "unknown"
	}
}

// Action is one display change.
// For Release, Call carries only the id of the call that was shown.
type Action struct {
	Kind Kind
	Line int
	Call calls.Record
}

// Reconcile converges the table onto one snapshot of eligible calls.
//
// Calls are placed in arrival order on the lowest free line; calls already
// shown are left alone; calls that do not fit are dropped without touching
// the table. Lines whose call is absent from the snapshot are released in
// line order after all assignments.
//
// Pure: t is not modified, the updated table is returned.
func Reconcile(eligible []calls.Record, t Table) (Table, []Action) {
	next := t.Clone()

	present := make(map[calls.CallID]struct{}, len(eligible))
	for _, c := range eligible {
		present[c.UniqueID] = struct{}{}
	}

	var actions []Action

	for _, c := range eligible {
		if next.Lookup(c.UniqueID) != 0 {
			continue
		}
		n := next.lowestFree()
		if n == 0 {
			// hardware cap reached: overflow is dropped, not queued
			continue
		}
		next.occupy(n, c.UniqueID)
		actions = append(actions, Action{Kind: Assign, Line: n, Call: c})
	}

	for _, l := range next.lines {
		if !l.Occupied {
			continue
		}
		if _, ok := present[l.CallID]; ok {
			continue
		}
		next.free(l.Number)
		actions = append(actions, Action{
			Kind: Release,
			Line: l.Number,
			Call: calls.Record{UniqueID: l.CallID},
		})
	}

	return next, actions
}

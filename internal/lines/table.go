// internal/lines/table.go
package lines

import (
	"fmt"

	"github.com/tamzrod/brink-callerid/internal/calls"
)

// MaxLines is the number of caller-ID lines the Brink hardware supports.
const MaxLines = 4

// Line is one physical display slot.
type Line struct {
	Number   int
	Occupied bool
	CallID   calls.CallID
}

// Table is the assignment of calls to display lines.
// It is a value: operations return or mutate a private copy,
// never a table shared with another owner.
type Table struct {
	lines []Line
}

// New creates a table with all lines unoccupied, numbered 1..capacity.
func New(capacity int) (Table, error) {
	if capacity < 1 || capacity > MaxLines {
		return Table{}, fmt.Errorf("lines: capacity must be 1..%d, got %d", MaxLines, capacity)
	}
	t := Table{lines: make([]Line, capacity)}
	for i := range t.lines {
		t.lines[i].Number = i + 1
	}
	return t, nil
}

// Capacity returns the number of lines.
func (t Table) Capacity() int { return len(t.lines) }

// Clone returns an independent copy.
func (t Table) Clone() Table {
	out := Table{lines: make([]Line, len(t.lines))}
	copy(out.lines, t.lines)
	return out
}

// Lines returns a copy of all lines in line-number order.
func (t Table) Lines() []Line {
	out := make([]Line, len(t.lines))
	copy(out, t.lines)
	return out
}

// Line returns line n (1-based).
func (t Table) Line(n int) (Line, bool) {
	if n < 1 || n > len(t.lines) {
		return Line{}, false
	}
	return t.lines[n-1], true
}

// Occupied counts occupied lines.
func (t Table) Occupied() int {
	n := 0
	for _, l := range t.lines {
		if l.Occupied {
			n++
		}
	}
	return n
}

// Lookup returns the line currently showing id, or 0.
func (t Table) Lookup(id calls.CallID) int {
	for _, l := range t.lines {
		if l.Occupied && l.CallID == id {
			return l.Number
		}
	}
	return 0
}

// lowestFree returns the lowest-numbered unoccupied line, or 0.
func (t Table) lowestFree() int {
	for _, l := range t.lines {
		if !l.Occupied {
			return l.Number
		}
	}
	return 0
}

func (t *Table) occupy(n int, id calls.CallID) {
	t.lines[n-1].Occupied = true
	t.lines[n-1].CallID = id
}

func (t *Table) free(n int) {
	t.lines[n-1].Occupied = false
	t.lines[n-1].CallID = ""
}

// Revert undoes one action on the table.
// Reverting Assign frees the line; reverting Release re-occupies it with
// the released call. Reverts that would break the table invariants are
// refused with an error and leave the table untouched.
func (t *Table) Revert(a Action) error {
	if a.Line < 1 || a.Line > len(t.lines) {
		return fmt.Errorf("lines: revert: line %d out of range", a.Line)
	}
	l := t.lines[a.Line-1]

	switch a.Kind {
	case Assign:
		if !l.Occupied || l.CallID != a.Call.UniqueID {
			return fmt.Errorf("lines: revert assign: line %d no longer shows call %s", a.Line, a.Call.UniqueID)
		}
		t.free(a.Line)
		return nil

	case Release:
		if l.Occupied {
			return fmt.Errorf("lines: revert release: line %d is occupied", a.Line)
		}
		if other := t.Lookup(a.Call.UniqueID); other != 0 {
			return fmt.Errorf("lines: revert release: call %s already on line %d", a.Call.UniqueID, other)
		}
		t.occupy(a.Line, a.Call.UniqueID)
		return nil

	default:
		return fmt.Errorf("lines: revert: unknown action kind %d", a.Kind)
	}
}

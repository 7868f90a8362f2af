// internal/writer/reset.go
package writer

import (
	"context"

	"github.com/tamzrod/brink-callerid/internal/lines"
)

// ClearAll releases lines 1..capacity on the display (identity re-assert).
// The line table is not persisted, so anything the display still shows from
// before a restart would never be released otherwise.
// Failures are reported per line, like Deliver.
func (w *Writer) ClearAll(ctx context.Context, capacity int) []Delivery {
	actions := make([]lines.Action, 0, capacity)
	for n := 1; n <= capacity; n++ {
		actions = append(actions, lines.Action{Kind: lines.Release, Line: n})
	}
	return w.Deliver(ctx, actions)
}

// internal/writer/writer.go
package writer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tamzrod/brink-callerid/internal/frame"
	"github.com/tamzrod/brink-callerid/internal/lines"
)

// Writer encodes actions and hands each frame to the transport.
type Writer struct {
	tr  Transport
	log *slog.Logger
}

func New(tr Transport, log *slog.Logger) *Writer {
	if log == nil {
		log = slog.Default()
	}
	return &Writer{tr: tr, log: log}
}

// Deliver sends every action in order.
// Failures are isolated per action: an encode or send error is recorded in
// that action's Delivery and the remaining actions are still attempted.
// No retries. The batch always runs to completion; ctx only scopes logging.
func (w *Writer) Deliver(ctx context.Context, actions []lines.Action) []Delivery {
	out := make([]Delivery, 0, len(actions))

	for _, a := range actions {
		d := Delivery{Action: a}

		b, err := frame.Encode(a)
		if err != nil {
			d.Err = fmt.Errorf("writer: line=%d %s encode: %w", a.Line, a.Kind, err)
			w.log.ErrorContext(ctx, "frame encode failed", "line", a.Line, "action", a.Kind.String(), "error", err)
			out = append(out, d)
			continue
		}
		d.Frame = b

		if err := w.tr.Send(b); err != nil {
			d.Err = fmt.Errorf("writer: line=%d %s send: %w", a.Line, a.Kind, err)
			w.log.ErrorContext(ctx, "frame send failed",
				"line", a.Line,
				"action", a.Kind.String(),
				"call_id", string(a.Call.UniqueID),
				"error", err,
			)
		} else {
			w.log.DebugContext(ctx, "frame sent", "line", a.Line, "action", a.Kind.String(), "frame", fmt.Sprintf("%q", b))
		}

		out = append(out, d)
	}

	return out
}

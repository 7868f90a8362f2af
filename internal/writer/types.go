// internal/writer/types.go
package writer

import "github.com/tamzrod/brink-callerid/internal/lines"

// Transport delivers one frame to the display.
// Each Send is a discrete transaction: acquire, write, release.
type Transport interface {
	Send(frame []byte) error
}

// Delivery is the outcome of one action.
type Delivery struct {
	Action lines.Action
	Frame  []byte // nil when encoding failed
	Err    error  // non-nil means the frame did not reach the display
}

// Failed counts undelivered actions.
func Failed(ds []Delivery) int {
	n := 0
	for _, d := range ds {
		if d.Err != nil {
			n++
		}
	}
	return n
}

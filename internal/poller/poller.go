// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"time"

	"github.com/tamzrod/brink-callerid/internal/calls"
	"github.com/tamzrod/brink-callerid/internal/poller/envoi"
)

// Client abstracts the calls API fetch.
// The poller depends on raw bytes only.
type Client interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Store string // published store number calls must match
}

// Poller is a dumb, clock-free reader: fetch, decode, admit.
type Poller struct {
	cfg    Config
	client Client
	now    func() time.Time
}

// New creates a poller with immutable config.
func New(cfg Config, client Client) (*Poller, error) {
	if cfg.Store == "" {
		return nil, errors.New("poller: store number required")
	}
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	return &Poller{cfg: cfg, client: client, now: time.Now}, nil
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: a fetch, decode or admission failure yields no calls.
func (p *Poller) PollOnce(ctx context.Context) PollResult {
	res := PollResult{At: p.now()}

	body, err := p.client.Fetch(ctx)
	if err != nil {
		res.Err = err
		var se *envoi.StatusError
		if errors.As(err, &se) {
			res.Raw = se.Body
			if rej := rejectedBody(se.Body); rej != nil {
				res.Err = rej
			}
		}
		return res
	}
	res.Raw = body

	resp, err := calls.Decode(body)
	if err != nil {
		res.Err = err
		return res
	}
	res.Seen = len(resp.Data)

	eligible, err := calls.Admit(resp, p.cfg.Store)
	if err != nil {
		res.Err = err
		return res
	}

	// Commit only if the whole snapshot was admitted
	res.Calls = eligible
	return res
}

// rejectedBody reads a non-2xx body as a calls response.
// It returns the rejection when the body carries its own non-200 code,
// nil when the body is not a calls response.
func rejectedBody(body []byte) error {
	resp, err := calls.Decode(body)
	if err != nil || len(resp.Responses) == 0 {
		return nil
	}
	if _, err := calls.Admit(resp, ""); err != nil {
		return err
	}
	return nil
}

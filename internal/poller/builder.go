// internal/poller/builder.go
package poller

import (
	"log/slog"
	"time"

	cfg "github.com/tamzrod/brink-callerid/internal/config"
	"github.com/tamzrod/brink-callerid/internal/poller/envoi"
)

// Build constructs a Poller wired to the calls API.
// No connection is made here; every poll is one request.
func Build(c *cfg.Config, log *slog.Logger) (*Poller, error) {
	client, err := envoi.New(envoi.Config{
		URL:        c.API.URL,
		Username:   c.API.Username,
		Password:   c.API.Password,
		Direction:  c.API.Direction,
		Timeout:    time.Duration(c.API.TimeoutMs) * time.Millisecond,
		MaxRetries: c.API.MaxRetries,
		Backoff:    time.Duration(c.API.RetryBackoffMs) * time.Millisecond,
	}, log)
	if err != nil {
		return nil, err
	}

	return New(Config{Store: c.Store.Number}, client)
}

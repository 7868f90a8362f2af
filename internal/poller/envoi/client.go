// internal/poller/envoi/client.go
package envoi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// maxBody caps one API response.
const maxBody = 4 << 20

// Client fetches the current call list from the calls API.
// It moves bytes only; decoding and admission belong to the calls package.
type Client struct {
	endpoint string // full URL including auth query, never logged
	http     *http.Client
	retries  int
	backoff  time.Duration
	log      *slog.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

// Config is minimal API config.
type Config struct {
	URL        string
	Username   string
	Password   string
	Direction  string
	Timeout    time.Duration
	MaxRetries int           // extra attempts after the first, for transport failures only
	Backoff    time.Duration // delay before each retry, doubled every attempt
	HTTPClient *http.Client  // optional
}

func New(cfg Config, log *slog.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("envoi: url required")
	}
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("envoi: url: %w", err)
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("envoi: max retries must be >= 0, got %d", cfg.MaxRetries)
	}

	q := u.Query()
	q.Set("auth_username", cfg.Username)
	q.Set("auth_password", cfg.Password)
	if cfg.Direction != "" {
		q.Set("direction", cfg.Direction)
	}
	u.RawQuery = q.Encode()

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		endpoint: u.String(),
		http:     hc,
		retries:  cfg.MaxRetries,
		backoff:  cfg.Backoff,
		log:      log.With("component", "envoi"),
		sleep:    sleepCtx,
	}, nil
}

// Fetch performs one GET, retrying transport failures.
// When every attempt fails to reach the API it returns *RetriesExhaustedError.
// HTTP-level failures are returned as *StatusError and not retried.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	attempts := c.retries + 1
	delay := c.backoff

	var last error
	for i := 1; i <= attempts; i++ {
		body, err := c.fetchOnce(ctx)
		if err == nil {
			return body, nil
		}

		var se *StatusError
		if errors.As(err, &se) || ctx.Err() != nil {
			return nil, err
		}

		last = err
		if i == attempts {
			break
		}

		c.log.WarnContext(ctx, "api request failed, retrying", "attempt", i, "attempts", attempts, "error", err)
		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
		delay *= 2
	}

	return nil, &RetriesExhaustedError{Attempts: attempts, Err: last}
}

func (c *Client) fetchOnce(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("envoi: build request: %w", redact(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("envoi: request: %w", redact(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("envoi: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

// redact drops the URL (it carries credentials) from transport errors.
func redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

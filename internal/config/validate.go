// internal/config/validate.go
package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/tamzrod/brink-callerid/internal/lines"
	"github.com/tamzrod/brink-callerid/internal/schedule"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	// ------------------------------------------------------------
	// STORE
	// ------------------------------------------------------------

	if strings.TrimSpace(cfg.Store.Number) == "" {
		return fmt.Errorf("store.number is required")
	}

	// ------------------------------------------------------------
	// SERIAL
	// ------------------------------------------------------------

	if cfg.Serial.Port == "" {
		return fmt.Errorf("serial.port is required")
	}
	if p := strings.ToLower(cfg.Serial.Port); strings.HasPrefix(p, "tcp://") {
		if _, _, err := net.SplitHostPort(cfg.Serial.Port[len("tcp://"):]); err != nil {
			return fmt.Errorf("serial.port %q: bridge endpoint must be tcp://host:port", cfg.Serial.Port)
		}
	}
	if cfg.Serial.Baud <= 0 {
		return fmt.Errorf("serial.baud must be > 0, got %d", cfg.Serial.Baud)
	}
	if cfg.Serial.TimeoutMs < 0 {
		return fmt.Errorf("serial.timeout_ms must be >= 0, got %d", cfg.Serial.TimeoutMs)
	}

	// ------------------------------------------------------------
	// API
	// ------------------------------------------------------------

	u, err := url.Parse(cfg.API.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.url %q must be an absolute http(s) URL", cfg.API.URL)
	}
	if cfg.API.Username == "" {
		return fmt.Errorf("api.username is required")
	}
	if cfg.API.TimeoutMs < 0 {
		return fmt.Errorf("api.timeout_ms must be >= 0, got %d", cfg.API.TimeoutMs)
	}
	if cfg.API.MaxRetries < 0 || cfg.API.MaxRetries > 10 {
		return fmt.Errorf("api.max_retries must be 0..10, got %d", cfg.API.MaxRetries)
	}
	if cfg.API.RetryBackoffMs < 0 {
		return fmt.Errorf("api.retry_backoff_ms must be >= 0, got %d", cfg.API.RetryBackoffMs)
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	if _, err := schedule.Parse(cfg.Poll.Schedule); err != nil {
		return fmt.Errorf("poll.schedule: %w", err)
	}
	if cfg.Poll.IdleIntervalMs <= 0 {
		return fmt.Errorf("poll.idle_interval_ms must be > 0, got %d", cfg.Poll.IdleIntervalMs)
	}

	// ------------------------------------------------------------
	// LINES + COMMIT
	// ------------------------------------------------------------

	if cfg.Lines.Count < 1 || cfg.Lines.Count > lines.MaxLines {
		return fmt.Errorf("lines.count must be 1..%d, got %d", lines.MaxLines, cfg.Lines.Count)
	}

	switch cfg.Commit {
	case CommitOptimistic, CommitConfirmed:
	default:
		return fmt.Errorf("commit must be %q or %q, got %q", CommitOptimistic, CommitConfirmed, cfg.Commit)
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", cfg.Log.Level)
	}

	return nil
}

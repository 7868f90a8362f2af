// internal/restart/hook.go
// Package restart runs the operator's restart script when the calls API
// has been unreachable for a whole retry budget.
package restart

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"
)

// Hook requests an external restart. A missing script is a no-op.
type Hook struct {
	Script  string
	Timeout time.Duration
	Log     *slog.Logger

	// command builds the process; replaced in tests.
	command func(ctx context.Context, script string) *exec.Cmd
}

// Trigger runs the script once and waits for it (bounded by Timeout).
// The script usually kills and relaunches this process.
func (h *Hook) Trigger(ctx context.Context, cause error) error {
	log := h.Log
	if log == nil {
		log = slog.Default()
	}
	if h.Script == "" {
		return nil
	}

	if _, err := os.Stat(h.Script); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.WarnContext(ctx, "restart requested but no restart script present", "script", h.Script, "cause", cause)
			return nil
		}
		return fmt.Errorf("restart: stat %s: %w", h.Script, err)
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	build := h.command
	if build == nil {
		build = scriptCommand
	}

	log.WarnContext(ctx, "requesting restart", "script", h.Script, "cause", cause)

	out, err := build(ctx, h.Script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("restart: run %s: %w (output: %s)", h.Script, err, out)
	}
	return nil
}

func scriptCommand(ctx context.Context, script string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", script)
	}
	return exec.CommandContext(ctx, "/bin/sh", script)
}

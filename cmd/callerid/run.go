// cmd/callerid/run.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/brink-callerid/internal/config"
	"github.com/tamzrod/brink-callerid/internal/cycle"
	"github.com/tamzrod/brink-callerid/internal/instance"
	"github.com/tamzrod/brink-callerid/internal/logging"
	"github.com/tamzrod/brink-callerid/internal/poller"
	"github.com/tamzrod/brink-callerid/internal/restart"
	"github.com/tamzrod/brink-callerid/internal/schedule"
	"github.com/tamzrod/brink-callerid/internal/writer"
)

func newRunCmd() *cobra.Command {
	var (
		configPath string
		once       bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Poll active calls and drive the display",
		Long:  "Runs the poll cycle on the configured schedule until interrupted. A missing config file is created with defaults.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd, configPath, once)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (default ~/.callerid/config.yaml)")
	cmd.Flags().BoolVar(&once, "once", false, "run a single cycle and exit")
	return cmd
}

func runDaemon(cmd *cobra.Command, configPath string, once bool) error {
	// --------------------
	// Load + validate config
	// --------------------

	cfg, created, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	log, closeLog, err := logging.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	if created {
		log.Warn("default config written; edit store number and credentials", "data_dir", cfg.DataDir)
	}

	lock, err := instance.Acquire(cfg.Instance.LockFile)
	if err != nil {
		log.Error("startup refused", "error", err)
		return err
	}
	defer lock.Release()

	// --------------------
	// Build pipeline
	// --------------------

	tr, err := writer.BuildTransport(cfg.Serial)
	if err != nil {
		return fmt.Errorf("transport build failed: %w", err)
	}
	w := writer.New(tr, log)

	p, err := poller.Build(cfg, log)
	if err != nil {
		return fmt.Errorf("poller build failed: %w", err)
	}

	commit, err := cycle.ParseCommit(cfg.Commit)
	if err != nil {
		return err
	}

	hook := &restart.Hook{Script: cfg.Restart.Script, Log: log}
	engine, err := cycle.New(cycle.Config{
		Capacity: cfg.Lines.Count,
		Commit:   commit,
		OnRetriesExhausted: func(ctx context.Context, cause error) {
			if err := hook.Trigger(ctx, cause); err != nil {
				log.ErrorContext(ctx, "restart script failed", "error", err)
			}
		},
	}, p, w, log)
	if err != nil {
		return fmt.Errorf("engine build failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("callerid starting",
		"version", Version,
		"store", cfg.Store.Number,
		"port", cfg.Serial.Port,
		"lines", cfg.Lines.Count,
		"commit", cfg.Commit,
		"schedule", cfg.Poll.Schedule,
	)

	if cfg.Lines.ClearOnStart != nil && *cfg.Lines.ClearOnStart {
		engine.Reset(ctx)
	}

	if once {
		rep := engine.RunOnce(ctx)
		return rep.Err
	}

	sched, err := schedule.New(cfg.Poll.Schedule, time.Duration(cfg.Poll.IdleIntervalMs)*time.Millisecond)
	if err != nil {
		return err
	}

	poller.Run(ctx, sched, func(ctx context.Context) { engine.RunOnce(ctx) })

	log.Info("callerid stopped")
	return nil
}

func loadConfig(path string) (*config.Config, bool, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, false, err
		}
		path = p
	}
	cfg, created, err := config.LoadOrInit(path)
	if err != nil {
		return nil, false, fmt.Errorf("config load failed: %w", err)
	}
	return cfg, created, nil
}

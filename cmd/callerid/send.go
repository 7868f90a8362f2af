// cmd/callerid/send.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamzrod/brink-callerid/internal/calls"
	"github.com/tamzrod/brink-callerid/internal/lines"
	"github.com/tamzrod/brink-callerid/internal/logging"
	"github.com/tamzrod/brink-callerid/internal/writer"
)

// send writes a single frame to the display, bypassing the line table.
// Used to check wiring and clear a stuck line by hand.
func newSendCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one frame to the display",
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default ~/.callerid/config.yaml)")

	cmd.AddCommand(newSendAssignCmd(&configPath))
	cmd.AddCommand(newSendReleaseCmd(&configPath))
	return cmd
}

func newSendAssignCmd(configPath *string) *cobra.Command {
	var (
		line  int
		phone string
		name  string
	)

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Show a caller on a line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendAction(cmd, *configPath, lines.Action{
				Kind: lines.Assign,
				Line: line,
				Call: calls.Record{CallerPhone: phone, CallerName: calls.NormalizeName(name)},
			})
		},
	}

	cmd.Flags().IntVar(&line, "line", 1, "display line (1-4)")
	cmd.Flags().StringVar(&phone, "phone", "", "caller phone number")
	cmd.Flags().StringVar(&name, "name", "", "caller name")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func newSendReleaseCmd(configPath *string) *cobra.Command {
	var line int

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Clear a line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendAction(cmd, *configPath, lines.Action{Kind: lines.Release, Line: line})
		},
	}

	cmd.Flags().IntVar(&line, "line", 1, "display line (1-4)")
	return cmd
}

func sendAction(cmd *cobra.Command, configPath string, a lines.Action) error {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	tr, err := writer.BuildTransport(cfg.Serial)
	if err != nil {
		return fmt.Errorf("transport build failed: %w", err)
	}

	log := logging.New(cmd.ErrOrStderr(), cfg.Log.Level)
	ds := writer.New(tr, log).Deliver(cmd.Context(), []lines.Action{a})
	if err := ds[0].Err; err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "sent %q to %s\n", ds[0].Frame, cfg.Serial.Port)
	return nil
}

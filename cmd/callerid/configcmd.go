// cmd/callerid/configcmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamzrod/brink-callerid/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigCheckCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Long:  "Writes the default configuration. An existing file is never overwritten.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "path to config file (default ~/.callerid/config.yaml)")
	return cmd
}

func newConfigCheckCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: store=%s port=%s lines=%d commit=%s\n",
				cfg.Store.Number, cfg.Serial.Port, cfg.Lines.Count, cfg.Commit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "path to config file (default ~/.callerid/config.yaml)")
	return cmd
}

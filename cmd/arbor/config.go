package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/arbor/internal/config"
	"github.com/phanxgames/arbor/internal/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage arbor configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Config file: %s\n\n", config.GetConfigPath())
		fmt.Fprintf(out, "debug = %v\n\n", cfg.Debug)
		fmt.Fprintln(out, "[log]")
		fmt.Fprintf(out, "level = %q\n\n", cfg.Log.Level)
		fmt.Fprintln(out, "[pointer]")
		fmt.Fprintf(out, "double_click_ms = %d\n", cfg.Pointer.DoubleClickMsec)
		fmt.Fprintf(out, "double_click_distance = %g\n\n", cfg.Pointer.DoubleClickDistance)
		fmt.Fprintln(out, "[view]")
		fmt.Fprintf(out, "width = %d\n", cfg.View.Width)
		fmt.Fprintf(out, "height = %d\n", cfg.View.Height)
		fmt.Fprintf(out, "title = %q\n", cfg.View.Title)
		fmt.Fprintf(out, "tps = %d\n", cfg.View.TPS)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(); err != nil {
			return err
		}
		logger.Info("configuration written", "file", config.GetConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

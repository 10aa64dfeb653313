package main

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/internal/config"
	"github.com/phanxgames/arbor/internal/logger"
)

var (
	// Version is set during build
	Version = "0.1.0-dev"

	configPath string
	debugFlag  bool
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "arbor",
		Short: "arbor - element tree event routing",
		Long: `arbor builds element trees from TOML scripts and routes pointer and
keyboard input through them. Use "replay" to run a script headless and
print the notification trace, or "view" to open it in a window.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/arbor/arbor.toml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug checks and focus traces")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration and applies logging and debug settings.
// Flags win over the config file and environment.
func setup(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		config.SetConfigPath(configPath)
	}
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	if err := logger.SetLevel(level); err != nil {
		return err
	}

	if debugFlag {
		cfg.Debug = true
	}
	arbor.SetLogger(logger.Logger.WithPrefix("arbor"))
	arbor.SetDebugMode(cfg.Debug)
	logger.Debug("configuration loaded", "file", config.GetConfigPath(), "debug", cfg.Debug)
	return nil
}

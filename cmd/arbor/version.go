package main

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/arbor/internal/logger"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		logger.Info("arbor", "version", Version)
	},
}

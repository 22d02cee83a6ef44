package cmd

import (
	"fmt"
	"os"

	"smr-checker/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "smr-checker",
	Short: "SMR device state reconciliation",
	Long: `smr-checker compares the CTS deviceinfo snapshot of an SMR build against
its MR baseline and decides whether the SMR can proceed.
Snapshots are read from local directories or an S3/MinIO bucket.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with ISO8601 timestamps suits a CLI
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

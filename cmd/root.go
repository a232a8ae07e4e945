// Package cmd implements the gotender command tree.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gotender",
	Short: "Tender listing change detection and notification",
	Long: `gotender inspects a public tender listing page, extracts candidate
entries, filters them against a keyword set, detects entries not seen
before, and emails a notification per new relevant entry. A durable seen
record makes re-runs idempotent.

It performs exactly one pass per invocation; scheduling belongs to an
external trigger such as cron.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newSeenCmd())
}

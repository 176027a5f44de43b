// Package cli implements the FlexBreak command-line interface using Cobra.
// Each subcommand maps to one engine capability (log, status, boost, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flexbreak",
	Short: "FlexBreak — stretch-break progress engine",
	Long: `FlexBreak tracks stretch breaks and turns them into XP, levels,
streaks, achievements, and rotating challenges. All state lives in a
single local record.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "approvalctl",
	Short:        "Operator tooling for the expense approval service",
	Long:         "Inspects stored approval ledgers and manages approval rules directly against the configured storage.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

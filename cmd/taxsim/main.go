package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taxsim",
	Short: "Offline advance-tax calculator",
	Long: `taxsim runs the advance-tax pipeline against a YAML input file without a
database or server: book profit, the reconciliation bridge, liability,
the quarterly installment schedule, and Section 234B/234C interest.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

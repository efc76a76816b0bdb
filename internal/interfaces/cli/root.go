// Package cli implements the hbi command line tool. The score and advise
// commands run the pure scoring core offline; analyze talks to a running API
// server.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the hbi command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hbi",
		Short: "Home buyer intelligence toolkit",
		Long: "hbi analyzes Dutch property documents: it scores risks, generates\n" +
			"bidding advice, and drives a running analysis API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newScoreCmd(),
		newAdviseCmd(),
		newAnalyzeCmd(),
	)
	return root
}

// Execute runs the CLI and returns its exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		return 1
	}
	return 0
}

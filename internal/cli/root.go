// Package cli implements the complexity command line.
package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = NewRootCmd()

// NewRootCmd builds the command tree. Every call returns fresh commands with
// their own flag state.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "complexity",
		Short:   "Measure how data structure operations scale with size",
		Version: version,
		Long: `Complexity grows data structures to a series of sizes and times one
operation at each size. Results can be printed, saved as JSON or YAML,
fitted to a complexity class, and compared between runs.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			// If no subcommand is provided, print help
			cmd.Help()
		},
	}

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newCompareCmd())
	return cmd
}

// Execute runs the root command.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

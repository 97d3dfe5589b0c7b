package cli

import (
	"github.com/spf13/cobra"

	"github.com/JelsikJozef/DataStructures/internal/benchmarks"
	"github.com/JelsikJozef/DataStructures/internal/output"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the benchmarks in the suite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			include, _ := cmd.Flags().GetStringSlice("include")
			exclude, _ := cmd.Flags().GetStringSlice("exclude")

			opts := benchmarks.DefaultOptions()
			opts.Include = include
			opts.Exclude = exclude

			suite, err := benchmarks.NewSuite(opts)
			if err != nil {
				return err
			}

			var names []string
			suite.Walk(func(name string) {
				names = append(names, name)
			})

			output.NewConsole(output.ConsoleConfig{Writer: cmd.OutOrStdout()}).
				PrintTree(suite.Name(), names)
			return nil
		},
	}

	cmd.Flags().StringSlice("include", nil, "Only list benchmarks matching these patterns")
	cmd.Flags().StringSlice("exclude", nil, "Hide benchmarks matching these patterns")
	return cmd
}

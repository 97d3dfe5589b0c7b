package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JelsikJozef/DataStructures/internal/output"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <old.json> <new.json>",
		Short: "Compare two JSON reports",
		Long: `Compare the samples of two JSON reports written by 'complexity run'.

The metric is a JSONPath evaluated against each sample, for example
$.duration (the mean) or $.stats.p99. With --threshold, the command fails
when any benchmark got slower by more than that many percent.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	cmd.Flags().String("metric", output.DefaultMetric, "JSONPath of the sample value to compare")
	cmd.Flags().Float64("threshold", 0, "Fail when a benchmark slows down by more than this percentage")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	metric, _ := cmd.Flags().GetString("metric")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	noColor, _ := cmd.Flags().GetBool("no-color")

	prev, err := loadReportSamples(args[0], metric)
	if err != nil {
		return err
	}
	curr, err := loadReportSamples(args[1], metric)
	if err != nil {
		return err
	}

	comparisons := output.Compare(prev, curr)
	output.NewConsole(output.ConsoleConfig{Writer: cmd.OutOrStdout(), NoColor: noColor}).
		PrintComparisons(comparisons, threshold)

	regressed := 0
	for _, c := range comparisons {
		if c.Regressed(threshold) {
			regressed++
		}
	}
	if regressed > 0 {
		return fmt.Errorf("%d of %d samples regressed by more than %.1f%%", regressed, len(comparisons), threshold)
	}
	return nil
}

func loadReportSamples(path, metric string) (map[string][]output.SampleRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	samples, err := output.LoadSamples(data, metric)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

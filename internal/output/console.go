package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/dustin/go-humanize"

	"github.com/JelsikJozef/DataStructures/internal/analyzer"
)

const ruleWidth = 56

// ConsoleConfig contains configuration for Console.
type ConsoleConfig struct {
	Writer      io.Writer
	NoColor     bool
	ForceColors bool

	// Quiet prints only the pass/fail status and failing benchmarks
	Quiet bool

	// Verbose adds min, max and standard deviation columns
	Verbose bool
}

// Console writes human-readable summaries.
type Console struct {
	writer  io.Writer
	scheme  *ColorScheme
	quiet   bool
	verbose bool
}

// NewConsole creates a console writer. Colours are used when the writer is a
// terminal and NO_COLOR is unset, unless overridden by the config.
func NewConsole(config ConsoleConfig) *Console {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	useColors := config.ForceColors ||
		(!config.NoColor && isTerminal(config.Writer) && supportsColors())

	scheme := NoColorScheme()
	if useColors {
		scheme = ForcedColorScheme()
	}

	return &Console{
		writer:  config.Writer,
		scheme:  scheme,
		quiet:   config.Quiet,
		verbose: config.Verbose,
	}
}

// PrintSummary prints the per-benchmark sample tables of a report.
func (c *Console) PrintSummary(r *Report) {
	if c.quiet {
		if r.Passed() {
			c.writeln(c.scheme.Success.Sprint("PASSED"))
			return
		}
		c.writeln(c.scheme.Error.Sprint("FAILED"))
		for _, b := range r.Benchmarks {
			if b.Error != "" {
				c.writeln(fmt.Sprintf("  %s %s: %s", c.scheme.ErrorIcon(), b.Name, b.Error))
			}
		}
		return
	}

	line := strings.Repeat("━", ruleWidth)
	status := c.scheme.Success.Sprint("Completed ✓")
	if !r.Passed() {
		status = c.scheme.Error.Sprintf("Failed ✗ (%d of %d)", r.Failed(), len(r.Benchmarks))
	}

	c.writeln(c.scheme.Title.Sprint(line))
	c.writeln(fmt.Sprintf("%s - %s", c.scheme.Name.Sprint(r.Name), status))
	c.writeln(c.scheme.Title.Sprint(line))
	c.writeln(fmt.Sprintf("Seed:        %s", c.scheme.Value.Sprint(r.Seed)))
	c.writeln(fmt.Sprintf("Sizes:       %s", c.scheme.Value.Sprint(formatSizes(r.Sizes))))
	c.writeln(fmt.Sprintf("Benchmarks:  %s", c.scheme.Value.Sprint(len(r.Benchmarks))))
	c.writeln(fmt.Sprintf("Duration:    %s", c.scheme.Value.Sprint(formatDuration(r.Duration))))
	c.writeln("")

	for _, b := range r.Benchmarks {
		c.printBenchmark(b)
	}
}

func (c *Console) printBenchmark(b BenchmarkReport) {
	icon := c.scheme.SuccessIcon()
	if b.Error != "" {
		icon = c.scheme.ErrorIcon()
	}
	c.writeln(fmt.Sprintf("%s %s %s", icon, c.scheme.Name.Sprint(b.Name),
		c.scheme.Muted.Sprintf("(%s)", formatDuration(b.Elapsed))))

	if len(b.Samples) > 0 {
		c.writeln(c.sampleTable(b.Samples))
	}

	if b.Fit != nil {
		c.writeln(fmt.Sprintf("  Fit: %s %s", c.scheme.Highlight.Sprint(b.Fit.Class),
			c.scheme.Muted.Sprintf("(R²=%.3f)", b.Fit.RSquared)))
	}
	if b.Error != "" {
		c.writeln(fmt.Sprintf("  %s %s", c.scheme.Error.Sprint("Error:"), b.Error))
	}
	c.writeln("")
}

func (c *Console) sampleTable(samples []analyzer.Sample) string {
	headers := []string{"SIZE", "EFFECTIVE", "MEAN", "P50", "P99"}
	if c.verbose {
		headers = append(headers, "MIN", "MAX", "STDDEV", "CALLS")
	}

	rows := make([][]string, 0, len(samples))
	for _, s := range samples {
		if s.Skipped {
			row := []string{humanize.Comma(int64(s.Size)), humanize.Comma(int64(s.EffectiveSize)), "skipped", "-", "-"}
			if c.verbose {
				row = append(row, "-", "-", "-", "0")
			}
			rows = append(rows, row)
			continue
		}

		row := []string{
			humanize.Comma(int64(s.Size)),
			humanize.Comma(int64(s.EffectiveSize)),
			formatDuration(s.Duration),
			formatDuration(s.Stats.P50),
			formatDuration(s.Stats.P99),
		}
		if c.verbose {
			row = append(row,
				formatDuration(s.Stats.Min),
				formatDuration(s.Stats.Max),
				formatDuration(s.Stats.StdDev),
				humanize.Comma(s.Stats.Count))
		}
		rows = append(rows, row)
	}

	return renderTable(headers, rows)
}

// PrintTree prints qualified names as a tree under root.
func (c *Console) PrintTree(root string, names []string) {
	t := tree.Root(c.scheme.Name.Sprint(root))
	nodes := map[string]*tree.Tree{"": t}

	for _, name := range names {
		parts := strings.Split(name, analyzer.Separator)
		parent := ""
		for i, part := range parts {
			key := strings.Join(parts[:i+1], analyzer.Separator)
			if i == len(parts)-1 {
				nodes[parent].Child(part)
				break
			}
			if _, ok := nodes[key]; !ok {
				sub := tree.Root(part)
				nodes[parent].Child(sub)
				nodes[key] = sub
			}
			parent = key
		}
	}

	c.writeln(t.String())
}

// PrintComparisons prints the change of each benchmark between two reports.
func (c *Console) PrintComparisons(comparisons []Comparison, threshold float64) {
	if len(comparisons) == 0 {
		c.writeln(c.scheme.Warning.Sprint("No common benchmarks to compare"))
		return
	}

	rows := make([][]string, 0, len(comparisons))
	for _, cmp := range comparisons {
		rows = append(rows, []string{
			cmp.Name,
			humanize.Comma(int64(cmp.Size)),
			formatDuration(cmp.Prev),
			formatDuration(cmp.Curr),
			c.formatDiff(cmp.DiffPercent, threshold),
		})
	}
	c.writeln(renderTable([]string{"BENCHMARK", "SIZE", "OLD", "NEW", "CHANGE"}, rows))
}

func (c *Console) formatDiff(diff, threshold float64) string {
	s := fmt.Sprintf("%+.1f%%", diff)
	switch {
	case threshold > 0 && diff > threshold:
		return c.scheme.Error.Sprint(s)
	case threshold > 0 && diff < -threshold:
		return c.scheme.Success.Sprint(s)
	default:
		return s
	}
}

func (c *Console) writeln(s string) {
	fmt.Fprintln(c.writer, s)
}

func renderTable(headers []string, rows [][]string) string {
	cell := lipgloss.NewStyle().Padding(0, 1)
	header := cell.Bold(true)

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}

func formatSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, n := range sizes {
		parts[i] = humanize.Comma(int64(n))
	}
	return strings.Join(parts, ", ")
}

// formatDuration formats a duration in the largest unit that keeps the
// value at or above one.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d)/float64(time.Microsecond))
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	default:
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
}

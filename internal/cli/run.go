package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/JelsikJozef/DataStructures/internal/benchmarks"
	"github.com/JelsikJozef/DataStructures/internal/config"
	"github.com/JelsikJozef/DataStructures/internal/output"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark suite",
		Long: `Run every selected benchmark at every size and report the samples.

Examples:
  complexity run
  complexity run --sizes 10,100,1000 --include 'hash-table-analyzer/*'
  complexity run --config nightly.yaml --format json -o nightly.json`,
		Args: cobra.NoArgs,
		RunE: runSuite,
	}

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "Suite configuration file (YAML or JSON)")
	flags.String("sizes", "", "Comma-separated sizes to measure, e.g. 1,10,100")
	flags.Uint64("seed", config.DefaultSeed, "Seed for every benchmark's random generator")
	flags.Int("warmup", config.DefaultWarmup, "Untimed calls per size")
	flags.Int("repetitions", config.DefaultRepetitions, "Timed calls per size")
	flags.StringSlice("include", nil, "Only run benchmarks matching these patterns")
	flags.StringSlice("exclude", nil, "Skip benchmarks matching these patterns")
	flags.String("format", config.DefaultFormat, "Output format: text, json, yaml")
	flags.StringP("output", "o", "", "Write the report to a file")
	flags.Bool("fit", false, "Fit each benchmark to a complexity class")
	flags.Duration("timeout", 0, "Abort the run after this long (0 means no limit)")
	addConsoleFlags(cmd)

	return cmd
}

func addConsoleFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().BoolP("verbose", "v", false, "Verbose output")
	cmd.Flags().BoolP("quiet", "q", false, "Only print the final status")
}

func runSuite(cmd *cobra.Command, args []string) error {
	cfg, err := loadSuiteConfig(cmd)
	if err != nil {
		return err
	}

	config.ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	sizes, err := cfg.ResolveSizes()
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	noColor, _ := cmd.Flags().GetBool("no-color")
	logger := newLogger(cmd.ErrOrStderr(), verbose, quiet)

	suite, err := benchmarks.NewSuite(benchmarks.Options{
		Name:        cfg.Name,
		Seed:        cfg.Seed,
		Warmup:      cfg.WarmupOrDefault(config.DefaultWarmup),
		Repetitions: cfg.Repetitions,
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	if suite.Len() == 0 {
		return fmt.Errorf("no benchmarks match the include and exclude patterns")
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if timeout := cfg.Timeout.GetDuration(0); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logger.Info("starting run", "suite", cfg.Name, "sizes", len(sizes), "seed", cfg.Seed)
	start := time.Now()
	results := suite.Run(ctx, sizes)

	report := output.BuildReport(output.ReportOptions{
		Name:      cfg.Name,
		Seed:      cfg.Seed,
		Sizes:     sizes,
		StartTime: start,
		Duration:  time.Since(start),
		Fit:       cfg.Fit,
	}, results)
	logger.Info("run finished", "benchmarks", len(report.Benchmarks), "failed", report.Failed(), "duration", report.Duration)

	console := output.NewConsole(output.ConsoleConfig{
		Writer:  cmd.OutOrStdout(),
		NoColor: noColor,
		Quiet:   quiet,
		Verbose: verbose,
	})

	if cfg.Output.Path != "" {
		if err := writeReportFile(cfg.Output.Path, report, format); err != nil {
			return err
		}
		logger.Info("report written", "path", cfg.Output.Path, "format", format)
		console.PrintSummary(report)
	} else if format == output.FormatText {
		console.PrintSummary(report)
	} else if err := output.Write(cmd.OutOrStdout(), report, format); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("run aborted: %w", err)
	}
	if !report.Passed() {
		return fmt.Errorf("%d of %d benchmarks failed", report.Failed(), len(report.Benchmarks))
	}
	return nil
}

// loadSuiteConfig reads --config, if given, and applies the flags the user
// set on top of it.
func loadSuiteConfig(cmd *cobra.Command) (*config.SuiteConfig, error) {
	flags := cmd.Flags()

	cfg := &config.SuiteConfig{}
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
		cfg = loaded
	}

	if flags.Changed("sizes") {
		s, _ := flags.GetString("sizes")
		sizes, err := config.ParseSizes(s)
		if err != nil {
			return nil, err
		}
		if len(sizes) == 0 {
			return nil, errors.New("--sizes needs at least one size")
		}
		cfg.Sizes = sizes
		cfg.Sweep = nil
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("warmup") {
		w, _ := flags.GetInt("warmup")
		cfg.Warmup = &w
	}
	if flags.Changed("repetitions") {
		cfg.Repetitions, _ = flags.GetInt("repetitions")
	}
	if flags.Changed("include") {
		cfg.Include, _ = flags.GetStringSlice("include")
	}
	if flags.Changed("exclude") {
		cfg.Exclude, _ = flags.GetStringSlice("exclude")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("output") {
		cfg.Output.Path, _ = flags.GetString("output")
	}
	if flags.Changed("fit") {
		cfg.Fit, _ = flags.GetBool("fit")
	}
	if flags.Changed("timeout") {
		d, _ := flags.GetDuration("timeout")
		cfg.Timeout = config.Duration(d)
	}
	return cfg, nil
}

func writeReportFile(path string, report *output.Report, format output.OutputFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := output.Write(f, report, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Package output renders complexity results: console summaries, JSON and
// YAML reports, and comparisons between two saved reports.
package output

import (
	"time"

	"github.com/JelsikJozef/DataStructures/internal/analyzer"
	"github.com/JelsikJozef/DataStructures/internal/metrics"
)

// Report is the serialisable result of one suite run.
type Report struct {
	Name       string            `json:"name" yaml:"name"`
	Seed       uint64            `json:"seed" yaml:"seed"`
	StartTime  time.Time         `json:"startTime" yaml:"startTime"`
	Duration   time.Duration     `json:"duration" yaml:"duration"`
	Sizes      []int             `json:"sizes" yaml:"sizes"`
	Benchmarks []BenchmarkReport `json:"benchmarks" yaml:"benchmarks"`
}

// BenchmarkReport holds the samples of one leaf analyzer.
type BenchmarkReport struct {
	Name    string            `json:"name" yaml:"name"`
	Samples []analyzer.Sample `json:"samples" yaml:"samples"`
	Elapsed time.Duration     `json:"elapsed" yaml:"elapsed"`
	Error   string            `json:"error,omitempty" yaml:"error,omitempty"`
	Fit     *FitReport        `json:"fit,omitempty" yaml:"fit,omitempty"`
}

// FitReport is the complexity class fitted to a benchmark's samples.
type FitReport struct {
	Class       metrics.Class `json:"class" yaml:"class"`
	Coefficient float64       `json:"coefficient" yaml:"coefficient"`
	Intercept   float64       `json:"intercept" yaml:"intercept"`
	RSquared    float64       `json:"rSquared" yaml:"rSquared"`
}

// ReportOptions controls BuildReport.
type ReportOptions struct {
	Name      string
	Seed      uint64
	Sizes     []int
	StartTime time.Time
	Duration  time.Duration

	// Fit fits every benchmark with enough usable samples.
	Fit bool
}

// BuildReport converts composite results into a report.
func BuildReport(opts ReportOptions, results analyzer.Results) *Report {
	r := &Report{
		Name:       opts.Name,
		Seed:       opts.Seed,
		StartTime:  opts.StartTime,
		Duration:   opts.Duration,
		Sizes:      opts.Sizes,
		Benchmarks: make([]BenchmarkReport, 0, len(results)),
	}

	for _, o := range results {
		b := BenchmarkReport{
			Name:    o.Name,
			Samples: o.Samples,
			Elapsed: o.Elapsed,
		}
		if b.Samples == nil {
			b.Samples = []analyzer.Sample{}
		}
		if o.Err != nil {
			b.Error = o.Err.Error()
		}
		if opts.Fit {
			b.Fit = fitSamples(o.Samples)
		}
		r.Benchmarks = append(r.Benchmarks, b)
	}
	return r
}

// fitSamples fits the non-skipped samples by effective size. It returns nil
// when there are not enough distinct sizes.
func fitSamples(samples []analyzer.Sample) *FitReport {
	points := make([]metrics.Point, 0, len(samples))
	for _, s := range samples {
		if s.Skipped {
			continue
		}
		points = append(points, metrics.Point{Size: s.EffectiveSize, Duration: s.Duration})
	}

	fit, err := metrics.Fit(points)
	if err != nil {
		return nil
	}
	return &FitReport{
		Class:       fit.Class,
		Coefficient: fit.Coefficient,
		Intercept:   fit.Intercept,
		RSquared:    fit.RSquared,
	}
}

// Passed reports whether every benchmark completed without error.
func (r *Report) Passed() bool {
	return r.Failed() == 0
}

// Failed returns the number of benchmarks that reported an error.
func (r *Report) Failed() int {
	n := 0
	for _, b := range r.Benchmarks {
		if b.Error != "" {
			n++
		}
	}
	return n
}

// Benchmark returns the benchmark report with the given qualified name.
func (r *Report) Benchmark(name string) (BenchmarkReport, bool) {
	for _, b := range r.Benchmarks {
		if b.Name == name {
			return b, true
		}
	}
	return BenchmarkReport{}, false
}

// Package metrics aggregates the timed calls made for one sample and fits
// measured samples to common complexity classes.
//
// Timings are kept in an HDR histogram with nanosecond resolution, so
// percentiles stay accurate across the wide range a size sweep produces
// (a hash lookup costs nanoseconds, a 100x100 multiplication milliseconds).
//
// # Basic Usage
//
//	rec := metrics.NewRecorder()
//	for i := 0; i < 5; i++ {
//	    start := time.Now()
//	    op()
//	    rec.Record(time.Since(start))
//	}
//	stats := rec.Stats()
//	fmt.Printf("mean=%v p99=%v\n", stats.Mean, stats.P99)
//
// # Thread Safety
//
// Recorder is not safe for concurrent use. Measurements are taken strictly
// sequentially and each analyzer owns its recorder.
package metrics

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// RecorderConfig contains configuration for a Recorder.
type RecorderConfig struct {
	// HistogramMin is the minimum recordable value in nanoseconds (default: 1)
	HistogramMin int64

	// HistogramMax is the maximum recordable value in nanoseconds (default: 1 minute)
	HistogramMax int64

	// HistogramSigFigs is the number of significant figures (default: 3)
	HistogramSigFigs int
}

// DefaultRecorderConfig returns the default configuration.
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		HistogramMin:     1,
		HistogramMax:     int64(time.Minute),
		HistogramSigFigs: 3,
	}
}

// Recorder collects the durations of repeated calls of one operation.
//
// The histogram answers percentile queries; the exact sum is tracked next to
// it so the mean does not inherit histogram bucketing error.
type Recorder struct {
	hist   *hdrhistogram.Histogram
	sum    time.Duration
	count  int64
	config RecorderConfig
}

// NewRecorder creates a recorder with the default configuration.
func NewRecorder() *Recorder {
	return NewRecorderWithConfig(DefaultRecorderConfig())
}

// NewRecorderWithConfig creates a recorder with a custom configuration.
func NewRecorderWithConfig(config RecorderConfig) *Recorder {
	return &Recorder{
		hist:   hdrhistogram.New(config.HistogramMin, config.HistogramMax, config.HistogramSigFigs),
		config: config,
	}
}

// Record adds one measured duration. Negative durations are recorded as zero.
func (r *Recorder) Record(d time.Duration) {
	if d < 0 {
		d = 0
	}
	r.sum += d
	r.count++

	// Clamp to valid range
	v := int64(d)
	if v < r.config.HistogramMin {
		v = r.config.HistogramMin
	}
	if v > r.config.HistogramMax {
		v = r.config.HistogramMax
	}
	// RecordValue only fails for out-of-range values, which the clamp rules out.
	_ = r.hist.RecordValue(v)
}

// Count returns the number of recorded durations.
func (r *Recorder) Count() int64 {
	return r.count
}

// Mean returns the exact arithmetic mean of the recorded durations.
func (r *Recorder) Mean() time.Duration {
	if r.count == 0 {
		return 0
	}
	return r.sum / time.Duration(r.count)
}

// Stats returns a summary of the recorded durations. A recorder with no
// values returns zero stats.
func (r *Recorder) Stats() DurationStats {
	if r.count == 0 {
		return DurationStats{}
	}
	return DurationStats{
		Min:    time.Duration(r.hist.Min()),
		Max:    time.Duration(r.hist.Max()),
		Mean:   r.Mean(),
		StdDev: time.Duration(r.hist.StdDev()),
		P50:    time.Duration(r.hist.ValueAtQuantile(50)),
		P90:    time.Duration(r.hist.ValueAtQuantile(90)),
		P99:    time.Duration(r.hist.ValueAtQuantile(99)),
		Count:  r.count,
	}
}

// Reset clears all recorded values.
func (r *Recorder) Reset() {
	r.hist.Reset()
	r.sum = 0
	r.count = 0
}

// DurationStats summarises the timed calls behind one sample.
type DurationStats struct {
	Min    time.Duration `json:"min" yaml:"min"`
	Max    time.Duration `json:"max" yaml:"max"`
	Mean   time.Duration `json:"mean" yaml:"mean"`
	StdDev time.Duration `json:"stdDev" yaml:"stdDev"`
	P50    time.Duration `json:"p50" yaml:"p50"`
	P90    time.Duration `json:"p90" yaml:"p90"`
	P99    time.Duration `json:"p99" yaml:"p99"`
	Count  int64         `json:"count" yaml:"count"`
}

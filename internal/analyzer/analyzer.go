package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/JelsikJozef/DataStructures/internal/metrics"
)

const (
	// DefaultSeed seeds every analyzer's generator unless WithSeed is given.
	DefaultSeed uint64 = 144

	// DefaultWarmup is the number of untimed calls made before measuring.
	DefaultWarmup = 1

	// DefaultRepetitions is the number of timed calls averaged into a sample.
	DefaultRepetitions = 5
)

// Subject is the capability set every measured data structure provides.
// Structure-specific accessors and mutators are supplied by the concrete type.
type Subject interface {
	// Clear resets the subject to empty.
	Clear()

	// Size returns the current element count.
	Size() int
}

// Benchmark supplies the two hooks that turn a subject into a measurement.
type Benchmark[S Subject] interface {
	// GrowToSize must leave s.Size() == n, grown the way real use grows the
	// structure (one element at a time), not merely resized.
	GrowToSize(s S, n int, rng *rand.Rand) error

	// ExecuteOperation performs exactly one representative instance of the
	// operation under test. It returns ErrSkip when the subject is degenerate.
	ExecuteOperation(s S, rng *rand.Rand) error
}

// SizeLimiter is implemented by benchmarks that cap the size they grow to,
// typically because the measured algorithm is super-linear.
type SizeLimiter interface {
	EffectiveSize(requested int) int
}

// Sample is one aggregated measurement at one size.
type Sample struct {
	// Size is the size requested by the caller.
	Size int `json:"size" yaml:"size"`

	// EffectiveSize is the size the subject was actually grown to. It differs
	// from Size only for benchmarks implementing SizeLimiter.
	EffectiveSize int `json:"effectiveSize" yaml:"effectiveSize"`

	// Duration is the mean of the timed calls.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Stats describes the distribution of the timed calls.
	Stats metrics.DurationStats `json:"stats" yaml:"stats"`

	// Skipped reports that the operation was not meaningful at this size.
	Skipped bool `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Clamped reports whether the benchmark measured a smaller size than requested.
func (s Sample) Clamped() bool {
	return s.EffectiveSize != s.Size
}

// Clock is the time source used to time operations.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now returns f().
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock, including its monotonic reading.
var SystemClock Clock = ClockFunc(time.Now)

// Consume hands v to an opaque sink so the compiler cannot elide the
// computation that produced it.
//
//go:noinline
func Consume[T any](v T) {
	runtime.KeepAlive(v)
}

type settings struct {
	seed        uint64
	warmup      int
	repetitions int
	clock       Clock
	logger      *slog.Logger
}

// Option configures an Analyzer.
type Option func(*settings)

// WithSeed sets the generator seed.
func WithSeed(seed uint64) Option {
	return func(s *settings) { s.seed = seed }
}

// WithWarmup sets the number of untimed calls per size. Negative values are
// treated as zero.
func WithWarmup(n int) Option {
	return func(s *settings) { s.warmup = max(n, 0) }
}

// WithRepetitions sets the number of timed calls per size. Values below one
// are treated as one.
func WithRepetitions(n int) Option {
	return func(s *settings) { s.repetitions = max(n, 1) }
}

// WithClock replaces the time source.
func WithClock(c Clock) Option {
	return func(s *settings) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// Analyzer measures one operation against the one subject it owns.
type Analyzer[S Subject] struct {
	name    string
	subject S
	bench   Benchmark[S]

	seed uint64
	src  *rand.PCG
	rng  *rand.Rand

	warmup      int
	repetitions int
	clock       Clock
	rec         *metrics.Recorder
	logger      *slog.Logger
	owner       *Composite
}

var _ Node = (*Analyzer[Subject])(nil)

// New creates an analyzer named name that measures bench against subject.
// The analyzer takes ownership of subject.
func New[S Subject](name string, subject S, bench Benchmark[S], opts ...Option) *Analyzer[S] {
	cfg := settings{
		seed:        DefaultSeed,
		warmup:      DefaultWarmup,
		repetitions: DefaultRepetitions,
		clock:       SystemClock,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	src := rand.NewPCG(cfg.seed, cfg.seed)
	return &Analyzer[S]{
		name:        name,
		subject:     subject,
		bench:       bench,
		seed:        cfg.seed,
		src:         src,
		rng:         rand.New(src),
		warmup:      cfg.warmup,
		repetitions: cfg.repetitions,
		clock:       cfg.clock,
		rec:         metrics.NewRecorder(),
		logger:      cfg.logger,
	}
}

// Name returns the analyzer's name.
func (a *Analyzer[S]) Name() string {
	return a.name
}

// Subject returns the subject owned by the analyzer.
func (a *Analyzer[S]) Subject() S {
	return a.subject
}

// Reset reseeds the generator so the next Run replays the same random choices.
func (a *Analyzer[S]) Reset() {
	a.src.Seed(a.seed, a.seed)
}

// Run sweeps sizes in the given order and returns one sample per size.
//
// The first failing size stops the sweep; the samples measured so far are
// returned together with the error. The context is checked between sizes,
// never while an operation is being timed.
func (a *Analyzer[S]) Run(ctx context.Context, sizes []int) ([]Sample, error) {
	samples := make([]Sample, 0, len(sizes))

	for _, n := range sizes {
		if err := ctx.Err(); err != nil {
			return samples, err
		}

		sample, err := a.measure(n)
		if err != nil {
			return samples, fmt.Errorf("%s at size %d: %w", a.name, n, err)
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// measure grows the subject to n and times the operation.
func (a *Analyzer[S]) measure(n int) (Sample, error) {
	if n < 0 {
		return Sample{}, fmt.Errorf("%w: negative size %d", ErrContractViolation, n)
	}

	eff := n
	if limiter, ok := a.bench.(SizeLimiter); ok {
		eff = limiter.EffectiveSize(n)
		if eff < 0 || eff > n {
			return Sample{}, fmt.Errorf("%w: effective size %d outside [0, %d]", ErrContractViolation, eff, n)
		}
		if eff != n {
			a.logger.Debug("size clamped", "analyzer", a.name, "requested", n, "effective", eff)
		}
	}

	if err := a.bench.GrowToSize(a.subject, eff, a.rng); err != nil {
		return Sample{}, fmt.Errorf("grow: %w", err)
	}
	if got := a.subject.Size(); got != eff {
		return Sample{}, &ContractError{Requested: n, Expected: eff, Actual: got}
	}

	skipped := Sample{Size: n, EffectiveSize: eff, Skipped: true}

	for i := 0; i < a.warmup; i++ {
		err := a.bench.ExecuteOperation(a.subject, a.rng)
		if errors.Is(err, ErrSkip) {
			return skipped, nil
		}
		if err != nil {
			return Sample{}, fmt.Errorf("warm-up: %w", err)
		}
	}

	a.rec.Reset()
	for i := 0; i < a.repetitions; i++ {
		start := a.clock.Now()
		err := a.bench.ExecuteOperation(a.subject, a.rng)
		elapsed := a.clock.Now().Sub(start)

		if errors.Is(err, ErrSkip) {
			return skipped, nil
		}
		if err != nil {
			return Sample{}, fmt.Errorf("operation: %w", err)
		}
		a.rec.Record(elapsed)
	}

	stats := a.rec.Stats()
	return Sample{
		Size:          n,
		EffectiveSize: eff,
		Duration:      stats.Mean,
		Stats:         stats,
	}, nil
}

// collect runs the analyzer as a leaf of a composite.
func (a *Analyzer[S]) collect(ctx context.Context, sizes []int, prefix string, out *Results) {
	start := time.Now()
	samples, err := a.Run(ctx, sizes)
	*out = append(*out, Outcome{
		Name:    qualify(prefix, a.name),
		Samples: samples,
		Err:     err,
		Elapsed: time.Since(start),
	})
}

func (a *Analyzer[S]) parent() *Composite { return a.owner }
func (a *Analyzer[S]) setParent(c *Composite) { a.owner = c }

func (a *Analyzer[S]) walk(prefix string, fn func(name string)) {
	fn(qualify(prefix, a.name))
}

func (a *Analyzer[S]) leaves() int {
	return 1
}

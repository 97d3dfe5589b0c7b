package benchmarks

import (
	"fmt"
	"log/slog"
	"path"

	"github.com/JelsikJozef/DataStructures/internal/analyzer"
)

// Group names in the default suite.
const (
	HashTableGroup = "hash-table-analyzer"
	MatrixGroup    = "matrix-analyzer"
)

// DefaultSuiteName names the root composite when Options.Name is empty.
const DefaultSuiteName = "complexity-suite"

// Options configures the analyzers built by NewSuite.
type Options struct {
	Name        string
	Seed        uint64
	Warmup      int
	Repetitions int

	// Include keeps only the leaves whose qualified name matches one of the
	// patterns. Empty means every leaf.
	Include []string

	// Exclude drops the leaves whose qualified name matches one of the
	// patterns. It is applied after Include.
	Exclude []string

	Logger *slog.Logger
	Clock  analyzer.Clock
}

// DefaultOptions returns options matching the analyzer defaults.
func DefaultOptions() Options {
	return Options{
		Name:        DefaultSuiteName,
		Seed:        analyzer.DefaultSeed,
		Warmup:      analyzer.DefaultWarmup,
		Repetitions: analyzer.DefaultRepetitions,
	}
}

func (o Options) analyzerOptions() []analyzer.Option {
	return []analyzer.Option{
		analyzer.WithSeed(o.Seed),
		analyzer.WithWarmup(o.Warmup),
		analyzer.WithRepetitions(o.Repetitions),
		analyzer.WithClock(o.Clock),
		analyzer.WithLogger(o.Logger),
	}
}

// entry describes one leaf of the default suite.
type entry struct {
	group string
	name  string
	build func(name string, opts []analyzer.Option) analyzer.Node
}

func (e entry) qualified() string {
	return e.group + analyzer.Separator + e.name
}

func hashTable(bench analyzer.Benchmark[*Table]) func(string, []analyzer.Option) analyzer.Node {
	return func(name string, opts []analyzer.Option) analyzer.Node {
		return analyzer.New[*Table](name, NewTable(), bench, opts...)
	}
}

func matrix(layout Layout, bench func() analyzer.Benchmark[Matrix]) func(string, []analyzer.Option) analyzer.Node {
	return func(name string, opts []analyzer.Option) analyzer.Node {
		return analyzer.New[Matrix](name, layout(), bench(), opts...)
	}
}

func access() analyzer.Benchmark[Matrix]      { return MatrixAccess{} }
func determinant() analyzer.Benchmark[Matrix] { return MatrixDeterminant{} }

func multiplication(layout Layout) func() analyzer.Benchmark[Matrix] {
	return func() analyzer.Benchmark[Matrix] { return NewMatrixMultiplication(layout) }
}

// catalog lists the default suite in run order.
var catalog = []entry{
	{HashTableGroup, "hash-table-access", hashTable(HashTableAccess{})},
	{HashTableGroup, "hash-table-insert", hashTable(HashTableInsert{})},

	{MatrixGroup, "continuous-matrix-access", matrix(Contiguous, access)},
	{MatrixGroup, "continuous-matrix-determinant", matrix(Contiguous, determinant)},
	{MatrixGroup, "continuous-matrix-multiplication", matrix(Contiguous, multiplication(Contiguous))},

	{MatrixGroup, "pointer-matrix-access", matrix(Nested, access)},
	{MatrixGroup, "pointer-matrix-determinant", matrix(Nested, determinant)},
	{MatrixGroup, "pointer-matrix-multiplication", matrix(Nested, multiplication(Nested))},
}

// Names returns the qualified name of every leaf in the default suite.
func Names() []string {
	names := make([]string, len(catalog))
	for i, e := range catalog {
		names[i] = e.qualified()
	}
	return names
}

// Match reports whether a qualified name passes the include and exclude
// patterns. Patterns use path.Match syntax.
func Match(name string, include, exclude []string) (bool, error) {
	keep := len(include) == 0
	for _, p := range include {
		ok, err := path.Match(p, name)
		if err != nil {
			return false, fmt.Errorf("include pattern %q: %w", p, err)
		}
		if ok {
			keep = true
			break
		}
	}
	if !keep {
		return false, nil
	}

	for _, p := range exclude {
		ok, err := path.Match(p, name)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		if ok {
			return false, nil
		}
	}
	return true, nil
}

// NewSuite builds the default analyzer tree filtered by opts. Groups left
// without leaves are omitted. Every analyzer gets its own subject and its
// own generator seeded with opts.Seed.
func NewSuite(opts Options) (*analyzer.Composite, error) {
	name := opts.Name
	if name == "" {
		name = DefaultSuiteName
	}

	root := analyzer.NewComposite(name, analyzer.WithCompositeLogger(opts.Logger))
	groups := make(map[string]*analyzer.Composite)
	var order []string

	aopts := opts.analyzerOptions()
	for _, e := range catalog {
		ok, err := Match(e.qualified(), opts.Include, opts.Exclude)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		g, exists := groups[e.group]
		if !exists {
			g = analyzer.NewComposite(e.group, analyzer.WithCompositeLogger(opts.Logger))
			groups[e.group] = g
			order = append(order, e.group)
		}
		if err := g.Add(e.build(e.name, aopts)); err != nil {
			return nil, err
		}
	}

	for _, group := range order {
		if err := root.Add(groups[group]); err != nil {
			return nil, err
		}
	}
	return root, nil
}

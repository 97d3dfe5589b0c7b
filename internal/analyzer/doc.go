// Package analyzer measures how the cost of a single operation on a data
// structure scales with the structure's size.
//
// # Overview
//
// A concrete benchmark supplies two hooks through the Benchmark interface:
//
//   - GrowToSize rebuilds the subject organically until Size() == n
//   - ExecuteOperation performs exactly one instance of the operation under test
//
// An Analyzer binds one benchmark to the one subject it exclusively owns and
// sweeps a sequence of sizes. For each size it grows the subject, makes the
// configured warm-up calls, times the configured repetitions and records one
// Sample.
//
// Analyzers are grouped into a tree with Composite. Running a composite runs
// every leaf exactly once, in registration order, and returns one Outcome per
// leaf keyed by a qualified name such as "hash-table-analyzer/hash-table-access".
//
// # Basic Usage
//
//	table := subjects.NewIntHashTable[int]()
//	access := analyzer.New("hash-table-access", table, benchmarks.HashTableAccess{})
//
//	suite := analyzer.NewComposite("suite")
//	if err := suite.Add(access); err != nil {
//	    return err
//	}
//
//	results := suite.Run(ctx, []int{1, 10, 100, 1000})
//	for _, outcome := range results {
//	    fmt.Println(outcome.Name, len(outcome.Samples), outcome.Err)
//	}
//
// # Randomness
//
// Every analyzer owns a PCG generator seeded with a fixed constant (DefaultSeed
// unless overridden with WithSeed). The generator is handed to both hooks, so
// two runs with the same sizes make the same sequence of random choices.
// Nothing in this package reads or writes process-global random state.
//
// # Failure Isolation
//
// A failing leaf (an error from a hook, a contract violation, or a panic) is
// reported as an Outcome carrying the error; its siblings still run.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. Measurements run
// strictly sequentially so that CPU contention cannot distort timings.
package analyzer

// Package benchmarks holds the concrete benchmarks run by the complexity
// suite and the function that assembles them into an analyzer tree.
package benchmarks

import (
	"math/rand/v2"

	"github.com/JelsikJozef/DataStructures/internal/analyzer"
	"github.com/JelsikJozef/DataStructures/internal/subjects"
)

// maxValue bounds the random payload stored in every subject.
const maxValue = 100

// Table is the hash table type measured by the hash table benchmarks.
type Table = subjects.HashTable[int, int]

// NewTable returns an empty Table.
func NewTable() *Table {
	return subjects.NewIntHashTable[int]()
}

// growTable rebuilds t with keys 0..n-1 mapped to random values.
func growTable(t *Table, n int, rng *rand.Rand) {
	t.Clear()
	for i := 0; i < n; i++ {
		t.Insert(i, rng.IntN(maxValue))
	}
}

// HashTableAccess measures a lookup of a random present key.
type HashTableAccess struct{}

func (HashTableAccess) GrowToSize(t *Table, n int, rng *rand.Rand) error {
	growTable(t, n, rng)
	return nil
}

func (HashTableAccess) ExecuteOperation(t *Table, rng *rand.Rand) error {
	if t.Size() == 0 {
		return analyzer.ErrSkip
	}
	v, ok := t.Find(rng.IntN(t.Size()))
	analyzer.Consume(v)
	analyzer.Consume(ok)
	return nil
}

// HashTableInsert measures the insertion of a key not yet in the table.
// Each call grows the table by one.
type HashTableInsert struct{}

func (HashTableInsert) GrowToSize(t *Table, n int, rng *rand.Rand) error {
	growTable(t, n, rng)
	return nil
}

// ExecuteOperation inserts key Size(), which growTable and earlier calls
// guarantee is absent.
func (HashTableInsert) ExecuteOperation(t *Table, rng *rand.Rand) error {
	t.Insert(t.Size(), rng.IntN(maxValue))
	return nil
}

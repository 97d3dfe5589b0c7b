// Package subjects provides the data structures measured by the default
// benchmark suite: a chained hash table and two matrix layouts.
//
// None of the types in this package are safe for concurrent use.
package subjects

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

const (
	initialBuckets = 8
	maxLoadFactor  = 0.75
)

// Hasher maps a key to a 64-bit hash.
type Hasher[K comparable] func(K) uint64

// HashInt hashes an int by its little-endian bytes.
func HashInt(k int) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(k))
	return xxhash.Sum64(buf[:])
}

// HashString hashes a string.
func HashString(k string) uint64 {
	return xxhash.Sum64String(k)
}

type entry[K comparable, V any] struct {
	key   K
	value V
	next  *entry[K, V]
}

// HashTable is a separate-chaining hash table with a power-of-two bucket
// array that doubles when the load factor exceeds 0.75.
type HashTable[K comparable, V any] struct {
	buckets []*entry[K, V]
	size    int
	hash    Hasher[K]
}

// NewHashTable creates an empty table using hash for bucket selection.
func NewHashTable[K comparable, V any](hash Hasher[K]) *HashTable[K, V] {
	return &HashTable[K, V]{
		buckets: make([]*entry[K, V], initialBuckets),
		hash:    hash,
	}
}

// NewIntHashTable creates an empty table keyed by int.
func NewIntHashTable[V any]() *HashTable[int, V] {
	return NewHashTable[int, V](HashInt)
}

// NewStringHashTable creates an empty table keyed by string.
func NewStringHashTable[V any]() *HashTable[string, V] {
	return NewHashTable[string, V](HashString)
}

func (h *HashTable[K, V]) index(k K) int {
	return int(h.hash(k) & uint64(len(h.buckets)-1))
}

// Insert stores v under k, replacing any existing value.
func (h *HashTable[K, V]) Insert(k K, v V) {
	i := h.index(k)
	for e := h.buckets[i]; e != nil; e = e.next {
		if e.key == k {
			e.value = v
			return
		}
	}

	h.buckets[i] = &entry[K, V]{key: k, value: v, next: h.buckets[i]}
	h.size++

	if float64(h.size) > maxLoadFactor*float64(len(h.buckets)) {
		h.grow()
	}
}

// Find returns the value stored under k.
func (h *HashTable[K, V]) Find(k K) (V, bool) {
	for e := h.buckets[h.index(k)]; e != nil; e = e.next {
		if e.key == k {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Contains reports whether k is present.
func (h *HashTable[K, V]) Contains(k K) bool {
	_, ok := h.Find(k)
	return ok
}

// Remove deletes k and reports whether it was present.
func (h *HashTable[K, V]) Remove(k K) bool {
	i := h.index(k)
	var prev *entry[K, V]
	for e := h.buckets[i]; e != nil; prev, e = e, e.next {
		if e.key != k {
			continue
		}
		if prev == nil {
			h.buckets[i] = e.next
		} else {
			prev.next = e.next
		}
		h.size--
		return true
	}
	return false
}

// Clear removes every entry and shrinks the bucket array back to its
// initial size.
func (h *HashTable[K, V]) Clear() {
	h.buckets = make([]*entry[K, V], initialBuckets)
	h.size = 0
}

// Size returns the number of entries.
func (h *HashTable[K, V]) Size() int {
	return h.size
}

// Buckets returns the current bucket count.
func (h *HashTable[K, V]) Buckets() int {
	return len(h.buckets)
}

func (h *HashTable[K, V]) grow() {
	old := h.buckets
	h.buckets = make([]*entry[K, V], len(old)*2)
	for _, head := range old {
		for e := head; e != nil; {
			next := e.next
			i := h.index(e.key)
			e.next = h.buckets[i]
			h.buckets[i] = e
			e = next
		}
	}
}

// Package memo holds bounded memo tables for pure functions.
package memo

import (
	"sync"
	"sync/atomic"
)

// Table is a bounded concurrent memo table.
//
// Entries live in two generations. Stores go to the head generation;
// once it holds maxSize entries the other generation is emptied and
// becomes the head, so at most 2*maxSize entries are retained and a
// recently stored key survives one rotation.
type Table[K comparable, V any] struct {
	gens    [2]atomic.Pointer[sync.Map]
	head    atomic.Uint32
	size    atomic.Uint32
	maxSize uint32
	rotate  sync.Mutex
}

// NewTable returns an empty table. maxSize must be positive.
func NewTable[K comparable, V any](maxSize uint32) *Table[K, V] {
	if maxSize == 0 {
		panic("maxSize should be greater than 0")
	}
	t := &Table[K, V]{maxSize: maxSize}
	t.gens[0].Store(&sync.Map{})
	t.gens[1].Store(&sync.Map{})
	return t
}

// Load looks k up in the head generation, then in the previous one.
func (t *Table[K, V]) Load(k K) (V, bool) {
	head := t.head.Load()
	if v, ok := t.gens[head].Load().Load(k); ok {
		return v.(V), true
	}
	if v, ok := t.gens[1-head].Load().Load(k); ok {
		return v.(V), true
	}
	var zero V
	return zero, false
}

// Store records v for k in the head generation.
func (t *Table[K, V]) Store(k K, v V) {
	if t.size.Add(1) > t.maxSize {
		t.rotate.Lock()
		if t.size.Load() > t.maxSize {
			next := 1 - t.head.Load()
			t.gens[next].Store(&sync.Map{})
			t.head.Store(next)
			t.size.Store(1)
		}
		t.rotate.Unlock()
	}
	t.gens[t.head.Load()].Load().Store(k, v)
}

// Len returns the number of entries stored since the last rotation.
func (t *Table[K, V]) Len() int {
	return int(t.size.Load())
}

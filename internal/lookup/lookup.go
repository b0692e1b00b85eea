// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package lookup implements the grouping hash table behind group-by and joins.
//
// Groups live in an arena (a slice indexed by group id). Each group links to
// the next group of its hash bucket and to the next group in creation order;
// the creation-order list is circular and anchored at the last created group,
// so the oldest group is last.insertNext. Links are arena indices, -1 for none.
package lookup

import (
	"github.com/dacapoday/lazy/compare"
	"github.com/dacapoday/lazy/cursor"
	"github.com/dacapoday/lazy/internal/trace"
)

const initialCapacity = 7

const none = -1

type group[K, V any] struct {
	key        K
	hash       int
	values     []V
	bucketNext int
	insertNext int
}

// Table maps keys to groups of values, yielding groups in first-seen key
// order and values in insertion order. Not thread-safe; read-only use after
// construction may be shared.
type Table[K, V any] struct {
	eq      compare.EqualityComparer[K]
	buckets []int
	groups  []group[K, V]
	last    int
	grows   int
}

// New creates an empty table. A nil eq selects compare.DefaultEquality.
func New[K, V any](eq compare.EqualityComparer[K]) *Table[K, V] {
	if eq == nil {
		eq = compare.DefaultEquality[K]()
	}
	return &Table[K, V]{
		eq:      eq,
		buckets: newBuckets(initialCapacity),
		last:    none,
	}
}

func newBuckets(size int) []int {
	buckets := make([]int, size)
	for i := range buckets {
		buckets[i] = none
	}
	return buckets
}

// Len returns the number of groups.
func (t *Table[K, V]) Len() int {
	return len(t.groups)
}

// Capacity returns the number of hash buckets.
func (t *Table[K, V]) Capacity() int {
	return len(t.buckets)
}

func (t *Table[K, V]) hashOf(key K) int {
	return int(t.eq.Hash(key) & 0x7FFFFFFF)
}

// Find returns the group holding key.
func (t *Table[K, V]) Find(key K) (g int, found bool) {
	return t.find(key, t.hashOf(key))
}

func (t *Table[K, V]) find(key K, hash int) (int, bool) {
	for g := t.buckets[hash%len(t.buckets)]; g != none; g = t.groups[g].bucketNext {
		if t.groups[g].hash == hash && t.eq.Equal(t.groups[g].key, key) {
			return g, true
		}
	}
	return none, false
}

// Contains reports whether a group exists for key.
func (t *Table[K, V]) Contains(key K) bool {
	_, found := t.Find(key)
	return found
}

// GetOrCreate returns the group for key, creating it after the last created
// group when the key is new.
func (t *Table[K, V]) GetOrCreate(key K) int {
	g, _ := t.Insert(key)
	return g
}

// Insert is GetOrCreate that also reports whether the group was created.
// Set operators use it as an ordered hash set.
func (t *Table[K, V]) Insert(key K) (g int, created bool) {
	hash := t.hashOf(key)
	if g, found := t.find(key, hash); found {
		return g, false
	}
	if len(t.groups) == len(t.buckets) {
		t.grow()
	}
	b := hash % len(t.buckets)
	g = len(t.groups)
	t.groups = append(t.groups, group[K, V]{
		key:        key,
		hash:       hash,
		bucketNext: t.buckets[b],
		insertNext: g,
	})
	t.buckets[b] = g
	if t.last != none {
		t.groups[g].insertNext = t.groups[t.last].insertNext
		t.groups[t.last].insertNext = g
	}
	t.last = g
	return g, true
}

// grow rehashes every group into count*2+1 buckets, walking the creation
// order list once.
func (t *Table[K, V]) grow() {
	size := len(t.groups)*2 + 1
	buckets := newBuckets(size)
	steps := 0
	g := t.last
	for {
		g = t.groups[g].insertNext
		b := t.groups[g].hash % size
		t.groups[g].bucketNext = buckets[b]
		buckets[b] = g
		steps++
		if g == t.last {
			break
		}
	}
	assertCircular("grow", steps, len(t.groups))
	trace.Debug("lookup").
		Int("old_cap", len(t.buckets)).
		Int("new_cap", size).
		Int(trace.FieldGroups, len(t.groups)).
		Msg("grouping table grown")
	t.buckets = buckets
	t.grows++
}

// Append adds v to group g.
func (t *Table[K, V]) Append(g int, v V) {
	assertGroup("Append", g, len(t.groups))
	t.groups[g].values = append(t.groups[g].values, v)
}

// Add appends v to the group for key, creating the group if needed.
func (t *Table[K, V]) Add(key K, v V) {
	t.Append(t.GetOrCreate(key), v)
}

// Key returns the key of group g.
func (t *Table[K, V]) Key(g int) K {
	assertGroup("Key", g, len(t.groups))
	return t.groups[g].key
}

// Values returns the values of group g in insertion order. The slice is
// shared with the table and must not be modified.
func (t *Table[K, V]) Values(g int) []V {
	assertGroup("Values", g, len(t.groups))
	return t.groups[g].values
}

// Get returns the values for key, or nil when absent.
func (t *Table[K, V]) Get(key K) []V {
	if g, found := t.Find(key); found {
		return t.groups[g].values
	}
	return nil
}

// Groups returns a cursor over group ids in creation order, starting at the
// oldest group and ending at the last created one.
func (t *Table[K, V]) Groups() cursor.Cursor[int] {
	return &walk[K, V]{table: t, at: none}
}

type walk[K, V any] struct {
	cursor.Current[int]
	table *Table[K, V]
	at    int
	done  bool
}

func (w *walk[K, V]) Next() bool {
	t := w.table
	switch {
	case w.done || t.last == none || w.at == t.last:
		w.done = true
		w.Clear()
		return false
	case w.at == none:
		w.at = t.groups[t.last].insertNext
	default:
		w.at = t.groups[w.at].insertNext
	}
	w.Set(w.at)
	return true
}

func (w *walk[K, V]) Error() error { return nil }
func (w *walk[K, V]) Close()       { w.done = true }

// Build fills a table from src in a single pass. With skipNull, elements whose
// key is null (see compare.IsNull) are dropped; joins use this since a null
// key never matches.
func Build[T, K, V any](src cursor.Cursor[T], keyOf func(T) K, valueOf func(T) V, eq compare.EqualityComparer[K], skipNull bool) (t *Table[K, V], err error) {
	defer src.Close()
	defer compare.Catch(&err)
	table := New[K, V](eq)
	for src.Next() {
		item := src.Value()
		key := keyOf(item)
		if skipNull && compare.IsNull(key) {
			continue
		}
		table.Add(key, valueOf(item))
	}
	if err = src.Error(); err != nil {
		return nil, err
	}
	return table, nil
}

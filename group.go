package lazy

import (
	"github.com/dacapoday/lazy/compare"
	"github.com/dacapoday/lazy/cursor"
	"github.com/dacapoday/lazy/internal/lookup"
)

// Grouping is a key together with the values that shared it, in source order.
type Grouping[K, V any] struct {
	key    K
	values []V
}

func (g Grouping[K, V]) Key() K   { return g.key }
func (g Grouping[K, V]) Len() int { return len(g.values) }

// Values returns the group's values as a sequence.
func (g Grouping[K, V]) Values() Sequence[V] {
	return FromSlice(g.values)
}

// Lookup is a materialized, read-only grouping of values by key. Groups are
// kept in the order their keys were first seen.
type Lookup[K, V any] struct {
	table *lookup.Table[K, V]
}

// Len returns the number of distinct keys.
func (l *Lookup[K, V]) Len() int {
	return l.table.Len()
}

// Contains reports whether any value was grouped under key.
func (l *Lookup[K, V]) Contains(key K) bool {
	return l.table.Contains(key)
}

// Get returns the values grouped under key; the sequence is empty when the
// key is absent.
func (l *Lookup[K, V]) Get(key K) Sequence[V] {
	return FromSlice(l.table.Get(key))
}

// Groups returns every group in first-seen key order.
func (l *Lookup[K, V]) Groups() Sequence[Grouping[K, V]] {
	return derive(KindGroup, func() cursor.Cursor[Grouping[K, V]] {
		return groupsOf(l.table)
	})
}

func groupsOf[K, V any](table *lookup.Table[K, V]) cursor.Cursor[Grouping[K, V]] {
	return project(table.Groups(), func(g int, _ int) Grouping[K, V] {
		return Grouping[K, V]{key: table.Key(g), values: table.Values(g)}
	})
}

// ToLookup groups the elements of s by keyOf. A nil eq selects
// compare.DefaultEquality for K.
func ToLookup[T, K any](s Sequence[T], keyOf func(T) K, eq compare.EqualityComparer[K]) (*Lookup[K, T], error) {
	mustSource("ToLookup", "source", s)
	mustArg("ToLookup", "keyOf", keyOf != nil)
	return toLookup(s, keyOf, identity[T], eq)
}

// ToLookupElement groups elemOf of each element of s by keyOf.
func ToLookupElement[T, K, V any](s Sequence[T], keyOf func(T) K, elemOf func(T) V, eq compare.EqualityComparer[K]) (*Lookup[K, V], error) {
	mustSource("ToLookupElement", "source", s)
	mustArg("ToLookupElement", "keyOf", keyOf != nil)
	mustArg("ToLookupElement", "elemOf", elemOf != nil)
	return toLookup(s, keyOf, elemOf, eq)
}

func toLookup[T, K, V any](s Sequence[T], keyOf func(T) K, elemOf func(T) V, eq compare.EqualityComparer[K]) (*Lookup[K, V], error) {
	table, err := lookup.Build(s.Open(), keyOf, elemOf, eq, false)
	if err != nil {
		return nil, err
	}
	return &Lookup[K, V]{table: table}, nil
}

// GroupBy groups the elements of s by keyOf under the default equality for K.
// Each cursor builds its own table on its first Next.
func GroupBy[T, K any](s Sequence[T], keyOf func(T) K) Sequence[Grouping[K, T]] {
	mustSource("GroupBy", "source", s)
	mustArg("GroupBy", "keyOf", keyOf != nil)
	return groupBy(s, keyOf, identity[T], nil)
}

// GroupByElement is GroupBy keeping elemOf of each element.
func GroupByElement[T, K, V any](s Sequence[T], keyOf func(T) K, elemOf func(T) V) Sequence[Grouping[K, V]] {
	mustSource("GroupByElement", "source", s)
	mustArg("GroupByElement", "keyOf", keyOf != nil)
	mustArg("GroupByElement", "elemOf", elemOf != nil)
	return groupBy(s, keyOf, elemOf, nil)
}

// GroupByComparer is GroupBy with keys matched by eq. A nil eq selects the
// default.
func GroupByComparer[T, K any](s Sequence[T], keyOf func(T) K, eq compare.EqualityComparer[K]) Sequence[Grouping[K, T]] {
	mustSource("GroupByComparer", "source", s)
	mustArg("GroupByComparer", "keyOf", keyOf != nil)
	return groupBy(s, keyOf, identity[T], eq)
}

func groupBy[T, K, V any](s Sequence[T], keyOf func(T) K, elemOf func(T) V, eq compare.EqualityComparer[K]) Sequence[Grouping[K, V]] {
	return derive(KindGroup, func() cursor.Cursor[Grouping[K, V]] {
		return onFirstNext(func() cursor.Cursor[Grouping[K, V]] {
			table, err := lookup.Build(s.Open(), keyOf, elemOf, eq, false)
			if err != nil {
				return failed[Grouping[K, V]]("GroupBy", err)
			}
			return groupsOf(table)
		})
	}, s)
}

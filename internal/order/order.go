// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package order implements stable multi-key ordering chains.
//
// A Chain is an immutable list of sort keys linked from the last added key
// back to the primary one. Sorting compares the primary key first and each
// following key only to break ties; elements equal under every key keep
// their source order.
package order

import (
	"cmp"
	"slices"

	"github.com/dacapoday/lazy/compare"
	"github.com/dacapoday/lazy/internal/trace"
)

// Chain is one node of an ordering. Nodes are never modified after creation,
// so several chains may share a parent.
type Chain[T any] struct {
	parent *Chain[T]
	level  level[T]
	depth  int
}

type level[T any] interface {
	column(items []T) column
}

type column interface {
	compare(i, j int) int
}

// Primary starts a chain ordered by keyOf. A nil c selects
// compare.DefaultOrdering for K.
func Primary[T, K any](keyOf func(T) K, c compare.Comparer[K], descending bool) *Chain[T] {
	return Then(nil, keyOf, c, descending)
}

// Then returns a chain that orders like parent and breaks its ties by keyOf.
// A nil parent starts a new chain.
func Then[T, K any](parent *Chain[T], keyOf func(T) K, c compare.Comparer[K], descending bool) *Chain[T] {
	if c == nil {
		c = compare.DefaultOrdering[K]()
	}
	depth := 1
	if parent != nil {
		depth = parent.depth + 1
	}
	return &Chain[T]{
		parent: parent,
		level:  &key[T, K]{keyOf: keyOf, cmp: c, descending: descending},
		depth:  depth,
	}
}

// Depth returns the number of keys in the chain.
func (c *Chain[T]) Depth() int {
	return c.depth
}

// levels lists the keys primary first.
func (c *Chain[T]) levels() []level[T] {
	levels := make([]level[T], c.depth)
	for n := c; n != nil; n = n.parent {
		levels[n.depth-1] = n.level
	}
	return levels
}

// Sort returns the permutation of items that puts them in chain order:
// items[perm[0]] comes first. Each key selector runs once per element.
// A comparison without a usable contract is returned as an error wrapping
// compare.ErrIncomparable.
func (c *Chain[T]) Sort(items []T) (perm []int, err error) {
	defer compare.Catch(&err)
	perm = make([]int, len(items))
	for i := range perm {
		perm[i] = i
	}
	if len(items) < 2 {
		return perm, nil
	}
	levels := c.levels()
	columns := make([]column, len(levels))
	for i, l := range levels {
		columns[i] = l.column(items)
	}
	slices.SortFunc(perm, func(a, b int) int {
		for _, col := range columns {
			if r := col.compare(a, b); r != 0 {
				return r
			}
		}
		return cmp.Compare(a, b)
	})
	trace.Debug("order").
		Int(trace.FieldElements, len(items)).
		Int(trace.FieldLevels, len(levels)).
		Msg("ordering materialized")
	return perm, nil
}

type key[T, K any] struct {
	keyOf      func(T) K
	cmp        compare.Comparer[K]
	descending bool
}

func (k *key[T, K]) column(items []T) column {
	keys := make([]K, len(items))
	for i := range items {
		keys[i] = k.keyOf(items[i])
	}
	return &keyColumn[K]{keys: keys, cmp: k.cmp, descending: k.descending}
}

type keyColumn[K any] struct {
	keys       []K
	cmp        compare.Comparer[K]
	descending bool
}

func (c *keyColumn[K]) compare(i, j int) int {
	r := c.cmp.Compare(c.keys[i], c.keys[j])
	if !c.descending {
		return r
	}
	switch {
	case r < 0:
		return 1
	case r > 0:
		return -1
	}
	return 0
}

// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package compare

import "reflect"

// Nullable makes absence explicit for types without a nil value. A null
// orders before every non-null value and equals only another null.
type Nullable[T any] struct {
	Value T
	Valid bool
}

// Some wraps a present value.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Value: v, Valid: true}
}

// Null returns an absent value.
func Null[T any]() Nullable[T] {
	return Nullable[T]{}
}

func (n Nullable[T]) IsNull() bool {
	return !n.Valid
}

// Compare orders n against o, delegating present values to DefaultOrdering.
func (n Nullable[T]) Compare(o Nullable[T]) int {
	if c, done := nilOrder(!n.Valid, !o.Valid); done {
		return c
	}
	return DefaultOrdering[T]().Compare(n.Value, o.Value)
}

func (n Nullable[T]) Equal(o Nullable[T]) bool {
	if !n.Valid || !o.Valid {
		return n.Valid == o.Valid
	}
	return DefaultEquality[T]().Equal(n.Value, o.Value)
}

func (n Nullable[T]) Hash() uint64 {
	if !n.Valid {
		return 0
	}
	return DefaultEquality[T]().Hash(n.Value)
}

// IsNull reports whether v is absent: a nil interface, a nil pointer, map,
// slice, channel or func, or a value whose IsNull method says so.
func IsNull[T any](v T) bool {
	x := any(v)
	if x == nil {
		return true
	}
	// A nil *Nullable has the IsNull method but cannot be dereferenced.
	if rv := reflect.ValueOf(x); nillable(rv.Kind()) && rv.IsNil() {
		return true
	}
	if n, ok := x.(interface{ IsNull() bool }); ok {
		return n.IsNull()
	}
	return false
}

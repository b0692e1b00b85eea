// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"hash/maphash"
	"reflect"
	"runtime"
)

// DefaultOrdering returns the ordering comparer for T, chosen from the type
// parameter. Interface types defer to [ResolveOrdering] per value.
//
// Comparers returned for the same T are equal under ==.
func DefaultOrdering[T any]() Comparer[T] {
	t := reflect.TypeFor[T]()
	kind := t.Kind()
	if kind == reflect.Interface {
		return dynamic[T]{}
	}
	var zero T
	if _, ok := any(zero).(Comparable[T]); ok {
		return method[T]{nillable: nillable(kind)}
	}
	if c := classOf(kind); c != none {
		return natural[T]{class: c, kind: kind}
	}
	return incomparable[T]{}
}

// DefaultEquality returns the equality comparer for T, chosen from the type
// parameter. Interface types defer to [ResolveEquality] per value.
//
// Comparers returned for the same T are equal under ==.
func DefaultEquality[T any]() EqualityComparer[T] {
	t := reflect.TypeFor[T]()
	kind := t.Kind()
	if kind == reflect.Interface {
		return dynamic[T]{}
	}
	var zero T
	switch any(zero).(type) {
	case Equatable[T]:
		return equatable[T]{nillable: nillable(kind), hashed: true}
	case Equaler[T]:
		return equatable[T]{nillable: nillable(kind)}
	}
	if c := classOf(kind); c != none {
		return natural[T]{class: c, kind: kind}
	}
	if t.Comparable() {
		return structural[T]{}
	}
	return incomparable[T]{}
}

func nillable(kind reflect.Kind) bool {
	switch kind {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return true
	}
	return false
}

// isNil must only be called for nillable kinds.
func isNil[T any](v T) bool {
	return reflect.ValueOf(&v).Elem().IsNil()
}

// nilOrder places nil before everything else. done is false when neither
// side is nil.
func nilOrder(aNil, bNil bool) (c int, done bool) {
	switch {
	case aNil && bNil:
		return 0, true
	case aNil:
		return -1, true
	case bNil:
		return 1, true
	}
	return 0, false
}

type method[T any] struct {
	nillable bool
}

func (m method[T]) Compare(a, b T) int {
	if m.nillable {
		if c, done := nilOrder(isNil(a), isNil(b)); done {
			return c
		}
	}
	return any(a).(Comparable[T]).Compare(b)
}

type equatable[T any] struct {
	nillable bool
	hashed   bool
}

func (e equatable[T]) Equal(a, b T) bool {
	if e.nillable {
		aNil, bNil := isNil(a), isNil(b)
		if aNil || bNil {
			return aNil && bNil
		}
	}
	return any(a).(Equaler[T]).Equal(b)
}

func (e equatable[T]) Hash(v T) uint64 {
	if !e.hashed || (e.nillable && isNil(v)) {
		return 0
	}
	return any(v).(Equatable[T]).Hash()
}

var seed = maphash.MakeSeed()

// structural uses == and the runtime hash. Types that are comparable only
// statically (interface fields holding slices, say) fail when used.
type structural[T any] struct{}

func (structural[T]) Equal(a, b T) bool {
	defer guard[T]()
	return any(a) == any(b)
}

func (structural[T]) Hash(v T) uint64 {
	defer guard[T]()
	return maphash.Comparable(seed, any(v))
}

func guard[T any]() {
	if r := recover(); r != nil {
		if _, ok := r.(runtime.Error); ok {
			panic(&IncomparableError{Type: reflect.TypeFor[T]()})
		}
		panic(r)
	}
}

type incomparable[T any] struct{}

func (incomparable[T]) Compare(a, b T) int {
	panic(&IncomparableError{Type: reflect.TypeFor[T]()})
}

func (incomparable[T]) Equal(a, b T) bool {
	panic(&IncomparableError{Type: reflect.TypeFor[T]()})
}

func (incomparable[T]) Hash(v T) uint64 {
	panic(&IncomparableError{Type: reflect.TypeFor[T]()})
}

// dynamic resolves a comparer from each value's runtime type.
type dynamic[T any] struct{}

func (dynamic[T]) Compare(a, b T) int {
	x, y := any(a), any(b)
	if c, done := nilOrder(x == nil, y == nil); done {
		return c
	}
	tx, ty := reflect.TypeOf(x), reflect.TypeOf(y)
	if tx != ty {
		panic(&IncomparableError{Type: tx, Other: ty})
	}
	c, _ := ResolveOrdering(tx)
	return c.Compare(x, y)
}

func (dynamic[T]) Equal(a, b T) bool {
	x, y := any(a), any(b)
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	tx := reflect.TypeOf(x)
	if tx != reflect.TypeOf(y) {
		return false
	}
	e, _ := ResolveEquality(tx)
	return e.Equal(x, y)
}

func (dynamic[T]) Hash(v T) uint64 {
	x := any(v)
	if x == nil {
		return 0
	}
	e, _ := ResolveEquality(reflect.TypeOf(x))
	return e.Hash(x)
}

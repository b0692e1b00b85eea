// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package compare resolves equality and ordering comparers for element types.
//
// Generic code asks for [DefaultEquality] and [DefaultOrdering], which pick a
// comparer from the type parameter alone. Values whose type is only known at
// run time (interface-typed elements) go through [ResolveEquality] and
// [ResolveOrdering], which cache one comparer per reflect.Type.
//
// Resolution order for a type T:
//   - T implements [Comparable] / [Equatable] (or Equal alone): delegate to
//     its methods; a nil value orders before any non-nil value and equals
//     only another nil.
//   - T has a boolean, integer, float or string kind: natural order.
//   - otherwise: == and runtime hashing for equality; ordering panics with an
//     [*IncomparableError] when two values are actually compared.
package compare

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIncomparable    = errors.New("incomparable type")
)

// IncomparableError is the panic value raised when two values without a
// usable comparison contract are compared.
type IncomparableError struct {
	Type  reflect.Type
	Other reflect.Type
}

func (e *IncomparableError) Error() string {
	if e.Other != nil && e.Other != e.Type {
		return fmt.Sprintf("%s: %v vs %v", ErrIncomparable, e.Type, e.Other)
	}
	return fmt.Sprintf("%s: %v", ErrIncomparable, e.Type)
}

func (e *IncomparableError) Unwrap() error {
	return ErrIncomparable
}

// Comparer orders values of T: negative when a < b, zero when equal,
// positive when a > b.
type Comparer[T any] interface {
	Compare(a, b T) int
}

// EqualityComparer decides equality of values of T. Equal values must hash
// equally.
type EqualityComparer[T any] interface {
	Equal(a, b T) bool
	Hash(v T) uint64
}

// Comparable is implemented by types that order themselves.
type Comparable[T any] interface {
	Compare(T) int
}

// Equaler is implemented by types that define their own equality.
// Without a Hash method every value hashes alike.
type Equaler[T any] interface {
	Equal(T) bool
}

// Equatable is an Equaler that also hashes itself consistently with Equal.
type Equatable[T any] interface {
	Equaler[T]
	Hash() uint64
}

// Func adapts a comparison function to a Comparer.
type Func[T any] func(a, b T) int

func (f Func[T]) Compare(a, b T) int {
	return f(a, b)
}

// Equality builds an EqualityComparer from an equality and a hash function.
// A nil hash makes every value hash alike.
func Equality[T any](equal func(a, b T) bool, hash func(T) uint64) EqualityComparer[T] {
	return &funcs[T]{equal: equal, hash: hash}
}

type funcs[T any] struct {
	equal func(a, b T) bool
	hash  func(T) uint64
}

func (f *funcs[T]) Equal(a, b T) bool {
	return f.equal(a, b)
}

func (f *funcs[T]) Hash(v T) uint64 {
	if f.hash == nil {
		return 0
	}
	return f.hash(v)
}

// Catch converts a comparison panic into an error. Use it deferred:
//
//	defer compare.Catch(&err)
//
// Panics that do not wrap ErrIncomparable are re-raised.
func Catch(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok && errors.Is(e, ErrIncomparable) {
		*err = e
		return
	}
	panic(r)
}

// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package cursor defines the single-pass pull iterator every lazy operator is
// built on, plus the lookahead wrapper and the basic sources.
package cursor

import "errors"

var ErrNotPositioned = errors.New("cursor: Value called without a successful Next")

// Cursor is a single-pass, stateful pull iterator over a sequence of values.
//
// Usage:
//
//	defer c.Close()
//	for c.Next() {
//	    v := c.Value()
//	    // process v
//	}
//	if err := c.Error(); err != nil {
//	    // handle error
//	}
type Cursor[T any] interface {
	// Next advances to the next value and reports whether one is available.
	// Once Next returns false it keeps returning false; the source is not
	// consulted again.
	Next() bool

	// Value returns the value produced by the last successful Next.
	// Calling it before the first Next, or after Next returned false,
	// panics with ErrNotPositioned.
	Value() T

	// Error returns the failure that ended enumeration early, if any.
	// Returns nil while values remain and after normal exhaustion.
	Error() error

	// Close releases whatever the source holds. Safe to call more than once
	// and on a cursor that was never advanced.
	Close()
}

// Current is the one-value slot behind Value. Cursor implementations embed
// it and call Set on success and Clear on exhaustion.
type Current[T any] struct {
	val   T
	valid bool
}

// Set stores v as the current value.
func (c *Current[T]) Set(v T) {
	c.val, c.valid = v, true
}

// Clear drops the current value so a stale read panics.
func (c *Current[T]) Clear() {
	var zero T
	c.val, c.valid = zero, false
}

// Valid reports whether a value is stored.
func (c *Current[T]) Valid() bool {
	return c.valid
}

// Value returns the stored value or panics with ErrNotPositioned.
func (c *Current[T]) Value() T {
	if !c.valid {
		panic(ErrNotPositioned)
	}
	return c.val
}

// Collect drains c into a slice and closes it.
func Collect[T any](c Cursor[T]) ([]T, error) {
	defer c.Close()
	var items []T
	for c.Next() {
		items = append(items, c.Value())
	}
	return items, c.Error()
}

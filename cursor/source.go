// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package cursor

import "iter"

// Slice returns a cursor over items in index order. items is not copied.
func Slice[T any](items []T) Cursor[T] {
	return &slice[T]{items: items, step: 1, index: -1}
}

// Backward returns a cursor over items from the last index to the first.
func Backward[T any](items []T) Cursor[T] {
	return &slice[T]{items: items, step: -1, index: len(items)}
}

type slice[T any] struct {
	Current[T]
	items []T
	step  int
	index int
}

func (c *slice[T]) Next() bool {
	next := c.index + c.step
	if next < 0 || next >= len(c.items) {
		c.index = max(-1, min(next, len(c.items)))
		c.Clear()
		return false
	}
	c.index = next
	c.Set(c.items[next])
	return true
}

func (c *slice[T]) Error() error { return nil }
func (c *slice[T]) Close()       {}

// Empty returns a cursor with no values.
func Empty[T any]() Cursor[T] {
	return Fail[T](nil)
}

// Fail returns a cursor with no values whose Error reports err.
func Fail[T any](err error) Cursor[T] {
	return &fail[T]{err: err}
}

type fail[T any] struct {
	Current[T]
	err error
}

func (c *fail[T]) Next() bool   { return false }
func (c *fail[T]) Error() error { return c.err }
func (c *fail[T]) Close()       {}

// Func adapts a generator. next reports false at the end and is not called
// again afterwards.
func Func[T any](next func() (T, bool)) Cursor[T] {
	return &generator[T]{next: next}
}

type generator[T any] struct {
	Current[T]
	next func() (T, bool)
}

func (c *generator[T]) Next() bool {
	if c.next == nil {
		return false
	}
	v, ok := c.next()
	if !ok {
		c.next = nil
		c.Clear()
		return false
	}
	c.Set(v)
	return true
}

func (c *generator[T]) Error() error { return nil }
func (c *generator[T]) Close()       { c.next = nil }

// Pull adapts a push iterator. The iterator runs as a coroutine which is
// stopped on exhaustion or Close; abandoning the cursor without Close keeps
// the coroutine parked until it is collected.
func Pull[T any](seq iter.Seq[T]) Cursor[T] {
	return &pull[T]{seq: seq}
}

type pull[T any] struct {
	Current[T]
	seq  iter.Seq[T]
	next func() (T, bool)
	stop func()
	done bool
}

func (c *pull[T]) Next() bool {
	if c.done {
		return false
	}
	if c.next == nil {
		c.next, c.stop = iter.Pull(c.seq)
	}
	v, ok := c.next()
	if !ok {
		c.Close()
		c.Clear()
		return false
	}
	c.Set(v)
	return true
}

func (c *pull[T]) Error() error { return nil }

func (c *pull[T]) Close() {
	c.done = true
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}

// All adapts a cursor to a push iterator for range loops. The cursor is
// closed when the loop ends; its Error must be checked by the caller.
func All[T any](c Cursor[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		defer c.Close()
		for c.Next() {
			if !yield(c.Value()) {
				return
			}
		}
	}
}

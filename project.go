package lazy

import (
	"fmt"
	"reflect"

	"github.com/dacapoday/lazy/cursor"
)

// Select maps every element through f.
func Select[T, R any](s Sequence[T], f func(T) R) Sequence[R] {
	mustSource("Select", "source", s)
	mustArg("Select", "selector", f != nil)
	return selectIndexed(s, func(v T, _ int) R { return f(v) })
}

// SelectIndexed maps every element and its zero-based position through f.
func SelectIndexed[T, R any](s Sequence[T], f func(T, int) R) Sequence[R] {
	mustSource("SelectIndexed", "source", s)
	mustArg("SelectIndexed", "selector", f != nil)
	return selectIndexed(s, f)
}

func selectIndexed[T, R any](s Sequence[T], f func(T, int) R) Sequence[R] {
	return derive(KindMap, func() cursor.Cursor[R] {
		return project(s.Open(), f)
	}, s)
}

func project[T, R any](up cursor.Cursor[T], f func(T, int) R) cursor.Cursor[R] {
	return &mapped[T, R]{link: link[T]{up: up}, f: f}
}

type mapped[T, R any] struct {
	cursor.Current[R]
	link[T]
	f     func(T, int) R
	index int
}

func (c *mapped[T, R]) Next() bool {
	if !c.up.Next() {
		c.Clear()
		return false
	}
	c.Set(c.f(c.up.Value(), c.index))
	c.index++
	return true
}

// SelectMany maps every element to a sequence and flattens the results in
// order. Each inner sequence is opened when the previous one is exhausted.
func SelectMany[T, R any](s Sequence[T], f func(T) Sequence[R]) Sequence[R] {
	mustSource("SelectMany", "source", s)
	mustArg("SelectMany", "selector", f != nil)
	return derive(KindFlatMap, func() cursor.Cursor[R] {
		return &flatten[T, R]{outer: s.Open(), f: f}
	}, s)
}

type flatten[T, R any] struct {
	cursor.Current[R]
	outer cursor.Cursor[T]
	inner cursor.Cursor[R]
	f     func(T) Sequence[R]
	err   error
}

func (c *flatten[T, R]) Next() bool {
	for c.err == nil {
		if c.inner != nil {
			if c.inner.Next() {
				c.Set(c.inner.Value())
				return true
			}
			c.err = c.inner.Error()
			c.inner.Close()
			c.inner = nil
			continue
		}
		if !c.outer.Next() {
			break
		}
		c.inner = c.f(c.outer.Value()).Open()
	}
	c.Clear()
	return false
}

func (c *flatten[T, R]) Error() error {
	if c.err != nil {
		return c.err
	}
	return c.outer.Error()
}

func (c *flatten[T, R]) Close() {
	if c.inner != nil {
		c.inner.Close()
		c.inner = nil
	}
	c.outer.Close()
}

// Zip pairs the elements of a and b positionally through f and stops when
// either side runs out.
func Zip[A, B, R any](a Sequence[A], b Sequence[B], f func(A, B) R) Sequence[R] {
	mustSource("Zip", "first", a)
	mustSource("Zip", "second", b)
	mustArg("Zip", "selector", f != nil)
	return derive(KindZip, func() cursor.Cursor[R] {
		return &zip[A, B, R]{a: a.Open(), b: b.Open(), f: f}
	}, a, b)
}

type zip[A, B, R any] struct {
	cursor.Current[R]
	a cursor.Cursor[A]
	b cursor.Cursor[B]
	f func(A, B) R
}

func (c *zip[A, B, R]) Next() bool {
	if !c.a.Next() || !c.b.Next() {
		c.Clear()
		return false
	}
	c.Set(c.f(c.a.Value(), c.b.Value()))
	return true
}

func (c *zip[A, B, R]) Error() error {
	if err := c.a.Error(); err != nil {
		return err
	}
	return c.b.Error()
}

func (c *zip[A, B, R]) Close() {
	c.a.Close()
	c.b.Close()
}

// Cast converts every element to R by type assertion. The first element that
// does not hold an R ends enumeration with an error wrapping ErrInvalidCast.
func Cast[R, T any](s Sequence[T]) Sequence[R] {
	mustSource("Cast", "source", s)
	return derive(KindCast, func() cursor.Cursor[R] {
		return &cast[T, R]{link: link[T]{up: s.Open()}}
	}, s)
}

type cast[T, R any] struct {
	cursor.Current[R]
	link[T]
	err error
}

func (c *cast[T, R]) Next() bool {
	if c.err != nil || !c.up.Next() {
		c.Clear()
		return false
	}
	v := c.up.Value()
	r, ok := any(v).(R)
	if !ok {
		c.err = fmt.Errorf("%w: %T is not %v", ErrInvalidCast, v, reflect.TypeFor[R]())
		c.Clear()
		return false
	}
	c.Set(r)
	return true
}

func (c *cast[T, R]) Error() error {
	if c.err != nil {
		return c.err
	}
	return c.up.Error()
}

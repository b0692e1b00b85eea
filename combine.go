package lazy

import "github.com/dacapoday/lazy/cursor"

// Concat yields s followed by each of others. Every part is opened only when
// the one before it is exhausted.
func (s Sequence[T]) Concat(others ...Sequence[T]) Sequence[T] {
	mustSource("Concat", "source", s)
	parts := make([]Sequence[T], 0, len(others)+1)
	parts = append(parts, s)
	for _, o := range others {
		mustSource("Concat", "other", o)
		parts = append(parts, o)
	}
	return concatOf(parts)
}

func concatOf[T any](parts []Sequence[T]) Sequence[T] {
	ups := make([]Node, len(parts))
	for i, p := range parts {
		ups[i] = p
	}
	return derive(KindConcat, func() cursor.Cursor[T] {
		return &concat[T]{parts: parts}
	}, ups...)
}

// Append yields s followed by v.
func (s Sequence[T]) Append(v T) Sequence[T] {
	mustSource("Append", "source", s)
	return concatOf([]Sequence[T]{s, From(v)})
}

// Prepend yields v followed by s.
func (s Sequence[T]) Prepend(v T) Sequence[T] {
	mustSource("Prepend", "source", s)
	return concatOf([]Sequence[T]{From(v), s})
}

type concat[T any] struct {
	cursor.Current[T]
	parts []Sequence[T]
	at    cursor.Cursor[T]
	err   error
}

func (c *concat[T]) Next() bool {
	for c.err == nil {
		if c.at == nil {
			if len(c.parts) == 0 {
				break
			}
			c.at = c.parts[0].Open()
			c.parts = c.parts[1:]
		}
		if c.at.Next() {
			c.Set(c.at.Value())
			return true
		}
		c.err = c.at.Error()
		c.at.Close()
		c.at = nil
	}
	c.Clear()
	return false
}

func (c *concat[T]) Error() error { return c.err }

func (c *concat[T]) Close() {
	c.parts = nil
	if c.at != nil {
		c.at.Close()
		c.at = nil
	}
}

// Reverse yields the elements of s last to first. The source is buffered on
// the first Next of each cursor.
func (s Sequence[T]) Reverse() Sequence[T] {
	mustSource("Reverse", "source", s)
	return derive(KindReverse, func() cursor.Cursor[T] {
		return onFirstNext(func() cursor.Cursor[T] {
			items, err := cursor.Collect(s.Open())
			if err != nil {
				return failed[T]("Reverse", err)
			}
			return cursor.Backward(items)
		})
	}, s)
}

// DefaultIfEmpty yields s, or the single value v when s has no elements.
func (s Sequence[T]) DefaultIfEmpty(v T) Sequence[T] {
	mustSource("DefaultIfEmpty", "source", s)
	return derive(KindDefaultIfEmpty, func() cursor.Cursor[T] {
		return &orDefault[T]{link: link[T]{up: s.Open()}, fallback: v}
	}, s)
}

type orDefault[T any] struct {
	cursor.Current[T]
	link[T]
	fallback T
	seen     bool
	done     bool
}

func (c *orDefault[T]) Next() bool {
	if c.done {
		c.Clear()
		return false
	}
	if c.up.Next() {
		c.seen = true
		c.Set(c.up.Value())
		return true
	}
	c.done = true
	if c.seen || c.up.Error() != nil {
		c.Clear()
		return false
	}
	c.Set(c.fallback)
	return true
}

package lazy

import "github.com/dacapoday/lazy/cursor"

// Where keeps the elements for which pred returns true.
func (s Sequence[T]) Where(pred func(T) bool) Sequence[T] {
	mustSource("Where", "source", s)
	mustArg("Where", "pred", pred != nil)
	return s.where(func(v T, _ int) bool { return pred(v) })
}

// WhereIndexed is Where with the zero-based source position of each element.
func (s Sequence[T]) WhereIndexed(pred func(T, int) bool) Sequence[T] {
	mustSource("WhereIndexed", "source", s)
	mustArg("WhereIndexed", "pred", pred != nil)
	return s.where(pred)
}

func (s Sequence[T]) where(pred func(T, int) bool) Sequence[T] {
	return derive(KindFilter, func() cursor.Cursor[T] {
		return &filter[T]{link: link[T]{up: s.Open()}, pred: pred}
	}, s)
}

type filter[T any] struct {
	cursor.Current[T]
	link[T]
	pred  func(T, int) bool
	index int
}

func (c *filter[T]) Next() bool {
	for c.up.Next() {
		v := c.up.Value()
		i := c.index
		c.index++
		if c.pred(v, i) {
			c.Set(v)
			return true
		}
	}
	c.Clear()
	return false
}

// Skip bypasses the first n elements. A negative n panics.
func (s Sequence[T]) Skip(n int) Sequence[T] {
	mustSource("Skip", "source", s)
	mustCount("Skip", "n", n)
	return derive(KindSkip, func() cursor.Cursor[T] {
		return &skip[T]{link: link[T]{up: s.Open()}, left: n}
	}, s)
}

type skip[T any] struct {
	cursor.Current[T]
	link[T]
	left int
}

func (c *skip[T]) Next() bool {
	for ; c.left > 0; c.left-- {
		if !c.up.Next() {
			c.left = 0
			c.Clear()
			return false
		}
	}
	if !c.up.Next() {
		c.Clear()
		return false
	}
	c.Set(c.up.Value())
	return true
}

// Take yields at most n elements. The upstream is not advanced past the
// n-th element.
func (s Sequence[T]) Take(n int) Sequence[T] {
	mustSource("Take", "source", s)
	mustCount("Take", "n", n)
	return derive(KindTake, func() cursor.Cursor[T] {
		return &take[T]{link: link[T]{up: s.Open()}, left: n}
	}, s)
}

type take[T any] struct {
	cursor.Current[T]
	link[T]
	left int
}

func (c *take[T]) Next() bool {
	if c.left == 0 || !c.up.Next() {
		c.left = 0
		c.Clear()
		return false
	}
	c.left--
	c.Set(c.up.Value())
	return true
}

// SkipWhile bypasses elements while pred holds, then yields the rest
// unconditionally.
func (s Sequence[T]) SkipWhile(pred func(T) bool) Sequence[T] {
	mustSource("SkipWhile", "source", s)
	mustArg("SkipWhile", "pred", pred != nil)
	return derive(KindSkipWhile, func() cursor.Cursor[T] {
		return &skipWhile[T]{Peek: cursor.NewPeek(s.Open()), pred: pred}
	}, s)
}

type skipWhile[T any] struct {
	*cursor.Peek[T]
	pred func(T) bool
}

func (c *skipWhile[T]) Next() bool {
	if c.pred != nil {
		for {
			v, ok := c.Peek.Peek()
			if !ok || !c.pred(v) {
				break
			}
			c.Peek.Next()
		}
		c.pred = nil
	}
	return c.Peek.Next()
}

// TakeWhile yields elements while pred holds and stops at the first one
// that fails it.
func (s Sequence[T]) TakeWhile(pred func(T) bool) Sequence[T] {
	mustSource("TakeWhile", "source", s)
	mustArg("TakeWhile", "pred", pred != nil)
	return derive(KindTakeWhile, func() cursor.Cursor[T] {
		return &takeWhile[T]{link: link[T]{up: s.Open()}, pred: pred}
	}, s)
}

type takeWhile[T any] struct {
	cursor.Current[T]
	link[T]
	pred func(T) bool
	done bool
}

func (c *takeWhile[T]) Next() bool {
	if !c.done && c.up.Next() {
		if v := c.up.Value(); c.pred(v) {
			c.Set(v)
			return true
		}
	}
	c.done = true
	c.Clear()
	return false
}

// OfType yields the elements of s that hold an R, as R.
func OfType[R, T any](s Sequence[T]) Sequence[R] {
	mustSource("OfType", "source", s)
	return derive(KindCast, func() cursor.Cursor[R] {
		return &ofType[T, R]{link: link[T]{up: s.Open()}}
	}, s)
}

type ofType[T, R any] struct {
	cursor.Current[R]
	link[T]
}

func (c *ofType[T, R]) Next() bool {
	for c.up.Next() {
		if v, ok := any(c.up.Value()).(R); ok {
			c.Set(v)
			return true
		}
	}
	c.Clear()
	return false
}

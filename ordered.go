package lazy

import (
	"iter"

	"github.com/dacapoday/lazy/compare"
	"github.com/dacapoday/lazy/cursor"
	"github.com/dacapoday/lazy/internal/order"
)

// OrderedSequence is a sequence sorted by one or more keys. Further keys are
// added with ThenBy, ThenByDescending and ThenByComparer, each returning a new
// OrderedSequence and leaving the receiver unchanged.
//
// Sorting is stable. Every cursor buffers and sorts the source on its first
// Next, computing each key once per element.
type OrderedSequence[T any] struct {
	src   Sequence[T]
	chain *order.Chain[T]
}

// OrderBy sorts s ascending by keyOf under compare.DefaultOrdering for K.
func OrderBy[T, K any](s Sequence[T], keyOf func(T) K) OrderedSequence[T] {
	return orderBy("OrderBy", s, keyOf, nil, false)
}

// OrderByDescending sorts s descending by keyOf.
func OrderByDescending[T, K any](s Sequence[T], keyOf func(T) K) OrderedSequence[T] {
	return orderBy("OrderByDescending", s, keyOf, nil, true)
}

// OrderByComparer sorts s by keyOf under c. A nil c selects the default.
func OrderByComparer[T, K any](s Sequence[T], keyOf func(T) K, c compare.Comparer[K], descending bool) OrderedSequence[T] {
	return orderBy("OrderByComparer", s, keyOf, c, descending)
}

func orderBy[T, K any](op string, s Sequence[T], keyOf func(T) K, c compare.Comparer[K], descending bool) OrderedSequence[T] {
	mustSource(op, "source", s)
	mustArg(op, "keyOf", keyOf != nil)
	return OrderedSequence[T]{src: s, chain: order.Primary(keyOf, c, descending)}
}

// ThenBy breaks ties of o ascending by keyOf.
func ThenBy[T, K any](o OrderedSequence[T], keyOf func(T) K) OrderedSequence[T] {
	return thenBy("ThenBy", o, keyOf, nil, false)
}

// ThenByDescending breaks ties of o descending by keyOf.
func ThenByDescending[T, K any](o OrderedSequence[T], keyOf func(T) K) OrderedSequence[T] {
	return thenBy("ThenByDescending", o, keyOf, nil, true)
}

// ThenByComparer breaks ties of o by keyOf under c.
func ThenByComparer[T, K any](o OrderedSequence[T], keyOf func(T) K, c compare.Comparer[K], descending bool) OrderedSequence[T] {
	return thenBy("ThenByComparer", o, keyOf, c, descending)
}

func thenBy[T, K any](op string, o OrderedSequence[T], keyOf func(T) K, c compare.Comparer[K], descending bool) OrderedSequence[T] {
	if o.chain == nil {
		panic(&ArgumentError{Op: op, Arg: "source", Reason: "is a zero OrderedSequence"})
	}
	mustArg(op, "keyOf", keyOf != nil)
	return OrderedSequence[T]{src: o.src, chain: order.Then(o.chain, keyOf, c, descending)}
}

// Levels returns the number of sort keys.
func (o OrderedSequence[T]) Levels() int {
	if o.chain == nil {
		return 0
	}
	return o.chain.Depth()
}

// Sequence returns the sorted elements as a plain Sequence.
func (o OrderedSequence[T]) Sequence() Sequence[T] {
	if o.chain == nil {
		return Sequence[T]{}
	}
	return derive(KindOrder, o.open, o.src)
}

// Open returns a fresh cursor over the sorted elements.
func (o OrderedSequence[T]) Open() cursor.Cursor[T] {
	if o.chain == nil {
		return cursor.Empty[T]()
	}
	return o.open()
}

// All returns a push iterator over the sorted elements.
func (o OrderedSequence[T]) All() iter.Seq[T] {
	return o.Sequence().All()
}

func (o OrderedSequence[T]) open() cursor.Cursor[T] {
	return onFirstNext(func() cursor.Cursor[T] {
		items, err := cursor.Collect(o.src.Open())
		if err != nil {
			return failed[T]("OrderBy", err)
		}
		perm, err := o.chain.Sort(items)
		if err != nil {
			return failed[T]("OrderBy", err)
		}
		return project(cursor.Slice(perm), func(i int, _ int) T { return items[i] })
	})
}

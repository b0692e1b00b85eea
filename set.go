package lazy

import (
	"github.com/dacapoday/lazy/compare"
	"github.com/dacapoday/lazy/cursor"
	"github.com/dacapoday/lazy/internal/lookup"
)

type setMode uint8

const (
	setDistinct setMode = iota
	setIntersect
	setExcept
)

func identity[T any](v T) T { return v }

// Distinct drops repeated elements, keeping the first occurrence. Equality
// is compare.DefaultEquality for T.
func (s Sequence[T]) Distinct() Sequence[T] {
	mustSource("Distinct", "source", s)
	return setOf(KindDistinct, s, Sequence[T]{}, identity[T], nil, setDistinct)
}

// Union yields the distinct elements of s followed by the distinct elements
// of other not already seen.
func (s Sequence[T]) Union(other Sequence[T]) Sequence[T] {
	return UnionBy(s, other, nil)
}

// Intersect yields the distinct elements of s that also occur in other.
func (s Sequence[T]) Intersect(other Sequence[T]) Sequence[T] {
	return IntersectBy(s, other, nil)
}

// Except yields the distinct elements of s that do not occur in other.
func (s Sequence[T]) Except(other Sequence[T]) Sequence[T] {
	return ExceptBy(s, other, nil)
}

// DistinctBy drops elements whose key was already seen. A nil eq selects
// compare.DefaultEquality for K.
func DistinctBy[T, K any](s Sequence[T], keyOf func(T) K, eq compare.EqualityComparer[K]) Sequence[T] {
	mustSource("DistinctBy", "source", s)
	mustArg("DistinctBy", "keyOf", keyOf != nil)
	return setOf(KindDistinct, s, Sequence[T]{}, keyOf, eq, setDistinct)
}

// UnionBy is Union under eq.
func UnionBy[T any](s, other Sequence[T], eq compare.EqualityComparer[T]) Sequence[T] {
	mustSource("Union", "source", s)
	mustSource("Union", "other", other)
	both := concatOf([]Sequence[T]{s, other})
	return setOf(KindUnion, both, Sequence[T]{}, identity[T], eq, setDistinct)
}

// IntersectBy is Intersect under eq.
func IntersectBy[T any](s, other Sequence[T], eq compare.EqualityComparer[T]) Sequence[T] {
	mustSource("Intersect", "source", s)
	mustSource("Intersect", "other", other)
	return setOf(KindIntersect, s, other, identity[T], eq, setIntersect)
}

// ExceptBy is Except under eq.
func ExceptBy[T any](s, other Sequence[T], eq compare.EqualityComparer[T]) Sequence[T] {
	mustSource("Except", "source", s)
	mustSource("Except", "other", other)
	return setOf(KindExcept, s, other, identity[T], eq, setExcept)
}

func setOf[T, K any](k Kind, s, other Sequence[T], keyOf func(T) K, eq compare.EqualityComparer[K], mode setMode) Sequence[T] {
	if eq == nil {
		eq = compare.DefaultEquality[K]()
	}
	ups := []Node{s}
	if other.valid() {
		ups = append(ups, other)
	}
	return derive(k, func() cursor.Cursor[T] {
		return &set[T, K]{
			link:  link[T]{up: s.Open()},
			other: other,
			keyOf: keyOf,
			eq:    eq,
			mode:  mode,
		}
	}, ups...)
}

type set[T, K any] struct {
	cursor.Current[T]
	link[T]
	other   Sequence[T]
	keyOf   func(T) K
	eq      compare.EqualityComparer[K]
	mode    setMode
	seen    *lookup.Table[K, struct{}]
	against *lookup.Table[K, struct{}]
	err     error
}

func (c *set[T, K]) Next() (ok bool) {
	defer func() {
		if !ok {
			c.Clear()
		}
	}()
	defer compare.Catch(&c.err)
	if c.err != nil {
		return false
	}
	if c.seen == nil {
		c.seen = lookup.New[K, struct{}](c.eq)
		if c.mode != setDistinct {
			against, err := lookup.Build(c.other.Open(), c.keyOf, func(T) struct{} { return struct{}{} }, c.eq, false)
			if err != nil {
				c.err = err
				return false
			}
			c.against = against
		}
	}
	for c.up.Next() {
		v := c.up.Value()
		key := c.keyOf(v)
		switch c.mode {
		case setIntersect:
			if !c.against.Contains(key) {
				continue
			}
		case setExcept:
			if c.against.Contains(key) {
				continue
			}
		}
		if _, created := c.seen.Insert(key); created {
			c.Set(v)
			return true
		}
	}
	return false
}

func (c *set[T, K]) Error() error {
	if c.err != nil {
		return c.err
	}
	return c.up.Error()
}

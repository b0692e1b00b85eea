package lazy

import (
	"github.com/dacapoday/lazy/compare"
	"github.com/dacapoday/lazy/cursor"
	"github.com/dacapoday/lazy/internal/lookup"
)

// Join correlates outer and inner elements with equal keys and yields
// result for every matching pair, in outer order and then inner order.
// Elements with a null key (see compare.IsNull) never match.
//
// The inner sequence is read once per cursor, when the first outer element
// is available; an empty outer sequence never opens it.
func Join[O, I, K, R any](outer Sequence[O], inner Sequence[I], outerKey func(O) K, innerKey func(I) K, result func(O, I) R) Sequence[R] {
	return join("Join", outer, inner, outerKey, innerKey, result, nil)
}

// JoinComparer is Join with keys matched by eq.
func JoinComparer[O, I, K, R any](outer Sequence[O], inner Sequence[I], outerKey func(O) K, innerKey func(I) K, result func(O, I) R, eq compare.EqualityComparer[K]) Sequence[R] {
	return join("JoinComparer", outer, inner, outerKey, innerKey, result, eq)
}

func join[O, I, K, R any](op string, outer Sequence[O], inner Sequence[I], outerKey func(O) K, innerKey func(I) K, result func(O, I) R, eq compare.EqualityComparer[K]) Sequence[R] {
	mustSource(op, "outer", outer)
	mustSource(op, "inner", inner)
	mustArg(op, "outerKey", outerKey != nil)
	mustArg(op, "innerKey", innerKey != nil)
	mustArg(op, "result", result != nil)
	return derive(KindJoin, func() cursor.Cursor[R] {
		return &joiner[O, I, K, R]{
			probe: probe[O, I, K]{
				link:     link[O]{up: outer.Open()},
				inner:    inner,
				outerKey: outerKey,
				innerKey: innerKey,
				eq:       eq,
			},
			result: result,
		}
	}, outer, inner)
}

// GroupJoin yields result once per outer element with the sequence of inner
// elements sharing its key, which is empty when nothing matches.
func GroupJoin[O, I, K, R any](outer Sequence[O], inner Sequence[I], outerKey func(O) K, innerKey func(I) K, result func(O, Sequence[I]) R) Sequence[R] {
	return groupJoin("GroupJoin", outer, inner, outerKey, innerKey, result, nil)
}

// GroupJoinComparer is GroupJoin with keys matched by eq.
func GroupJoinComparer[O, I, K, R any](outer Sequence[O], inner Sequence[I], outerKey func(O) K, innerKey func(I) K, result func(O, Sequence[I]) R, eq compare.EqualityComparer[K]) Sequence[R] {
	return groupJoin("GroupJoinComparer", outer, inner, outerKey, innerKey, result, eq)
}

func groupJoin[O, I, K, R any](op string, outer Sequence[O], inner Sequence[I], outerKey func(O) K, innerKey func(I) K, result func(O, Sequence[I]) R, eq compare.EqualityComparer[K]) Sequence[R] {
	mustSource(op, "outer", outer)
	mustSource(op, "inner", inner)
	mustArg(op, "outerKey", outerKey != nil)
	mustArg(op, "innerKey", innerKey != nil)
	mustArg(op, "result", result != nil)
	return derive(KindGroupJoin, func() cursor.Cursor[R] {
		return &groupJoiner[O, I, K, R]{
			probe: probe[O, I, K]{
				link:     link[O]{up: outer.Open()},
				inner:    inner,
				outerKey: outerKey,
				innerKey: innerKey,
				eq:       eq,
			},
			result: result,
		}
	}, outer, inner)
}

// probe walks the outer cursor and looks each key up in the inner table.
type probe[O, I, K any] struct {
	link[O]
	inner    Sequence[I]
	outerKey func(O) K
	innerKey func(I) K
	eq       compare.EqualityComparer[K]
	table    *lookup.Table[K, I]
	err      error
}

// advance moves to the next outer element and returns it with its matches.
// It must run under compare.Catch(&p.err).
func (p *probe[O, I, K]) advance() (o O, matches []I, ok bool) {
	if p.err != nil || !p.up.Next() {
		return o, nil, false
	}
	o = p.up.Value()
	if p.table == nil {
		table, err := lookup.Build(p.inner.Open(), p.innerKey, identity[I], p.eq, true)
		if err != nil {
			p.err = err
			return o, nil, false
		}
		p.table = table
	}
	if key := p.outerKey(o); !compare.IsNull(key) {
		matches = p.table.Get(key)
	}
	return o, matches, true
}

func (p *probe[O, I, K]) Error() error {
	if p.err != nil {
		return p.err
	}
	return p.up.Error()
}

type joiner[O, I, K, R any] struct {
	cursor.Current[R]
	probe[O, I, K]
	result  func(O, I) R
	outer   O
	pending []I
}

func (c *joiner[O, I, K, R]) Next() (ok bool) {
	defer func() {
		if !ok {
			c.pending = nil
			c.Clear()
		}
	}()
	defer compare.Catch(&c.err)
	for len(c.pending) == 0 {
		o, matches, more := c.advance()
		if !more {
			return false
		}
		c.outer, c.pending = o, matches
	}
	c.Set(c.result(c.outer, c.pending[0]))
	c.pending = c.pending[1:]
	return true
}

type groupJoiner[O, I, K, R any] struct {
	cursor.Current[R]
	probe[O, I, K]
	result func(O, Sequence[I]) R
}

func (c *groupJoiner[O, I, K, R]) Next() (ok bool) {
	defer func() {
		if !ok {
			c.Clear()
		}
	}()
	defer compare.Catch(&c.err)
	o, matches, more := c.advance()
	if !more {
		return false
	}
	c.Set(c.result(o, FromSlice(matches)))
	return true
}

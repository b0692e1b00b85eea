// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"fmt"
	"hash/maphash"
	"reflect"
	"runtime"
	"sync"

	"github.com/dacapoday/lazy/internal/trace"
)

var (
	orderings  sync.Map // reflect.Type -> *typeOrdering
	equalities sync.Map // reflect.Type -> *typeEquality
)

// ResolveOrdering returns the cached ordering comparer for values whose
// dynamic type is t. Repeated calls return the same comparer.
func ResolveOrdering(t reflect.Type) (Comparer[any], error) {
	if t == nil {
		return nil, fmt.Errorf("compare.ResolveOrdering: %w: nil type", ErrInvalidArgument)
	}
	if c, ok := orderings.Load(t); ok {
		return c.(*typeOrdering), nil
	}
	c, loaded := orderings.LoadOrStore(t, newTypeOrdering(t))
	if !loaded {
		trace.Debug("compare").Stringer(trace.FieldType, t).Msg("ordering resolved")
	}
	return c.(*typeOrdering), nil
}

// ResolveEquality returns the cached equality comparer for values whose
// dynamic type is t. Repeated calls return the same comparer.
func ResolveEquality(t reflect.Type) (EqualityComparer[any], error) {
	if t == nil {
		return nil, fmt.Errorf("compare.ResolveEquality: %w: nil type", ErrInvalidArgument)
	}
	if e, ok := equalities.Load(t); ok {
		return e.(*typeEquality), nil
	}
	e, loaded := equalities.LoadOrStore(t, newTypeEquality(t))
	if !loaded {
		trace.Debug("compare").Stringer(trace.FieldType, t).Msg("equality resolved")
	}
	return e.(*typeEquality), nil
}

var (
	intType    = reflect.TypeFor[int]()
	boolType   = reflect.TypeFor[bool]()
	uint64Type = reflect.TypeFor[uint64]()
)

// selfMethod finds a method `name(t) out` declared on t.
func selfMethod(t reflect.Type, name string, out reflect.Type) (reflect.Value, bool) {
	if t.Kind() == reflect.Interface {
		return reflect.Value{}, false
	}
	m, ok := t.MethodByName(name)
	if !ok {
		return reflect.Value{}, false
	}
	mt := m.Type
	if mt.NumIn() != 2 || mt.In(1) != t || mt.NumOut() != 1 || mt.Out(0) != out {
		return reflect.Value{}, false
	}
	return m.Func, true
}

// hashMethod finds `Hash() uint64` declared on t.
func hashMethod(t reflect.Type) (reflect.Value, bool) {
	if t.Kind() == reflect.Interface {
		return reflect.Value{}, false
	}
	m, ok := t.MethodByName("Hash")
	if !ok || m.Type.NumIn() != 1 || m.Type.NumOut() != 1 || m.Type.Out(0) != uint64Type {
		return reflect.Value{}, false
	}
	return m.Func, true
}

func valueIsNil(v reflect.Value) bool {
	return !v.IsValid() || (nillable(v.Kind()) && v.IsNil())
}

type typeOrdering struct {
	typ      reflect.Type
	class    class
	compare  reflect.Value
	nillable bool
}

func newTypeOrdering(t reflect.Type) *typeOrdering {
	o := &typeOrdering{typ: t, nillable: nillable(t.Kind())}
	if m, ok := selfMethod(t, "Compare", intType); ok {
		o.compare = m
		return o
	}
	o.class = classOf(t.Kind())
	return o
}

func (o *typeOrdering) operand(v any) reflect.Value {
	if v == nil {
		return reflect.Value{}
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != o.typ {
		panic(&IncomparableError{Type: o.typ, Other: rv.Type()})
	}
	return rv
}

func (o *typeOrdering) Compare(a, b any) int {
	x, y := o.operand(a), o.operand(b)
	if o.nillable || !x.IsValid() || !y.IsValid() {
		if c, done := nilOrder(valueIsNil(x), valueIsNil(y)); done {
			return c
		}
	}
	switch {
	case o.compare.IsValid():
		return int(o.compare.Call([]reflect.Value{x, y})[0].Int())
	case o.class != none:
		return o.class.compare(reflectLoad(o.class, x), reflectLoad(o.class, y))
	}
	panic(&IncomparableError{Type: o.typ})
}

type typeEquality struct {
	typ        reflect.Type
	class      class
	equal      reflect.Value
	hash       reflect.Value
	nillable   bool
	comparable bool
}

func newTypeEquality(t reflect.Type) *typeEquality {
	e := &typeEquality{typ: t, nillable: nillable(t.Kind()), comparable: t.Comparable()}
	if m, ok := selfMethod(t, "Equal", boolType); ok {
		e.equal = m
		if h, ok := hashMethod(t); ok {
			e.hash = h
		}
		return e
	}
	e.class = classOf(t.Kind())
	return e
}

func (e *typeEquality) Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	x, y := reflect.ValueOf(a), reflect.ValueOf(b)
	if x.Type() != e.typ || y.Type() != e.typ {
		return false
	}
	switch {
	case e.equal.IsValid():
		if e.nillable {
			xNil, yNil := x.IsNil(), y.IsNil()
			if xNil || yNil {
				return xNil && yNil
			}
		}
		return e.equal.Call([]reflect.Value{x, y})[0].Bool()
	case e.class != none:
		return e.class.equal(reflectLoad(e.class, x), reflectLoad(e.class, y))
	case e.comparable:
		defer e.guard()
		return a == b
	}
	panic(&IncomparableError{Type: e.typ})
}

func (e *typeEquality) Hash(v any) uint64 {
	if v == nil {
		return 0
	}
	x := reflect.ValueOf(v)
	switch {
	case e.equal.IsValid():
		if !e.hash.IsValid() || (e.nillable && x.IsNil()) {
			return 0
		}
		return e.hash.Call([]reflect.Value{x})[0].Uint()
	case e.class != none:
		return e.class.hash(reflectLoad(e.class, x))
	case e.comparable:
		defer e.guard()
		return maphash.Comparable(seed, v)
	}
	panic(&IncomparableError{Type: e.typ})
}

func (e *typeEquality) guard() {
	if r := recover(); r != nil {
		if _, ok := r.(runtime.Error); ok {
			panic(&IncomparableError{Type: e.typ})
		}
		panic(r)
	}
}

// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"cmp"
	"encoding/binary"
	"math"
	"reflect"
	"strings"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

type class uint8

const (
	none class = iota
	signed
	unsigned
	float
	text
	boolean
)

func classOf(kind reflect.Kind) class {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signed
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsigned
	case reflect.Float32, reflect.Float64:
		return float
	case reflect.String:
		return text
	case reflect.Bool:
		return boolean
	}
	return none
}

// scalar is a value of a natural kind widened to a common representation.
type scalar struct {
	i int64
	u uint64
	f float64
	s string
}

// load reads the value behind p according to its kind, so named types such
// as `type Age int` share the builtin ordering.
func load(kind reflect.Kind, p unsafe.Pointer) (v scalar) {
	switch kind {
	case reflect.Int:
		v.i = int64(*(*int)(p))
	case reflect.Int8:
		v.i = int64(*(*int8)(p))
	case reflect.Int16:
		v.i = int64(*(*int16)(p))
	case reflect.Int32:
		v.i = int64(*(*int32)(p))
	case reflect.Int64:
		v.i = *(*int64)(p)
	case reflect.Uint:
		v.u = uint64(*(*uint)(p))
	case reflect.Uint8:
		v.u = uint64(*(*uint8)(p))
	case reflect.Uint16:
		v.u = uint64(*(*uint16)(p))
	case reflect.Uint32:
		v.u = uint64(*(*uint32)(p))
	case reflect.Uint64:
		v.u = *(*uint64)(p)
	case reflect.Uintptr:
		v.u = uint64(*(*uintptr)(p))
	case reflect.Float32:
		v.f = float64(*(*float32)(p))
	case reflect.Float64:
		v.f = *(*float64)(p)
	case reflect.String:
		v.s = *(*string)(p)
	case reflect.Bool:
		if *(*bool)(p) {
			v.u = 1
		}
	}
	return
}

func reflectLoad(c class, rv reflect.Value) (v scalar) {
	switch c {
	case signed:
		v.i = rv.Int()
	case unsigned:
		v.u = rv.Uint()
	case float:
		v.f = rv.Float()
	case text:
		v.s = rv.String()
	case boolean:
		if rv.Bool() {
			v.u = 1
		}
	}
	return
}

func (c class) compare(a, b scalar) int {
	switch c {
	case signed:
		return cmp.Compare(a.i, b.i)
	case unsigned, boolean:
		return cmp.Compare(a.u, b.u)
	case float:
		return cmp.Compare(a.f, b.f)
	default:
		return strings.Compare(a.s, b.s)
	}
}

func (c class) equal(a, b scalar) bool {
	switch c {
	case signed:
		return a.i == b.i
	case unsigned, boolean:
		return a.u == b.u
	case float:
		return a.f == b.f || (math.IsNaN(a.f) && math.IsNaN(b.f))
	default:
		return a.s == b.s
	}
}

const nanHash = 0x7ff8_0000_0000_0001

func (c class) hash(v scalar) uint64 {
	switch c {
	case signed:
		return hashBits(uint64(v.i))
	case unsigned, boolean:
		return hashBits(v.u)
	case float:
		switch {
		case math.IsNaN(v.f):
			return hashBits(nanHash)
		case v.f == 0:
			return hashBits(0)
		}
		return hashBits(math.Float64bits(v.f))
	default:
		return xxhash.Sum64String(v.s)
	}
}

func hashBits(u uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], u)
	return xxhash.Sum64(b[:])
}

// natural compares values of a boolean, numeric or string kind.
type natural[T any] struct {
	class class
	kind  reflect.Kind
}

func (n natural[T]) Compare(a, b T) int {
	return n.class.compare(load(n.kind, unsafe.Pointer(&a)), load(n.kind, unsafe.Pointer(&b)))
}

func (n natural[T]) Equal(a, b T) bool {
	return n.class.equal(load(n.kind, unsafe.Pointer(&a)), load(n.kind, unsafe.Pointer(&b)))
}

func (n natural[T]) Hash(v T) uint64 {
	return n.class.hash(load(n.kind, unsafe.Pointer(&v)))
}

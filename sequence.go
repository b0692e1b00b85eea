package lazy

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/dacapoday/lazy/cursor"
	"github.com/dacapoday/lazy/internal/trace"
)

// Kind identifies the operator a Sequence applies.
type Kind uint8

const (
	KindSlice Kind = iota
	KindSeq
	KindFunc
	KindRange
	KindRepeat
	KindFilter
	KindMap
	KindFlatMap
	KindZip
	KindCast
	KindSkip
	KindTake
	KindSkipWhile
	KindTakeWhile
	KindConcat
	KindReverse
	KindDefaultIfEmpty
	KindDistinct
	KindUnion
	KindIntersect
	KindExcept
	KindGroup
	KindJoin
	KindGroupJoin
	KindOrder
)

var kindNames = [...]string{
	KindSlice:          "Slice",
	KindSeq:            "Seq",
	KindFunc:           "Func",
	KindRange:          "Range",
	KindRepeat:         "Repeat",
	KindFilter:         "Filter",
	KindMap:            "Map",
	KindFlatMap:        "FlatMap",
	KindZip:            "Zip",
	KindCast:           "Cast",
	KindSkip:           "Skip",
	KindTake:           "Take",
	KindSkipWhile:      "SkipWhile",
	KindTakeWhile:      "TakeWhile",
	KindConcat:         "Concat",
	KindReverse:        "Reverse",
	KindDefaultIfEmpty: "DefaultIfEmpty",
	KindDistinct:       "Distinct",
	KindUnion:          "Union",
	KindIntersect:      "Intersect",
	KindExcept:         "Except",
	KindGroup:          "Group",
	KindJoin:           "Join",
	KindGroupJoin:      "GroupJoin",
	KindOrder:          "Order",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Node is the type-erased view of a pipeline stage.
type Node interface {
	Kind() Kind
	Upstream() []Node
}

type source[T any] interface {
	open() cursor.Cursor[T]
	kind() Kind
	inputs() []Node
}

// Sequence is a restartable, lazily evaluated stream of T.
//
// A Sequence only describes work. Each Open returns a new cursor that
// advances independently; the underlying source is not touched until that
// cursor's Next is called. The zero Sequence is empty: terminal operators
// enumerate it as having no elements, while composing operators reject it as
// a source.
type Sequence[T any] struct {
	src source[T]
}

var _ Node = Sequence[int]{}

func of[T any](src source[T]) Sequence[T] {
	return Sequence[T]{src: src}
}

func (s Sequence[T]) valid() bool {
	return s.src != nil
}

// Open returns a fresh cursor over the sequence.
func (s Sequence[T]) Open() cursor.Cursor[T] {
	if s.src == nil {
		return cursor.Empty[T]()
	}
	return s.src.open()
}

// All returns a push iterator for range loops. Enumeration errors end the
// loop silently; use a terminal operator when they matter.
func (s Sequence[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range cursor.All(s.Open()) {
			if !yield(v) {
				return
			}
		}
	}
}

// Kind reports the operator at the head of the pipeline.
func (s Sequence[T]) Kind() Kind {
	if s.src == nil {
		return KindSlice
	}
	return s.src.kind()
}

// Upstream returns the sequences this stage reads from.
func (s Sequence[T]) Upstream() []Node {
	if s.src == nil {
		return nil
	}
	return s.src.inputs()
}

// stage is the source of every derived sequence: it remembers its inputs for
// introspection and builds a fresh cursor chain on each open.
type stage[T any] struct {
	k      Kind
	ups    []Node
	opener func() cursor.Cursor[T]
}

func (s *stage[T]) open() cursor.Cursor[T] { return s.opener() }
func (s *stage[T]) kind() Kind             { return s.k }
func (s *stage[T]) inputs() []Node         { return s.ups }

func derive[T any](k Kind, opener func() cursor.Cursor[T], ups ...Node) Sequence[T] {
	return of[T](&stage[T]{k: k, ups: ups, opener: opener})
}

// mustSource rejects the zero Sequence as an operator input.
func mustSource[T any](op, arg string, s Sequence[T]) {
	if !s.valid() {
		panic(&ArgumentError{Op: op, Arg: arg, Reason: "is a zero Sequence"})
	}
}

// link forwards Error and Close to the upstream cursor.
type link[U any] struct {
	up cursor.Cursor[U]
}

func (l *link[U]) Error() error { return l.up.Error() }
func (l *link[U]) Close()       { l.up.Close() }

// deferred builds its cursor on the first Next, so opening stays free.
type deferred[T any] struct {
	build func() cursor.Cursor[T]
	c     cursor.Cursor[T]
}

func onFirstNext[T any](build func() cursor.Cursor[T]) *deferred[T] {
	return &deferred[T]{build: build}
}

func (d *deferred[T]) Next() bool {
	if d.c == nil {
		if d.build == nil {
			return false
		}
		d.c = d.build()
		d.build = nil
	}
	return d.c.Next()
}

func (d *deferred[T]) Value() T {
	if d.c == nil {
		panic(cursor.ErrNotPositioned)
	}
	return d.c.Value()
}

func (d *deferred[T]) Error() error {
	if d.c == nil {
		return nil
	}
	return d.c.Error()
}

func (d *deferred[T]) Close() {
	d.build = nil
	if d.c != nil {
		d.c.Close()
	}
}

// failed logs an enumeration failure and returns a cursor reporting it.
func failed[T any](op string, err error) cursor.Cursor[T] {
	trace.Debug("lazy").Str(trace.FieldOp, op).Err(err).Msg("enumeration failed")
	return cursor.Fail[T](err)
}

// --- sources ---

type sliceSource[T any] struct {
	items []T
}

func (s *sliceSource[T]) open() cursor.Cursor[T] { return cursor.Slice(s.items) }
func (s *sliceSource[T]) kind() Kind             { return KindSlice }
func (s *sliceSource[T]) inputs() []Node         { return nil }

// From returns a sequence over a copy of items.
func From[T any](items ...T) Sequence[T] {
	return of[T](&sliceSource[T]{items: slices.Clone(items)})
}

// FromSlice returns a sequence over items. The slice is not copied; changes
// made to it are visible to later enumerations.
func FromSlice[T any](items []T) Sequence[T] {
	return of[T](&sliceSource[T]{items: items})
}

type seqSource[T any] struct {
	seq iter.Seq[T]
}

func (s *seqSource[T]) open() cursor.Cursor[T] { return cursor.Pull(s.seq) }
func (s *seqSource[T]) kind() Kind             { return KindSeq }
func (s *seqSource[T]) inputs() []Node         { return nil }

// FromSeq adapts a push iterator. The sequence is restartable as long as seq is.
func FromSeq[T any](seq iter.Seq[T]) Sequence[T] {
	mustArg("FromSeq", "seq", seq != nil)
	return of[T](&seqSource[T]{seq: seq})
}

type funcSource[T any] struct {
	factory func() cursor.Cursor[T]
}

func (s *funcSource[T]) open() cursor.Cursor[T] {
	if c := s.factory(); c != nil {
		return c
	}
	return cursor.Empty[T]()
}

func (s *funcSource[T]) kind() Kind     { return KindFunc }
func (s *funcSource[T]) inputs() []Node { return nil }

// FromFunc returns a sequence whose Open calls factory. factory must return a
// fresh cursor on every call.
func FromFunc[T any](factory func() cursor.Cursor[T]) Sequence[T] {
	mustArg("FromFunc", "factory", factory != nil)
	return of[T](&funcSource[T]{factory: factory})
}

type rangeSource struct {
	start, count int
}

func (s *rangeSource) open() cursor.Cursor[int] {
	next, left := s.start, s.count
	return cursor.Func(func() (int, bool) {
		if left == 0 {
			return 0, false
		}
		left--
		v := next
		if left > 0 {
			next++
		}
		return v, true
	})
}

func (s *rangeSource) kind() Kind     { return KindRange }
func (s *rangeSource) inputs() []Node { return nil }

// Range returns count consecutive integers starting at start. The last one
// must not exceed math.MaxInt.
func Range(start, count int) Sequence[int] {
	mustCount("Range", "count", count)
	if count > 0 && start > math.MaxInt-count+1 {
		panic(&ArgumentError{Op: "Range", Arg: "count", Reason: fmt.Sprintf("overflows int from start %d", start)})
	}
	return of[int](&rangeSource{start: start, count: count})
}

type repeatSource[T any] struct {
	v T
	n int
}

func (s *repeatSource[T]) open() cursor.Cursor[T] {
	left := s.n
	return cursor.Func(func() (T, bool) {
		if left == 0 {
			var zero T
			return zero, false
		}
		left--
		return s.v, true
	})
}

func (s *repeatSource[T]) kind() Kind     { return KindRepeat }
func (s *repeatSource[T]) inputs() []Node { return nil }

// Repeat returns a sequence that yields v n times.
func Repeat[T any](v T, n int) Sequence[T] {
	mustCount("Repeat", "n", n)
	return of[T](&repeatSource[T]{v: v, n: n})
}

// Empty returns a sequence with no elements.
func Empty[T any]() Sequence[T] {
	return of[T](&sliceSource[T]{})
}

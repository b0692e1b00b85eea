// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package cursor

const (
	unknown uint8 = iota
	buffered
	drained
)

// Peek adds a one-value lookahead to a cursor.
//
// HasNext may be called any number of times between two Next calls. The
// upstream is advanced at most once per value: a value fetched by HasNext is
// buffered and handed to the following Next exactly once.
type Peek[T any] struct {
	Current[T]
	src   Cursor[T]
	ahead T
	state uint8
}

// NewPeek wraps src.
func NewPeek[T any](src Cursor[T]) *Peek[T] {
	return &Peek[T]{src: src}
}

var _ Cursor[int] = (*Peek[int])(nil)

// HasNext reports whether Next would succeed, without consuming the value.
func (p *Peek[T]) HasNext() bool {
	switch p.state {
	case buffered:
		return true
	case drained:
		return false
	}
	if !p.src.Next() {
		p.state = drained
		return false
	}
	p.ahead = p.src.Value()
	p.state = buffered
	return true
}

// Peek returns the upcoming value without consuming it.
func (p *Peek[T]) Peek() (T, bool) {
	if !p.HasNext() {
		var zero T
		return zero, false
	}
	return p.ahead, true
}

// Next consumes the buffered value, fetching it first if needed.
func (p *Peek[T]) Next() bool {
	if !p.HasNext() {
		p.Clear()
		return false
	}
	p.Set(p.ahead)
	var zero T
	p.ahead = zero
	p.state = unknown
	return true
}

// Error returns the upstream error.
func (p *Peek[T]) Error() error {
	return p.src.Error()
}

// Close closes the upstream.
func (p *Peek[T]) Close() {
	p.src.Close()
}

package lazy

import (
	"errors"
	"fmt"

	"github.com/dacapoday/lazy/compare"
)

// each feeds the elements of s to fn until fn returns false, then reports
// the enumeration error. Stopping early is not an error. A zero s has no
// elements, so every terminal built on each treats it as empty.
func (s Sequence[T]) each(fn func(T) bool) error {
	c := s.Open()
	defer c.Close()
	for c.Next() {
		if !fn(c.Value()) {
			return nil
		}
	}
	return c.Error()
}

// ToSlice collects the elements of s.
func (s Sequence[T]) ToSlice() ([]T, error) {
	var items []T
	err := s.each(func(v T) bool {
		items = append(items, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ToMap collects s into a map. A key produced twice fails with an error
// wrapping ErrDuplicateKey.
func ToMap[T any, K comparable, V any](s Sequence[T], keyOf func(T) K, valueOf func(T) V) (map[K]V, error) {
	mustArg("ToMap", "keyOf", keyOf != nil)
	mustArg("ToMap", "valueOf", valueOf != nil)
	m := make(map[K]V)
	var dup error
	err := s.each(func(v T) bool {
		k := keyOf(v)
		if _, ok := m[k]; ok {
			dup = fmt.Errorf("%w: %v", ErrDuplicateKey, k)
			return false
		}
		m[k] = valueOf(v)
		return true
	})
	if err == nil {
		err = dup
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Count returns the number of elements.
func (s Sequence[T]) Count() (int, error) {
	n := 0
	err := s.each(func(T) bool {
		n++
		return true
	})
	return n, err
}

// CountWhere returns the number of elements satisfying pred.
func (s Sequence[T]) CountWhere(pred func(T) bool) (int, error) {
	mustArg("CountWhere", "pred", pred != nil)
	n := 0
	err := s.each(func(v T) bool {
		if pred(v) {
			n++
		}
		return true
	})
	return n, err
}

// Any reports whether s has at least one element. It reads at most one.
func (s Sequence[T]) Any() (bool, error) {
	found := false
	err := s.each(func(T) bool {
		found = true
		return false
	})
	return found, err
}

// AnyWhere reports whether some element satisfies pred.
func (s Sequence[T]) AnyWhere(pred func(T) bool) (bool, error) {
	mustArg("AnyWhere", "pred", pred != nil)
	found := false
	err := s.each(func(v T) bool {
		found = pred(v)
		return !found
	})
	return found, err
}

// Every reports whether all elements satisfy pred; true for an empty s.
func (s Sequence[T]) Every(pred func(T) bool) (bool, error) {
	mustArg("Every", "pred", pred != nil)
	ok := true
	err := s.each(func(v T) bool {
		ok = pred(v)
		return ok
	})
	return ok, err
}

// Contains reports whether s holds an element equal to v under
// compare.DefaultEquality for T.
func (s Sequence[T]) Contains(v T) (bool, error) {
	return s.ContainsBy(v, nil)
}

// ContainsBy is Contains under eq. A nil eq selects the default.
func (s Sequence[T]) ContainsBy(v T, eq compare.EqualityComparer[T]) (found bool, err error) {
	if eq == nil {
		eq = compare.DefaultEquality[T]()
	}
	defer compare.Catch(&err)
	err = s.each(func(x T) bool {
		found = eq.Equal(x, v)
		return !found
	})
	return found, err
}

// First returns the first element, or ErrNoElements.
func (s Sequence[T]) First() (T, error) {
	return s.first(nil)
}

// FirstWhere returns the first element satisfying pred, or ErrNoElements.
func (s Sequence[T]) FirstWhere(pred func(T) bool) (T, error) {
	mustArg("FirstWhere", "pred", pred != nil)
	return s.first(pred)
}

// FirstOrDefault returns the first element, or def when s is empty.
func (s Sequence[T]) FirstOrDefault(def T) (T, error) {
	v, err := s.first(nil)
	if errors.Is(err, ErrNoElements) {
		return def, nil
	}
	return v, err
}

func (s Sequence[T]) first(pred func(T) bool) (v T, err error) {
	found := false
	err = s.each(func(x T) bool {
		if pred == nil || pred(x) {
			v, found = x, true
		}
		return !found
	})
	if err == nil && !found {
		err = ErrNoElements
	}
	return v, err
}

// Last returns the last element, or ErrNoElements.
func (s Sequence[T]) Last() (T, error) {
	var v T
	found := false
	err := s.each(func(x T) bool {
		v, found = x, true
		return true
	})
	if err == nil && !found {
		err = ErrNoElements
	}
	return v, err
}

// LastOrDefault returns the last element, or def when s is empty.
func (s Sequence[T]) LastOrDefault(def T) (T, error) {
	v, err := s.Last()
	if errors.Is(err, ErrNoElements) {
		return def, nil
	}
	return v, err
}

// Single returns the only element. It fails with ErrNoElements when s is
// empty and with ErrMoreThanOne as soon as a second element appears.
func (s Sequence[T]) Single() (T, error) {
	return s.single(nil)
}

// SingleWhere returns the only element satisfying pred.
func (s Sequence[T]) SingleWhere(pred func(T) bool) (T, error) {
	mustArg("SingleWhere", "pred", pred != nil)
	return s.single(pred)
}

// SingleOrDefault returns the only element, or def when s is empty. More
// than one element is still an error.
func (s Sequence[T]) SingleOrDefault(def T) (T, error) {
	v, err := s.single(nil)
	if errors.Is(err, ErrNoElements) {
		return def, nil
	}
	return v, err
}

func (s Sequence[T]) single(pred func(T) bool) (v T, err error) {
	n := 0
	err = s.each(func(x T) bool {
		if pred == nil || pred(x) {
			v = x
			n++
		}
		return n < 2
	})
	switch {
	case err != nil:
	case n == 0:
		err = ErrNoElements
	case n > 1:
		var zero T
		return zero, ErrMoreThanOne
	}
	return v, err
}

// ElementAt returns the element at zero-based index i. An index outside the
// sequence fails with an error wrapping ErrOutOfRange.
func (s Sequence[T]) ElementAt(i int) (v T, err error) {
	found := false
	if i >= 0 {
		at := 0
		err = s.each(func(x T) bool {
			if at == i {
				v, found = x, true
				return false
			}
			at++
			return true
		})
	}
	if err == nil && !found {
		err = fmt.Errorf("%w: index %d", ErrOutOfRange, i)
	}
	return v, err
}

// ElementAtOrDefault returns the element at index i, or def when i is
// outside the sequence.
func (s Sequence[T]) ElementAtOrDefault(i int, def T) (T, error) {
	v, err := s.ElementAt(i)
	if errors.Is(err, ErrOutOfRange) {
		return def, nil
	}
	return v, err
}

// Aggregate folds s with f, seeded with the first element. An empty s fails
// with ErrNoElements.
func (s Sequence[T]) Aggregate(f func(acc, v T) T) (T, error) {
	mustArg("Aggregate", "f", f != nil)
	var acc T
	started := false
	err := s.each(func(v T) bool {
		if started {
			acc = f(acc, v)
		} else {
			acc, started = v, true
		}
		return true
	})
	if err == nil && !started {
		err = ErrNoElements
	}
	return acc, err
}

// AggregateSeed folds s with f starting from seed. A zero s returns seed.
func AggregateSeed[T, A any](s Sequence[T], seed A, f func(acc A, v T) A) (A, error) {
	mustArg("AggregateSeed", "f", f != nil)
	acc := seed
	err := s.each(func(v T) bool {
		acc = f(acc, v)
		return true
	})
	return acc, err
}

// SequenceEqual reports whether s and other have equal elements in the same
// order under compare.DefaultEquality for T.
func (s Sequence[T]) SequenceEqual(other Sequence[T]) (bool, error) {
	return SequenceEqualBy(s, other, nil)
}

// SequenceEqualBy is SequenceEqual under eq. A zero Sequence compares as
// empty.
func SequenceEqualBy[T any](s, other Sequence[T], eq compare.EqualityComparer[T]) (same bool, err error) {
	if eq == nil {
		eq = compare.DefaultEquality[T]()
	}
	defer compare.Catch(&err)
	a, b := s.Open(), other.Open()
	defer a.Close()
	defer b.Close()
	for {
		more := a.Next()
		if more != b.Next() {
			break
		}
		if !more {
			same = true
			break
		}
		if !eq.Equal(a.Value(), b.Value()) {
			break
		}
	}
	if err = a.Error(); err == nil {
		err = b.Error()
	}
	if err != nil {
		return false, err
	}
	return same, nil
}

// ForEach calls f for every element.
func (s Sequence[T]) ForEach(f func(T)) error {
	mustArg("ForEach", "f", f != nil)
	return s.each(func(v T) bool {
		f(v)
		return true
	})
}

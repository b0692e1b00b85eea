package lazy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEmptySourceTermination checks the invalid-state rules of terminals on
// an empty source and the default-returning variants.
func TestEmptySourceTermination(t *testing.T) {
	empty := Empty[int]()

	_, err := empty.First()
	require.ErrorIs(t, err, ErrNoElements)
	require.ErrorIs(t, err, ErrInvalidState)
	_, err = empty.Single()
	require.ErrorIs(t, err, ErrInvalidState)
	_, err = empty.Last()
	require.ErrorIs(t, err, ErrInvalidState)
	_, err = empty.Aggregate(func(a, b int) int { return a + b })
	require.ErrorIs(t, err, ErrInvalidState)

	v, err := empty.FirstOrDefault(-1)
	require.NoError(t, err)
	require.Equal(t, -1, v)
	v, err = empty.SingleOrDefault(-2)
	require.NoError(t, err)
	require.Equal(t, -2, v)
	v, err = empty.LastOrDefault(-3)
	require.NoError(t, err)
	require.Equal(t, -3, v)

	sum, err := AggregateSeed(empty, 10, func(acc, v int) int { return acc + v })
	require.NoError(t, err)
	require.Equal(t, 10, sum)
}

// TestZeroSequenceTerminals checks that terminals enumerate the zero
// Sequence as empty instead of rejecting it.
func TestZeroSequenceTerminals(t *testing.T) {
	var zero Sequence[int]

	m, err := ToMap(zero, identity[int], identity[int])
	require.NoError(t, err)
	require.Empty(t, m)

	acc, err := AggregateSeed(zero, 7, func(acc, v int) int { return acc + v })
	require.NoError(t, err)
	require.Equal(t, 7, acc)

	same, err := SequenceEqualBy(zero, Empty[int](), nil)
	require.NoError(t, err)
	require.True(t, same)
	same, err = zero.SequenceEqual(From(1))
	require.NoError(t, err)
	require.False(t, same)

	_, err = zero.First()
	require.ErrorIs(t, err, ErrNoElements)
	items, err := zero.ToSlice()
	require.NoError(t, err)
	require.Empty(t, items)
	t.Logf("✓ zero Sequence behaves as empty in terminals")
}

func TestSingle(t *testing.T) {
	v, err := From(4).Single()
	require.NoError(t, err)
	require.Equal(t, 4, v)

	_, err = From(4, 5).Single()
	require.ErrorIs(t, err, ErrMoreThanOne)
	_, err = From(4, 5).SingleOrDefault(0)
	require.ErrorIs(t, err, ErrMoreThanOne)

	v, err = Range(0, 10).SingleWhere(func(v int) bool { return v == 7 })
	require.NoError(t, err)
	require.Equal(t, 7, v)

	// Single stops at the second match.
	pulled := 0
	_, err = counted([]int{1, 2, 3, 4}, &pulled).Single()
	require.ErrorIs(t, err, ErrMoreThanOne)
	require.Equal(t, 2, pulled)
}

func TestElementAt(t *testing.T) {
	s := From("a", "b", "c")

	v, err := s.ElementAt(1)
	require.NoError(t, err)
	require.Equal(t, "b", v)

	_, err = s.ElementAt(3)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = s.ElementAt(-1)
	require.ErrorIs(t, err, ErrOutOfRange)

	v, err = s.ElementAtOrDefault(5, "z")
	require.NoError(t, err)
	require.Equal(t, "z", v)
}

func TestCounting(t *testing.T) {
	s := Range(1, 6)

	n, err := s.Count()
	require.NoError(t, err)
	require.Equal(t, 6, n)

	n, err = s.CountWhere(func(v int) bool { return v > 4 })
	require.NoError(t, err)
	require.Equal(t, 2, n)

	ok, err := s.Any()
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = Empty[int]().Any()
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = s.Every(func(v int) bool { return v > 0 })
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.Every(func(v int) bool { return v < 3 })
	require.NoError(t, err)
	require.False(t, ok)

	pulled := 0
	ok, err = counted([]int{1, 2, 3}, &pulled).Any()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, pulled)
}

func TestContains(t *testing.T) {
	ok, err := From("x", "y").Contains("y")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = From(1.5, 2.5).Contains(3)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = From[any]([]int{1}).Contains([]int{1})
	require.ErrorIs(t, err, ErrIncomparable)
}

func TestAggregate(t *testing.T) {
	v, err := Range(1, 4).Aggregate(func(a, b int) int { return a * b })
	require.NoError(t, err)
	require.Equal(t, 24, v)

	s, err := AggregateSeed(From("a", "b"), ">", func(acc, v string) string { return acc + v })
	require.NoError(t, err)
	require.Equal(t, ">ab", s)
}

func TestSequenceEqual(t *testing.T) {
	ok, err := Range(0, 3).SequenceEqual(From(0, 1, 2))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Range(0, 3).SequenceEqual(From(0, 1))
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = From(0, 1).SequenceEqual(From(0, 2))
	require.NoError(t, err)
	require.False(t, ok)

	boom := errors.New("boom")
	_, err = From(1).SequenceEqual(failing(boom, 1))
	require.ErrorIs(t, err, boom)
}

func TestToMap(t *testing.T) {
	m, err := ToMap(From("a", "bb"), func(s string) string { return s }, func(s string) int { return len(s) })
	require.NoError(t, err)
	require.Equal(t, map[string]int{"a": 1, "bb": 2}, m)

	_, err = ToMap(From("a", "a"), func(s string) string { return s }, func(s string) int { return len(s) })
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestForEach(t *testing.T) {
	var seen []int
	require.NoError(t, Range(0, 3).ForEach(func(v int) { seen = append(seen, v) }))
	require.Equal(t, []int{0, 1, 2}, seen)

	boom := errors.New("boom")
	require.ErrorIs(t, failing(boom, 1).ForEach(func(int) {}), boom)
}

// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package order

import (
	"cmp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dacapoday/lazy/compare"
)

type row struct {
	n int
	s string
}

func apply[T any](t *testing.T, c *Chain[T], items []T) []T {
	t.Helper()
	perm, err := c.Sort(items)
	require.NoError(t, err)
	out := make([]T, len(perm))
	for i, p := range perm {
		out[i] = items[p]
	}
	return out
}

var rows = []row{{1, "c"}, {1, "a"}, {2, "c"}, {1, "b"}, {2, "a"}}

func byN(r row) int    { return r.n }
func byS(r row) string { return r.s }

// TestThenBy sorts by the primary key first and breaks ties by the second.
func TestThenBy(t *testing.T) {
	chain := Then(Primary(byN, nil, false), byS, nil, false)
	got := apply(t, chain, rows)
	want := []row{{1, "a"}, {1, "b"}, {1, "c"}, {2, "a"}, {2, "c"}}
	if !slicesEqual(got, want) {
		t.Fatalf("ThenBy = %v, want %v", got, want)
	}
	require.Equal(t, 2, chain.Depth())
}

// TestStable keeps source order among equal keys.
func TestStable(t *testing.T) {
	got := apply(t, Primary(byN, nil, false), rows)
	want := []row{{1, "c"}, {1, "a"}, {1, "b"}, {2, "c"}, {2, "a"}}
	require.Equal(t, want, got)

	got = apply(t, Primary(byN, nil, true), rows)
	want = []row{{2, "c"}, {2, "a"}, {1, "c"}, {1, "a"}, {1, "b"}}
	require.Equal(t, want, got)
}

func TestMixedDirections(t *testing.T) {
	chain := Then(Primary(byN, nil, true), byS, nil, false)
	got := apply(t, chain, rows)
	want := []row{{2, "a"}, {2, "c"}, {1, "a"}, {1, "b"}, {1, "c"}}
	require.Equal(t, want, got)
}

// TestParentUnchanged derives two chains from one primary.
func TestParentUnchanged(t *testing.T) {
	primary := Primary(byN, nil, false)
	asc := Then(primary, byS, nil, false)
	desc := Then(primary, byS, nil, true)

	require.Equal(t, []row{{1, "a"}, {1, "b"}, {1, "c"}, {2, "a"}, {2, "c"}}, apply(t, asc, rows))
	require.Equal(t, []row{{1, "c"}, {1, "b"}, {1, "a"}, {2, "c"}, {2, "a"}}, apply(t, desc, rows))
	require.Equal(t, []row{{1, "c"}, {1, "a"}, {1, "b"}, {2, "c"}, {2, "a"}}, apply(t, primary, rows))
	require.Equal(t, 1, primary.Depth())
}

func TestExplicitComparer(t *testing.T) {
	words := []string{"Banana", "apple", "cherry", "Apple"}
	fold := compare.Func[string](func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	got := apply(t, Primary(func(s string) string { return s }, fold, false), words)
	require.Equal(t, []string{"apple", "Apple", "Banana", "cherry"}, got)

	byLen := compare.Func[string](func(a, b string) int { return cmp.Compare(len(a), len(b)) })
	got = apply(t, Then(Primary(func(s string) int { return len(s) }, nil, false), func(s string) string { return s }, byLen, false), words)
	require.Equal(t, []string{"apple", "Apple", "Banana", "cherry"}, got)
}

// TestKeysComputedOnce checks each selector runs once per element.
func TestKeysComputedOnce(t *testing.T) {
	calls := map[string]int{}
	chain := Then(
		Primary(func(r row) int { calls["n"]++; return r.n }, nil, false),
		func(r row) string { calls["s"]++; return r.s }, nil, false)
	apply(t, chain, rows)
	require.Equal(t, map[string]int{"n": len(rows), "s": len(rows)}, calls)
}

// TestUnresolvedKeyTolerated checks an incomparable key only fails when used.
func TestUnresolvedKeyTolerated(t *testing.T) {
	type opaque struct{ v int }
	chain := Then(Primary(byN, nil, false), func(r row) opaque { return opaque{r.n} }, nil, false)

	require.Equal(t, []row{{1, "x"}}, apply(t, chain, []row{{1, "x"}}))
	require.Empty(t, apply(t, chain, nil))

	_, err := chain.Sort([]row{{1, "x"}, {1, "y"}})
	require.ErrorIs(t, err, compare.ErrIncomparable)

	// primary key decides every pair, the opaque key is never compared
	got := apply(t, chain, []row{{2, "x"}, {1, "y"}})
	require.Equal(t, []row{{1, "y"}, {2, "x"}}, got)

	dyn := Primary(func(v any) any { return v }, nil, false)
	require.Equal(t, []any{nil, 1, 2, 3}, apply(t, dyn, []any{3, nil, 1, 2}))
	_, err = dyn.Sort([]any{1, "1"})
	require.ErrorIs(t, err, compare.ErrIncomparable)
}

func slicesEqual(a, b []row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package lazy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dacapoday/lazy/compare"
)

var rows = []row{{1, "c"}, {1, "a"}, {2, "c"}, {1, "b"}, {2, "a"}}

func rowN(r row) int    { return r.n }
func rowS(r row) string { return r.s }

// TestStableMultiKeySort checks tie-breaking by a secondary key and stable
// order when there is none.
func TestStableMultiKeySort(t *testing.T) {
	src := FromSlice(rows)

	byBoth := collect(t, ThenBy(OrderBy(src, rowN), rowS).Sequence())
	require.Equal(t, []row{{1, "a"}, {1, "b"}, {1, "c"}, {2, "a"}, {2, "c"}}, byBoth)

	byFirst := collect(t, OrderBy(src, rowN).Sequence())
	require.Equal(t, []row{{1, "c"}, {1, "a"}, {1, "b"}, {2, "c"}, {2, "a"}}, byFirst)

	t.Logf("✓ sorted %v", byBoth)
}

func TestOrderDirections(t *testing.T) {
	src := FromSlice(rows)

	got := collect(t, ThenByDescending(OrderByDescending(src, rowN), rowS).Sequence())
	require.Equal(t, []row{{2, "c"}, {2, "a"}, {1, "c"}, {1, "b"}, {1, "a"}}, got)

	// Equal keys keep source order under descending too.
	got = collect(t, OrderByDescending(src, rowN).Sequence())
	require.Equal(t, []row{{2, "c"}, {2, "a"}, {1, "c"}, {1, "a"}, {1, "b"}}, got)

	reversed := compare.Func[string](func(a, b string) int { return strings.Compare(b, a) })
	got = collect(t, ThenByComparer(OrderBy(src, rowN), rowS, reversed, false).Sequence())
	require.Equal(t, []row{{1, "c"}, {1, "b"}, {1, "a"}, {2, "c"}, {2, "a"}}, got)
}

// TestThenByLeavesParent checks that extending an ordering returns a new one.
func TestThenByLeavesParent(t *testing.T) {
	parent := OrderBy(FromSlice(rows), rowN)
	child := ThenBy(parent, rowS)

	require.Equal(t, 1, parent.Levels())
	require.Equal(t, 2, child.Levels())
	require.Equal(t, []row{{1, "c"}, {1, "a"}, {1, "b"}, {2, "c"}, {2, "a"}}, collect(t, parent.Sequence()))
	require.Equal(t, []row{{1, "a"}, {1, "b"}, {1, "c"}, {2, "a"}, {2, "c"}}, collect(t, child.Sequence()))
}

func TestOrderedOpen(t *testing.T) {
	o := OrderBy(From(3, 1, 2), identity[int])

	var got []int
	for v := range o.All() {
		got = append(got, v)
	}
	require.Equal(t, []int{1, 2, 3}, got)

	c := o.Open()
	defer c.Close()
	require.True(t, c.Next())
	require.Equal(t, 1, c.Value())

	var zero OrderedSequence[int]
	require.Zero(t, zero.Levels())
	require.False(t, zero.Open().Next())
}

// TestOrderSnapshotsPerOpen checks that each cursor sorts the source as it
// is when enumeration starts.
func TestOrderSnapshotsPerOpen(t *testing.T) {
	items := []int{3, 1, 2}
	o := OrderBy(FromSlice(items), identity[int]).Sequence()

	require.Equal(t, []int{1, 2, 3}, collect(t, o))
	items[0] = 0
	require.Equal(t, []int{0, 1, 2}, collect(t, o))
}

func TestOrderNullsFirst(t *testing.T) {
	keys := From(compare.Some(2), compare.Null[int](), compare.Some(1))
	got := collect(t, Select(OrderBy(keys, identity[compare.Nullable[int]]).Sequence(),
		func(n compare.Nullable[int]) int {
			if n.IsNull() {
				return -1
			}
			return n.Value
		}))
	require.Equal(t, []int{-1, 1, 2}, got)
}

// TestOrderIncomparable checks that a key type without an ordering fails
// only when enumerated.
func TestOrderIncomparable(t *testing.T) {
	type opaque struct{ v []int }
	o := OrderBy(From(opaque{[]int{1}}, opaque{[]int{2}}), identity[opaque]).Sequence()

	_, err := o.ToSlice()
	require.ErrorIs(t, err, ErrIncomparable)

	// A single element is never compared.
	single := collect(t, OrderBy(From(opaque{[]int{1}}), identity[opaque]).Sequence())
	require.Len(t, single, 1)

	mixed := OrderBy(From[any](1, "a"), identity[any]).Sequence()
	_, err = mixed.ToSlice()
	require.ErrorIs(t, err, ErrIncomparable)

	nils := collect(t, OrderBy(From[any](2, nil, 1), identity[any]).Sequence())
	require.Equal(t, []any{nil, 1, 2}, nils)
}

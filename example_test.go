package lazy_test

import (
	"fmt"
	"strings"

	"github.com/dacapoday/lazy"
)

type Order struct {
	Customer string
	Day      int
	Amount   int
}

var orders = []Order{
	{"ann", 2, 30},
	{"bob", 1, 10},
	{"ann", 1, 20},
	{"cid", 2, 5},
	{"bob", 2, 40},
}

func Example() {
	big := lazy.FromSlice(orders).Where(func(o Order) bool { return o.Amount >= 10 })
	names := lazy.Select(big, func(o Order) string { return strings.ToUpper(o.Customer) })

	// Nothing has run yet; every enumeration starts from the source.
	fmt.Println(names.Distinct().ToSlice())
	fmt.Println(names.Count())

	// Output:
	// [ANN BOB] <nil>
	// 4 <nil>
}

func ExampleGroupBy() {
	groups := lazy.GroupBy(lazy.FromSlice(orders), func(o Order) string { return o.Customer })
	for g := range groups.All() {
		total, _ := lazy.AggregateSeed(g.Values(), 0, func(acc int, o Order) int { return acc + o.Amount })
		fmt.Println(g.Key(), g.Len(), total)
	}

	// Output:
	// ann 2 50
	// bob 2 50
	// cid 1 5
}

func ExampleThenBy() {
	byDay := lazy.OrderBy(lazy.FromSlice(orders), func(o Order) int { return o.Day })
	sorted := lazy.ThenByDescending(byDay, func(o Order) int { return o.Amount })
	for o := range sorted.All() {
		fmt.Println(o.Day, o.Customer, o.Amount)
	}

	// Output:
	// 1 ann 20
	// 1 bob 10
	// 2 bob 40
	// 2 ann 30
	// 2 cid 5
}

func ExampleJoin() {
	type Customer struct {
		Name string
		City string
	}
	customers := lazy.From(Customer{"ann", "Oslo"}, Customer{"bob", "Rome"}, Customer{"dan", "Kyiv"})

	cities := lazy.Join(lazy.FromSlice(orders), customers,
		func(o Order) string { return o.Customer },
		func(c Customer) string { return c.Name },
		func(o Order, c Customer) string { return fmt.Sprintf("%s@%s", o.Customer, c.City) })
	fmt.Println(cities.ToSlice())

	counts := lazy.GroupJoin(customers, lazy.FromSlice(orders),
		func(c Customer) string { return c.Name },
		func(o Order) string { return o.Customer },
		func(c Customer, os lazy.Sequence[Order]) string {
			n, _ := os.Count()
			return fmt.Sprintf("%s:%d", c.Name, n)
		})
	fmt.Println(counts.ToSlice())

	// Output:
	// [ann@Oslo bob@Rome ann@Oslo bob@Rome] <nil>
	// [ann:2 bob:2 dan:0] <nil>
}

func ExampleSequence_First() {
	_, err := lazy.Empty[int]().First()
	fmt.Println(err)

	v, err := lazy.Empty[int]().FirstOrDefault(7)
	fmt.Println(v, err)

	// Output:
	// invalid state: sequence contains no elements
	// 7 <nil>
}

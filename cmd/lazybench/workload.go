package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dacapoday/lazy"
)

// namespace seeds the name-based customer ids so runs are reproducible.
var namespace = uuid.MustParse("6f1c1a52-3c55-4d0e-9a57-1f0b8c4f4e2a")

type Customer struct {
	ID     uuid.UUID
	Name   string
	Region int
}

type Order struct {
	ID       int
	Customer uuid.UUID
	Day      int
	Amount   int
}

// Workload is one generated data set.
type Workload struct {
	Customers []Customer
	Orders    []Order
}

// Generate builds a deterministic workload from cfg. One customer in ten
// places no orders, and some orders reference unknown customers.
func Generate(cfg *Config) *Workload {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	customers := make([]Customer, cfg.Customers)
	for i := range customers {
		customers[i] = Customer{
			ID:     uuid.NewSHA1(namespace, fmt.Appendf(nil, "customer-%d", i)),
			Name:   fmt.Sprintf("customer-%05d", i),
			Region: i % 7,
		}
	}

	active := max(1, cfg.Customers-cfg.Customers/10)
	orders := make([]Order, cfg.Records)
	for i := range orders {
		id := customers[rng.IntN(active)].ID
		if rng.IntN(100) == 0 {
			id = uuid.NewSHA1(namespace, fmt.Appendf(nil, "stray-%d", i))
		}
		orders[i] = Order{
			ID:       i,
			Customer: id,
			Day:      rng.IntN(365),
			Amount:   rng.IntN(10_000),
		}
	}
	return &Workload{Customers: customers, Orders: orders}
}

// Result is the outcome of one measured query.
type Result struct {
	Query    string
	Rows     int
	Elapsed  time.Duration
	Restarts bool
}

type query struct {
	name string
	run  func(w *Workload) (rows int, restarts bool, err error)
}

var queries = []query{
	{"group_by", groupByCustomer},
	{"join", joinCustomers},
	{"group_join", groupJoinCustomers},
	{"order_by", orderByDayAmountID},
}

// Run executes every query once and logs its timing.
func Run(w *Workload, round int, log zerolog.Logger) ([]Result, error) {
	results := make([]Result, 0, len(queries))
	for _, q := range queries {
		start := time.Now()
		rows, restarts, err := q.run(w)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", q.name, err)
		}
		r := Result{Query: q.name, Rows: rows, Elapsed: time.Since(start), Restarts: restarts}
		log.Info().
			Int("round", round).
			Str("query", r.Query).
			Int("rows", r.Rows).
			Dur("elapsed", r.Elapsed).
			Bool("restartable", r.Restarts).
			Msg("query finished")
		results = append(results, r)
	}
	return results, nil
}

// replays enumerates s twice through independent cursors and reports
// whether both passes agree.
func replays[T any](s lazy.Sequence[T], eq func(a, b T) bool) (bool, error) {
	first, err := s.ToSlice()
	if err != nil {
		return false, err
	}
	i := 0
	same := true
	err = s.ForEach(func(v T) {
		if i >= len(first) || !eq(first[i], v) {
			same = false
		}
		i++
	})
	return same && i == len(first), err
}

type spend struct {
	customer uuid.UUID
	orders   int
	total    int
}

// spending totals each customer's orders, failing on the first enumeration
// error of either the groups or their values.
func spending(groups lazy.Sequence[lazy.Grouping[uuid.UUID, Order]]) ([]spend, error) {
	c := groups.Open()
	defer c.Close()
	var spends []spend
	for c.Next() {
		g := c.Value()
		total, err := lazy.AggregateSeed(g.Values(), 0, func(acc int, o Order) int { return acc + o.Amount })
		if err != nil {
			return nil, err
		}
		spends = append(spends, spend{customer: g.Key(), orders: g.Len(), total: total})
	}
	return spends, c.Error()
}

func groupByCustomer(w *Workload) (int, bool, error) {
	groups := lazy.GroupBy(lazy.FromSlice(w.Orders), func(o Order) uuid.UUID { return o.Customer })
	first, err := spending(groups)
	if err != nil {
		return 0, false, err
	}
	second, err := spending(groups)
	if err != nil {
		return 0, false, err
	}
	return len(first), slices.Equal(first, second), nil
}

func joinCustomers(w *Workload) (int, bool, error) {
	pairs := lazy.Join(lazy.FromSlice(w.Orders), lazy.FromSlice(w.Customers),
		func(o Order) uuid.UUID { return o.Customer },
		func(c Customer) uuid.UUID { return c.ID },
		func(o Order, c Customer) [2]int { return [2]int{o.ID, c.Region} })
	n, err := pairs.Count()
	if err != nil {
		return 0, false, err
	}
	same, err := pairs.SequenceEqual(pairs)
	return n, same, err
}

type activity struct {
	customer Customer
	ordered  bool
	err      error
}

func groupJoinCustomers(w *Workload) (int, bool, error) {
	customers := lazy.GroupJoin(lazy.FromSlice(w.Customers), lazy.FromSlice(w.Orders),
		func(c Customer) uuid.UUID { return c.ID },
		func(o Order) uuid.UUID { return o.Customer },
		func(c Customer, orders lazy.Sequence[Order]) activity {
			ok, err := orders.Any()
			return activity{customer: c, ordered: ok, err: err}
		})
	idle := 0
	var failed error
	err := customers.ForEach(func(a activity) {
		if a.err != nil && failed == nil {
			failed = a.err
		}
		if !a.ordered {
			idle++
		}
	})
	if err = errors.Join(err, failed); err != nil {
		return 0, false, err
	}
	same, err := replays(customers, func(a, b activity) bool {
		return a.customer == b.customer && a.ordered == b.ordered && a.err == b.err
	})
	return idle, same, err
}

func orderByDayAmountID(w *Workload) (int, bool, error) {
	byDay := lazy.OrderBy(lazy.FromSlice(w.Orders), func(o Order) int { return o.Day })
	sorted := lazy.ThenBy(lazy.ThenByDescending(byDay, func(o Order) int { return o.Amount }),
		func(o Order) int { return o.ID }).Sequence()
	n, err := sorted.Count()
	if err != nil {
		return 0, false, err
	}
	same, err := replays(sorted, func(a, b Order) bool { return a == b })
	return n, same, err
}

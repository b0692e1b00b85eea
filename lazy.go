// Package lazy provides deferred query operators over restartable sequences.
//
// A [Sequence] is an immutable description of how to produce elements. Nothing
// runs until a cursor obtained from [Sequence.Open] is advanced, and every
// Open yields an independent cursor, so one sequence may feed any number of
// pipelines and be enumerated repeatedly with identical results.
//
// Operators that keep the element type are methods (Where, Skip, Take, ...);
// operators that change it are functions (Select, GroupBy, Join, OrderBy, ...),
// since Go methods cannot introduce type parameters.
//
//	orders := lazy.FromSlice(rows)
//	byCustomer := lazy.GroupBy(orders.Where(paid), func(o Order) string { return o.Customer })
//	sorted := lazy.ThenBy(lazy.OrderBy(orders, orderDay), orderAmount)
//	top, err := sorted.Sequence().Take(10).ToSlice()
//
// Passing a nil selector, predicate or source panics immediately with an
// [*ArgumentError]; failures discovered while enumerating are returned as
// errors by terminal operators.
package lazy

import (
	"github.com/rs/zerolog"

	"github.com/dacapoday/lazy/internal/trace"
)

// SetLogger installs the logger used for debug events (table growth, sort
// materialization, recovered comparison failures). The default discards.
func SetLogger(logger zerolog.Logger) {
	trace.Set(logger)
}

// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

//go:build debug

package lookup

import "fmt"

// assertGroup panics if g is not a group index of a table holding count groups.
// Only enabled with -tags debug.
func assertGroup(method string, g, count int) {
	if g < 0 || g >= count {
		panic(fmt.Sprintf("%s: group %d out of [0,%d)", method, g, count))
	}
}

// assertCircular panics if the creation-order list does not close after count steps.
// Only enabled with -tags debug.
func assertCircular(method string, steps, count int) {
	if steps != count {
		panic(fmt.Sprintf("%s: creation order visited %d of %d groups", method, steps, count))
	}
}

// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package cursor

import "fmt"

func ExampleNewPeek() {
	p := NewPeek(Slice([]string{"apple", "banana"}))

	for p.HasNext() {
		next, _ := p.Peek()
		fmt.Printf("upcoming: %s\n", next)
		p.Next()
		fmt.Printf("consumed: %s\n", p.Value())
	}

	// Output:
	// upcoming: apple
	// consumed: apple
	// upcoming: banana
	// consumed: banana
}

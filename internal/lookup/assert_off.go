// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

//go:build !debug

package lookup

// assertGroup is a no-op in production.
// Enable with -tags debug for runtime checks.
func assertGroup(string, int, int) {}

// assertCircular is a no-op in production.
// Enable with -tags debug for runtime checks.
func assertCircular(string, int, int) {}

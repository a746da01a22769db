// SPDX-License-Identifier: MIT

// Package check holds the fatal-precondition helpers shared by every
// container package.
//
// Precondition violations (bad index, negative size, a column past the
// pattern width, an unsorted batch) are programmer errors. They are reported
// by panicking with a diagnostic prefixed "lvarray:"; there is no recoverable
// error path for them. Per-element bounds checks are guarded by BoundsCheck,
// which is false when the module is built with -tags lvarray_nocheck, so hot
// indexing paths compile down to the plain slice access.
package check

import "fmt"

const prefix = "lvarray: "

// Fatalf panics with a formatted diagnostic. It is always active.
func Fatalf(format string, args ...any) {
	panic(prefix + fmt.Sprintf(format, args...))
}

// If panics with a formatted diagnostic when cond is true.
func If(cond bool, format string, args ...any) {
	if cond {
		Fatalf(format, args...)
	}
}

// Index panics when i is outside [0, n). Guarded by BoundsCheck.
func Index(i, n int, what string) {
	if BoundsCheck && (i < 0 || i >= n) {
		Fatalf("%s index %d out of range [0, %d)", what, i, n)
	}
}

// InsertIndex panics when i is outside [0, n]. Guarded by BoundsCheck.
func InsertIndex(i, n int, what string) {
	if BoundsCheck && (i < 0 || i > n) {
		Fatalf("%s insert position %d out of range [0, %d]", what, i, n)
	}
}

// Indices panics when the multi-index does not address an element of dims.
// Guarded by BoundsCheck.
func Indices(dims []int, indices []int) {
	if !BoundsCheck {
		return
	}
	if len(indices) != len(dims) {
		Fatalf("got %d indices for rank %d", len(indices), len(dims))
	}
	for d, idx := range indices {
		if idx < 0 || idx >= dims[d] {
			Fatalf("invalid indices: dimensions = %s indices = %s", braces(dims), braces(indices))
		}
	}
}

// NonNegative panics when v < 0. It is always active.
func NonNegative(v int, what string) {
	if v < 0 {
		Fatalf("%s must be non-negative, got %d", what, v)
	}
}

func braces(vals []int) string {
	if len(vals) == 0 {
		return "{}"
	}
	s := "{ "
	for i, v := range vals {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprint(v)
	}
	return s + " }"
}

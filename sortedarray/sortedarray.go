// SPDX-License-Identifier: MIT

// Package sortedarray provides sorted-set algorithms over contiguous storage
// and SortedArray, an owning set of strictly increasing values.
//
// The algorithms work on (values, size) pairs and report every element
// motion through Callbacks so containers with companion data can mirror it.
// Batches passed to InsertSorted and RemoveSorted must be sorted and unique;
// that precondition is checked unless the module is built with
// -tags lvarray_nocheck.
package sortedarray

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/internal/check"
)

// SortedArray is a set stored as a strictly increasing contiguous run.
type SortedArray[T cmp.Ordered] struct {
	buf  buffer.Buffer[T]
	size int
}

// growth reallocates the owning buffer geometrically.
type growth[T cmp.Ordered] struct {
	NoOp
	a *SortedArray[T]
}

func (g growth[T]) IncrementSize(_ []T, nToAdd int) []T {
	buffer.DynamicReserve(g.a.buf, g.a.size, g.a.size+nToAdd)
	return g.a.buf.Data()
}

// New returns an empty set.
func New[T cmp.Ordered](opts ...buffer.Option) *SortedArray[T] {
	return &SortedArray[T]{buf: buffer.Make[T](opts...)}
}

// FromValues returns a set holding the distinct values of vals.
func FromValues[T cmp.Ordered](vals []T, opts ...buffer.Option) *SortedArray[T] {
	a := New[T](opts...)
	a.InsertValues(vals...)
	return a
}

// Len returns the number of values.
func (a *SortedArray[T]) Len() int { return a.size }

// Empty reports whether the set has no values.
func (a *SortedArray[T]) Empty() bool { return a.size == 0 }

// Capacity returns the number of allocated slots.
func (a *SortedArray[T]) Capacity() int { return a.buf.Capacity() }

// At returns the i-th smallest value.
func (a *SortedArray[T]) At(i int) T {
	check.Index(i, a.size, "sorted array")
	return a.buf.Data()[i]
}

// Values returns the values in increasing order. The result aliases the
// buffer and must not be modified.
func (a *SortedArray[T]) Values() []T { return a.buf.Data()[:a.size:a.size] }

// Contains reports whether v is in the set.
func (a *SortedArray[T]) Contains(v T) bool { return Contains(a.Values(), v) }

// Count returns 1 when v is in the set and 0 otherwise.
func (a *SortedArray[T]) Count(v T) int {
	if a.Contains(v) {
		return 1
	}
	return 0
}

// Insert adds v and reports whether it was new.
func (a *SortedArray[T]) Insert(v T) bool {
	if Insert(a.buf.Data(), a.size, v, growth[T]{a: a}) {
		a.size++
		return true
	}
	return false
}

// InsertSorted adds a sorted-unique batch and returns how many were new.
func (a *SortedArray[T]) InsertSorted(vals ...T) int {
	n := InsertSorted(a.buf.Data(), a.size, vals, growth[T]{a: a})
	a.size += n
	return n
}

// InsertValues adds arbitrary values and returns how many were new.
func (a *SortedArray[T]) InsertValues(vals ...T) int {
	batch := append([]T(nil), vals...)
	batch = batch[:MakeSortedUnique(batch)]
	return a.InsertSorted(batch...)
}

// Remove deletes v and reports whether it was present.
func (a *SortedArray[T]) Remove(v T) bool {
	if Remove(a.buf.Data(), a.size, v, InPlace[T]{Size: a.size}) {
		a.size--
		return true
	}
	return false
}

// RemoveSorted deletes a sorted-unique batch and returns how many were
// present.
func (a *SortedArray[T]) RemoveSorted(vals ...T) int {
	n := RemoveSorted(a.buf.Data(), a.size, vals, InPlace[T]{Size: a.size})
	a.size -= n
	return n
}

// RemoveValues deletes arbitrary values and returns how many were present.
func (a *SortedArray[T]) RemoveValues(vals ...T) int {
	batch := append([]T(nil), vals...)
	batch = batch[:MakeSortedUnique(batch)]
	return a.RemoveSorted(batch...)
}

// Clear removes every value, keeping the capacity.
func (a *SortedArray[T]) Clear() {
	buffer.Destroy(a.Values())
	a.size = 0
}

// Reserve makes room for n values.
func (a *SortedArray[T]) Reserve(n int) {
	check.NonNegative(n, "capacity")
	buffer.Reserve(a.buf, a.size, n)
}

// Free releases the storage.
func (a *SortedArray[T]) Free() {
	a.buf.Free()
	a.size = 0
}

// Copy returns a deep copy.
func (a *SortedArray[T]) Copy() *SortedArray[T] {
	return &SortedArray[T]{buf: buffer.Clone(a.buf, a.size, a.size), size: a.size}
}

// CopyFrom replaces the contents of a with those of src.
func (a *SortedArray[T]) CopyFrom(src *SortedArray[T]) {
	if a != src {
		a.size = buffer.CopyInto(a.buf, a.size, src.Values())
	}
}

// Name returns the buffer name.
func (a *SortedArray[T]) Name() string { return a.buf.Name() }

// SetName names the buffer for move logs.
func (a *SortedArray[T]) SetName(name string) { a.buf.SetName(name) }

// Move makes the values resident in space. Sorted values are never written
// through a view, so touch only affects stale tracking.
func (a *SortedArray[T]) Move(space buffer.MemorySpace, touch bool) { a.buf.Move(space, touch) }

// ToView returns a read-only view. Sorted arrays have no mutable view: a
// write could break the ordering.
func (a *SortedArray[T]) ToView() View[T] { return View[T]{a} }

// String formats the set as "{ a, b }", or "{}" when empty.
func (a *SortedArray[T]) String() string { return formatSet(a.Values()) }

func formatSet[T any](vals []T) string {
	if len(vals) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{ ")
	for i, v := range vals {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteString(" }")
	return sb.String()
}

// View is the read-only view of a SortedArray.
type View[T cmp.Ordered] struct{ a *SortedArray[T] }

func (v View[T]) Len() int          { return v.a.size }
func (v View[T]) Empty() bool       { return v.a.size == 0 }
func (v View[T]) At(i int) T        { return v.a.At(i) }
func (v View[T]) Contains(x T) bool { return v.a.Contains(x) }
func (v View[T]) Count(x T) int     { return v.a.Count(x) }
func (v View[T]) Values() []T       { return v.a.Values() }
func (v View[T]) String() string    { return v.a.String() }

// Move makes the values resident in space without marking other copies
// stale.
func (v View[T]) Move(space buffer.MemorySpace) { v.a.buf.Move(space, false) }

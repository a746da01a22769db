// SPDX-License-Identifier: MIT

package arrayofarrays

import (
	"cmp"

	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/internal/check"
	"github.com/katalvlaran/lvarray/internal/rows"
	"github.com/katalvlaran/lvarray/parallel"
	"github.com/katalvlaran/lvarray/sortedarray"
)

// ArrayOfSets is a ragged array whose rows are strictly increasing sets.
type ArrayOfSets[T cmp.Ordered] struct {
	s rows.Store[T]
}

// NewSets returns numSets empty sets, each with defaultCapacity slots.
func NewSets[T cmp.Ordered](numSets, defaultCapacity int, opts ...buffer.Option) *ArrayOfSets[T] {
	a := &ArrayOfSets[T]{}
	a.s.Init(opts...)
	a.s.Resize(numSets, defaultCapacity)
	return a
}

// SetsFromArrays takes the storage of src, sorts every row and drops
// duplicates. src is left empty.
func SetsFromArrays[T cmp.Ordered](src *ArrayOfArrays[T]) *ArrayOfSets[T] {
	a := &ArrayOfSets[T]{s: src.s}
	src.s = rows.Store[T]{}
	src.s.Init(buffer.WithName(a.s.Name()), buffer.WithKind(kindOf(a.s.Values)))
	parallel.ForAll(parallel.Host, a.s.NumArrays, func(i int) {
		row := a.s.Row(i)
		n := sortedarray.MakeSortedUnique(row)
		clear(row[n:])
		a.s.SetSize(i, n)
	})
	return a
}

// Assimilate frees dst and moves the storage of src into it, leaving src
// empty. Every set becomes a plain row in the same order.
func Assimilate[T cmp.Ordered](dst *ArrayOfArrays[T], src *ArrayOfSets[T]) {
	dst.s.Free()
	dst.s = src.s
	src.s = rows.Store[T]{}
	src.s.Init(buffer.WithName(dst.Name()), buffer.WithKind(kindOf(dst.s.Values)))
}

func (a *ArrayOfSets[T]) callbacks(i int) rows.RowCallbacks[T] {
	return rows.RowCallbacks[T]{S: &a.s, Row: i}
}

// Size returns the number of sets.
func (a *ArrayOfSets[T]) Size() int { return a.s.NumArrays }

// SizeOfSet returns the number of values in set i.
func (a *ArrayOfSets[T]) SizeOfSet(i int) int { return a.s.SizeOf(i) }

// CapacityOfSet returns the number of slots of set i.
func (a *ArrayOfSets[T]) CapacityOfSet(i int) int { return a.s.CapacityOf(i) }

// ValueCapacity returns the number of allocated value slots.
func (a *ArrayOfSets[T]) ValueCapacity() int { return a.s.ValueCapacity() }

// Set returns the values of set i in increasing order. Do not modify them.
func (a *ArrayOfSets[T]) Set(i int) []T { return a.s.Row(i) }

// At returns the j-th smallest value of set i.
func (a *ArrayOfSets[T]) At(i, j int) T {
	row := a.s.Row(i)
	check.Index(j, len(row), "set value")
	return row[j]
}

// Contains reports whether set i holds v.
func (a *ArrayOfSets[T]) Contains(i int, v T) bool { return sortedarray.Contains(a.s.Row(i), v) }

// InsertIntoSet adds v to set i and reports whether it was new.
func (a *ArrayOfSets[T]) InsertIntoSet(i int, v T) bool {
	if sortedarray.Insert(a.s.RowFull(i), a.s.SizeOf(i), v, a.callbacks(i)) {
		a.s.SetSize(i, a.s.SizeOf(i)+1)
		return true
	}
	return false
}

// InsertSortedIntoSet adds a sorted-unique batch to set i and returns how
// many were new.
func (a *ArrayOfSets[T]) InsertSortedIntoSet(i int, vals ...T) int {
	n := sortedarray.InsertSorted(a.s.RowFull(i), a.s.SizeOf(i), vals, a.callbacks(i))
	a.s.SetSize(i, a.s.SizeOf(i)+n)
	return n
}

// InsertIntoSetValues adds arbitrary values to set i.
func (a *ArrayOfSets[T]) InsertIntoSetValues(i int, vals ...T) int {
	batch := append([]T(nil), vals...)
	return a.InsertSortedIntoSet(i, batch[:sortedarray.MakeSortedUnique(batch)]...)
}

// RemoveFromSet deletes v from set i and reports whether it was present.
func (a *ArrayOfSets[T]) RemoveFromSet(i int, v T) bool {
	if sortedarray.Remove(a.s.RowFull(i), a.s.SizeOf(i), v, a.callbacks(i)) {
		a.s.SetSize(i, a.s.SizeOf(i)-1)
		return true
	}
	return false
}

// RemoveSortedFromSet deletes a sorted-unique batch from set i and returns
// how many were present.
func (a *ArrayOfSets[T]) RemoveSortedFromSet(i int, vals ...T) int {
	n := sortedarray.RemoveSorted(a.s.RowFull(i), a.s.SizeOf(i), vals, a.callbacks(i))
	a.s.SetSize(i, a.s.SizeOf(i)-n)
	return n
}

// AppendSet adds an empty set with capacity c.
func (a *ArrayOfSets[T]) AppendSet(c int) {
	a.s.AppendEmpty()
	a.s.SetCapacityOfArray(a.s.NumArrays-1, c)
}

// InsertSet inserts an empty set with capacity c before set i.
func (a *ArrayOfSets[T]) InsertSet(i, c int) {
	a.s.InsertEmpty(i)
	a.s.SetCapacityOfArray(i, c)
}

// EraseSet removes set i.
func (a *ArrayOfSets[T]) EraseSet(i int) { a.s.EraseArray(i) }

// ClearSet removes every value of set i.
func (a *ArrayOfSets[T]) ClearSet(i int) { a.s.ClearRow(i) }

// SetCapacityOfSet gives set i exactly c slots; shrinking drops the largest
// values.
func (a *ArrayOfSets[T]) SetCapacityOfSet(i, c int) { a.s.SetCapacityOfArray(i, c) }

// Resize sets the number of sets.
func (a *ArrayOfSets[T]) Resize(numSets, defaultCapacity int) {
	a.s.Resize(numSets, defaultCapacity)
}

// ReserveValues makes room for n values across all sets.
func (a *ArrayOfSets[T]) ReserveValues(n int) { a.s.ReserveValues(n) }

// Compress removes all slack.
func (a *ArrayOfSets[T]) Compress() { a.s.Compress() }

// Validate reports a broken storage invariant or an unsorted set.
func (a *ArrayOfSets[T]) Validate() error {
	if err := a.s.Validate(); err != nil {
		return err
	}
	for i := 0; i < a.s.NumArrays; i++ {
		if !sortedarray.IsSortedUnique(a.s.Row(i)) {
			return ErrUnsortedSet
		}
	}
	return nil
}

// Copy returns a deep copy.
func (a *ArrayOfSets[T]) Copy() *ArrayOfSets[T] { return &ArrayOfSets[T]{s: *a.s.Clone()} }

// Free releases the storage.
func (a *ArrayOfSets[T]) Free() { a.s.Free() }

// Name returns the name given to SetName.
func (a *ArrayOfSets[T]) Name() string { return a.s.Name() }

// SetName names the buffers for move logs.
func (a *ArrayOfSets[T]) SetName(name string) { a.s.SetName(name) }

// Move makes the storage resident in space.
func (a *ArrayOfSets[T]) Move(space buffer.MemorySpace, touch bool) { a.s.Move(space, touch) }

// String lists every set like ArrayOfArrays.String.
func (a *ArrayOfSets[T]) String() string { return formatRows(&a.s) }

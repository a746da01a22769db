// SPDX-License-Identifier: MIT

// Package arrayofarrays provides ragged two-dimensional containers: a
// sequence of variable-length rows stored back to back in one buffer.
//
// Each row has a size and a capacity. Appending past a row's capacity gives
// it capacity 2*newSize and shifts every later row, so the cost of a growth
// is proportional to the values stored to its right; reserve capacity up
// front (Resize, ResizeFromCapacities, SetCapacityOfArray) when rows are
// filled in order. Compress removes all slack.
//
// Views narrow what a borrower may do:
//
//	View            modify values and row sizes within capacity
//	ViewConstSizes  modify values only
//	ViewConst       read only
//
// View.EmplaceBackAtomic is the one operation meant to be called
// concurrently, from parallel.ForAll bodies.
package arrayofarrays

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/internal/check"
	"github.com/katalvlaran/lvarray/internal/rows"
	"github.com/katalvlaran/lvarray/parallel"
)

// ArrayOfArrays is an owning ragged array.
type ArrayOfArrays[T any] struct {
	s rows.Store[T]
}

// New returns numArrays empty rows, each with defaultCapacity slots.
func New[T any](numArrays, defaultCapacity int, opts ...buffer.Option) *ArrayOfArrays[T] {
	a := &ArrayOfArrays[T]{}
	a.s.Init(opts...)
	a.s.Resize(numArrays, defaultCapacity)
	return a
}

// FromRows returns an array holding a copy of every row, compressed.
func FromRows[T any](rowValues [][]T, opts ...buffer.Option) *ArrayOfArrays[T] {
	caps := make([]int, len(rowValues))
	for i, r := range rowValues {
		caps[i] = len(r)
	}
	a := New[T](0, 0, opts...)
	a.ResizeFromCapacities(caps)
	for i, r := range rowValues {
		a.AppendToArray(i, r...)
	}
	return a
}

// Size returns the number of rows.
func (a *ArrayOfArrays[T]) Size() int { return a.s.NumArrays }

// SizeOfArray returns the number of values in row i.
func (a *ArrayOfArrays[T]) SizeOfArray(i int) int { return a.s.SizeOf(i) }

// CapacityOfArray returns the number of slots of row i.
func (a *ArrayOfArrays[T]) CapacityOfArray(i int) int { return a.s.CapacityOf(i) }

// ValueCapacity returns the number of allocated value slots.
func (a *ArrayOfArrays[T]) ValueCapacity() int { return a.s.ValueCapacity() }

// Capacity returns the number of rows that fit without reallocating.
func (a *ArrayOfArrays[T]) Capacity() int { return a.s.ArrayCapacity() }

// TotalSize returns the number of values across all rows.
func (a *ArrayOfArrays[T]) TotalSize() int { return a.s.TotalSize() }

// Array returns the values of row i. The result aliases the storage until
// the next reallocation.
func (a *ArrayOfArrays[T]) Array(i int) []T { return a.s.Row(i) }

// At returns value j of row i.
func (a *ArrayOfArrays[T]) At(i, j int) T { return a.s.Row(i)[a.checkValue(i, j)] }

// Set stores v as value j of row i.
func (a *ArrayOfArrays[T]) Set(i, j int, v T) { a.s.Row(i)[a.checkValue(i, j)] = v }

// Ref returns a pointer to value j of row i.
func (a *ArrayOfArrays[T]) Ref(i, j int) *T { return &a.s.Row(i)[a.checkValue(i, j)] }

func (a *ArrayOfArrays[T]) checkValue(i, j int) int {
	check.Index(j, a.s.SizeOf(i), fmt.Sprintf("array %d value", i))
	return j
}

// Offsets returns a copy of the row offsets, one more than Size().
func (a *ArrayOfArrays[T]) Offsets() []int {
	return append([]int(nil), a.s.Offsets.Data()[:a.s.NumArrays+1]...)
}

// Sizes returns a copy of the row sizes.
func (a *ArrayOfArrays[T]) Sizes() []int {
	out := make([]int, a.s.NumArrays)
	for i := range out {
		out[i] = a.s.SizeOf(i)
	}
	return out
}

// Validate reports a broken offsets/sizes invariant, or nil.
func (a *ArrayOfArrays[T]) Validate() error { return a.s.Validate() }

// Reserve makes room for n rows.
func (a *ArrayOfArrays[T]) Reserve(n int) { a.s.Reserve(n) }

// ReserveValues makes room for n values across all rows.
func (a *ArrayOfArrays[T]) ReserveValues(n int) { a.s.ReserveValues(n) }

// Resize sets the number of rows; new rows get defaultCapacity slots.
func (a *ArrayOfArrays[T]) Resize(numArrays, defaultCapacity int) {
	a.s.Resize(numArrays, defaultCapacity)
}

// ResizeFromCapacities discards every row and creates len(capacities) empty
// rows with the given capacities.
func (a *ArrayOfArrays[T]) ResizeFromCapacities(capacities []int) {
	a.s.ResizeFromCapacities(parallel.Host, capacities)
}

// SetCapacityOfArray gives row i exactly c slots, destroying values past c.
func (a *ArrayOfArrays[T]) SetCapacityOfArray(i, c int) { a.s.SetCapacityOfArray(i, c) }

// Compress removes all slack so every capacity equals its size.
func (a *ArrayOfArrays[T]) Compress() { a.s.Compress() }

// AppendArray adds a row of n zero values with capacity n.
func (a *ArrayOfArrays[T]) AppendArray(n int) {
	a.s.AppendEmpty()
	a.ResizeArray(a.s.NumArrays-1, n)
}

// AppendArrayValues adds a row holding vals.
func (a *ArrayOfArrays[T]) AppendArrayValues(vals ...T) {
	a.s.AppendEmpty()
	a.AppendToArray(a.s.NumArrays-1, vals...)
}

// InsertArray inserts a row holding vals before row i.
func (a *ArrayOfArrays[T]) InsertArray(i int, vals ...T) {
	a.s.InsertEmpty(i)
	a.AppendToArray(i, vals...)
}

// EraseArray removes row i.
func (a *ArrayOfArrays[T]) EraseArray(i int) { a.s.EraseArray(i) }

// EmplaceBack appends v to row i, growing it when full.
func (a *ArrayOfArrays[T]) EmplaceBack(i int, v T) { a.insert(i, a.s.SizeOf(i), true, v) }

// AppendToArray appends vals to row i, growing it when needed.
func (a *ArrayOfArrays[T]) AppendToArray(i int, vals ...T) {
	a.insert(i, a.s.SizeOf(i), true, vals...)
}

// Emplace inserts v at position j of row i.
func (a *ArrayOfArrays[T]) Emplace(i, j int, v T) { a.insert(i, j, true, v) }

// InsertIntoArray inserts vals at position j of row i.
func (a *ArrayOfArrays[T]) InsertIntoArray(i, j int, vals ...T) { a.insert(i, j, true, vals...) }

// EraseFromArray removes n values of row i starting at j.
func (a *ArrayOfArrays[T]) EraseFromArray(i, j, n int) { eraseFrom(&a.s, i, j, n) }

// ResizeArray sets the size of row i, growing its capacity to exactly n when
// needed. New values are zero.
func (a *ArrayOfArrays[T]) ResizeArray(i, n int) {
	var zero T
	a.ResizeArrayWith(i, n, zero)
}

// ResizeArrayWith is ResizeArray with new values set to v.
func (a *ArrayOfArrays[T]) ResizeArrayWith(i, n int, v T) {
	check.NonNegative(n, "array size")
	if n > a.s.CapacityOf(i) {
		a.s.SetCapacityOfArray(i, n)
	}
	resizeRow(&a.s, i, n, v)
}

// ClearArray removes every value of row i, keeping its capacity.
func (a *ArrayOfArrays[T]) ClearArray(i int) { a.s.ClearRow(i) }

func (a *ArrayOfArrays[T]) insert(i, j int, grow bool, vals ...T) {
	insertInto(&a.s, i, j, grow, vals)
}

// insertInto places vals at position j of row i. When grow is false the row
// must already have room.
func insertInto[T any](s *rows.Store[T], i, j int, grow bool, vals []T) {
	size := s.SizeOf(i)
	check.InsertIndex(j, size, fmt.Sprintf("array %d", i))
	n := len(vals)
	if n == 0 {
		return
	}
	if grow {
		s.EnsureCapacity(i, size+n)
	} else {
		check.If(size+n > s.CapacityOf(i), "array %d needs capacity %d, has %d", i, size+n, s.CapacityOf(i))
	}
	row := s.RowFull(i)
	copy(row[j+n:size+n], row[j:size])
	copy(row[j:j+n], vals)
	s.SetSize(i, size+n)
}

func eraseFrom[T any](s *rows.Store[T], i, j, n int) {
	size := s.SizeOf(i)
	check.NonNegative(n, "erase count")
	check.If(j < 0 || j+n > size, "erase range [%d, %d) out of range for array %d of size %d", j, j+n, i, size)
	row := s.RowFull(i)
	copy(row[j:], row[j+n:size])
	clear(row[size-n : size])
	s.SetSize(i, size-n)
}

func resizeRow[T any](s *rows.Store[T], i, n int, v T) {
	size := s.SizeOf(i)
	check.If(n > s.CapacityOf(i), "array %d cannot hold %d values with capacity %d", i, n, s.CapacityOf(i))
	row := s.RowFull(i)
	if n > size {
		buffer.Construct(row[size:n], v)
	} else {
		clear(row[n:size])
	}
	s.SetSize(i, n)
}

// Copy returns a deep copy.
func (a *ArrayOfArrays[T]) Copy() *ArrayOfArrays[T] {
	return &ArrayOfArrays[T]{s: *a.s.Clone()}
}

// CopyFrom replaces the contents of a with a deep copy of src.
func (a *ArrayOfArrays[T]) CopyFrom(src *ArrayOfArrays[T]) { a.s.CopyFrom(&src.s) }

// MoveFrom frees a, adopts the storage of src and leaves src empty.
func (a *ArrayOfArrays[T]) MoveFrom(src *ArrayOfArrays[T]) {
	if a == src {
		return
	}
	a.s.Free()
	a.s = src.s
	src.s = rows.Store[T]{}
	src.s.Init(buffer.WithName(a.Name()), buffer.WithKind(kindOf(a.s.Values)))
	src.s.Growth = a.s.Growth
}

// Free releases the storage and leaves an empty array.
func (a *ArrayOfArrays[T]) Free() { a.s.Free() }

// Name returns the name given to SetName.
func (a *ArrayOfArrays[T]) Name() string { return a.s.Name() }

// SetName names the buffers for move logs.
func (a *ArrayOfArrays[T]) SetName(name string) { a.s.SetName(name) }

// Move makes the storage resident in space. Offsets are never touched off
// the host.
func (a *ArrayOfArrays[T]) Move(space buffer.MemorySpace, touch bool) { a.s.Move(space, touch) }

// String lists every row as "i\t{v, v, }" between braces.
func (a *ArrayOfArrays[T]) String() string { return formatRows(&a.s) }

func formatRows[T any](s *rows.Store[T]) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for i := 0; i < s.NumArrays; i++ {
		fmt.Fprintf(&sb, "%d\t{", i)
		for _, v := range s.Row(i) {
			fmt.Fprint(&sb, v, ", ")
		}
		sb.WriteString("}\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

func kindOf[T any](b buffer.Buffer[T]) buffer.Kind {
	if b.MultiSpace() {
		return buffer.KindSpaces
	}
	return buffer.KindHost
}

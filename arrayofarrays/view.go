// SPDX-License-Identifier: MIT

package arrayofarrays

import (
	"sync/atomic"

	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/internal/check"
)

// View borrows an ArrayOfArrays. It may change values and row sizes but
// never capacities or the number of rows, so it is safe to use from a
// parallel region as long as distinct goroutines touch distinct rows, or
// only use EmplaceBackAtomic.
type View[T any] struct{ a *ArrayOfArrays[T] }

// ViewConstSizes borrows an ArrayOfArrays with mutable values only.
type ViewConstSizes[T any] struct{ a *ArrayOfArrays[T] }

// ViewConst borrows an ArrayOfArrays read-only.
type ViewConst[T any] struct{ a *ArrayOfArrays[T] }

// ToView returns the most permissive view.
func (a *ArrayOfArrays[T]) ToView() View[T] { return View[T]{a} }

// ToViewConstSizes returns a view with fixed sizes.
func (a *ArrayOfArrays[T]) ToViewConstSizes() ViewConstSizes[T] { return ViewConstSizes[T]{a} }

// ToViewConst returns a read-only view.
func (a *ArrayOfArrays[T]) ToViewConst() ViewConst[T] { return ViewConst[T]{a} }

// ToViewConstSizes narrows v.
func (v View[T]) ToViewConstSizes() ViewConstSizes[T] { return ViewConstSizes[T](v) }

// ToViewConst narrows v.
func (v View[T]) ToViewConst() ViewConst[T] { return ViewConst[T](v) }

// ToViewConst narrows v.
func (v ViewConstSizes[T]) ToViewConst() ViewConst[T] { return ViewConst[T](v) }

func (v View[T]) Size() int                 { return v.a.Size() }
func (v View[T]) SizeOfArray(i int) int     { return v.a.SizeOfArray(i) }
func (v View[T]) CapacityOfArray(i int) int { return v.a.CapacityOfArray(i) }
func (v View[T]) Array(i int) []T           { return v.a.Array(i) }
func (v View[T]) At(i, j int) T             { return v.a.At(i, j) }
func (v View[T]) Set(i, j int, x T)         { v.a.Set(i, j, x) }
func (v View[T]) Ref(i, j int) *T           { return v.a.Ref(i, j) }
func (v View[T]) String() string            { return v.a.String() }

// Move makes the storage resident in space.
func (v View[T]) Move(space buffer.MemorySpace, touch bool) { v.a.Move(space, touch) }

// EmplaceBack appends x to row i. The row must have room.
func (v View[T]) EmplaceBack(i int, x T) { insertInto(&v.a.s, i, v.a.s.SizeOf(i), false, []T{x}) }

// AppendToArray appends xs to row i. The row must have room.
func (v View[T]) AppendToArray(i int, xs ...T) {
	insertInto(&v.a.s, i, v.a.s.SizeOf(i), false, xs)
}

// Emplace inserts x at position j of row i. The row must have room.
func (v View[T]) Emplace(i, j int, x T) { insertInto(&v.a.s, i, j, false, []T{x}) }

// InsertIntoArray inserts xs at position j of row i. The row must have room.
func (v View[T]) InsertIntoArray(i, j int, xs ...T) { insertInto(&v.a.s, i, j, false, xs) }

// EraseFromArray removes n values of row i starting at j.
func (v View[T]) EraseFromArray(i, j, n int) { eraseFrom(&v.a.s, i, j, n) }

// ResizeArray sets the size of row i within its capacity.
func (v View[T]) ResizeArray(i, n int) {
	var zero T
	resizeRow(&v.a.s, i, n, zero)
}

// ClearArray removes every value of row i.
func (v View[T]) ClearArray(i int) { v.a.s.ClearRow(i) }

// EmplaceBackAtomic appends x to row i with an atomic increment of the row
// size, so several goroutines may append to the same row. The row must
// already have capacity for every concurrent append; running out is fatal.
// Values appended concurrently land in an unspecified order.
func (v View[T]) EmplaceBackAtomic(i int, x T) {
	s := &v.a.s
	pos := int(atomic.AddInt64(s.SizePtr(i), 1)) - 1
	capacity := s.CapacityOf(i)
	if pos >= capacity {
		atomic.AddInt64(s.SizePtr(i), -1)
		check.Fatalf("atomic append to array %d past capacity %d", i, capacity)
	}
	s.Values.Data()[s.Offset(i)+pos] = x
}

func (v ViewConstSizes[T]) Size() int                 { return v.a.Size() }
func (v ViewConstSizes[T]) SizeOfArray(i int) int     { return v.a.SizeOfArray(i) }
func (v ViewConstSizes[T]) CapacityOfArray(i int) int { return v.a.CapacityOfArray(i) }
func (v ViewConstSizes[T]) Array(i int) []T           { return v.a.Array(i) }
func (v ViewConstSizes[T]) At(i, j int) T             { return v.a.At(i, j) }
func (v ViewConstSizes[T]) Set(i, j int, x T)         { v.a.Set(i, j, x) }
func (v ViewConstSizes[T]) Ref(i, j int) *T           { return v.a.Ref(i, j) }
func (v ViewConstSizes[T]) String() string            { return v.a.String() }

// Move makes the storage resident in space.
func (v ViewConstSizes[T]) Move(space buffer.MemorySpace, touch bool) { v.a.Move(space, touch) }

func (v ViewConst[T]) Size() int                 { return v.a.Size() }
func (v ViewConst[T]) SizeOfArray(i int) int     { return v.a.SizeOfArray(i) }
func (v ViewConst[T]) CapacityOfArray(i int) int { return v.a.CapacityOfArray(i) }
func (v ViewConst[T]) At(i, j int) T             { return v.a.At(i, j) }
func (v ViewConst[T]) String() string            { return v.a.String() }

// Array returns a copy of row i.
func (v ViewConst[T]) Array(i int) []T { return append([]T(nil), v.a.Array(i)...) }

// Move makes the storage resident in space without marking other copies
// stale.
func (v ViewConst[T]) Move(space buffer.MemorySpace) { v.a.Move(space, false) }

// SPDX-License-Identifier: MIT

package sparsity

import (
	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/internal/check"
	"github.com/katalvlaran/lvarray/internal/rows"
)

// CRSView borrows a matrix to insert and remove entries within the current
// row capacities and to modify entries.
type CRSView[T any, C Integer] struct{ m *CRSMatrix[T, C] }

// CRSViewConstSizes borrows a matrix with a fixed pattern and mutable
// entries.
type CRSViewConstSizes[T any, C Integer] struct{ m *CRSMatrix[T, C] }

// CRSViewConst borrows a matrix read-only.
type CRSViewConst[T any, C Integer] struct{ m *CRSMatrix[T, C] }

// ToView returns a capacity-bound mutable view.
func (m *CRSMatrix[T, C]) ToView() CRSView[T, C] { return CRSView[T, C]{m} }

// ToViewConstSizes returns a view that can only modify entries.
func (m *CRSMatrix[T, C]) ToViewConstSizes() CRSViewConstSizes[T, C] {
	return CRSViewConstSizes[T, C]{m}
}

// ToViewConst returns a read-only view.
func (m *CRSMatrix[T, C]) ToViewConst() CRSViewConst[T, C] { return CRSViewConst[T, C]{m} }

func (v CRSView[T, C]) ToViewConstSizes() CRSViewConstSizes[T, C] {
	return CRSViewConstSizes[T, C](v)
}
func (v CRSView[T, C]) ToViewConst() CRSViewConst[T, C] { return CRSViewConst[T, C](v) }
func (v CRSViewConstSizes[T, C]) ToViewConst() CRSViewConst[T, C] {
	return CRSViewConst[T, C](v)
}

func (v CRSView[T, C]) fixed(row int, vals []T) rows.RowCallbacks[C] {
	return v.m.inserter(row, true, vals)
}

// InsertNonZero stores v at (row, col); the row must have room for it.
func (v CRSView[T, C]) InsertNonZero(row int, col C, val T) bool {
	v.m.p.checkColumn(col)
	return insertOne(&v.m.p.s, v.fixed(row, []T{val}), col)
}

// InsertNonZeros stores a sorted-unique batch within the row capacity.
func (v CRSView[T, C]) InsertNonZeros(row int, cols []C, vals []T) int {
	check.If(len(cols) != len(vals), "%d columns with %d entries", len(cols), len(vals))
	v.m.p.checkColumns(cols)
	return insertMany(&v.m.p.s, v.fixed(row, vals), cols)
}

// RemoveNonZero drops (row, col) and its entry.
func (v CRSView[T, C]) RemoveNonZero(row int, col C) bool { return v.m.RemoveNonZero(row, col) }

// RemoveNonZeros drops a sorted-unique batch and its entries.
func (v CRSView[T, C]) RemoveNonZeros(row int, cols ...C) int {
	return v.m.RemoveNonZeros(row, cols...)
}

func (v CRSView[T, C]) NumRows() int                     { return v.m.NumRows() }
func (v CRSView[T, C]) NumColumns() int                  { return v.m.NumColumns() }
func (v CRSView[T, C]) NumNonZerosInRow(row int) int     { return v.m.NumNonZerosInRow(row) }
func (v CRSView[T, C]) NonZeroCapacityOfRow(row int) int { return v.m.NonZeroCapacityOfRow(row) }
func (v CRSView[T, C]) Columns(row int) []C              { return v.m.Columns(row) }
func (v CRSView[T, C]) Entries(row int) []T              { return v.m.Entries(row) }
func (v CRSView[T, C]) At(row int, col C) (T, bool)      { return v.m.At(row, col) }
func (v CRSView[T, C]) Set(row int, col C, val T) bool   { return v.m.Set(row, col, val) }
func (v CRSView[T, C]) SetValues(val T)                  { v.m.SetValues(val) }
func (v CRSView[T, C]) Move(s buffer.MemorySpace, touch bool) {
	v.m.Move(s, touch)
}

// AddToRow combines vals into stored entries; see CRSMatrix.AddToRow.
func (v CRSView[T, C]) AddToRow(row int, cols []C, vals []T, add func(old, val T) T) {
	v.m.AddToRow(row, cols, vals, add)
}

func (v CRSViewConstSizes[T, C]) NumRows() int                 { return v.m.NumRows() }
func (v CRSViewConstSizes[T, C]) NumColumns() int              { return v.m.NumColumns() }
func (v CRSViewConstSizes[T, C]) NumNonZerosInRow(row int) int { return v.m.NumNonZerosInRow(row) }
func (v CRSViewConstSizes[T, C]) Columns(row int) []C          { return v.m.Columns(row) }
func (v CRSViewConstSizes[T, C]) Entries(row int) []T          { return v.m.Entries(row) }
func (v CRSViewConstSizes[T, C]) At(row int, col C) (T, bool)  { return v.m.At(row, col) }
func (v CRSViewConstSizes[T, C]) Set(row int, col C, val T) bool {
	return v.m.Set(row, col, val)
}
func (v CRSViewConstSizes[T, C]) SetValues(val T) { v.m.SetValues(val) }
func (v CRSViewConstSizes[T, C]) AddToRow(row int, cols []C, vals []T, add func(old, val T) T) {
	v.m.AddToRow(row, cols, vals, add)
}
func (v CRSViewConstSizes[T, C]) Move(s buffer.MemorySpace, touch bool) { v.m.Move(s, touch) }

func (v CRSViewConst[T, C]) NumRows() int                 { return v.m.NumRows() }
func (v CRSViewConst[T, C]) NumColumns() int              { return v.m.NumColumns() }
func (v CRSViewConst[T, C]) NumNonZeros() int             { return v.m.NumNonZeros() }
func (v CRSViewConst[T, C]) NumNonZerosInRow(row int) int { return v.m.NumNonZerosInRow(row) }
func (v CRSViewConst[T, C]) At(row int, col C) (T, bool)  { return v.m.At(row, col) }
func (v CRSViewConst[T, C]) Pattern() ViewConst[C]        { return v.m.Pattern() }
func (v CRSViewConst[T, C]) String() string               { return v.m.String() }

// Columns returns a copy of the columns of row.
func (v CRSViewConst[T, C]) Columns(row int) []C { return append([]C(nil), v.m.Columns(row)...) }

// Entries returns a copy of the entries of row.
func (v CRSViewConst[T, C]) Entries(row int) []T { return append([]T(nil), v.m.Entries(row)...) }

// EachNonZero calls fn for every stored entry in row-major order.
func (v CRSViewConst[T, C]) EachNonZero(fn func(row int, col C, val T)) { v.m.EachNonZero(fn) }

// Move makes the storage resident in space without marking copies stale.
func (v CRSViewConst[T, C]) Move(space buffer.MemorySpace) { v.m.Move(space, false) }

// SPDX-License-Identifier: MIT

// Package sparsity provides compressed-row sparsity patterns and matrices.
//
// A SparsityPattern is a ragged array whose rows are sorted sets of column
// indices below NumColumns. Rows grow to min(2*newSize, NumColumns) when an
// insert overflows them, shifting the later rows like arrayofarrays does.
// A CRSMatrix pairs every stored column with an entry, and every motion of a
// column is mirrored on its entry.
//
// Columns at or past NumColumns (or negative) are always fatal: that check is
// structural and stays on under -tags lvarray_nocheck.
package sparsity

import (
	"fmt"

	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/internal/check"
	"github.com/katalvlaran/lvarray/internal/rows"
	"github.com/katalvlaran/lvarray/sortedarray"
)

// Integer is the set of column index types.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// SparsityPattern records which (row, column) pairs are non-zero.
type SparsityPattern[C Integer] struct {
	s          rows.Store[C]
	numColumns int
}

// New returns a numRows x numColumns pattern with no non-zeros, each row
// holding initialRowCapacity slots. initialRowCapacity may not exceed
// numColumns.
func New[C Integer](numRows, numColumns, initialRowCapacity int, opts ...buffer.Option) *SparsityPattern[C] {
	p := &SparsityPattern[C]{}
	p.s.Init(opts...)
	p.init(numRows, numColumns, initialRowCapacity)
	return p
}

func (p *SparsityPattern[C]) init(numRows, numColumns, initialRowCapacity int) {
	check.NonNegative(numColumns, "number of columns")
	check.If(initialRowCapacity > numColumns,
		"initial row capacity %d exceeds the number of columns %d", initialRowCapacity, numColumns)
	p.numColumns = numColumns
	p.s.Growth = p.growth
	p.s.Resize(numRows, initialRowCapacity)
}

func (p *SparsityPattern[C]) growth(newSize int) int { return min(2*newSize, p.numColumns) }

// outOfRange reports whether col lies outside [0, numColumns). The upper
// bound is compared as uint64 so wide unsigned columns cannot wrap.
func outOfRange[C Integer](col C, numColumns int) bool {
	return col < 0 || uint64(col) >= uint64(numColumns)
}

func (p *SparsityPattern[C]) checkColumn(col C) {
	if outOfRange(col, p.numColumns) {
		check.Fatalf("column %d out of range [0, %d)", col, p.numColumns)
	}
}

func (p *SparsityPattern[C]) checkColumns(cols []C) {
	for _, c := range cols {
		p.checkColumn(c)
	}
}

// NumRows returns the number of rows.
func (p *SparsityPattern[C]) NumRows() int { return p.s.NumArrays }

// NumColumns returns the number of columns.
func (p *SparsityPattern[C]) NumColumns() int { return p.numColumns }

// NumNonZeros returns the number of stored columns across all rows.
func (p *SparsityPattern[C]) NumNonZeros() int { return p.s.TotalSize() }

// NumNonZerosInRow returns the number of stored columns in row.
func (p *SparsityPattern[C]) NumNonZerosInRow(row int) int { return p.s.SizeOf(row) }

// NonZeroCapacity returns the number of allocated column slots.
func (p *SparsityPattern[C]) NonZeroCapacity() int { return p.s.ValueCapacity() }

// NonZeroCapacityOfRow returns the number of column slots of row.
func (p *SparsityPattern[C]) NonZeroCapacityOfRow(row int) int { return p.s.CapacityOf(row) }

// Empty reports whether no non-zero is stored.
func (p *SparsityPattern[C]) Empty() bool { return p.NumNonZeros() == 0 }

// EmptyRow reports whether row stores nothing.
func (p *SparsityPattern[C]) EmptyRow(row int) bool { return p.s.SizeOf(row) == 0 }

// EmptyAt reports whether (row, col) is not stored.
func (p *SparsityPattern[C]) EmptyAt(row int, col C) bool {
	p.checkColumn(col)
	return !sortedarray.Contains(p.s.Row(row), col)
}

// Columns returns the sorted columns of row. Do not modify them.
func (p *SparsityPattern[C]) Columns(row int) []C { return p.s.Row(row) }

// InsertNonZero stores (row, col) and reports whether it was new.
func (p *SparsityPattern[C]) InsertNonZero(row int, col C) bool {
	p.checkColumn(col)
	return insertOne(&p.s, rows.RowCallbacks[C]{S: &p.s, Row: row}, col)
}

// InsertNonZeros stores a sorted-unique batch of columns in row and returns
// how many were new.
func (p *SparsityPattern[C]) InsertNonZeros(row int, cols ...C) int {
	p.checkColumns(cols)
	return insertMany(&p.s, rows.RowCallbacks[C]{S: &p.s, Row: row}, cols)
}

// RemoveNonZero drops (row, col) and reports whether it was stored.
func (p *SparsityPattern[C]) RemoveNonZero(row int, col C) bool {
	p.checkColumn(col)
	return removeOne(&p.s, rows.RowCallbacks[C]{S: &p.s, Row: row}, col)
}

// RemoveNonZeros drops a sorted-unique batch of columns from row and returns
// how many were stored.
func (p *SparsityPattern[C]) RemoveNonZeros(row int, cols ...C) int {
	p.checkColumns(cols)
	return removeMany(&p.s, rows.RowCallbacks[C]{S: &p.s, Row: row}, cols)
}

func insertOne[C Integer](s *rows.Store[C], cb rows.RowCallbacks[C], col C) bool {
	if sortedarray.Insert(s.RowFull(cb.Row), s.SizeOf(cb.Row), col, cb) {
		s.SetSize(cb.Row, s.SizeOf(cb.Row)+1)
		return true
	}
	return false
}

func insertMany[C Integer](s *rows.Store[C], cb rows.RowCallbacks[C], cols []C) int {
	n := sortedarray.InsertSorted(s.RowFull(cb.Row), s.SizeOf(cb.Row), cols, cb)
	s.SetSize(cb.Row, s.SizeOf(cb.Row)+n)
	return n
}

func removeOne[C Integer](s *rows.Store[C], cb rows.RowCallbacks[C], col C) bool {
	if sortedarray.Remove(s.RowFull(cb.Row), s.SizeOf(cb.Row), col, cb) {
		s.SetSize(cb.Row, s.SizeOf(cb.Row)-1)
		return true
	}
	return false
}

func removeMany[C Integer](s *rows.Store[C], cb rows.RowCallbacks[C], cols []C) int {
	n := sortedarray.RemoveSorted(s.RowFull(cb.Row), s.SizeOf(cb.Row), cols, cb)
	s.SetSize(cb.Row, s.SizeOf(cb.Row)-n)
	return n
}

// SetRowCapacity gives row exactly min(c, NumColumns) slots. Shrinking below
// the row size drops its highest columns.
func (p *SparsityPattern[C]) SetRowCapacity(row, c int) {
	p.s.SetCapacityOfArray(row, min(c, p.numColumns))
}

// AppendRow adds an empty row with the given capacity, capped at
// NumColumns.
func (p *SparsityPattern[C]) AppendRow(capacity int) {
	p.s.AppendEmpty()
	p.SetRowCapacity(p.s.NumArrays-1, capacity)
}

// Resize sets the shape. New rows get initialRowCapacity slots; shrinking the
// column count drops the columns past it from every row.
func (p *SparsityPattern[C]) Resize(numRows, numColumns, initialRowCapacity int) {
	resizePattern(&p.s, &p.numColumns, numRows, numColumns, initialRowCapacity)
}

func resizePattern[C Integer](s *rows.Store[C], numCols *int, numRows, numColumns, initialRowCapacity int) {
	check.NonNegative(numColumns, "number of columns")
	check.If(initialRowCapacity > numColumns,
		"initial row capacity %d exceeds the number of columns %d", initialRowCapacity, numColumns)
	if numColumns < *numCols {
		for row := 0; row < min(numRows, s.NumArrays); row++ {
			cols := s.Row(row)
			keep := sortedarray.Find(cols, C(numColumns))
			if keep < len(cols) {
				if s.Companion != nil {
					s.Companion.Clear(s.Offset(row)+keep, s.Offset(row)+len(cols))
				}
				clear(cols[keep:])
				s.SetSize(row, keep)
			}
		}
	}
	*numCols = numColumns
	s.Resize(numRows, initialRowCapacity)
}

// ReserveNonZeros makes room for n non-zeros across all rows.
func (p *SparsityPattern[C]) ReserveNonZeros(n int) { p.s.ReserveValues(n) }

// Compress removes all slack.
func (p *SparsityPattern[C]) Compress() { p.s.Compress() }

// EachNonZero calls fn for every stored (row, col) in row-major order.
func (p *SparsityPattern[C]) EachNonZero(fn func(row int, col C)) {
	for row := 0; row < p.s.NumArrays; row++ {
		for _, c := range p.s.Row(row) {
			fn(row, c)
		}
	}
}

// Validate reports a broken invariant: storage, unsorted rows, or columns
// out of range.
func (p *SparsityPattern[C]) Validate() error { return validatePattern(&p.s, p.numColumns) }

func validatePattern[C Integer](s *rows.Store[C], numColumns int) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for row := 0; row < s.NumArrays; row++ {
		cols := s.Row(row)
		if !sortedarray.IsSortedUnique(cols) {
			return fmt.Errorf("%w: row %d is not sorted and unique", ErrInvalidPattern, row)
		}
		if len(cols) > 0 && (outOfRange(cols[0], numColumns) || outOfRange(cols[len(cols)-1], numColumns)) {
			return fmt.Errorf("%w: row %d has a column out of [0, %d)", ErrInvalidPattern, row, numColumns)
		}
	}
	return nil
}

// Copy returns a deep copy.
func (p *SparsityPattern[C]) Copy() *SparsityPattern[C] {
	c := &SparsityPattern[C]{s: *p.s.Clone(), numColumns: p.numColumns}
	c.s.Growth = c.growth
	return c
}

// CopyFrom replaces the contents of p with a deep copy of src.
func (p *SparsityPattern[C]) CopyFrom(src *SparsityPattern[C]) {
	p.s.CopyFrom(&src.s)
	p.numColumns = src.numColumns
}

// Free releases the storage and leaves a 0 x 0 pattern.
func (p *SparsityPattern[C]) Free() {
	p.s.Free()
	p.numColumns = 0
}

// Name returns the name given to SetName.
func (p *SparsityPattern[C]) Name() string { return p.s.Name() }

// SetName names the buffers for move logs.
func (p *SparsityPattern[C]) SetName(name string) { p.s.SetName(name) }

// Move makes the storage resident in space.
func (p *SparsityPattern[C]) Move(space buffer.MemorySpace, touch bool) { p.s.Move(space, touch) }

// String lists the columns of every row.
func (p *SparsityPattern[C]) String() string { return formatPattern(&p.s) }

// View borrows a pattern to insert and remove non-zeros within the current
// row capacities.
type View[C Integer] struct{ p *SparsityPattern[C] }

// ViewConst borrows a pattern read-only.
type ViewConst[C Integer] struct{ p *SparsityPattern[C] }

// ToView returns a capacity-bound mutable view.
func (p *SparsityPattern[C]) ToView() View[C] { return View[C]{p} }

// ToViewConst returns a read-only view.
func (p *SparsityPattern[C]) ToViewConst() ViewConst[C] { return ViewConst[C]{p} }

// ToViewConst narrows v.
func (v View[C]) ToViewConst() ViewConst[C] { return ViewConst[C](v) }

func (v View[C]) fixed(row int) rows.RowCallbacks[C] {
	return rows.RowCallbacks[C]{S: &v.p.s, Row: row, Fixed: true}
}

// InsertNonZero stores (row, col); the row must have room for it.
func (v View[C]) InsertNonZero(row int, col C) bool {
	v.p.checkColumn(col)
	return insertOne(&v.p.s, v.fixed(row), col)
}

// InsertNonZeros stores a sorted-unique batch within the row capacity.
func (v View[C]) InsertNonZeros(row int, cols ...C) int {
	v.p.checkColumns(cols)
	return insertMany(&v.p.s, v.fixed(row), cols)
}

// RemoveNonZero drops (row, col).
func (v View[C]) RemoveNonZero(row int, col C) bool {
	v.p.checkColumn(col)
	return removeOne(&v.p.s, v.fixed(row), col)
}

// RemoveNonZeros drops a sorted-unique batch.
func (v View[C]) RemoveNonZeros(row int, cols ...C) int {
	v.p.checkColumns(cols)
	return removeMany(&v.p.s, v.fixed(row), cols)
}

func (v View[C]) NumRows() int                          { return v.p.NumRows() }
func (v View[C]) NumColumns() int                       { return v.p.numColumns }
func (v View[C]) Columns(row int) []C                   { return v.p.Columns(row) }
func (v View[C]) NumNonZerosInRow(row int) int          { return v.p.NumNonZerosInRow(row) }
func (v View[C]) NonZeroCapacityOfRow(row int) int      { return v.p.NonZeroCapacityOfRow(row) }
func (v View[C]) Move(s buffer.MemorySpace, touch bool) { v.p.Move(s, touch) }

func (v ViewConst[C]) NumRows() int                     { return v.p.NumRows() }
func (v ViewConst[C]) NumColumns() int                  { return v.p.numColumns }
func (v ViewConst[C]) NumNonZeros() int                 { return v.p.NumNonZeros() }
func (v ViewConst[C]) NumNonZerosInRow(row int) int     { return v.p.NumNonZerosInRow(row) }
func (v ViewConst[C]) NonZeroCapacityOfRow(row int) int { return v.p.NonZeroCapacityOfRow(row) }
func (v ViewConst[C]) EmptyAt(row int, col C) bool      { return v.p.EmptyAt(row, col) }
func (v ViewConst[C]) EachNonZero(fn func(int, C))      { v.p.EachNonZero(fn) }
func (v ViewConst[C]) String() string                   { return v.p.String() }

// Columns returns a copy of the columns of row.
func (v ViewConst[C]) Columns(row int) []C { return append([]C(nil), v.p.Columns(row)...) }

// Move makes the storage resident in space without marking copies stale.
func (v ViewConst[C]) Move(space buffer.MemorySpace) { v.p.Move(space, false) }

// SPDX-License-Identifier: MIT

package sparsity

import (
	"fmt"

	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/internal/check"
	"github.com/katalvlaran/lvarray/internal/rows"
	"github.com/katalvlaran/lvarray/parallel"
	"github.com/katalvlaran/lvarray/sortedarray"
)

// CRSMatrix is a compressed-row sparse matrix: a sparsity pattern whose
// every stored column carries an entry. Entries live in a buffer laid out
// exactly like the columns.
type CRSMatrix[T any, C Integer] struct {
	p       SparsityPattern[C]
	entries buffer.Buffer[T]
}

// NewCRS returns an empty numRows x numColumns matrix with
// initialRowCapacity slots per row.
func NewCRS[T any, C Integer](numRows, numColumns, initialRowCapacity int, opts ...buffer.Option) *CRSMatrix[T, C] {
	m := &CRSMatrix[T, C]{}
	m.p.s.Init(opts...)
	m.entries = buffer.Make[T](opts...)
	m.attach()
	m.p.init(numRows, numColumns, initialRowCapacity)
	return m
}

func (m *CRSMatrix[T, C]) attach() {
	m.entries.SetName(m.p.s.Name() + "/entries")
	m.p.s.Companion = rows.SliceCompanion[T]{Buf: m.entries}
	m.p.s.Growth = m.p.growth
}

// inserter returns callbacks that write the batch entries into the slots
// chosen for their columns.
func (m *CRSMatrix[T, C]) inserter(row int, fixed bool, vals []T) rows.RowCallbacks[C] {
	return rows.RowCallbacks[C]{S: &m.p.s, Row: row, Fixed: fixed, OnInsert: func(src, slot int) {
		m.entries.Data()[slot] = vals[src]
	}}
}

func (m *CRSMatrix[T, C]) remover(row int) rows.RowCallbacks[C] {
	return rows.RowCallbacks[C]{S: &m.p.s, Row: row}
}

// NumRows returns the number of rows.
func (m *CRSMatrix[T, C]) NumRows() int { return m.p.NumRows() }

// NumColumns returns the number of columns.
func (m *CRSMatrix[T, C]) NumColumns() int { return m.p.numColumns }

// NumNonZeros returns the number of stored entries.
func (m *CRSMatrix[T, C]) NumNonZeros() int { return m.p.NumNonZeros() }

// NumNonZerosInRow returns the number of stored entries in row.
func (m *CRSMatrix[T, C]) NumNonZerosInRow(row int) int { return m.p.NumNonZerosInRow(row) }

// NonZeroCapacity returns the number of allocated entry slots.
func (m *CRSMatrix[T, C]) NonZeroCapacity() int { return m.p.NonZeroCapacity() }

// NonZeroCapacityOfRow returns the number of entry slots of row.
func (m *CRSMatrix[T, C]) NonZeroCapacityOfRow(row int) int { return m.p.NonZeroCapacityOfRow(row) }

// Empty reports whether no entry is stored.
func (m *CRSMatrix[T, C]) Empty() bool { return m.p.Empty() }

// EmptyRow reports whether row stores nothing.
func (m *CRSMatrix[T, C]) EmptyRow(row int) bool { return m.p.EmptyRow(row) }

// EmptyAt reports whether (row, col) is not stored.
func (m *CRSMatrix[T, C]) EmptyAt(row int, col C) bool { return m.p.EmptyAt(row, col) }

// Columns returns the sorted columns of row. Do not modify them.
func (m *CRSMatrix[T, C]) Columns(row int) []C { return m.p.Columns(row) }

// Entries returns the entries of row, aligned with Columns(row). The values
// may be modified in place.
func (m *CRSMatrix[T, C]) Entries(row int) []T {
	off, n := m.p.s.Offset(row), m.p.s.SizeOf(row)
	return m.entries.Data()[off : off+n : off+n]
}

// Pattern returns a read-only view of the sparsity pattern.
func (m *CRSMatrix[T, C]) Pattern() ViewConst[C] { return ViewConst[C]{&m.p} }

// find returns the entry slot of (row, col), or -1.
func (m *CRSMatrix[T, C]) find(row int, col C) int {
	m.p.checkColumn(col)
	cols := m.p.s.Row(row)
	k := sortedarray.Find(cols, col)
	if k < len(cols) && cols[k] == col {
		return m.p.s.Offset(row) + k
	}
	return -1
}

// At returns the entry at (row, col) and whether it is stored.
func (m *CRSMatrix[T, C]) At(row int, col C) (T, bool) {
	if k := m.find(row, col); k >= 0 {
		return m.entries.Data()[k], true
	}
	var zero T
	return zero, false
}

// Set overwrites a stored entry and reports whether (row, col) was stored.
func (m *CRSMatrix[T, C]) Set(row int, col C, v T) bool {
	if k := m.find(row, col); k >= 0 {
		m.entries.Data()[k] = v
		return true
	}
	return false
}

// InsertNonZero stores v at (row, col) and reports whether it was new. An
// existing entry is left unchanged.
func (m *CRSMatrix[T, C]) InsertNonZero(row int, col C, v T) bool {
	m.p.checkColumn(col)
	return insertOne(&m.p.s, m.inserter(row, false, []T{v}), col)
}

// InsertNonZeros stores a sorted-unique batch of columns with their entries
// and returns how many were new. Existing entries are left unchanged.
func (m *CRSMatrix[T, C]) InsertNonZeros(row int, cols []C, vals []T) int {
	check.If(len(cols) != len(vals), "%d columns with %d entries", len(cols), len(vals))
	m.p.checkColumns(cols)
	return insertMany(&m.p.s, m.inserter(row, false, vals), cols)
}

// RemoveNonZero drops (row, col) and its entry.
func (m *CRSMatrix[T, C]) RemoveNonZero(row int, col C) bool {
	m.p.checkColumn(col)
	return removeOne(&m.p.s, m.remover(row), col)
}

// RemoveNonZeros drops a sorted-unique batch of columns and their entries.
func (m *CRSMatrix[T, C]) RemoveNonZeros(row int, cols ...C) int {
	m.p.checkColumns(cols)
	return removeMany(&m.p.s, m.remover(row), cols)
}

// SetValues sets every stored entry to v.
func (m *CRSMatrix[T, C]) SetValues(v T) {
	for row := 0; row < m.p.s.NumArrays; row++ {
		buffer.Construct(m.Entries(row), v)
	}
}

// AddToRow combines vals into the entries of the given sorted columns of row
// with add(old, v). Every column must already be stored.
func (m *CRSMatrix[T, C]) AddToRow(row int, cols []C, vals []T, add func(old, v T) T) {
	addToRow(m, row, cols, vals, add)
}

func addToRow[T any, C Integer](m *CRSMatrix[T, C], row int, cols []C, vals []T, add func(old, v T) T) {
	check.If(len(cols) != len(vals), "%d columns with %d entries", len(cols), len(vals))
	stored := m.p.s.Row(row)
	entries := m.Entries(row)
	k := 0
	for i, c := range cols {
		k += sortedarray.Find(stored[k:], c)
		if k == len(stored) || stored[k] != c {
			check.Fatalf("column %d is not stored in row %d", c, row)
		}
		entries[k] = add(entries[k], vals[i])
	}
}

// SetRowCapacity gives row exactly min(c, NumColumns) slots.
func (m *CRSMatrix[T, C]) SetRowCapacity(row, c int) { m.p.SetRowCapacity(row, c) }

// AppendRow adds an empty row with the given capacity.
func (m *CRSMatrix[T, C]) AppendRow(capacity int) { m.p.AppendRow(capacity) }

// Resize sets the shape; see SparsityPattern.Resize.
func (m *CRSMatrix[T, C]) Resize(numRows, numColumns, initialRowCapacity int) {
	m.p.Resize(numRows, numColumns, initialRowCapacity)
}

// ReserveNonZeros makes room for n entries across all rows.
func (m *CRSMatrix[T, C]) ReserveNonZeros(n int) { m.p.ReserveNonZeros(n) }

// Compress removes all slack.
func (m *CRSMatrix[T, C]) Compress() { m.p.Compress() }

// EachNonZero calls fn for every stored entry in row-major order.
func (m *CRSMatrix[T, C]) EachNonZero(fn func(row int, col C, v T)) {
	for row := 0; row < m.p.s.NumArrays; row++ {
		e := m.Entries(row)
		for k, c := range m.p.s.Row(row) {
			fn(row, c, e[k])
		}
	}
}

// Assimilate frees m and takes the storage of pattern, whose stored columns
// get zero entries. pattern is left empty with its name kept.
func (m *CRSMatrix[T, C]) Assimilate(pattern *SparsityPattern[C]) {
	name, pname := m.p.s.Name(), pattern.Name()
	kind := buffer.KindHost
	if pattern.s.Values.MultiSpace() {
		kind = buffer.KindSpaces
	}
	m.p.s.Free()
	m.p.s, m.p.numColumns = pattern.s, pattern.numColumns
	m.entries.Reallocate(0, m.p.s.ValueCapacity())
	m.p.s.SetName(name)
	m.attach()

	pattern.s = rows.Store[C]{}
	pattern.s.Init(buffer.WithName(pname), buffer.WithKind(kind))
	pattern.numColumns = 0
	pattern.s.Growth = pattern.growth
}

// CSR returns a compressed copy: row r owns columns and entries
// [offsets[r], offsets[r+1]).
func (m *CRSMatrix[T, C]) CSR() (offsets []int, columns []C, entries []T) {
	offsets, columns = exportCSR(&m.p.s)
	entries = make([]T, 0, len(columns))
	for row := 0; row < m.p.s.NumArrays; row++ {
		entries = append(entries, m.Entries(row)...)
	}
	return offsets, columns, entries
}

// CRSFromCSR builds a compressed matrix from CSR arrays.
// Errors: as FromCSR, plus ErrInvalidCSR when len(entries) != len(columns).
func CRSFromCSR[T any, C Integer](numColumns int, offsets []int, columns []C, entries []T, opts ...buffer.Option) (*CRSMatrix[T, C], error) {
	if len(entries) != len(columns) {
		return nil, fmt.Errorf("%w: %d entries for %d columns", ErrInvalidCSR, len(entries), len(columns))
	}
	p, err := FromCSR(numColumns, offsets, columns, opts...)
	if err != nil {
		return nil, err
	}
	m := NewCRS[T, C](0, 0, 0, opts...)
	m.Assimilate(p)
	copy(m.entries.Data(), entries)
	return m, nil
}

// Validate reports a broken invariant of the pattern or a short entries
// buffer.
func (m *CRSMatrix[T, C]) Validate() error {
	if err := validatePattern(&m.p.s, m.p.numColumns); err != nil {
		return err
	}
	if m.entries.Capacity() < m.p.s.ValueCapacity() {
		return fmt.Errorf("%w: %d entry slots for %d column slots", rows.ErrCorrupt, m.entries.Capacity(), m.p.s.ValueCapacity())
	}
	return nil
}

// Copy returns a deep copy.
func (m *CRSMatrix[T, C]) Copy() *CRSMatrix[T, C] {
	ext := m.p.s.Offset(m.p.s.NumArrays)
	c := &CRSMatrix[T, C]{
		p:       SparsityPattern[C]{s: *m.p.s.Clone(), numColumns: m.p.numColumns},
		entries: buffer.Clone(m.entries, ext, ext),
	}
	c.attach()
	return c
}

// CopyFrom replaces the contents of m with a deep copy of src.
func (m *CRSMatrix[T, C]) CopyFrom(src *CRSMatrix[T, C]) {
	if m == src {
		return
	}
	m.p.CopyFrom(&src.p)
	ext := src.p.s.Offset(src.p.s.NumArrays)
	copy(m.entries.Data(), src.entries.Data()[:ext])
}

// Free releases the storage and leaves a 0 x 0 matrix.
func (m *CRSMatrix[T, C]) Free() { m.p.Free() }

// Name returns the name given to SetName.
func (m *CRSMatrix[T, C]) Name() string { return m.p.Name() }

// SetName names the buffers for move logs.
func (m *CRSMatrix[T, C]) SetName(name string) {
	m.p.SetName(name)
	m.entries.SetName(name + "/entries")
}

// Move makes the storage resident in space.
func (m *CRSMatrix[T, C]) Move(space buffer.MemorySpace, touch bool) {
	m.p.Move(space, touch)
	m.entries.Move(space, touch)
}

// String lists "(column, entry)" pairs per row.
func (m *CRSMatrix[T, C]) String() string { return formatMatrix(&m.p.s, m.entries.Data()) }

// Rows runs fn for every row under policy. fn must not change the
// structure of the matrix.
func (m *CRSMatrix[T, C]) Rows(policy parallel.Policy, fn func(row int, cols []C, entries []T)) {
	parallel.ForAll(policy, m.p.s.NumArrays, func(row int) {
		fn(row, m.p.s.Row(row), m.Entries(row))
	})
}

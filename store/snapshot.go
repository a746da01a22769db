// SPDX-License-Identifier: MIT

package store

import (
	"fmt"

	"github.com/katalvlaran/lvarray/array"
	"github.com/katalvlaran/lvarray/arrayofarrays"
	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/layout"
	"github.com/katalvlaran/lvarray/sparsity"
)

func putRecord[T any](s *Store, name string, rec *record[T]) error {
	rec.Elem = elemName[T]()
	payload, err := encode(s.codec, rec)
	if err != nil {
		return fmt.Errorf("store: %s/%s: %w", rec.Kind, name, err)
	}
	return s.put(rec.Kind, name, payload)
}

func getRecord[T any](s *Store, kind Kind, name string) (*record[T], error) {
	payload, err := s.get(kind, name)
	if err != nil {
		return nil, err
	}
	rec, err := decode[T](s.codec, payload, kind)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", kind, name, err)
	}
	return rec, nil
}

// PutArray stores a with its permutation. Values are kept in storage order.
func PutArray[T any](s *Store, name string, a *array.Array[T]) error {
	return putRecord(s, name, &record[T]{
		Kind:   KindArray,
		Order:  a.Permutation().Order(),
		Dims:   a.Dims(),
		Values: a.Data(),
	})
}

// GetArray loads an array stored by PutArray.
func GetArray[T any](s *Store, name string, opts ...array.Option) (*array.Array[T], error) {
	rec, err := getRecord[T](s, KindArray, name)
	if err != nil {
		return nil, err
	}
	perm, err := layout.New(rec.Order...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", ErrCorrupt, KindArray, name, err)
	}
	if len(rec.Dims) != perm.Rank() || !nonNegative(rec.Dims) || layout.Size(rec.Dims) != len(rec.Values) {
		return nil, fmt.Errorf("%w: %s/%s: dims %v for %d values", ErrCorrupt, KindArray, name, rec.Dims, len(rec.Values))
	}
	a := array.NewWithOptions[T](perm, rec.Dims, opts...)
	copy(a.Data(), rec.Values)
	return a, nil
}

// PutArrayOfArrays stores the rows of a and their capacities.
func PutArrayOfArrays[T any](s *Store, name string, a *arrayofarrays.ArrayOfArrays[T]) error {
	values := make([]T, 0, a.TotalSize())
	for i := 0; i < a.Size(); i++ {
		values = append(values, a.Array(i)...)
	}
	return putRecord(s, name, &record[T]{
		Kind:    KindArrayOfArrays,
		Offsets: a.Offsets(),
		Sizes:   a.Sizes(),
		Values:  values,
	})
}

// GetArrayOfArrays loads a ragged array stored by PutArrayOfArrays with the
// same row capacities.
func GetArrayOfArrays[T any](s *Store, name string, opts ...buffer.Option) (*arrayofarrays.ArrayOfArrays[T], error) {
	rec, err := getRecord[T](s, KindArrayOfArrays, name)
	if err != nil {
		return nil, err
	}
	n := len(rec.Sizes)
	if len(rec.Offsets) != n+1 || rec.Offsets[0] != 0 {
		return nil, fmt.Errorf("%w: %s/%s: %d offsets for %d arrays", ErrCorrupt, KindArrayOfArrays, name, len(rec.Offsets), n)
	}
	caps := make([]int, n)
	total := 0
	for i := range caps {
		caps[i] = rec.Offsets[i+1] - rec.Offsets[i]
		if caps[i] < 0 || rec.Sizes[i] < 0 || rec.Sizes[i] > caps[i] {
			return nil, fmt.Errorf("%w: %s/%s: array %d has size %d and capacity %d", ErrCorrupt, KindArrayOfArrays, name, i, rec.Sizes[i], caps[i])
		}
		total += rec.Sizes[i]
	}
	if total != len(rec.Values) {
		return nil, fmt.Errorf("%w: %s/%s: sizes add to %d for %d values", ErrCorrupt, KindArrayOfArrays, name, total, len(rec.Values))
	}

	a := arrayofarrays.New[T](0, 0, opts...)
	a.ResizeFromCapacities(caps)
	off := 0
	for i, sz := range rec.Sizes {
		a.AppendToArray(i, rec.Values[off:off+sz]...)
		off += sz
	}
	return a, nil
}

// PutPattern stores p in compressed form.
func PutPattern[C sparsity.Integer](s *Store, name string, p *sparsity.SparsityPattern[C]) error {
	offsets, cols := p.CSR()
	return putRecord(s, name, &record[C]{
		Kind:       KindPattern,
		Offsets:    offsets,
		NumColumns: p.NumColumns(),
		Values:     cols,
	})
}

// GetPattern loads a pattern stored by PutPattern. The stored CSR arrays are
// validated like FromCSR input.
func GetPattern[C sparsity.Integer](s *Store, name string, opts ...buffer.Option) (*sparsity.SparsityPattern[C], error) {
	rec, err := getRecord[C](s, KindPattern, name)
	if err != nil {
		return nil, err
	}
	p, err := sparsity.FromCSR(rec.NumColumns, rec.Offsets, rec.Values, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %w", ErrCorrupt, KindPattern, name, err)
	}
	return p, nil
}

// PutCRS stores m in compressed form. Columns are widened to int64 so the
// record carries both the columns and the entries.
func PutCRS[T any, C sparsity.Integer](s *Store, name string, m *sparsity.CRSMatrix[T, C]) error {
	offsets, cols, entries := m.CSR()
	wide := make([]int64, len(cols))
	for k, c := range cols {
		wide[k] = int64(c)
	}
	return putRecord(s, name, &record[T]{
		Kind:       KindCRS,
		Offsets:    offsets,
		Columns:    wide,
		NumColumns: m.NumColumns(),
		Values:     entries,
	})
}

// GetCRS loads a matrix stored by PutCRS. The element type of the entries
// must match; the column type may differ as long as every column fits.
func GetCRS[T any, C sparsity.Integer](s *Store, name string, opts ...buffer.Option) (*sparsity.CRSMatrix[T, C], error) {
	rec, err := getRecord[T](s, KindCRS, name)
	if err != nil {
		return nil, err
	}
	cols := make([]C, len(rec.Columns))
	for k, c := range rec.Columns {
		cols[k] = C(c)
		if int64(cols[k]) != c {
			return nil, fmt.Errorf("%w: %s/%s: column %d overflows %T", ErrCorrupt, KindCRS, name, c, cols[k])
		}
	}
	m, err := sparsity.CRSFromCSR(rec.NumColumns, rec.Offsets, cols, rec.Values, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %w", ErrCorrupt, KindCRS, name, err)
	}
	return m, nil
}

func nonNegative(dims []int) bool {
	for _, d := range dims {
		if d < 0 {
			return false
		}
	}
	return true
}

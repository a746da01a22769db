// SPDX-License-Identifier: MIT

package sparsity

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/internal/rows"
	"github.com/katalvlaran/lvarray/parallel"
	"github.com/katalvlaran/lvarray/sortedarray"
)

// CSR returns the pattern in compressed sparse row form: row r owns
// columns[offsets[r]:offsets[r+1]]. The result is a compressed copy.
func (p *SparsityPattern[C]) CSR() (offsets []int, columns []C) {
	return exportCSR(&p.s)
}

func exportCSR[C any](s *rows.Store[C]) ([]int, []C) {
	offsets := make([]int, s.NumArrays+1)
	columns := make([]C, 0, s.TotalSize())
	for row := 0; row < s.NumArrays; row++ {
		columns = append(columns, s.Row(row)...)
		offsets[row+1] = len(columns)
	}
	return offsets, columns
}

// FromCSR builds a compressed pattern from CSR arrays.
//
// Errors:
//   - ErrInvalidCSR when offsets are empty, do not start at zero, decrease,
//     or do not end at len(columns); when a row is not sorted and unique; or
//     when a column is outside [0, numColumns).
func FromCSR[C Integer](numColumns int, offsets []int, columns []C, opts ...buffer.Option) (*SparsityPattern[C], error) {
	if err := checkCSR(numColumns, offsets, columns); err != nil {
		return nil, err
	}
	numRows := len(offsets) - 1
	caps := make([]int, numRows)
	for r := range caps {
		caps[r] = offsets[r+1] - offsets[r]
	}
	p := New[C](0, numColumns, 0, opts...)
	p.s.ResizeFromCapacities(parallel.Host, caps)
	copy(p.s.Values.Data(), columns)
	for r, c := range caps {
		p.s.SetSize(r, c)
	}
	return p, nil
}

func checkCSR[C Integer](numColumns int, offsets []int, columns []C) error {
	if numColumns < 0 {
		return fmt.Errorf("%w: %d columns", ErrInvalidCSR, numColumns)
	}
	if len(offsets) == 0 || offsets[0] != 0 {
		return fmt.Errorf("%w: offsets must start with 0", ErrInvalidCSR)
	}
	if last := offsets[len(offsets)-1]; last != len(columns) {
		return fmt.Errorf("%w: offsets end at %d for %d columns", ErrInvalidCSR, last, len(columns))
	}
	for r := 0; r+1 < len(offsets); r++ {
		if offsets[r+1] < offsets[r] {
			return fmt.Errorf("%w: offsets decrease at row %d", ErrInvalidCSR, r)
		}
		row := columns[offsets[r]:offsets[r+1]]
		if !sortedarray.IsSortedUnique(row) {
			return fmt.Errorf("%w: row %d is not sorted and unique", ErrInvalidCSR, r)
		}
		if len(row) > 0 && (outOfRange(row[0], numColumns) || outOfRange(row[len(row)-1], numColumns)) {
			return fmt.Errorf("%w: row %d has a column out of [0, %d)", ErrInvalidCSR, r, numColumns)
		}
	}
	return nil
}

// MustFromCSR is FromCSR that panics on error.
func MustFromCSR[C Integer](numColumns int, offsets []int, columns []C) *SparsityPattern[C] {
	p, err := FromCSR(numColumns, offsets, columns)
	if err != nil {
		panic(err)
	}
	return p
}

func formatPattern[C Integer](s *rows.Store[C]) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for row := 0; row < s.NumArrays; row++ {
		fmt.Fprintf(&sb, "%d\t{", row)
		for _, c := range s.Row(row) {
			fmt.Fprint(&sb, c, ", ")
		}
		sb.WriteString("}\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

func formatMatrix[T any, C Integer](s *rows.Store[C], entries []T) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for row := 0; row < s.NumArrays; row++ {
		fmt.Fprintf(&sb, "%d\t{", row)
		off := s.Offset(row)
		for k, c := range s.Row(row) {
			fmt.Fprintf(&sb, "(%v, %v), ", c, entries[off+k])
		}
		sb.WriteString("}\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

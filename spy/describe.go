// SPDX-License-Identifier: MIT

package spy

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvarray/sparsity"
)

// Summary is a numeric description of a pattern.
type Summary struct {
	Rows, Columns int
	NonZeros      int
	EmptyRows     int
	MinRow        int // fewest non-zeros in a row
	MaxRow        int // most non-zeros in a row
	// Lower and Upper are the bandwidths: the largest row-col and col-row
	// over the stored entries.
	Lower, Upper int
}

// Density returns NonZeros / (Rows * Columns), or 0 for an empty shape.
func (s Summary) Density() float64 {
	if s.Rows == 0 || s.Columns == 0 {
		return 0
	}
	return float64(s.NonZeros) / (float64(s.Rows) * float64(s.Columns))
}

// MeanRow returns the average number of non-zeros per row.
func (s Summary) MeanRow() float64 {
	if s.Rows == 0 {
		return 0
	}
	return float64(s.NonZeros) / float64(s.Rows)
}

func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "shape      %d x %d\n", s.Rows, s.Columns)
	fmt.Fprintf(&sb, "non-zeros  %d (density %.4g)\n", s.NonZeros, s.Density())
	fmt.Fprintf(&sb, "per row    min %d, max %d, mean %.4g\n", s.MinRow, s.MaxRow, s.MeanRow())
	fmt.Fprintf(&sb, "empty rows %d\n", s.EmptyRows)
	fmt.Fprintf(&sb, "bandwidth  lower %d, upper %d\n", s.Lower, s.Upper)
	return sb.String()
}

// Describe summarizes p in one pass over its non-zeros.
func Describe[C sparsity.Integer](p sparsity.ViewConst[C]) Summary {
	s := Summary{Rows: p.NumRows(), Columns: p.NumColumns(), NonZeros: p.NumNonZeros()}
	for row := 0; row < s.Rows; row++ {
		n := p.NumNonZerosInRow(row)
		if row == 0 || n < s.MinRow {
			s.MinRow = n
		}
		s.MaxRow = max(s.MaxRow, n)
		if n == 0 {
			s.EmptyRows++
		}
	}
	p.EachNonZero(func(row int, col C) {
		d := row - int(col)
		if d > 0 {
			s.Lower = max(s.Lower, d)
		} else {
			s.Upper = max(s.Upper, -d)
		}
	})
	return s
}

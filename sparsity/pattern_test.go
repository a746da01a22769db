// SPDX-License-Identifier: MIT

package sparsity_test

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvarray/sparsity"
)

// requirePattern compares every row against a reference.
func requirePattern[C sparsity.Integer](t *testing.T, p *sparsity.SparsityPattern[C], want [][]C) {
	t.Helper()
	require.NoError(t, p.Validate())
	require.Equal(t, len(want), p.NumRows())
	total := 0
	for r, row := range want {
		require.Equal(t, row, append([]C{}, p.Columns(r)...), "row %d", r)
		total += len(row)
	}
	require.Equal(t, total, p.NumNonZeros())
}

func TestInsertScenario(t *testing.T) {
	p := sparsity.New[int](3, 5, 0)
	require.True(t, p.InsertNonZero(0, 2))
	require.False(t, p.InsertNonZero(0, 2))
	require.Equal(t, 1, p.NumNonZerosInRow(0))
	require.Panics(t, func() { p.InsertNonZero(0, 10) })
	require.Panics(t, func() { p.InsertNonZero(0, -1) })
	require.False(t, p.EmptyAt(0, 2))
	require.True(t, p.EmptyAt(1, 2))
	require.True(t, p.EmptyRow(1))
	require.False(t, p.Empty())
}

func TestNewRejectsCapacityPastColumns(t *testing.T) {
	require.Panics(t, func() { sparsity.New[int](1, 3, 4) })
	require.Panics(t, func() { sparsity.New[int](1, -1, 0) })
}

func TestWideUnsignedColumnsOutOfRange(t *testing.T) {
	p := sparsity.New[uint64](3, 5, 0)
	require.Panics(t, func() { p.InsertNonZero(0, math.MaxUint64) })
	require.Panics(t, func() { p.InsertNonZeros(1, 1, 1<<63) })
	require.True(t, p.Empty())

	m := sparsity.NewCRS[float64, uint](2, 4, 0)
	require.Panics(t, func() { m.InsertNonZero(0, math.MaxUint, 1) })

	_, err := sparsity.FromCSR(5, []int{0, 1}, []uint{math.MaxUint})
	require.ErrorIs(t, err, sparsity.ErrInvalidCSR)
	_, err = sparsity.FromCSR(5, []int{0, 2}, []uint64{1, 1 << 63})
	require.ErrorIs(t, err, sparsity.ErrInvalidCSR)
}

func TestRowGrowthIsCappedByColumns(t *testing.T) {
	p := sparsity.New[uint16](1, 5, 0)
	p.InsertNonZero(0, 3)
	require.Equal(t, 2, p.NonZeroCapacityOfRow(0))
	p.InsertNonZero(0, 1)
	require.Equal(t, 2, p.NonZeroCapacityOfRow(0))
	p.InsertNonZero(0, 4) // min(2*3, 5)
	require.Equal(t, 5, p.NonZeroCapacityOfRow(0))
	requirePattern(t, p, [][]uint16{{1, 3, 4}})
}

func TestRowGrowthShiftsLaterRows(t *testing.T) {
	p := sparsity.New[int32](3, 10, 1)
	p.InsertNonZero(1, 4)
	p.InsertNonZero(2, 9)
	require.Equal(t, 2, p.InsertNonZeros(0, 1, 2))
	require.Equal(t, 4, p.NonZeroCapacityOfRow(0))
	requirePattern(t, p, [][]int32{{1, 2}, {4}, {9}})
}

func TestSetRowCapacity(t *testing.T) {
	p := sparsity.New[int](2, 10, 0)
	p.InsertNonZeros(0, 1, 3, 5, 7)
	p.InsertNonZero(1, 2)
	p.SetRowCapacity(0, 2)
	require.Equal(t, 2, p.NonZeroCapacityOfRow(0))
	requirePattern(t, p, [][]int{{1, 3}, {2}})

	p.SetRowCapacity(0, 100)
	require.Equal(t, 10, p.NonZeroCapacityOfRow(0))
	requirePattern(t, p, [][]int{{1, 3}, {2}})

	p.AppendRow(50)
	require.Equal(t, 10, p.NonZeroCapacityOfRow(2))
}

func TestResizeDropsColumns(t *testing.T) {
	p := sparsity.New[int](2, 10, 2)
	p.InsertNonZeros(0, 3, 8)
	p.InsertNonZero(1, 9)
	p.Resize(3, 5, 1)
	require.Equal(t, 5, p.NumColumns())
	requirePattern(t, p, [][]int{{3}, {}, {}})
	require.Panics(t, func() { p.Resize(3, 5, 6) })

	p.Resize(1, 5, 0)
	requirePattern(t, p, [][]int{{3}})
}

func TestRemove(t *testing.T) {
	p := sparsity.New[int](1, 8, 0)
	p.InsertNonZeros(0, 0, 2, 4, 6)
	require.True(t, p.RemoveNonZero(0, 2))
	require.False(t, p.RemoveNonZero(0, 2))
	require.Equal(t, 1, p.RemoveNonZeros(0, 1, 6))
	requirePattern(t, p, [][]int{{0, 4}})
	require.Panics(t, func() { p.RemoveNonZero(0, 8) })
}

func TestUnsortedBatchPanics(t *testing.T) {
	p := sparsity.New[int](1, 8, 0)
	require.Panics(t, func() { p.InsertNonZeros(0, 3, 1) })
	require.Panics(t, func() { p.InsertNonZeros(0, 1, 1) })
}

func TestBatchCountsMatchReference(t *testing.T) {
	const rowsN, cols = 6, 40
	rng := rand.New(rand.NewPCG(3, 5))
	p := sparsity.New[int](rowsN, cols, 2)
	ref := make([]map[int]bool, rowsN)
	for r := range ref {
		ref[r] = map[int]bool{}
	}
	batch := func() []int {
		var b []int
		for c := 0; c < cols; c++ {
			if rng.IntN(6) == 0 {
				b = append(b, c)
			}
		}
		return b
	}

	for step := 0; step < 300; step++ {
		r := rng.IntN(rowsN)
		b := batch()
		want := 0
		if rng.IntN(3) == 0 {
			for _, c := range b {
				if ref[r][c] {
					want++
					delete(ref[r], c)
				}
			}
			require.Equal(t, want, p.RemoveNonZeros(r, b...))
		} else {
			for _, c := range b {
				if !ref[r][c] {
					want++
					ref[r][c] = true
				}
			}
			require.Equal(t, want, p.InsertNonZeros(r, b...))
		}
		require.LessOrEqual(t, p.NonZeroCapacityOfRow(r), cols)
	}

	want := make([][]int, rowsN)
	for r := range ref {
		want[r] = []int{}
		for c := range ref[r] {
			want[r] = append(want[r], c)
		}
		slices.Sort(want[r])
	}
	requirePattern(t, p, want)

	p.Compress()
	for r := 0; r < rowsN; r++ {
		require.Equal(t, p.NumNonZerosInRow(r), p.NonZeroCapacityOfRow(r))
	}
	requirePattern(t, p, want)
}

func TestCSRRoundTrip(t *testing.T) {
	p, err := sparsity.FromCSR(4, []int{0, 2, 2, 3}, []int32{0, 3, 1})
	require.NoError(t, err)
	requirePattern(t, p, [][]int32{{0, 3}, {}, {1}})
	require.Equal(t, 4, p.NumColumns())

	offsets, cols := p.CSR()
	require.Equal(t, []int{0, 2, 2, 3}, offsets)
	require.Equal(t, []int32{0, 3, 1}, cols)

	// the imported pattern keeps growing normally
	p.InsertNonZero(1, 2)
	requirePattern(t, p, [][]int32{{0, 3}, {2}, {1}})
}

func TestFromCSRErrors(t *testing.T) {
	cases := []struct {
		name    string
		cols    int
		offsets []int
		columns []int
	}{
		{"no offsets", 3, nil, nil},
		{"nonzero start", 3, []int{1, 1}, []int{0}},
		{"decreasing", 3, []int{0, 2, 1, 2}, []int{0, 1}},
		{"short end", 3, []int{0, 1}, []int{0, 1}},
		{"unsorted", 3, []int{0, 2}, []int{2, 1}},
		{"duplicate", 3, []int{0, 2}, []int{1, 1}},
		{"out of range", 3, []int{0, 1}, []int{3}},
		{"negative columns", -1, []int{0}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sparsity.FromCSR(tc.cols, tc.offsets, tc.columns)
			require.ErrorIs(t, err, sparsity.ErrInvalidCSR)
		})
	}
	require.Panics(t, func() { sparsity.MustFromCSR(1, []int{0, 1}, []int{1}) })
}

func TestPatternCopyIsIndependent(t *testing.T) {
	p := sparsity.New[int](2, 6, 1)
	p.InsertNonZero(0, 1)
	c := p.Copy()
	c.InsertNonZeros(0, 2, 3, 4)
	c.InsertNonZero(1, 5)
	requirePattern(t, p, [][]int{{1}, {}})
	requirePattern(t, c, [][]int{{1, 2, 3, 4}, {5}})

	p.CopyFrom(c)
	requirePattern(t, p, [][]int{{1, 2, 3, 4}, {5}})
	p.Free()
	require.Equal(t, 0, p.NumRows())
	require.Equal(t, 0, p.NumColumns())
}

func TestPatternViews(t *testing.T) {
	p := sparsity.New[int](2, 5, 1)
	v := p.ToView()
	require.True(t, v.InsertNonZero(0, 1))
	require.Panics(t, func() { v.InsertNonZero(0, 2) })
	require.Equal(t, 1, v.RemoveNonZeros(0, 1, 3))

	c := p.ToViewConst()
	v.InsertNonZero(1, 4)
	cols := c.Columns(1)
	cols[0] = 0
	require.Equal(t, []int{4}, p.Columns(1))
	require.Equal(t, 1, c.NumNonZeros())

	var seen [][2]int
	c.EachNonZero(func(r, col int) { seen = append(seen, [2]int{r, col}) })
	require.Equal(t, [][2]int{{1, 4}}, seen)
}

func TestPatternString(t *testing.T) {
	p := sparsity.New[int](2, 5, 1)
	p.InsertNonZero(0, 2)
	require.Equal(t, "{\n0\t{2, }\n1\t{}\n}\n", p.String())
}

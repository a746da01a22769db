// SPDX-License-Identifier: MIT

package spy_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/lvarray/sparsity"
	"github.com/katalvlaran/lvarray/spy"
)

func tridiagonal(n int) *sparsity.SparsityPattern[int] {
	p := sparsity.New[int](n, n, 3)
	for i := 0; i < n; i++ {
		for _, c := range []int{i - 1, i, i + 1} {
			if c >= 0 && c < n {
				p.InsertNonZero(i, c)
			}
		}
	}
	return p
}

func TestDescribe(t *testing.T) {
	p := tridiagonal(5)
	p.AppendRow(0)
	p.InsertNonZero(0, 4)
	s := spy.Describe(p.ToViewConst())
	require.Equal(t, 6, s.Rows)
	require.Equal(t, 5, s.Columns)
	require.Equal(t, 14, s.NonZeros)
	require.Equal(t, 1, s.EmptyRows)
	require.Equal(t, 0, s.MinRow)
	require.Equal(t, 3, s.MaxRow)
	require.Equal(t, 1, s.Lower)
	require.Equal(t, 4, s.Upper)
	require.InDelta(t, 14.0/30, s.Density(), 1e-12)
	require.Contains(t, s.String(), "shape      6 x 5\n")

	require.Zero(t, spy.Describe(sparsity.New[int](0, 0, 0).ToViewConst()).Density())
}

func TestWriteFormats(t *testing.T) {
	p := tridiagonal(20)
	opts := spy.Options{Title: "tridiagonal", Width: 2 * vg.Inch, Height: 2 * vg.Inch}

	var png bytes.Buffer
	require.NoError(t, spy.Write(&png, p.ToViewConst(), opts))
	require.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))

	opts.Format = "SVG"
	var svg bytes.Buffer
	require.NoError(t, spy.Write(&svg, p.ToViewConst(), opts))
	require.Contains(t, svg.String(), "<svg")

	opts.Format = "bmp"
	require.ErrorIs(t, spy.Write(&svg, p.ToViewConst(), opts), spy.ErrFormat)
}

func TestPlotEmptyPattern(t *testing.T) {
	pl, err := spy.Plot(sparsity.New[int](3, 3, 0).ToViewConst(), spy.Options{})
	require.NoError(t, err)
	require.Equal(t, "3 x 3, nnz = 0", pl.Title.Text)
	require.Equal(t, 2.5, pl.Y.Max)

	m := sparsity.NewCRS[float64, int](2, 2, 1)
	m.InsertNonZero(1, 0, 1)
	var out bytes.Buffer
	require.NoError(t, spy.Write(&out, m.Pattern(), spy.Options{}))
	require.NotZero(t, out.Len())
}

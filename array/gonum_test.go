// SPDX-License-Identifier: MIT

package array_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvarray/array"
	"github.com/katalvlaran/lvarray/layout"
)

// TestDenseRoundTrip converts through gonum in both layouts.
func TestDenseRoundTrip(t *testing.T) {
	a := array.MustParse("{ { 1, 2, 3 }, { 4, 5, 6 } }", layout.JI, parseFloat)
	d := array.ToDense(a)
	require.True(t, mat.Equal(d, mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})))

	b := array.FromMatrix(d.T(), layout.IJ)
	require.Equal(t, "{ { 1, 4 }, { 2, 5 }, { 3, 6 } }", b.String())
	require.Panics(t, func() { array.ToDense(array.New[float64](layout.I, 3)) })
}

// SPDX-License-Identifier: MIT

package array

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvarray/internal/check"
	"github.com/katalvlaran/lvarray/layout"
)

// ToDense copies a rank-2 float64 array into a gonum matrix, element (i, j)
// to row i column j regardless of layout.
func ToDense(a *Array[float64]) *mat.Dense {
	check.If(a.Rank() != 2, "ToDense requires a rank-2 array, got rank %d", a.Rank())
	r, c := a.Dim(0), a.Dim(1)
	if r == 0 || c == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(r, c, nil)
	a.ToSlice().Each(func(v float64, idx []int) { d.Set(idx[0], idx[1], v) })
	return d
}

// FromMatrix copies m into a new rank-2 array with permutation perm.
func FromMatrix(m mat.Matrix, perm layout.Permutation, opts ...Option) *Array[float64] {
	r, c := m.Dims()
	a := NewWithOptions[float64](perm, []int{r, c}, opts...)
	s := a.ToSlice()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			s.Set(m.At(i, j), i, j)
		}
	}
	return a
}

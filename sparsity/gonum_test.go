// SPDX-License-Identifier: MIT

package sparsity_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/parallel"
	"github.com/katalvlaran/lvarray/sparsity"
)

// laplacian returns the 1D second-difference matrix of order n.
func laplacian(n int, opts ...buffer.Option) *sparsity.CRSMatrix[float64, int] {
	m := sparsity.NewCRS[float64, int](n, n, 3, opts...)
	for i := 0; i < n; i++ {
		if i > 0 {
			m.InsertNonZero(i, i-1, -1)
		}
		m.InsertNonZero(i, i, 2)
		if i+1 < n {
			m.InsertNonZero(i, i+1, -1)
		}
	}
	return m
}

func TestAsGonumMatchesDense(t *testing.T) {
	m := laplacian(5)
	m.InsertNonZero(0, 4, 0.5)
	d := sparsity.ToDense(m)
	g := sparsity.AsGonum(m)

	r, c := g.Dims()
	require.Equal(t, 5, r)
	require.Equal(t, 5, c)
	require.True(t, mat.Equal(d, g))
	require.Equal(t, 0.5, g.At(0, 4))
	require.Equal(t, 0.5, g.T().At(4, 0))
	require.Equal(t, 0.0, g.At(4, 0))
	require.Panics(t, func() { g.At(5, 0) })
}

func TestMulVec(t *testing.T) {
	const n = 40
	x := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x.SetVec(i, float64(i*i))
	}
	var want mat.VecDense
	want.MulVec(sparsity.ToDense(laplacian(n)), x)

	for _, p := range []parallel.Policy{parallel.Serial, parallel.Host} {
		got := sparsity.MulVec(p, laplacian(n), x)
		require.True(t, mat.EqualApprox(&want, got, 1e-12), "policy %s", p)
	}

	got := sparsity.MulVec(parallel.Device, laplacian(n, buffer.WithSpaces()), x)
	require.True(t, mat.EqualApprox(&want, got, 1e-12))

	require.Panics(t, func() { sparsity.MulVec(parallel.Serial, laplacian(3), x) })
}

// SPDX-License-Identifier: MIT

package sparsity

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvarray/internal/check"
	"github.com/katalvlaran/lvarray/parallel"
)

// matrix adapts a float64 CRSMatrix to mat.Matrix. Unstored entries read
// as zero.
type matrix[C Integer] struct{ m *CRSMatrix[float64, C] }

// AsGonum returns a read-only mat.Matrix backed by m. Structural changes to
// m are visible through it.
func AsGonum[C Integer](m *CRSMatrix[float64, C]) mat.Matrix { return matrix[C]{m} }

func (a matrix[C]) Dims() (r, c int) { return a.m.NumRows(), a.m.NumColumns() }

func (a matrix[C]) At(i, j int) float64 {
	check.Index(i, a.m.NumRows(), "row")
	v, _ := a.m.At(i, C(j))
	return v
}

func (a matrix[C]) T() mat.Matrix { return mat.Transpose{Matrix: a} }

// ToDense copies m into a dense gonum matrix.
func ToDense[C Integer](m *CRSMatrix[float64, C]) *mat.Dense {
	r, c := m.NumRows(), m.NumColumns()
	if r == 0 || c == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(r, c, nil)
	m.EachNonZero(func(row int, col C, v float64) { d.Set(row, int(col), v) })
	return d
}

// MulVec returns m*x, one row per loop iteration under policy. The matrix is
// made resident in the policy space first.
func MulVec[C Integer](policy parallel.Policy, m *CRSMatrix[float64, C], x mat.Vector) *mat.VecDense {
	check.If(x.Len() != m.NumColumns(), "vector of length %d for %d columns", x.Len(), m.NumColumns())
	y := make([]float64, m.NumRows())
	m.ToViewConst().Move(policy.Space())
	m.Rows(policy, func(row int, cols []C, entries []float64) {
		var sum float64
		for k, c := range cols {
			sum += entries[k] * x.AtVec(int(c))
		}
		y[row] = sum
	})
	if len(y) == 0 {
		return &mat.VecDense{}
	}
	return mat.NewVecDense(len(y), y)
}

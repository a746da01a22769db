// SPDX-License-Identifier: MIT

package sparsity_test

import (
	"fmt"

	"github.com/katalvlaran/lvarray/sparsity"
)

func ExampleSparsityPattern() {
	p := sparsity.New[int](3, 5, 0)
	fmt.Println(p.InsertNonZero(0, 2), p.InsertNonZero(0, 2))
	p.InsertNonZeros(2, 0, 4)
	fmt.Println(p.NumNonZeros(), p.Columns(2))

	offsets, cols := p.CSR()
	fmt.Println(offsets, cols)
	// Output:
	// true false
	// 3 [0 4]
	// [0 1 1 3] [2 0 4]
}

func ExampleCRSMatrix() {
	m := sparsity.NewCRS[float64, int](2, 4, 0)
	m.InsertNonZero(0, 3, 1.5)
	m.InsertNonZero(0, 1, 2)
	m.InsertNonZero(1, 0, -1)
	v, ok := m.At(0, 3)
	fmt.Println(v, ok)
	fmt.Print(m)
	// Output:
	// 1.5 true
	// {
	// 0	{(1, 2), (3, 1.5), }
	// 1	{(0, -1), }
	// }
}

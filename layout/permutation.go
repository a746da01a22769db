// SPDX-License-Identifier: MIT

// Package layout - Permutation value object.
//
// Purpose:
//   - Validate a dimension order once (bijection on [0, N)).
//   - Derive the unit-stride dimension and the stride of every dimension.
//   - Compute linear indices with the USD contributing unmultiplied.
//
// Complexity quicksheet:
//   - New: O(N); UnitStrideDim: O(1); Strides: O(N); LinearIndex: O(N).

package layout

import (
	"fmt"
	"strings"
)

const (
	maxRank = 26 // one letter per dimension in names
	_letter = 'I'
)

// Permutation maps physical storage order to logical dimensions.
// order[k] is the logical dimension stored at physical position k; the zero
// value is not usable, construct with New, Must, Identity or Parse.
type Permutation struct {
	order []int // bijection on [0, len(order)), immutable after construction
}

// Named permutations for rank 1 through 3, spelled like the loop nests they
// make cache friendly.
var (
	I   = Must(0)
	IJ  = Must(0, 1)
	JI  = Must(1, 0)
	IJK = Must(0, 1, 2)
	IKJ = Must(0, 2, 1)
	JIK = Must(1, 0, 2)
	JKI = Must(1, 2, 0)
	KIJ = Must(2, 0, 1)
	KJI = Must(2, 1, 0)
)

// IsValid reports whether order is a bijection on [0, len(order)).
// Complexity: O(N) time and space.
func IsValid(order []int) bool {
	if len(order) == 0 || len(order) > maxRank {
		return false
	}
	seen := make([]bool, len(order))
	for _, d := range order {
		if d < 0 || d >= len(order) || seen[d] {
			return false
		}
		seen[d] = true
	}

	return true
}

// New validates order and returns the resolved Permutation.
// MAIN DESCRIPTION:
//   - Construction-time validation of the bijection property.
//
// Implementation:
//   - Stage 1: reject empty, oversized or non-bijective orders.
//   - Stage 2: copy the order so the caller cannot mutate it afterwards.
//
// Errors:
//   - ErrInvalidPermutation (wrapped with the offending order).
//
// Complexity:
//   - Time O(N), Space O(N).
func New(order ...int) (Permutation, error) {
	if !IsValid(order) {
		return Permutation{}, fmt.Errorf("%w: %v", ErrInvalidPermutation, order)
	}
	cp := make([]int, len(order))
	copy(cp, order)

	return Permutation{order: cp}, nil
}

// Must is New that panics on an invalid order. Use it for literals.
func Must(order ...int) Permutation {
	p, err := New(order...)
	if err != nil {
		panic(err)
	}

	return p
}

// Identity returns the row-major permutation (0, 1, ..., rank-1).
func Identity(rank int) Permutation {
	if rank < 1 || rank > maxRank {
		panic(fmt.Errorf("%w: %d", ErrRank, rank))
	}
	order := make([]int, rank)
	for i := range order {
		order[i] = i
	}

	return Permutation{order: order}
}

// Parse resolves a name such as "IJK" or "lkji" into a Permutation.
// Letter I is dimension 0, J is 1 and so on.
func Parse(name string) (Permutation, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return Permutation{}, fmt.Errorf("%w: empty", ErrUnknownName)
	}
	order := make([]int, len(name))
	for i, r := range name {
		if r < _letter || r >= _letter+maxRank {
			return Permutation{}, fmt.Errorf("%w: %q", ErrUnknownName, name)
		}
		order[i] = int(r - _letter)
	}

	return New(order...)
}

// All enumerates every permutation of the given rank in lexicographic order.
// Complexity: O(rank! * rank).
func All(rank int) []Permutation {
	if rank < 1 || rank > maxRank {
		panic(fmt.Errorf("%w: %d", ErrRank, rank))
	}
	var out []Permutation
	cur := make([]int, 0, rank)
	used := make([]bool, rank)
	var walk func()
	walk = func() {
		if len(cur) == rank {
			out = append(out, Must(cur...))
			return
		}
		for d := 0; d < rank; d++ {
			if used[d] {
				continue
			}
			used[d] = true
			cur = append(cur, d)
			walk()
			cur = cur[:len(cur)-1]
			used[d] = false
		}
	}
	walk()

	return out
}

// Rank returns the number of dimensions.
func (p Permutation) Rank() int { return len(p.order) }

// Order returns a copy of the physical order.
func (p Permutation) Order() []int {
	cp := make([]int, len(p.order))
	copy(cp, p.order)
	return cp
}

// UnitStrideDim returns the logical dimension whose stride is 1.
func (p Permutation) UnitStrideDim() int {
	return p.order[len(p.order)-1]
}

// Strides returns freshly allocated strides for dims.
func (p Permutation) Strides(dims []int) []int {
	strides := make([]int, len(p.order))
	p.StridesInto(dims, strides)
	return strides
}

// StridesInto writes the strides for dims into strides.
// Implementation:
//   - Stage 1: the innermost physical dimension gets stride 1.
//   - Stage 2: walk outwards, each stride is the inner stride times the
//     inner dimension size.
//
// Both slices must have length Rank(); sizes are not validated here.
// Complexity: O(N).
func (p Permutation) StridesInto(dims, strides []int) {
	n := len(p.order)
	if len(dims) != n || len(strides) != n {
		panic(fmt.Sprintf("layout: rank %d permutation given %d dims and %d strides", n, len(dims), len(strides)))
	}
	stride := 1
	for k := n - 1; k >= 0; k-- {
		d := p.order[k]
		strides[d] = stride
		stride *= dims[d]
	}
}

// Size returns the product of dims (1 for an empty product).
func Size(dims []int) int {
	size := 1
	for _, d := range dims {
		size *= d
	}
	return size
}

// Size checks that dims matches the rank of p and returns their product.
func (p Permutation) Size(dims []int) int {
	if len(dims) != len(p.order) {
		panic(fmt.Sprintf("layout: permutation %s has rank %d, got %d dims", p, len(p.order), len(dims)))
	}
	return Size(dims)
}

// Equal reports whether p and q describe the same order.
func (p Permutation) Equal(q Permutation) bool {
	if len(p.order) != len(q.order) {
		return false
	}
	for i := range p.order {
		if p.order[i] != q.order[i] {
			return false
		}
	}
	return true
}

// String spells the permutation with the letters I, J, K, ...
func (p Permutation) String() string {
	var sb strings.Builder
	for _, d := range p.order {
		sb.WriteRune(rune(_letter + d))
	}
	return sb.String()
}

// LinearIndex returns the dot product of indices and strides. The index of
// dimension usd is added unmultiplied; pass usd < 0 when the unit-stride
// dimension is not part of strides.
func LinearIndex(strides []int, usd int, indices ...int) int {
	idx := 0
	for d, i := range indices {
		if d == usd {
			idx += i
			continue
		}
		idx += i * strides[d]
	}
	return idx
}

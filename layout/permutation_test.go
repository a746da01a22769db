// SPDX-License-Identifier: MIT

// Package layout_test verifies permutation validation and stride derivation.
package layout_test

import (
	"sort"
	"testing"

	"github.com/katalvlaran/lvarray/layout"
	"github.com/stretchr/testify/require"
)

// TestIsValid mirrors the bijection checks for ranks 1 through 3.
func TestIsValid(t *testing.T) {
	valid := [][]int{{0}, {0, 1}, {1, 0}, {0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, order := range valid {
		require.True(t, layout.IsValid(order), "%v should be valid", order)
	}

	invalid := [][]int{{}, {1}, {-1}, {1, 1}, {0, 2}, {-1, 0}, {0, 1, 5}, {0, 1, 0}, {-6, 1, 0}}
	for _, order := range invalid {
		require.False(t, layout.IsValid(order), "%v should be invalid", order)
		_, err := layout.New(order...)
		require.ErrorIs(t, err, layout.ErrInvalidPermutation)
	}
}

// TestUnitStrideDim checks the unit-stride dimension of every named permutation.
func TestUnitStrideDim(t *testing.T) {
	cases := map[string]int{
		"I": 0, "IJ": 1, "JI": 0,
		"IJK": 2, "JIK": 2, "IKJ": 1, "KIJ": 1, "JKI": 0, "KJI": 0,
		"IJKL": 3, "JILK": 2, "KLIJ": 1, "LKJI": 0,
	}
	for name, usd := range cases {
		p, err := layout.Parse(name)
		require.NoError(t, err)
		require.Equal(t, usd, p.UnitStrideDim(), name)
		require.Equal(t, name, p.String())
	}
}

// TestParseErrors ensures names outside the alphabet or repeated letters fail.
func TestParseErrors(t *testing.T) {
	_, err := layout.Parse("")
	require.ErrorIs(t, err, layout.ErrUnknownName)

	_, err = layout.Parse("IZ9")
	require.ErrorIs(t, err, layout.ErrUnknownName)

	_, err = layout.Parse("II")
	require.ErrorIs(t, err, layout.ErrInvalidPermutation)
}

// TestStridesAllPermutations checks every permutation of rank <= 4:
// the USD has stride 1 and the strides, ordered physically, rebuild the size.
func TestStridesAllPermutations(t *testing.T) {
	sizes := []int{3, 4, 5, 2}
	expectedCount := map[int]int{1: 1, 2: 2, 3: 6, 4: 24}

	for rank := 1; rank <= 4; rank++ {
		perms := layout.All(rank)
		require.Len(t, perms, expectedCount[rank])

		dims := sizes[:rank]
		for _, p := range perms {
			t.Run(p.String(), func(t *testing.T) {
				strides := p.Strides(dims)
				require.Equal(t, 1, strides[p.UnitStrideDim()])

				order := p.Order()
				outer := order[0]
				require.Equal(t, layout.Size(dims), strides[outer]*dims[outer])

				// Every element maps to a distinct offset in [0, size).
				seen := make(map[int]bool, layout.Size(dims))
				idx := make([]int, rank)
				var walk func(d int)
				walk = func(d int) {
					if d == rank {
						off := layout.LinearIndex(strides, p.UnitStrideDim(), idx...)
						require.GreaterOrEqual(t, off, 0)
						require.Less(t, off, layout.Size(dims))
						require.False(t, seen[off])
						seen[off] = true
						return
					}
					for i := 0; i < dims[d]; i++ {
						idx[d] = i
						walk(d + 1)
					}
				}
				walk(0)
				require.Len(t, seen, layout.Size(dims))
			})
		}
	}
}

// TestStridesKnownValues pins concrete strides for a 2x4x3 array.
func TestStridesKnownValues(t *testing.T) {
	dims := []int{2, 4, 3}
	require.Equal(t, []int{12, 3, 1}, layout.IJK.Strides(dims))
	require.Equal(t, []int{12, 1, 4}, layout.IKJ.Strides(dims))
	require.Equal(t, []int{1, 2, 8}, layout.KJI.Strides(dims))
}

// TestAllLexicographic verifies enumeration order and distinctness.
func TestAllLexicographic(t *testing.T) {
	names := make([]string, 0, 6)
	for _, p := range layout.All(3) {
		names = append(names, p.String())
	}
	require.True(t, sort.StringsAreSorted(names))
	require.Equal(t, []string{"IJK", "IKJ", "JIK", "JKI", "KIJ", "KJI"}, names)
}

// TestOrderIsCopy guards the immutability of a resolved permutation.
func TestOrderIsCopy(t *testing.T) {
	p := layout.Must(1, 0)
	o := p.Order()
	o[0] = 7
	require.Equal(t, []int{1, 0}, p.Order())
	require.True(t, p.Equal(layout.JI))
	require.False(t, p.Equal(layout.IJ))
}

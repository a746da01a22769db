// SPDX-License-Identifier: MIT

package layout

import "errors"

var (
	// ErrInvalidPermutation is returned when an order is not a bijection on [0, N).
	ErrInvalidPermutation = errors.New("layout: invalid permutation")

	// ErrUnknownName is returned by Parse for names outside the I..L alphabet.
	ErrUnknownName = errors.New("layout: unknown permutation name")

	// ErrRank indicates a rank outside the supported range.
	ErrRank = errors.New("layout: rank must be in [1, 26]")
)

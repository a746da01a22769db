// SPDX-License-Identifier: MIT

package sparsity

import "errors"

// Sentinel errors for data that enters from outside the program.
var (
	// ErrInvalidCSR indicates compressed-row arrays that do not describe a
	// valid pattern.
	ErrInvalidCSR = errors.New("sparsity: invalid CSR arrays")

	// ErrInvalidPattern indicates a pattern whose rows are unsorted or hold
	// columns out of range.
	ErrInvalidPattern = errors.New("sparsity: invalid pattern")
)

// SPDX-License-Identifier: MIT

package array

import "errors"

// Sentinel errors returned while parsing the brace text form.
var (
	// ErrSyntax indicates malformed brace structure.
	ErrSyntax = errors.New("array: invalid syntax")

	// ErrMissingDelimiter indicates values or sub-arrays not separated by ','.
	ErrMissingDelimiter = errors.New("array: missing ',' delimiter")

	// ErrUnbalanced indicates a '{' without a matching '}' or the reverse.
	ErrUnbalanced = errors.New("array: unbalanced braces")

	// ErrEmptySubArray indicates a "{}" nested inside a non-empty array.
	ErrEmptySubArray = errors.New("array: empty sub-array")

	// ErrRankMismatch indicates the nesting depth differs from the target rank.
	ErrRankMismatch = errors.New("array: rank mismatch")

	// ErrInconsistentDims indicates sibling sub-arrays of different lengths.
	ErrInconsistentDims = errors.New("array: inconsistent dimensions")

	// ErrInvalidValue indicates a value token the element parser rejected.
	ErrInvalidValue = errors.New("array: invalid value")
)

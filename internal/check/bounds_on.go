// SPDX-License-Identifier: MIT

//go:build !lvarray_nocheck

package check

// BoundsCheck enables per-element bounds checking.
const BoundsCheck = true

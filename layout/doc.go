// SPDX-License-Identifier: MIT

// Package layout resolves dimension permutations into memory layouts.
//
// A Permutation lists the logical dimensions of an array in physical storage
// order, from the outermost (largest stride) to the innermost. The last entry
// is the unit-stride dimension (USD): walking it visits contiguous memory.
//
//	IJK  (0,1,2)  row-major, USD = 2
//	KJI  (2,1,0)  column-major, USD = 0
//	IKJ  (0,2,1)  USD = 1
//
// The permutation is resolved once, at construction, into a small value
// object; Strides and LinearIndex are the only per-call work. Containers in
// array, arrayofarrays and sparsity derive their metadata from it.
package layout

// SPDX-License-Identifier: MIT

// Package lvarray is a library of multidimensional arrays with pluggable
// memory layouts, ragged containers and compressed-row sparsity patterns,
// for host and (simulated) device memory.
//
// What is inside:
//
//	layout/        Permutation: unit-stride dimension, strides, linear index
//	array/         Array (owning), View tiers, Slice, brace text form, gonum export
//	sortedarray/   sorted-unique algorithms with motion callbacks + SortedArray
//	arrayofarrays/ ArrayOfArrays and ArrayOfSets with capacity-bound views
//	sparsity/      SparsityPattern, CRSMatrix, CSR import/export, gonum adapters
//	buffer/        the allocation contract: host and multi-space buffers
//	parallel/      ForAll and ExclusiveScan under Serial, Host or Device policies
//	config/        YAML configuration of the process-wide defaults
//	store/         badger snapshots, zstd compressed and xxhash checked
//	spy/           spy plots (gonum/plot) and numeric pattern summaries
//	cmd/lvarray    command line front end
//
// Quick example, a 2 x 3 column-major array:
//
//	a := array.New[float64](layout.JI, 2, 3)
//	a.Set(1.5, 1, 2)        // element (1, 2)
//	fmt.Println(a.Strides()) // [1 2]
//
// Precondition violations (bad index, column past NumColumns, unsorted
// batch) panic with an "lvarray: " message; per-element bounds checks are
// compiled out with -tags lvarray_nocheck. Input from outside the program
// (text, CSR arrays, YAML, snapshots) returns sentinel errors instead.
//
//	go get github.com/katalvlaran/lvarray
package lvarray

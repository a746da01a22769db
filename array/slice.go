// SPDX-License-Identifier: MIT

package array

import (
	"github.com/katalvlaran/lvarray/internal/check"
	"github.com/katalvlaran/lvarray/layout"
)

// Slice is a non-owning window of rank >= 1 into an array's storage.
// data starts at the slice origin; dims and strides are shared with the
// owner. usd is the unit-stride dimension of the window, negative once it
// has been indexed away.
//
// A Slice is only valid while its owner is not reallocated.
type Slice[T any] struct {
	data    []T
	dims    []int
	strides []int
	usd     int
}

// SliceConst is the read-only counterpart of Slice. A Slice converts to a
// SliceConst through Const; the reverse conversion does not exist.
type SliceConst[T any] struct {
	s Slice[T]
}

// Rank returns the number of dimensions.
func (s Slice[T]) Rank() int { return len(s.dims) }

// Dim returns the extent of dimension d.
func (s Slice[T]) Dim(d int) int {
	check.Index(d, len(s.dims), "dimension")
	return s.dims[d]
}

// Dims returns a copy of the extents.
func (s Slice[T]) Dims() []int { return append([]int(nil), s.dims...) }

// Size returns the number of addressable elements.
func (s Slice[T]) Size() int { return layout.Size(s.dims) }

// UnitStrideDim returns the unit-stride dimension, or a negative value when
// it is no longer part of the window.
func (s Slice[T]) UnitStrideDim() int { return s.usd }

// Index drops the leading dimension and returns the rank-1-lower window at i.
// The offset is i*strides[0], or i itself when dimension 0 is the unit-stride
// dimension. Panics for rank-1 slices; use At.
func (s Slice[T]) Index(i int) Slice[T] {
	check.If(len(s.dims) < 2, "Index on a rank-1 slice, use At")
	check.Index(i, s.dims[0], "dimension 0")
	off := i
	if s.usd != 0 {
		off = i * s.strides[0]
	}
	return Slice[T]{
		data:    s.data[off:],
		dims:    s.dims[1:],
		strides: s.strides[1:],
		usd:     s.usd - 1,
	}
}

// LinearIndex returns the offset of the element at indices from the slice
// origin.
func (s Slice[T]) LinearIndex(indices ...int) int {
	check.Indices(s.dims, indices)
	return layout.LinearIndex(s.strides, s.usd, indices...)
}

// At returns the element at indices.
func (s Slice[T]) At(indices ...int) T { return s.data[s.LinearIndex(indices...)] }

// Set stores v at indices.
func (s Slice[T]) Set(v T, indices ...int) { s.data[s.LinearIndex(indices...)] = v }

// Ref returns a pointer to the element at indices.
func (s Slice[T]) Ref(indices ...int) *T { return &s.data[s.LinearIndex(indices...)] }

// IsContiguous reports whether the window covers one dense run of memory.
// A window that lost its unit-stride dimension never is. Otherwise every
// non-unit stride must not exceed the product of the other extents.
func (s Slice[T]) IsContiguous() bool {
	if s.usd < 0 {
		return false
	}
	n := len(s.dims)
	if n == 1 && s.usd == 0 {
		return true
	}
	for i := 0; i < n; i++ {
		if i == s.usd {
			continue
		}
		prod := 1
		for j := 0; j < n; j++ {
			if j != i {
				prod *= s.dims[j]
			}
		}
		if s.strides[i] > prod {
			return false
		}
	}
	return true
}

// DataIfContiguous returns the dense run backing the window. It panics when
// the window is not contiguous.
func (s Slice[T]) DataIfContiguous() []T {
	check.If(!s.IsContiguous(), "the slice must be contiguous for direct data access")
	return s.data[:s.Size():s.Size()]
}

// Values returns a rank-1 unit-stride window as a plain Go slice sharing
// storage. It panics for any other window.
func (s Slice[T]) Values() []T {
	check.If(len(s.dims) != 1 || s.usd != 0, "only rank-1 unit-stride slices convert to []T")
	return s.data[:s.dims[0]:s.dims[0]]
}

// Each calls fn with every element and its indices in logical row-major
// order. The indices slice is reused between calls.
func (s Slice[T]) Each(fn func(v T, indices []int)) {
	if s.Size() == 0 {
		return
	}
	idx := make([]int, len(s.dims))
	for {
		fn(s.data[layout.LinearIndex(s.strides, s.usd, idx...)], idx)
		d := len(idx) - 1
		for ; d >= 0; d-- {
			idx[d]++
			if idx[d] < s.dims[d] {
				break
			}
			idx[d] = 0
		}
		if d < 0 {
			return
		}
	}
}

// Fill sets every element of the window to v.
func (s Slice[T]) Fill(v T) {
	s.Each(func(_ T, idx []int) { s.data[layout.LinearIndex(s.strides, s.usd, idx...)] = v })
}

// Const returns the read-only form of s.
func (s Slice[T]) Const() SliceConst[T] { return SliceConst[T]{s: s} }

// String formats the window as nested braces in logical order.
func (s Slice[T]) String() string { return format(s) }

// Rank returns the number of dimensions.
func (c SliceConst[T]) Rank() int { return c.s.Rank() }

// Dim returns the extent of dimension d.
func (c SliceConst[T]) Dim(d int) int { return c.s.Dim(d) }

// Dims returns a copy of the extents.
func (c SliceConst[T]) Dims() []int { return c.s.Dims() }

// Size returns the number of addressable elements.
func (c SliceConst[T]) Size() int { return c.s.Size() }

// UnitStrideDim returns the unit-stride dimension or a negative value.
func (c SliceConst[T]) UnitStrideDim() int { return c.s.usd }

// Index returns the read-only window at i of the leading dimension.
func (c SliceConst[T]) Index(i int) SliceConst[T] { return SliceConst[T]{s: c.s.Index(i)} }

// LinearIndex returns the offset of the element at indices.
func (c SliceConst[T]) LinearIndex(indices ...int) int { return c.s.LinearIndex(indices...) }

// At returns the element at indices.
func (c SliceConst[T]) At(indices ...int) T { return c.s.At(indices...) }

// IsContiguous reports whether the window covers one dense run of memory.
func (c SliceConst[T]) IsContiguous() bool { return c.s.IsContiguous() }

// Each calls fn with every element in logical order.
func (c SliceConst[T]) Each(fn func(v T, indices []int)) { c.s.Each(fn) }

// AppendTo appends the elements in logical order to dst.
func (c SliceConst[T]) AppendTo(dst []T) []T {
	c.s.Each(func(v T, _ []int) { dst = append(dst, v) })
	return dst
}

// String formats the window as nested braces.
func (c SliceConst[T]) String() string { return format(c.s) }

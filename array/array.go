// SPDX-License-Identifier: MIT

package array

import (
	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/internal/check"
	"github.com/katalvlaran/lvarray/layout"
)

// Option configures the buffer of a new array.
type Option = buffer.Option

// WithName names the array's buffer for move logs.
func WithName(name string) Option { return buffer.WithName(name) }

// WithSpaces backs the array with a host/device buffer.
func WithSpaces() Option { return buffer.WithSpaces() }

// WithBuffer selects the buffer backend explicitly.
func WithBuffer(k buffer.Kind) Option { return buffer.WithKind(k) }

// Array is an owning rank-N array laid out by a Permutation.
//
// Element storage is one buffer of Size() live values; the strides follow
// from the permutation and the extents. Resizing constructs or destroys only
// the delta range in linear memory order; values are not remapped when
// extents other than the slowest-varying one change.
type Array[T any] struct {
	perm    layout.Permutation
	dims    []int
	strides []int
	size    int
	buf     buffer.Buffer[T]
}

// New allocates a zero-filled array with the given permutation and extents.
// It panics when len(dims) differs from the permutation rank or an extent is
// negative.
func New[T any](perm layout.Permutation, dims ...int) *Array[T] {
	return NewWithOptions[T](perm, dims)
}

// NewWithOptions is New with buffer options.
func NewWithOptions[T any](perm layout.Permutation, dims []int, opts ...Option) *Array[T] {
	check.If(perm.Rank() == 0, "array requires a valid permutation")
	a := &Array[T]{
		perm:    perm,
		dims:    make([]int, perm.Rank()),
		strides: make([]int, perm.Rank()),
		buf:     buffer.Make[T](opts...),
	}
	a.resizeDims(dims)
	return a
}

// FromValues allocates an array and fills it from values given in logical
// row-major order. It panics when len(values) differs from the product of
// dims.
func FromValues[T any](perm layout.Permutation, dims []int, values []T, opts ...Option) *Array[T] {
	a := NewWithOptions[T](perm, dims, opts...)
	check.If(len(values) != a.size, "%d values for dimensions %v", len(values), dims)
	s := a.ToSlice()
	k := 0
	s.Each(func(_ T, idx []int) {
		s.Set(values[k], idx...)
		k++
	})
	return a
}

// FromSlice allocates a rank-1 array holding a copy of values.
func FromSlice[T any](values []T, opts ...Option) *Array[T] {
	a := NewWithOptions[T](layout.I, []int{0}, opts...)
	a.size = buffer.CopyInto(a.buf, 0, values)
	a.dims[0] = a.size
	return a
}

// Permutation returns the layout of the array.
func (a *Array[T]) Permutation() layout.Permutation { return a.perm }

// Rank returns the number of dimensions.
func (a *Array[T]) Rank() int { return len(a.dims) }

// Dims returns a copy of the extents.
func (a *Array[T]) Dims() []int { return append([]int(nil), a.dims...) }

// Strides returns a copy of the strides.
func (a *Array[T]) Strides() []int { return append([]int(nil), a.strides...) }

// Dim returns the extent of dimension d.
func (a *Array[T]) Dim(d int) int {
	check.Index(d, len(a.dims), "dimension")
	return a.dims[d]
}

// Size returns the number of elements.
func (a *Array[T]) Size() int { return a.size }

// Empty reports whether the array has no elements.
func (a *Array[T]) Empty() bool { return a.size == 0 }

// Capacity returns the number of allocated element slots.
func (a *Array[T]) Capacity() int { return a.buf.Capacity() }

// Data returns the live values in memory order. The result aliases the
// buffer until the next reallocation.
func (a *Array[T]) Data() []T { return a.buf.Data()[:a.size] }

// Name returns the buffer name.
func (a *Array[T]) Name() string { return a.buf.Name() }

// SetName names the buffer for move logs.
func (a *Array[T]) SetName(name string) { a.buf.SetName(name) }

// Space returns where the current copy of the values lives.
func (a *Array[T]) Space() buffer.MemorySpace { return a.buf.Space() }

// Move makes the values resident in space; touch marks other copies stale.
func (a *Array[T]) Move(space buffer.MemorySpace, touch bool) { a.buf.Move(space, touch) }

// ToSlice returns a mutable window over the whole array.
func (a *Array[T]) ToSlice() Slice[T] {
	return Slice[T]{data: a.buf.Data(), dims: a.dims, strides: a.strides, usd: a.perm.UnitStrideDim()}
}

// ToSliceConst returns a read-only window over the whole array.
func (a *Array[T]) ToSliceConst() SliceConst[T] { return a.ToSlice().Const() }

// Index returns the window at i of dimension 0. Panics for rank 1.
func (a *Array[T]) Index(i int) Slice[T] { return a.ToSlice().Index(i) }

// At returns the element at indices.
func (a *Array[T]) At(indices ...int) T { return a.ToSlice().At(indices...) }

// Set stores v at indices.
func (a *Array[T]) Set(v T, indices ...int) { a.ToSlice().Set(v, indices...) }

// Ref returns a pointer to the element at indices.
func (a *Array[T]) Ref(indices ...int) *T { return a.ToSlice().Ref(indices...) }

// Fill sets every element to v.
func (a *Array[T]) Fill(v T) { buffer.Construct(a.Data(), v) }

// String formats the array as nested braces in logical order. A zero extent
// below the outermost level prints as "{ {}, {} }", which Parse rejects.
func (a *Array[T]) String() string { return format(a.ToSlice()) }

// Copy returns a deep copy with its own buffer of the same backend.
func (a *Array[T]) Copy() *Array[T] {
	return &Array[T]{
		perm:    a.perm,
		dims:    a.Dims(),
		strides: a.Strides(),
		size:    a.size,
		buf:     buffer.Clone(a.buf, a.size, a.size),
	}
}

// CopyFrom replaces the contents of a with a deep copy of src. Both arrays
// must share a permutation.
func (a *Array[T]) CopyFrom(src *Array[T]) {
	if a == src {
		return
	}
	check.If(!a.perm.Equal(src.perm), "cannot copy a %s array into a %s array", src.perm, a.perm)
	a.size = buffer.CopyInto(a.buf, a.size, src.Data())
	copy(a.dims, src.dims)
	copy(a.strides, src.strides)
}

// MoveFrom frees a, adopts the storage of src and leaves src empty.
func (a *Array[T]) MoveFrom(src *Array[T]) {
	if a == src {
		return
	}
	check.If(!a.perm.Equal(src.perm), "cannot move a %s array into a %s array", src.perm, a.perm)
	a.buf.Free()
	a.buf, a.size = src.buf, src.size
	copy(a.dims, src.dims)
	copy(a.strides, src.strides)

	src.buf = src.buf.Empty()
	src.size = 0
	clear(src.dims)
	src.perm.StridesInto(src.dims, src.strides)
}

// Free destroys every element, releases the buffer and zeroes the extents.
func (a *Array[T]) Free() {
	buffer.Destroy(a.Data())
	a.buf.Free()
	a.size = 0
	clear(a.dims)
	a.perm.StridesInto(a.dims, a.strides)
}

// Resize changes every extent. Grown slots are zero, shrunk slots
// destroyed; capacity grows to exactly the new size when needed.
func (a *Array[T]) Resize(dims ...int) { a.resizeDims(dims) }

// ResizeDim changes the extent of one dimension.
func (a *Array[T]) ResizeDim(d, n int) {
	check.Index(d, len(a.dims), "dimension")
	dims := a.Dims()
	dims[d] = n
	a.resizeDims(dims)
}

// ResizeWith is Resize where grown slot i (in memory order) is built by
// fill(i). If fill fails the slots it built are destroyed, the extents are
// left unchanged and the error is returned. Capacity may have grown.
func (a *Array[T]) ResizeWith(fill func(i int) (T, error), dims ...int) error {
	newSize := a.checkDims(dims)
	n, err := buffer.ResizeWith(a.buf, a.size, newSize, fill)
	if err != nil {
		return err
	}
	a.size = n
	copy(a.dims, dims)
	a.perm.StridesInto(a.dims, a.strides)
	return nil
}

// Reserve makes room for n elements without changing the extents.
func (a *Array[T]) Reserve(n int) {
	check.NonNegative(n, "capacity")
	buffer.Reserve(a.buf, a.size, n)
}

// Clear destroys every element and sets dimension 0 to zero, keeping the
// other extents and the capacity.
func (a *Array[T]) Clear() {
	buffer.Destroy(a.Data())
	a.size = 0
	a.dims[0] = 0
	a.perm.StridesInto(a.dims, a.strides)
}

// EmplaceBack appends v to a rank-1 array, growing the capacity
// geometrically.
func (a *Array[T]) EmplaceBack(v T) {
	a.checkRank1("EmplaceBack")
	a.size = buffer.EmplaceBack(a.buf, a.size, v)
	a.dims[0] = a.size
}

// Insert places vals at pos of a rank-1 array.
func (a *Array[T]) Insert(pos int, vals ...T) {
	a.checkRank1("Insert")
	a.size = buffer.InsertValues(a.buf, a.size, pos, vals...)
	a.dims[0] = a.size
}

// Erase removes the element at pos of a rank-1 array.
func (a *Array[T]) Erase(pos int) {
	a.checkRank1("Erase")
	check.Index(pos, a.size, "array")
	a.size = buffer.Erase(a.buf, a.size, pos, 1)
	a.dims[0] = a.size
}

// PopBack removes the last element of a non-empty rank-1 array.
func (a *Array[T]) PopBack() {
	a.checkRank1("PopBack")
	check.If(a.size == 0, "PopBack on an empty array")
	a.size = buffer.Erase(a.buf, a.size, a.size-1, 1)
	a.dims[0] = a.size
}

func (a *Array[T]) checkRank1(op string) {
	check.If(len(a.dims) != 1, "%s requires a rank-1 array, got rank %d", op, len(a.dims))
}

func (a *Array[T]) checkDims(dims []int) int {
	check.If(len(dims) != len(a.dims), "got %d dims for a rank-%d array", len(dims), len(a.dims))
	for _, d := range dims {
		check.NonNegative(d, "dimension")
	}
	return layout.Size(dims)
}

func (a *Array[T]) resizeDims(dims []int) {
	newSize := a.checkDims(dims)
	var zero T
	a.size = buffer.Resize(a.buf, a.size, newSize, zero)
	copy(a.dims, dims)
	a.perm.StridesInto(a.dims, a.strides)
}

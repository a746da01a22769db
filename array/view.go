// SPDX-License-Identifier: MIT

package array

import (
	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/layout"
)

// View borrows an Array with mutable values and a resizable shape. It can
// reallocate the owner's buffer, so it must not be used inside a parallel
// region while resizing.
type View[T any] struct{ a *Array[T] }

// ViewConstSizes borrows an Array with mutable values and a fixed shape.
type ViewConstSizes[T any] struct{ a *Array[T] }

// ViewConst borrows an Array read-only.
type ViewConst[T any] struct{ a *Array[T] }

// ToView returns the most permissive view.
func (a *Array[T]) ToView() View[T] { return View[T]{a} }

// ToViewConstSizes returns a view that cannot change the shape.
func (a *Array[T]) ToViewConstSizes() ViewConstSizes[T] { return ViewConstSizes[T]{a} }

// ToViewConst returns a read-only view.
func (a *Array[T]) ToViewConst() ViewConst[T] { return ViewConst[T]{a} }

// ToViewConstSizes narrows v.
func (v View[T]) ToViewConstSizes() ViewConstSizes[T] { return ViewConstSizes[T](v) }

// ToViewConst narrows v.
func (v View[T]) ToViewConst() ViewConst[T] { return ViewConst[T](v) }

// ToViewConst narrows v.
func (v ViewConstSizes[T]) ToViewConst() ViewConst[T] { return ViewConst[T](v) }

func (v View[T]) Rank() int                             { return v.a.Rank() }
func (v View[T]) Dims() []int                           { return v.a.Dims() }
func (v View[T]) Dim(d int) int                         { return v.a.Dim(d) }
func (v View[T]) Size() int                             { return v.a.Size() }
func (v View[T]) Capacity() int                         { return v.a.Capacity() }
func (v View[T]) Permutation() layout.Permutation       { return v.a.perm }
func (v View[T]) Data() []T                             { return v.a.Data() }
func (v View[T]) At(indices ...int) T                   { return v.a.At(indices...) }
func (v View[T]) Set(x T, indices ...int)               { v.a.Set(x, indices...) }
func (v View[T]) Ref(indices ...int) *T                 { return v.a.Ref(indices...) }
func (v View[T]) Index(i int) Slice[T]                  { return v.a.Index(i) }
func (v View[T]) ToSlice() Slice[T]                     { return v.a.ToSlice() }
func (v View[T]) ToSliceConst() SliceConst[T]           { return v.a.ToSliceConst() }
func (v View[T]) Move(s buffer.MemorySpace, touch bool) { v.a.Move(s, touch) }
func (v View[T]) String() string                        { return v.a.String() }

// Resize changes the extents through the view. Capacity grows to exactly
// the new size when needed; no slack is added.
func (v View[T]) Resize(dims ...int) { v.a.Resize(dims...) }

func (v ViewConstSizes[T]) Rank() int                             { return v.a.Rank() }
func (v ViewConstSizes[T]) Dims() []int                           { return v.a.Dims() }
func (v ViewConstSizes[T]) Dim(d int) int                         { return v.a.Dim(d) }
func (v ViewConstSizes[T]) Size() int                             { return v.a.Size() }
func (v ViewConstSizes[T]) Data() []T                             { return v.a.Data() }
func (v ViewConstSizes[T]) At(indices ...int) T                   { return v.a.At(indices...) }
func (v ViewConstSizes[T]) Set(x T, indices ...int)               { v.a.Set(x, indices...) }
func (v ViewConstSizes[T]) Ref(indices ...int) *T                 { return v.a.Ref(indices...) }
func (v ViewConstSizes[T]) Index(i int) Slice[T]                  { return v.a.Index(i) }
func (v ViewConstSizes[T]) ToSlice() Slice[T]                     { return v.a.ToSlice() }
func (v ViewConstSizes[T]) ToSliceConst() SliceConst[T]           { return v.a.ToSliceConst() }
func (v ViewConstSizes[T]) Move(s buffer.MemorySpace, touch bool) { v.a.Move(s, touch) }
func (v ViewConstSizes[T]) String() string                        { return v.a.String() }

func (v ViewConst[T]) Rank() int                   { return v.a.Rank() }
func (v ViewConst[T]) Dims() []int                 { return v.a.Dims() }
func (v ViewConst[T]) Dim(d int) int               { return v.a.Dim(d) }
func (v ViewConst[T]) Size() int                   { return v.a.Size() }
func (v ViewConst[T]) At(indices ...int) T         { return v.a.At(indices...) }
func (v ViewConst[T]) Index(i int) SliceConst[T]   { return v.a.Index(i).Const() }
func (v ViewConst[T]) ToSliceConst() SliceConst[T] { return v.a.ToSliceConst() }
func (v ViewConst[T]) String() string              { return v.a.String() }

// Move makes the values resident in space. A read-only view never marks
// other copies stale.
func (v ViewConst[T]) Move(space buffer.MemorySpace) { v.a.Move(space, false) }

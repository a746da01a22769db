// SPDX-License-Identifier: MIT

package rows

import (
	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/internal/check"
)

// RowCallbacks lets the sorted-set algorithms operate on one row of a Store.
// Value motion inside the row is replayed on the companion, if any.
type RowCallbacks[T any] struct {
	S   *Store[T]
	Row int

	// Fixed forbids growing the row; running out of capacity is fatal.
	Fixed bool

	// OnInsert, when set, is told the absolute slot of every inserted value
	// and its index in the caller's batch.
	OnInsert func(src, slot int)
}

// IncrementSize makes room for n more values in the row and returns the
// row's slots.
func (c RowCallbacks[T]) IncrementSize(_ []T, n int) []T {
	newSize := c.S.SizeOf(c.Row) + n
	if c.Fixed {
		check.If(newSize > c.S.CapacityOf(c.Row),
			"array %d needs capacity %d, has %d; capacity is fixed through a view", c.Row, newSize, c.S.CapacityOf(c.Row))
	} else {
		c.S.EnsureCapacity(c.Row, newSize)
	}
	return c.S.RowFull(c.Row)
}

// Shifted mirrors a move of n values by delta onto the companion.
func (c RowCallbacks[T]) Shifted(from, n, delta int) {
	if c.S.Companion != nil && n > 0 {
		off := c.S.Offset(c.Row) + from
		c.S.Companion.Shift(off, off+delta, n)
	}
}

// Inserted forwards the placement of batch value src to OnInsert.
func (c RowCallbacks[T]) Inserted(src, pos int) {
	if c.OnInsert != nil {
		c.OnInsert(src, c.S.Offset(c.Row)+pos)
	}
}

// Cleared mirrors destroyed slots onto the companion.
func (c RowCallbacks[T]) Cleared(from, to int) {
	if c.S.Companion != nil {
		off := c.S.Offset(c.Row)
		c.S.Companion.Clear(off+from, off+to)
	}
}

// SliceCompanion is a Companion backed by a buffer of any element type.
type SliceCompanion[E any] struct {
	Buf buffer.Buffer[E]
}

func (c SliceCompanion[E]) Grow(size, capacity int) {
	if capacity != c.Buf.Capacity() {
		c.Buf.Reallocate(min(size, c.Buf.Capacity()), capacity)
	}
}

func (c SliceCompanion[E]) Shift(from, to, n int) {
	d := c.Buf.Data()
	copy(d[to:to+n], d[from:from+n])
}

func (c SliceCompanion[E]) Clear(from, to int) { clear(c.Buf.Data()[from:to]) }

func (c SliceCompanion[E]) Free() { c.Buf.Free() }

// SPDX-License-Identifier: MIT

package buffer

import "github.com/katalvlaran/lvarray/internal/check"

// Construct sets every slot of s to v.
func Construct[T any](s []T, v T) {
	for i := range s {
		s[i] = v
	}
}

// Destroy resets every slot of s to the zero value so the buffer does not
// retain references held by removed elements.
func Destroy[T any](s []T) { clear(s) }

// ConstructWith fills s[i] = fill(base+i) in order. When fill fails the slots
// it already constructed are destroyed and the error is returned.
func ConstructWith[T any](s []T, base int, fill func(i int) (T, error)) error {
	for i := range s {
		v, err := fill(base + i)
		if err != nil {
			Destroy(s[:i])
			return err
		}
		s[i] = v
	}
	return nil
}

// Reserve grows b to exactly newCapacity when it is smaller, keeping size
// live elements. It never shrinks.
func Reserve[T any](b Buffer[T], size, newCapacity int) {
	if newCapacity > b.Capacity() {
		b.Reallocate(size, newCapacity)
	}
}

// DynamicReserve grows b to at least newCapacity, doubling the current
// capacity when that is larger.
func DynamicReserve[T any](b Buffer[T], size, newCapacity int) {
	if newCapacity > b.Capacity() {
		b.Reallocate(size, max(newCapacity, 2*b.Capacity()))
	}
}

// EmplaceBack appends v after the size live elements and returns the new size.
func EmplaceBack[T any](b Buffer[T], size int, v T) int {
	DynamicReserve(b, size, size+1)
	b.Data()[size] = v
	return size + 1
}

// Emplace inserts v at pos, shifting [pos, size) up by one, and returns the
// new size.
func Emplace[T any](b Buffer[T], size, pos int, v T) int {
	check.InsertIndex(pos, size, "buffer")
	DynamicReserve(b, size, size+1)
	data := b.Data()
	copy(data[pos+1:size+1], data[pos:size])
	data[pos] = v
	return size + 1
}

// InsertValues inserts vals at pos, shifting the tail up, and returns the new
// size.
func InsertValues[T any](b Buffer[T], size, pos int, vals ...T) int {
	check.InsertIndex(pos, size, "buffer")
	n := len(vals)
	if n == 0 {
		return size
	}
	DynamicReserve(b, size, size+n)
	data := b.Data()
	copy(data[pos+n:size+n], data[pos:size])
	copy(data[pos:pos+n], vals)
	return size + n
}

// Erase removes n elements starting at pos and returns the new size.
func Erase[T any](b Buffer[T], size, pos, n int) int {
	check.NonNegative(n, "erase count")
	check.If(pos < 0 || pos+n > size, "erase range [%d, %d) out of range [0, %d]", pos, pos+n, size)
	data := b.Data()
	copy(data[pos:], data[pos+n:size])
	Destroy(data[size-n : size])
	return size - n
}

// Resize sets the number of live elements to newSize. Grown slots are set to
// v and shrunk slots destroyed. Capacity grows to exactly newSize if needed.
func Resize[T any](b Buffer[T], size, newSize int, v T) int {
	check.NonNegative(newSize, "size")
	Reserve(b, size, newSize)
	data := b.Data()
	if newSize > size {
		Construct(data[size:newSize], v)
	} else {
		Destroy(data[newSize:size])
	}
	return newSize
}

// ResizeWith is Resize where grown slot i is constructed by fill(i). On
// failure the slots built by this call are destroyed and size is returned
// unchanged with the error; capacity may have grown.
func ResizeWith[T any](b Buffer[T], size, newSize int, fill func(i int) (T, error)) (int, error) {
	check.NonNegative(newSize, "size")
	if newSize <= size {
		Destroy(b.Data()[newSize:size])
		return newSize, nil
	}
	Reserve(b, size, newSize)
	if err := ConstructWith(b.Data()[size:newSize], size, fill); err != nil {
		return size, err
	}
	return newSize, nil
}

// CopyInto replaces the size live elements of dst with src and returns
// len(src). Stale slots past len(src) are destroyed.
func CopyInto[T any](dst Buffer[T], size int, src []T) int {
	Reserve(dst, 0, len(src))
	data := dst.Data()
	copy(data, src)
	if size > len(src) {
		Destroy(data[len(src):size])
	}
	return len(src)
}

// Clone returns a new buffer of the same backend holding a copy of the first
// size elements of b, with capacity exactly capacity.
func Clone[T any](b Buffer[T], size, capacity int) Buffer[T] {
	out := b.Empty()
	if capacity > 0 {
		out.Reallocate(0, capacity)
		copy(out.Data(), b.Data()[:size])
	}
	return out
}

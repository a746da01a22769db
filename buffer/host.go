// SPDX-License-Identifier: MIT

package buffer

import "github.com/katalvlaran/lvarray/internal/check"

// hostBuffer is a slice-backed buffer resident in host memory only.
type hostBuffer[T any] struct {
	data []T
	name string
}

// NewHost returns an empty host-only buffer.
func NewHost[T any]() Buffer[T] { return &hostBuffer[T]{} }

func (b *hostBuffer[T]) Data() []T     { return b.data }
func (b *hostBuffer[T]) Capacity() int { return len(b.data) }

func (b *hostBuffer[T]) Reallocate(size, newCapacity int) {
	checkRealloc(size, len(b.data), newCapacity)
	next := make([]T, newCapacity)
	copy(next, b.data[:size])
	b.data = next
}

func (b *hostBuffer[T]) Free()               { b.data = nil }
func (b *hostBuffer[T]) SetName(name string) { b.name = name }
func (b *hostBuffer[T]) Name() string        { return b.name }
func (b *hostBuffer[T]) Space() MemorySpace  { return Host }
func (b *hostBuffer[T]) MultiSpace() bool    { return false }
func (b *hostBuffer[T]) Empty() Buffer[T]    { return &hostBuffer[T]{name: b.name} }

func (b *hostBuffer[T]) Move(space MemorySpace, _ bool) {
	check.If(space != Host, "buffer %q is host only, cannot move to %s", b.name, space)
}

func checkRealloc(size, capacity, newCapacity int) {
	check.NonNegative(size, "buffer size")
	check.NonNegative(newCapacity, "buffer capacity")
	check.If(size > capacity || size > newCapacity,
		"cannot keep %d elements when reallocating from %d to %d", size, capacity, newCapacity)
}

// SPDX-License-Identifier: MIT

package buffer

// spacesBuffer keeps one copy of the contents per memory space.
// valid[s] reports whether copies[s] holds the current contents; at least the
// copy in current is always valid.
type spacesBuffer[T any] struct {
	copies  [numSpaces][]T
	valid   [numSpaces]bool
	current MemorySpace
	name    string
}

// NewSpaces returns an empty buffer that can be moved between spaces.
func NewSpaces[T any]() Buffer[T] {
	b := &spacesBuffer[T]{}
	b.valid[Host] = true
	return b
}

func (b *spacesBuffer[T]) Data() []T     { return b.copies[b.current] }
func (b *spacesBuffer[T]) Capacity() int { return len(b.copies[b.current]) }

// Reallocate resizes the current copy. The copies in other spaces are
// released: they would have the wrong capacity anyway.
func (b *spacesBuffer[T]) Reallocate(size, newCapacity int) {
	cur := b.copies[b.current]
	checkRealloc(size, len(cur), newCapacity)
	next := make([]T, newCapacity)
	copy(next, cur[:size])
	for s := range b.copies {
		b.copies[s] = nil
		b.valid[s] = false
	}
	b.copies[b.current] = next
	b.valid[b.current] = true
}

func (b *spacesBuffer[T]) Free() {
	for s := range b.copies {
		b.copies[s] = nil
		b.valid[s] = false
	}
	b.valid[b.current] = true
}

func (b *spacesBuffer[T]) SetName(name string) { b.name = name }
func (b *spacesBuffer[T]) Name() string        { return b.name }
func (b *spacesBuffer[T]) Space() MemorySpace  { return b.current }
func (b *spacesBuffer[T]) MultiSpace() bool    { return true }

func (b *spacesBuffer[T]) Empty() Buffer[T] {
	e := NewSpaces[T]().(*spacesBuffer[T])
	e.name = b.name
	return e
}

// Valid reports whether the copy in space is up to date.
func (b *spacesBuffer[T]) Valid(space MemorySpace) bool { return b.valid[space] }

func (b *spacesBuffer[T]) Move(space MemorySpace, touch bool) {
	if !b.valid[space] {
		src := b.copies[b.current]
		dst := b.copies[space]
		if len(dst) != len(src) {
			dst = make([]T, len(src))
		}
		copy(dst, src)
		b.copies[space] = dst
		b.valid[space] = true
		logMove[T](b.name, len(src), b.current, space)
	}
	if touch {
		for s := range b.valid {
			if MemorySpace(s) != space {
				b.valid[s] = false
			}
		}
	}
	b.current = space
}

// IsValidIn reports whether b holds current contents in space. Host buffers
// are only ever valid on the host.
func IsValidIn[T any](b Buffer[T], space MemorySpace) bool {
	if sb, ok := b.(*spacesBuffer[T]); ok {
		return sb.Valid(space)
	}
	return space == Host
}

// SPDX-License-Identifier: MIT

// Package rows implements the storage shared by every ragged container:
// a values buffer partitioned into rows by an offsets buffer, with a live
// size per row.
//
// Invariants, for i in [0, NumArrays):
//
//	offsets[0] == 0
//	offsets[i] <= offsets[i+1]
//	0 <= sizes[i] <= offsets[i+1] - offsets[i]
//
// Slots of row i past sizes[i] are unconstructed (zero). Sizes are int64 so
// a row can be appended to atomically inside a parallel region.
//
// A Companion can ride along with the values: every block motion performed
// here is replayed on it so its slot k always belongs to values slot k.
package rows

import (
	"fmt"

	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/internal/check"
	"github.com/katalvlaran/lvarray/parallel"
)

// Companion is storage kept in lockstep with the values buffer.
type Companion interface {
	// Grow reallocates to capacity slots keeping the first size.
	Grow(size, capacity int)
	// Shift copies n slots from from to to; the ranges may overlap.
	Shift(from, to, n int)
	// Clear resets the slots [from, to).
	Clear(from, to int)
	// Free releases the storage.
	Free()
}

// Store is the ragged storage. The zero value is not usable; call Init.
type Store[T any] struct {
	NumArrays int
	Offsets   buffer.Buffer[int]
	Sizes     buffer.Buffer[int64]
	Values    buffer.Buffer[T]

	// Companion, when set, mirrors every motion of Values.
	Companion Companion

	// Growth returns the capacity a row is given when newSize overflows it.
	// Nil means 2*newSize.
	Growth func(newSize int) int
}

// Init allocates the buffers of an empty store.
func (s *Store[T]) Init(opts ...buffer.Option) {
	s.NumArrays = 0
	s.Offsets = buffer.Make[int](opts...)
	s.Sizes = buffer.Make[int64](opts...)
	s.Values = buffer.Make[T](opts...)
	s.SetName(s.Values.Name())
	buffer.EmplaceBack(s.Offsets, 0, 0)
}

// SetName names the three buffers, suffixed by their role.
func (s *Store[T]) SetName(name string) {
	s.Offsets.SetName(name + "/offsets")
	s.Sizes.SetName(name + "/sizes")
	s.Values.SetName(name + "/values")
}

// Name returns the name given to SetName.
func (s *Store[T]) Name() string {
	n := s.Values.Name()
	if len(n) >= len("/values") {
		return n[:len(n)-len("/values")]
	}
	return n
}

func (s *Store[T]) offsets() []int { return s.Offsets.Data() }
func (s *Store[T]) sizes() []int64 { return s.Sizes.Data() }
func (s *Store[T]) extent() int    { return s.offsets()[s.NumArrays] }

// CheckRow panics when i is not a row index. Guarded by BoundsCheck.
func (s *Store[T]) CheckRow(i int) { check.Index(i, s.NumArrays, "array") }

// SizeOf returns the number of live values in row i.
func (s *Store[T]) SizeOf(i int) int {
	s.CheckRow(i)
	return int(s.sizes()[i])
}

// CapacityOf returns the number of slots of row i.
func (s *Store[T]) CapacityOf(i int) int {
	s.CheckRow(i)
	o := s.offsets()
	return o[i+1] - o[i]
}

// Offset returns the first slot of row i.
func (s *Store[T]) Offset(i int) int { return s.offsets()[i] }

// SizePtr returns the size counter of row i for atomic updates.
func (s *Store[T]) SizePtr(i int) *int64 {
	s.CheckRow(i)
	return &s.sizes()[i]
}

// SetSize stores the live size of row i.
func (s *Store[T]) SetSize(i, n int) { s.sizes()[i] = int64(n) }

// Row returns the live values of row i.
func (s *Store[T]) Row(i int) []T {
	s.CheckRow(i)
	o := s.offsets()
	end := o[i] + int(s.sizes()[i])
	return s.Values.Data()[o[i]:end:end]
}

// RowFull returns every slot of row i, live or not.
func (s *Store[T]) RowFull(i int) []T {
	s.CheckRow(i)
	o := s.offsets()
	return s.Values.Data()[o[i]:o[i+1]:o[i+1]]
}

// ValueCapacity returns the number of allocated value slots.
func (s *Store[T]) ValueCapacity() int { return s.Values.Capacity() }

// ArrayCapacity returns the number of rows the offsets can hold.
func (s *Store[T]) ArrayCapacity() int { return s.Sizes.Capacity() }

// TotalSize returns the number of live values across all rows.
func (s *Store[T]) TotalSize() int {
	n := 0
	for _, sz := range s.sizes()[:s.NumArrays] {
		n += int(sz)
	}
	return n
}

// reserveValues grows the values buffer to hold capacity slots, doubling
// when dynamic is set.
func (s *Store[T]) reserveValues(capacity int, dynamic bool) {
	if capacity <= s.Values.Capacity() {
		return
	}
	if dynamic {
		capacity = max(capacity, 2*s.Values.Capacity())
	}
	ext := s.extent()
	s.Values.Reallocate(ext, capacity)
	if s.Companion != nil {
		s.Companion.Grow(ext, capacity)
	}
}

func (s *Store[T]) shift(from, to, n int) {
	if n == 0 || from == to {
		return
	}
	v := s.Values.Data()
	copy(v[to:to+n], v[from:from+n])
	if s.Companion != nil {
		s.Companion.Shift(from, to, n)
	}
}

func (s *Store[T]) clearValues(from, to int) {
	if from >= to {
		return
	}
	clear(s.Values.Data()[from:to])
	if s.Companion != nil {
		s.Companion.Clear(from, to)
	}
}

// Reserve makes room for n rows.
func (s *Store[T]) Reserve(n int) {
	check.NonNegative(n, "array capacity")
	buffer.Reserve(s.Offsets, s.NumArrays+1, n+1)
	buffer.Reserve(s.Sizes, s.NumArrays, n)
}

// ReserveValues makes room for n values across all rows.
func (s *Store[T]) ReserveValues(n int) {
	check.NonNegative(n, "value capacity")
	s.reserveValues(n, false)
}

// SetCapacityOfArray gives row i exactly c slots. Growing shifts the values
// of every later row up; shrinking destroys the values past c and shifts
// later rows down. Both cost O(values to the right of row i).
func (s *Store[T]) SetCapacityOfArray(i, c int) {
	s.CheckRow(i)
	check.NonNegative(c, "array capacity")
	o := s.offsets()
	delta := c - (o[i+1] - o[i])
	if delta == 0 {
		return
	}
	ext := s.extent()
	if delta > 0 {
		s.reserveValues(ext+delta, true)
		o = s.offsets()
		s.shift(o[i+1], o[i+1]+delta, ext-o[i+1])
		s.clearValues(o[i+1], o[i+1]+delta)
	} else {
		if sz := s.sizes(); int(sz[i]) > c {
			s.clearValues(o[i]+c, o[i]+int(sz[i]))
			sz[i] = int64(c)
		}
		s.shift(o[i+1], o[i+1]+delta, ext-o[i+1])
		s.clearValues(ext+delta, ext)
	}
	for k := i + 1; k <= s.NumArrays; k++ {
		o[k] += delta
	}
}

// EnsureCapacity makes room for newSize values in row i, applying the growth
// policy when the row overflows.
func (s *Store[T]) EnsureCapacity(i, newSize int) {
	if newSize <= s.CapacityOf(i) {
		return
	}
	c := 2 * newSize
	if s.Growth != nil {
		c = s.Growth(newSize)
	}
	check.If(c < newSize, "growth policy gave capacity %d for %d values", c, newSize)
	s.SetCapacityOfArray(i, c)
}

// Compress packs the rows so that every capacity equals its size.
// Memory is not released.
func (s *Store[T]) Compress() {
	o, sz := s.offsets(), s.sizes()
	ext := s.extent()
	w := 0
	for i := 0; i < s.NumArrays; i++ {
		n := int(sz[i])
		s.shift(o[i], w, n)
		o[i] = w
		w += n
	}
	s.clearValues(w, ext)
	o[s.NumArrays] = w
}

// Resize sets the number of rows. New rows get defaultCapacity slots;
// dropped rows have their values destroyed.
func (s *Store[T]) Resize(n, defaultCapacity int) {
	check.NonNegative(n, "number of arrays")
	check.NonNegative(defaultCapacity, "default array capacity")
	if n < s.NumArrays {
		o := s.offsets()
		s.clearValues(o[n], o[s.NumArrays])
		clear(o[n+1 : s.NumArrays+1])
		clear(s.sizes()[n:s.NumArrays])
		s.NumArrays = n
		return
	}
	if n == s.NumArrays {
		return
	}
	buffer.DynamicReserve(s.Offsets, s.NumArrays+1, n+1)
	buffer.DynamicReserve(s.Sizes, s.NumArrays, n)
	ext := s.extent()
	s.reserveValues(ext+(n-s.NumArrays)*defaultCapacity, false)
	o, sz := s.offsets(), s.sizes()
	for k := s.NumArrays; k < n; k++ {
		o[k+1] = o[k] + defaultCapacity
		sz[k] = 0
	}
	s.NumArrays = n
}

// ResizeFromCapacities discards every row and creates len(capacities) empty
// rows with the given capacities. Offsets are built by an exclusive scan
// under policy, which must run on the host.
func (s *Store[T]) ResizeFromCapacities(policy parallel.Policy, capacities []int) {
	check.If(policy.Space() != buffer.Host, "offsets must be built on the host, got policy %s", policy)
	for _, c := range capacities {
		check.NonNegative(c, "array capacity")
	}
	s.clearValues(0, s.extent())
	n := len(capacities)
	buffer.Reserve(s.Offsets, 0, n+1)
	buffer.Reserve(s.Sizes, 0, n)
	o := s.offsets()
	total := parallel.ExclusiveScan(policy, capacities, o[:n])
	o[n] = total
	clear(s.sizes()[:n])
	s.NumArrays = n
	if total > s.Values.Capacity() {
		s.Values.Reallocate(0, total)
		if s.Companion != nil {
			s.Companion.Grow(0, total)
		}
	}
}

// AppendEmpty adds a row with no slots at the end.
func (s *Store[T]) AppendEmpty() {
	buffer.EmplaceBack(s.Offsets, s.NumArrays+1, s.extent())
	buffer.EmplaceBack(s.Sizes, s.NumArrays, 0)
	s.NumArrays++
}

// InsertEmpty adds a row with no slots before row i.
func (s *Store[T]) InsertEmpty(i int) {
	check.InsertIndex(i, s.NumArrays, "array")
	buffer.Emplace(s.Offsets, s.NumArrays+1, i+1, s.offsets()[i])
	buffer.Emplace(s.Sizes, s.NumArrays, i, 0)
	s.NumArrays++
}

// EraseArray removes row i and its values.
func (s *Store[T]) EraseArray(i int) {
	s.CheckRow(i)
	s.SetCapacityOfArray(i, 0)
	buffer.Erase(s.Offsets, s.NumArrays+1, i+1, 1)
	buffer.Erase(s.Sizes, s.NumArrays, i, 1)
	s.NumArrays--
}

// ClearRow destroys the values of row i keeping its capacity.
func (s *Store[T]) ClearRow(i int) {
	o := s.offsets()
	s.clearValues(o[i], o[i]+s.SizeOf(i))
	s.sizes()[i] = 0
}

// Clone returns a deep copy with exact capacities. The companion is not
// copied; the owner attaches its own.
func (s *Store[T]) Clone() *Store[T] {
	ext := s.extent()
	return &Store[T]{
		NumArrays: s.NumArrays,
		Offsets:   buffer.Clone(s.Offsets, s.NumArrays+1, s.NumArrays+1),
		Sizes:     buffer.Clone(s.Sizes, s.NumArrays, s.NumArrays),
		Values:    buffer.Clone(s.Values, ext, ext),
		Growth:    s.Growth,
	}
}

// CopyFrom replaces the contents of s with a deep copy of src. A companion on
// s is regrown and cleared; the owner refills it.
func (s *Store[T]) CopyFrom(src *Store[T]) {
	if s == src {
		return
	}
	ext := s.extent()
	buffer.CopyInto(s.Offsets, s.NumArrays+1, src.offsets()[:src.NumArrays+1])
	buffer.CopyInto(s.Sizes, s.NumArrays, src.sizes()[:src.NumArrays])
	srcExt := src.extent()
	buffer.CopyInto(s.Values, ext, src.Values.Data()[:srcExt])
	if s.Companion != nil {
		s.Companion.Grow(0, s.Values.Capacity())
		s.Companion.Clear(0, s.Values.Capacity())
	}
	s.NumArrays = src.NumArrays
}

// Free releases all buffers and leaves an empty store.
func (s *Store[T]) Free() {
	s.Values.Free()
	s.Sizes.Free()
	s.Offsets.Free()
	if s.Companion != nil {
		s.Companion.Free()
	}
	s.NumArrays = 0
	buffer.EmplaceBack(s.Offsets, 0, 0)
}

// Move makes the buffers resident in space. Offsets are only touched on the
// host: rows cannot be resized on a device.
func (s *Store[T]) Move(space buffer.MemorySpace, touch bool) {
	s.Values.Move(space, touch)
	s.Sizes.Move(space, touch)
	s.Offsets.Move(space, touch && space == buffer.Host)
}

// Validate returns ErrCorrupt describing the first violated invariant, or
// nil when the offsets and sizes describe a well-formed store.
func (s *Store[T]) Validate() error {
	o, sz := s.offsets(), s.sizes()
	if len(o) < s.NumArrays+1 || len(sz) < s.NumArrays {
		return fmt.Errorf("%w: %d arrays with %d offsets and %d sizes", ErrCorrupt, s.NumArrays, len(o), len(sz))
	}
	if o[0] != 0 {
		return fmt.Errorf("%w: first offset is %d", ErrCorrupt, o[0])
	}
	for i := 0; i < s.NumArrays; i++ {
		if o[i+1] < o[i] {
			return fmt.Errorf("%w: offsets decrease at array %d", ErrCorrupt, i)
		}
		if sz[i] < 0 || int(sz[i]) > o[i+1]-o[i] {
			return fmt.Errorf("%w: array %d has size %d and capacity %d", ErrCorrupt, i, sz[i], o[i+1]-o[i])
		}
	}
	if o[s.NumArrays] > s.Values.Capacity() {
		return fmt.Errorf("%w: offsets reach %d past value capacity %d", ErrCorrupt, o[s.NumArrays], s.Values.Capacity())
	}
	return nil
}

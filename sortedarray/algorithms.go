// SPDX-License-Identifier: MIT

package sortedarray

import (
	"cmp"
	"slices"

	"github.com/katalvlaran/lvarray/internal/check"
)

// Callbacks lets a container observe and react to the motion performed by
// the sorted-set algorithms. Containers that keep companion data (entries of
// a sparse matrix, for instance) mirror every motion reported here.
type Callbacks[T any] interface {
	// IncrementSize is called once before nToAdd values are added. It may
	// reallocate and must return a backing slice with room for the current
	// size plus nToAdd.
	IncrementSize(values []T, nToAdd int) []T

	// Shifted reports that the n values starting at from moved by delta.
	Shifted(from, n, delta int)

	// Inserted reports that the batch value at srcIndex was placed at pos.
	Inserted(srcIndex, pos int)

	// Cleared reports that the slots [from, to) were destroyed.
	Cleared(from, to int)
}

// NoOp implements the observer half of Callbacks with empty methods. Embed it
// and provide IncrementSize.
type NoOp struct{}

func (NoOp) Shifted(int, int, int) {}
func (NoOp) Inserted(int, int)     {}
func (NoOp) Cleared(int, int)      {}

// InPlace is a Callbacks that never reallocates. Adding past the capacity of
// the backing slice is fatal.
type InPlace[T any] struct {
	NoOp
	Size int
}

// IncrementSize panics when values cannot hold Size+nToAdd.
func (c InPlace[T]) IncrementSize(values []T, nToAdd int) []T {
	check.If(c.Size+nToAdd > len(values), "cannot grow sorted values from %d by %d past capacity %d", c.Size, nToAdd, len(values))
	return values
}

// Find returns the position of the first value not less than v.
func Find[T cmp.Ordered](values []T, v T) int {
	lo, hi := 0, len(values)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if values[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Contains reports whether v is among the sorted values.
func Contains[T cmp.Ordered](values []T, v T) bool {
	i := Find(values, v)
	return i < len(values) && values[i] == v
}

// IsSorted reports whether values is non-decreasing.
func IsSorted[T cmp.Ordered](values []T) bool { return slices.IsSorted(values) }

// IsSortedUnique reports whether values is strictly increasing.
func IsSortedUnique[T cmp.Ordered](values []T) bool {
	for i := 1; i < len(values); i++ {
		if !(values[i-1] < values[i]) {
			return false
		}
	}
	return true
}

// MakeSortedUnique sorts values in place, drops duplicates and returns the
// number of unique values, which occupy the front of the slice.
func MakeSortedUnique[T cmp.Ordered](values []T) int {
	slices.Sort(values)
	return len(slices.Compact(values))
}

func checkBatch[T cmp.Ordered](batch []T) {
	if check.BoundsCheck && !IsSortedUnique(batch) {
		check.Fatalf("batch must be sorted and unique")
	}
}

// Insert adds v to the first size entries of values, keeping them sorted.
// It returns false without touching anything when v is already present.
func Insert[T cmp.Ordered](values []T, size int, v T, cb Callbacks[T]) bool {
	pos := Find(values[:size], v)
	if pos < size && values[pos] == v {
		return false
	}
	values = cb.IncrementSize(values, 1)
	copy(values[pos+1:size+1], values[pos:size])
	cb.Shifted(pos, size-pos, 1)
	values[pos] = v
	cb.Inserted(0, pos)
	return true
}

// InsertSorted merges a sorted-unique batch into the first size entries of
// values and returns how many values were new.
//
// Implementation:
//   - Stage 1: count the batch values not yet present.
//   - Stage 2: grow once through IncrementSize.
//   - Stage 3: merge from the back so every existing value moves at most once.
//
// Complexity: O(size + len(batch)).
func InsertSorted[T cmp.Ordered](values []T, size int, batch []T, cb Callbacks[T]) int {
	checkBatch(batch)
	nNew := 0
	for i, j := 0, 0; j < len(batch); {
		switch {
		case i >= size || batch[j] < values[i]:
			nNew++
			j++
		case values[i] < batch[j]:
			i++
		default:
			i++
			j++
		}
	}
	if nNew == 0 {
		return 0
	}

	values = cb.IncrementSize(values, nNew)
	i, j, w := size-1, len(batch)-1, size+nNew-1
	for j >= 0 && w > i {
		switch {
		case i >= 0 && batch[j] < values[i]:
			values[w] = values[i]
			cb.Shifted(i, 1, w-i)
			i--
		case i >= 0 && batch[j] == values[i]:
			values[w] = values[i]
			cb.Shifted(i, 1, w-i)
			i--
			j--
		default:
			values[w] = batch[j]
			cb.Inserted(j, w)
			j--
		}
		w--
	}
	return nNew
}

// Remove deletes v from the first size entries of values. It returns false
// when v is absent.
func Remove[T cmp.Ordered](values []T, size int, v T, cb Callbacks[T]) bool {
	pos := Find(values[:size], v)
	if pos == size || values[pos] != v {
		return false
	}
	copy(values[pos:size-1], values[pos+1:size])
	cb.Shifted(pos+1, size-pos-1, -1)
	var zero T
	values[size-1] = zero
	cb.Cleared(size-1, size)
	return true
}

// RemoveSorted deletes the values of a sorted-unique batch from the first
// size entries of values and returns how many were present. Survivors are
// compacted forward in one pass.
func RemoveSorted[T cmp.Ordered](values []T, size int, batch []T, cb Callbacks[T]) int {
	checkBatch(batch)
	w, j := 0, 0
	for r := 0; r < size; r++ {
		for j < len(batch) && batch[j] < values[r] {
			j++
		}
		if j < len(batch) && batch[j] == values[r] {
			j++
			continue
		}
		if w != r {
			values[w] = values[r]
			cb.Shifted(r, 1, w-r)
		}
		w++
	}
	if w < size {
		clear(values[w:size])
		cb.Cleared(w, size)
	}
	return size - w
}

// SPDX-License-Identifier: MIT

package arrayofarrays_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvarray/arrayofarrays"
	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/parallel"
)

// requireRows compares every row against a reference and checks invariants.
func requireRows[T any](t *testing.T, a *arrayofarrays.ArrayOfArrays[T], want [][]T) {
	t.Helper()
	require.NoError(t, a.Validate())
	require.Equal(t, len(want), a.Size())
	for i, row := range want {
		require.Equal(t, len(row), a.SizeOfArray(i), "array %d", i)
		for j, v := range row {
			require.Equal(t, v, a.At(i, j), "array %d value %d", i, j)
		}
	}
}

// TestGrowingRowKeepsNeighbours is the append scenario: growing row 0 must
// leave row 1 intact.
func TestGrowingRowKeepsNeighbours(t *testing.T) {
	a := arrayofarrays.New[int](0, 0)
	a.AppendArray(3)
	a.AppendArrayValues(5, 6)
	require.Equal(t, []int{0, 3, 7}, a.Offsets()) // appended rows get 2*size

	a.EmplaceBack(0, 7)
	require.Equal(t, 4, a.SizeOfArray(0))
	require.Equal(t, 8, a.CapacityOfArray(0)) // 2 * newSize
	require.Equal(t, []int{0, 8, 12}, a.Offsets())
	requireRows(t, a, [][]int{{0, 0, 0, 7}, {5, 6}})
}

// TestGrowthOffsetsSequence pins the offsets after a sequence of growths.
func TestGrowthOffsetsSequence(t *testing.T) {
	a := arrayofarrays.New[int](3, 1)
	require.Equal(t, []int{0, 1, 2, 3}, a.Offsets())
	a.AppendToArray(1, 1, 2) // size 2 > 1: capacity 4
	require.Equal(t, []int{0, 1, 5, 6}, a.Offsets())
	a.EmplaceBack(0, 9) // fits
	a.EmplaceBack(0, 9) // size 2: capacity 4
	require.Equal(t, []int{0, 4, 8, 9}, a.Offsets())
	a.InsertIntoArray(2, 0, 3, 4) // size 2: capacity 4
	require.Equal(t, []int{0, 4, 8, 12}, a.Offsets())
	requireRows(t, a, [][]int{{9, 9}, {1, 2}, {3, 4}})

	a.Compress()
	require.Equal(t, []int{0, 2, 4, 6}, a.Offsets())
	require.Equal(t, a.Sizes(), []int{2, 2, 2})
	for i := 0; i < a.Size(); i++ {
		require.Equal(t, a.SizeOfArray(i), a.CapacityOfArray(i))
	}
}

// TestRandomOperationsMatchReference drives every mutator against [][]int.
func TestRandomOperationsMatchReference(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	a := arrayofarrays.New[int](2, 0)
	ref := [][]int{{}, {}}

	for step := 0; step < 500; step++ {
		if len(ref) == 0 {
			a.AppendArrayValues(step)
			ref = append(ref, []int{step})
			continue
		}
		i := rng.IntN(len(ref))
		switch rng.IntN(10) {
		case 0:
			a.AppendArray(2)
			ref = append(ref, []int{0, 0})
		case 1:
			a.InsertArray(i, step, step+1)
			ref = slices.Insert(ref, i, []int{step, step + 1})
		case 2:
			a.EraseArray(i)
			ref = slices.Delete(ref, i, i+1)
		case 3:
			a.EmplaceBack(i, step)
			ref[i] = append(ref[i], step)
		case 4:
			j := rng.IntN(len(ref[i]) + 1)
			a.InsertIntoArray(i, j, step, -step)
			ref[i] = slices.Insert(ref[i], j, step, -step)
		case 5:
			if len(ref[i]) > 0 {
				j := rng.IntN(len(ref[i]))
				a.EraseFromArray(i, j, 1)
				ref[i] = slices.Delete(ref[i], j, j+1)
			}
		case 6:
			n := rng.IntN(5)
			a.ResizeArrayWith(i, n, -1)
			for len(ref[i]) < n {
				ref[i] = append(ref[i], -1)
			}
			ref[i] = ref[i][:n]
		case 7:
			c := rng.IntN(6)
			a.SetCapacityOfArray(i, c)
			if len(ref[i]) > c {
				ref[i] = ref[i][:c]
			}
		case 8:
			a.Compress()
		case 9:
			a.ClearArray(i)
			ref[i] = ref[i][:0]
		}
		requireRows(t, a, ref)
	}
}

// TestResizeFromCapacities checks capacities and emptiness.
func TestResizeFromCapacities(t *testing.T) {
	a := arrayofarrays.New[string](1, 1)
	a.EmplaceBack(0, "x")
	a.ResizeFromCapacities([]int{2, 0, 3})
	require.Equal(t, []int{0, 2, 2, 5}, a.Offsets())
	require.Equal(t, 0, a.TotalSize())

	b := arrayofarrays.FromRows([][]string{{"a"}, {}, {"b", "c"}})
	requireRows(t, b, [][]string{{"a"}, {}, {"b", "c"}})
	require.Equal(t, []int{0, 1, 1, 3}, b.Offsets())
}

// TestCopyMoveFree checks ownership transfers.
func TestCopyMoveFree(t *testing.T) {
	a := arrayofarrays.FromRows([][]int{{1, 2}, {3}}, buffer.WithName("aoa"))
	c := a.Copy()
	c.Set(0, 0, 100)
	require.Equal(t, 1, a.At(0, 0))

	d := arrayofarrays.New[int](5, 5)
	d.CopyFrom(a)
	requireRows(t, d, [][]int{{1, 2}, {3}})

	e := arrayofarrays.New[int](0, 0)
	e.MoveFrom(a)
	requireRows(t, e, [][]int{{1, 2}, {3}})
	require.Equal(t, 0, a.Size())
	require.Equal(t, "aoa", e.Name())
	a.AppendArrayValues(4) // still usable
	requireRows(t, a, [][]int{{4}})

	e.Free()
	require.Equal(t, 0, e.Size())
}

// TestViewsRespectCapacity checks views never reallocate.
func TestViewsRespectCapacity(t *testing.T) {
	a := arrayofarrays.New[int](2, 2)
	v := a.ToView()
	v.EmplaceBack(0, 1)
	v.Emplace(0, 0, 0)
	require.Panics(t, func() { v.EmplaceBack(0, 2) })
	v.ResizeArray(1, 2)
	require.Panics(t, func() { v.ResizeArray(1, 3) })

	cs := v.ToViewConstSizes()
	cs.Set(1, 1, 5)
	c := cs.ToViewConst()
	require.Equal(t, []int{0, 5}, c.Array(1))
	require.Equal(t, "{\n0\t{0, 1, }\n1\t{0, 5, }\n}\n", c.String())
	v.EraseFromArray(0, 0, 1)
	v.ClearArray(1)
	requireRows(t, a, [][]int{{1}, {}})
}

// TestEmplaceBackAtomic appends concurrently into pre-sized rows.
func TestEmplaceBackAtomic(t *testing.T) {
	parallel.SetWorkers(8)
	defer parallel.SetWorkers(0)

	const n = 2000
	a := arrayofarrays.New[int](2, n)
	v := a.ToView()
	parallel.ForAll(parallel.Host, n, func(i int) {
		v.EmplaceBackAtomic(i%2, i)
	})
	require.Equal(t, n/2, a.SizeOfArray(0))
	require.Equal(t, n/2, a.SizeOfArray(1))
	got := append([]int(nil), a.Array(0)...)
	slices.Sort(got)
	for k, x := range got {
		require.Equal(t, 2*k, x)
	}

	full := arrayofarrays.New[int](1, 1)
	fv := full.ToView()
	fv.EmplaceBackAtomic(0, 1)
	require.Panics(t, func() { fv.EmplaceBackAtomic(0, 2) })
	require.Equal(t, 1, full.SizeOfArray(0))
}

// TestMoveKeepsOffsetsOnHost checks offsets are not touched on device.
func TestMoveKeepsOffsetsOnHost(t *testing.T) {
	a := arrayofarrays.New[int](2, 1, buffer.WithSpaces())
	a.EmplaceBack(0, 3)
	a.Move(buffer.Device, true)
	a.ToViewConst().Move(buffer.Host)
	require.Equal(t, 3, a.At(0, 0))
}

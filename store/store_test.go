// SPDX-License-Identifier: MIT

package store_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvarray/array"
	"github.com/katalvlaran/lvarray/arrayofarrays"
	"github.com/katalvlaran/lvarray/layout"
	"github.com/katalvlaran/lvarray/sparsity"
	"github.com/katalvlaran/lvarray/store"
)

func openMemory(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(store.Options{InMemory: true, Level: "fastest"})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestArrayRoundTrip(t *testing.T) {
	s := openMemory(t)
	a, err := array.ParseInts("{ { 0, 1, 2 }, { 10, 11, 12 } }", layout.JI)
	require.NoError(t, err)
	require.NoError(t, store.PutArray(s, "grid", a))

	b, err := store.GetArray[int](s, "grid")
	require.NoError(t, err)
	require.True(t, b.Permutation().Equal(layout.JI))
	require.Equal(t, a.Dims(), b.Dims())
	require.Equal(t, a.String(), b.String())
	require.Equal(t, 12, b.At(1, 2))

	_, err = store.GetArray[float64](s, "grid")
	require.ErrorIs(t, err, store.ErrKindMismatch)
	_, err = store.GetArrayOfArrays[int](s, "grid")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestArrayOfArraysKeepsCapacities(t *testing.T) {
	s := openMemory(t)
	a := arrayofarrays.New[string](3, 2)
	a.AppendToArray(0, "a", "b", "c")
	a.EmplaceBack(2, "z")
	require.NoError(t, store.PutArrayOfArrays(s, "words", a))

	b, err := store.GetArrayOfArrays[string](s, "words")
	require.NoError(t, err)
	require.NoError(t, b.Validate())
	require.Equal(t, a.Offsets(), b.Offsets())
	require.Equal(t, a.Sizes(), b.Sizes())
	require.Equal(t, []string{"a", "b", "c"}, b.Array(0))
	require.Empty(t, b.Array(1))
	require.Equal(t, []string{"z"}, b.Array(2))
}

func TestPatternAndMatrixRoundTrip(t *testing.T) {
	s := openMemory(t)
	p := sparsity.New[int32](3, 7, 2)
	p.InsertNonZeros(0, 1, 5)
	p.InsertNonZero(2, 6)
	require.NoError(t, store.PutPattern(s, "p", p))

	q, err := store.GetPattern[int32](s, "p")
	require.NoError(t, err)
	require.Equal(t, p.String(), q.String())
	require.Equal(t, 7, q.NumColumns())

	m := sparsity.NewCRS[float64, int32](2, 300, 0)
	m.InsertNonZeros(1, []int32{3, 299}, []float64{0.25, -4})
	require.NoError(t, store.PutCRS(s, "m", m))

	// columns may be read back with a wider type
	w, err := store.GetCRS[float64, int64](s, "m")
	require.NoError(t, err)
	v, ok := w.At(1, 299)
	require.True(t, ok)
	require.Equal(t, -4.0, v)

	_, err = store.GetCRS[float64, int8](s, "m")
	require.ErrorIs(t, err, store.ErrCorrupt)
	_, err = store.GetCRS[float32, int32](s, "m")
	require.ErrorIs(t, err, store.ErrKindMismatch)
}

func TestNamesStatDelete(t *testing.T) {
	s := openMemory(t)
	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, store.PutArray(s, name, array.FromSlice([]float64{1, 2, 3})))
	}
	require.NoError(t, store.PutPattern(s, "a", sparsity.New[int](1, 1, 0)))

	names, err := s.Names(store.KindArray)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, names)

	info, err := s.Stat(store.KindArray, "a")
	require.NoError(t, err)
	require.Equal(t, store.KindArray, info.Kind)
	require.Equal(t, "float64", info.Elem)
	require.Positive(t, info.Bytes)

	require.NoError(t, s.Delete(store.KindArray, "a"))
	require.ErrorIs(t, s.Delete(store.KindArray, "a"), store.ErrNotFound)
	names, err = s.Names(store.KindArray)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "c"}, names)

	names, err = s.Names(store.KindPattern)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, names)
}

func TestInvalidInput(t *testing.T) {
	s := openMemory(t)
	a := array.FromSlice([]int{1})
	require.ErrorIs(t, store.PutArray(s, "", a), store.ErrInvalidName)
	require.ErrorIs(t, store.PutArray(s, "x/y", a), store.ErrInvalidName)

	_, err := store.Open(store.Options{InMemory: true, Level: "ludicrous"})
	require.ErrorIs(t, err, store.ErrInvalidLevel)
}

func TestOnDiskWithLogger(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer
	s, err := store.Open(store.Options{Dir: dir, Logger: log.New(&logs, "", 0)})
	require.NoError(t, err)
	require.NoError(t, store.PutArray(s, "v", array.FromSlice([]int64{4, 5})))
	require.NoError(t, s.Close())

	s, err = store.Open(store.Options{Dir: dir})
	require.NoError(t, err)
	defer s.Close()
	v, err := store.GetArray[int64](s, "v")
	require.NoError(t, err)
	require.Equal(t, []int64{4, 5}, v.Data())
}

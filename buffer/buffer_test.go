// SPDX-License-Identifier: MIT

package buffer_test

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvarray/buffer"
)

// TestHostReallocateKeepsLive verifies only the live prefix survives.
func TestHostReallocateKeepsLive(t *testing.T) {
	b := buffer.NewHost[int]()
	require.Equal(t, 0, b.Capacity())
	b.Reallocate(0, 4)
	copy(b.Data(), []int{1, 2, 3, 4})
	b.Reallocate(2, 8)
	require.Equal(t, 8, b.Capacity())
	require.Equal(t, []int{1, 2, 0, 0, 0, 0, 0, 0}, b.Data()) // tail is fresh
	require.False(t, b.MultiSpace())
	require.Equal(t, buffer.Host, b.Space())
}

// TestHostMoveToDevicePanics verifies a host buffer refuses foreign spaces.
func TestHostMoveToDevicePanics(t *testing.T) {
	b := buffer.NewHost[int]()
	b.SetName("x")
	require.NotPanics(t, func() { b.Move(buffer.Host, true) })
	require.PanicsWithValue(t, `lvarray: buffer "x" is host only, cannot move to device`, func() {
		b.Move(buffer.Device, false)
	})
}

// TestSpacesStaleTracking walks the host/device copy protocol.
func TestSpacesStaleTracking(t *testing.T) {
	var logs bytes.Buffer
	buffer.SetMoveLogger(log.New(&logs, "", 0))
	defer buffer.SetMoveLogger(nil)

	b := buffer.NewSpaces[int64]()
	b.SetName("vals")
	b.Reallocate(0, 3)
	copy(b.Data(), []int64{1, 2, 3})
	require.True(t, buffer.IsValidIn(b, buffer.Host))
	require.False(t, buffer.IsValidIn(b, buffer.Device))

	b.Move(buffer.Device, true) // copy to device, host goes stale
	require.Equal(t, buffer.Device, b.Space())
	require.False(t, buffer.IsValidIn(b, buffer.Host))
	require.Contains(t, logs.String(), `buffer "vals": moved 24 bytes host -> device`)

	b.Data()[0] = 10
	b.Move(buffer.Host, false) // refresh host, device stays valid
	require.Equal(t, []int64{10, 2, 3}, b.Data())
	require.True(t, buffer.IsValidIn(b, buffer.Device))

	logs.Reset()
	b.Move(buffer.Device, false) // nothing to copy
	require.Empty(t, logs.String())
}

// TestSpacesReallocateDropsOtherCopies verifies a reallocation invalidates
// copies elsewhere.
func TestSpacesReallocateDropsOtherCopies(t *testing.T) {
	b := buffer.NewSpaces[int]()
	b.Reallocate(0, 2)
	b.Move(buffer.Device, false)
	b.Move(buffer.Host, false)
	require.True(t, buffer.IsValidIn(b, buffer.Device))
	b.Reallocate(2, 4)
	require.False(t, buffer.IsValidIn(b, buffer.Device))
	require.Equal(t, 4, b.Capacity())
}

// TestGrowthHelpers covers the exact and geometric reservation policies.
func TestGrowthHelpers(t *testing.T) {
	b := buffer.NewHost[int]()
	size := 0
	for i := 0; i < 5; i++ {
		size = buffer.EmplaceBack(b, size, i)
	}
	require.Equal(t, 5, size)
	require.Equal(t, 8, b.Capacity()) // 1, 2, 4, 8
	require.Equal(t, []int{0, 1, 2, 3, 4}, b.Data()[:size])

	buffer.Reserve(b, size, 6)
	require.Equal(t, 8, b.Capacity()) // never shrinks
	buffer.Reserve(b, size, 20)
	require.Equal(t, 20, b.Capacity())

	size = buffer.Emplace(b, size, 0, -1)
	size = buffer.InsertValues(b, size, 3, 7, 8)
	require.Equal(t, []int{-1, 0, 1, 7, 8, 2, 3, 4}, b.Data()[:size])

	size = buffer.Erase(b, size, 1, 3)
	require.Equal(t, []int{-1, 8, 2, 3, 4}, b.Data()[:size])
	require.Equal(t, []int{0, 0, 0}, b.Data()[size:size+3]) // destroyed

	size = buffer.Resize(b, size, 7, 9)
	require.Equal(t, []int{-1, 8, 2, 3, 4, 9, 9}, b.Data()[:size])
	size = buffer.Resize(b, size, 2, 0)
	require.Equal(t, 2, size)
	require.Equal(t, 0, b.Data()[2])
}

// TestResizeWithRollback verifies a failing fill leaves no constructed slots.
func TestResizeWithRollback(t *testing.T) {
	b := buffer.NewHost[string]()
	size := buffer.CopyInto(b, 0, []string{"a", "b"})
	boom := errors.New("boom")

	got, err := buffer.ResizeWith(b, size, 6, func(i int) (string, error) {
		if i == 4 {
			return "", boom
		}
		return "v", nil
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, got)
	require.Equal(t, []string{"a", "b", "", "", "", ""}, b.Data()[:6])

	got, err = buffer.ResizeWith(b, size, 3, func(int) (string, error) { return "c", nil })
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, b.Data()[:got])
}

// TestCloneIndependent verifies clones share nothing with the source.
func TestCloneIndependent(t *testing.T) {
	for _, k := range []buffer.Kind{buffer.KindHost, buffer.KindSpaces} {
		b := buffer.New[int](k)
		b.SetName("src")
		size := buffer.CopyInto(b, 0, []int{1, 2, 3})
		c := buffer.Clone(b, size, 5)
		c.Data()[0] = 100
		require.Equal(t, 1, b.Data()[0])
		require.Equal(t, 5, c.Capacity())
		require.Equal(t, "src", c.Name())
		require.Equal(t, b.MultiSpace(), c.MultiSpace())
	}
}

// TestParseSpace covers the names accepted in configuration.
func TestParseSpace(t *testing.T) {
	s, err := buffer.ParseSpace("device")
	require.NoError(t, err)
	require.Equal(t, buffer.Device, s)
	_, err = buffer.ParseSpace("gpu")
	require.ErrorIs(t, err, buffer.ErrUnknownSpace)
}

func TestParseKind(t *testing.T) {
	for _, k := range []buffer.Kind{buffer.KindHost, buffer.KindSpaces} {
		got, err := buffer.ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
	}
	_, err := buffer.ParseKind("pinned")
	require.ErrorIs(t, err, buffer.ErrUnknownKind)
}

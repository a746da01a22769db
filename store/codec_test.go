// SPDX-License-Identifier: MIT

package store

import (
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func TestCodecDetectsCorruption(t *testing.T) {
	c, err := newCodec(zstd.SpeedDefault)
	require.NoError(t, err)
	defer c.close()

	payload, err := encode(c, &record[int]{Kind: KindArray, Elem: "int", Dims: []int{3}, Values: []int{1, 2, 3}})
	require.NoError(t, err)
	rec, err := decode[int](c, payload, KindArray)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, rec.Values)

	bad := append([]byte(nil), payload...)
	bad[len(bad)-1] ^= 0xff
	_, err = decode[int](c, bad, KindArray)
	require.ErrorIs(t, err, ErrChecksum)

	_, err = decode[int](c, payload[:4], KindArray)
	require.ErrorIs(t, err, ErrChecksum)

	_, err = decode[int](c, payload, KindPattern)
	require.ErrorIs(t, err, ErrKindMismatch)
}

// SPDX-License-Identifier: MIT

package store

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
)

const checksumLen = 8

// header is the part of every record decoded before the element type is
// known. gob ignores the remaining fields.
type header struct {
	Kind Kind
	Elem string
}

// record is the gob form of every container. Unused fields stay empty.
type record[T any] struct {
	Kind       Kind
	Elem       string
	Order      []int
	Dims       []int
	Offsets    []int
	Sizes      []int
	Columns    []int64
	NumColumns int
	Values     []T
}

func elemName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

// codec turns records into checksummed, compressed payloads:
//
//	[8 byte big-endian xxhash64 of the frame][zstd frame of the gob record]
type codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newCodec(level zstd.EncoderLevel) (*codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, fmt.Errorf("store: zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("store: zstd decoder: %w", err)
	}
	return &codec{enc: enc, dec: dec}, nil
}

func (c *codec) close() {
	c.enc.Close()
	c.dec.Close()
}

func encode[T any](c *codec, rec *record[T]) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", rec.Kind, err)
	}
	out := make([]byte, checksumLen, checksumLen+buf.Len()/2)
	out = c.enc.EncodeAll(buf.Bytes(), out)
	binary.BigEndian.PutUint64(out, xxhash.Sum64(out[checksumLen:]))
	return out, nil
}

// open verifies the checksum and inflates the gob record.
func (c *codec) open(payload []byte) ([]byte, error) {
	if len(payload) < checksumLen {
		return nil, fmt.Errorf("%w: %d byte payload", ErrChecksum, len(payload))
	}
	frame := payload[checksumLen:]
	if binary.BigEndian.Uint64(payload) != xxhash.Sum64(frame) {
		return nil, ErrChecksum
	}
	raw, err := c.dec.DecodeAll(frame, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return raw, nil
}

func decodeHeader(raw []byte) (header, error) {
	var h header
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&h); err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return h, nil
}

func decode[T any](c *codec, payload []byte, kind Kind) (*record[T], error) {
	raw, err := c.open(payload)
	if err != nil {
		return nil, err
	}
	h, err := decodeHeader(raw)
	if err != nil {
		return nil, err
	}
	if want := elemName[T](); h.Kind != kind || h.Elem != want {
		return nil, fmt.Errorf("%w: stored %s of %s, want %s of %s", ErrKindMismatch, h.Kind, h.Elem, kind, want)
	}
	var rec record[T]
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &rec, nil
}

// SPDX-License-Identifier: MIT

// Package store persists snapshots of lvarray containers in badger.
//
// Each snapshot is a gob record compressed with zstd and prefixed with the
// xxhash64 of the compressed frame. Keys are "<kind>/<name>", so arrays,
// ragged arrays, sparsity patterns and matrices live in separate namespaces
// and may share names.
//
// Snapshots store live values only: capacities of ragged containers are
// kept, while slack slots come back zeroed. Patterns and matrices come back
// compressed.
package store

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"
)

// Kind names the container type of a snapshot.
type Kind string

const (
	KindArray         Kind = "array"
	KindArrayOfArrays Kind = "arrays"
	KindPattern       Kind = "pattern"
	KindCRS           Kind = "crs"
)

// Kinds lists every snapshot kind.
var Kinds = []Kind{KindArray, KindArrayOfArrays, KindPattern, KindCRS}

// Options configures Open.
type Options struct {
	// Dir is the badger directory. Ignored when InMemory is set.
	Dir string
	// InMemory keeps everything in memory; nothing is written to disk.
	InMemory bool
	// Level is a zstd level name: fastest, default, better or best.
	// Empty means default.
	Level string
	// Logger receives badger warnings and errors. Nil silences badger.
	Logger *log.Logger
}

// Store is a snapshot store. It is safe for concurrent use.
type Store struct {
	db    *badger.DB
	codec *codec
}

// Open opens or creates the store described by opts.
func Open(opts Options) (*Store, error) {
	level := zstd.SpeedDefault
	if opts.Level != "" {
		ok, l := zstd.EncoderLevelFromString(opts.Level)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLevel, opts.Level)
		}
		level = l
	}

	bopts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	if opts.Logger != nil {
		bopts = bopts.WithLogger(badgerLogger{opts.Logger})
	} else {
		bopts = bopts.WithLogger(nil)
	}

	c, err := newCodec(level)
	if err != nil {
		return nil, err
	}
	db, err := badger.Open(bopts)
	if err != nil {
		c.close()
		return nil, fmt.Errorf("store: open %q: %w", opts.Dir, err)
	}
	return &Store{db: db, codec: c}, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	s.codec.close()
	return s.db.Close()
}

func key(kind Kind, name string) ([]byte, error) {
	if name == "" || strings.ContainsRune(name, '/') {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return []byte(string(kind) + "/" + name), nil
}

func (s *Store) put(kind Kind, name string, payload []byte) error {
	k, err := key(kind, name)
	if err != nil {
		return err
	}
	if err := s.db.Update(func(txn *badger.Txn) error { return txn.Set(k, payload) }); err != nil {
		return fmt.Errorf("store: put %s: %w", k, err)
	}
	return nil
}

func (s *Store) get(kind Kind, name string) ([]byte, error) {
	k, err := key(kind, name)
	if err != nil {
		return nil, err
	}
	var payload []byte
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(k)
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, k)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", k, err)
	}
	return payload, nil
}

// Delete removes a snapshot. Deleting a missing snapshot returns
// ErrNotFound.
func (s *Store) Delete(kind Kind, name string) error {
	if _, err := s.get(kind, name); err != nil {
		return err
	}
	k, _ := key(kind, name)
	if err := s.db.Update(func(txn *badger.Txn) error { return txn.Delete(k) }); err != nil {
		return fmt.Errorf("store: delete %s: %w", k, err)
	}
	return nil
}

// Names returns the sorted names of every snapshot of kind.
func (s *Store) Names(kind Kind) ([]string, error) {
	prefix := []byte(string(kind) + "/")
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			names = append(names, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", kind, err)
	}
	return names, nil
}

// Info describes a stored snapshot without decoding its values.
type Info struct {
	Kind Kind
	Elem string
	// Bytes is the stored payload size.
	Bytes int
}

// Stat verifies the checksum of a snapshot and returns its description.
func (s *Store) Stat(kind Kind, name string) (Info, error) {
	payload, err := s.get(kind, name)
	if err != nil {
		return Info{}, err
	}
	raw, err := s.codec.open(payload)
	if err != nil {
		return Info{}, fmt.Errorf("%s/%s: %w", kind, name, err)
	}
	h, err := decodeHeader(raw)
	if err != nil {
		return Info{}, fmt.Errorf("%s/%s: %w", kind, name, err)
	}
	return Info{Kind: h.Kind, Elem: h.Elem, Bytes: len(payload)}, nil
}

// badgerLogger forwards badger warnings and errors to a standard logger.
type badgerLogger struct{ l *log.Logger }

func (b badgerLogger) Errorf(format string, args ...any) {
	b.l.Printf("badger error: "+strings.TrimSuffix(format, "\n"), args...)
}

func (b badgerLogger) Warningf(format string, args ...any) {
	b.l.Printf("badger warning: "+strings.TrimSuffix(format, "\n"), args...)
}

func (badgerLogger) Infof(string, ...any)  {}
func (badgerLogger) Debugf(string, ...any) {}

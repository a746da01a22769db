// SPDX-License-Identifier: MIT

// Package buffer is the allocation backend the containers are written
// against.
//
// A Buffer owns a contiguous run of elements. It knows nothing about sizes:
// the owning container tracks how many leading slots are live and passes that
// count to Reallocate so only live elements are carried over. Two backends
// ship with the module:
//
//   - NewHost: a plain Go slice; it lives in host memory only and moving it
//     anywhere else is a fatal error.
//   - NewSpaces: one copy per MemorySpace with stale tracking. Move(space,
//     touch) makes the copy in space current, refreshing it from a valid copy
//     when needed; touch invalidates every other copy because the caller is
//     about to write.
//
// Move operations are logged through SetMoveLogger, tagged with the buffer
// name set by the owning container.
package buffer

import (
	"fmt"
	"log"
	"sync/atomic"
	"unsafe"
)

// MemorySpace identifies a residency domain for buffer contents.
type MemorySpace int

const (
	// Host is ordinary process memory.
	Host MemorySpace = iota
	// Device is accelerator memory.
	Device

	numSpaces = 2
)

// String returns "host" or "device".
func (s MemorySpace) String() string {
	switch s {
	case Host:
		return "host"
	case Device:
		return "device"
	default:
		return fmt.Sprintf("space(%d)", int(s))
	}
}

// ParseSpace resolves "host" or "device".
func ParseSpace(s string) (MemorySpace, error) {
	switch s {
	case "host", "":
		return Host, nil
	case "device":
		return Device, nil
	default:
		return Host, fmt.Errorf("%w: %q", ErrUnknownSpace, s)
	}
}

// Buffer is the contract between containers and an allocation backend.
type Buffer[T any] interface {
	// Data returns the current copy; len(Data()) == Capacity().
	Data() []T

	// Capacity returns the number of allocated slots.
	Capacity() int

	// Reallocate changes the capacity to newCapacity, keeping the first size
	// elements. size must not exceed either capacity.
	Reallocate(size, newCapacity int)

	// Free releases the storage; the buffer is empty afterwards.
	Free()

	// SetName sets the name used in move logs.
	SetName(name string)

	// Name returns the display name.
	Name() string

	// Space returns the space holding the current copy.
	Space() MemorySpace

	// MultiSpace reports whether Move accepts spaces other than Host.
	MultiSpace() bool

	// Move makes the contents valid in space. When touch is true the copies
	// in every other space become stale.
	Move(space MemorySpace, touch bool)

	// Empty returns a new, empty buffer of the same backend and name.
	Empty() Buffer[T]
}

// Kind selects a backend for New.
type Kind int32

const (
	// KindHost selects NewHost.
	KindHost Kind = iota
	// KindSpaces selects NewSpaces.
	KindSpaces
)

// String returns "host" or "spaces".
func (k Kind) String() string {
	switch k {
	case KindHost:
		return "host"
	case KindSpaces:
		return "spaces"
	default:
		return fmt.Sprintf("kind(%d)", int32(k))
	}
}

// ParseKind resolves "host" or "spaces".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "host", "":
		return KindHost, nil
	case "spaces":
		return KindSpaces, nil
	default:
		return KindHost, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

var (
	defaultKind atomic.Int32
	moveLogger  atomic.Pointer[log.Logger]
)

// SetDefaultKind sets the backend used by New when containers are created
// without an explicit buffer option.
func SetDefaultKind(k Kind) { defaultKind.Store(int32(k)) }

// DefaultKind returns the backend used by New.
func DefaultKind() Kind { return Kind(defaultKind.Load()) }

// New returns an empty buffer of the given kind.
func New[T any](k Kind) Buffer[T] {
	if k == KindSpaces {
		return NewSpaces[T]()
	}
	return NewHost[T]()
}

// SetMoveLogger enables logging of memory motion. Pass nil to disable.
func SetMoveLogger(l *log.Logger) { moveLogger.Store(l) }

func logMove[T any](name string, n int, from, to MemorySpace) {
	l := moveLogger.Load()
	if l == nil {
		return
	}
	var zero T
	if name == "" {
		name = "<unnamed>"
	}
	l.Printf("buffer %q: moved %d bytes %s -> %s", name, n*int(unsafe.Sizeof(zero)), from, to)
}

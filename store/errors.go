// SPDX-License-Identifier: MIT

package store

import "errors"

var (
	// ErrNotFound is returned when no snapshot is stored under a name.
	ErrNotFound = errors.New("store: snapshot not found")

	// ErrChecksum is returned when a stored payload does not match its
	// checksum.
	ErrChecksum = errors.New("store: checksum mismatch")

	// ErrKindMismatch is returned when a snapshot is read back as another
	// container kind or element type than it was written as.
	ErrKindMismatch = errors.New("store: kind mismatch")

	// ErrCorrupt is returned when a payload decodes but describes an
	// invalid container.
	ErrCorrupt = errors.New("store: corrupt snapshot")

	// ErrInvalidName is returned for empty names or names containing '/'.
	ErrInvalidName = errors.New("store: invalid snapshot name")

	// ErrInvalidLevel is returned by Open for an unknown compression level.
	ErrInvalidLevel = errors.New("store: invalid compression level")
)

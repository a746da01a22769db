// SPDX-License-Identifier: MIT

package buffer

import "errors"

var (
	// ErrUnknownSpace is returned by ParseSpace for unrecognized names.
	ErrUnknownSpace = errors.New("buffer: unknown memory space")

	// ErrUnknownKind is returned by ParseKind for unrecognized names.
	ErrUnknownKind = errors.New("buffer: unknown buffer kind")
)

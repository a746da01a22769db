// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrInvalidConfig wraps every decoding and validation failure.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrIncompatible is returned when two settings cannot be combined, such
	// as the device policy with host-only buffers.
	ErrIncompatible = errors.New("config: incompatible settings")
)

// SPDX-License-Identifier: MIT

package parallel

import "errors"

// ErrUnknownPolicy is returned by ParsePolicy for unrecognized names.
var ErrUnknownPolicy = errors.New("parallel: unknown policy")

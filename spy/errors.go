// SPDX-License-Identifier: MIT

package spy

import "errors"

// ErrFormat is returned for an image format gonum/plot cannot write.
var ErrFormat = errors.New("spy: unsupported image format")

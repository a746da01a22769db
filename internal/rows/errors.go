// SPDX-License-Identifier: MIT

package rows

import "errors"

// ErrCorrupt indicates offsets or sizes that break the storage invariants.
var ErrCorrupt = errors.New("rows: corrupt storage")

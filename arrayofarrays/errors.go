// SPDX-License-Identifier: MIT

package arrayofarrays

import "errors"

// ErrUnsortedSet is returned by ArrayOfSets.Validate when a set is not
// strictly increasing.
var ErrUnsortedSet = errors.New("arrayofarrays: set is not sorted and unique")

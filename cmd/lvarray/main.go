// SPDX-License-Identifier: MIT

// Command lvarray inspects layouts, parses arrays, draws sparsity patterns
// and manages stored snapshots.
//
// Usage:
//
//	lvarray [--config file.yaml] [--verbose] <command>
//
// Commands:
//
//	layout KJI 2 3 4            strides and unit-stride dimension of a layout
//	parse --perm JI '{ ... }'   parse the brace text form and print it back
//	spy pattern.txt -o spy.png  draw a coordinate file or a stored pattern
//	store import|list|show|stat|rm
//
// Coordinate files start with "rows cols" followed by one "row col [value]"
// line per non-zero; '#' starts a comment.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

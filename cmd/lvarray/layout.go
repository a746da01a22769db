// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvarray/layout"
)

func newLayoutCmd() *cobra.Command {
	var all int
	cmd := &cobra.Command{
		Use:   "layout PERM DIM...",
		Short: "Print the strides of a permutation for the given dimensions",
		Example: `  lvarray layout KJI 2 3 4
  lvarray layout --all 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if all > 0 {
				for _, p := range layout.All(all) {
					fmt.Fprintf(out, "%s\tunit-stride %d\n", p, p.UnitStrideDim())
				}
				return nil
			}
			if len(args) < 2 {
				return fmt.Errorf("layout: need a permutation and its dimensions")
			}
			perm, err := layout.Parse(args[0])
			if err != nil {
				return err
			}
			dims := make([]int, len(args)-1)
			for i, s := range args[1:] {
				if dims[i], err = strconv.Atoi(s); err != nil || dims[i] < 0 {
					return fmt.Errorf("layout: dimension %d: invalid size %q", i, s)
				}
			}
			if len(dims) != perm.Rank() {
				return fmt.Errorf("layout: %s has rank %d, got %d dimensions", perm, perm.Rank(), len(dims))
			}
			fmt.Fprintf(out, "permutation           %s\n", perm)
			fmt.Fprintf(out, "unit-stride dimension %d\n", perm.UnitStrideDim())
			fmt.Fprintf(out, "dims                  %v\n", dims)
			fmt.Fprintf(out, "strides               %v\n", perm.Strides(dims))
			fmt.Fprintf(out, "size                  %d\n", perm.Size(dims))
			return nil
		},
	}
	cmd.Flags().IntVar(&all, "all", 0, "list every permutation of this rank")
	return cmd
}

// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/lvarray/sparsity"
	"github.com/katalvlaran/lvarray/spy"
	"github.com/katalvlaran/lvarray/store"
)

func newSpyCmd(a *app) *cobra.Command {
	var (
		from, output, format, title string
		describe                    bool
		size                        float64
	)
	cmd := &cobra.Command{
		Use:   "spy [FILE|-]",
		Short: "Draw the spy plot of a coordinate file or a stored pattern",
		Example: `  lvarray spy laplacian.txt -o laplacian.svg --describe
  lvarray spy --from mesh --format pdf -o mesh.pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPattern(cmd.InOrStdin(), args, from)
			if err != nil {
				return err
			}
			if describe {
				fmt.Fprint(cmd.OutOrStdout(), spy.Describe(p))
			}
			if output == "" {
				return nil
			}
			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(output), ".")
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			opts := spy.Options{Title: title, Width: vg.Length(size) * vg.Inch, Height: vg.Length(size) * vg.Inch, Format: format}
			if err := spy.Write(f, p, opts); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			a.log.Printf("wrote %s", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "read a stored pattern or matrix instead of a file")
	cmd.Flags().StringVarP(&output, "output", "o", "spy.png", "image file; empty to skip drawing")
	cmd.Flags().StringVar(&format, "format", "", "image format (default from the output extension)")
	cmd.Flags().StringVar(&title, "title", "", "plot title")
	cmd.Flags().BoolVar(&describe, "describe", false, "print a numeric summary")
	cmd.Flags().Float64Var(&size, "size", 4, "image width and height in inches")
	return cmd
}

// loadPattern reads the pattern from the store when from is set, else from
// the coordinate file named by args (stdin for "-").
func (a *app) loadPattern(stdin io.Reader, args []string, from string) (sparsity.ViewConst[int], error) {
	if from != "" {
		if len(args) > 0 {
			return sparsity.ViewConst[int]{}, errors.New("spy: give either a file or --from")
		}
		s, err := a.openStore()
		if err != nil {
			return sparsity.ViewConst[int]{}, err
		}
		defer s.Close()
		p, err := store.GetPattern[int](s, from)
		if err == nil {
			return p.ToViewConst(), nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return sparsity.ViewConst[int]{}, err
		}
		m, err := store.GetCRS[float64, int](s, from)
		if err != nil {
			return sparsity.ViewConst[int]{}, err
		}
		return m.Pattern(), nil
	}

	if len(args) == 0 {
		return sparsity.ViewConst[int]{}, errors.New("spy: no input file")
	}
	r := stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return sparsity.ViewConst[int]{}, err
		}
		defer f.Close()
		r = f
	}
	c, err := readCoords(r)
	if err != nil {
		return sparsity.ViewConst[int]{}, fmt.Errorf("%s: %w", args[0], err)
	}
	return c.pattern(a.settings.Kind).ToViewConst(), nil
}

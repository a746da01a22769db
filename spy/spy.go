// SPDX-License-Identifier: MIT

// Package spy draws and summarizes sparsity patterns.
//
// A spy plot marks every stored (row, column) with a square; row 0 is at the
// top like in a printed matrix. Describe gives the same picture in numbers.
package spy

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/katalvlaran/lvarray/sparsity"
)

// Options controls Plot and Write. Zero fields take the defaults below.
type Options struct {
	Title  string
	Width  vg.Length // default 4 inches
	Height vg.Length // default 4 inches
	Format string    // png, svg, pdf, eps, jpg, tif; default png
	Color  color.Color
}

var formats = map[string]bool{"png": true, "svg": true, "pdf": true, "eps": true, "jpg": true, "jpeg": true, "tif": true, "tiff": true}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 4 * vg.Inch
	}
	if o.Height <= 0 {
		o.Height = 4 * vg.Inch
	}
	if o.Format == "" {
		o.Format = "png"
	}
	o.Format = strings.ToLower(o.Format)
	if o.Color == nil {
		o.Color = color.RGBA{B: 160, A: 255}
	}
	return o
}

// Plot builds the spy plot of p.
func Plot[C sparsity.Integer](p sparsity.ViewConst[C], opts Options) (*plot.Plot, error) {
	opts = opts.withDefaults()
	rows, cols := p.NumRows(), p.NumColumns()

	pl := plot.New()
	pl.Title.Text = opts.Title
	if pl.Title.Text == "" {
		pl.Title.Text = fmt.Sprintf("%d x %d, nnz = %d", rows, cols, p.NumNonZeros())
	}
	pl.X.Label.Text = "column"
	pl.Y.Label.Text = "row"
	pl.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	if p.NumNonZeros() > 0 {
		pts := make(plotter.XYs, 0, p.NumNonZeros())
		p.EachNonZero(func(row int, col C) {
			pts = append(pts, plotter.XY{X: float64(col), Y: float64(row)})
		})
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("spy: %w", err)
		}
		s.GlyphStyle.Shape = draw.BoxGlyph{}
		s.GlyphStyle.Color = opts.Color
		s.GlyphStyle.Radius = glyphRadius(opts, rows, cols)
		pl.Add(s)
	}

	pl.X.Min, pl.X.Max = -0.5, float64(max(cols, 1))-0.5
	pl.Y.Min, pl.Y.Max = -0.5, float64(max(rows, 1))-0.5
	return pl, nil
}

// glyphRadius sizes the squares so neighbours nearly touch, within
// [0.5, 4] points.
func glyphRadius(opts Options, rows, cols int) vg.Length {
	cell := min(opts.Width/vg.Length(max(cols, 1)), opts.Height/vg.Length(max(rows, 1)))
	return min(max(cell*0.4, vg.Points(0.5)), vg.Points(4))
}

// Write renders the spy plot of p to w in opts.Format.
func Write[C sparsity.Integer](w io.Writer, p sparsity.ViewConst[C], opts Options) error {
	opts = opts.withDefaults()
	if !formats[opts.Format] {
		return fmt.Errorf("%w: %q", ErrFormat, opts.Format)
	}
	pl, err := Plot(p, opts)
	if err != nil {
		return err
	}
	wt, err := pl.WriterTo(opts.Width, opts.Height, opts.Format)
	if err != nil {
		return fmt.Errorf("spy: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("spy: write %s: %w", opts.Format, err)
	}
	return nil
}

// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/sparsity"
)

// coords is a parsed coordinate file.
type coords struct {
	rows, cols int
	entries    []coord
	valued     bool
}

type coord struct {
	row, col int
	v        float64
}

// readCoords reads "rows cols" followed by "row col [value]" lines. Either
// every entry line has a value or none has.
func readCoords(r io.Reader) (*coords, error) {
	sc := bufio.NewScanner(r)
	c := &coords{}
	header := false
	line := 0
	for sc.Scan() {
		line++
		text, _, _ := strings.Cut(sc.Text(), "#")
		f := strings.Fields(text)
		if len(f) == 0 {
			continue
		}
		nums, err := atois(f[:min(len(f), 2)])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !header {
			if len(f) != 2 || nums[0] < 0 || nums[1] < 0 {
				return nil, fmt.Errorf("line %d: want \"rows cols\", got %q", line, text)
			}
			c.rows, c.cols, header = nums[0], nums[1], true
			continue
		}
		if len(f) < 2 || len(f) > 3 {
			return nil, fmt.Errorf("line %d: want \"row col [value]\", got %q", line, text)
		}
		if nums[0] < 0 || nums[0] >= c.rows || nums[1] < 0 || nums[1] >= c.cols {
			return nil, fmt.Errorf("line %d: (%d, %d) outside %d x %d", line, nums[0], nums[1], c.rows, c.cols)
		}
		e := coord{row: nums[0], col: nums[1]}
		if hasValue := len(f) == 3; len(c.entries) == 0 {
			c.valued = hasValue
		} else if hasValue != c.valued {
			return nil, fmt.Errorf("line %d: mixed entries with and without values", line)
		}
		if c.valued {
			if e.v, err = strconv.ParseFloat(f[2], 64); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		c.entries = append(c.entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !header {
		return nil, errors.New("empty coordinate file")
	}
	return c, nil
}

func atois(f []string) ([]int, error) {
	out := make([]int, len(f))
	for i, s := range f {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// pattern builds the sparsity pattern of c.
func (c *coords) pattern(kind buffer.Kind) *sparsity.SparsityPattern[int] {
	p := sparsity.New[int](c.rows, c.cols, 0, buffer.WithKind(kind), buffer.WithName("coords"))
	for _, e := range c.entries {
		p.InsertNonZero(e.row, e.col)
	}
	p.Compress()
	return p
}

// matrix builds the matrix of c; a repeated coordinate keeps its first
// value.
func (c *coords) matrix(kind buffer.Kind) *sparsity.CRSMatrix[float64, int] {
	m := sparsity.NewCRS[float64, int](c.rows, c.cols, 0, buffer.WithKind(kind), buffer.WithName("coords"))
	for _, e := range c.entries {
		m.InsertNonZero(e.row, e.col, e.v)
	}
	m.Compress()
	return m
}

// SPDX-License-Identifier: MIT

package array

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvarray/layout"
)

// format writes s as "{ a, b }" per dimension in logical order. An extent of
// zero prints as "{}".
func format[T any](s Slice[T]) string {
	var sb strings.Builder
	writeSlice(&sb, s)
	return sb.String()
}

func writeSlice[T any](sb *strings.Builder, s Slice[T]) {
	n := s.dims[0]
	if n == 0 {
		sb.WriteString("{}")
		return
	}
	sb.WriteString("{ ")
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		if len(s.dims) == 1 {
			fmt.Fprint(sb, s.data[layout.LinearIndex(s.strides, s.usd, i)])
		} else {
			writeSlice(sb, s.Index(i))
		}
	}
	sb.WriteString(" }")
}

// Parse reads the brace text form into a new array with permutation perm.
// Values appear in logical row-major order and are converted by parseValue.
// "{}" yields an empty array of the permutation's rank. Every level but the
// innermost must hold braced sub-arrays, and sub-arrays may not be empty, so
// the "{ {}, {} }" printed for a zero inner extent does not parse back.
//
// Errors:
//   - ErrMissingDelimiter, ErrUnbalanced, ErrEmptySubArray, ErrSyntax for
//     malformed structure.
//   - ErrRankMismatch when the nesting depth is not perm.Rank().
//   - ErrInconsistentDims when siblings differ in length.
//   - ErrInvalidValue wrapping the parseValue error.
func Parse[T any](text string, perm layout.Permutation, parseValue func(string) (T, error), opts ...Option) (*Array[T], error) {
	rank := perm.Rank()
	if err := checkSpaceDelimited(text); err != nil {
		return nil, err
	}
	s := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, text)

	if s == "{}" {
		return NewWithOptions[T](perm, make([]int, rank), opts...), nil
	}
	dims, err := parseDims(s, rank)
	if err != nil {
		return nil, err
	}

	tokens := strings.FieldsFunc(s, func(r rune) bool { return r == '{' || r == '}' || r == ',' })
	if len(tokens) != layout.Size(dims) {
		return nil, fmt.Errorf("%w: %d values for dimensions %v", ErrInconsistentDims, len(tokens), dims)
	}

	out := NewWithOptions[T](perm, dims, opts...)
	view := out.ToSlice()
	k := 0
	var perr error
	view.Each(func(_ T, idx []int) {
		if perr != nil {
			return
		}
		v, err := parseValue(tokens[k])
		if err != nil {
			perr = fmt.Errorf("%w %q: %v", ErrInvalidValue, tokens[k], err)
			return
		}
		view.Set(v, idx...)
		k++
	})
	if perr != nil {
		return nil, perr
	}
	return out, nil
}

// checkSpaceDelimited rejects two values separated only by whitespace.
func checkSpaceDelimited(text string) error {
	valueOnLeft, spaceOnLeft := false, false
	for _, c := range text {
		switch c {
		case '{', '}', ',':
			valueOnLeft, spaceOnLeft = false, false
		case ' ', '\t', '\n', '\r':
			spaceOnLeft = true
		default:
			if valueOnLeft && spaceOnLeft {
				return fmt.Errorf("%w: value sequence without ',' in %q", ErrMissingDelimiter, text)
			}
			valueOnLeft, spaceOnLeft = true, false
		}
	}
	return nil
}

// parseDims validates the brace structure of s (spaces removed) and derives
// the extents. The first closing of each level fixes its extent; later
// siblings must match it.
func parseDims(s string, rank int) ([]int, error) {
	if strings.Contains(s, "}{") {
		return nil, fmt.Errorf("%w: sub-arrays in %q", ErrMissingDelimiter, s)
	}
	if s == "" || s[0] != '{' {
		return nil, fmt.Errorf("%w: input must start with '{': %q", ErrSyntax, s)
	}
	if strings.Count(s, "{") != strings.Count(s, "}") {
		return nil, fmt.Errorf("%w: %q", ErrUnbalanced, s)
	}
	if strings.Contains(s, "{}") {
		return nil, fmt.Errorf("%w: %q", ErrEmptySubArray, s)
	}
	depth := strings.IndexFunc(s, func(r rune) bool { return r != '{' })
	if depth != rank {
		return nil, fmt.Errorf("%w: text has %d dimensions, want %d", ErrRankMismatch, depth, rank)
	}

	dims := make([]int, rank)
	current := make([]int, rank)
	fixed := make([]bool, rank)
	for i := range dims {
		dims[i], current[i] = 1, 1
	}

	level := -1
	var last byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '{':
			level++
			if level >= rank {
				return nil, fmt.Errorf("%w: nesting deeper than %d at offset %d", ErrRankMismatch, rank, i)
			}
		case '}':
			if level < 0 {
				return nil, fmt.Errorf("%w: extra '}' at offset %d", ErrUnbalanced, i)
			}
			if fixed[level] && dims[level] != current[level] {
				return nil, fmt.Errorf("%w: dimension %d is %d, then %d", ErrInconsistentDims, level, dims[level], current[level])
			}
			dims[level] = current[level]
			fixed[level] = true
			current[level] = 1
			level--
			if level < 0 && i < len(s)-1 {
				return nil, fmt.Errorf("%w: text continues after the closing '}'", ErrUnbalanced)
			}
		case ',':
			if last == '{' || last == ',' {
				return nil, fmt.Errorf("%w: ',' follows '%c'", ErrSyntax, last)
			}
			if level < 0 {
				return nil, fmt.Errorf("%w: ',' outside braces", ErrSyntax)
			}
			current[level]++
		default:
			if level != rank-1 {
				return nil, fmt.Errorf("%w: value at nesting level %d of %d, offset %d", ErrSyntax, level+1, rank, i)
			}
		}
		last = c
	}
	if level != -1 {
		return nil, fmt.Errorf("%w: %q", ErrUnbalanced, s)
	}
	return dims, nil
}

// ParseInts parses int values.
func ParseInts(text string, perm layout.Permutation, opts ...Option) (*Array[int], error) {
	return Parse(text, perm, strconv.Atoi, opts...)
}

// ParseFloats parses float64 values.
func ParseFloats(text string, perm layout.Permutation, opts ...Option) (*Array[float64], error) {
	return Parse(text, perm, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) }, opts...)
}

// ParseStrings keeps every token as-is.
func ParseStrings(text string, perm layout.Permutation, opts ...Option) (*Array[string], error) {
	return Parse(text, perm, func(s string) (string, error) { return s, nil }, opts...)
}

// MustParse is Parse that panics on error. Use it for literals.
func MustParse[T any](text string, perm layout.Permutation, parseValue func(string) (T, error)) *Array[T] {
	a, err := Parse(text, perm, parseValue)
	if err != nil {
		panic(err)
	}
	return a
}

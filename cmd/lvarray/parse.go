// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvarray/array"
	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/layout"
	"github.com/katalvlaran/lvarray/store"
)

func newParseCmd(a *app) *cobra.Command {
	var permName, typ, save string
	cmd := &cobra.Command{
		Use:   "parse TEXT|-",
		Short: "Parse the brace text form and print the array back",
		Example: `  lvarray parse --perm JI '{ { 0, 1, 2 }, { 10, 11, 12 } }'
  echo '{ 1.5, 2 }' | lvarray parse --type float --save v -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := args[0]
			if text == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(b)
			}
			perm, err := permFor(permName, text)
			if err != nil {
				return err
			}
			opts := []array.Option{array.WithBuffer(a.settings.Kind), array.WithName("parse")}
			switch typ {
			case "int":
				return parseAndReport(a, cmd.OutOrStdout(), save, func() (*array.Array[int], error) {
					return array.ParseInts(text, perm, opts...)
				})
			case "float":
				return parseAndReport(a, cmd.OutOrStdout(), save, func() (*array.Array[float64], error) {
					return array.ParseFloats(text, perm, opts...)
				})
			case "string":
				return parseAndReport(a, cmd.OutOrStdout(), save, func() (*array.Array[string], error) {
					return array.ParseStrings(text, perm, opts...)
				})
			default:
				return fmt.Errorf("parse: unknown value type %q (int, float, string)", typ)
			}
		},
	}
	cmd.Flags().StringVarP(&permName, "perm", "p", "", "permutation name such as IJ or JI (default row-major)")
	cmd.Flags().StringVarP(&typ, "type", "t", "int", "value type: int, float or string")
	cmd.Flags().StringVar(&save, "save", "", "store the parsed array under this name")
	return cmd
}

// permFor resolves name, or the row-major permutation of the nesting depth
// of text when name is empty.
func permFor(name, text string) (layout.Permutation, error) {
	if name != "" {
		return layout.Parse(name)
	}
	rank := 0
	for _, r := range strings.TrimSpace(text) {
		if r == '{' {
			rank++
			continue
		}
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			break
		}
	}
	if rank == 0 {
		return layout.Permutation{}, fmt.Errorf("%w: text does not start with '{'", array.ErrMissingDelimiter)
	}
	return layout.Identity(rank), nil
}

func parseAndReport[T any](a *app, out io.Writer, save string, parse func() (*array.Array[T], error)) error {
	arr, err := parse()
	if err != nil {
		return err
	}
	arr.Move(a.settings.Space, false)
	fmt.Fprintf(out, "permutation %s\n", arr.Permutation())
	fmt.Fprintf(out, "dims        %v\n", arr.Dims())
	fmt.Fprintf(out, "strides     %v\n", arr.Strides())
	fmt.Fprintf(out, "storage     %v\n", arr.Data())
	fmt.Fprintf(out, "%s\n", arr)
	if save == "" {
		return nil
	}
	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	arr.Move(buffer.Host, false)
	return store.PutArray(s, save, arr)
}

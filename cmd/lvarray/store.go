// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvarray/store"
)

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage stored snapshots",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "import NAME FILE|-",
			Short: "Store a coordinate file as a pattern, or as a matrix when it has values",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.importCoords(cmd, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "list [KIND]",
			Short: "List snapshot names",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				kinds := store.Kinds
				if len(args) == 1 {
					kinds = []store.Kind{store.Kind(args[0])}
				}
				return a.withStore(func(s *store.Store) error {
					for _, k := range kinds {
						names, err := s.Names(k)
						if err != nil {
							return err
						}
						for _, n := range names {
							fmt.Fprintf(cmd.OutOrStdout(), "%s/%s\n", k, n)
						}
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "stat KIND NAME",
			Short: "Verify a snapshot and print its description",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(func(s *store.Store) error {
					info, err := s.Stat(store.Kind(args[0]), args[1])
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s/%s: %s of %s, %d bytes\n", args[0], args[1], info.Kind, info.Elem, info.Bytes)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "show KIND NAME",
			Short: "Print a snapshot in text form",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(func(s *store.Store) error {
					return show(cmd.OutOrStdout(), s, store.Kind(args[0]), args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "rm KIND NAME",
			Short: "Delete a snapshot",
			Args:  cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				return a.withStore(func(s *store.Store) error {
					return s.Delete(store.Kind(args[0]), args[1])
				})
			},
		},
	)
	return cmd
}

func (a *app) withStore(fn func(*store.Store) error) error {
	s, err := a.openStore()
	if err != nil {
		return err
	}
	err = fn(s)
	if cerr := s.Close(); err == nil {
		err = cerr
	}
	return err
}

func (a *app) importCoords(cmd *cobra.Command, name, path string) error {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	c, err := readCoords(r)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return a.withStore(func(s *store.Store) error {
		if c.valued {
			m := c.matrix(a.settings.Kind)
			fmt.Fprintf(cmd.OutOrStdout(), "stored %s/%s: %d x %d, %d non-zeros\n", store.KindCRS, name, m.NumRows(), m.NumColumns(), m.NumNonZeros())
			return store.PutCRS(s, name, m)
		}
		p := c.pattern(a.settings.Kind)
		fmt.Fprintf(cmd.OutOrStdout(), "stored %s/%s: %d x %d, %d non-zeros\n", store.KindPattern, name, p.NumRows(), p.NumColumns(), p.NumNonZeros())
		return store.PutPattern(s, name, p)
	})
}

// show prints a snapshot using the element type recorded with it.
func show(out io.Writer, s *store.Store, kind store.Kind, name string) error {
	info, err := s.Stat(kind, name)
	if err != nil {
		return err
	}
	var v fmt.Stringer
	switch {
	case kind == store.KindArray && info.Elem == "int":
		v, err = store.GetArray[int](s, name)
	case kind == store.KindArray && info.Elem == "float64":
		v, err = store.GetArray[float64](s, name)
	case kind == store.KindArray && info.Elem == "string":
		v, err = store.GetArray[string](s, name)
	case kind == store.KindArrayOfArrays && info.Elem == "int":
		v, err = store.GetArrayOfArrays[int](s, name)
	case kind == store.KindArrayOfArrays && info.Elem == "float64":
		v, err = store.GetArrayOfArrays[float64](s, name)
	case kind == store.KindPattern && info.Elem == "int":
		v, err = store.GetPattern[int](s, name)
	case kind == store.KindCRS && info.Elem == "float64":
		v, err = store.GetCRS[float64, int](s, name)
	default:
		return fmt.Errorf("show: no text form for %s of %s", kind, info.Elem)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, v)
	if kind == store.KindArray {
		fmt.Fprintln(out)
	}
	return err
}

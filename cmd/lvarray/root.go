// SPDX-License-Identifier: MIT

package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvarray/config"
	"github.com/katalvlaran/lvarray/store"
)

// app carries the state shared by every command.
type app struct {
	cfgPath  string
	verbose  bool
	settings config.Settings
	log      *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "lvarray",
		Short:        "Inspect layouts, arrays and sparsity patterns",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log memory motion to stderr")

	root.AddCommand(
		newLayoutCmd(),
		newParseCmd(a),
		newSpyCmd(a),
		newStoreCmd(a),
	)
	return root
}

func (a *app) configure(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.cfgPath != "" {
		var err error
		if cfg, err = config.LoadFile(a.cfgPath); err != nil {
			return err
		}
	}
	if a.verbose {
		cfg.Log.Move = true
	}
	s, err := config.Apply(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.settings = s
	a.log = log.New(cmd.ErrOrStderr(), s.Prefix, log.Lmsgprefix)
	return nil
}

func (a *app) openStore() (*store.Store, error) {
	opts := store.Options{
		Dir:      a.settings.Store.Dir,
		InMemory: a.settings.Store.InMemory,
		Level:    a.settings.Store.Level,
	}
	if a.verbose {
		opts.Logger = a.log
	}
	s, err := store.Open(opts)
	if err != nil {
		return nil, err
	}
	if a.verbose {
		a.log.Printf("opened store %q", opts.Dir)
	}
	return s, nil
}

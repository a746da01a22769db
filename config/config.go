// SPDX-License-Identifier: MIT

// Package config loads process-wide lvarray defaults from YAML.
//
// A configuration file looks like:
//
//	parallel:
//	  policy: host      # serial | host | device
//	  workers: 8        # <= 0 means GOMAXPROCS
//	buffer:
//	  kind: spaces      # host | spaces
//	  space: host       # host | device
//	log:
//	  move: true
//	  prefix: "lvarray "
//	store:
//	  dir: ./snapshots
//	  in_memory: false
//	  level: default    # fastest | default | better | best
//
// Every key is optional; missing keys keep the values of Default. Unknown
// keys are rejected.
package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/parallel"
)

// Config mirrors the YAML document.
type Config struct {
	Parallel Parallel `yaml:"parallel"`
	Buffer   Buffer   `yaml:"buffer"`
	Log      Log      `yaml:"log"`
	Store    Store    `yaml:"store"`
}

// Parallel selects how container loops run.
type Parallel struct {
	Policy  string `yaml:"policy"`
	Workers int    `yaml:"workers"`
}

// Buffer selects the allocation backend and the space containers are made
// resident in by tools.
type Buffer struct {
	Kind  string `yaml:"kind"`
	Space string `yaml:"space"`
}

// Log controls the memory-motion log.
type Log struct {
	Move   bool   `yaml:"move"`
	Prefix string `yaml:"prefix"`
}

// Store configures the snapshot store used by the command line tool.
type Store struct {
	Dir      string `yaml:"dir"`
	InMemory bool   `yaml:"in_memory"`
	Level    string `yaml:"level"`
}

// Settings is a validated Config with every name resolved.
type Settings struct {
	Policy  parallel.Policy
	Workers int
	Kind    buffer.Kind
	Space   buffer.MemorySpace
	MoveLog bool
	Prefix  string
	Store   Store
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Parallel: Parallel{Policy: "host"},
		Buffer:   Buffer{Kind: "host", Space: "host"},
		Log:      Log{Prefix: "lvarray "},
		Store:    Store{Dir: "lvarray-data", Level: "default"},
	}
}

// Load decodes a YAML document over Default. An empty document yields the
// defaults.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// LoadFile reads and decodes the file at path.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Load(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve validates cfg and resolves its names.
//
// Errors:
//   - ErrInvalidConfig wrapping the parse error of a policy, kind or space.
//   - ErrIncompatible when a device policy or device space is combined with
//     host-only buffers.
func (cfg Config) Resolve() (Settings, error) {
	policy, err := parallel.ParsePolicy(cfg.Parallel.Policy)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: parallel.policy: %w", ErrInvalidConfig, err)
	}
	kind, err := buffer.ParseKind(cfg.Buffer.Kind)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: buffer.kind: %w", ErrInvalidConfig, err)
	}
	space, err := buffer.ParseSpace(cfg.Buffer.Space)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: buffer.space: %w", ErrInvalidConfig, err)
	}
	if kind == buffer.KindHost && (policy == parallel.Device || space == buffer.Device) {
		return Settings{}, fmt.Errorf("%w: policy %s and space %s need buffer kind spaces", ErrIncompatible, policy, space)
	}
	return Settings{
		Policy:  policy,
		Workers: cfg.Parallel.Workers,
		Kind:    kind,
		Space:   space,
		MoveLog: cfg.Log.Move,
		Prefix:  cfg.Log.Prefix,
		Store:   cfg.Store,
	}, nil
}

// Apply resolves cfg and installs it as the process-wide defaults. The move
// log, when enabled, is written to w.
func Apply(cfg Config, w io.Writer) (Settings, error) {
	s, err := cfg.Resolve()
	if err != nil {
		return Settings{}, err
	}
	parallel.SetWorkers(s.Workers)
	parallel.SetDefaultPolicy(s.Policy)
	buffer.SetDefaultKind(s.Kind)
	if s.MoveLog && w != nil {
		buffer.SetMoveLogger(log.New(w, s.Prefix, log.Lmsgprefix))
	} else {
		buffer.SetMoveLogger(nil)
	}
	return s, nil
}

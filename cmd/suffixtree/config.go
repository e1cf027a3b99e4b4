// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the settings of one run. It is loaded from an optional TOML
// file and then overridden by flags that were set on the command line.
type Config struct {
	Format   string      `toml:"format"`    // newick, dump or stats
	Verify   bool        `toml:"verify"`    // Check the tree after construction
	LogLevel string      `toml:"log-level"` // Any logrus level name
	MaxInput string      `toml:"max-input"` // Total input size limit, e.g. "64Mi"; empty for none
	Input    InputConfig `toml:"input"`
}

type InputConfig struct {
	Format     string   `toml:"format"` // auto, lines or fasta
	Files      []string `toml:"files"`
	Terminator string   `toml:"terminator"` // Appended to every sequence
}

func DefaultConfig() Config {
	return Config{
		Format:   "newick",
		LogLevel: "warn",
		Input:    InputConfig{Format: "auto"},
	}
}

// LoadConfig reads a TOML file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "%s is not a valid toml config file", path)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return cfg, errors.Errorf("%s: unknown key %q", path, keys[0].String())
	}
	return cfg, nil
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command suffixtree builds a generalized suffix tree over its arguments and
// prints it in Newick format.
//
// Example usage:
//	$ suffixtree 'xabxa$' 'babxba$'
//	$ suffixtree --terminate '$' -f reads.fa.gz --format stats
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		flags   = DefaultConfig()
	)

	cmd := &cobra.Command{
		Use:   "suffixtree [sequence...]",
		Short: "Build a generalized suffix tree and print it",
		Long: "suffixtree builds one suffix tree over all sequences given as arguments\n" +
			"or read from files, and prints it to standard output. Without any\n" +
			"sequence the tree only has a root and prints as \";\".",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := DefaultConfig()
			if cfgFile != "" {
				var err error
				if cfg, err = LoadConfig(cfgFile); err != nil {
					return err
				}
			}

			// Flags set on the command line take precedence over the file.
			fs := cmd.Flags()
			if fs.Changed("format") {
				cfg.Format = flags.Format
			}
			if fs.Changed("verify") {
				cfg.Verify = flags.Verify
			}
			if fs.Changed("log-level") {
				cfg.LogLevel = flags.LogLevel
			}
			if fs.Changed("max-input") {
				cfg.MaxInput = flags.MaxInput
			}
			if fs.Changed("input-format") {
				cfg.Input.Format = flags.Input.Format
			}
			if fs.Changed("file") {
				cfg.Input.Files = append(cfg.Input.Files, flags.Input.Files...)
			}
			if fs.Changed("terminate") {
				cfg.Input.Terminator = flags.Input.Terminator
			}

			return run(cfg, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&cfgFile, "config", "", "TOML configuration file")
	fs.StringVar(&flags.Format, "format", flags.Format, "output format: newick, dump or stats")
	fs.BoolVar(&flags.Verify, "verify", flags.Verify, "check the structure of the tree before printing it")
	fs.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "log level written to standard error")
	fs.StringVar(&flags.MaxInput, "max-input", flags.MaxInput, "maximum total input size (for example 64Mi)")
	fs.StringVar(&flags.Input.Format, "input-format", flags.Input.Format, "input file format: auto, lines or fasta")
	fs.StringArrayVarP(&flags.Input.Files, "file", "f", nil, "read sequences from a file, \"-\" for standard input (repeatable)")
	fs.StringVar(&flags.Input.Terminator, "terminate", flags.Input.Terminator, "terminator appended to every sequence")
	return cmd
}

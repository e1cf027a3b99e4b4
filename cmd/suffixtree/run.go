// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	strconv "github.com/dsnet/golib/unitconv"
	suffixtree "github.com/homopolymer/SuffixTree"
	"github.com/homopolymer/SuffixTree/internal/seqio"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func newLogger(level string, w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log-level")
	}
	logger := log.New()
	logger.SetOutput(w)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(lvl)
	return logger, nil
}

// loadSequences gathers the positional sequences followed by the records of
// every input file, in order, and appends the terminator to each.
func loadSequences(cfg Config, args []string, logger *log.Logger) ([]string, error) {
	format, err := seqio.ParseFormat(cfg.Input.Format)
	if err != nil {
		return nil, err
	}

	seqs := append([]string(nil), args...)
	for _, file := range cfg.Input.Files {
		recs, err := seqio.ReadFile(file, format)
		if err != nil {
			return nil, err
		}
		logger.WithFields(log.Fields{"file": file, "records": len(recs)}).Debug("Read input file")
		for _, r := range recs {
			seqs = append(seqs, r.Seq)
		}
	}
	if cfg.Input.Terminator != "" {
		for i := range seqs {
			seqs[i] += cfg.Input.Terminator
		}
	}

	if cfg.MaxInput != "" {
		limit, err := strconv.ParsePrefix(cfg.MaxInput, strconv.AutoParse)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid max-input %q", cfg.MaxInput)
		}
		if n := totalLength(seqs); float64(n) > limit {
			return nil, errors.Errorf("input of %d bytes exceeds max-input %s", n, cfg.MaxInput)
		}
	}
	return seqs, nil
}

func totalLength(seqs []string) (n int) {
	for _, s := range seqs {
		n += len(s)
	}
	return n
}

func run(cfg Config, args []string, stdout, stderr io.Writer) error {
	logger, err := newLogger(cfg.LogLevel, stderr)
	if err != nil {
		return err
	}

	seqs, err := loadSequences(cfg, args, logger)
	if err != nil {
		return err
	}

	start := time.Now()
	tr, err := suffixtree.NewGeneralized(nil)
	if err != nil {
		return err
	}
	for i, s := range seqs {
		if _, err := tr.Append(s); err != nil {
			logger.WithFields(log.Fields{"sequence": i, "error": err}).Error("Construction failed")
			return errors.Wrapf(err, "sequence %d", i)
		}
		logger.WithFields(log.Fields{"sequence": i, "length": len(s), "nodes": tr.Len()}).Debug("Appended sequence")
	}
	logger.WithFields(log.Fields{
		"sequences": tr.NumSequences(),
		"nodes":     tr.Len(),
		"shared":    tr.SharedLeaves(),
		"elapsed":   time.Since(start),
	}).Debug("Built tree")

	if cfg.Verify {
		if err := tr.Verify(); err != nil {
			return err
		}
		logger.Debug("Verified tree")
	}

	switch strings.ToLower(cfg.Format) {
	case "newick":
		if err := tr.WriteNewick(stdout); err != nil {
			return err
		}
		_, err = io.WriteString(stdout, "\n")
		return err
	case "dump":
		return tr.Dump(stdout)
	case "stats":
		return writeStats(stdout, tr)
	default:
		return errors.Errorf("unknown output format %q", cfg.Format)
	}
}

func writeStats(w io.Writer, tr *suffixtree.Tree) error {
	var total, leaves int
	for _, n := range tr.SequenceLengths() {
		total += n
	}
	c := tr.Leaves(tr.Root())
	for c.Next() {
		if !c.Node().IsRoot() {
			leaves++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "sequences\t%d\n", tr.NumSequences())
	fmt.Fprintf(&b, "length\t%d\t%sB\n", total, strconv.FormatPrefix(float64(total), strconv.Base1024, 2))
	fmt.Fprintf(&b, "nodes\t%d\n", tr.Len())
	fmt.Fprintf(&b, "leaves\t%d\n", leaves)
	fmt.Fprintf(&b, "shared-leaves\t%d\n", tr.SharedLeaves())
	fmt.Fprintf(&b, "node-counter\t%d\n", tr.NodeCount())
	fmt.Fprintf(&b, "leaf-counter\t%d\n", tr.LeafCount())
	_, err := io.WriteString(w, b.String())
	return err
}

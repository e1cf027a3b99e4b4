// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package seqio reads sequences for the suffixtree command from plain or
// compressed files.
//
// A file is decompressed according to its extension and then parsed either as
// one sequence per line or as FASTA.
package seqio

import (
	"bufio"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dsnet/compress/brotli"
	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

// ErrFormat reports FASTA sequence data that precedes the first header.
var ErrFormat = errors.New("seqio: sequence data before the first FASTA header")

// Format selects how a stream is split into records.
type Format int

const (
	// Auto selects FASTA if the first non-blank line starts with '>',
	// and Lines otherwise.
	Auto Format = iota

	// Lines yields one record per non-empty line.
	Lines

	// FASTA yields one record per '>' header; the sequence lines that
	// follow a header are concatenated.
	FASTA
)

var formatNames = map[Format]string{Auto: "auto", Lines: "lines", FASTA: "fasta"}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// ParseFormat parses the name of a Format, ignoring case.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return Auto, errors.Errorf("seqio: unknown input format %q", s)
}

// Record is a named sequence.
type Record struct {
	Name string
	Seq  string
}

// Decoder wraps a compressed stream.
type Decoder func(io.Reader) (io.ReadCloser, error)

// Decoders maps a lower case file extension to its decompressor.
var Decoders = map[string]Decoder{
	".gz": func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	},
	".zst": func(r io.Reader) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	},
	".xz": func(r io.Reader) (io.ReadCloser, error) {
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return ioutil.NopCloser(xr), nil
	},
	".bz2": func(r io.Reader) (io.ReadCloser, error) {
		return bzip2.NewReader(r, nil)
	},
	".br": func(r io.Reader) (io.ReadCloser, error) {
		return brotli.NewReader(r, nil)
	},
}

type fileReader struct {
	io.ReadCloser          // Decompressed stream
	f             *os.File // Underlying file; nil for stdin
}

func (fr *fileReader) Close() error {
	err := fr.ReadCloser.Close()
	if fr.f != nil {
		if errf := fr.f.Close(); err == nil {
			err = errf
		}
	}
	return err
}

// Open opens the named file and returns its decompressed contents.
// The path "-" denotes standard input, which is read as is.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return ioutil.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	dec, ok := Decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return &fileReader{ReadCloser: ioutil.NopCloser(f), f: f}, nil
	}
	rc, err := dec(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "decompress %s", path)
	}
	return &fileReader{ReadCloser: rc, f: f}, nil
}

// Read parses all records from r.
func Read(r io.Reader, f Format) ([]Record, error) {
	var recs []Record
	var seq strings.Builder
	inRec := false
	flush := func() {
		if inRec {
			recs[len(recs)-1].Seq = seq.String()
			seq.Reset()
		}
	}

	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, errors.Wrapf(err, "read line %d", lineNo)
		}
		if line == "" && err == io.EOF {
			break
		}
		line = strings.TrimRight(line, "\r\n")

		if f == Auto && strings.TrimSpace(line) != "" {
			f = Lines
			if line[0] == '>' {
				f = FASTA
			}
		}
		switch f {
		case Lines:
			if line != "" {
				recs = append(recs, Record{Name: strconv.Itoa(lineNo), Seq: line})
			}
		case FASTA:
			line = strings.TrimSpace(line)
			switch {
			case line == "" || line[0] == ';':
			case line[0] == '>':
				flush()
				recs = append(recs, Record{Name: strings.TrimSpace(line[1:])})
				inRec = true
			case !inRec:
				return nil, errors.Wrapf(ErrFormat, "line %d", lineNo)
			default:
				seq.WriteString(line)
			}
		}
		if err == io.EOF {
			break
		}
	}
	flush()
	return recs, nil
}

// ReadFile opens, decompresses and parses the named file.
func ReadFile(path string, f Format) ([]Record, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	recs, err := Read(rc, f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return recs, nil
}

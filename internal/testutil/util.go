// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package testutil is a collection of testing helper methods.
package testutil

import "io"

// Suffixes returns every non-empty suffix of s, longest first.
func Suffixes(s string) []string {
	ss := make([]string, len(s))
	for i := range ss {
		ss[i] = s[i:]
	}
	return ss
}

// SuffixOwners maps every distinct non-empty suffix of seqs to the ascending
// list of sequence indices it is a suffix of. It is the naive reference for
// the leaves of a generalized suffix tree over terminated sequences.
func SuffixOwners(seqs []string) map[string][]int {
	m := make(map[string][]int)
	for i, s := range seqs {
		for _, sfx := range Suffixes(s) {
			if l := m[sfx]; len(l) == 0 || l[len(l)-1] != i {
				m[sfx] = append(l, i)
			}
		}
	}
	return m
}

// BuggyReader returns Err after N bytes have been read from R.
type BuggyReader struct {
	R   io.Reader
	N   int64 // Number of valid bytes to read
	Err error // Return this error after N bytes
}

func (br *BuggyReader) Read(buf []byte) (int, error) {
	if int64(len(buf)) > br.N {
		buf = buf[:br.N]
	}
	n, err := br.R.Read(buf)
	br.N -= int64(n)
	if err == nil && br.N <= 0 {
		return n, br.Err
	}
	return n, err
}

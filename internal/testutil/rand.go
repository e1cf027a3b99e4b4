// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// Rand implements a deterministic pseudo-random number generator.
// This differs from the math.Rand in that the exact output will be consistent
// across different versions of Go.
type Rand struct {
	cipher.Block
	blk [aes.BlockSize]byte
}

func NewRand(seed int) *Rand {
	var key [aes.BlockSize]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	r, _ := aes.NewCipher(key[:])
	return &Rand{Block: r}
}

func (r *Rand) Int() (x int) {
	r.Encrypt(r.blk[:], r.blk[:])
	x = int(binary.LittleEndian.Uint64(r.blk[:8]) & (1<<62 - 1))
	return x
}

func (r *Rand) Intn(n int) int {
	return r.Int() % n
}

// Sequence returns a string of length n drawn uniformly from alphabet.
func (r *Rand) Sequence(alphabet string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}

// Repetitive returns a string of length n built by repeating short random
// motifs drawn from alphabet, with occasional point mutations. Such strings
// produce deep, degenerate suffix trees.
func (r *Rand) Repetitive(alphabet string, n int) string {
	b := make([]byte, 0, n)
	for len(b) < n {
		motif := r.Sequence(alphabet, 1+r.Intn(4))
		for reps := 1 + r.Intn(8); reps > 0 && len(b) < n; reps-- {
			for i := 0; i < len(motif) && len(b) < n; i++ {
				c := motif[i]
				if r.Intn(16) == 0 {
					c = alphabet[r.Intn(len(alphabet))]
				}
				b = append(b, c)
			}
		}
	}
	return string(b)
}

// Sequences returns cnt sequences with lengths in [minLen, maxLen], each
// followed by terminator.
func (r *Rand) Sequences(alphabet, terminator string, cnt, minLen, maxLen int) []string {
	seqs := make([]string, cnt)
	for i := range seqs {
		n := minLen + r.Intn(maxLen-minLen+1)
		seqs[i] = r.Sequence(alphabet, n) + terminator
	}
	return seqs
}

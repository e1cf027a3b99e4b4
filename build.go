// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package suffixtree

import "github.com/dsnet/golib/errs"

// New builds the suffix tree of a single sequence. All suffixes are tagged
// with sequence index 0.
func New(seq string) (*Tree, error) {
	return NewGeneralized([]string{seq})
}

// NewGeneralized builds one suffix tree over all of seqs. The sequences are
// appended in order and receive indices 0 through len(seqs)-1.
//
// An empty list, or a list of empty sequences, produces a tree that only has
// a root.
func NewGeneralized(seqs []string) (*Tree, error) {
	t := newTree()
	for _, s := range seqs {
		if _, err := t.Append(s); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Append adds every suffix of seq to the tree and returns the index assigned
// to seq.
//
// If Append fails, the tree is left in an unspecified state; the error is
// persistent and returned by Err and by every later call to Append.
func (t *Tree) Append(seq string) (idx int, err error) {
	if t.err != nil {
		return -1, t.err
	}
	defer func() {
		if err != nil {
			t.err, idx = err, -1
		}
	}()
	defer errs.Recover(&err)

	idx = len(t.seqs)
	t.seqs = append(t.seqs, seq)

	b := builder{t: t, seq: idx, s: seq}
	for i := 0; i < len(seq); i++ {
		b.extend(i)
	}

	if idx == 0 {
		t.nodeCnt = b.added + 1
	} else {
		t.nodeCnt += b.added
		if len(seq) > 0 {
			t.leafCnt += len(seq) - 1
		}
	}
	t.seqLens = append(t.seqLens, len(seq))
	return idx, nil
}

// Err returns the persistent construction error, if any.
func (t *Tree) Err() error { return t.err }

// builder holds the state of one sequence scan.
//
// The active point is the pair (p, k): p is an explicit node whose path label
// is a prefix of the k pending characters that precede the current position,
// and k is the number of those characters. Every extension descends from p,
// so p is only a starting hint; the root is always a valid choice.
type builder struct {
	t     *Tree
	seq   int    // Index of the sequence being scanned
	s     string // Sequence being scanned
	p     int    // Active node
	k     int    // Number of pending implicit suffix characters
	added int    // Nodes created during this scan
}

// extend inserts the suffixes s[i-k:i+1] for k from the pending count down to
// zero, stopping early once a suffix is already present implicitly.
func (b *builder) extend(i int) {
	t, s := b.t, b.s
	last := i+1 == len(s)
	pending := nilNode // Internal node created in the previous extension

	for k := b.k; k >= 0; k-- {
		n := b.locate(i, k)
		depth := t.nodes[n].depth
		c, ok := t.child(n, s[i-k+depth])

		if depth == k {
			// The extension point is the explicit node n.
			b.resolve(pending, n)
			pending = nilNode
			switch {
			case !ok:
				b.addLeaf(n, i, k)
			case last && t.isLeaf(c):
				b.share(c)
			default:
				b.p, b.k = n, k+1
				return
			}
			b.advance(n, k)
			continue
		}

		// The extension point lies inside the edge from n to c, or at the
		// frozen end of the leaf c.
		errs.Assert(ok, ErrCorrupt)
		if cn := &t.nodes[c]; cn.depth > k && cn.label[k] == s[i] {
			if last && t.isLeaf(c) {
				b.share(c)
				b.advance(n, k)
				pending = nilNode
				continue
			}
			b.p, b.k = n, k+1
			return
		}
		w := b.addInternal(n, i, k)
		b.resolve(pending, w)
		pending = w
		b.addLeaf(w, i, k)
		b.advance(n, k)
	}
}

// locate returns the deepest explicit internal node whose path label is a
// prefix of s[i-k:i], starting the descent at the active node.
func (b *builder) locate(i, k int) int {
	t, s := b.t, b.s
	n := b.p
	if n == nilNode || t.nodes[n].depth > k {
		n = 0
	}
	for t.nodes[n].depth < k {
		c, ok := t.child(n, s[i-k+t.nodes[n].depth])
		if !ok || t.nodes[c].depth > k || t.isLeaf(c) {
			break
		}
		n = c
	}
	return n
}

// advance moves the active point after an extension located at n. The next
// extension is one character shorter, so it can start from the suffix link.
func (b *builder) advance(n, k int) {
	b.p = b.t.nodes[n].link
	if b.k = k - 1; b.k < 0 {
		b.k = 0
	}
}

// resolve points the suffix link of the pending internal node w at n.
func (b *builder) resolve(w, n int) {
	if w != nilNode {
		b.t.nodes[w].link = n
	}
}

// addInternal splits the edge below n so that a new internal node ends at
// s[i-k:i], and returns the new node. If a leaf ends at s[i-k:i] as well, it
// moves below the new node on a terminal edge.
func (b *builder) addInternal(n, i, k int) int {
	t, s := b.t, b.s
	key := s[i-k+t.nodes[n].depth]
	w := t.add(node{
		seq:    b.seq,
		start:  i - k,
		depth:  k,
		label:  s[i-k : i],
		parent: nilNode,
		link:   nilNode,
	})
	t.attach(n, key, w)
	b.added++
	return w
}

// addLeaf attaches a new leaf below n for the suffix s[i-k:]. The edge label
// of the leaf is frozen to end at the current length of s.
func (b *builder) addLeaf(n, i, k int) {
	t, s := b.t, b.s
	leaf := t.add(node{
		seq:    b.seq,
		start:  i - k,
		depth:  len(s) - i + k,
		label:  s[i-k:],
		parent: nilNode,
		link:   nilNode,
		occ:    []int{b.seq},
	})
	t.attach(n, s[i], leaf)
	b.added++
}

// share records that the current sequence terminates at an existing leaf.
func (b *builder) share(leaf int) {
	nd := &b.t.nodes[leaf]
	for _, v := range nd.occ {
		if v == b.seq {
			return
		}
	}
	nd.occ = append(nd.occ, b.seq)
}

func (t *Tree) isLeaf(n int) bool { return len(t.nodes[n].kids) == 0 }

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package suffixtree

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/homopolymer/SuffixTree/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leafSet maps the path label of every leaf to its occurrences.
func leafSet(t *Tree) map[string][]int {
	m := make(map[string][]int)
	c := t.Leaves(t.Root())
	for c.Next() {
		n := c.Node()
		if n.IsRoot() {
			continue
		}
		m[n.PathLabel()] = n.Occurrences()
	}
	return m
}

func TestNewickVectors(t *testing.T) {
	var vectors = []struct {
		input  []string
		output string
		nodes  int
	}{{
		input:  nil,
		output: ";",
		nodes:  1,
	}, {
		input:  []string{""},
		output: ";",
		nodes:  1,
	}, {
		input:  []string{"a"},
		output: "(0_a);",
		nodes:  2,
	}, {
		input:  []string{"aa"},
		output: "(0_aa);",
		nodes:  2,
	}, {
		input:  []string{"abc$"},
		output: "(0_$,0_abc$,0_bc$,0_c$);",
		nodes:  5,
	}, {
		input:  []string{"aa$"},
		output: "(0_$,(0_a$,0_aa$));",
		nodes:  5,
	}, {
		input:  []string{"cacao$"},
		output: "(0_$,(0_acao$,0_ao$),(0_cacao$,0_cao$),0_o$);",
		nodes:  9,
	}, {
		input:  []string{"ab$", "ab$"},
		output: "(0_1_$,0_1_ab$,0_1_b$);",
		nodes:  4,
	}}

	for i, v := range vectors {
		tr, err := NewGeneralized(v.input)
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if got := tr.Newick(); got != v.output {
			t.Errorf("test %d, output mismatch:\ngot  %q\nwant %q", i, got, v.output)
		}
		if tr.Len() != v.nodes {
			t.Errorf("test %d, node count mismatch: got %d, want %d", i, tr.Len(), v.nodes)
		}
		if err := tr.Verify(); err != nil {
			t.Errorf("test %d, verify error: %v", i, err)
		}
	}
}

func TestCacaoStructure(t *testing.T) {
	tr, err := New("cacao$")
	require.NoError(t, err)

	assert.Equal(t, 9, tr.NodeCount())
	assert.Equal(t, 0, tr.LeafCount())
	assert.Equal(t, []int{6}, tr.SequenceLengths())
	assert.Equal(t, 1, tr.NumSequences())
	assert.Equal(t, "cacao$", tr.Sequence(0))

	ca, ok := tr.Root().Child('c')
	require.True(t, ok)
	assert.Equal(t, "ca", ca.PathLabel())
	assert.Equal(t, 3, ca.ID())
	start, end := ca.EdgeSpan()
	assert.Equal(t, "ca", tr.Sequence(ca.Sequence())[start:end])

	a, ok := tr.Root().Child('a')
	require.True(t, ok)
	assert.Equal(t, "a", a.PathLabel())
	assert.Equal(t, 5, a.ID())

	// "ca" links to "a", "a" links to the root.
	link, ok := ca.SuffixLink()
	require.True(t, ok)
	assert.Equal(t, a.ID(), link.ID())
	link, ok = a.SuffixLink()
	require.True(t, ok)
	assert.True(t, link.IsRoot())

	// Leaves carry no suffix link.
	leaf, ok := ca.Child('o')
	require.True(t, ok)
	assert.Equal(t, "cao$", leaf.PathLabel())
	assert.Equal(t, "o$", leaf.EdgeLabel())
	_, ok = leaf.SuffixLink()
	assert.False(t, ok)
}

func TestSuffixCompleteness(t *testing.T) {
	var vectors = []struct {
		alphabet string
		size     int
	}{
		{"a", 1}, {"a", 50}, {"ab", 10}, {"ab", 200},
		{"acgt", 5}, {"acgt", 500}, {"abcdefghijklmnopqrstuvwxyz", 300},
	}

	r := testutil.NewRand(0)
	for i, v := range vectors {
		for trial := 0; trial < 10; trial++ {
			s := r.Sequence(v.alphabet, v.size) + "$"
			tr, err := New(s)
			require.NoError(t, err, "test %d", i)
			require.NoError(t, tr.Verify(), "test %d, input %q", i, s)

			want := make(map[string][]int)
			for _, sfx := range testutil.Suffixes(s) {
				want[sfx] = []int{0}
			}
			if diff := cmp.Diff(want, leafSet(tr)); diff != "" {
				t.Fatalf("test %d, input %q, leaves mismatch (-want +got):\n%s", i, s, diff)
			}

			assert.Equal(t, tr.Len(), tr.NodeCount(), "test %d", i)
			internal := tr.Len() - len(s)
			assert.True(t, internal >= 1 && internal <= len(s), "test %d, %d internal nodes", i, internal)
		}
	}
}

func TestRepetitiveSequences(t *testing.T) {
	r := testutil.NewRand(1)
	inputs := []string{
		strings.Repeat("a", 2000) + "$",
		strings.Repeat("ab", 1000) + "$",
		strings.Repeat("aab", 700) + "$",
	}
	for i := 0; i < 5; i++ {
		inputs = append(inputs, r.Repetitive("acgt", 1500)+"$")
	}

	for i, s := range inputs {
		tr, err := New(s)
		require.NoError(t, err, "test %d", i)
		require.NoError(t, tr.Verify(), "test %d", i)
		assert.Len(t, leafSet(tr), len(s), "test %d", i)
		assert.Equal(t, tr.Len(), tr.NodeCount(), "test %d", i)
	}
}

func TestUnterminatedSequence(t *testing.T) {
	// Without a terminator, suffixes that end inside the tree are absorbed
	// by the leaf they are a prefix of.
	tr, err := New("abab")
	require.NoError(t, err)
	require.NoError(t, tr.Verify())
	assert.Equal(t, map[string][]int{"abab": {0}, "bab": {0}}, leafSet(tr))
	assert.Equal(t, "(0_abab,0_bab);", tr.Newick())
}

func TestGeneralizedSharing(t *testing.T) {
	seqs := []string{"xabxa$", "babxba$"}
	tr, err := NewGeneralized(seqs)
	require.NoError(t, err)
	require.NoError(t, tr.Verify())

	var shared []string
	for label, occ := range leafSet(tr) {
		if len(occ) > 1 {
			assert.Equal(t, []int{0, 1}, occ, "leaf %q", label)
			shared = append(shared, label)
		}
	}
	sort.Strings(shared)
	assert.Equal(t, []string{"$", "a$"}, shared)
	assert.Equal(t, 2, tr.SharedLeaves())

	if diff := cmp.Diff(testutil.SuffixOwners(seqs), leafSet(tr)); diff != "" {
		t.Errorf("leaves mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, tr.Len(), tr.NodeCount())
	assert.Equal(t, 6, tr.LeafCount())
	assert.Equal(t, []int{6, 7}, tr.SequenceLengths())
}

func TestGeneralizedRandom(t *testing.T) {
	r := testutil.NewRand(2)
	for trial := 0; trial < 50; trial++ {
		alphabet := []string{"ab", "acgt", "xyz"}[trial%3]
		seqs := r.Sequences(alphabet, "$", 1+r.Intn(6), 0, 20)

		tr := newTree()
		for i, s := range seqs {
			idx, err := tr.Append(s)
			require.NoError(t, err, "trial %d", trial)
			require.Equal(t, i, idx)
			require.NoError(t, tr.Verify(), "trial %d, after %q", trial, seqs[:i+1])
		}

		if diff := cmp.Diff(testutil.SuffixOwners(seqs), leafSet(tr)); diff != "" {
			t.Fatalf("trial %d, input %q, leaves mismatch (-want +got):\n%s", trial, seqs, diff)
		}
		assert.Equal(t, tr.Len(), tr.NodeCount(), "trial %d", trial)
	}
}

func TestDuplicateSequences(t *testing.T) {
	seqs := []string{"banana$", "banana$", "banana$"}
	tr, err := NewGeneralized(seqs)
	require.NoError(t, err)
	require.NoError(t, tr.Verify())

	single, err := New("banana$")
	require.NoError(t, err)

	// The third copy adds no nodes, it only records occurrences.
	assert.Equal(t, single.Len(), tr.Len())
	for label, occ := range leafSet(tr) {
		assert.Equal(t, []int{0, 1, 2}, occ, "leaf %q", label)
	}
}

// hasPath reports whether s spells a path from the root of tr.
func hasPath(tr *Tree, s string) bool {
	n := tr.Root()
	for d := 0; d < len(s); {
		c, ok := n.Child(s[d])
		if !ok {
			return false
		}
		label := c.PathLabel()
		end := len(label)
		if end > len(s) {
			end = len(s)
		}
		if label[d:end] != s[d:end] {
			return false
		}
		d, n = end, c
	}
	return true
}

func TestUnterminatedGeneralized(t *testing.T) {
	var vectors = []struct {
		input  []string
		output string
		nodes  int
	}{{
		input:  []string{"ab", "abc"},
		output: "((0_ab,1_abc),(0_b,1_bc),1_c);",
		nodes:  8,
	}, {
		input:  []string{"a", "aa"},
		output: "((0_a,1_aa));",
		nodes:  4,
	}, {
		input:  []string{"ab", "ab"},
		output: "(0_1_ab,0_1_b);",
		nodes:  3,
	}, {
		// Suffixes that end inside an internal edge stay implicit.
		input:  []string{"ab", "abc", "ab"},
		output: "((0_ab,1_abc),(0_b,1_bc),1_c);",
		nodes:  8,
	}}

	for i, v := range vectors {
		tr, err := NewGeneralized(v.input)
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if got := tr.Newick(); got != v.output {
			t.Errorf("test %d, output mismatch:\ngot  %q\nwant %q", i, got, v.output)
		}
		if tr.Len() != v.nodes {
			t.Errorf("test %d, node count mismatch: got %d, want %d", i, tr.Len(), v.nodes)
		}
		if err := tr.Verify(); err != nil {
			t.Errorf("test %d, verify error: %v", i, err)
		}
	}
}

func TestTerminalLeaves(t *testing.T) {
	tr, err := NewGeneralized([]string{"ab", "abc"})
	require.NoError(t, err)

	w, ok := tr.Root().Child('a')
	require.True(t, ok)
	assert.False(t, w.IsLeaf())
	assert.Equal(t, "ab", w.PathLabel())
	assert.Equal(t, 1, w.Sequence())

	kids := w.Children()
	require.Len(t, kids, 2)
	leaf := kids[0]
	assert.True(t, leaf.IsTerminal())
	assert.True(t, leaf.IsLeaf())
	assert.Equal(t, byte(0), leaf.Key())
	assert.Equal(t, "", leaf.EdgeLabel())
	assert.Equal(t, "ab", leaf.PathLabel())
	assert.Equal(t, w.PathLength(), leaf.PathLength())
	assert.Equal(t, []int{0}, leaf.Occurrences())
	start, end := leaf.EdgeSpan()
	assert.Equal(t, start, end)
	assert.False(t, kids[1].IsTerminal())
	assert.Equal(t, "abc", kids[1].PathLabel())

	// The frozen leaf is no longer reachable by byte, the new node is.
	_, ok = w.Child(0)
	assert.False(t, ok)

	// "ab" links to "b", which was split the same way.
	link, ok := w.SuffixLink()
	require.True(t, ok)
	assert.Equal(t, "b", link.PathLabel())
}

func TestStickyError(t *testing.T) {
	tr, err := New("ab")
	require.NoError(t, err)
	leaf, ok := tr.Root().Child('a')
	require.True(t, ok)

	// A leaf that ends above its parent cannot be split.
	tr.nodes[leaf.ID()].depth = 0
	idx, err := tr.Append("abc")
	assert.Equal(t, -1, idx)
	assert.Equal(t, ErrCorrupt, err)
	assert.Equal(t, ErrCorrupt, tr.Err())

	_, err = tr.Append("xyz")
	assert.Equal(t, ErrCorrupt, err)
}

func TestUnterminatedRandom(t *testing.T) {
	r := testutil.NewRand(8)
	var terminals int
	for trial := 0; trial < 300; trial++ {
		seqs := r.Sequences([]string{"ab", "acgt"}[trial%2], "", 1+r.Intn(5), 0, 12)

		tr := newTree()
		for i, s := range seqs {
			_, err := tr.Append(s)
			require.NoError(t, err, "trial %d, input %q", trial, seqs[:i+1])
			require.NoError(t, tr.Verify(), "trial %d, input %q", trial, seqs[:i+1])
		}
		for _, s := range seqs {
			for _, sfx := range testutil.Suffixes(s) {
				assert.True(t, hasPath(tr, sfx), "trial %d, input %q, missing %q", trial, seqs, sfx)
			}
		}
		assert.Equal(t, tr.Len(), tr.NodeCount(), "trial %d", trial)

		c := tr.Leaves(tr.Root())
		for c.Next() {
			if c.Node().IsTerminal() {
				terminals++
			}
		}
	}
	assert.NotZero(t, terminals)
}

func TestEmptySequences(t *testing.T) {
	tr, err := NewGeneralized([]string{"", "ab$", ""})
	require.NoError(t, err)
	require.NoError(t, tr.Verify())
	assert.Equal(t, []int{0, 3, 0}, tr.SequenceLengths())
	assert.Equal(t, tr.Len(), tr.NodeCount())
	assert.Equal(t, 2, tr.LeafCount())
	assert.Equal(t, "(1_$,1_ab$,1_b$);", tr.Newick())

	tr, err = NewGeneralized(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, 0, tr.NodeCount())
	assert.True(t, tr.Root().IsLeaf())
}

// shape is a comparable snapshot of a tree that ignores node ids.
type shape struct {
	Path   string
	Parent string
	Occ    []int
	Link   string
}

func treeShape(t *Tree) []shape {
	var out []shape
	c := t.Preorder(t.Root())
	for c.Next() {
		n := c.Node()
		s := shape{Path: n.PathLabel(), Occ: n.Occurrences()}
		if p, ok := n.Parent(); ok {
			s.Parent = p.PathLabel()
		}
		if l, ok := n.SuffixLink(); ok {
			s.Link = l.PathLabel()
		}
		out = append(out, s)
	}
	return out
}

func TestDeterminism(t *testing.T) {
	r := testutil.NewRand(3)
	for trial := 0; trial < 10; trial++ {
		seqs := r.Sequences("acgt", "$", 4, 5, 40)
		t1, err := NewGeneralized(seqs)
		require.NoError(t, err)
		t2, err := NewGeneralized(seqs)
		require.NoError(t, err)

		assert.Equal(t, t1.Newick(), t2.Newick(), "trial %d", trial)
		if diff := cmp.Diff(treeShape(t1), treeShape(t2)); diff != "" {
			t.Errorf("trial %d, shape mismatch (-first +second):\n%s", trial, diff)
		}
	}
}

func TestSuffixLinks(t *testing.T) {
	r := testutil.NewRand(4)
	for trial := 0; trial < 20; trial++ {
		s := r.Sequence("ab", 100) + "$"
		tr, err := New(s)
		require.NoError(t, err)

		// Every internal node of a single terminated sequence ends up with a
		// resolved link to its path minus the first character.
		c := tr.Preorder(tr.Root())
		for c.Next() {
			n := c.Node()
			if n.IsLeaf() || n.IsRoot() {
				continue
			}
			l, ok := n.SuffixLink()
			if !ok {
				continue
			}
			assert.Equal(t, n.PathLabel()[1:], l.PathLabel(), fmt.Sprintf("trial %d, node %d", trial, n.ID()))
		}
	}
}

func benchmarkBuild(b *testing.B, gen func(*testutil.Rand, int) string, n int) {
	s := gen(testutil.NewRand(0), n) + "$"
	b.SetBytes(int64(len(s)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := New(s); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func random(r *testutil.Rand, n int) string     { return r.Sequence("acgt", n) }
func repetitive(r *testutil.Rand, n int) string { return r.Repetitive("acgt", n) }
func unary(_ *testutil.Rand, n int) string      { return strings.Repeat("a", n) }

func BenchmarkBuildRandom1e3(b *testing.B)     { benchmarkBuild(b, random, 1e3) }
func BenchmarkBuildRandom1e4(b *testing.B)     { benchmarkBuild(b, random, 1e4) }
func BenchmarkBuildRandom1e5(b *testing.B)     { benchmarkBuild(b, random, 1e5) }
func BenchmarkBuildRepetitive1e3(b *testing.B) { benchmarkBuild(b, repetitive, 1e3) }
func BenchmarkBuildRepetitive1e4(b *testing.B) { benchmarkBuild(b, repetitive, 1e4) }
func BenchmarkBuildRepetitive1e5(b *testing.B) { benchmarkBuild(b, repetitive, 1e5) }
func BenchmarkBuildUnary1e3(b *testing.B)      { benchmarkBuild(b, unary, 1e3) }
func BenchmarkBuildUnary1e4(b *testing.B)      { benchmarkBuild(b, unary, 1e4) }
func BenchmarkBuildUnary1e5(b *testing.B)      { benchmarkBuild(b, unary, 1e5) }

func BenchmarkNewick(b *testing.B) {
	tr, err := New(testutil.NewRand(0).Sequence("acgt", 1e4) + "$")
	if err != nil {
		b.Fatalf("unexpected error: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tr.Newick()
	}
}

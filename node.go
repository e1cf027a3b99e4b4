// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package suffixtree

import (
	"sort"

	"github.com/dsnet/golib/errs"
)

// Tree is a generalized suffix tree. All nodes live in a single arena owned by
// the tree and refer to each other by index; the root is always index 0.
//
// A Tree has a single writer. Append must not run concurrently with any
// reader, but any number of cursors may read a finished tree at once.
type Tree struct {
	nodes   []node   // Arena of nodes, indexed by id
	seqs    []string // Inserted sequences, indexed by sequence number
	seqLens []int    // Length of every inserted sequence

	nodeCnt int   // Accumulated node counter
	leafCnt int   // Accumulated leaf counter
	err     error // Persistent construction error
}

type edge struct {
	key  int // Edge byte, or termKey
	node int
}

type node struct {
	seq   int    // Sequence that the labels of this node index into
	start int    // Offset of the path label in seqs[seq]
	depth int    // Length of the path label
	label string // Path label; a substring of seqs[seq]
	key   int    // First character of the edge from the parent, or termKey

	parent int
	link   int    // Suffix link; nilNode if unresolved
	occ    []int  // Sequences that terminate at this leaf
	kids   []edge // Children sorted by key
}

func newTree() *Tree {
	t := new(Tree)
	t.nodes = append(t.nodes, node{parent: nilNode, link: 0})
	return t
}

// add appends n to the arena and returns its id.
func (t *Tree) add(n node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

// child returns the child of p whose edge starts with key.
func (t *Tree) child(p int, key byte) (int, bool) {
	kids, k := t.nodes[p].kids, int(key)
	i := sort.Search(len(kids), func(i int) bool { return kids[i].key >= k })
	if i < len(kids) && kids[i].key == k {
		return kids[i].node, true
	}
	return nilNode, false
}

// attach makes c a child of p under key. If p already has a child under key,
// the edge to that child is split: c is spliced in between and the former
// child is moved below c, keyed by its path label at the depth of c.
//
// The path label of c must extend the path label of p, and in the split case
// must be a prefix of the path label of the former child. It may only equal
// that path label if the former child is a leaf, which then hangs below c on
// an empty terminal edge.
func (t *Tree) attach(p int, key byte, c int) {
	pn, cn := &t.nodes[p], &t.nodes[c]
	k := int(key)
	cn.key = k
	cn.parent = p

	kids := pn.kids
	i := sort.Search(len(kids), func(i int) bool { return kids[i].key >= k })
	if i == len(kids) || kids[i].key != k {
		pn.kids = append(pn.kids, edge{})
		copy(pn.kids[i+1:], pn.kids[i:])
		pn.kids[i] = edge{key: k, node: c}
		return
	}

	old := kids[i].node
	on := &t.nodes[old]
	errs.Assert(pn.depth < cn.depth && cn.depth <= on.depth, ErrCorrupt)
	errs.Assert(cn.depth < on.depth || len(on.kids) == 0, ErrCorrupt)
	errs.Assert(len(cn.kids) == 0, ErrCorrupt)
	if cn.depth < on.depth {
		on.key = int(on.label[cn.depth])
	} else {
		on.key = termKey
	}
	on.parent = c
	cn.kids = append(cn.kids, edge{key: on.key, node: old})
	pn.kids[i].node = c
}

// Root returns the root node.
func (t *Tree) Root() Node { return Node{t, 0} }

// Node returns the node with the given id.
func (t *Tree) Node(id int) (Node, bool) {
	if id < 0 || id >= len(t.nodes) {
		return Node{}, false
	}
	return Node{t, id}, true
}

// Len reports the number of nodes in the tree, the root included.
func (t *Tree) Len() int { return len(t.nodes) }

// NodeCount reports the accumulated node counter. The first sequence
// contributes its created nodes plus one for the root, every later sequence
// contributes the nodes it created. For any tree built from at least one
// sequence it equals Len.
func (t *Tree) NodeCount() int { return t.nodeCnt }

// LeafCount reports the accumulated leaf counter. By convention only
// sequences after the first contribute, each with its length minus one.
func (t *Tree) LeafCount() int { return t.leafCnt }

// NumSequences reports the number of inserted sequences.
func (t *Tree) NumSequences() int { return len(t.seqs) }

// Sequence returns the i-th inserted sequence.
func (t *Tree) Sequence(i int) string { return t.seqs[i] }

// SequenceLengths returns the lengths of the inserted sequences in insertion
// order.
func (t *Tree) SequenceLengths() []int {
	return append([]int(nil), t.seqLens...)
}

// SharedLeaves reports the number of leaves on which more than one suffix
// terminates.
func (t *Tree) SharedLeaves() (n int) {
	for i := range t.nodes {
		if len(t.nodes[i].occ) > 1 {
			n++
		}
	}
	return n
}

// Node is a handle to a vertex of a Tree. The zero Node is invalid.
// Handles stay valid while the tree grows.
type Node struct {
	t  *Tree
	id int
}

func (n Node) node() *node { return &n.t.nodes[n.id] }

// Valid reports whether n refers to a node.
func (n Node) Valid() bool { return n.t != nil }

// ID returns the identifier of n. Identifiers are assigned in creation order,
// starting with 0 for the root.
func (n Node) ID() int { return n.id }

// Tree returns the tree that owns n.
func (n Node) Tree() *Tree { return n.t }

// Key returns the first character of the edge from the parent of n.
// It is 0 for the root and for a terminal leaf.
func (n Node) Key() byte {
	if k := n.node().key; k > 0 {
		return byte(k)
	}
	return 0
}

// IsTerminal reports whether n is a leaf on an empty edge. Such a leaf ends
// exactly where its parent ends; it is created when a later sequence runs past
// the frozen end of the leaf.
func (n Node) IsTerminal() bool { return n.node().key == termKey }

// Occurrences returns the sequence indices of the suffixes that terminate at n,
// in the order they were recorded. It is empty for internal nodes.
func (n Node) Occurrences() []int {
	return append([]int(nil), n.node().occ...)
}

// Sequence returns the index of the sequence that EdgeSpan refers to.
func (n Node) Sequence() int { return n.node().seq }

// EdgeSpan returns the half-open range of Sequence that labels the edge from
// the parent of n. It is empty for the root.
func (n Node) EdgeSpan() (start, end int) {
	nd := n.node()
	end = nd.start + nd.depth
	if nd.parent == nilNode {
		return end, end
	}
	return nd.start + n.t.nodes[nd.parent].depth, end
}

// EdgeLabel returns the label of the edge from the parent of n.
func (n Node) EdgeLabel() string {
	nd := n.node()
	if nd.parent == nilNode {
		return ""
	}
	return nd.label[n.t.nodes[nd.parent].depth:]
}

// PathLabel returns the concatenated edge labels from the root to n.
func (n Node) PathLabel() string { return n.node().label }

// PathLength returns the length of PathLabel.
func (n Node) PathLength() int { return n.node().depth }

// Parent returns the parent of n. The root has none.
func (n Node) Parent() (Node, bool) {
	if p := n.node().parent; p != nilNode {
		return Node{n.t, p}, true
	}
	return Node{}, false
}

// SuffixLink returns the node whose path label is the path label of n without
// its first character. Leaves carry no link; the root links to itself.
func (n Node) SuffixLink() (Node, bool) {
	if l := n.node().link; l != nilNode {
		return Node{n.t, l}, true
	}
	return Node{}, false
}

// Children returns the children of n in ascending key order.
func (n Node) Children() []Node {
	kids := n.node().kids
	ns := make([]Node, len(kids))
	for i, e := range kids {
		ns[i] = Node{n.t, e.node}
	}
	return ns
}

// Child returns the child of n whose edge starts with key.
func (n Node) Child(key byte) (Node, bool) {
	if c, ok := n.t.child(n.id, key); ok {
		return Node{n.t, c}, true
	}
	return Node{}, false
}

// NumChildren reports the number of children of n.
func (n Node) NumChildren() int { return len(n.node().kids) }

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool { return len(n.node().kids) == 0 }

// IsRoot reports whether n is the root.
func (n Node) IsRoot() bool { return n.node().parent == nilNode }

// FindRoot walks the parent links of n up to the root.
func (n Node) FindRoot() Node {
	id := n.id
	for p := n.t.nodes[id].parent; p != nilNode; p = n.t.nodes[id].parent {
		id = p
	}
	return Node{n.t, id}
}

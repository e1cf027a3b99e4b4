// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package suffixtree

// Order is the visiting order of a Cursor.
type Order int

const (
	// PostOrder visits every descendant of a node before the node itself.
	PostOrder Order = iota

	// PreOrder visits a node before its descendants.
	PreOrder
)

// Cursor is a depth-first walk over a subtree. Children are visited in
// ascending key order. The walk keeps its own stack, so degenerate trees of
// any depth can be traversed.
//
// A Cursor is positioned before the first node; each call to Next advances it
// by one node. Cursors only read the tree and are independent of each other.
type Cursor struct {
	t      *Tree
	order  Order
	leaves bool // Only stop at leaves
	stack  []frame
	cur    int
	pos    int
}

type frame struct {
	node    int
	next    int  // Index of the next child to descend into
	entered bool // Whether the node itself has been seen
}

// NewCursor returns a cursor over the subtree rooted at from. If leavesOnly is
// set, internal nodes are skipped.
func NewCursor(from Node, order Order, leavesOnly bool) *Cursor {
	if !from.Valid() {
		panic("suffixtree: cursor over an invalid node")
	}
	c := &Cursor{t: from.t, order: order, leaves: leavesOnly, cur: nilNode}
	c.stack = append(c.stack, frame{node: from.id})
	return c
}

// Postorder returns a post-order cursor over the subtree rooted at from.
func (t *Tree) Postorder(from Node) *Cursor { return t.cursor(from, PostOrder, false) }

// Preorder returns a pre-order cursor over the subtree rooted at from.
func (t *Tree) Preorder(from Node) *Cursor { return t.cursor(from, PreOrder, false) }

// Leaves returns a cursor over the leaves of the subtree rooted at from, in
// the same relative order as Postorder and Preorder.
func (t *Tree) Leaves(from Node) *Cursor { return t.cursor(from, PostOrder, true) }

// cursor panics unless from belongs to t.
func (t *Tree) cursor(from Node, order Order, leavesOnly bool) *Cursor {
	if from.t != t {
		panic("suffixtree: cursor over a node of another tree")
	}
	return NewCursor(from, order, leavesOnly)
}

// Next advances the cursor to the next node and reports whether there was one.
func (c *Cursor) Next() bool {
	for len(c.stack) > 0 {
		top := len(c.stack) - 1
		f := c.stack[top]
		kids := c.t.nodes[f.node].kids

		if !f.entered {
			c.stack[top].entered = true
			if c.order == PreOrder && c.stop(f.node) {
				return true
			}
		}
		if f.next < len(kids) {
			c.stack[top].next++
			c.stack = append(c.stack, frame{node: kids[f.next].node})
			continue
		}
		c.stack = c.stack[:top]
		if c.order == PostOrder && c.stop(f.node) {
			return true
		}
	}
	c.cur = nilNode
	return false
}

func (c *Cursor) stop(n int) bool {
	if c.leaves && !c.t.isLeaf(n) {
		return false
	}
	c.cur = n
	c.pos++
	return true
}

// Node returns the node the cursor is positioned at. It panics if Next has
// not been called or has returned false.
func (c *Cursor) Node() Node {
	if c.cur == nilNode {
		panic("suffixtree: cursor is not positioned at a node")
	}
	return Node{c.t, c.cur}
}

// Pos reports how many nodes the cursor has visited so far. Two cursors over
// the same subtree with the same order are at the same node iff their
// positions are equal.
func (c *Cursor) Pos() int { return c.pos }

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package suffixtree

import (
	"fmt"

	"github.com/dsnet/golib/errs"
)

type invalidError struct {
	id  int
	msg string
}

func (e invalidError) Error() string {
	return fmt.Sprintf("suffixtree: invalid node %d: %s", e.id, e.msg)
}

// Verify walks the whole tree and checks its structural invariants:
//
//	* the root is the only node without a parent and every node is reachable;
//	* children are keyed by the first character of their edge, keys are unique;
//	* the path length of a node is that of its parent plus its edge length,
//	  and only a leaf may hang on an empty terminal edge;
//	* path labels are substrings of the owning sequence;
//	* only leaves carry sequence occurrences;
//	* resolved suffix links point at the path label minus its first character.
func (t *Tree) Verify() (err error) {
	defer errs.Recover(&err)

	check := func(cond bool, id int, format string, args ...interface{}) {
		if !cond {
			panic(invalidError{id, fmt.Sprintf(format, args...)})
		}
	}

	root := &t.nodes[0]
	check(root.parent == nilNode, 0, "root has a parent")
	check(root.depth == 0 && root.label == "", 0, "root has a non-empty path label")
	check(root.link == 0, 0, "root suffix link is %d", root.link)

	var seen int
	c := t.Preorder(t.Root())
	for c.Next() {
		id := c.Node().id
		nd := &t.nodes[id]
		seen++

		check(nd.seq >= 0 && nd.seq < len(t.seqs) || id == 0, id, "unknown sequence %d", nd.seq)
		if id != 0 {
			s := t.seqs[nd.seq]
			check(nd.start >= 0 && nd.start+nd.depth <= len(s), id, "path span [%d:%d] out of range", nd.start, nd.start+nd.depth)
			check(nd.label == s[nd.start:nd.start+nd.depth], id, "path label %q does not match its span", nd.label)

			check(nd.parent != nilNode, id, "node has no parent")
			check(nd.parent >= 0 && nd.parent < len(t.nodes), id, "parent %d out of range", nd.parent)
			pn := &t.nodes[nd.parent]
			if nd.key == termKey {
				check(len(nd.kids) == 0, id, "terminal edge leads to an internal node")
				check(nd.depth == pn.depth, id, "terminal edge of length %d", nd.depth-pn.depth)
			} else {
				check(nd.depth > pn.depth, id, "path length %d not beyond parent path length %d", nd.depth, pn.depth)
			}
			check(nd.label[:pn.depth] == pn.label, id, "path label %q does not extend parent %q", nd.label, pn.label)
			check(nd.key == termKey || nd.key == int(nd.label[pn.depth]), id, "key %d is not the first edge character", nd.key)
		}

		for j, e := range nd.kids {
			check(j == 0 || nd.kids[j-1].key < e.key, id, "children not strictly ordered at key %d", e.key)
			check(e.node > 0 && e.node < len(t.nodes), id, "child %d out of range", e.node)
			check(t.nodes[e.node].parent == id, id, "child %d has parent %d", e.node, t.nodes[e.node].parent)
			check(t.nodes[e.node].key == e.key, id, "child %d keyed %d, has key %d", e.node, e.key, t.nodes[e.node].key)
		}

		check(len(nd.occ) == 0 || len(nd.kids) == 0, id, "internal node has occurrences %v", nd.occ)
		if nd.link != nilNode && id != 0 {
			check(nd.link >= 0 && nd.link < len(t.nodes), id, "suffix link %d out of range", nd.link)
			check(t.nodes[nd.link].label == nd.label[1:], id, "suffix link %d has path label %q", nd.link, t.nodes[nd.link].label)
		}
	}
	check(seen == len(t.nodes), 0, "%d of %d nodes reachable", seen, len(t.nodes))
	return nil
}

// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package suffixtree

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Newick renders the tree in Newick format.
//
// A leaf is labelled by its occurrences, each followed by an underscore, and
// then its path label; for example the leaf "a$" shared by sequences 0 and 1
// is written as "0_1_a$". An internal node is written as its children, in
// ascending key order, separated by commas and enclosed in parentheses. The
// result ends with a semicolon. A tree that only has a root renders as ";".
func (t *Tree) Newick() string {
	var stack []string
	c := t.Postorder(t.Root())
	for c.Next() {
		n := c.Node()
		if n.IsLeaf() {
			stack = append(stack, leafLabel(n))
			continue
		}
		k := n.NumChildren()
		s := "(" + strings.Join(stack[len(stack)-k:], ",") + ")"
		stack = append(stack[:len(stack)-k], s)
	}
	return stack[0] + ";"
}

// WriteNewick writes the Newick rendering of the tree to w.
func (t *Tree) WriteNewick(w io.Writer) error {
	_, err := io.WriteString(w, t.Newick())
	return err
}

func leafLabel(n Node) string {
	var b strings.Builder
	for _, v := range n.node().occ {
		b.WriteString(strconv.Itoa(v))
		b.WriteByte('_')
	}
	b.WriteString(n.PathLabel())
	return b.String()
}

// Dump writes an indented, human readable listing of the tree to w, one node
// per line in pre-order.
func (t *Tree) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	level := make([]int, len(t.nodes))
	c := t.Preorder(t.Root())
	for c.Next() {
		n := c.Node()
		p, ok := n.Parent()
		if !ok {
			fmt.Fprintf(bw, "-- [%d] root\n", n.id)
			continue
		}
		level[n.id] = level[p.id] + 1
		fmt.Fprintf(bw, "%s[%d] %q", dumpPre(level[n.id]), n.id, n.EdgeLabel())
		if occ := n.node().occ; len(occ) > 0 {
			fmt.Fprintf(bw, " %v", occ)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func dumpPre(depth int) string {
	return strings.Repeat("  ", depth-1) + "|__ "
}

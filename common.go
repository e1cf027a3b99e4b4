// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package suffixtree builds generalized suffix trees over byte strings.
//
// The tree is constructed online, one sequence at a time, with Ukkonen's
// incremental extension: for every position of the sequence the pending
// implicit suffixes are extended, splitting edges and attaching leaves as
// needed, and suffix links are used to relocate the active point between
// extensions. Several sequences may share one tree; when a suffix of a later
// sequence ends exactly on a leaf that already exists, the sequence index is
// recorded on that leaf instead of creating a duplicate.
//
// Leaf edges are frozen at creation: a leaf spans to the end of the sequence
// that was being scanned when it was created. When a later sequence runs past
// the end of such a leaf, the leaf is pushed below a new internal node with the
// same path label and hangs there on an empty terminal edge. Terminating every
// sequence with a character that appears nowhere else in it (for example '$')
// avoids terminal edges altogether.
//
// References:
//	Ukkonen, E. On-line construction of suffix trees. 1995.
//	Gusfield, D. Algorithms on strings, trees, and sequences. 1997.
package suffixtree

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "suffixtree: " + string(e) }

var (
	// ErrCorrupt reports a broken construction invariant.
	ErrCorrupt error = Error("tree is corrupted")
)

const (
	nilNode = -1 // Absent parent or suffix link
	termKey = -1 // Key of an empty terminal edge; sorts before every byte
)

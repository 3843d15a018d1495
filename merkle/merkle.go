// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

// Tree - all levels of a binary merkle tree
//
// level 0 holds the leaf digests, the last level holds the root; a
// node without a sibling is paired with itself
type Tree struct {
	levels [][]Digest
}

// PathStep - one sibling on the way from a leaf to the root
type PathStep struct {
	Sibling Digest `json:"sibling"`
	Left    bool   `json:"left"` // sibling is the left operand
}

// first byte hashed for each kind of digest
const (
	LeafPrefix  = byte(0x00)
	NodePrefix  = byte(0x01)
	GroupPrefix = byte(0x02)
)

// the hash of an empty leaf set
var emptyRoot = NewDigest([]byte{})

// LeafDigest - digest of leaf content
func LeafDigest(data []byte) Digest {
	return NewDigest(append([]byte{LeafPrefix}, data...))
}

func node(left Digest, right Digest) Digest {
	buffer := make([]byte, 0, 1+2*DigestLength)
	buffer = append(buffer, NodePrefix)
	buffer = append(buffer, left[:]...)
	return NewDigest(append(buffer, right[:]...))
}

// NewTree - build a tree over the leaf digests in order
func NewTree(leaves []Digest) *Tree {
	level := make([]Digest, len(leaves))
	copy(level, leaves)

	t := &Tree{
		levels: [][]Digest{level},
	}
	for len(level) > 1 {
		next := make([]Digest, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			j := i + 1
			if j == len(level) {
				j = i // compensate for odd number
			}
			next = append(next, node(level[i], level[j]))
		}
		t.levels = append(t.levels, next)
		level = next
	}
	return t
}

// Root - the merkle root, an empty tree has the digest of no bytes
func (t *Tree) Root() Digest {
	top := t.levels[len(t.levels)-1]
	if 0 == len(top) {
		return emptyRoot
	}
	return top[0]
}

// Leaves - number of leaves
func (t *Tree) Leaves() int {
	return len(t.levels[0])
}

// Path - the sibling digests needed to recompute the root from a leaf
//
// returns nil if the index is out of range
func (t *Tree) Path(index int) []PathStep {
	if index < 0 || index >= t.Leaves() {
		return nil
	}
	path := make([]PathStep, 0, len(t.levels)-1)
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := index ^ 1
		if sibling >= len(level) {
			sibling = index
		}
		path = append(path, PathStep{
			Sibling: level[sibling],
			Left:    sibling < index,
		})
		index /= 2
	}
	return path
}

// RootFromPath - fold a path over a leaf digest
func RootFromPath(leaf Digest, path []PathStep) Digest {
	d := leaf
	for _, step := range path {
		if step.Left {
			d = node(step.Sibling, d)
		} else {
			d = node(d, step.Sibling)
		}
	}
	return d
}

// VerifyPath - check that a leaf and its path lead to the root
func VerifyPath(root Digest, leaf Digest, path []PathStep) bool {
	return root == RootFromPath(leaf, path)
}

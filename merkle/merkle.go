// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/bitmark-inc/cryptocurrency/fault"
)

// prefixes keep leaf and interior hashes in separate domains
const (
	leafPrefix = 0x00
	nodePrefix = 0x01
)

// LeafDigest - digest of a single key/value entry
func LeafDigest(key []byte, value []byte) Digest {
	b := make([]byte, 0, 1+len(key)+len(value))
	b = append(b, leafPrefix)
	b = append(b, key...)
	b = append(b, value...)
	return NewDigest(b)
}

func nodeDigest(left Digest, right Digest) Digest {
	b := make([]byte, 0, 1+2*DigestLength)
	b = append(b, nodePrefix)
	b = append(b, left[:]...)
	b = append(b, right[:]...)
	return NewDigest(b)
}

// FullMerkleTree - compute a merkle tree from a set of leaf digests
//
// structure is:
//  1. N * leaf digests
//  2. level 1..m digests
//  3. merkle root digest (last element)
//
// an odd element at the end of a level is paired with itself.
// an empty set produces a single zero digest
func FullMerkleTree(leaves []Digest) []Digest {

	leafCount := len(leaves)

	totalLength := 1 // all leaves + space for the final root
	for n := leafCount; n > 1; n = (n + 1) / 2 {
		totalLength += n
	}

	tree := make([]Digest, totalLength)
	copy(tree[:], leaves)

	n := leafCount
	j := 0
	for workLength := leafCount; workLength > 1; workLength = (workLength + 1) / 2 {
		for i := 0; i < workLength; i += 2 {
			k := j + 1
			if i+1 == workLength {
				k = j // compensate for odd number
			}
			tree[n] = nodeDigest(tree[j], tree[k])
			n += 1
			j = k + 1
		}
	}
	return tree
}

// Root - the root digest of a set of leaves
func Root(leaves []Digest) Digest {
	tree := FullMerkleTree(leaves)
	return tree[len(tree)-1]
}

// Proof - audit path from a leaf to the root
type Proof struct {
	Index int      `json:"index"`
	Count int      `json:"count"`
	Path  []Digest `json:"path"`
}

// NewProof - build the audit path for leaves[index]
func NewProof(leaves []Digest, index int) (*Proof, error) {
	if index < 0 || index >= len(leaves) {
		return nil, fault.ErrKeyNotFound
	}

	proof := &Proof{
		Index: index,
		Count: len(leaves),
	}

	level := leaves
	position := index
	for len(level) > 1 {
		sibling := position ^ 1
		if sibling >= len(level) {
			sibling = position
		}
		proof.Path = append(proof.Path, level[sibling])

		next := make([]Digest, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			k := i + 1
			if k == len(level) {
				k = i
			}
			next = append(next, nodeDigest(level[i], level[k]))
		}
		level = next
		position /= 2
	}
	return proof, nil
}

// Root - recompute the root digest from a leaf and the audit path
func (proof *Proof) Root(leaf Digest) Digest {
	current := leaf
	position := proof.Index
	for _, sibling := range proof.Path {
		if 0 == position&1 {
			current = nodeDigest(current, sibling)
		} else {
			current = nodeDigest(sibling, current)
		}
		position /= 2
	}
	return current
}

// Verify - check that the leaf is included under the root
func (proof *Proof) Verify(leaf Digest, root Digest) bool {
	if proof.Index < 0 || proof.Index >= proof.Count {
		return false
	}
	levels := 0
	for n := proof.Count; n > 1; n = (n + 1) / 2 {
		levels += 1
	}
	if levels != len(proof.Path) {
		return false
	}
	return proof.Root(leaf) == root
}

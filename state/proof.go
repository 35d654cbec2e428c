// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"sort"

	"github.com/luxfi/ids"
)

// ProofStep is one sibling hash on the path from a leaf to the root.
// OnRight is true when the sibling sits to the right of the accumulated
// hash at that level.
type ProofStep struct {
	Sibling [32]byte
	OnRight bool
}

// Proof is an inclusion or exclusion proof for a single key against a
// snapshot's root, consumed by the witness package when it assembles the
// slot's read/write proof set.
type Proof struct {
	Key     []byte
	Value   []byte
	Present bool
	Root    ids.ID
	Steps   []ProofStep
}

// Prove builds a Proof for key against snap. When the key is absent,
// Present is false and Value is nil; the proof still lets a verifier
// confirm the key's absence for the snapshot's full key set.
func Prove(snap *Snapshot, key []byte) Proof {
	keys := make([]string, 0, len(snap.data))
	for k := range snap.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	level := make([][32]byte, len(keys))
	for i, k := range keys {
		level[i] = leafHash([]byte(k), snap.data[k])
	}

	value, present := snap.Get(key)

	idx := sort.SearchStrings(keys, string(key))
	found := idx < len(keys) && keys[idx] == string(key)

	proof := Proof{Key: key, Value: value, Present: present, Root: snap.root}
	if !found || len(level) == 0 {
		return proof
	}

	pos := idx
	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			var l, r [32]byte
			l = level[i]
			if i+1 < len(level) {
				r = level[i+1]
			} else {
				r = level[i]
			}

			if i == pos || i+1 == pos {
				if pos == i {
					proof.Steps = append(proof.Steps, ProofStep{Sibling: r, OnRight: true})
				} else {
					proof.Steps = append(proof.Steps, ProofStep{Sibling: l, OnRight: false})
				}
			}

			next = append(next, nodeHash(l, r))
		}
		pos /= 2
		level = next
	}

	return proof
}

// Verify checks that the proof's steps reconstruct root from the leaf
// derived from key/value (or the zero leaf, for an exclusion proof of an
// empty value).
func Verify(p Proof) bool {
	cur := leafHash(p.Key, p.Value)
	for _, step := range p.Steps {
		if step.OnRight {
			cur = nodeHash(cur, step.Sibling)
		} else {
			cur = nodeHash(step.Sibling, cur)
		}
	}
	return ids.ID(cur) == p.Root
}

// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"crypto/sha256"
	"sort"

	"github.com/luxfi/ids"
)

// leafHash hashes a single key-value pair into a 32-byte tree leaf.
// Keys and values are length-prefixed so a value's bytes can never be
// mistaken for spillover from the adjacent key.
func leafHash(key, value []byte) [32]byte {
	h := sha256.New()
	var lenBuf [8]byte
	putUint64(lenBuf[:], uint64(len(key)))
	h.Write(lenBuf[:])
	h.Write(key)
	putUint64(lenBuf[:], uint64(len(value)))
	h.Write(lenBuf[:])
	h.Write(value)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[7-i] = byte(v)
		v >>= 8
	}
}

// nodeHash combines two child hashes, duplicating the left child when a
// level has an odd number of nodes (matching the dynamic-ssz pairwise
// hashing technique: every level is hashed in fixed-size pairs).
func nodeHash(left, right [32]byte) [32]byte {
	h := sha256.New()
	h.Write(left[:])
	h.Write(right[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Root computes the Merkle root over a set of key-value pairs, sorted by
// key so the result is independent of iteration order. An empty set roots
// to the zero ID.
func Root(kvs map[string][]byte) ids.ID {
	if len(kvs) == 0 {
		return ids.Empty
	}

	keys := make([]string, 0, len(kvs))
	for k := range kvs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	level := make([][32]byte, len(keys))
	for i, k := range keys {
		level[i] = leafHash([]byte(k), kvs[k])
	}

	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, nodeHash(level[i], level[i+1]))
			} else {
				next = append(next, nodeHash(level[i], level[i]))
			}
		}
		level = next
	}

	return ids.ID(level[0])
}

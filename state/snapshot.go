// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"sort"

	"github.com/luxfi/ids"
)

// Snapshot is an immutable, versioned read view over the store. Once
// returned from Commit it never changes; callers can hold onto one for as
// long as they need a consistent view, including across later commits.
type Snapshot struct {
	version uint64
	root    ids.ID
	data    map[string][]byte
}

// Version returns the slot height this snapshot was committed at.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Root returns the Merkle root of this snapshot's full key set.
func (s *Snapshot) Root() ids.ID {
	return s.root
}

// Get returns the value for key and whether it was present.
func (s *Snapshot) Get(key []byte) ([]byte, bool) {
	v, ok := s.data[string(key)]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}

// Iterate returns all key-value pairs with the given prefix, in
// lexicographic key order.
func (s *Snapshot) Iterate(prefix []byte) []KVPair {
	p := string(prefix)
	keys := make([]string, 0)
	for k := range s.data {
		if len(k) >= len(p) && k[:len(p)] == p {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([]KVPair, len(keys))
	for i, k := range keys {
		out[i] = KVPair{Key: []byte(k), Value: s.data[k]}
	}
	return out
}

// KVPair is a single key-value pair returned from iteration.
type KVPair struct {
	Key   []byte
	Value []byte
}

// Accessor is the narrow read-only view C5 hands to modules for
// cross-module reads during a call. It exposes Get only, never Put or
// Delete, so a module cannot write another module's state. The runtime's
// accessor reads through the slot's delta, so it sees writes made earlier
// in the same slot.
type Accessor interface {
	Get(key []byte) ([]byte, bool)
}

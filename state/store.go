// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/ids"
)

// ErrUnknownVersion is returned by SnapshotAt for a version the store never
// committed and has since pruned, or never reached.
var ErrUnknownVersion = errors.New("state: unknown version")

// Store owns the backing KV and the chain of committed snapshots. Commit is
// the only mutator; it is never called concurrently with itself because the
// slot driver runs a single slot at a time (no suspension points once a
// slot begins).
type Store struct {
	kv KV

	mu      sync.RWMutex
	latest  *Snapshot
	history map[uint64]*Snapshot
}

// NewStore returns a Store with an empty genesis snapshot at version 0.
func NewStore(kv KV) *Store {
	genesis := &Snapshot{version: 0, root: ids.Empty, data: make(map[string][]byte)}
	return &Store{
		kv:      kv,
		latest:  genesis,
		history: map[uint64]*Snapshot{0: genesis},
	}
}

// LatestSnapshot returns the most recently committed snapshot.
func (s *Store) LatestSnapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// SnapshotAt returns the snapshot committed at the given version.
func (s *Store) SnapshotAt(version uint64) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.history[version]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, version)
	}
	return snap, nil
}

// OpenDelta opens a write-buffered overlay on top of snap.
func (s *Store) OpenDelta(snap *Snapshot) *Delta {
	return OpenDelta(snap)
}

// Commit flattens delta over its base snapshot, persists the result to the
// backing KV in a single batch, computes the new Merkle root, and returns
// the new snapshot. There is no partial-write state visible to readers:
// the batch either writes in full or the commit fails before latest moves.
func (s *Store) Commit(d *Delta) (*Snapshot, ids.ID, error) {
	flattened := d.Apply()

	batch := s.kv.NewBatch()
	for k, v := range flattened {
		if err := batch.Put([]byte(k), v); err != nil {
			return nil, ids.Empty, err
		}
	}
	if err := batch.Write(); err != nil {
		return nil, ids.Empty, err
	}

	root := Root(flattened)

	s.mu.Lock()
	defer s.mu.Unlock()
	next := &Snapshot{
		version: s.latest.version + 1,
		root:    root,
		data:    flattened,
	}
	s.latest = next
	s.history[next.version] = next
	return next, root, nil
}

// Bootstrap replaces the store's latest snapshot with one reconstructed
// from persisted data, without touching the backing KV (the caller is
// expected to have already loaded it). Used once at process startup to
// resume from a prior run; never called mid-slot.
func (s *Store) Bootstrap(version uint64, root ids.ID, data map[string][]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := &Snapshot{version: version, root: root, data: data}
	s.latest = snap
	s.history[version] = snap
}

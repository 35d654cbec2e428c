// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package external

import (
	"context"

	"github.com/filament-zone/hub/state"
)

// StoreQuerier answers Querier reads directly against a local state.Store;
// cmd/hubd's query subcommand reads through it.
type StoreQuerier struct {
	store *state.Store
}

// NewStoreQuerier returns a Querier backed by store.
func NewStoreQuerier(store *state.Store) *StoreQuerier {
	return &StoreQuerier{store: store}
}

// Query implements Querier. height 0 means the latest committed snapshot.
func (q *StoreQuerier) Query(_ context.Context, path []byte, height uint64) (QueryResult, error) {
	snap := q.store.LatestSnapshot()
	if height != 0 && height != snap.Version() {
		var err error
		snap, err = q.store.SnapshotAt(height)
		if err != nil {
			return QueryResult{}, ErrUnknownHeight
		}
	}
	value, found := snap.Get(path)
	return QueryResult{Height: snap.Version(), Value: value, Found: found}, nil
}

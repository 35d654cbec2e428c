// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/filament-zone/hub/config"
	"github.com/filament-zone/hub/module"
	"github.com/filament-zone/hub/modules/accounts"
	"github.com/filament-zone/hub/modules/bank"
	"github.com/filament-zone/hub/modules/campaigns"
	"github.com/filament-zone/hub/modules/sequencer"
	"github.com/filament-zone/hub/slot"
	"github.com/filament-zone/hub/state"
)

// persistedSnapshot is the on-disk shape of a store's latest snapshot. The
// backing KV itself is not persisted separately; on load it is rebuilt from
// this snapshot's full key set, which is all Commit ever reads from it.
type persistedSnapshot struct {
	Version uint64
	Root    [32]byte
	Data    map[string][]byte
}

func loadStore(path string) (*state.Store, error) {
	kv := state.NewMemKV()

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return state.NewStore(kv), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening store file: %w", err)
	}
	defer f.Close()

	var snap persistedSnapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding store file: %w", err)
	}

	for k, v := range snap.Data {
		if err := kv.Put([]byte(k), v); err != nil {
			return nil, err
		}
	}

	store := state.NewStore(kv)
	store.Bootstrap(snap.Version, ids.ID(snap.Root), snap.Data)
	return store, nil
}

func saveStore(path string, store *state.Store) error {
	latest := store.LatestSnapshot()
	data := make(map[string][]byte)
	for _, kv := range latest.Iterate(nil) {
		data[string(kv.Key)] = kv.Value
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating store file: %w", err)
	}
	defer f.Close()

	snap := persistedSnapshot{Version: latest.Version(), Root: [32]byte(latest.Root()), Data: data}
	if err := gob.NewEncoder(f).Encode(snap); err != nil {
		return fmt.Errorf("encoding store file: %w", err)
	}
	return nil
}

// newRuntime wires the fixed module dispatch order every command needs to
// agree on: bank first (so gas debits land before anything else reads
// balances), accounts for nonce bookkeeping, sequencer for bonding, then
// campaigns.
func newRuntime() (*module.Runtime, error) {
	return module.NewRuntime(
		module.Descriptor{Name: bank.Name, Module: bank.New()},
		module.Descriptor{Name: accounts.Name, Module: accounts.New()},
		module.Descriptor{Name: sequencer.Name, Module: sequencer.New()},
		module.Descriptor{Name: campaigns.Name, Module: campaigns.New()},
	)
}

func newDriver(store *state.Store, params config.Params, logger log.Logger) (*slot.Driver, error) {
	rt, err := newRuntime()
	if err != nil {
		return nil, err
	}
	return slot.NewDriver(store, rt, params, logger), nil
}

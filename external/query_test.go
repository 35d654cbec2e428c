// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package external

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filament-zone/hub/state"
)

func TestStoreQuerierReadsLatestByDefault(t *testing.T) {
	store := state.NewStore(state.NewMemKV())
	delta := state.OpenDelta(store.LatestSnapshot())
	delta.Put([]byte("bank/ufil/abc"), []byte{0x05})
	_, _, err := store.Commit(delta)
	require.NoError(t, err)

	q := NewStoreQuerier(store)
	res, err := q.Query(context.Background(), []byte("bank/ufil/abc"), 0)
	require.NoError(t, err)
	require.True(t, res.Found)
	require.Equal(t, []byte{0x05}, res.Value)
	require.Equal(t, uint64(1), res.Height)
}

func TestStoreQuerierRejectsUnknownHeight(t *testing.T) {
	store := state.NewStore(state.NewMemKV())
	q := NewStoreQuerier(store)
	_, err := q.Query(context.Background(), []byte("anything"), 99)
	require.ErrorIs(t, err, ErrUnknownHeight)
}

func TestStoreQuerierReadsHistoricalHeight(t *testing.T) {
	store := state.NewStore(state.NewMemKV())

	d1 := state.OpenDelta(store.LatestSnapshot())
	d1.Put([]byte("k"), []byte("v1"))
	_, _, err := store.Commit(d1)
	require.NoError(t, err)

	d2 := state.OpenDelta(store.LatestSnapshot())
	d2.Put([]byte("k"), []byte("v2"))
	_, _, err = store.Commit(d2)
	require.NoError(t, err)

	q := NewStoreQuerier(store)
	res, err := q.Query(context.Background(), []byte("k"), 1)
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), res.Value)
}

// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package witness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filament-zone/hub/state"
)

func TestRecorderRecordsEachKeyOnce(t *testing.T) {
	store := state.NewStore(state.NewMemKV())
	snap := store.LatestSnapshot()
	r := NewRecorder(snap)

	r.OnRead([]byte("a"), false)
	r.OnRead([]byte("a"), false)
	r.OnWrite([]byte("a"))
	r.OnWrite([]byte("b"))

	require.Len(t, r.Proofs(), 2)
}

func TestBuildAssemblesWitness(t *testing.T) {
	store := state.NewStore(state.NewMemKV())
	snap := store.LatestSnapshot()
	r := NewRecorder(snap)
	r.OnWrite([]byte("a"))

	w := Build(snap.Root(), snap.Root(), Header{Height: 1}, r.Proofs(), []Blob{{BatchID: 1}})
	require.Equal(t, uint64(1), w.DAHeader.Height)
	require.Len(t, w.Proofs, 1)
	require.Len(t, w.Blobs, 1)
}

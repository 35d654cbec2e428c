package state

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestStoreCommitAdvancesVersion(t *testing.T) {
	store := NewStore(NewMemKV())

	genesis := store.LatestSnapshot()
	require.Equal(t, uint64(0), genesis.Version())

	delta := store.OpenDelta(genesis)
	delta.Put([]byte("accounts/alice"), []byte("100"))

	snap, root, err := store.Commit(delta)
	require.NoError(t, err)
	require.Equal(t, uint64(1), snap.Version())
	require.Equal(t, root, snap.Root())

	v, ok := snap.Get([]byte("accounts/alice"))
	require.True(t, ok)
	require.Equal(t, "100", string(v))
}

func TestSnapshotIsImmutableAcrossCommits(t *testing.T) {
	store := NewStore(NewMemKV())

	delta := store.OpenDelta(store.LatestSnapshot())
	delta.Put([]byte("k"), []byte("v1"))
	first, _, err := store.Commit(delta)
	require.NoError(t, err)

	delta2 := store.OpenDelta(store.LatestSnapshot())
	delta2.Put([]byte("k"), []byte("v2"))
	_, _, err = store.Commit(delta2)
	require.NoError(t, err)

	v, ok := first.Get([]byte("k"))
	require.True(t, ok)
	require.Equal(t, "v1", string(v))
}

func TestRootChangesWithContent(t *testing.T) {
	a := Root(map[string][]byte{"x": []byte("1")})
	b := Root(map[string][]byte{"x": []byte("2")})
	require.NotEqual(t, a, b)
}

func TestRootEmptyIsZero(t *testing.T) {
	require.Equal(t, ids.Empty, Root(map[string][]byte{}))
}

func TestDeltaDeleteHidesBaseValue(t *testing.T) {
	store := NewStore(NewMemKV())
	delta := store.OpenDelta(store.LatestSnapshot())
	delta.Put([]byte("k"), []byte("v"))
	snap, _, err := store.Commit(delta)
	require.NoError(t, err)

	delta2 := store.OpenDelta(snap)
	delta2.Delete([]byte("k"))
	_, ok := delta2.Get([]byte("k"))
	require.False(t, ok)
}

func TestProveAndVerify(t *testing.T) {
	store := NewStore(NewMemKV())
	delta := store.OpenDelta(store.LatestSnapshot())
	delta.Put([]byte("a"), []byte("1"))
	delta.Put([]byte("b"), []byte("2"))
	delta.Put([]byte("c"), []byte("3"))
	snap, _, err := store.Commit(delta)
	require.NoError(t, err)

	proof := Prove(snap, []byte("b"))
	require.True(t, proof.Present)
	require.True(t, Verify(proof))
}

// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package accounts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filament-zone/hub/auth"
	"github.com/filament-zone/hub/module"
	"github.com/filament-zone/hub/state"
)

func newModuleState(t *testing.T) *module.ModuleState {
	t.Helper()
	store := state.NewStore(state.NewMemKV())
	delta := store.OpenDelta(store.LatestSnapshot())
	return module.NewModuleState(delta, Name)
}

func TestNoncesStartAtZero(t *testing.T) {
	n := NewNonces(newModuleState(t))
	var cred auth.CredentialID
	require.Equal(t, uint64(0), n.Get(cred))
}

func TestCheckAndIncrementAdvancesNonce(t *testing.T) {
	n := NewNonces(newModuleState(t))
	var cred auth.CredentialID
	require.NoError(t, n.CheckAndIncrement(cred, 0))
	require.Equal(t, uint64(1), n.Get(cred))
	require.NoError(t, n.CheckAndIncrement(cred, 1))
	require.Equal(t, uint64(2), n.Get(cred))
}

func TestCheckAndIncrementRejectsStaleNonce(t *testing.T) {
	n := NewNonces(newModuleState(t))
	var cred auth.CredentialID
	require.NoError(t, n.CheckAndIncrement(cred, 0))
	require.ErrorIs(t, n.CheckAndIncrement(cred, 0), ErrBadNonce)
	require.ErrorIs(t, n.CheckAndIncrement(cred, 5), ErrBadNonce)
}

func TestModuleCallIsAlwaysRejected(t *testing.T) {
	m := New()
	_, err := m.Call(&module.CallContext{}, nil)
	require.ErrorIs(t, err, ErrNoPublicCalls)
}

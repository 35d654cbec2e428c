// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filament-zone/hub/auth"
	"github.com/filament-zone/hub/encoding"
	"github.com/filament-zone/hub/module"
	"github.com/filament-zone/hub/state"
)

func newModuleState(t *testing.T) *module.ModuleState {
	t.Helper()
	store := state.NewStore(state.NewMemKV())
	delta := store.OpenDelta(store.LatestSnapshot())
	return module.NewModuleState(delta, Name)
}

func registerPayload(t *testing.T, bond uint64) []byte {
	t.Helper()
	args, err := encoding.State.Marshal(encoding.CurrentVersion, RegisterArgs{BondAmount: bond})
	require.NoError(t, err)
	payload, err := encoding.State.Marshal(encoding.CurrentVersion, CallEnvelope{Method: "register", Args: args})
	require.NoError(t, err)
	return payload
}

func TestRegisterFirstSequencerIsPreferred(t *testing.T) {
	ms := newModuleState(t)
	m := New()
	var da auth.Address
	da[0] = 1
	ctx := &module.CallContext{Sender: da, State: ms}

	_, err := m.Call(ctx, registerPayload(t, 1000))
	require.NoError(t, err)

	rec, ok := NewRecords(ms).Get(da)
	require.True(t, ok)
	require.True(t, rec.Preferred)
	require.Equal(t, uint64(1000), rec.Bond)
}

func TestRegisterRejectsDoubleRegistration(t *testing.T) {
	ms := newModuleState(t)
	m := New()
	var da auth.Address
	da[0] = 1
	ctx := &module.CallContext{Sender: da, State: ms}

	_, err := m.Call(ctx, registerPayload(t, 1000))
	require.NoError(t, err)
	_, err = m.Call(ctx, registerPayload(t, 1000))
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestSecondRegistrantIsNotPreferred(t *testing.T) {
	ms := newModuleState(t)
	m := New()
	var da1, da2 auth.Address
	da1[0], da2[0] = 1, 2

	_, err := m.Call(&module.CallContext{Sender: da1, State: ms}, registerPayload(t, 1000))
	require.NoError(t, err)
	_, err = m.Call(&module.CallContext{Sender: da2, State: ms}, registerPayload(t, 1000))
	require.NoError(t, err)

	rec2, ok := NewRecords(ms).Get(da2)
	require.True(t, ok)
	require.False(t, rec2.Preferred)
}

func TestDeregisterRequiresRegistration(t *testing.T) {
	ms := newModuleState(t)
	m := New()
	var da auth.Address
	payload, err := encoding.State.Marshal(encoding.CurrentVersion, CallEnvelope{Method: "deregister"})
	require.NoError(t, err)

	_, err = m.Call(&module.CallContext{Sender: da, State: ms}, payload)
	require.ErrorIs(t, err, ErrNotRegistered)
}

func TestDeregisterSetsUnbondingState(t *testing.T) {
	ms := newModuleState(t)
	m := New()
	var da auth.Address
	da[0] = 1
	ctx := &module.CallContext{Sender: da, State: ms, Height: 10}

	_, err := m.Call(ctx, registerPayload(t, 500))
	require.NoError(t, err)

	payload, err := encoding.State.Marshal(encoding.CurrentVersion, CallEnvelope{Method: "deregister"})
	require.NoError(t, err)
	_, err = m.Call(ctx, payload)
	require.NoError(t, err)

	rec, ok := NewRecords(ms).Get(da)
	require.True(t, ok)
	require.True(t, rec.Deregistering)
	require.Equal(t, uint64(10), rec.ReleaseHeight)

	_, err = m.Call(ctx, payload)
	require.ErrorIs(t, err, ErrUnbonding)
}

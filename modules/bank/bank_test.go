// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bank

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

func TestLedgerCreditDebit(t *testing.T) {
	ms := newModuleState(t)
	l := NewLedger(ms)

	var holder auth.Address
	holder[0] = 1

	require.Equal(t, uint64(0), l.Balance([20]byte(holder), NativeToken))
	require.NoError(t, l.Credit([20]byte(holder), NativeToken, 100))
	require.Equal(t, uint64(100), l.Balance([20]byte(holder), NativeToken))
	require.NoError(t, l.Debit([20]byte(holder), NativeToken, 40))
	require.Equal(t, uint64(60), l.Balance([20]byte(holder), NativeToken))
}

func TestLedgerDebitInsufficientFunds(t *testing.T) {
	ms := newModuleState(t)
	l := NewLedger(ms)
	var holder auth.Address
	require.ErrorIs(t, l.Debit([20]byte(holder), NativeToken, 1), ErrInsufficientFunds)
}

func TestModuleTransferMovesBalance(t *testing.T) {
	ms := newModuleState(t)
	l := NewLedger(ms)
	var sender, recipient auth.Address
	sender[0] = 1
	recipient[0] = 2
	require.NoError(t, l.Credit([20]byte(sender), NativeToken, 100))

	args, err := encoding.State.Marshal(encoding.CurrentVersion, TransferArgs{To: recipient, Amount: 30})
	require.NoError(t, err)
	payload, err := encoding.State.Marshal(encoding.CurrentVersion, CallEnvelope{Method: "transfer", Args: args})
	require.NoError(t, err)

	m := New()
	ctx := &module.CallContext{Sender: sender, State: ms}
	_, err = m.Call(ctx, payload)
	require.NoError(t, err)

	require.Equal(t, uint64(70), l.Balance([20]byte(sender), NativeToken))
	require.Equal(t, uint64(30), l.Balance([20]byte(recipient), NativeToken))
}

func TestModuleTransferRejectsUnknownMethod(t *testing.T) {
	ms := newModuleState(t)
	payload, err := encoding.State.Marshal(encoding.CurrentVersion, CallEnvelope{Method: "burn"})
	require.NoError(t, err)

	m := New()
	ctx := &module.CallContext{State: ms}
	_, err = m.Call(ctx, payload)
	require.ErrorIs(t, err, ErrUnknownMethod)
}

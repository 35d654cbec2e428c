// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package slot

import (
	stded25519 "crypto/ed25519"
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/filament-zone/hub/auth"
	"github.com/filament-zone/hub/config"
	"github.com/filament-zone/hub/encoding"
	"github.com/filament-zone/hub/logging"
	"github.com/filament-zone/hub/module"
	"github.com/filament-zone/hub/modules/accounts"
	"github.com/filament-zone/hub/modules/bank"
	"github.com/filament-zone/hub/modules/sequencer"
	"github.com/filament-zone/hub/state"
)

type keypair struct {
	pub  stded25519.PublicKey
	priv stded25519.PrivateKey
	addr auth.Address
}

func newKeypair(t *testing.T) keypair {
	t.Helper()
	pub, priv, err := stded25519.GenerateKey(nil)
	require.NoError(t, err)
	addr := auth.AddressFromCredential(auth.DeriveCredentialID(pub))
	return keypair{pub: pub, priv: priv, addr: addr}
}

func (k keypair) sign(t *testing.T, chainID, nonce, gasLimit, maxFee uint64, inputs []auth.Input) []byte {
	t.Helper()
	body := auth.Body{
		ChainID:      chainID,
		AccountID:    auth.DeriveCredentialID(k.pub),
		Nonce:        nonce,
		GasLimit:     gasLimit,
		MaxFeePerGas: maxFee,
		Inputs:       inputs,
	}
	sig := stded25519.Sign(k.priv, auth.SignBytes(body))
	raw, err := auth.EncodeTransaction(auth.Transaction{
		Cred: auth.Credential{Variant: auth.AuthEd25519, PubKey: k.pub, Signature: sig},
		Body: body,
	})
	require.NoError(t, err)
	return raw
}

func registerInput(t *testing.T, bond uint64) auth.Input {
	t.Helper()
	args, err := encoding.State.Marshal(encoding.CurrentVersion, sequencer.RegisterArgs{BondAmount: bond})
	require.NoError(t, err)
	payload, err := encoding.State.Marshal(encoding.CurrentVersion, sequencer.CallEnvelope{Method: "register", Args: args})
	require.NoError(t, err)
	return auth.Input{ModuleTag: sequencer.Tag, Payload: payload}
}

func transferInput(t *testing.T, to auth.Address, amount uint64) auth.Input {
	t.Helper()
	args, err := encoding.State.Marshal(encoding.CurrentVersion, bank.TransferArgs{To: to, Amount: amount})
	require.NoError(t, err)
	payload, err := encoding.State.Marshal(encoding.CurrentVersion, bank.CallEnvelope{Method: "transfer", Args: args})
	require.NoError(t, err)
	return auth.Input{ModuleTag: bank.Tag, Payload: payload}
}

func newTestDriver(t *testing.T, allocs []bank.Alloc) (*Driver, *state.Store) {
	t.Helper()
	runtime, err := module.NewRuntime(
		module.Descriptor{Name: bank.Name, Module: bank.New()},
		module.Descriptor{Name: accounts.Name, Module: accounts.New()},
		module.Descriptor{Name: sequencer.Name, Module: sequencer.New()},
	)
	require.NoError(t, err)

	store := state.NewStore(state.NewMemKV())
	params := config.Local()
	driver := NewDriver(store, runtime, params, logging.NewNoOpLogger())

	genesisBank, err := encoding.State.Marshal(encoding.CurrentVersion, bank.GenesisConfig{Allocs: allocs})
	require.NoError(t, err)
	_, err = driver.InitChain(map[string][]byte{bank.Name: genesisBank})
	require.NoError(t, err)

	return driver, store
}

func TestApplySlotBootstrapsUnregisteredSequencer(t *testing.T) {
	seq := newKeypair(t)
	driver, store := newTestDriver(t, nil)

	registerTx := seq.sign(t, 1337, 0, 21_000, 1, []auth.Input{registerInput(t, 1000)})
	batch, err := EncodeBatch([][]byte{registerTx})
	require.NoError(t, err)

	receipt, err := driver.ApplySlot(store.LatestSnapshot().Root(), Header{Height: 1}, []Blob{
		{Submitter: seq.addr, Raw: batch, BatchID: 1},
	})
	require.NoError(t, err)
	require.Len(t, receipt.Batches, 1)
	require.False(t, receipt.Batches[0].Bonded)
	require.False(t, receipt.Batches[0].Ignored)
	require.Equal(t, OutcomeApplied, receipt.Batches[0].Txs[0].Outcome)
}

func TestApplySlotCapsUnregisteredBlobsPerSlot(t *testing.T) {
	driver, store := newTestDriver(t, nil)

	var blobs []Blob
	for i := 0; i < 10; i++ {
		seq := newKeypair(t)
		tx := seq.sign(t, 1337, 0, 21_000, 1, []auth.Input{registerInput(t, 1000)})
		batch, err := EncodeBatch([][]byte{tx})
		require.NoError(t, err)
		blobs = append(blobs, Blob{Submitter: seq.addr, Raw: batch, BatchID: uint64(i)})
	}

	receipt, err := driver.ApplySlot(store.LatestSnapshot().Root(), Header{Height: 1}, blobs)
	require.NoError(t, err)

	ignored := 0
	for _, b := range receipt.Batches {
		if b.Ignored {
			ignored++
		}
	}
	require.Equal(t, len(blobs)-config.Local().UnregisteredBlobsPerSlot, ignored)
}

func TestApplySlotAppliesBondedTransfer(t *testing.T) {
	seq := newKeypair(t)
	recipient := newKeypair(t)
	driver, store := newTestDriver(t, []bank.Alloc{
		{Address: seq.addr, Amount: 1_000_000},
	})

	registerTx := seq.sign(t, 1337, 0, 21_000, 1, []auth.Input{registerInput(t, 1000)})
	batch, err := EncodeBatch([][]byte{registerTx})
	require.NoError(t, err)
	_, err = driver.ApplySlot(store.LatestSnapshot().Root(), Header{Height: 1}, []Blob{
		{Submitter: seq.addr, Raw: batch, BatchID: 1},
	})
	require.NoError(t, err)

	transferTx := seq.sign(t, 1337, 1, 21_000, 1, []auth.Input{transferInput(t, recipient.addr, 500)})
	batch2, err := EncodeBatch([][]byte{transferTx})
	require.NoError(t, err)

	receipt, err := driver.ApplySlot(store.LatestSnapshot().Root(), Header{Height: 2}, []Blob{
		{Submitter: seq.addr, Raw: batch2, BatchID: 2},
	})
	require.NoError(t, err)
	require.Len(t, receipt.Batches, 1)
	require.True(t, receipt.Batches[0].Bonded)
	require.False(t, receipt.Batches[0].Slashed)
	require.Equal(t, OutcomeApplied, receipt.Batches[0].Txs[0].Outcome)

	ledger := bank.NewLedger(module.NewModuleState(state.OpenDelta(store.LatestSnapshot()), bank.Name))
	require.Equal(t, uint64(500), ledger.Balance([20]byte(recipient.addr), bank.NativeToken))
}

func TestApplySlotRejectsStaleNonce(t *testing.T) {
	seq := newKeypair(t)
	driver, store := newTestDriver(t, []bank.Alloc{
		{Address: seq.addr, Amount: 1_000_000},
	})

	registerTx := seq.sign(t, 1337, 0, 21_000, 1, []auth.Input{registerInput(t, 1000)})
	batch, err := EncodeBatch([][]byte{registerTx})
	require.NoError(t, err)
	_, err = driver.ApplySlot(store.LatestSnapshot().Root(), Header{Height: 1}, []Blob{
		{Submitter: seq.addr, Raw: batch, BatchID: 1},
	})
	require.NoError(t, err)

	// nonce 0 was already consumed by the registration transaction.
	staleTx := seq.sign(t, 1337, 0, 21_000, 1, []auth.Input{transferInput(t, seq.addr, 1)})
	batch2, err := EncodeBatch([][]byte{staleTx})
	require.NoError(t, err)

	beforeBond := bank.NewLedger(module.NewModuleState(state.OpenDelta(store.LatestSnapshot()), bank.Name)).Balance([20]byte(seq.addr), bank.NativeToken)

	receipt, err := driver.ApplySlot(store.LatestSnapshot().Root(), Header{Height: 2}, []Blob{
		{Submitter: seq.addr, Raw: batch2, BatchID: 2},
	})
	require.NoError(t, err)
	require.Equal(t, OutcomeIncorrectNonce, receipt.Batches[0].Txs[0].Outcome)
	require.False(t, receipt.Batches[0].Slashed)

	// the stale tx cost the sequencer a flat penalty out of its bond, not
	// the sender's balance.
	afterBond := bank.NewLedger(module.NewModuleState(state.OpenDelta(store.LatestSnapshot()), bank.Name)).Balance([20]byte(seq.addr), bank.NativeToken)
	require.Less(t, afterBond, beforeBond)
}

func TestApplySlotRevertedTransferKeepsNonceAndGasCharge(t *testing.T) {
	seq := newKeypair(t)
	recipient := newKeypair(t)
	driver, store := newTestDriver(t, []bank.Alloc{
		{Address: seq.addr, Amount: 1_000_000},
	})

	registerTx := seq.sign(t, 1337, 0, 21_000, 1, []auth.Input{registerInput(t, 1000)})
	batch, err := EncodeBatch([][]byte{registerTx})
	require.NoError(t, err)
	_, err = driver.ApplySlot(store.LatestSnapshot().Root(), Header{Height: 1}, []Blob{
		{Submitter: seq.addr, Raw: batch, BatchID: 1},
	})
	require.NoError(t, err)

	before := bank.NewLedger(module.NewModuleState(state.OpenDelta(store.LatestSnapshot()), bank.Name)).Balance([20]byte(seq.addr), bank.NativeToken)

	// the sender has nowhere near enough balance to cover this transfer, so
	// bank.transfer fails and the call-level write is rolled back, but the
	// nonce increment and gas reservation/refund from the slot driver still
	// stand.
	badTransferTx := seq.sign(t, 1337, 1, 21_000, 1, []auth.Input{transferInput(t, recipient.addr, 999_999_999)})
	batch2, err := EncodeBatch([][]byte{badTransferTx})
	require.NoError(t, err)

	receipt, err := driver.ApplySlot(store.LatestSnapshot().Root(), Header{Height: 2}, []Blob{
		{Submitter: seq.addr, Raw: batch2, BatchID: 2},
	})
	require.NoError(t, err)
	require.Equal(t, OutcomeReverted, receipt.Batches[0].Txs[0].Outcome)

	after := bank.NewLedger(module.NewModuleState(state.OpenDelta(store.LatestSnapshot()), bank.Name)).Balance([20]byte(seq.addr), bank.NativeToken)
	require.Less(t, after, before)

	nonces := accounts.NewNonces(module.NewModuleState(state.OpenDelta(store.LatestSnapshot()), accounts.Name))
	require.Equal(t, uint64(2), nonces.Get(auth.DeriveCredentialID(seq.pub)))
}

func TestApplySlotRejectsRootMismatch(t *testing.T) {
	driver, _ := newTestDriver(t, nil)
	var bogus ids.ID
	bogus[0] = 0xFF
	_, err := driver.ApplySlot(bogus, Header{Height: 1}, nil)
	require.ErrorIs(t, err, ErrRootMismatch)
}

// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/filament-zone/hub/auth"
	"github.com/filament-zone/hub/config"
	"github.com/filament-zone/hub/gas"
	"github.com/filament-zone/hub/internal/safemath"
	"github.com/filament-zone/hub/module"
	"github.com/filament-zone/hub/modules/accounts"
	"github.com/filament-zone/hub/modules/bank"
	"github.com/filament-zone/hub/modules/sequencer"
	"github.com/filament-zone/hub/state"
	"github.com/filament-zone/hub/witness"
)

// ErrRootMismatch is returned by ApplySlot when the caller's prevRoot does
// not match the store's latest committed root.
var ErrRootMismatch = errors.New("slot: prevRoot does not match latest committed root")

// proverPool is the protocol-owned address base fees accrue to. It holds no
// bond and is never debited.
var proverPool auth.Address

// heightView adapts a slot height into auth.PreExecState.
type heightView uint64

func (h heightView) Height() uint64 { return uint64(h) }

// Driver runs apply_slot: open delta, run begin_slot hooks, bond/authenticate/
// meter/dispatch every blob's transactions in arrival order, run end_slot
// hooks, commit, and run finalize hooks.
type Driver struct {
	store   *state.Store
	runtime *module.Runtime
	params  config.Params
	log     log.Logger
}

// NewDriver returns a Driver over store and runtime, enforcing params and
// logging through logger.
func NewDriver(store *state.Store, runtime *module.Runtime, params config.Params, logger log.Logger) *Driver {
	return &Driver{store: store, runtime: runtime, params: params, log: logger}
}

// Health reports the height and root of the last committed snapshot,
// satisfying telemetry.Checkable.
func (d *Driver) Health(ctx context.Context) (interface{}, error) {
	latest := d.store.LatestSnapshot()
	return map[string]interface{}{
		"last_height": latest.Version(),
		"root":        fmt.Sprintf("%s", latest.Root()),
	}, nil
}

// InitChain seeds every module's genesis state and commits the result,
// returning the initial root.
func (d *Driver) InitChain(genesisConfigs map[string][]byte) (ids.ID, error) {
	delta := state.OpenDelta(d.store.LatestSnapshot())
	if err := d.runtime.Genesis(delta, genesisConfigs); err != nil {
		return ids.Empty, err
	}
	_, root, err := d.store.Commit(delta)
	return root, err
}

// Receipt is the result of ApplySlot: the new root, one BatchReceipt per
// blob in arrival order, and the witness a prover needs to replay the slot.
type Receipt struct {
	Root    ids.ID
	Batches []BatchReceipt
	Witness witness.Witness
}

func putBlockInfo(delta *state.Delta, header Header) {
	p := func(v uint64) []byte {
		b := make([]byte, 8)
		for i := 7; i >= 0; i-- {
			b[i] = byte(v)
			v >>= 8
		}
		return b
	}
	delta.Put([]byte("block/height"), p(header.Height))
	delta.Put([]byte("block/time"), p(uint64(header.Time)))
}

// peekGasLimit decodes raw far enough to read its declared gas limit,
// without verifying its signature. Used only to size a sequencer's bond
// before any transaction in the batch is authenticated.
func peekGasLimit(raw []byte) (uint64, error) {
	tx, err := auth.DecodeTransaction(raw)
	if err != nil {
		return 0, err
	}
	return tx.Body.GasLimit, nil
}

// batchMaxGas sums every decoded-but-unauthenticated transaction's declared
// gas limit; a transaction that fails to decode contributes nothing; it
// will be rejected as a FatalError once authentication actually runs.
func batchMaxGas(txs [][]byte) uint64 {
	var total uint64
	for _, raw := range txs {
		if g, err := peekGasLimit(raw); err == nil {
			if sum, err := safemath.Add64(total, g); err == nil {
				total = sum
			}
		}
	}
	return total
}

// ApplySlot runs the main per-blob, per-transaction loop over blobs in DA
// order and commits the result.
func (d *Driver) ApplySlot(prevRoot ids.ID, header Header, blobs []Blob) (Receipt, error) {
	d.log.Debug("applying slot", "height", header.Height, "blobs", len(blobs))

	latest := d.store.LatestSnapshot()
	if latest.Root() != prevRoot {
		d.log.Error("apply_slot root mismatch", "height", header.Height, "expected", prevRoot, "actual", latest.Root())
		return Receipt{}, ErrRootMismatch
	}

	delta := state.OpenDelta(latest)
	recorder := witness.NewRecorder(latest)
	delta.SetRecorder(recorder)

	if err := d.runtime.BeginSlot(delta, header.Height); err != nil {
		return Receipt{}, err
	}
	putBlockInfo(delta, header)

	authCfg := auth.Config{ChainID: d.params.ChainID}
	bankLedger := bank.NewLedger(module.NewModuleState(delta, bank.Name))
	nonces := accounts.NewNonces(module.NewModuleState(delta, accounts.Name))
	records := sequencer.NewRecords(module.NewModuleState(delta, sequencer.Name))
	enforcer := gas.NewEnforcer(bankLedger)

	var (
		batchReceipts    []BatchReceipt
		witnessBlobs     []witness.Blob
		unregisteredUsed int
	)

	for _, blob := range blobs {
		witnessBlobs = append(witnessBlobs, witness.Blob{
			Submitter: [20]byte(blob.Submitter),
			Raw:       blob.Raw,
			BatchID:   blob.BatchID,
		})

		txs, err := DecodeBatch(blob.Raw)
		if err != nil {
			batchReceipts = append(batchReceipts, BatchReceipt{
				Submitter: blob.Submitter, BatchID: blob.BatchID, Ignored: true,
			})
			continue
		}

		if !records.IsRegistered(blob.Submitter) {
			batchReceipts = append(batchReceipts, d.applyUnregisteredBlob(delta, header, blob, txs, authCfg, nonces, &unregisteredUsed))
			continue
		}

		bond, err := enforcer.BondSequencer([20]byte(blob.Submitter), batchMaxGas(txs), d.params.BaseFeePerGas)
		if err != nil {
			batchReceipts = append(batchReceipts, BatchReceipt{
				Submitter: blob.Submitter, BatchID: blob.BatchID, Ignored: true,
			})
			continue
		}

		receipt := d.applyBondedBatch(delta, header, blob, txs, authCfg, enforcer, nonces, bond)
		batchReceipts = append(batchReceipts, receipt)
	}

	if err := d.runtime.EndSlot(delta, header.Height); err != nil {
		d.log.Error("end_slot failed", "height", header.Height, "err", err)
		return Receipt{}, err
	}

	_, root, err := d.store.Commit(delta)
	if err != nil {
		d.log.Error("commit failed", "height", header.Height, "err", err)
		return Receipt{}, err
	}
	if err := d.runtime.Finalize(delta, header.Height); err != nil {
		d.log.Error("finalize failed", "height", header.Height, "err", err)
		return Receipt{}, err
	}

	w := witness.Build(prevRoot, root, witness.Header{Height: header.Height, Time: header.Time}, recorder.Proofs(), witnessBlobs)
	d.log.Info("slot applied", "height", header.Height, "root", root, "batches", len(batchReceipts))
	return Receipt{Root: root, Batches: batchReceipts, Witness: w}, nil
}

// applyUnregisteredBlob handles the one call an unbonded sequencer's blob
// may carry: a bootstrap sequencer registration, capped at
// UnregisteredBlobsPerSlot per slot.
func (d *Driver) applyUnregisteredBlob(delta *state.Delta, header Header, blob Blob, txs [][]byte, authCfg auth.Config, nonces *accounts.Nonces, used *int) BatchReceipt {
	if *used >= d.params.UnregisteredBlobsPerSlot || len(txs) != 1 {
		return BatchReceipt{Submitter: blob.Submitter, BatchID: blob.BatchID, Ignored: true}
	}

	meta, authData, call, err := auth.AuthenticateUnregistered(txs[0], authCfg, heightView(header.Height))
	if err != nil {
		return BatchReceipt{Submitter: blob.Submitter, BatchID: blob.BatchID, Ignored: true}
	}
	if err := nonces.CheckAndIncrement(authData.CredentialID, meta.Nonce); err != nil {
		return BatchReceipt{Submitter: blob.Submitter, BatchID: blob.BatchID, Ignored: true}
	}
	*used++

	receipt := TxReceipt{Outcome: OutcomeApplied}
	if _, dispatchErr := d.runtime.Dispatch(delta, header.Height, authData.Address, blob.Submitter, call.Inputs[0].ModuleTag, call.Inputs[0].Payload); dispatchErr != nil {
		receipt.Outcome = OutcomeReverted
		receipt.Error = dispatchErr.Error()
	}

	return BatchReceipt{
		Submitter: blob.Submitter,
		BatchID:   blob.BatchID,
		Bonded:    false,
		Txs:       []TxReceipt{receipt},
	}
}

// applyBondedBatch runs every transaction in a registered sequencer's
// batch: authenticate, reserve gas, check and increment the sender's nonce,
// dispatch, and settle gas. A FatalError anywhere in the batch rolls back
// every write the batch made and slashes the bond; anything else is
// per-transaction.
func (d *Driver) applyBondedBatch(delta *state.Delta, header Header, blob Blob, txs [][]byte, authCfg auth.Config, enforcer *gas.Enforcer, nonces *accounts.Nonces, bond *gas.Bond) BatchReceipt {
	batchMark := delta.Mark()
	var txReceipts []TxReceipt
	var invalidPenalty uint64

	for _, rawTx := range txs {
		meta, authData, call, err := auth.Authenticate(rawTx, authCfg, heightView(header.Height))
		if err != nil {
			var fatal *auth.FatalError
			if errors.As(err, &fatal) {
				delta.Rollback(batchMark)
				_ = bond.Forfeit(^uint64(0))
				d.log.Warn("batch slashed", "height", header.Height, "submitter", blob.Submitter, "batch_id", blob.BatchID, "err", fatal)
				return BatchReceipt{Submitter: blob.Submitter, BatchID: blob.BatchID, Bonded: true, Slashed: true}
			}
			if sum, err := safemath.Add64(invalidPenalty, gas.BaseVerifyGas); err == nil {
				invalidPenalty = sum
			}
			txReceipts = append(txReceipts, TxReceipt{Outcome: OutcomeInvalid, Error: err.Error()})
			continue
		}

		maxFee, err := safemath.Mul64(meta.GasLimit, meta.MaxFeePerGas)
		if err != nil {
			if sum, err := safemath.Add64(invalidPenalty, gas.BaseVerifyGas); err == nil {
				invalidPenalty = sum
			}
			txReceipts = append(txReceipts, TxReceipt{Hash: meta.RawHash, Outcome: OutcomeInvalid, Error: err.Error()})
			continue
		}
		reservation, err := enforcer.ReserveTx([20]byte(authData.Address), maxFee)
		if err != nil {
			if sum, err := safemath.Add64(invalidPenalty, gas.BaseVerifyGas); err == nil {
				invalidPenalty = sum
			}
			txReceipts = append(txReceipts, TxReceipt{Hash: meta.RawHash, Outcome: OutcomeInvalid, Error: err.Error()})
			continue
		}

		// A stale or future nonce is the sender's fault, not the module
		// call's, so the reservation is returned in full; the sequencer
		// still pays for having included an unexecutable transaction.
		if err := nonces.CheckAndIncrement(authData.CredentialID, meta.Nonce); err != nil {
			_ = reservation.Refund([20]byte(proverPool), [20]byte(blob.Submitter), 0, 0)
			if sum, err := safemath.Add64(invalidPenalty, gas.BaseVerifyGas); err == nil {
				invalidPenalty = sum
			}
			txReceipts = append(txReceipts, TxReceipt{Hash: meta.RawHash, Outcome: OutcomeIncorrectNonce, Error: err.Error()})
			continue
		}

		txReceipts = append(txReceipts, d.applyTx(delta, header, blob.Submitter, authData, call, meta, reservation))
	}

	if invalidPenalty > 0 {
		_ = bond.Forfeit(invalidPenalty)
	} else {
		_ = bond.Release()
	}
	return BatchReceipt{Submitter: blob.Submitter, BatchID: blob.BatchID, Bonded: true, Txs: txReceipts}
}

// applyTx dispatches one authenticated, nonce-checked transaction's inputs
// in order, reverting only this transaction's writes (not its already
// applied nonce increment or gas reservation) if any input fails, then
// settles its gas reservation.
func (d *Driver) applyTx(delta *state.Delta, header Header, submitter auth.Address, authData auth.AuthData, call auth.DecodedCall, meta auth.TxMeta, reservation *gas.Reservation) TxReceipt {
	txMark := delta.Mark()
	receipt := TxReceipt{Hash: meta.RawHash, Outcome: OutcomeApplied}

	for _, input := range call.Inputs {
		if _, err := d.runtime.Dispatch(delta, header.Height, authData.Address, submitter, input.ModuleTag, input.Payload); err != nil {
			delta.Rollback(txMark)
			receipt.Outcome = OutcomeReverted
			receipt.Error = err.Error()
			break
		}
	}

	_ = reservation.Consume(gas.BaseVerifyGas)
	_ = reservation.Refund([20]byte(proverPool), [20]byte(submitter), gas.BaseVerifyGas, 0)
	return receipt
}

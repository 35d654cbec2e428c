// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"crypto/sha256"
	"fmt"

	"github.com/filament-zone/hub/encoding"
	"github.com/filament-zone/hub/gas"
)

// Config carries the chain-id the pipeline checks every transaction
// against.
type Config struct {
	ChainID uint64
}

// RegisterSequencerTag is the module tag sequencer calls are encoded
// under, used by AuthenticateUnregistered to recognize a bootstrap
// registration without importing modules/sequencer.
const RegisterSequencerTag byte = 0xFF

// Authenticate runs the six ordered authentication steps against a raw
// transaction: hash, variant dispatch, signature verification, chain-id
// check, structural call decode, and credential/address derivation.
func Authenticate(raw []byte, cfg Config, pre PreExecState) (TxMeta, AuthData, DecodedCall, error) {
	// Step 1: raw-tx hash. Its gas cost is computed but not charged.
	_ = gas.MeterHash(len(raw))
	hash := sha256.Sum256(raw)

	tx, err := DecodeTransaction(raw)
	if err != nil {
		return TxMeta{}, AuthData{}, DecodedCall{}, &FatalError{Cause: fmt.Errorf("%w: %s", ErrMessageDecodingFailed, err)}
	}

	meta := TxMeta{
		RawHash:      hash,
		ChainID:      tx.Body.ChainID,
		Nonce:        tx.Body.Nonce,
		GasLimit:     tx.Body.GasLimit,
		MaxFeePerGas: tx.Body.MaxFeePerGas,
	}

	// Step 2+3: dispatch on variant, verify signature.
	verifier, err := VerifierFor(tx.Cred.Variant)
	if err != nil {
		return TxMeta{}, AuthData{}, DecodedCall{}, &FatalError{Cause: err}
	}
	addr, err := verifier.Verify(tx.Body, tx.Cred)
	if err != nil {
		return TxMeta{}, AuthData{}, DecodedCall{}, &FatalError{Cause: err}
	}

	// Step 4: chain-id check.
	if tx.Body.ChainID != cfg.ChainID {
		return TxMeta{}, AuthData{}, DecodedCall{}, &FatalError{Cause: ErrInvalidChainID}
	}
	if pre != nil {
		if tx.Body.MaxHeight != nil && pre.Height() > *tx.Body.MaxHeight {
			return TxMeta{}, AuthData{}, DecodedCall{}, &InvalidError{Cause: ErrMaxHeightExceeded}
		}
	}

	// Step 5: structural call decode — every input must name a module and
	// carry a payload; semantic decode happens at dispatch.
	if len(tx.Body.Inputs) == 0 {
		return TxMeta{}, AuthData{}, DecodedCall{}, &FatalError{Cause: ErrEmptyInputs}
	}
	for _, in := range tx.Body.Inputs {
		if len(in.Payload) == 0 {
			return TxMeta{}, AuthData{}, DecodedCall{}, &FatalError{Cause: ErrMessageDecodingFailed}
		}
	}

	// Step 6: credential id and default address.
	credID := DeriveCredentialID(tx.Cred.PubKey)
	authData := AuthData{CredentialID: credID, Address: addr}

	return meta, authData, DecodedCall{Inputs: tx.Body.Inputs}, nil
}

// AuthenticateUnregistered restricts the decoded call to a sequencer
// registration, the one call an unbonded sequencer's blob may carry. This
// is how the chain bootstraps without a pre-existing registered sequencer.
func AuthenticateUnregistered(raw []byte, cfg Config, pre PreExecState) (TxMeta, AuthData, DecodedCall, error) {
	meta, data, call, err := Authenticate(raw, cfg, pre)
	if err != nil {
		return meta, data, call, err
	}

	if len(call.Inputs) != 1 || call.Inputs[0].ModuleTag != RegisterSequencerTag {
		return TxMeta{}, AuthData{}, DecodedCall{}, &FatalError{Cause: ErrUnregisteredRuntimeCall}
	}
	// Sequencer payloads are a CBOR envelope naming the method; only
	// "register" may pass here.
	var env struct{ Method string }
	if _, err := encoding.State.Unmarshal(call.Inputs[0].Payload, &env); err != nil || env.Method != "register" {
		return TxMeta{}, AuthData{}, DecodedCall{}, &FatalError{Cause: ErrUnregisteredRuntimeCall}
	}

	return meta, data, call, nil
}

// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package slot implements the per-slot state transition driver: opening a
// delta, running module hooks, authenticating and dispatching every
// transaction in arrival order, and committing the result.
package slot

import "github.com/filament-zone/hub/auth"

// Blob is one DA blob: a batch submitted by one sequencer, in DA order.
type Blob struct {
	Submitter auth.Address
	Raw       []byte
	BatchID   uint64
}

// Header identifies the DA block a slot is derived from.
type Header struct {
	Height uint64
	Time   int64
}

// Outcome classifies how one transaction within a batch was handled.
type Outcome string

const (
	OutcomeApplied        Outcome = "applied"
	OutcomeIncorrectNonce Outcome = "skipped_incorrect_nonce"
	OutcomeReverted       Outcome = "reverted"
	OutcomeInvalid        Outcome = "invalid"
)

// TxReceipt records the outcome of one transaction within a batch.
type TxReceipt struct {
	Hash    [32]byte
	Outcome Outcome
	Error   string
}

// BatchReceipt records the outcome of one blob.
type BatchReceipt struct {
	Submitter auth.Address
	BatchID   uint64
	Bonded    bool
	Ignored   bool
	Slashed   bool
	Txs       []TxReceipt
}

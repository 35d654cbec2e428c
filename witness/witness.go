// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package witness builds the read/write proof set a separate prover needs
// to replay one slot's state transition and re-derive the same root
// without access to the full store.
package witness

import (
	"github.com/luxfi/ids"

	"github.com/filament-zone/hub/state"
)

// Blob is one DA blob included in the slot, carried byte-exact so the
// prover can re-run authentication and dispatch itself.
type Blob struct {
	Submitter [20]byte
	Raw       []byte
	BatchID   uint64
}

// Witness is everything a prover needs to independently recompute
// FinalRoot from InitialRoot without the full store: the ordered inputs,
// and a proof of every key the slot touched.
type Witness struct {
	InitialRoot ids.ID
	FinalRoot   ids.ID
	DAHeader    Header
	Proofs      []state.Proof
	Blobs       []Blob
}

// Header identifies the DA block a slot was derived from.
type Header struct {
	Height uint64
	Time   int64
}

// Recorder accumulates one state.Proof per key on its first touch in a
// slot, against the pre-slot snapshot: the canonical witness for a read is
// its proof of (non-)membership before any write in this slot could have
// changed it, and for a write, the same pre-image proof is enough to let
// the prover verify the transition that follows.
type Recorder struct {
	base    *state.Snapshot
	touched map[string]struct{}
	proofs  []state.Proof
}

// NewRecorder returns a Recorder that proves keys against base, the
// snapshot a slot's delta was opened from.
func NewRecorder(base *state.Snapshot) *Recorder {
	return &Recorder{base: base, touched: make(map[string]struct{})}
}

func (r *Recorder) recordOnce(key []byte) {
	k := string(key)
	if _, seen := r.touched[k]; seen {
		return
	}
	r.touched[k] = struct{}{}
	r.proofs = append(r.proofs, state.Prove(r.base, key))
}

// OnRead implements state.Recorder.
func (r *Recorder) OnRead(key []byte, _ bool) {
	r.recordOnce(key)
}

// OnWrite implements state.Recorder.
func (r *Recorder) OnWrite(key []byte) {
	r.recordOnce(key)
}

// Proofs returns every proof accumulated so far, one per distinct key
// touched.
func (r *Recorder) Proofs() []state.Proof {
	return r.proofs
}

// Build assembles the final Witness once a slot has committed.
func Build(initial, final ids.ID, header Header, proofs []state.Proof, blobs []Blob) Witness {
	return Witness{
		InitialRoot: initial,
		FinalRoot:   final,
		DAHeader:    header,
		Proofs:      proofs,
		Blobs:       blobs,
	}
}

// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package external

import (
	"context"

	"github.com/filament-zone/hub/witness"
)

// Prover accepts a slot's witness and returns once it has durably queued it
// for proving. It never re-derives state; everything it needs to replay the
// slot and check final_root is in the witness.
type Prover interface {
	SubmitWitness(ctx context.Context, w witness.Witness) error
}

// Relayer carries a proven witness (or just its roots, once proving
// completes) to wherever settlement lives. Submission is idempotent: the
// same witness submitted twice must not be accepted twice downstream.
type Relayer interface {
	RelayWitness(ctx context.Context, w witness.Witness) error
}

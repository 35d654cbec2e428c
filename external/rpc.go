// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package external

import (
	"context"
	"errors"
)

// ErrUnknownHeight is returned by Query when the requested height has no
// committed snapshot.
var ErrUnknownHeight = errors.New("external: no snapshot at requested height")

// TxSubmitter is the inbound client surface for submitting a transaction's
// canonical byte encoding. It hands the bytes to whatever queues them for
// the next batch; it does not authenticate or apply them.
type TxSubmitter interface {
	// SubmitTx accepts the canonical encoding of a signed transaction and
	// returns its hash. The hash is computed the same way auth.Authenticate
	// computes TxMeta.RawHash, so a client can correlate it with a later
	// receipt without re-deriving it.
	SubmitTx(ctx context.Context, raw []byte) (hash [32]byte, err error)
}

// QueryResult is one key's value as observed at a specific height.
type QueryResult struct {
	Height uint64
	Value  []byte
	Found  bool
}

// Querier reads committed state. A query never observes an uncommitted
// delta; height 0 means "the latest committed snapshot".
type Querier interface {
	Query(ctx context.Context, path []byte, height uint64) (QueryResult, error)
}

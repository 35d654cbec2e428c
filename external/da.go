// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package external defines the boundary interfaces a Driver is wired
// against at runtime: a stream of data-availability blocks coming in, and a
// witness handed off to a prover going out. Concrete transports (a DA
// client's RPC, a relayer's submission path) live outside this module; only
// the shapes they must satisfy live here.
package external

import (
	"context"

	"github.com/filament-zone/hub/slot"
)

// DABlock is one block the DA layer has made available, carrying its blobs
// in the stable, replayable order a Driver must apply them in.
type DABlock struct {
	Header       slot.Header
	ValidityCond []byte
	Blobs        []slot.Blob
}

// DAClient streams DA blocks to a node in order. Implementations must
// guarantee that a replay from the same height yields byte-identical
// blocks; the STF's determinism depends on it.
type DAClient interface {
	// BlockAt fetches the block at height, blocking until it is available
	// or ctx is done.
	BlockAt(ctx context.Context, height uint64) (DABlock, error)

	// Subscribe streams every block from height onward. The returned
	// channel is closed when ctx is done or the stream ends; a non-nil
	// error on the error channel means the subscription itself failed and
	// the caller must resubscribe, not that one block was malformed.
	Subscribe(ctx context.Context, height uint64) (<-chan DABlock, <-chan error)
}

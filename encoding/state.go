// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package encoding

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Version identifies the wire format of an encoded state value, so a future
// schema change can be detected instead of silently misread.
type Version uint16

const (
	// CurrentVersion is the current state codec version.
	CurrentVersion Version = 0
)

// StateCodec marshals and unmarshals module state values and other
// durable records. The interface mirrors the consensus codec's
// Marshal/Unmarshal shape; the backing format is CBOR rather than JSON
// because state values must round-trip byte-for-byte across nodes and CBOR
// canonicalizes map key order, which JSON's encoder does not guarantee.
type StateCodec interface {
	Marshal(version Version, v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) (Version, error)
}

// State is the package-level codec instance, used throughout state and
// modules packages.
var State StateCodec = &cborCodec{}

type cborCodec struct{}

var encMode = func() cbor.EncMode {
	opts := cbor.CanonicalEncOptions()
	mode, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

func (c *cborCodec) Marshal(version Version, v interface{}) ([]byte, error) {
	if version != CurrentVersion {
		return nil, fmt.Errorf("unsupported state codec version: %d", version)
	}
	return encMode.Marshal(v)
}

func (c *cborCodec) Unmarshal(data []byte, v interface{}) (Version, error) {
	if err := cbor.Unmarshal(data, v); err != nil {
		return 0, err
	}
	return CurrentVersion, nil
}

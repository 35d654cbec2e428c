// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package slot

import "github.com/filament-zone/hub/encoding"

// EncodeBatch packs a list of encoded transactions into one blob's raw
// bytes, in the order they are to execute.
func EncodeBatch(txs [][]byte) ([]byte, error) {
	p := encoding.NewPacker(64 * len(txs))
	p.PackInt(uint32(len(txs)))
	for _, tx := range txs {
		p.PackPrefixedBytes(tx)
	}
	return p.Bytes, p.Err
}

// DecodeBatch unpacks a blob's raw bytes into its ordered transaction list.
func DecodeBatch(raw []byte) ([][]byte, error) {
	u := encoding.NewUnpacker(raw)
	n := u.UnpackInt()
	txs := make([][]byte, n)
	for i := range txs {
		txs[i] = u.UnpackPrefixedBytes()
	}
	if u.Err != nil {
		return nil, u.Err
	}
	return txs, nil
}

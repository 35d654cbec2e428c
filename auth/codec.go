// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import "github.com/filament-zone/hub/encoding"

// SignBytes returns the canonical, byte-reproducible encoding of a Body
// that a Credential's signature covers.
func SignBytes(body Body) []byte {
	p := encoding.NewPacker(128)
	p.PackLong(body.ChainID)
	if body.MaxHeight != nil {
		p.PackByte(1)
		p.PackLong(*body.MaxHeight)
	} else {
		p.PackByte(0)
	}
	p.PackBytes(body.AccountID[:])
	p.PackLong(body.Nonce)
	p.PackLong(body.GasLimit)
	p.PackLong(body.MaxFeePerGas)
	p.PackInt(uint32(len(body.Inputs)))
	for _, in := range body.Inputs {
		p.PackByte(in.ModuleTag)
		p.PackPrefixedBytes(in.Payload)
	}
	return p.Bytes
}

// EncodeTransaction serializes a full transaction (credential + body) to
// its wire format.
func EncodeTransaction(tx Transaction) ([]byte, error) {
	p := encoding.NewPacker(256)
	p.PackByte(byte(tx.Cred.Variant))
	p.PackPrefixedBytes(tx.Cred.PubKey)
	p.PackPrefixedBytes(tx.Cred.Signature)
	p.PackBytes(SignBytes(tx.Body))
	return p.Bytes, p.Err
}

// DecodeTransaction parses a wire-format transaction.
func DecodeTransaction(raw []byte) (Transaction, error) {
	u := encoding.NewUnpacker(raw)

	variant := Variant(u.UnpackByte())
	pubkey := u.UnpackPrefixedBytes()
	sig := u.UnpackPrefixedBytes()

	var body Body
	body.ChainID = u.UnpackLong()
	hasMaxHeight := u.UnpackByte()
	if hasMaxHeight == 1 {
		h := u.UnpackLong()
		body.MaxHeight = &h
	}
	accountID := u.UnpackBytes(32)
	if u.Err == nil {
		copy(body.AccountID[:], accountID)
	}
	body.Nonce = u.UnpackLong()
	body.GasLimit = u.UnpackLong()
	body.MaxFeePerGas = u.UnpackLong()

	numInputs := u.UnpackInt()
	if u.Err == nil {
		body.Inputs = make([]Input, 0, numInputs)
		for i := uint32(0); i < numInputs && u.Err == nil; i++ {
			tag := u.UnpackByte()
			payload := u.UnpackPrefixedBytes()
			body.Inputs = append(body.Inputs, Input{ModuleTag: tag, Payload: payload})
		}
	}

	if u.Err != nil {
		return Transaction{}, u.Err
	}

	return Transaction{
		Cred: Credential{Variant: variant, PubKey: pubkey, Signature: sig},
		Body: body,
	}, nil
}

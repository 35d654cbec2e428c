// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package auth implements the transaction authentication pipeline: raw-tx
// hashing, signature verification across the supported Auth variants, and
// credential/address derivation.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Address is a 20-byte account address, bech32-rendered for native
// credentials and keccak-derived for the Secp256k1Eth variant.
type Address [20]byte

// String renders the address as "0x"-prefixed hex. Native bech32 rendering
// is a CLI/display concern layered on top by encoding.EncodeHex callers;
// this is the stable, variant-independent representation used internally.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// ParseAddress parses the "0x"-prefixed hex form String produces, for CLI
// and config-file inputs.
func ParseAddress(s string) (Address, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return Address{}, fmt.Errorf("auth: invalid address %q: %w", s, err)
	}
	if len(b) != 20 {
		return Address{}, fmt.Errorf("auth: address %q must be 20 bytes, got %d", s, len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool {
	return a == Address{}
}

// CredentialID is the stable identifier for nonce accounting: the hash of
// the signer's public key, independent of which Auth variant produced it.
type CredentialID [32]byte

// String renders the credential id as "0x"-prefixed hex.
func (c CredentialID) String() string {
	return "0x" + hex.EncodeToString(c[:])
}

// DeriveCredentialID hashes a public key into a CredentialID.
func DeriveCredentialID(pubkey []byte) CredentialID {
	return CredentialID(sha256.Sum256(pubkey))
}

// AddressFromCredential derives a native address by truncating the
// credential id's hash to its first 20 bytes. Used for the Ed25519 variant,
// which has no chain-native address format to defer to.
func AddressFromCredential(cred CredentialID) Address {
	var a Address
	copy(a[:], cred[:20])
	return a
}

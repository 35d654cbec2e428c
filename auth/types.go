// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

// Variant identifies which signature scheme authenticated a transaction.
type Variant byte

const (
	AuthEd25519 Variant = iota
	AuthSecp256k1Eth
)

// Credential carries the tag, public key, and signature bytes for one
// Auth variant. Signature covers the canonical sign-bytes of Body: the raw
// body bytes for Ed25519, the eth-prefixed digest for Secp256k1Eth.
type Credential struct {
	Variant   Variant
	PubKey    []byte
	Signature []byte
}

// Input is one call payload inside a transaction body, tagged with the
// module it targets. The module runtime fully decodes Payload into its own
// typed call; auth only checks that the tag is known and the payload is
// structurally well-formed (non-empty, length-consistent).
type Input struct {
	ModuleTag byte
	Payload   []byte
}

// Body is the signed content of a transaction.
type Body struct {
	ChainID      uint64
	MaxHeight    *uint64
	AccountID    CredentialID
	Nonce        uint64
	GasLimit     uint64
	MaxFeePerGas uint64
	Inputs       []Input
}

// Transaction is the full wire format: a credential plus the body it signs.
type Transaction struct {
	Cred Credential
	Body Body
}

// TxMeta is computed during authentication: the raw-tx hash used as the
// transaction's canonical identifier, plus the fee-relevant fields the gas
// enforcer and nonce check need without re-decoding the transaction.
type TxMeta struct {
	RawHash      [32]byte
	ChainID      uint64
	Nonce        uint64
	GasLimit     uint64
	MaxFeePerGas uint64
}

// AuthData is the result of successful authentication: the signer's stable
// credential id and its derived default address.
type AuthData struct {
	CredentialID CredentialID
	Address      Address
}

// DecodedCall is the authenticated, structurally-valid set of module call
// inputs a transaction carries, ready for per-module decode at dispatch
// time.
type DecodedCall struct {
	Inputs []Input
}

// PreExecState is the narrow view of chain state Authenticate needs: the
// height visible to an about-to-run transaction, used to enforce
// Body.MaxHeight.
type PreExecState interface {
	Height() uint64
}

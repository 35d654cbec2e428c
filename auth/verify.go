// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	stded25519 "crypto/ed25519"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	gethcrypto "github.com/luxfi/geth/crypto"
)

// Verifier checks a Credential's signature against a Body's sign-bytes and
// returns the derived default address on success.
type Verifier interface {
	Verify(body Body, cred Credential) (Address, error)
}

// Ed25519Verifier implements the native Ed25519 Auth variant.
type Ed25519Verifier struct{}

func (Ed25519Verifier) Verify(body Body, cred Credential) (Address, error) {
	if len(cred.PubKey) != stded25519.PublicKeySize {
		return Address{}, fmt.Errorf("%w: bad ed25519 key size", ErrSignatureVerification)
	}
	if !stded25519.Verify(stded25519.PublicKey(cred.PubKey), SignBytes(body), cred.Signature) {
		return Address{}, ErrSignatureVerification
	}
	return AddressFromCredential(DeriveCredentialID(cred.PubKey)), nil
}

// Secp256k1EthVerifier implements the Secp256k1Eth Auth variant: signature
// recovery over the eth-prefixed digest, with the recovered key checked
// against the embedded one and the address derived via keccak, matching
// externally-owned-account addressing on an EVM-like chain.
type Secp256k1EthVerifier struct{}

// ethSignedMessage mirrors the eth_sign prefix convention so a signature
// produced by a standard eth wallet verifies unmodified.
func ethSignedMessage(body Body) []byte {
	msg := SignBytes(body)
	prefix := []byte(fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(msg)))
	return gethcrypto.Keccak256(append(prefix, msg...))
}

func (Secp256k1EthVerifier) Verify(body Body, cred Credential) (Address, error) {
	if len(cred.Signature) != 65 {
		return Address{}, fmt.Errorf("%w: secp256k1 signature must be 65 bytes", ErrSignatureVerification)
	}

	digest := ethSignedMessage(body)

	sig := make([]byte, 65)
	copy(sig, cred.Signature)
	// dcrd expects the recovery id in the leading byte; eth wire format
	// puts it last.
	recID := sig[64]
	if recID >= 27 {
		recID -= 27
	}
	compact := append([]byte{recID + 27}, sig[:64]...)

	recoveredPub, _, err := ecdsa.RecoverCompact(compact, digest)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %s", ErrSignatureVerification, err)
	}

	embeddedPub, err := secp256k1.ParsePubKey(cred.PubKey)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %s", ErrSignatureVerification, err)
	}

	if !recoveredPub.IsEqual(embeddedPub) {
		return Address{}, ErrRecoveredKeyMismatch
	}

	return keccakAddress(embeddedPub), nil
}

// keccakAddress derives an Ethereum-style address: the last 20 bytes of
// keccak256 over the uncompressed public key's 64-byte X||Y encoding.
func keccakAddress(pub *secp256k1.PublicKey) Address {
	uncompressed := pub.SerializeUncompressed() // 0x04 || X || Y
	hash := gethcrypto.Keccak256(uncompressed[1:])

	var a Address
	copy(a[:], hash[12:])
	return a
}

// VerifierFor returns the Verifier for a Credential's variant.
func VerifierFor(v Variant) (Verifier, error) {
	switch v {
	case AuthEd25519:
		return Ed25519Verifier{}, nil
	case AuthSecp256k1Eth:
		return Secp256k1EthVerifier{}, nil
	default:
		return nil, ErrUnknownAuthVariant
	}
}

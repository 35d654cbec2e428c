// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	stded25519 "crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
)

// loadOrCreateKey reads a hex-encoded Ed25519 seed from path, generating and
// persisting a fresh one if the file does not exist. The seed, not the
// expanded private key, is what's stored, matching crypto/ed25519's own
// NewKeyFromSeed round trip.
func loadOrCreateKey(path string) (stded25519.PublicKey, stded25519.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		seed, decodeErr := hex.DecodeString(string(raw))
		if decodeErr != nil || len(seed) != stded25519.SeedSize {
			return nil, nil, fmt.Errorf("hubd: key file %q is not a valid %d-byte hex seed", path, stded25519.SeedSize)
		}
		priv := stded25519.NewKeyFromSeed(seed)
		return priv.Public().(stded25519.PublicKey), priv, nil
	}
	if !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("reading key file: %w", err)
	}

	seed := make([]byte, stded25519.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, nil, err
	}
	priv := stded25519.NewKeyFromSeed(seed)
	if err := os.WriteFile(path, []byte(hex.EncodeToString(seed)), 0o600); err != nil {
		return nil, nil, fmt.Errorf("writing key file: %w", err)
	}
	return priv.Public().(stded25519.PublicKey), priv, nil
}

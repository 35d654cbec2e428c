// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package encoding

import (
	"encoding/hex"
	"fmt"
)

// HexEncoding specifies the string representation used for addresses,
// hashes, and other byte fields rendered by the CLI and query responses.
type HexEncoding uint8

const (
	// HexC is hex with a "0x" prefix.
	HexC HexEncoding = iota
	// HexNC is hex without a prefix.
	HexNC
)

// EncodeHex encodes bytes to a string in the given encoding.
func EncodeHex(enc HexEncoding, b []byte) (string, error) {
	switch enc {
	case HexC:
		return "0x" + hex.EncodeToString(b), nil
	case HexNC:
		return hex.EncodeToString(b), nil
	default:
		return "", fmt.Errorf("unknown hex encoding: %d", enc)
	}
}

// DecodeHex decodes a string in the given encoding to bytes.
func DecodeHex(enc HexEncoding, s string) ([]byte, error) {
	switch enc {
	case HexC:
		if len(s) < 2 || s[:2] != "0x" {
			return nil, fmt.Errorf("hex string must start with 0x")
		}
		return hex.DecodeString(s[2:])
	case HexNC:
		return hex.DecodeString(s)
	default:
		return nil, fmt.Errorf("unknown hex encoding: %d", enc)
	}
}

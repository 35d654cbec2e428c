// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package encoding

import (
	"encoding/binary"
	"strings"
)

// Key builds a namespaced state key of the form "module/part1/part2/...".
// Every module's state lives under its own module name so two modules can
// never collide on a key, no matter what suffixes they choose.
func Key(module string, parts ...string) string {
	if len(parts) == 0 {
		return module
	}
	return module + "/" + strings.Join(parts, "/")
}

// Uint64Key appends a big-endian uint64 suffix to a key prefix, so that
// numeric-keyed iteration (e.g. campaign ids, proposal ids) stays
// lexicographically ordered.
func Uint64Key(prefix string, n uint64) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	return prefix + "/" + string(buf[:])
}

// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package encoding provides the deterministic byte encodings used for
// transaction sign-bytes, state keys, and state values.
package encoding

import "errors"

// ErrShortBuffer is returned by Unpacker when a read runs past the end of
// the buffer.
var ErrShortBuffer = errors.New("encoding: short buffer")

// Packer builds a byte slice incrementally, sticking to the first error
// encountered so callers don't need to check after every call. Transaction
// sign-bytes must be byte-exact across nodes, which is what this buys over
// ad-hoc append calls scattered through the caller.
type Packer struct {
	Bytes []byte
	Err   error
}

// NewPacker returns a new Packer with capacity hint size.
func NewPacker(size int) *Packer {
	return &Packer{
		Bytes: make([]byte, 0, size),
	}
}

// PackByte packs a single byte.
func (p *Packer) PackByte(b byte) {
	if p.Err != nil {
		return
	}
	p.Bytes = append(p.Bytes, b)
}

// PackBytes packs raw bytes with no length prefix.
func (p *Packer) PackBytes(bytes []byte) {
	if p.Err != nil {
		return
	}
	p.Bytes = append(p.Bytes, bytes...)
}

// PackInt packs a uint32 in big-endian order.
func (p *Packer) PackInt(i uint32) {
	if p.Err != nil {
		return
	}
	p.Bytes = append(p.Bytes, byte(i>>24), byte(i>>16), byte(i>>8), byte(i))
}

// PackLong packs a uint64 in big-endian order.
func (p *Packer) PackLong(l uint64) {
	if p.Err != nil {
		return
	}
	p.Bytes = append(p.Bytes,
		byte(l>>56), byte(l>>48), byte(l>>40), byte(l>>32),
		byte(l>>24), byte(l>>16), byte(l>>8), byte(l))
}

// PackPrefixedBytes packs a length-prefixed byte slice: a uint32 length
// followed by the bytes themselves. Used for variable-length fields
// (addresses, payloads) that sit inside a larger sign-byte buffer.
func (p *Packer) PackPrefixedBytes(bytes []byte) {
	if p.Err != nil {
		return
	}
	p.PackInt(uint32(len(bytes)))
	p.PackBytes(bytes)
}

// PackString packs a length-prefixed UTF-8 string.
func (p *Packer) PackString(s string) {
	p.PackPrefixedBytes([]byte(s))
}

// Unpacker reads fields back out of a Packer-produced buffer in the same
// order they were packed, sticking to the first error the way Packer does.
type Unpacker struct {
	Bytes  []byte
	Offset int
	Err    error
}

// NewUnpacker wraps b for sequential reads.
func NewUnpacker(b []byte) *Unpacker {
	return &Unpacker{Bytes: b}
}

func (u *Unpacker) require(n int) bool {
	if u.Err != nil {
		return false
	}
	if u.Offset+n > len(u.Bytes) {
		u.Err = ErrShortBuffer
		return false
	}
	return true
}

// UnpackByte reads a single byte.
func (u *Unpacker) UnpackByte() byte {
	if !u.require(1) {
		return 0
	}
	b := u.Bytes[u.Offset]
	u.Offset++
	return b
}

// UnpackBytes reads n raw bytes.
func (u *Unpacker) UnpackBytes(n int) []byte {
	if !u.require(n) {
		return nil
	}
	b := u.Bytes[u.Offset : u.Offset+n]
	u.Offset += n
	return b
}

// UnpackInt reads a big-endian uint32.
func (u *Unpacker) UnpackInt() uint32 {
	b := u.UnpackBytes(4)
	if u.Err != nil {
		return 0
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// UnpackLong reads a big-endian uint64.
func (u *Unpacker) UnpackLong() uint64 {
	b := u.UnpackBytes(8)
	if u.Err != nil {
		return 0
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// UnpackPrefixedBytes reads a length-prefixed byte slice.
func (u *Unpacker) UnpackPrefixedBytes() []byte {
	n := u.UnpackInt()
	if u.Err != nil {
		return nil
	}
	return u.UnpackBytes(int(n))
}

// UnpackString reads a length-prefixed UTF-8 string.
func (u *Unpacker) UnpackString() string {
	return string(u.UnpackPrefixedBytes())
}

// Done reports whether the whole buffer was consumed without error.
func (u *Unpacker) Done() bool {
	return u.Err == nil && u.Offset == len(u.Bytes)
}

package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackerStickyError(t *testing.T) {
	p := NewPacker(0)
	p.Err = ErrTest
	p.PackByte(1)
	p.PackString("x")
	require.Empty(t, p.Bytes)
}

func TestPackerPrefixedBytesRoundTrip(t *testing.T) {
	p := NewPacker(0)
	p.PackPrefixedBytes([]byte("hello"))
	p.PackLong(42)
	require.NoError(t, p.Err)
	require.NotEmpty(t, p.Bytes)

	u := NewUnpacker(p.Bytes)
	require.Equal(t, []byte("hello"), u.UnpackPrefixedBytes())
	require.Equal(t, uint64(42), u.UnpackLong())
	require.True(t, u.Done())
}

var ErrTest = fmtErr("boom")

type fmtErr string

func (e fmtErr) Error() string { return string(e) }

package safemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdd64Overflow(t *testing.T) {
	_, err := Add64(math.MaxUint64, 1)
	require.ErrorIs(t, err, ErrOverflow)

	sum, err := Add64(1, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(3), sum)
}

func TestSub64Underflow(t *testing.T) {
	_, err := Sub64(1, 2)
	require.ErrorIs(t, err, ErrUnderflow)

	diff, err := Sub64(5, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(3), diff)
}

func TestMul64Overflow(t *testing.T) {
	_, err := Mul64(math.MaxUint64, 2)
	require.ErrorIs(t, err, ErrOverflow)

	prod, err := Mul64(3, 4)
	require.NoError(t, err)
	require.Equal(t, uint64(12), prod)
}

func TestMinMax64(t *testing.T) {
	require.Equal(t, uint64(1), Min64(1, 2))
	require.Equal(t, uint64(2), Max64(1, 2))
	require.Equal(t, uint64(1), AbsDiff(3, 2))
	require.Equal(t, uint64(1), AbsDiff(2, 3))
}

package ioadapt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInputPaddedReads(t *testing.T) {
	in := NewInput([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})
	b, err := in.Byte(ZeroPadding{})
	require.NoError(t, err)
	require.Equal(t, byte(0x01), b)

	u16, err := in.DoubleByteBE(ZeroPadding{})
	require.NoError(t, err)
	require.Equal(t, uint16(0x0203), u16)

	u32, err := in.QuadByteBE(ZeroPadding{})
	require.NoError(t, err)
	require.Equal(t, uint32(0x04050607), u32)

	require.Equal(t, 1, in.Len())
}

func TestInputZeroPaddingOnShortRead(t *testing.T) {
	in := NewInput([]byte{0xAA})
	u32, err := in.QuadByteBE(ZeroPadding{})
	require.NoError(t, err)
	require.Equal(t, uint32(0xAAFFFFFF), u32)
	require.Equal(t, 0, in.Len())
}

func TestInputStrictPaddingErrors(t *testing.T) {
	in := NewInput([]byte{0xAA})
	pos := in.Position()
	_, err := in.QuadByteBE(StrictPadding{Pos: pos})
	require.Error(t, err)
}

func TestInputBytesExact(t *testing.T) {
	in := NewInput([]byte("hello world"))
	b, err := in.Bytes(5, ZeroPadding{})
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), b)
	require.Equal(t, 6, in.Len())
}

func TestPrecedingBytesAsASCII(t *testing.T) {
	in := NewInput([]byte("1.234567890123E-23,"))
	_, err := in.Bytes(18, ZeroPadding{})
	require.NoError(t, err)
	require.Equal(t, "1.234567890123E-23", in.PrecedingBytesAsASCII(18))
}

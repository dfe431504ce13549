package ioadapt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkedOutputAcrossChunkBoundary(t *testing.T) {
	out := NewChunkedOutput(4, false)
	for i := 0; i < 10; i++ {
		require.NoError(t, out.WriteByte(byte(i)))
	}
	got := out.Result()
	require.Len(t, got, 10)
	for i := 0; i < 10; i++ {
		require.Equal(t, byte(i), got[i])
	}
}

func TestChunkedOutputWriteBytesFrom(t *testing.T) {
	out := NewChunkedOutput(3, false)
	require.NoError(t, out.WriteBytesFrom([]byte("hello, world")))
	require.Equal(t, []byte("hello, world"), out.Result())
}

func TestChunkedOutputPooled(t *testing.T) {
	out := NewChunkedOutput(8, true)
	require.NoError(t, out.WriteBytesFrom([]byte("0123456789abcdef")))
	require.Equal(t, []byte("0123456789abcdef"), out.Result())
}

func TestByteSliceAccessRoundTrip(t *testing.T) {
	var ba ByteAccess[[]byte] = ByteSliceAccess{}
	b := ba.FromBytes([]byte("abc"))
	require.Equal(t, "abc", string(ba.ToBytes(b)))
	require.Equal(t, 3, ba.Size(b))
	cat := ba.Concat(b, ba.FromBytes([]byte("def")))
	require.Equal(t, "abcdef", string(ba.ToBytes(cat)))
}

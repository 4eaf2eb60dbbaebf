package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)
	require.Zero(t, bb.Len())

	bb.MustWrite([]byte("abcd"))
	require.Equal(t, 4, bb.Len())
	require.Equal(t, []byte("abcd"), bb.Bytes())

	n, err := bb.Write([]byte("ef"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, 6, bb.Len())

	bb.Reset()
	require.Zero(t, bb.Len())
}

func TestByteBuffer_PadTo(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte{1, 2, 3})

	bb.PadTo(8)
	require.Equal(t, []byte{1, 2, 3, 0, 0, 0, 0, 0}, bb.Bytes())

	// Padding to a smaller length is a no-op.
	bb.PadTo(4)
	require.Equal(t, 8, bb.Len())
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte{1, 2, 3, 4})

	bb.Grow(1024)
	require.GreaterOrEqual(t, cap(bb.B)-bb.Len(), 1024)
	require.Equal(t, []byte{1, 2, 3, 4}, bb.Bytes())
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(32, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("data"))
	p.Put(bb)

	// Reused buffers come back reset.
	bb2 := p.Get()
	require.Zero(t, bb2.Len())

	// Oversized buffers are discarded instead of pooled.
	big := NewByteBuffer(128)
	p.Put(big)

	p.Put(nil) // must not panic
}

func TestArchiveBufferHelpers(t *testing.T) {
	bb := GetArchiveBuffer()
	require.NotNil(t, bb)
	require.Zero(t, bb.Len())
	bb.MustWrite([]byte{1})
	PutArchiveBuffer(bb)
}

package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	b := engine.AppendUint32(nil, 0x12345678)
	require.Equal(t, []byte{0x78, 0x56, 0x34, 0x12}, b)
	require.Equal(t, uint32(0x12345678), engine.Uint32(b))

	b = engine.AppendUint16(nil, 0xbeef)
	require.Equal(t, []byte{0xef, 0xbe}, b)
	require.Equal(t, uint16(0xbeef), engine.Uint16(b))
}

func TestAlignUp(t *testing.T) {
	cases := []struct {
		n, align, want int
	}{
		{0, 4, 0},
		{1, 4, 4},
		{3, 4, 4},
		{4, 4, 4},
		{5, 4, 8},
		{13, 4, 16},
		{7, 8, 8},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, AlignUp(tc.n, tc.align), "AlignUp(%d, %d)", tc.n, tc.align)
	}
}

func TestNulString(t *testing.T) {
	data := []byte("xml\x00rest\x00")

	t.Run("At start", func(t *testing.T) {
		s, ok := NulString(data, 0)
		require.True(t, ok)
		require.Equal(t, []byte("xml"), s)
	})

	t.Run("Mid buffer", func(t *testing.T) {
		s, ok := NulString(data, 4)
		require.True(t, ok)
		require.Equal(t, []byte("rest"), s)
	})

	t.Run("Empty string", func(t *testing.T) {
		s, ok := NulString(data, 3)
		require.True(t, ok)
		require.Empty(t, s)
	})

	t.Run("Missing terminator", func(t *testing.T) {
		_, ok := NulString([]byte("no nul"), 0)
		require.False(t, ok)
	})

	t.Run("Out of range offset", func(t *testing.T) {
		_, ok := NulString(data, len(data)+1)
		require.False(t, ok)
		_, ok = NulString(data, -1)
		require.False(t, ok)
	})
}

package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeldamods/aamp/format"
)

var sample = bytes.Repeat([]byte("parameter archive payload "), 64)

func TestCodecs_RoundTrip(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(sample)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, sample, decompressed)

			if ct != format.CompressionNone {
				require.Less(t, len(compressed), len(sample))
			}
		})
	}
}

func TestGetCodec_Unknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(99))
	require.Error(t, err)
}

func TestDetect(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(sample)
			require.NoError(t, err)
			require.Equal(t, ct, Detect(compressed))
		})
	}

	t.Run("Raw archive is none", func(t *testing.T) {
		require.Equal(t, format.CompressionNone, Detect([]byte("AAMP\x02\x00\x00\x00")))
	})

	t.Run("YAML is none", func(t *testing.T) {
		require.Equal(t, format.CompressionNone, Detect([]byte("!io\nversion: 0\n")))
	})

	t.Run("Empty input", func(t *testing.T) {
		require.Equal(t, format.CompressionNone, Detect(nil))
	})
}

func TestParseType(t *testing.T) {
	cases := map[string]format.CompressionType{
		"":     format.CompressionNone,
		"none": format.CompressionNone,
		"zstd": format.CompressionZstd,
		"s2":   format.CompressionS2,
		"lz4":  format.CompressionLZ4,
	}
	for name, want := range cases {
		got, err := ParseType(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseType("gzip")
	require.Error(t, err)
}

func TestDecompress_Corrupted(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(sample)
			require.NoError(t, err)

			// A truncated frame must never decompress silently.
			_, err = codec.Decompress(compressed[:len(compressed)/2])
			require.Error(t, err)
		})
	}
}

// Package compress provides optional whole-file compression for parameter
// archives on disk.
//
// Compression is not part of the AAMP format; it wraps the finished archive
// (or its YAML form) in a self-identifying frame so tools can sniff and
// unwrap inputs transparently. Three algorithms are supported besides the
// no-op pass-through:
//
//   - Zstd: best ratio, moderate speed
//   - S2: balanced speed and ratio, Snappy-compatible framing
//   - LZ4: fastest decompression
//
// All codecs are safe for concurrent use.
package compress

import (
	"bytes"
	"fmt"

	"github.com/zeldamods/aamp/format"
)

// Compressor compresses a complete input buffer into a framed stream.
//
// The returned slice is newly allocated and owned by the caller; the input
// is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor. It validates the frame format and
// returns an error for corrupted or mismatched input.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
func GetCodec(t format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[t]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", t)
}

// ParseType maps a lowercase algorithm name to its compression type.
func ParseType(name string) (format.CompressionType, error) {
	switch name {
	case "", "none":
		return format.CompressionNone, nil
	case "zstd":
		return format.CompressionZstd, nil
	case "s2":
		return format.CompressionS2, nil
	case "lz4":
		return format.CompressionLZ4, nil
	default:
		return format.CompressionNone, fmt.Errorf("unknown compression type: %q", name)
	}
}

// Frame magics of the supported stream formats.
var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	s2Magic   = []byte{0xff, 0x06, 0x00, 0x00, 0x73, 0x4e, 0x61, 0x50, 0x70, 0x59}

	// s2NativeMagic is the stream identifier written by the S2 writer;
	// s2Magic above is the Snappy identifier, which the S2 reader also accepts.
	s2NativeMagic = []byte{0xff, 0x06, 0x00, 0x00, 0x53, 0x32, 0x73, 0x54, 0x77, 0x4f}
)

// Detect sniffs the frame magic at the start of data and returns the
// compression type wrapping it, or CompressionNone for anything else
// (including raw AAMP and YAML input).
func Detect(data []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(data, s2Magic), bytes.HasPrefix(data, s2NativeMagic):
		return format.CompressionS2
	default:
		return format.CompressionNone
	}
}

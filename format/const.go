package format

// HeaderFlags is the bitfield at header offset 0x8.
type HeaderFlags uint32

const (
	// FlagLittleEndian must be set; big-endian archives are rejected.
	FlagLittleEndian HeaderFlags = 1 << 0
	// FlagUTF8 must be set; non-UTF-8 archives are rejected.
	FlagUTF8 HeaderFlags = 1 << 1
)

// IsLittleEndian reports whether the little-endian flag is set.
func (f HeaderFlags) IsLittleEndian() bool { return f&FlagLittleEndian != 0 }

// IsUTF8 reports whether the UTF-8 flag is set.
func (f HeaderFlags) IsUTF8() bool { return f&FlagUTF8 != 0 }

const (
	// Magic is the four-byte signature at the start of every archive.
	Magic = "AAMP"

	// Version is the format version written at header offset 0x4.
	Version = 2

	// HeaderSize is the fixed header size in bytes, up to but not including
	// the type-name block.
	HeaderSize = 0x30

	// ListRecordSize is the size of a parameter list record.
	ListRecordSize = 12

	// ObjectRecordSize is the size of a parameter object record.
	ObjectRecordSize = 8

	// ParamRecordSize is the size of a parameter record.
	ParamRecordSize = 8

	// CurveSize is the encoded size of a single curve:
	// 2 u32 integer controls followed by 30 f32 values.
	CurveSize = 0x80

	// Align is the alignment of every record, data entry and pooled string.
	Align = 4
)

// CompressionType identifies the optional whole-file compression wrapped
// around an archive on disk. It is not part of the AAMP format itself; codecs
// are detected by their own frame magic.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0 // no compression
	CompressionZstd CompressionType = 1 // Zstandard frames
	CompressionS2   CompressionType = 2 // S2/Snappy framed stream
	CompressionLZ4  CompressionType = 3 // LZ4 frames
)

// String returns the canonical lowercase name of the compression type.
func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

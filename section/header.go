// Package section defines the fixed-layout structures of a parameter
// archive: the 48-byte file header and the list, object and parameter
// records that make up the structure section.
//
// The header provides a Parse/Bytes pair; the list, object and parameter
// records provide Parse only. All of them operate on raw byte slices with the
// little-endian engine.
package section

import (
	"fmt"

	"github.com/zeldamods/aamp/endian"
	"github.com/zeldamods/aamp/errs"
	"github.com/zeldamods/aamp/format"
)

// Header represents the fixed-size header at the start of an archive.
//
// The type-name block (a NUL-terminated string padded to 4 bytes) follows
// immediately after the fixed part; the root list record starts at
// HeaderSize + TypeLen.
type Header struct {
	// Flags is the endianness/encoding bitfield. byte offset 8-11
	Flags format.HeaderFlags
	// FileSize is the total archive size in bytes. byte offset 12-15
	FileSize uint32
	// Version is the parameter IO version. byte offset 16-19
	Version uint32
	// TypeLen is the length of the type-name block including the trailing
	// NUL, padded to 4 bytes. byte offset 20-23
	TypeLen uint32
	// NumLists is the number of list records, root included. byte offset 24-27
	NumLists uint32
	// NumObjects is the number of object records. byte offset 28-31
	NumObjects uint32
	// NumParams is the number of parameter records. byte offset 32-35
	NumParams uint32
	// DataSize is the data section size in bytes. byte offset 36-39
	DataSize uint32
	// StringSize is the string section size in bytes. byte offset 40-43
	StringSize uint32
	// Reserved is unknown; encoders write zero. byte offset 44-47
	Reserved uint32
}

// NewHeader creates a header for an archive of the given IO version and
// type-name block length. Size and count fields are filled in when the
// writer finishes.
func NewHeader(version uint32, typeLen uint32) *Header {
	return &Header{
		Flags:   format.FlagLittleEndian | format.FlagUTF8,
		Version: version,
		TypeLen: typeLen,
	}
}

// Parse parses and validates the fixed header.
//
// Parameters:
//   - data: Byte slice containing at least HeaderSize bytes
//
// Returns:
//   - error: ErrTruncated, ErrInvalidMagic, ErrBigEndian or ErrNotUTF8
func (h *Header) Parse(data []byte) error {
	if len(data) < format.HeaderSize {
		return fmt.Errorf("%w: %d byte header, need %d", errs.ErrTruncated, len(data), format.HeaderSize)
	}
	if string(data[0:4]) != format.Magic {
		return fmt.Errorf("%w: %q (expected %q)", errs.ErrInvalidMagic, data[0:4], format.Magic)
	}

	engine := endian.GetLittleEndianEngine()

	h.Flags = format.HeaderFlags(engine.Uint32(data[0x08:0x0c]))
	if !h.Flags.IsLittleEndian() {
		return errs.ErrBigEndian
	}
	if !h.Flags.IsUTF8() {
		return errs.ErrNotUTF8
	}

	h.FileSize = engine.Uint32(data[0x0c:0x10])
	h.Version = engine.Uint32(data[0x10:0x14])
	h.TypeLen = engine.Uint32(data[0x14:0x18])
	h.NumLists = engine.Uint32(data[0x18:0x1c])
	h.NumObjects = engine.Uint32(data[0x1c:0x20])
	h.NumParams = engine.Uint32(data[0x20:0x24])
	h.DataSize = engine.Uint32(data[0x24:0x28])
	h.StringSize = engine.Uint32(data[0x28:0x2c])
	h.Reserved = engine.Uint32(data[0x2c:0x30])

	return nil
}

// Bytes serialises the fixed header.
func (h *Header) Bytes() []byte {
	engine := endian.GetLittleEndianEngine()

	b := make([]byte, 0, format.HeaderSize)
	b = append(b, format.Magic...)
	b = engine.AppendUint32(b, format.Version)
	b = engine.AppendUint32(b, uint32(h.Flags))
	b = engine.AppendUint32(b, h.FileSize)
	b = engine.AppendUint32(b, h.Version)
	b = engine.AppendUint32(b, h.TypeLen)
	b = engine.AppendUint32(b, h.NumLists)
	b = engine.AppendUint32(b, h.NumObjects)
	b = engine.AppendUint32(b, h.NumParams)
	b = engine.AppendUint32(b, h.DataSize)
	b = engine.AppendUint32(b, h.StringSize)
	b = engine.AppendUint32(b, h.Reserved)

	return b
}

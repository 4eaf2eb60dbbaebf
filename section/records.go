package section

import (
	"fmt"

	"github.com/zeldamods/aamp/endian"
	"github.com/zeldamods/aamp/errs"
	"github.com/zeldamods/aamp/format"
)

// ListRecord is the 12-byte wire record of a parameter list.
//
// Both offsets are stored in units of 4 bytes, relative to the start of this
// record. Child list records are laid out contiguously at ListsOffset, child
// object records at ObjsOffset.
type ListRecord struct {
	// Crc32 is the list's key within its parent. byte offset 0-3
	Crc32 uint32
	// ListsOffset is the offset to the child list records, in 4-byte units
	// relative to this record. byte offset 4-5
	ListsOffset uint16
	// ListsCount is the number of child lists. byte offset 6-7
	ListsCount uint16
	// ObjsOffset is the offset to the child object records, in 4-byte units
	// relative to this record. byte offset 8-9
	ObjsOffset uint16
	// ObjsCount is the number of child objects. byte offset 10-11
	ObjsCount uint16
}

// Parse parses a list record from data at the given offset.
func (r *ListRecord) Parse(data []byte, offset int) error {
	if offset < 0 || offset+format.ListRecordSize > len(data) {
		return fmt.Errorf("%w: list record at 0x%x", errs.ErrTruncated, offset)
	}

	engine := endian.GetLittleEndianEngine()
	r.Crc32 = engine.Uint32(data[offset : offset+4])
	r.ListsOffset = engine.Uint16(data[offset+4 : offset+6])
	r.ListsCount = engine.Uint16(data[offset+6 : offset+8])
	r.ObjsOffset = engine.Uint16(data[offset+8 : offset+10])
	r.ObjsCount = engine.Uint16(data[offset+10 : offset+12])

	return nil
}

// ObjectRecord is the 8-byte wire record of a parameter object.
type ObjectRecord struct {
	// Crc32 is the object's key within its parent list. byte offset 0-3
	Crc32 uint32
	// ParamsOffset is the offset to the parameter records, in 4-byte units
	// relative to this record. byte offset 4-5
	ParamsOffset uint16
	// ParamsCount is the number of parameters. byte offset 6-7
	ParamsCount uint16
}

// Parse parses an object record from data at the given offset.
func (r *ObjectRecord) Parse(data []byte, offset int) error {
	if offset < 0 || offset+format.ObjectRecordSize > len(data) {
		return fmt.Errorf("%w: object record at 0x%x", errs.ErrTruncated, offset)
	}

	engine := endian.GetLittleEndianEngine()
	r.Crc32 = engine.Uint32(data[offset : offset+4])
	r.ParamsOffset = engine.Uint16(data[offset+4 : offset+6])
	r.ParamsCount = engine.Uint16(data[offset+6 : offset+8])

	return nil
}

// ParamRecord is the 8-byte wire record of a single parameter.
//
// The second word packs the type tag into the top byte and the data offset,
// in 4-byte units relative to this record, into the low 24 bits.
type ParamRecord struct {
	// Crc32 is the parameter's key within its object. byte offset 0-3
	Crc32 uint32
	// Type is the wire type tag. byte offset 7
	Type format.Type
	// DataOffset is the offset to the value payload, in 4-byte units
	// relative to this record. byte offset 4-6 (low 24 bits)
	DataOffset uint32
}

// Parse parses a parameter record from data at the given offset.
func (r *ParamRecord) Parse(data []byte, offset int) error {
	if offset < 0 || offset+format.ParamRecordSize > len(data) {
		return fmt.Errorf("%w: parameter record at 0x%x", errs.ErrTruncated, offset)
	}

	engine := endian.GetLittleEndianEngine()
	r.Crc32 = engine.Uint32(data[offset : offset+4])
	field4 := engine.Uint32(data[offset+4 : offset+8])
	r.Type = format.Type(field4 >> 24)
	r.DataOffset = field4 & 0xffffff

	return nil
}

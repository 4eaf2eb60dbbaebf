// Package archive implements the binary reader and writer for AAMP parameter
// archives (format version 2, little-endian, UTF-8).
//
// The Reader parses a byte slice into a parameter.IO tree; the Writer
// serialises a tree back into bytes accepted by Nintendo's canonical tools.
// Both run to completion on the caller's goroutine and keep no shared state.
package archive

import (
	"fmt"

	"github.com/zeldamods/aamp/endian"
	"github.com/zeldamods/aamp/errs"
	"github.com/zeldamods/aamp/format"
	"github.com/zeldamods/aamp/internal/hash"
	"github.com/zeldamods/aamp/internal/options"
	"github.com/zeldamods/aamp/parameter"
	"github.com/zeldamods/aamp/section"
)

// Reader parses a binary parameter archive.
//
// A Reader validates the header at construction time and traverses the tree
// structurally on Parse; the header's count fields are informational for
// writers and never consulted.
//
// Note: the Reader is not safe for concurrent use.
type Reader struct {
	data   []byte
	engine endian.EndianEngine

	trackStrings bool
	seen         map[uint32]string

	header section.Header
}

// ReaderOption configures a Reader.
type ReaderOption = options.Option[*Reader]

// WithStringTracking makes the reader record every decoded string in a
// CRC32 → string side table, consulted later by name recovery for hashes
// whose original string appears in the archive itself.
func WithStringTracking() ReaderOption {
	return options.NoError(func(r *Reader) {
		r.trackStrings = true
	})
}

// NewReader creates a reader over data and validates the archive header.
//
// Returns:
//   - *Reader: Reader positioned at the root list
//   - error: ErrTruncated, ErrInvalidMagic, ErrBigEndian or ErrNotUTF8
func NewReader(data []byte, opts ...ReaderOption) (*Reader, error) {
	r := &Reader{
		data:   data,
		engine: endian.GetLittleEndianEngine(),
		seen:   make(map[uint32]string),
	}

	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}
	if err := r.header.Parse(data); err != nil {
		return nil, err
	}

	return r, nil
}

// SeenStrings returns the CRC32 → string table collected during Parse.
// The table is empty unless WithStringTracking was set.
func (r *Reader) SeenStrings() map[uint32]string {
	return r.seen
}

// Parse decodes the whole archive into a parameter IO tree.
func (r *Reader) Parse() (*parameter.IO, error) {
	typeName, ok := endian.NulString(r.data, format.HeaderSize)
	if !ok {
		return nil, fmt.Errorf("%w: type name at 0x%x", errs.ErrTruncated, format.HeaderSize)
	}

	pio := parameter.NewIO(string(typeName), r.header.Version)

	rootKey, root, err := r.parseList(format.HeaderSize + int(r.header.TypeLen))
	if err != nil {
		return nil, err
	}
	pio.SetListKey(rootKey, root)

	return pio, nil
}

func (r *Reader) parseList(offset int) (uint32, *parameter.List, error) {
	var rec section.ListRecord
	if err := rec.Parse(r.data, offset); err != nil {
		return 0, nil, err
	}

	plist := parameter.NewList()

	objOffset := offset + 4*int(rec.ObjsOffset)
	for i := 0; i < int(rec.ObjsCount); i++ {
		key, obj, err := r.parseObject(objOffset)
		if err != nil {
			return 0, nil, err
		}
		plist.SetObjectKey(key, obj)
		objOffset += format.ObjectRecordSize
	}

	listOffset := offset + 4*int(rec.ListsOffset)
	for i := 0; i < int(rec.ListsCount); i++ {
		key, child, err := r.parseList(listOffset)
		if err != nil {
			return 0, nil, err
		}
		plist.SetListKey(key, child)
		listOffset += format.ListRecordSize
	}

	return rec.Crc32, plist, nil
}

func (r *Reader) parseObject(offset int) (uint32, *parameter.Object, error) {
	var rec section.ObjectRecord
	if err := rec.Parse(r.data, offset); err != nil {
		return 0, nil, err
	}

	pobj := parameter.NewObject()

	paramOffset := offset + 4*int(rec.ParamsOffset)
	for i := 0; i < int(rec.ParamsCount); i++ {
		key, v, err := r.parseParam(paramOffset)
		if err != nil {
			return 0, nil, err
		}
		pobj.SetKey(key, v)
		paramOffset += format.ParamRecordSize
	}

	return rec.Crc32, pobj, nil
}

func (r *Reader) parseParam(offset int) (uint32, parameter.Value, error) {
	var rec section.ParamRecord
	if err := rec.Parse(r.data, offset); err != nil {
		return 0, nil, err
	}

	dataOffset := offset + 4*int(rec.DataOffset)

	var (
		v   parameter.Value
		err error
	)

	switch rec.Type {
	case format.Bool:
		var u uint32
		if u, err = r.u32(dataOffset); err == nil {
			v = parameter.Bool(u != 0)
		}
	case format.F32:
		var f float32
		if f, err = r.f32(dataOffset); err == nil {
			v = parameter.F32(f)
		}
	case format.Int:
		var n int32
		if n, err = r.i32(dataOffset); err == nil {
			v = parameter.Int(n)
		}
	case format.U32:
		var u uint32
		if u, err = r.u32(dataOffset); err == nil {
			v = parameter.U32(u)
		}
	case format.Vec2:
		var f [2]float32
		if err = r.f32s(dataOffset, f[:]); err == nil {
			v = parameter.Vec2{X: f[0], Y: f[1]}
		}
	case format.Vec3:
		var f [3]float32
		if err = r.f32s(dataOffset, f[:]); err == nil {
			v = parameter.Vec3{X: f[0], Y: f[1], Z: f[2]}
		}
	case format.Vec4:
		var f [4]float32
		if err = r.f32s(dataOffset, f[:]); err == nil {
			v = parameter.Vec4{X: f[0], Y: f[1], Z: f[2], W: f[3]}
		}
	case format.Color:
		var f [4]float32
		if err = r.f32s(dataOffset, f[:]); err == nil {
			v = parameter.Color{R: f[0], G: f[1], B: f[2], A: f[3]}
		}
	case format.Quat:
		var f [4]float32
		if err = r.f32s(dataOffset, f[:]); err == nil {
			v = parameter.Quat{A: f[0], B: f[1], C: f[2], D: f[3]}
		}
	case format.String32, format.String64, format.String256, format.StringRef:
		v, err = r.parseString(dataOffset, rec.Type)
	case format.Curve1, format.Curve2, format.Curve3, format.Curve4:
		v, err = r.parseCurves(dataOffset, int(rec.Type-format.Curve1)+1)
	case format.BufferInt, format.BufferF32, format.BufferU32, format.BufferBinary:
		v, err = r.parseBuffer(dataOffset, rec.Type)
	default:
		return 0, nil, fmt.Errorf("%w: %d", errs.ErrUnknownParameterType, rec.Type)
	}

	if err != nil {
		return 0, nil, err
	}

	return rec.Crc32, v, nil
}

func (r *Reader) parseString(offset int, typ format.Type) (parameter.Value, error) {
	b, ok := endian.NulString(r.data, offset)
	if !ok {
		return nil, fmt.Errorf("%w: string at 0x%x", errs.ErrTruncated, offset)
	}

	if max := typ.MaxStringLen(); max >= 0 && len(b) > max {
		b = b[:max]
	}
	s := string(b)

	if r.trackStrings {
		r.seen[hash.Crc32Bytes(b)] = s
	}

	switch typ {
	case format.String32:
		return parameter.String32(s), nil
	case format.String64:
		return parameter.String64(s), nil
	case format.String256:
		return parameter.String256(s), nil
	default:
		return parameter.StringRef(s), nil
	}
}

func (r *Reader) parseCurves(offset int, n int) (parameter.Value, error) {
	curves := make(parameter.Curves, n)
	for i := 0; i < n; i++ {
		base := offset + format.CurveSize*i
		for j := 0; j < 2; j++ {
			u, err := r.u32(base + 4*j)
			if err != nil {
				return nil, err
			}
			curves[i].Controls[j] = u
		}
		if err := r.f32s(base+8, curves[i].Points[:]); err != nil {
			return nil, err
		}
	}

	return curves, nil
}

func (r *Reader) parseBuffer(offset int, typ format.Type) (parameter.Value, error) {
	// The element count lives in the 4 bytes immediately before the data
	// offset; the format keeps that slot 4-byte aligned.
	count, err := r.u32(offset - 4)
	if err != nil {
		return nil, err
	}
	n := int(count)

	switch typ {
	case format.BufferInt:
		if err := r.need(offset, 4*n); err != nil {
			return nil, err
		}
		buf := make(parameter.BufferInt, n)
		for i := range buf {
			buf[i] = int32(r.engine.Uint32(r.data[offset+4*i:])) //nolint:gosec
		}

		return buf, nil
	case format.BufferU32:
		if err := r.need(offset, 4*n); err != nil {
			return nil, err
		}
		buf := make(parameter.BufferU32, n)
		for i := range buf {
			buf[i] = r.engine.Uint32(r.data[offset+4*i:])
		}

		return buf, nil
	case format.BufferF32:
		buf := make(parameter.BufferF32, n)
		if err := r.f32s(offset, buf); err != nil {
			return nil, err
		}

		return buf, nil
	default: // BufferBinary
		if err := r.need(offset, n); err != nil {
			return nil, err
		}
		buf := make(parameter.BufferBinary, n)
		copy(buf, r.data[offset:offset+n])

		return buf, nil
	}
}

func (r *Reader) need(offset int, n int) error {
	if offset < 0 || n < 0 || offset+n > len(r.data) {
		return fmt.Errorf("%w: %d bytes at 0x%x", errs.ErrTruncated, n, offset)
	}

	return nil
}

func (r *Reader) u32(offset int) (uint32, error) {
	if err := r.need(offset, 4); err != nil {
		return 0, err
	}

	return r.engine.Uint32(r.data[offset : offset+4]), nil
}

func (r *Reader) i32(offset int) (int32, error) {
	u, err := r.u32(offset)

	return int32(u), err //nolint:gosec
}

func (r *Reader) f32(offset int) (float32, error) {
	u, err := r.u32(offset)

	return bitsToF32(u), err
}

func (r *Reader) f32s(offset int, dst []float32) error {
	if err := r.need(offset, 4*len(dst)); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = bitsToF32(r.engine.Uint32(r.data[offset+4*i:]))
	}

	return nil
}

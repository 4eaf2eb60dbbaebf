// Package parameter defines the in-memory data model of an AAMP parameter
// archive: the 21 typed leaf values and the CRC32-keyed container hierarchy
// of lists, objects and the root parameter IO.
//
// Containers preserve insertion order; the order children are added (by user
// code or by the archive reader) is the order they are serialised in.
package parameter

import "github.com/zeldamods/aamp/format"

// Value is a typed parameter leaf. Exactly one concrete type exists per wire
// type tag; the tag drives both binary serialisation and the textual mapping.
type Value interface {
	// Type returns the wire type tag of the value.
	Type() format.Type
}

// Bool is stored as a u32 on the wire; any non-zero word reads back as true.
type Bool bool

// F32 is a 32-bit IEEE-754 float.
type F32 float32

// Int is a signed 32-bit integer.
type Int int32

// U32 is an unsigned 32-bit integer. It is deliberately distinct from Int:
// the wire format and the textual form (!u) both keep the distinction.
type U32 uint32

// Vec2 is a pair of floats.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a triple of floats.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a quadruple of floats.
type Vec4 struct {
	X, Y, Z, W float32
}

// Color is an RGBA quadruple of floats.
type Color struct {
	R, G, B, A float32
}

// Quat is a quaternion of four floats.
//
// The game runtime may interpolate quaternion parameters after loading;
// that is not a format concern and no post-processing happens here.
type Quat struct {
	A, B, C, D float32
}

// String32 is a NUL-terminated string of at most 32 bytes.
type String32 string

// String64 is a NUL-terminated string of at most 64 bytes.
type String64 string

// String256 is a NUL-terminated string of at most 256 bytes.
type String256 string

// StringRef is an unbounded NUL-terminated string.
type StringRef string

// Curve is a single 128-byte curve: two u32 integer controls followed by
// 30 floats.
type Curve struct {
	Controls [2]uint32
	Points   [30]float32
}

// Curves holds 1 to 4 curves; the wire tag is Curve1 + len - 1.
type Curves []Curve

// BufferInt is a variable-length i32 array with an out-of-band length prefix.
type BufferInt []int32

// BufferF32 is a variable-length f32 array with an out-of-band length prefix.
type BufferF32 []float32

// BufferU32 is a variable-length u32 array with an out-of-band length prefix.
type BufferU32 []uint32

// BufferBinary is a variable-length byte string with an out-of-band length
// prefix.
type BufferBinary []byte

func (Bool) Type() format.Type         { return format.Bool }
func (F32) Type() format.Type          { return format.F32 }
func (Int) Type() format.Type          { return format.Int }
func (U32) Type() format.Type          { return format.U32 }
func (Vec2) Type() format.Type         { return format.Vec2 }
func (Vec3) Type() format.Type         { return format.Vec3 }
func (Vec4) Type() format.Type         { return format.Vec4 }
func (Color) Type() format.Type        { return format.Color }
func (Quat) Type() format.Type         { return format.Quat }
func (String32) Type() format.Type     { return format.String32 }
func (String64) Type() format.Type     { return format.String64 }
func (String256) Type() format.Type    { return format.String256 }
func (StringRef) Type() format.Type    { return format.StringRef }
func (BufferInt) Type() format.Type    { return format.BufferInt }
func (BufferF32) Type() format.Type    { return format.BufferF32 }
func (BufferU32) Type() format.Type    { return format.BufferU32 }
func (BufferBinary) Type() format.Type { return format.BufferBinary }

// Type returns Curve1 through Curve4 depending on the curve count.
// Counts outside 1-4 cannot be encoded and are rejected by the writer.
func (c Curves) Type() format.Type {
	return format.Curve1 + format.Type(len(c)-1) //nolint:gosec
}

// String returns the payload of any of the four string-typed values, or
// false for non-string values.
func String(v Value) (string, bool) {
	switch s := v.(type) {
	case String32:
		return string(s), true
	case String64:
		return string(s), true
	case String256:
		return string(s), true
	case StringRef:
		return string(s), true
	default:
		return "", false
	}
}

// Package format defines the wire-level constants of the AAMP parameter
// archive format: parameter type tags, header flags, record sizes and the
// compression types recognised for archive files on disk.
package format

// Type identifies the wire type of a parameter value.
//
// The numeric values are fixed by the binary format: each parameter record
// stores its tag in the top byte of the second record word.
type Type uint8

const (
	Bool         Type = 0  // stored as u32, zero is false
	F32          Type = 1  // 32-bit IEEE-754 float
	Int          Type = 2  // signed 32-bit integer
	Vec2         Type = 3  // 2 floats
	Vec3         Type = 4  // 3 floats
	Vec4         Type = 5  // 4 floats
	Color        Type = 6  // 4 floats (r, g, b, a)
	String32     Type = 7  // NUL-terminated string, at most 32 bytes
	String64     Type = 8  // NUL-terminated string, at most 64 bytes
	Curve1       Type = 9  // 1 curve of 2 u32 controls + 30 floats
	Curve2       Type = 10 // 2 curves
	Curve3       Type = 11 // 3 curves
	Curve4       Type = 12 // 4 curves
	BufferInt    Type = 13 // length-prefixed i32 array
	BufferF32    Type = 14 // length-prefixed f32 array
	String256    Type = 15 // NUL-terminated string, at most 256 bytes
	Quat         Type = 16 // 4 floats
	U32          Type = 17 // unsigned 32-bit integer
	BufferU32    Type = 18 // length-prefixed u32 array
	BufferBinary Type = 19 // length-prefixed byte string
	StringRef    Type = 20 // NUL-terminated string, unbounded
)

// String returns the canonical name of the type tag.
func (t Type) String() string {
	switch t {
	case Bool:
		return "Bool"
	case F32:
		return "F32"
	case Int:
		return "Int"
	case Vec2:
		return "Vec2"
	case Vec3:
		return "Vec3"
	case Vec4:
		return "Vec4"
	case Color:
		return "Color"
	case String32:
		return "String32"
	case String64:
		return "String64"
	case Curve1:
		return "Curve1"
	case Curve2:
		return "Curve2"
	case Curve3:
		return "Curve3"
	case Curve4:
		return "Curve4"
	case BufferInt:
		return "BufferInt"
	case BufferF32:
		return "BufferF32"
	case String256:
		return "String256"
	case Quat:
		return "Quat"
	case U32:
		return "U32"
	case BufferU32:
		return "BufferU32"
	case BufferBinary:
		return "BufferBinary"
	case StringRef:
		return "StringRef"
	default:
		return "Unknown"
	}
}

// IsString reports whether values of this type live in the string section
// rather than the data section.
func (t Type) IsString() bool {
	switch t {
	case String32, String64, String256, StringRef:
		return true
	default:
		return false
	}
}

// IsBuffer reports whether values of this type carry an out-of-band u32
// element count in the 4 bytes immediately before their data offset.
func (t Type) IsBuffer() bool {
	switch t {
	case BufferInt, BufferF32, BufferU32, BufferBinary:
		return true
	default:
		return false
	}
}

// MaxStringLen returns the maximum byte length for the sized string types,
// or -1 for unbounded StringRef and non-string types.
func (t Type) MaxStringLen() int {
	switch t {
	case String32:
		return 32
	case String64:
		return 64
	case String256:
		return 256
	default:
		return -1
	}
}

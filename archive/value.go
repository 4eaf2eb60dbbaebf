package archive

import (
	"fmt"
	"math"

	"github.com/zeldamods/aamp/endian"
	"github.com/zeldamods/aamp/errs"
	"github.com/zeldamods/aamp/format"
	"github.com/zeldamods/aamp/parameter"
)

func bitsToF32(u uint32) float32 {
	return math.Float32frombits(u)
}

// encodeValue serialises a parameter value into its wire payload.
//
// String-typed values return the UTF-8 bytes plus the NUL sentinel and are
// pooled in the string section. Buffer-typed values return the u32 element
// count followed by the elements; the parameter's data offset later points
// past the count word. All other payloads are the raw little-endian value
// bytes.
func encodeValue(v parameter.Value) (format.Type, []byte, error) {
	engine := endian.GetLittleEndianEngine()

	switch p := v.(type) {
	case parameter.Bool:
		var u uint32
		if p {
			u = 1
		}

		return format.Bool, engine.AppendUint32(nil, u), nil
	case parameter.F32:
		return format.F32, appendF32(engine, nil, float32(p)), nil
	case parameter.Int:
		return format.Int, engine.AppendUint32(nil, uint32(p)), nil //nolint:gosec
	case parameter.U32:
		return format.U32, engine.AppendUint32(nil, uint32(p)), nil
	case parameter.Vec2:
		b := appendF32(engine, nil, p.X)

		return format.Vec2, appendF32(engine, b, p.Y), nil
	case parameter.Vec3:
		b := appendF32(engine, nil, p.X)
		b = appendF32(engine, b, p.Y)

		return format.Vec3, appendF32(engine, b, p.Z), nil
	case parameter.Vec4:
		b := appendF32(engine, nil, p.X)
		b = appendF32(engine, b, p.Y)
		b = appendF32(engine, b, p.Z)

		return format.Vec4, appendF32(engine, b, p.W), nil
	case parameter.Color:
		b := appendF32(engine, nil, p.R)
		b = appendF32(engine, b, p.G)
		b = appendF32(engine, b, p.B)

		return format.Color, appendF32(engine, b, p.A), nil
	case parameter.Quat:
		b := appendF32(engine, nil, p.A)
		b = appendF32(engine, b, p.B)
		b = appendF32(engine, b, p.C)

		return format.Quat, appendF32(engine, b, p.D), nil
	case parameter.Curves:
		if len(p) < 1 || len(p) > 4 {
			return 0, nil, fmt.Errorf("%w: %d curves", errs.ErrUnsupportedValue, len(p))
		}
		b := make([]byte, 0, format.CurveSize*len(p))
		for _, c := range p {
			b = engine.AppendUint32(b, c.Controls[0])
			b = engine.AppendUint32(b, c.Controls[1])
			for _, f := range c.Points {
				b = appendF32(engine, b, f)
			}
		}

		return p.Type(), b, nil
	case parameter.String32:
		return encodeString(format.String32, string(p))
	case parameter.String64:
		return encodeString(format.String64, string(p))
	case parameter.String256:
		return encodeString(format.String256, string(p))
	case parameter.StringRef:
		return encodeString(format.StringRef, string(p))
	case parameter.BufferInt:
		b := engine.AppendUint32(nil, uint32(len(p))) //nolint:gosec
		for _, n := range p {
			b = engine.AppendUint32(b, uint32(n)) //nolint:gosec
		}

		return format.BufferInt, b, nil
	case parameter.BufferU32:
		b := engine.AppendUint32(nil, uint32(len(p))) //nolint:gosec
		for _, n := range p {
			b = engine.AppendUint32(b, n)
		}

		return format.BufferU32, b, nil
	case parameter.BufferF32:
		b := engine.AppendUint32(nil, uint32(len(p))) //nolint:gosec
		for _, f := range p {
			b = appendF32(engine, b, f)
		}

		return format.BufferF32, b, nil
	case parameter.BufferBinary:
		b := engine.AppendUint32(nil, uint32(len(p))) //nolint:gosec

		return format.BufferBinary, append(b, p...), nil
	default:
		return 0, nil, fmt.Errorf("%w: %T", errs.ErrUnsupportedValue, v)
	}
}

func encodeString(typ format.Type, s string) (format.Type, []byte, error) {
	if max := typ.MaxStringLen(); max >= 0 && len(s) > max {
		return 0, nil, fmt.Errorf("%w: %s holds %d bytes", errs.ErrStringTooLong, typ, len(s))
	}

	b := make([]byte, 0, len(s)+1)
	b = append(b, s...)
	b = append(b, 0)

	return typ, b, nil
}

func appendF32(engine endian.EndianEngine, b []byte, f float32) []byte {
	return engine.AppendUint32(b, math.Float32bits(f))
}

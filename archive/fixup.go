package archive

import (
	"fmt"

	"github.com/zeldamods/aamp/errs"
	"github.com/zeldamods/aamp/internal/pool"
)

// fixup records a placeholder written into the output buffer: the byte
// position of the placeholder and the base offset its eventual value is
// computed relative to. Forward references are emitted as placeholders and
// resolved by back-patching once the target position is known.
type fixup struct {
	pos  int
	base int
}

// placeholder16 appends a 16-bit placeholder and returns its fixup.
// The stored value will be (target - base) >> 2.
func placeholder16(buf *pool.ByteBuffer, base int) fixup {
	f := fixup{pos: buf.Len(), base: base}
	buf.MustWrite([]byte{0xff, 0xff})

	return f
}

// placeholder24 appends a 24-bit placeholder and returns its fixup. The
// caller writes the type tag byte immediately after; patch24 preserves it.
func placeholder24(buf *pool.ByteBuffer, base int) fixup {
	f := fixup{pos: buf.Len(), base: base}
	buf.MustWrite([]byte{0xff, 0xff, 0xff})

	return f
}

// placeholder32 appends a 32-bit placeholder and returns its fixup.
func placeholder32(buf *pool.ByteBuffer) fixup {
	f := fixup{pos: buf.Len()}
	buf.MustWrite([]byte{0xff, 0xff, 0xff, 0xff})

	return f
}

// patch16 resolves a 16-bit offset placeholder: (target - base) >> 2.
func patch16(buf *pool.ByteBuffer, f fixup, target int) error {
	v := (target - f.base) >> 2
	if v < 0 || v > 0xffff {
		return fmt.Errorf("%w: 16-bit offset 0x%x at 0x%x", errs.ErrOffsetOverflow, v, f.pos)
	}

	buf.B[f.pos] = byte(v)
	buf.B[f.pos+1] = byte(v >> 8)

	return nil
}

// patch24 resolves a 24-bit offset placeholder: (target - base) >> 2 stored
// in the low three bytes, leaving the type tag byte that follows untouched.
func patch24(buf *pool.ByteBuffer, f fixup, target int) error {
	v := (target - f.base) >> 2
	if v < 0 || v > 0xffffff {
		return fmt.Errorf("%w: 24-bit offset 0x%x at 0x%x", errs.ErrOffsetOverflow, v, f.pos)
	}

	buf.B[f.pos] = byte(v)
	buf.B[f.pos+1] = byte(v >> 8)
	buf.B[f.pos+2] = byte(v >> 16)

	return nil
}

// patch32 resolves a 32-bit placeholder with a raw (unshifted) value;
// used for the header's size and count fields.
func patch32(buf *pool.ByteBuffer, f fixup, value int) {
	v := uint32(value) //nolint:gosec
	buf.B[f.pos] = byte(v)
	buf.B[f.pos+1] = byte(v >> 8)
	buf.B[f.pos+2] = byte(v >> 16)
	buf.B[f.pos+3] = byte(v >> 24)
}

package archive

import (
	"bytes"
	"io"

	"github.com/zeldamods/aamp/endian"
	"github.com/zeldamods/aamp/errs"
	"github.com/zeldamods/aamp/format"
	"github.com/zeldamods/aamp/internal/hash"
	"github.com/zeldamods/aamp/internal/pool"
	"github.com/zeldamods/aamp/parameter"
	"github.com/zeldamods/aamp/section"
)

// Writer serialises a parameter IO tree into the binary archive format.
//
// The file is assembled left-to-right in three phases, with every forward
// reference emitted as a placeholder and resolved by back-patching:
//
//  1. Header with placeholder size/count fields, then the type-name block.
//  2. Structure section: all list records in BFS layer order, then all object
//     records grouped per list, then all parameter records. Lists are written
//     before any objects to match Nintendo's canonical encoder; some
//     consumers depend on that section order.
//  3. Data section (non-string values, deduplicated by containment) and
//     string section (one pooled entry per distinct string).
//
// Note: the Writer is not safe for concurrent use and not reusable.
type Writer struct {
	pio *parameter.IO
}

// NewWriter creates a writer for the given parameter IO tree.
func NewWriter(pio *parameter.IO) *Writer {
	return &Writer{pio: pio}
}

// Bytes serialises the tree and returns the archive bytes.
func (w *Writer) Bytes() ([]byte, error) {
	buf := pool.GetArchiveBuffer()
	defer pool.PutArchiveBuffer(buf)

	s := &writeState{
		buf:         buf,
		engine:      endian.GetLittleEndianEngine(),
		valueIndex:  make(map[uint64][]int),
		stringIndex: make(map[string]int),
	}
	if err := s.write(w.pio); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// WriteTo serialises the tree to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	out, err := w.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := dst.Write(out)

	return int64(n), err
}

// listCtx is a queued list whose child records are yet to be emitted.
type listCtx struct {
	listsFix fixup
	objsFix  fixup
	plist    *parameter.List
}

// objCtx is a queued object whose parameter records are yet to be emitted.
type objCtx struct {
	paramsFix fixup
	pobj      *parameter.Object
}

// valueRef ties a parameter record's 24-bit offset placeholder to a byte
// offset inside a data entry.
type valueRef struct {
	offset int
	fix    fixup
}

// dataEntry is one deduplicated data-section entry.
type dataEntry struct {
	payload []byte
	refs    []valueRef
}

// stringEntry is one pooled string-section entry (bytes include the NUL).
type stringEntry struct {
	payload []byte
	fixes   []fixup
}

type writeState struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine

	numLists  int
	numObjs   int
	numParams int

	listQ []listCtx
	objQ  []objCtx

	values     []dataEntry
	valueIndex map[uint64][]int // xxhash64(payload) -> candidate entry indices

	strings     []stringEntry
	stringIndex map[string]int
}

func (s *writeState) write(pio *parameter.IO) error {
	root, rootKey, ok := pio.Root()
	if !ok || pio.NumLists() != 1 {
		return errs.ErrNoRootList
	}

	typeLen := endian.AlignUp(len(pio.Type)+1, format.Align)

	header := section.NewHeader(pio.Version, uint32(typeLen)) //nolint:gosec
	s.buf.MustWrite(header.Bytes())

	// Size and count fields are back-patched once phase 3 completes.
	sizeFix := fixup{pos: 0x0c}
	numListsFix := fixup{pos: 0x18}
	numObjsFix := fixup{pos: 0x1c}
	numParamsFix := fixup{pos: 0x20}
	dataSizeFix := fixup{pos: 0x24}
	stringSizeFix := fixup{pos: 0x28}

	s.buf.MustWrite([]byte(pio.Type))
	s.buf.MustWrite([]byte{0})
	s.buf.PadTo(format.HeaderSize + typeLen)

	// Phase 2: structure section.
	s.writeListRecord(rootKey, root)

	var contexts []listCtx
	for len(s.listQ) > 0 {
		ctx := s.listQ[0]
		s.listQ = s.listQ[1:]
		contexts = append(contexts, ctx)

		if err := patch16(s.buf, ctx.listsFix, s.buf.Len()); err != nil {
			return err
		}
		for _, key := range ctx.plist.ListKeys() {
			child, _ := ctx.plist.ListKey(key)
			s.writeListRecord(key, child)
		}
	}

	for _, ctx := range contexts {
		if err := patch16(s.buf, ctx.objsFix, s.buf.Len()); err != nil {
			return err
		}
		for _, key := range ctx.plist.ObjectKeys() {
			obj, _ := ctx.plist.ObjectKey(key)
			s.writeObjectRecord(key, obj)
		}
	}

	for len(s.objQ) > 0 {
		ctx := s.objQ[0]
		s.objQ = s.objQ[1:]

		if err := patch16(s.buf, ctx.paramsFix, s.buf.Len()); err != nil {
			return err
		}
		for _, key := range ctx.pobj.Keys() {
			v, _ := ctx.pobj.GetKey(key)
			if err := s.writeParamRecord(key, v); err != nil {
				return err
			}
		}
	}

	// Phase 3: data section, then string section.
	dataStart := s.buf.Len()
	for _, entry := range s.values {
		for _, ref := range entry.refs {
			if err := patch24(s.buf, ref.fix, s.buf.Len()+ref.offset); err != nil {
				return err
			}
		}
		s.buf.MustWrite(entry.payload)
		s.buf.PadTo(endian.AlignUp(s.buf.Len(), format.Align))
	}
	patch32(s.buf, dataSizeFix, s.buf.Len()-dataStart)

	stringStart := s.buf.Len()
	for _, entry := range s.strings {
		s.buf.PadTo(endian.AlignUp(s.buf.Len(), format.Align))
		for _, fix := range entry.fixes {
			if err := patch24(s.buf, fix, s.buf.Len()); err != nil {
				return err
			}
		}
		s.buf.MustWrite(entry.payload)
	}
	s.buf.PadTo(endian.AlignUp(s.buf.Len(), format.Align))
	patch32(s.buf, stringSizeFix, s.buf.Len()-stringStart)

	patch32(s.buf, numListsFix, s.numLists)
	patch32(s.buf, numObjsFix, s.numObjs)
	patch32(s.buf, numParamsFix, s.numParams)
	patch32(s.buf, sizeFix, s.buf.Len())

	return nil
}

// writeListRecord emits a 12-byte list record with placeholder offsets and
// queues the list for its children to be emitted in BFS layer order.
func (s *writeState) writeListRecord(key uint32, plist *parameter.List) {
	s.numLists++
	start := s.buf.Len()

	s.buf.B = s.engine.AppendUint32(s.buf.B, key)
	listsFix := placeholder16(s.buf, start)
	s.buf.B = s.engine.AppendUint16(s.buf.B, uint16(plist.NumLists())) //nolint:gosec
	objsFix := placeholder16(s.buf, start)
	s.buf.B = s.engine.AppendUint16(s.buf.B, uint16(plist.NumObjects())) //nolint:gosec

	s.listQ = append(s.listQ, listCtx{listsFix: listsFix, objsFix: objsFix, plist: plist})
}

// writeObjectRecord emits an 8-byte object record and queues the object.
func (s *writeState) writeObjectRecord(key uint32, pobj *parameter.Object) {
	s.numObjs++
	start := s.buf.Len()

	s.buf.B = s.engine.AppendUint32(s.buf.B, key)
	paramsFix := placeholder16(s.buf, start)
	s.buf.B = s.engine.AppendUint16(s.buf.B, uint16(pobj.Len())) //nolint:gosec

	s.objQ = append(s.objQ, objCtx{paramsFix: paramsFix, pobj: pobj})
}

// writeParamRecord emits an 8-byte parameter record and registers the value
// payload with the data or string pool.
func (s *writeState) writeParamRecord(key uint32, v parameter.Value) error {
	s.numParams++
	start := s.buf.Len()

	typ, payload, err := encodeValue(v)
	if err != nil {
		return err
	}

	s.buf.B = s.engine.AppendUint32(s.buf.B, key)
	fix := placeholder24(s.buf, start)
	s.buf.MustWrite([]byte{byte(typ)})

	if typ.IsString() {
		s.addString(payload, fix)
	} else {
		s.addValue(typ, payload, fix)
	}

	return nil
}

// addString pools a string payload (bytes including the NUL sentinel).
// Strings are never deduplicated against the data section.
func (s *writeState) addString(payload []byte, fix fixup) {
	if idx, ok := s.stringIndex[string(payload)]; ok {
		s.strings[idx].fixes = append(s.strings[idx].fixes, fix)

		return
	}

	s.stringIndex[string(payload)] = len(s.strings)
	s.strings = append(s.strings, stringEntry{payload: payload, fixes: []fixup{fix}})
}

// addValue appends a data-section payload, reusing a prior entry when the
// payload is contained in it. For buffer types the reference points past the
// u32 element count so the data offset lands on the first element.
func (s *writeState) addValue(typ format.Type, payload []byte, fix fixup) {
	refOffset := 0
	if typ.IsBuffer() {
		refOffset = 4
	}

	// Exact-match fast path over a content digest index.
	digest := hash.Sum64(payload)
	for _, idx := range s.valueIndex[digest] {
		if bytes.Equal(s.values[idx].payload, payload) {
			s.values[idx].refs = append(s.values[idx].refs, valueRef{offset: refOffset, fix: fix})

			return
		}
	}

	// Substring containment scan over all prior entries. Only 4-byte aligned
	// matches are usable: data offsets are stored in 4-byte units.
	for idx := range s.values {
		if off := alignedIndex(s.values[idx].payload, payload); off >= 0 {
			s.values[idx].refs = append(s.values[idx].refs, valueRef{offset: off + refOffset, fix: fix})

			return
		}
	}

	s.valueIndex[digest] = append(s.valueIndex[digest], len(s.values))
	s.values = append(s.values, dataEntry{payload: payload, refs: []valueRef{{offset: refOffset, fix: fix}}})
}

// alignedIndex returns the first 4-byte aligned offset of pattern within b,
// or -1 when no aligned occurrence exists.
func alignedIndex(b, pattern []byte) int {
	searched := 0
	for {
		off := bytes.Index(b[searched:], pattern)
		if off < 0 {
			return -1
		}
		abs := searched + off
		if abs%format.Align == 0 {
			return abs
		}
		searched = abs + 1
	}
}

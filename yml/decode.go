package yml

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zeldamods/aamp/errs"
	"github.com/zeldamods/aamp/internal/hash"
	"github.com/zeldamods/aamp/parameter"
)

// Unmarshal parses a YAML document into a parameter IO tree.
//
// Mapping keys that are integers are taken verbatim as CRC32 values; string
// keys are hashed. Tagged nodes build the corresponding wire type; untagged
// scalars fall back to StringRef, Int, F32 and Bool.
func Unmarshal(data []byte) (*parameter.IO, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", errs.ErrMalformedDocument)
	}

	root := doc.Content[0]
	if root.Tag != "!io" || root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: document root must be an !io mapping, got %s", errs.ErrMalformedDocument, root.Tag)
	}

	pio := parameter.NewIO("xml", 0)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]

		if k.Tag == "!!str" && k.Value == "version" {
			ver, err := scalarU32(v)
			if err != nil {
				return nil, fmt.Errorf("version: %w", err)
			}
			pio.Version = ver

			continue
		}
		if k.Tag == "!!str" && k.Value == "type" {
			pio.Type = v.Value

			continue
		}

		key, err := keyCrc(k)
		if err != nil {
			return nil, err
		}
		child, err := decodeList(v)
		if err != nil {
			return nil, err
		}
		pio.SetListKey(key, child)
	}

	return pio, nil
}

func decodeList(n *yaml.Node) (*parameter.List, error) {
	if n.Tag != "!list" || n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected !list mapping, got %s", errs.ErrMalformedDocument, n.Tag)
	}

	var listsNode, objectsNode *yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		switch n.Content[i].Value {
		case "lists":
			listsNode = n.Content[i+1]
		case "objects":
			objectsNode = n.Content[i+1]
		}
	}
	if listsNode == nil || objectsNode == nil {
		return nil, fmt.Errorf("%w: !list node missing lists or objects sub-mapping", errs.ErrMalformedDocument)
	}

	plist := parameter.NewList()

	for i := 0; i+1 < len(objectsNode.Content); i += 2 {
		key, err := keyCrc(objectsNode.Content[i])
		if err != nil {
			return nil, err
		}
		obj, err := decodeObject(objectsNode.Content[i+1])
		if err != nil {
			return nil, err
		}
		plist.SetObjectKey(key, obj)
	}

	for i := 0; i+1 < len(listsNode.Content); i += 2 {
		key, err := keyCrc(listsNode.Content[i])
		if err != nil {
			return nil, err
		}
		child, err := decodeList(listsNode.Content[i+1])
		if err != nil {
			return nil, err
		}
		plist.SetListKey(key, child)
	}

	return plist, nil
}

func decodeObject(n *yaml.Node) (*parameter.Object, error) {
	if n.Tag != "!obj" || n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected !obj mapping, got %s", errs.ErrMalformedDocument, n.Tag)
	}

	pobj := parameter.NewObject()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, err := keyCrc(n.Content[i])
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		pobj.SetKey(key, v)
	}

	return pobj, nil
}

// keyCrc converts a mapping key to its CRC32: integer keys are taken
// verbatim, string keys are hashed.
func keyCrc(n *yaml.Node) (uint32, error) {
	switch n.Tag {
	case "!!int":
		v, err := strconv.ParseUint(n.Value, 0, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: key %q: %v", errs.ErrMalformedDocument, n.Value, err)
		}

		return uint32(v), nil
	case "!!str":
		return hash.Crc32(n.Value), nil
	default:
		return 0, fmt.Errorf("%w: key %q has kind %s", errs.ErrMalformedDocument, n.Value, n.Tag)
	}
}

func decodeValue(n *yaml.Node) (parameter.Value, error) {
	switch n.Tag {
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: bool %q", errs.ErrMalformedDocument, n.Value)
		}

		return parameter.Bool(b), nil
	case "!!int":
		v, err := scalarI32(n)
		if err != nil {
			return nil, err
		}

		return parameter.Int(v), nil
	case "!!float":
		f, err := scalarF32(n)
		if err != nil {
			return nil, err
		}

		return parameter.F32(f), nil
	case "!!str":
		return parameter.StringRef(n.Value), nil
	case "!u":
		v, err := scalarU32(n)
		if err != nil {
			return nil, err
		}

		return parameter.U32(v), nil
	case "!str32":
		return parameter.String32(n.Value), nil
	case "!str64":
		return parameter.String64(n.Value), nil
	case "!str256":
		return parameter.String256(n.Value), nil
	case "!vec2":
		f, err := seqFloats(n, 2)
		if err != nil {
			return nil, err
		}

		return parameter.Vec2{X: f[0], Y: f[1]}, nil
	case "!vec3":
		f, err := seqFloats(n, 3)
		if err != nil {
			return nil, err
		}

		return parameter.Vec3{X: f[0], Y: f[1], Z: f[2]}, nil
	case "!vec4":
		f, err := seqFloats(n, 4)
		if err != nil {
			return nil, err
		}

		return parameter.Vec4{X: f[0], Y: f[1], Z: f[2], W: f[3]}, nil
	case "!color":
		f, err := seqFloats(n, 4)
		if err != nil {
			return nil, err
		}

		return parameter.Color{R: f[0], G: f[1], B: f[2], A: f[3]}, nil
	case "!quat":
		f, err := seqFloats(n, 4)
		if err != nil {
			return nil, err
		}

		return parameter.Quat{A: f[0], B: f[1], C: f[2], D: f[3]}, nil
	case "!curve":
		return decodeCurves(n)
	case "!buffer_int":
		buf := make(parameter.BufferInt, len(n.Content))
		for i, elem := range n.Content {
			v, err := scalarI32(elem)
			if err != nil {
				return nil, err
			}
			buf[i] = v
		}

		return buf, nil
	case "!buffer_u32":
		buf := make(parameter.BufferU32, len(n.Content))
		for i, elem := range n.Content {
			v, err := scalarU32(elem)
			if err != nil {
				return nil, err
			}
			buf[i] = v
		}

		return buf, nil
	case "!buffer_f32":
		buf := make(parameter.BufferF32, len(n.Content))
		for i, elem := range n.Content {
			f, err := scalarF32(elem)
			if err != nil {
				return nil, err
			}
			buf[i] = f
		}

		return buf, nil
	case "!buffer_binary":
		b, err := hex.DecodeString(n.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: binary buffer: %v", errs.ErrMalformedDocument, err)
		}

		return parameter.BufferBinary(b), nil
	default:
		return nil, fmt.Errorf("%w: unknown tag %s", errs.ErrMalformedDocument, n.Tag)
	}
}

// decodeCurves rebuilds 1 to 4 curves from the flat 32-elements-per-curve
// sequence form: two integer controls followed by 30 floats, per curve.
func decodeCurves(n *yaml.Node) (parameter.Value, error) {
	const elemsPerCurve = 32
	if n.Kind != yaml.SequenceNode || len(n.Content) == 0 || len(n.Content)%elemsPerCurve != 0 {
		return nil, fmt.Errorf("%w: !curve needs a multiple of %d elements, got %d",
			errs.ErrMalformedDocument, elemsPerCurve, len(n.Content))
	}
	count := len(n.Content) / elemsPerCurve
	if count > 4 {
		return nil, fmt.Errorf("%w: !curve holds %d curves, at most 4 supported", errs.ErrMalformedDocument, count)
	}

	curves := make(parameter.Curves, count)
	for i := 0; i < count; i++ {
		elems := n.Content[i*elemsPerCurve : (i+1)*elemsPerCurve]
		for j := 0; j < 2; j++ {
			v, err := scalarU32(elems[j])
			if err != nil {
				return nil, err
			}
			curves[i].Controls[j] = v
		}
		for j := 0; j < 30; j++ {
			f, err := scalarF32(elems[2+j])
			if err != nil {
				return nil, err
			}
			curves[i].Points[j] = f
		}
	}

	return curves, nil
}

// seqFloats reads a sequence node holding exactly count float scalars.
func seqFloats(n *yaml.Node, count int) ([]float32, error) {
	if n.Kind != yaml.SequenceNode || len(n.Content) != count {
		return nil, fmt.Errorf("%w: %s needs %d elements, got %d", errs.ErrMalformedDocument, n.Tag, count, len(n.Content))
	}

	f := make([]float32, count)
	for i, elem := range n.Content {
		v, err := scalarF32(elem)
		if err != nil {
			return nil, err
		}
		f[i] = v
	}

	return f, nil
}

func scalarU32(n *yaml.Node) (uint32, error) {
	v, err := strconv.ParseUint(n.Value, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: u32 %q", errs.ErrMalformedDocument, n.Value)
	}

	return uint32(v), nil
}

func scalarI32(n *yaml.Node) (int32, error) {
	v, err := strconv.ParseInt(n.Value, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: i32 %q", errs.ErrMalformedDocument, n.Value)
	}

	return int32(v), nil
}

func scalarF32(n *yaml.Node) (float32, error) {
	switch n.Value {
	case ".inf", "+.inf", ".Inf":
		return float32(math.Inf(1)), nil
	case "-.inf", "-.Inf":
		return float32(math.Inf(-1)), nil
	case ".nan", ".NaN":
		return float32(math.NaN()), nil
	}

	f, err := strconv.ParseFloat(n.Value, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: float %q", errs.ErrMalformedDocument, n.Value)
	}

	return float32(f), nil
}

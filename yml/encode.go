// Package yml maps parameter trees to and from their YAML textual form.
//
// The document tree is built from yaml.v3 nodes with explicit tags: !io,
// !list and !obj mark the container kinds, !vec2 through !curve the
// fixed-size sequences, !str32/!str64/!str256 and !u the scalar wrappers
// whose payloads coincide with plain scalars but carry distinct wire types,
// and !buffer_* the variable-length arrays. Untagged scalars round-trip as
// StringRef, Int, F32 and Bool.
//
// Mapping keys are display names recovered by the names package where
// possible; unknown keys stay integers so that re-parsing preserves them
// exactly.
package yml

import (
	"bytes"
	"encoding/hex"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zeldamods/aamp/errs"
	"github.com/zeldamods/aamp/names"
	"github.com/zeldamods/aamp/parameter"
)

// Encoder renders a parameter IO tree as YAML.
type Encoder struct {
	res *names.Resolver
}

// NewEncoder creates an encoder that resolves display names through res.
func NewEncoder(res *names.Resolver) *Encoder {
	return &Encoder{res: res}
}

// Marshal renders pio as YAML bytes.
func (e *Encoder) Marshal(pio *parameter.IO) ([]byte, error) {
	node, err := e.ioNode(pio)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *Encoder) ioNode(pio *parameter.IO) (*yaml.Node, error) {
	root, rootKey, ok := pio.Root()
	if !ok {
		return nil, errs.ErrNoRootList
	}

	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!io"}
	node.Content = append(node.Content,
		strScalar("version"), intScalar(int64(pio.Version)),
		strScalar("type"), strScalar(pio.Type),
	)

	var keyNode *yaml.Node
	if name, ok := e.res.Lookup(rootKey); ok {
		keyNode = strScalar(name)
	} else {
		keyNode = uintKeyScalar(rootKey)
	}
	node.Content = append(node.Content, keyNode, e.listNode(root))

	return node, nil
}

func (e *Encoder) listNode(l *parameter.List) *yaml.Node {
	objects := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for idx, key := range l.ObjectKeys() {
		obj, _ := l.ObjectKey(key)
		objects.Content = append(objects.Content, e.keyNode(key, idx, l.Crc32()), e.objNode(obj))
	}

	lists := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for idx, key := range l.ListKeys() {
		child, _ := l.ListKey(key)
		lists.Content = append(lists.Content, e.keyNode(key, idx, l.Crc32()), e.listNode(child))
	}

	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!list"}
	node.Content = append(node.Content,
		strScalar("objects"), objects,
		strScalar("lists"), lists,
	)

	return node
}

func (e *Encoder) objNode(o *parameter.Object) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!obj"}
	if o.Len() <= 4 {
		node.Style = yaml.FlowStyle
	}
	for idx, key := range o.Keys() {
		v, _ := o.GetKey(key)
		node.Content = append(node.Content, e.keyNode(key, idx, o.Crc32()), valueNode(v))
	}

	return node
}

func (e *Encoder) keyNode(k uint32, idx int, parent uint32) *yaml.Node {
	if name, ok := e.res.Resolve(k, idx, parent); ok {
		return strScalar(name)
	}

	return uintKeyScalar(k)
}

func valueNode(v parameter.Value) *yaml.Node {
	switch p := v.(type) {
	case parameter.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(p))}
	case parameter.F32:
		return floatScalar(float32(p))
	case parameter.Int:
		return intScalar(int64(p))
	case parameter.U32:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!u", Value: strconv.FormatUint(uint64(p), 10)}
	case parameter.Vec2:
		return flowSeq("!vec2", floatScalar(p.X), floatScalar(p.Y))
	case parameter.Vec3:
		return flowSeq("!vec3", floatScalar(p.X), floatScalar(p.Y), floatScalar(p.Z))
	case parameter.Vec4:
		return flowSeq("!vec4", floatScalar(p.X), floatScalar(p.Y), floatScalar(p.Z), floatScalar(p.W))
	case parameter.Color:
		return flowSeq("!color", floatScalar(p.R), floatScalar(p.G), floatScalar(p.B), floatScalar(p.A))
	case parameter.Quat:
		return flowSeq("!quat", floatScalar(p.A), floatScalar(p.B), floatScalar(p.C), floatScalar(p.D))
	case parameter.Curves:
		var elems []*yaml.Node
		for _, c := range p {
			elems = append(elems, uintKeyScalar(c.Controls[0]), uintKeyScalar(c.Controls[1]))
			for _, f := range c.Points {
				elems = append(elems, floatScalar(f))
			}
		}

		return flowSeq("!curve", elems...)
	case parameter.String32:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!str32", Value: string(p)}
	case parameter.String64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!str64", Value: string(p)}
	case parameter.String256:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!str256", Value: string(p)}
	case parameter.StringRef:
		return strScalar(string(p))
	case parameter.BufferInt:
		var elems []*yaml.Node
		for _, n := range p {
			elems = append(elems, intScalar(int64(n)))
		}

		return flowSeq("!buffer_int", elems...)
	case parameter.BufferF32:
		var elems []*yaml.Node
		for _, f := range p {
			elems = append(elems, floatScalar(f))
		}

		return flowSeq("!buffer_f32", elems...)
	case parameter.BufferU32:
		var elems []*yaml.Node
		for _, n := range p {
			elems = append(elems, uintKeyScalar(n))
		}

		return flowSeq("!buffer_u32", elems...)
	case parameter.BufferBinary:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!buffer_binary", Value: hex.EncodeToString(p)}
	default:
		// Unreachable for trees built by this module; the binary writer is
		// the component that rejects foreign values.
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func strScalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func intScalar(n int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(n, 10)}
}

func uintKeyScalar(n uint32) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(uint64(n), 10)}
}

func flowSeq(tag string, elems ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: tag, Style: yaml.FlowStyle, Content: elems}
}

// floatScalar formats a float with general precision while guaranteeing a
// decimal point or exponent, so a float never reads back as an integer.
func floatScalar(f float32) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatF32(f)}
}

func formatF32(f float32) string {
	f64 := float64(f)
	switch {
	case math.IsNaN(f64):
		return ".nan"
	case math.IsInf(f64, 1):
		return ".inf"
	case math.IsInf(f64, -1):
		return "-.inf"
	}

	s := strconv.FormatFloat(f64, 'g', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

package yml

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeldamods/aamp/errs"
	"github.com/zeldamods/aamp/internal/hash"
	"github.com/zeldamods/aamp/names"
	"github.com/zeldamods/aamp/parameter"
)

func newTestEncoder(seen map[uint32]string) *Encoder {
	return NewEncoder(names.NewResolver(names.Default(), seen))
}

func TestMarshal_Basic(t *testing.T) {
	pio := parameter.NewIO("xml", 0)
	root := parameter.NewList()
	obj := parameter.NewObject()
	obj.Set("Health", parameter.Int(100))
	root.SetObject("General", obj)
	pio.SetList("param_root", root)

	out, err := newTestEncoder(nil).Marshal(pio)
	require.NoError(t, err)

	text := string(out)
	require.Contains(t, text, "!io")
	require.Contains(t, text, "version: 0")
	require.Contains(t, text, "type: xml")
	require.Contains(t, text, "param_root: !list")
	require.Contains(t, text, "objects:")
	require.Contains(t, text, "lists:")
	// Both names are in the static dictionary.
	require.Contains(t, text, "General:")
	require.Contains(t, text, "Health: 100")
}

func TestMarshal_NoRootList(t *testing.T) {
	pio := parameter.NewIO("xml", 0)
	_, err := newTestEncoder(nil).Marshal(pio)
	require.ErrorIs(t, err, errs.ErrNoRootList)
}

func TestMarshal_FloatsKeepDecimalPoint(t *testing.T) {
	pio := parameter.NewIO("xml", 0)
	root := parameter.NewList()
	obj := parameter.NewObject()
	obj.Set("Rate", parameter.F32(1))
	obj.Set("Speed", parameter.F32(2.5))
	root.SetObject("General", obj)
	pio.SetList("param_root", root)

	out, err := newTestEncoder(nil).Marshal(pio)
	require.NoError(t, err)

	text := string(out)
	require.Contains(t, text, "Rate: 1.0")
	require.Contains(t, text, "Speed: 2.5")
}

func TestFormatF32(t *testing.T) {
	cases := []struct {
		f    float32
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-2, "-2.0"},
		{1.5, "1.5"},
		{1e10, "1e+10"},
		{float32(1) / 3, "0.33333334"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, formatF32(tc.f))
	}
}

func TestRoundTrip_Document(t *testing.T) {
	pio := parameter.NewIO("xml", 5)
	root := parameter.NewList()

	obj := parameter.NewObject()
	obj.Set("Enabled", parameter.Bool(true))
	obj.Set("Count", parameter.Int(-3))
	obj.Set("Mask", parameter.U32(4294967294))
	obj.Set("Rate", parameter.F32(0.25))
	obj.Set("Name", parameter.StringRef("Bokoblin"))
	obj.Set("Tag32", parameter.String32("abc"))
	obj.Set("Tag64", parameter.String64("defg"))
	obj.Set("Tag256", parameter.String256("hij"))
	obj.Set("Pos", parameter.Vec3{X: 1, Y: 2, Z: 3})
	obj.Set("Pair", parameter.Vec2{X: -1, Y: 1})
	obj.Set("Full", parameter.Vec4{X: 1, Y: 2, Z: 3, W: 4})
	obj.Set("Tint", parameter.Color{R: 0.5, G: 0.25, B: 0.125, A: 1})
	obj.Set("Rot", parameter.Quat{A: 0, B: 0, C: 0, D: 1})
	root.SetObject("General", obj)

	curve := parameter.Curve{Controls: [2]uint32{3, 9}}
	for i := range curve.Points {
		curve.Points[i] = float32(i)
	}
	curveObj := parameter.NewObject()
	curveObj.Set("Shape", parameter.Curves{curve})
	root.SetObject("CurveHolder", curveObj)

	bufObj := parameter.NewObject()
	bufObj.Set("Ints", parameter.BufferInt{-5, 0, 5})
	bufObj.Set("Floats", parameter.BufferF32{0.5, 1.5})
	bufObj.Set("Words", parameter.BufferU32{7})
	bufObj.Set("Raw", parameter.BufferBinary{0x01, 0xff})
	root.SetObject("Buffers", bufObj)

	inner := parameter.NewList()
	inner.SetObject("InnerObj", parameter.NewObject())
	root.SetList("Inner", inner)

	pio.SetList("param_root", root)

	out, err := newTestEncoder(nil).Marshal(pio)
	require.NoError(t, err)

	decoded, err := Unmarshal(out)
	require.NoError(t, err)
	require.Equal(t, pio, decoded)
}

func TestRoundTrip_UnknownKeysStayIntegers(t *testing.T) {
	const key = 0xdeadbeef

	pio := parameter.NewIO("xml", 0)
	root := parameter.NewList()
	obj := parameter.NewObject()
	obj.SetKey(key, parameter.Int(1))
	root.SetObjectKey(0x11223344, obj)
	pio.SetList("param_root", root)

	out, err := newTestEncoder(nil).Marshal(pio)
	require.NoError(t, err)

	text := string(out)
	require.Contains(t, text, fmt.Sprintf("%d", uint32(key)))
	require.Contains(t, text, fmt.Sprintf("%d", uint32(0x11223344)))

	decoded, err := Unmarshal(out)
	require.NoError(t, err)
	require.Equal(t, pio, decoded)
}

func TestMarshal_SeenStringsWin(t *testing.T) {
	secret := "VeryObscureKeyName"
	key := hash.Crc32(secret)

	pio := parameter.NewIO("xml", 0)
	root := parameter.NewList()
	obj := parameter.NewObject()
	obj.SetKey(key, parameter.Bool(true))
	root.SetObject("General", obj)
	pio.SetList("param_root", root)

	out, err := newTestEncoder(map[uint32]string{key: secret}).Marshal(pio)
	require.NoError(t, err)
	require.Contains(t, string(out), secret+":")

	decoded, err := Unmarshal(out)
	require.NoError(t, err)
	require.Equal(t, pio, decoded)
}

func TestMarshal_FlowStyleForSmallObjects(t *testing.T) {
	pio := parameter.NewIO("xml", 0)
	root := parameter.NewList()

	small := parameter.NewObject()
	small.Set("Health", parameter.Int(1))
	small.Set("Rate", parameter.F32(2))
	root.SetObject("General", small)

	big := parameter.NewObject()
	for i, n := range []string{"Health", "Rate", "Speed", "Weight", "Range"} {
		big.Set(n, parameter.Int(int32(i))) //nolint:gosec
	}
	root.SetObject("Enemy", big)

	pio.SetList("param_root", root)

	out, err := newTestEncoder(nil).Marshal(pio)
	require.NoError(t, err)

	text := string(out)
	require.Contains(t, text, "General: !obj {")
	require.NotContains(t, text, "Enemy: !obj {")
}

func TestUnmarshal_UntaggedScalars(t *testing.T) {
	doc := `!io
version: 1
type: xml
param_root: !list
  objects:
    General: !obj
      Number: 42
      Rate: 1.5
      Label: hello
      Flag: true
  lists: {}
`
	pio, err := Unmarshal([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, uint32(1), pio.Version)

	root, _, ok := pio.Root()
	require.True(t, ok)
	obj, ok := root.Object("General")
	require.True(t, ok)

	v, _ := obj.Get("Number")
	require.Equal(t, parameter.Int(42), v)
	v, _ = obj.Get("Rate")
	require.Equal(t, parameter.F32(1.5), v)
	v, _ = obj.Get("Label")
	require.Equal(t, parameter.StringRef("hello"), v)
	v, _ = obj.Get("Flag")
	require.Equal(t, parameter.Bool(true), v)
}

func TestUnmarshal_Malformed(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"Not an io root", "!list\nlists: {}\nobjects: {}\n"},
		{"List missing sub-mappings", "!io\nversion: 0\ntype: xml\nparam_root: !list\n  objects: {}\n"},
		{"Unknown value tag", "!io\nversion: 0\ntype: xml\nparam_root: !list\n  objects:\n    A: !obj {B: !wat 3}\n  lists: {}\n"},
		{"Curve element count", "!io\nversion: 0\ntype: xml\nparam_root: !list\n  objects:\n    A: !obj {B: !curve [1, 2, 3]}\n  lists: {}\n"},
		{"Bad binary buffer", "!io\nversion: 0\ntype: xml\nparam_root: !list\n  objects:\n    A: !obj {B: !buffer_binary zz}\n  lists: {}\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tc.doc))
			require.ErrorIs(t, err, errs.ErrMalformedDocument)
		})
	}

	t.Run("Invalid YAML", func(t *testing.T) {
		_, err := Unmarshal([]byte("\t\tnot yaml"))
		require.Error(t, err)
	})
}

func TestMarshal_CompactVectors(t *testing.T) {
	pio := parameter.NewIO("xml", 0)
	root := parameter.NewList()
	obj := parameter.NewObject()
	obj.Set("Pos", parameter.Vec3{X: 1, Y: 2, Z: 3})
	root.SetObject("General", obj)
	pio.SetList("param_root", root)

	out, err := newTestEncoder(nil).Marshal(pio)
	require.NoError(t, err)
	require.Contains(t, strings.ReplaceAll(string(out), " ", ""), "!vec3[1.0,2.0,3.0]")
}

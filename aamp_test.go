package aamp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeldamods/aamp/parameter"
)

func samplePio() *parameter.IO {
	pio := parameter.NewIO("xml", 0)
	root := parameter.NewList()

	general := parameter.NewObject()
	general.Set("Health", parameter.Int(30))
	general.Set("Name", parameter.StringRef("Bokoblin"))
	general.Set("Scale", parameter.F32(1.5))
	root.SetObject("General", general)

	children := parameter.NewList()
	for _, n := range []string{"Child0", "Child1", "Child2"} {
		obj := parameter.NewObject()
		obj.Set("Value", parameter.Int(1))
		children.SetObject(n, obj)
	}
	root.SetList("Children", children)

	pio.SetList("param_root", root)

	return pio
}

func TestHash(t *testing.T) {
	require.Equal(t, uint32(0x352441c2), Hash("abc"))
}

func TestParseWrite_RoundTrip(t *testing.T) {
	pio := samplePio()

	bin, err := Write(pio)
	require.NoError(t, err)

	decoded, err := Parse(bin)
	require.NoError(t, err)
	require.Equal(t, pio, decoded)
}

func TestBinaryToText_RecoversNames(t *testing.T) {
	bin, err := Write(samplePio())
	require.NoError(t, err)

	text, err := BinaryToText(bin)
	require.NoError(t, err)

	s := string(text)
	// Dictionary hits.
	require.Contains(t, s, "param_root:")
	require.Contains(t, s, "General:")
	require.Contains(t, s, "Children:")
	// Contextual guesses from the parent list name.
	require.Contains(t, s, "Child0:")
	require.Contains(t, s, "Child1:")
	require.Contains(t, s, "Child2:")
	// Strings seen in the archive itself.
	require.Contains(t, s, "Bokoblin")
}

func TestTextBinary_FullCycle(t *testing.T) {
	pio := samplePio()

	bin, err := Write(pio)
	require.NoError(t, err)

	text, err := BinaryToText(bin)
	require.NoError(t, err)

	bin2, err := TextToBinary(text)
	require.NoError(t, err)

	decoded, err := Parse(bin2)
	require.NoError(t, err)
	require.Equal(t, pio, decoded)

	// A second conversion cycle is byte-stable.
	text2, err := BinaryToText(bin2)
	require.NoError(t, err)
	require.Equal(t, text, text2)

	bin3, err := TextToBinary(text2)
	require.NoError(t, err)
	require.Equal(t, bin2, bin3)
}

func TestTextToBinary_Malformed(t *testing.T) {
	_, err := TextToBinary([]byte("!io\nversion: 0\ntype: xml\nbroken: !list\n  objects: {}\n"))
	require.Error(t, err)
}

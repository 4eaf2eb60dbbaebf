// Package aamp implements a bidirectional codec for Nintendo's AAMP
// parameter archive format (binary, version 2, little-endian, UTF-8) and a
// human-editable YAML representation.
//
// A parameter archive is a compact tree of typed parameters keyed by the
// CRC32 of their original string names. This module parses archives into an
// in-memory tree, serialises trees back into bytes accepted by Nintendo's
// own tools, and recovers plausible display names for hashed keys when
// emitting the textual form.
//
// # Basic Usage
//
// Converting between the two forms:
//
//	import "github.com/zeldamods/aamp"
//
//	text, err := aamp.BinaryToText(archiveBytes)
//	bin, err := aamp.TextToBinary(yamlBytes)
//
// Working with the tree directly:
//
//	pio := parameter.NewIO("xml", 0)
//	root := parameter.NewList()
//	obj := parameter.NewObject()
//	obj.Set("Enabled", parameter.Bool(true))
//	root.SetObject("TestObj", obj)
//	pio.SetList("param_root", root)
//
//	data, err := archive.NewWriter(pio).Bytes()
//
// # Package Structure
//
// This package provides thin wrappers over the domain packages: archive
// (binary reader/writer), parameter (data model), yml (textual form), names
// (hash-to-name recovery) and compress (optional on-disk framing). Use them
// directly for fine-grained control.
package aamp

import (
	"github.com/zeldamods/aamp/archive"
	"github.com/zeldamods/aamp/internal/hash"
	"github.com/zeldamods/aamp/names"
	"github.com/zeldamods/aamp/parameter"
	"github.com/zeldamods/aamp/yml"
)

// Hash computes the CRC32 key of a parameter name, as used throughout the
// archive format.
func Hash(name string) uint32 {
	return hash.Crc32(name)
}

// BinaryToText converts a binary parameter archive to its YAML form.
//
// Strings seen while parsing are tracked so that keys whose original names
// occur in the archive itself are displayed exactly.
func BinaryToText(data []byte) ([]byte, error) {
	r, err := archive.NewReader(data, archive.WithStringTracking())
	if err != nil {
		return nil, err
	}

	pio, err := r.Parse()
	if err != nil {
		return nil, err
	}

	res := names.NewResolver(names.Default(), r.SeenStrings())

	return yml.NewEncoder(res).Marshal(pio)
}

// TextToBinary converts the YAML form back to a binary parameter archive.
func TextToBinary(data []byte) ([]byte, error) {
	pio, err := yml.Unmarshal(data)
	if err != nil {
		return nil, err
	}

	return archive.NewWriter(pio).Bytes()
}

// Parse decodes a binary parameter archive into its tree form.
func Parse(data []byte) (*parameter.IO, error) {
	r, err := archive.NewReader(data)
	if err != nil {
		return nil, err
	}

	return r.Parse()
}

// Write encodes a tree into a binary parameter archive.
func Write(pio *parameter.IO) ([]byte, error) {
	return archive.NewWriter(pio).Bytes()
}

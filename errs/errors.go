// Package errs defines the sentinel errors shared across the aamp module.
//
// Call sites wrap these with fmt.Errorf("...: %w", err) to attach the
// offending tag, offset or record; callers test with errors.Is.
package errs

import "errors"

// Reader errors.
var (
	// ErrInvalidMagic indicates the archive does not start with the "AAMP" magic.
	ErrInvalidMagic = errors.New("invalid magic")

	// ErrBigEndian indicates the little-endian header flag is clear.
	// Only little-endian parameter archives are supported.
	ErrBigEndian = errors.New("only little endian parameter archives are supported")

	// ErrNotUTF8 indicates the UTF-8 header flag is clear.
	// Only UTF-8 parameter archives are supported.
	ErrNotUTF8 = errors.New("only UTF-8 parameter archives are supported")

	// ErrUnknownParameterType indicates a parameter record carries a type tag
	// outside the known 0-20 range.
	ErrUnknownParameterType = errors.New("unknown parameter type")

	// ErrTruncated indicates a structural offset points past the end of the input.
	ErrTruncated = errors.New("archive truncated")
)

// Writer errors.
var (
	// ErrOffsetOverflow indicates a computed relative offset does not fit the
	// 16-bit or 24-bit field it must be stored in.
	ErrOffsetOverflow = errors.New("relative offset exceeds field range")

	// ErrUnsupportedValue indicates a container holds a value for which no
	// encoding rule exists.
	ErrUnsupportedValue = errors.New("unsupported parameter value")

	// ErrStringTooLong indicates a sized string (String32/64/256) exceeds its
	// documented maximum byte length.
	ErrStringTooLong = errors.New("string exceeds maximum length for its type")

	// ErrNoRootList indicates a parameter IO without exactly one root list.
	ErrNoRootList = errors.New("parameter IO must contain a root list")
)

// Document-tree bridge errors.
var (
	// ErrMalformedDocument indicates a structural violation in the textual
	// form, e.g. a !list node missing its "lists" or "objects" sub-mapping.
	ErrMalformedDocument = errors.New("malformed document tree")
)

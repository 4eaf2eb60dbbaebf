// Package hash provides the two hash functions used across the module:
// CRC32 for parameter keys and xxHash64 for content digests.
package hash

import (
	"hash/crc32"

	"github.com/cespare/xxhash/v2"
)

// Crc32 computes the IEEE CRC32 (as used by zlib) of the given name.
//
// Every key inside a parameter archive is the CRC32 of the UTF-8 bytes of its
// original string name.
func Crc32(name string) uint32 {
	return crc32.ChecksumIEEE([]byte(name))
}

// Crc32Bytes computes the IEEE CRC32 of a raw byte sequence.
func Crc32Bytes(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// Sum64 computes the xxHash64 digest of a byte sequence.
//
// The archive writer uses it as the exact-match index key when deduplicating
// data-section entries; candidates are always verified byte-for-byte.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

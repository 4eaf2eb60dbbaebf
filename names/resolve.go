package names

import (
	"fmt"
	"strings"

	"github.com/zeldamods/aamp/internal/hash"
)

// Resolver resolves CRC32 child keys to display names for a single
// conversion. It layers the strings seen during parse over the static table
// and memoises the numbered-template scan, which is the expensive tier.
//
// A Resolver is intended for one decode; create a fresh one per conversion
// to bound the memo's working set.
type Resolver struct {
	table *Table
	seen  map[uint32]string
	memo  map[memoKey]string
}

type memoKey struct {
	idx int
	crc uint32
}

// NewResolver creates a resolver over the given table and the (possibly nil)
// CRC32 → string side table collected by the archive reader.
func NewResolver(table *Table, seen map[uint32]string) *Resolver {
	return &Resolver{
		table: table,
		seen:  seen,
		memo:  make(map[memoKey]string),
	}
}

// Lookup consults the static table only. It is used for the root list key,
// which has no useful parent context.
func (r *Resolver) Lookup(k uint32) (string, bool) {
	return r.table.Name(k)
}

// Resolve returns the display name for key k, given its 0-based sibling
// index within its parent mapping and the parent container's own CRC32.
//
// Resolution never fails: ok is false when no name could be recovered and
// the caller should fall back to the integer key. Any returned name hashes
// back to k.
func (r *Resolver) Resolve(k uint32, idx int, parent uint32) (string, bool) {
	if name, ok := r.seen[k]; ok {
		return name, true
	}
	if name, ok := r.table.Name(k); ok {
		return name, true
	}

	// Guess from the parent name if it is known; otherwise only the
	// numbered-template scan is left.
	parentName, ok := r.table.Name(parent)
	if !ok {
		return r.numbered(idx, k)
	}

	for _, i := range [2]int{idx, idx + 1} {
		if name, ok := matchCandidates(parentName, i, k); ok {
			return name, true
		}
	}

	// Nintendo often numbers children after the singular of the parent's
	// collection name.
	if parentName == "Children" {
		for _, i := range [2]int{idx, idx + 1} {
			if name, ok := matchCandidates("Child", i, k); ok {
				return name, true
			}
		}
	}
	for _, suffix := range [3]string{"s", "es", "List"} {
		if !strings.HasSuffix(parentName, suffix) {
			continue
		}
		stem := parentName[:len(parentName)-len(suffix)]
		for _, i := range [2]int{idx, idx + 1} {
			if name, ok := matchCandidates(stem, i, k); ok {
				return name, true
			}
		}
	}

	return r.numbered(idx, k)
}

// matchCandidates tries the six parent/index combination templates and
// returns the first candidate whose CRC32 equals k.
func matchCandidates(parent string, i int, k uint32) (string, bool) {
	candidates := [6]string{
		fmt.Sprintf("%s%d", parent, i),
		fmt.Sprintf("%s_%d", parent, i),
		fmt.Sprintf("%s%02d", parent, i),
		fmt.Sprintf("%s_%02d", parent, i),
		fmt.Sprintf("%s%03d", parent, i),
		fmt.Sprintf("%s_%03d", parent, i),
	}
	for _, name := range candidates {
		if hash.Crc32(name) == k {
			return name, true
		}
	}

	return "", false
}

// numbered scans the numbered-name templates, substituting indices 0..idx+1,
// and returns the first substitution that hashes to k. Results, including
// misses, are memoised on (idx, k).
func (r *Resolver) numbered(idx int, k uint32) (string, bool) {
	key := memoKey{idx: idx, crc: k}
	if name, ok := r.memo[key]; ok {
		return name, name != ""
	}

	for _, tmpl := range r.table.numbered {
		for i := 0; i < idx+2; i++ {
			name := formatNumbered(tmpl, i)
			if hash.Crc32(name) == k {
				r.memo[key] = name

				return name, true
			}
		}
	}

	r.memo[key] = ""

	return "", false
}

// formatNumbered substitutes i into a printf-style template. The templates
// come from C tooling and may use %u, which Go's fmt does not know; it is
// normalised to %d before formatting.
func formatNumbered(tmpl string, i int) string {
	pos := strings.IndexByte(tmpl, '%')
	if pos < 0 {
		return tmpl
	}

	j := pos + 1
	for j < len(tmpl) && tmpl[j] >= '0' && tmpl[j] <= '9' {
		j++
	}
	if j < len(tmpl) && tmpl[j] == 'u' {
		tmpl = tmpl[:j] + "d" + tmpl[j+1:]
	}

	return fmt.Sprintf(tmpl, i)
}

// Package names recovers display names for CRC32 parameter keys.
//
// Keys inside a parameter archive are CRC32 hashes of their original string
// names. Recovery is a deterministic search over three sources: strings seen
// while parsing the archive itself, a static dictionary of known names, and
// structural guesses built from the parent container's name and the child's
// sibling index. An unresolved key is a valid result, never an error.
package names

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/zeldamods/aamp/internal/hash"
)

// Table holds the static name dictionaries: a hashed set of plain names and
// a list of printf-style numbered-name templates.
//
// A Table is safe for concurrent readers once loading is done.
type Table struct {
	byHash   map[uint32]string
	numbered []string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{byHash: make(map[uint32]string)}
}

// Name returns the known name for a CRC32 key.
func (t *Table) Name(k uint32) (string, bool) {
	name, ok := t.byHash[k]

	return name, ok
}

// Add registers a plain name under its CRC32.
func (t *Table) Add(name string) {
	t.byHash[hash.Crc32(name)] = name
}

// AddNumbered registers a printf-style template containing a single
// %d, %u or zero-padded variant thereof.
func (t *Table) AddNumbered(tmpl string) {
	t.numbered = append(t.numbered, tmpl)
}

// LoadNames merges newline-delimited plain names from r.
func (t *Table) LoadNames(r io.Reader) error {
	return scanLines(r, t.Add)
}

// LoadNumbered merges newline-delimited numbered-name templates from r.
func (t *Table) LoadNumbered(r io.Reader) error {
	return scanLines(r, t.AddNumbered)
}

// LoadNamesFile merges a user-provided dictionary file of plain names.
// Lines containing a '%' verb are treated as numbered-name templates.
func (t *Table) LoadNamesFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load name dictionary: %w", err)
	}
	defer f.Close()

	return scanLines(f, func(line string) {
		if strings.ContainsRune(line, '%') {
			t.AddNumbered(line)
		} else {
			t.Add(line)
		}
	})
}

func scanLines(r io.Reader, add func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		add(line)
	}

	return scanner.Err()
}

var (
	defaultTable *Table
	defaultOnce  sync.Once
)

// Default returns the process-wide table loaded from the embedded
// dictionaries. The table is built once and is read-only afterwards apart
// from explicit user merges at start-up.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = NewTable()
		// The embedded files are well-formed by construction.
		_ = defaultTable.LoadNames(strings.NewReader(hashedNamesData))
		_ = defaultTable.LoadNumbered(strings.NewReader(numberedNamesData))
	})

	return defaultTable
}

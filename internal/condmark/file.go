package condmark

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPattern is the substring that identifies conditional-mark YAML
// files among staged paths. A staged file belongs to the gate's match set
// when its path contains this pattern.
const DefaultPattern = "tests_mark_conditions"

// Entry is a single top-level key of a conditional-mark file, in the order
// it appears on disk.
type Entry struct {
	// Key is the top-level mapping key (a test identifier).
	Key string

	// Line is the 1-based line number where the key appears.
	Line int
}

// File is the order-preserving representation of one conditional-mark YAML
// file: just its path and the sequence of top-level entries. The mark
// definitions under each key are irrelevant to the ordering check and are
// not retained.
type File struct {
	// Path is the file path as given to Load, typically relative to the
	// repository root.
	Path string

	// Entries lists the top-level mapping keys in file order, across all
	// YAML documents in the file.
	Entries []Entry
}

// Match reports whether path belongs to the gate's match set for the given
// pattern, i.e. whether the path contains the pattern as a substring.
// An empty pattern falls back to DefaultPattern.
func Match(path, pattern string) bool {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return strings.Contains(path, pattern)
}

// Load reads and parses the conditional-mark file at path.
//
// Returns an error if the file cannot be read or is not valid YAML.
// An empty file or a file whose documents are not mappings parses
// successfully with zero entries — there is nothing to order.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse parses the raw YAML bytes of a conditional-mark file into a File.
//
// The file may contain multiple YAML documents (separated by ---); the
// top-level keys of every mapping document are collected in order. Scalar
// or sequence documents contribute no entries.
func Parse(path string, data []byte) (*File, error) {
	f := &File{Path: path}

	// Decode document by document. yaml.Node is used instead of a map so
	// that key order and line numbers survive decoding.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		root := &doc
		if root.Kind == yaml.DocumentNode {
			if len(root.Content) == 0 {
				continue
			}
			root = root.Content[0]
		}
		if root.Kind != yaml.MappingNode {
			continue
		}

		// Mapping content alternates key, value, key, value, ...
		// Only the keys matter here.
		for i := 0; i+1 < len(root.Content); i += 2 {
			key := root.Content[i]
			f.Entries = append(f.Entries, Entry{
				Key:  key.Value,
				Line: key.Line,
			})
		}
	}

	return f, nil
}

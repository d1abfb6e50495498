package condmark

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParse verifies that top-level mapping keys are extracted in file
// order with their line numbers, while nested keys are ignored.
func TestParse(t *testing.T) {
	data := []byte(`bgp/test_bgp_allow_list.py:
  skip:
    reason: "unsupported topology"
    conditions:
      - "topo_type in ['t2']"
platform_tests/test_reload.py::test_fast_reboot:
  xfail:
    reason: "known issue"
`)

	f, err := Parse("tests_mark_conditions.yaml", data)
	require.NoError(t, err)

	require.Len(t, f.Entries, 2, "only top-level keys should be collected")
	assert.Equal(t, "bgp/test_bgp_allow_list.py", f.Entries[0].Key)
	assert.Equal(t, 1, f.Entries[0].Line)
	assert.Equal(t, "platform_tests/test_reload.py::test_fast_reboot", f.Entries[1].Key)
	assert.Equal(t, 6, f.Entries[1].Line)
}

// TestParse_MultiDocument verifies that entries from every YAML document in
// the file are collected, in document order.
func TestParse_MultiDocument(t *testing.T) {
	data := []byte(`alpha: {}
beta: {}
---
gamma: {}
`)

	f, err := Parse("multi.yaml", data)
	require.NoError(t, err)

	require.Len(t, f.Entries, 3)
	assert.Equal(t, "alpha", f.Entries[0].Key)
	assert.Equal(t, "beta", f.Entries[1].Key)
	assert.Equal(t, "gamma", f.Entries[2].Key)
}

// TestParse_Empty verifies that an empty file parses with zero entries.
func TestParse_Empty(t *testing.T) {
	f, err := Parse("empty.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, f.Entries)
}

// TestParse_NonMapping verifies that scalar and sequence documents
// contribute no entries — there is nothing to order in them.
func TestParse_NonMapping(t *testing.T) {
	f, err := Parse("seq.yaml", []byte("- one\n- two\n"))
	require.NoError(t, err)
	assert.Empty(t, f.Entries)
}

// TestParse_InvalidYAML verifies that malformed YAML is reported as an
// error rather than silently producing zero entries.
func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse("broken.yaml", []byte("a: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}

// TestLoad verifies reading and parsing a file from disk.
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tests_mark_conditions.yaml")
	err := os.WriteFile(path, []byte("a: {}\nb: {}\n"), 0644)
	require.NoError(t, err)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)
	require.Len(t, f.Entries, 2)
}

// TestLoad_NotFound verifies that a missing file is an error.
func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
}

// TestMatch verifies substring matching of the conditional-mark pattern,
// including the default-pattern fallback for an empty pattern.
func TestMatch(t *testing.T) {
	cases := map[string]struct {
		path    string
		pattern string
		want    bool
	}{
		"default pattern matches standard path": {
			path: "tests/common/plugins/conditional_mark/tests_mark_conditions.yaml",
			want: true,
		},
		"default pattern matches suffixed variant": {
			path: "tests/common/plugins/conditional_mark/tests_mark_conditions_logical_topo.yaml",
			want: true,
		},
		"default pattern rejects unrelated file": {
			path: "src/main.go",
			want: false,
		},
		"default pattern rejects readme": {
			path: "README.md",
			want: false,
		},
		"custom pattern is honored": {
			path:    "configs/skip_rules.yaml",
			pattern: "skip_rules",
			want:    true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Match(tc.path, tc.pattern))
		})
	}
}

// Package condmark parses conditional-mark YAML files and verifies that
// their top-level entries are sorted in alphabetic order.
//
// A conditional-mark file maps test identifiers to mark definitions
// (skip/xfail conditions):
//
//	bgp/test_bgp_allow_list.py:
//	  skip:
//	    reason: "unsupported topology"
//	    conditions:
//	      - "topo_type in ['t2']"
//	platform_tests/test_reload.py::test_fast_reboot:
//	  xfail:
//	    reason: "known issue"
//
// Keeping these files alphabetically sorted by test identifier is what makes
// review diffs local and merge conflicts rare, which is why the commit gate
// enforces it.
//
// Parsing uses the yaml.v3 Node API rather than map decoding: Go maps do not
// preserve key order, and the entire point of this package is to observe the
// order keys appear in the file.
package condmark

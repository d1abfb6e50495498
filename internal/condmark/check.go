// check.go implements the ordering verification over a parsed File and the
// per-file report assembly used by the check, list, and hook commands.
package condmark

import (
	"github.com/mizuno-k/markgate/internal/model"
)

// CheckOrder verifies that the file's top-level entries are sorted in
// strictly ascending alphabetic (byte-wise) order and returns one
// Violation per offending entry.
//
// Two kinds of defects are reported:
//   - an entry whose key sorts before the key immediately preceding it
//   - an entry whose key repeats the preceding key (a duplicate mapping
//     key; YAML loaders silently let the later entry shadow the earlier
//     one, so duplicates are never acceptable)
//
// A nil or empty result means the file is correctly ordered.
func (f *File) CheckOrder() []model.Violation {
	var violations []model.Violation

	// seen tracks every key observed so far, so a duplicate is caught even
	// when the two occurrences are far apart in an otherwise sorted file.
	seen := make(map[string]bool, len(f.Entries))

	prev := ""
	for i, e := range f.Entries {
		switch {
		case seen[e.Key]:
			violations = append(violations, model.Violation{
				Key:       e.Key,
				Line:      e.Line,
				Previous:  prev,
				Duplicate: true,
			})
		case i > 0 && e.Key < prev:
			violations = append(violations, model.Violation{
				Key:      e.Key,
				Line:     e.Line,
				Previous: prev,
			})
		}
		seen[e.Key] = true
		prev = e.Key
	}

	return violations
}

// CheckFile loads the file at path and produces its MarkFileReport.
//
// Read or parse failures yield StatusError with the failure message;
// ordering defects yield StatusUnsorted with the violation list; otherwise
// the report is StatusOK. The returned report always carries the given
// path, so callers can aggregate reports across many files.
func CheckFile(path string) model.MarkFileReport {
	report := model.MarkFileReport{Path: path}

	f, err := Load(path)
	if err != nil {
		report.Status = model.StatusError
		report.Err = err.Error()
		return report
	}

	report.Violations = f.CheckOrder()
	if len(report.Violations) > 0 {
		report.Status = model.StatusUnsorted
	} else {
		report.Status = model.StatusOK
	}
	return report
}

// FilterMatches returns the subset of paths that belong to the gate's
// match set for pattern, preserving the input order. The input order is
// the staging index order, which the gate contract requires to be passed
// through to the validator unchanged.
func FilterMatches(paths []string, pattern string) []string {
	var matched []string
	for _, p := range paths {
		if Match(p, pattern) {
			matched = append(matched, p)
		}
	}
	return matched
}

package model

import (
	"fmt"
	"strings"
)

// MarkFileStatus represents the check outcome for a single conditional-mark
// YAML file. A file is either correctly ordered, has out-of-order entries,
// or could not be checked at all (unreadable or unparseable).
type MarkFileStatus string

const (
	// StatusOK indicates every top-level entry in the file is in
	// alphabetic order.
	StatusOK MarkFileStatus = "ok"

	// StatusUnsorted indicates at least one top-level entry is out of
	// order (or duplicated, which can never satisfy strict ordering).
	StatusUnsorted MarkFileStatus = "unsorted"

	// StatusError indicates the file could not be read or parsed, so no
	// ordering verdict exists.
	StatusError MarkFileStatus = "error"
)

// String returns the string representation of MarkFileStatus.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands.
func (s MarkFileStatus) String() string {
	return string(s)
}

// IsValid checks whether the MarkFileStatus value is one of the
// predefined valid states.
func (s MarkFileStatus) IsValid() bool {
	switch s {
	case StatusOK, StatusUnsorted, StatusError:
		return true
	default:
		return false
	}
}

// ParseMarkFileStatus converts a string to a MarkFileStatus.
// Returns an error if the string does not match any valid status.
func ParseMarkFileStatus(s string) (MarkFileStatus, error) {
	status := MarkFileStatus(strings.ToLower(s))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid mark file status: %q (valid: ok, unsorted, error)", s)
	}
	return status, nil
}

// MarkFileReport is the per-file result produced by the built-in sort
// check. It is the unit of output for both the check and list commands,
// in text and JSON form.
type MarkFileReport struct {
	// Path is the file path relative to the repository root, exactly as
	// produced by the git staging query.
	Path string `json:"path"`

	// Status is the check outcome for this file.
	Status MarkFileStatus `json:"status"`

	// Violations lists each out-of-order or duplicate entry found in the
	// file. Empty when Status is StatusOK.
	Violations []Violation `json:"violations,omitempty"`

	// Err holds the read/parse failure message when Status is StatusError.
	Err string `json:"error,omitempty"`
}

// Violation describes a single ordering defect inside a conditional-mark
// YAML file: a top-level key that must not follow the key before it.
type Violation struct {
	// Key is the out-of-place top-level entry key.
	Key string `json:"key"`

	// Line is the 1-based line number where Key appears.
	Line int `json:"line"`

	// Previous is the top-level key immediately before Key in the file.
	Previous string `json:"previous"`

	// Duplicate is true when Key repeats an earlier top-level key instead
	// of merely sorting before it.
	Duplicate bool `json:"duplicate,omitempty"`
}

// String returns a single-line human-readable description of the violation,
// suitable for direct printing by the check command.
func (v Violation) String() string {
	if v.Duplicate {
		return fmt.Sprintf("line %d: duplicate entry %q", v.Line, v.Key)
	}
	return fmt.Sprintf("line %d: entry %q should come before %q", v.Line, v.Key, v.Previous)
}

// ExitCode defines standard CLI exit codes for markgate subcommands.
// These codes allow scripts and CI systems to programmatically determine
// the outcome of a command.
//
// The hook command intentionally does NOT use the full taxonomy: the
// pre-commit contract is exit 0 (commit proceeds) or exit 1 (commit
// blocked), so the hook maps every failure to ExitGeneralError.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred. It is also
	// the only failure code the hook command ever returns.
	ExitGeneralError ExitCode = 1

	// ExitUnsortedEntries indicates the check command found at least one
	// file whose entries are not in alphabetic order.
	ExitUnsortedEntries ExitCode = 2

	// ExitGitError indicates a git operation (staged file query, repo root
	// discovery) failed.
	ExitGitError ExitCode = 3

	// ExitValidatorError indicates an external validator process could not
	// be started or reported failure.
	ExitValidatorError ExitCode = 4

	// ExitConfigError indicates the .markgate.json configuration file is
	// present but malformed.
	ExitConfigError ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

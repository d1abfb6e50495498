// Package model defines the domain types and value objects for the
// markgate CLI.
//
// This package contains pure data structures with no external dependencies:
// the per-file check status (MarkFileStatus), the per-file report consumed
// by the list and check commands (MarkFileReport), the exit code taxonomy
// (ExitCode), and a custom error type (CLIError) that carries exit codes
// for proper OS process exit handling.
package model

// Package gitindex provides read-only queries against the git staging area.
//
// This package wraps the git CLI (via os/exec) to obtain the list of staged
// file paths, locate the repository root, and resolve the hooks directory.
// It is the version-control integration layer for markgate: everything the
// gate knows about the commit in progress comes through here.
//
// Design decisions:
//   - We shell out to `git` rather than using a Go git library because the
//     gate runs inside a hook spawned by the user's git binary, and the
//     staging area semantics (sparse checkouts, split index) must match that
//     binary exactly.
//   - Staged paths are requested with -z (NUL separation) so paths containing
//     spaces or characters git would otherwise quote survive unmangled.
//   - All errors from git commands are wrapped in model.CLIError with
//     ExitGitError to enable proper CLI exit code handling.
package gitindex

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mizuno-k/markgate/internal/model"
)

// Index provides staging-area queries by invoking the git CLI.
//
// It is stateless — all methods receive the working directory as a
// parameter. The struct exists as a receiver to support future extensions
// such as a configurable git binary path.
type Index struct{}

// NewIndex creates a new Index instance.
func NewIndex() *Index {
	return &Index{}
}

// StagedFiles returns the paths of all files currently staged for commit,
// relative to the repository root, in index order.
//
// It runs `git diff --cached --name-only -z`, which lists the paths that
// differ between HEAD and the index — exactly the set that the next commit
// will contain. The -z flag separates entries with NUL bytes instead of
// newlines, avoiding git's C-style quoting of unusual paths.
//
// An empty index produces an empty (nil) slice, not an error.
func (ix *Index) StagedFiles(dir string) ([]string, error) {
	output, err := runGit(dir, "diff", "--cached", "--name-only", "-z")
	if err != nil {
		return nil, err
	}

	// Split on NUL. The output ends with a trailing NUL, so the last
	// element of the split is an empty string we must drop.
	var files []string
	for _, p := range strings.Split(output, "\x00") {
		if p == "" {
			continue
		}
		files = append(files, p)
	}
	return files, nil
}

// RepoRoot returns the absolute path to the top-level directory of the
// git working tree containing dir.
//
// Uses `git rev-parse --show-toplevel`, which works for both the main
// repository and linked worktrees.
func (ix *Index) RepoRoot(dir string) (string, error) {
	output, err := runGit(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// HooksDir returns the absolute path to the directory where git looks for
// hooks for the repository containing dir.
//
// Uses `git rev-parse --git-path hooks`, which honors core.hooksPath and
// resolves correctly inside linked worktrees (where .git is a file, not a
// directory). The returned path may be relative to dir; it is resolved to
// an absolute path before returning.
func (ix *Index) HooksDir(dir string) (string, error) {
	output, err := runGit(dir, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}
	hooks := strings.TrimSpace(output)
	if !filepath.IsAbs(hooks) {
		hooks = filepath.Join(dir, hooks)
	}
	return filepath.Abs(hooks)
}

// IsRepo reports whether dir is inside a git repository (working tree or
// linked worktree). It only inspects the exit status of
// `git rev-parse --git-dir`.
func (ix *Index) IsRepo(dir string) bool {
	_, err := runGit(dir, "rev-parse", "--git-dir")
	return err == nil
}

// LsFiles returns all tracked paths under the repository at dir, relative
// to the repository root. It is used by the check and list commands when
// scanning the whole worktree instead of the index.
func (ix *Index) LsFiles(dir string) ([]string, error) {
	output, err := runGit(dir, "ls-files", "-z")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, p := range strings.Split(output, "\x00") {
		if p == "" {
			continue
		}
		files = append(files, p)
	}
	return files, nil
}

// runGit executes a git command with the given arguments in the specified
// directory.
//
// It captures stdout and stderr separately. On success (exit code 0), it
// returns the stdout output. On failure, it returns a model.CLIError with
// ExitGitError code, including the stderr output in the error message.
//
// The dir parameter is passed to git via the -C flag, which causes git to
// change to that directory before doing anything else. This avoids changing
// the process's working directory.
func runGit(dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)

	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.Command("git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", model.WrapCLIError(model.ExitGitError, message, err)
	}

	return stdout.String(), nil
}

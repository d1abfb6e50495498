// Package cli — install.go implements the "markgate install" and
// "markgate uninstall" commands.
//
// install writes a small shell stub into the repository's hooks directory
// that delegates the pre-commit decision to `markgate hook`. The stub is
// deliberately trivial — all logic lives in the binary, so upgrading
// markgate never requires reinstalling the hook.
//
// uninstall removes the stub, but only after verifying the hook file is
// actually markgate's: a hand-written pre-commit hook is never deleted.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mizuno-k/markgate/internal/gitindex"
	"github.com/mizuno-k/markgate/internal/model"
)

// hookStub is the shell script written to .git/hooks/pre-commit.
// The marker line lets uninstall (and install --force) recognize the stub
// as markgate's own.
const hookStub = `#!/bin/sh
# markgate pre-commit stub — do not edit, run "markgate uninstall" to remove.
exec markgate hook
`

// hookStubMarker identifies a hook file as markgate's stub.
const hookStubMarker = "markgate hook"

// installFlags holds the flag values for the install command.
type installFlags struct {
	// force overwrites an existing pre-commit hook.
	force bool
}

// NewInstallCommand creates the "install" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewInstallCommand() *cobra.Command {
	flags := &installFlags{}

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the pre-commit hook into the current repository",
		Long: `Install a pre-commit hook that runs "markgate hook" before every commit.

The hook is written to the repository's hooks directory (honoring
core.hooksPath). An existing pre-commit hook is never overwritten unless
--force is given.

Examples:
  markgate install
  markgate install --force`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
			}
			return runInstall(cwd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false,
		"Overwrite an existing pre-commit hook")

	return cmd
}

// NewUninstallCommand creates the "uninstall" cobra command.
func NewUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the markgate pre-commit hook from the current repository",
		Long: `Remove the pre-commit hook previously installed by "markgate install".

The hook file is only deleted when it is recognizably markgate's stub; a
pre-commit hook written by hand or by another tool is left untouched.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
			}
			return runUninstall(cwd)
		},
	}
}

// runInstall writes the hook stub into the hooks directory.
func runInstall(cwd string, flags *installFlags) error {
	ix := gitindex.NewIndex()

	hooksDir, err := ix.HooksDir(cwd)
	if err != nil {
		return err
	}
	hookPath := filepath.Join(hooksDir, "pre-commit")
	VerboseLog("Hook path: %s", hookPath)

	// Refuse to clobber a foreign hook. Reinstalling over our own stub is
	// always fine (it is how upgrades that do change the stub roll out).
	if existing, err := os.ReadFile(hookPath); err == nil {
		ours := strings.Contains(string(existing), hookStubMarker)
		if !ours && !flags.force {
			return model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("a pre-commit hook already exists at %s (use --force to overwrite)", hookPath))
		}
	}

	// Hooks directories can be absent in fresh repositories when
	// core.hooksPath points somewhere custom.
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to create hooks directory", err)
	}

	// 0755: git only runs executable hooks.
	if err := os.WriteFile(hookPath, []byte(hookStub), 0o755); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write pre-commit hook", err)
	}

	fmt.Printf("Installed pre-commit hook: %s\n", hookPath)
	return nil
}

// runUninstall removes the hook stub if — and only if — it is ours.
func runUninstall(cwd string) error {
	ix := gitindex.NewIndex()

	hooksDir, err := ix.HooksDir(cwd)
	if err != nil {
		return err
	}
	hookPath := filepath.Join(hooksDir, "pre-commit")

	existing, err := os.ReadFile(hookPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No pre-commit hook installed.")
			return nil
		}
		return model.WrapCLIError(model.ExitGeneralError, "failed to read pre-commit hook", err)
	}

	if !strings.Contains(string(existing), hookStubMarker) {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("pre-commit hook at %s was not installed by markgate, refusing to remove it", hookPath))
	}

	if err := os.Remove(hookPath); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to remove pre-commit hook", err)
	}

	fmt.Printf("Removed pre-commit hook: %s\n", hookPath)
	return nil
}

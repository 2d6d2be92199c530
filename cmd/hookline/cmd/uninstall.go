package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hookline/hookline/internal/git"
	"github.com/hookline/hookline/internal/output"
)

//nolint:gochecknoglobals // Required by cobra
var uninstallHookType string

// uninstallCmd represents the uninstall command
//
//nolint:gochecknoglobals // Required by cobra
var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the git hook script",
	Long: `Remove the hookline-managed hook script from .git/hooks.

Hooks installed by other tools are left untouched. If a backup was
taken during installation it is restored.`,
	RunE: uninstallHook,
}

//nolint:gochecknoinits // Required by cobra
func init() {
	uninstallCmd.Flags().StringVar(&uninstallHookType, "hook-type", "pre-commit", "Hook type to remove")
}

func uninstallHook(_ *cobra.Command, _ []string) error {
	formatter := output.NewDefault()

	repoRoot, err := git.FindRepositoryRoot()
	if err != nil {
		formatter.Error("Failed to find git repository: %v", err)
		return fmt.Errorf("failed to find git repository: %w", err)
	}

	installer := git.NewInstaller(repoRoot)
	removed, err := installer.UninstallHook(uninstallHookType)
	if err != nil {
		formatter.Error("Failed to uninstall hook: %v", err)
		return fmt.Errorf("failed to uninstall hook: %w", err)
	}

	if removed {
		formatter.Success("Removed %s hook", uninstallHookType)
	} else {
		formatter.Info("No hookline-managed %s hook installed", uninstallHookType)
	}
	return nil
}

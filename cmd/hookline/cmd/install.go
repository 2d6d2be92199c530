package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hookline/hookline/internal/config"
	"github.com/hookline/hookline/internal/git"
	"github.com/hookline/hookline/internal/output"
)

//nolint:gochecknoglobals // Required by cobra
var (
	installForce    bool
	installHookType string
)

// installCmd represents the install command
//
//nolint:gochecknoglobals // Required by cobra
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the git hook script",
	Long: `Install a hookline-managed hook script into .git/hooks.

The configuration is validated before installation. An existing hook
from another tool is left alone unless --force is given, in which case
it is backed up first.`,
	RunE: installHook,
}

//nolint:gochecknoinits // Required by cobra
func init() {
	installCmd.Flags().BoolVar(&installForce, "force", false, "Overwrite an existing hook (backs it up first)")
	installCmd.Flags().StringVar(&installHookType, "hook-type", "pre-commit", "Hook type to install")
}

func installHook(_ *cobra.Command, _ []string) error {
	formatter := output.NewDefault()

	repoRoot, err := git.FindRepositoryRoot()
	if err != nil {
		formatter.Error("Failed to find git repository: %v", err)
		return fmt.Errorf("failed to find git repository: %w", err)
	}

	// A broken configuration should surface now, not at commit time
	if _, err := config.Load(repoRoot); err != nil {
		formatter.Error("Configuration is invalid: %v", err)
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	installer := git.NewInstaller(repoRoot)
	if err := installer.InstallHook(installHookType, installForce); err != nil {
		formatter.Error("Failed to install hook: %v", err)
		return fmt.Errorf("failed to install hook: %w", err)
	}

	formatter.Success("Installed %s hook", installHookType)
	return nil
}

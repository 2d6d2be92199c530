package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	prerrors "github.com/hookline/hookline/internal/errors"
)

// hookMarker identifies hook scripts managed by hookline
const hookMarker = "Hookline Hook"

// hookScriptTemplate is the template for generated git hook scripts
const hookScriptTemplate = `#!/bin/bash
# Hookline Hook
# This hook is managed by hookline
# Generated automatically - do not edit manually

REPO_ROOT="%s"
BINARY_NAME="hookline"

# Find the hookline binary
BINARY_PATH=""
SEARCH_PATHS=(
    "$(command -v $BINARY_NAME 2>/dev/null)"
    "$(go env GOPATH 2>/dev/null)/bin/$BINARY_NAME"
    "$REPO_ROOT/bin/$BINARY_NAME"
)

for path in "${SEARCH_PATHS[@]}"; do
    if [[ -n "$path" && -x "$path" ]]; then
        BINARY_PATH="$path"
        break
    fi
done

if [[ -z "$BINARY_PATH" ]]; then
    echo "Error: hookline binary not found"
    echo "Install it with: go install github.com/hookline/hookline/cmd/hookline@latest"
    exit 1
fi

cd "$REPO_ROOT" || {
    echo "Error: Could not change to repository root: $REPO_ROOT"
    exit 1
}

# Pass through environment variables including SKIP
exec "$BINARY_PATH" run
`

// Installer handles git hook installation
type Installer struct {
	repoRoot string
}

// NewInstaller creates a new hook installer
func NewInstaller(repoRoot string) *Installer {
	return &Installer{repoRoot: repoRoot}
}

// InstallHook installs a git hook with conflict detection. An existing
// foreign hook is only replaced with force, and is backed up first.
func (i *Installer) InstallHook(hookType string, force bool) error {
	if err := i.validateInstallation(hookType); err != nil {
		return fmt.Errorf("installation validation failed: %w", err)
	}

	hookPath := filepath.Join(i.repoRoot, ".git", "hooks", hookType)

	if err := i.handleExistingHook(hookPath, force); err != nil {
		return err
	}

	hooksDir := filepath.Dir(hookPath)
	if err := os.MkdirAll(hooksDir, 0o750); err != nil {
		return fmt.Errorf("failed to create hooks directory: %w", err)
	}

	if err := os.WriteFile(hookPath, []byte(i.GenerateHookScript()), 0o755); err != nil { //nolint:gosec // Hook script must be executable
		return fmt.Errorf("failed to write hook script: %w", err)
	}

	return i.verifyInstallation(hookPath)
}

// UninstallHook removes a git hook if it was installed by hookline
func (i *Installer) UninstallHook(hookType string) (bool, error) {
	hookPath := filepath.Join(i.repoRoot, ".git", "hooks", hookType)

	content, err := os.ReadFile(hookPath) //nolint:gosec // Path is validated
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read hook: %w", err)
	}

	if !strings.Contains(string(content), hookMarker) {
		return false, nil // Not our hook
	}

	if err := os.Remove(hookPath); err != nil {
		return false, fmt.Errorf("failed to remove hook: %w", err)
	}

	if err := i.restoreBackupIfExists(hookPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to restore backup hook: %v\n", err)
	}

	return true, nil
}

// IsHookInstalled checks if a hookline-managed hook is installed
func (i *Installer) IsHookInstalled(hookType string) bool {
	hookPath := filepath.Join(i.repoRoot, ".git", "hooks", hookType)

	content, err := os.ReadFile(hookPath) //nolint:gosec // Path is validated
	if err != nil {
		return false
	}

	return strings.Contains(string(content), hookMarker)
}

// GenerateHookScript creates the hook script for this repository
func (i *Installer) GenerateHookScript() string {
	return fmt.Sprintf(hookScriptTemplate, i.repoRoot)
}

// validateInstallation performs pre-installation validation
func (i *Installer) validateInstallation(hookType string) error {
	gitDir := filepath.Join(i.repoRoot, ".git")
	if _, err := os.Stat(gitDir); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", prerrors.ErrNotGitRepository, i.repoRoot)
	}

	validHookTypes := map[string]bool{
		"pre-commit":  true,
		"pre-push":    true,
		"commit-msg":  true,
		"post-commit": true,
	}
	if !validHookTypes[hookType] {
		return fmt.Errorf("%w: %s", prerrors.ErrUnsupportedHookType, hookType)
	}

	return nil
}

// handleExistingHook manages existing hook conflicts
func (i *Installer) handleExistingHook(hookPath string, force bool) error {
	content, err := os.ReadFile(hookPath) //nolint:gosec // Path is validated
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read existing hook: %w", err)
	}

	if strings.Contains(string(content), hookMarker) {
		// Our own hook; overwriting it is safe
		return nil
	}

	if !force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", os.ErrExist, hookPath)
	}

	backupPath := fmt.Sprintf("%s.backup.%d", hookPath, os.Getpid())
	if err := os.Rename(hookPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup existing hook: %w", err)
	}
	return nil
}

// restoreBackupIfExists restores the most recent backup of a hook
func (i *Installer) restoreBackupIfExists(hookPath string) error {
	matches, err := filepath.Glob(hookPath + ".backup.*")
	if err != nil || len(matches) == 0 {
		return nil
	}

	// Most recent backup wins
	latest := matches[len(matches)-1]
	return os.Rename(latest, hookPath)
}

// verifyInstallation checks that the installation was successful
func (i *Installer) verifyInstallation(hookPath string) error {
	info, err := os.Stat(hookPath)
	if err != nil {
		return fmt.Errorf("hook file not found after installation: %w", err)
	}

	if info.Mode()&0o111 == 0 {
		return fmt.Errorf("%w: %s", prerrors.ErrHookNotExecutable, hookPath)
	}

	content, err := os.ReadFile(hookPath) //nolint:gosec // Path is validated
	if err != nil {
		return fmt.Errorf("failed to read installed hook: %w", err)
	}
	if !strings.Contains(string(content), hookMarker) {
		return fmt.Errorf("%w: %s", prerrors.ErrHookMarkerMissing, hookPath)
	}

	return nil
}

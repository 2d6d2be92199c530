package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	prerrors "github.com/hookline/hookline/internal/errors"
)

// fakeRepo creates a directory with an empty .git dir
func fakeRepo(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "hooks"), 0o750))
	return root
}

func TestInstallHook(t *testing.T) {
	root := fakeRepo(t)
	installer := NewInstaller(root)

	require.NoError(t, installer.InstallHook("pre-commit", false))

	hookPath := filepath.Join(root, ".git", "hooks", "pre-commit")
	info, err := os.Stat(hookPath)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111, "hook must be executable")

	content, err := os.ReadFile(hookPath) // #nosec G304
	require.NoError(t, err)
	assert.Contains(t, string(content), hookMarker)
	assert.Contains(t, string(content), root)

	assert.True(t, installer.IsHookInstalled("pre-commit"))
}

func TestInstallHook_NotGitRepository(t *testing.T) {
	installer := NewInstaller(t.TempDir())

	err := installer.InstallHook("pre-commit", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, prerrors.ErrNotGitRepository)
}

func TestInstallHook_UnsupportedType(t *testing.T) {
	installer := NewInstaller(fakeRepo(t))

	err := installer.InstallHook("post-receive", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, prerrors.ErrUnsupportedHookType)
}

func TestInstallHook_RefusesForeignHookWithoutForce(t *testing.T) {
	root := fakeRepo(t)
	hookPath := filepath.Join(root, ".git", "hooks", "pre-commit")
	require.NoError(t, os.WriteFile(hookPath, []byte("#!/bin/sh\necho custom\n"), 0o755)) // #nosec G306

	installer := NewInstaller(root)
	err := installer.InstallHook("pre-commit", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestInstallHook_ForceBacksUpForeignHook(t *testing.T) {
	root := fakeRepo(t)
	hookPath := filepath.Join(root, ".git", "hooks", "pre-commit")
	original := "#!/bin/sh\necho custom\n"
	require.NoError(t, os.WriteFile(hookPath, []byte(original), 0o755)) // #nosec G306

	installer := NewInstaller(root)
	require.NoError(t, installer.InstallHook("pre-commit", true))

	backups, err := filepath.Glob(hookPath + ".backup.*")
	require.NoError(t, err)
	require.Len(t, backups, 1)

	content, err := os.ReadFile(backups[0]) // #nosec G304
	require.NoError(t, err)
	assert.Equal(t, original, string(content))
}

func TestInstallHook_ReinstallOverOwnHook(t *testing.T) {
	root := fakeRepo(t)
	installer := NewInstaller(root)

	require.NoError(t, installer.InstallHook("pre-commit", false))
	require.NoError(t, installer.InstallHook("pre-commit", false))

	hookPath := filepath.Join(root, ".git", "hooks", "pre-commit")
	backups, err := filepath.Glob(hookPath + ".backup.*")
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestUninstallHook(t *testing.T) {
	root := fakeRepo(t)
	installer := NewInstaller(root)

	require.NoError(t, installer.InstallHook("pre-commit", false))

	removed, err := installer.UninstallHook("pre-commit")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, installer.IsHookInstalled("pre-commit"))
}

func TestUninstallHook_NotInstalled(t *testing.T) {
	installer := NewInstaller(fakeRepo(t))

	removed, err := installer.UninstallHook("pre-commit")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestUninstallHook_LeavesForeignHookAlone(t *testing.T) {
	root := fakeRepo(t)
	hookPath := filepath.Join(root, ".git", "hooks", "pre-commit")
	require.NoError(t, os.WriteFile(hookPath, []byte("#!/bin/sh\necho custom\n"), 0o755)) // #nosec G306

	installer := NewInstaller(root)
	removed, err := installer.UninstallHook("pre-commit")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = os.Stat(hookPath)
	assert.NoError(t, err)
}

func TestUninstallHook_RestoresBackup(t *testing.T) {
	root := fakeRepo(t)
	hookPath := filepath.Join(root, ".git", "hooks", "pre-commit")
	original := "#!/bin/sh\necho custom\n"
	require.NoError(t, os.WriteFile(hookPath, []byte(original), 0o755)) // #nosec G306

	installer := NewInstaller(root)
	require.NoError(t, installer.InstallHook("pre-commit", true))

	removed, err := installer.UninstallHook("pre-commit")
	require.NoError(t, err)
	assert.True(t, removed)

	content, err := os.ReadFile(hookPath) // #nosec G304
	require.NoError(t, err)
	assert.Equal(t, original, string(content))
}

func TestGenerateHookScript(t *testing.T) {
	installer := NewInstaller("/some/repo")

	script := installer.GenerateHookScript()
	assert.Contains(t, script, "#!/bin/bash")
	assert.Contains(t, script, hookMarker)
	assert.Contains(t, script, `REPO_ROOT="/some/repo"`)
	assert.Contains(t, script, "run")
}

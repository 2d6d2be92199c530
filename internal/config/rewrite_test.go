package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateRev(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	original := `# project hooks
repos:
  - repo: https://github.com/pre-commit/pre-commit-hooks
    rev: v4.4.0
    hooks:
      - id: check-yaml
  - repo: https://github.com/psf/black
    rev: 23.1.0 # formatter
    hooks:
      - id: black
`
	require.NoError(t, os.WriteFile(path, []byte(original), 0o600))

	changed, err := UpdateRev(path, "https://github.com/pre-commit/pre-commit-hooks", "v4.5.0")
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "rev: v4.5.0")
	assert.NotContains(t, content, "rev: v4.4.0")
	// Other sources and comments are untouched
	assert.Contains(t, content, "# project hooks")
	assert.Contains(t, content, "rev: 23.1.0")
}

func TestUpdateRev_NoChangeWhenCurrent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	content := `repos:
  - repo: https://github.com/a/one
    rev: v1.0.0
    hooks:
      - id: lint
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	changed, err := UpdateRev(path, "https://github.com/a/one", "v1.0.0")
	require.NoError(t, err)
	assert.False(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestUpdateRev_UnknownRepo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("repos:\n  - repo: https://github.com/a/one\n    rev: v1.0.0\n"), 0o600))

	changed, err := UpdateRev(path, "https://github.com/b/two", "v9.9.9")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestUpdateRev_MissingFile(t *testing.T) {
	_, err := UpdateRev(filepath.Join(t.TempDir(), "nope.yaml"), "x", "v1")
	require.Error(t, err)
}

package git

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileList(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", "\n  \n", []string{}},
		{"single file", "main.go\n", []string{"main.go"}},
		{"multiple files", "a.go\nb.go\nc.go\n", []string{"a.go", "b.go", "c.go"}},
		{"blank lines between entries", "a.go\n\nb.go\n", []string{"a.go", "b.go"}},
		{"paths with spaces", "dir/my file.txt\n", []string{"dir/my file.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFileList([]byte(tt.output)))
		})
	}
}

func TestRepository_GetRoot(t *testing.T) {
	repo := NewRepository("/some/root")
	assert.Equal(t, "/some/root", repo.GetRoot())
}

func TestRepository_StagedFiles(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	root := t.TempDir()
	runGit := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = root
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}

	runGit("init")
	runGit("config", "user.email", "test@example.com")
	runGit("config", "user.name", "Test")

	repo := NewRepository(root)

	staged, err := repo.GetStagedFiles()
	require.NoError(t, err)
	assert.Empty(t, staged)

	writeAndAdd := func(name string) {
		t.Helper()
		cmd := exec.Command("sh", "-c", "echo content > "+name)
		cmd.Dir = root
		require.NoError(t, cmd.Run())
		runGit("add", name)
	}

	writeAndAdd("first.go")
	writeAndAdd("second.go")

	staged, err = repo.GetStagedFiles()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"first.go", "second.go"}, staged)

	runGit("commit", "-m", "initial")

	all, err := repo.GetAllFiles()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"first.go", "second.go"}, all)

	staged, err = repo.GetStagedFiles()
	require.NoError(t, err)
	assert.Empty(t, staged)
}

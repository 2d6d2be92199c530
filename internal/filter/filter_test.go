package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hookline/hookline/internal/config"
)

func TestApply_DefaultAllFiles(t *testing.T) {
	files := []string{"a.yaml", "b.go", "docs/readme.md"}
	hook := &config.Hook{ID: "check-all"}

	assert.Equal(t, files, Apply(files, hook, nil))
}

func TestApply_FilesPattern(t *testing.T) {
	files := []string{"a.yaml", "conf/b.yaml", "main.go"}
	hook := &config.Hook{ID: "check-yaml", Files: "**/*.yaml"}

	got := Apply(files, hook, nil)
	assert.Equal(t, []string{"a.yaml", "conf/b.yaml"}, got)
}

func TestApply_BarePatternMatchesSubdirectories(t *testing.T) {
	files := []string{"deep/nested/app.yaml", "app.json"}
	hook := &config.Hook{ID: "check-yaml", Files: "*.yaml"}

	got := Apply(files, hook, nil)
	assert.Equal(t, []string{"deep/nested/app.yaml"}, got)
}

func TestApply_ExcludePattern(t *testing.T) {
	files := []string{"src/a.py", "src/generated/b.py", "src/c.py"}
	hook := &config.Hook{ID: "mypy", Exclude: "src/generated/**"}

	got := Apply(files, hook, nil)
	assert.Equal(t, []string{"src/a.py", "src/c.py"}, got)
}

func TestApply_TypeTags(t *testing.T) {
	files := []string{"a.yaml", "b.yml", "c.go", "Makefile", "script.sh"}

	tests := []struct {
		name  string
		types []string
		want  []string
	}{
		{"yaml", []string{"yaml"}, []string{"a.yaml", "b.yml"}},
		{"go", []string{"go"}, []string{"c.go"}},
		{"make", []string{"make"}, []string{"Makefile"}},
		{"multiple", []string{"go", "shell"}, []string{"c.go", "script.sh"}},
		{"file matches everything", []string{"file"}, files},
		{"unknown type", []string{"cobol"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook := &config.Hook{ID: "x", Types: tt.types}
			assert.Equal(t, tt.want, Apply(files, hook, nil))
		})
	}
}

func TestApply_GlobalExcludes(t *testing.T) {
	files := []string{"main.go", "vendor/lib/lib.go", "pkg/node_modules/x.js", "build.log"}
	hook := &config.Hook{ID: "x"}
	excludes := []string{"vendor/", "node_modules/", "*.log"}

	got := Apply(files, hook, excludes)
	assert.Equal(t, []string{"main.go"}, got)
}

func TestApply_CombinedFilters(t *testing.T) {
	files := []string{"a.yaml", "vendor/b.yaml", "skip/c.yaml", "d.json"}
	hook := &config.Hook{ID: "check-yaml", Types: []string{"yaml"}, Exclude: "skip/**"}

	got := Apply(files, hook, []string{"vendor/"})
	assert.Equal(t, []string{"a.yaml"}, got)
}

func TestTypeTags(t *testing.T) {
	tags := TypeTags("cmd/server/main.go")
	assert.True(t, tags["go"])
	assert.True(t, tags["file"])
	assert.False(t, tags["yaml"])

	tags = TypeTags("Dockerfile")
	assert.True(t, tags["docker"])

	tags = TypeTags("notes")
	assert.True(t, tags["file"])
	assert.Len(t, tags, 1)
}

// Package filter resolves which target files apply to each hook
package filter

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/hookline/hookline/internal/config"
)

// Apply resolves the applicable file subset for a hook. The hook's
// files/exclude globs and type tags are applied on top of the global
// exclude patterns; with no filters declared, every target file applies.
func Apply(files []string, hook *config.Hook, globalExcludes []string) []string {
	filtered := make([]string, 0, len(files))

	for _, file := range files {
		if excludedByPatterns(file, globalExcludes) {
			continue
		}
		if hook.Files != "" && !globMatch(hook.Files, file) {
			continue
		}
		if hook.Exclude != "" && globMatch(hook.Exclude, file) {
			continue
		}
		if len(hook.Types) > 0 && !matchesAnyType(file, hook.Types) {
			continue
		}
		filtered = append(filtered, file)
	}

	return filtered
}

// globMatch matches a path against a doublestar pattern. Bare patterns
// like "*.yaml" also match files in subdirectories.
func globMatch(pattern, path string) bool {
	if matched, err := doublestar.Match(pattern, path); err == nil && matched {
		return true
	}
	if !strings.Contains(pattern, "/") {
		matched, err := doublestar.Match(pattern, filepath.Base(path))
		return err == nil && matched
	}
	return false
}

// excludedByPatterns applies settings-level exclude patterns. Patterns
// ending in "/" exclude whole directory trees.
func excludedByPatterns(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if strings.HasSuffix(pattern, "/") {
			if strings.HasPrefix(path, pattern) || strings.Contains(path, "/"+pattern) {
				return true
			}
			continue
		}
		if globMatch(pattern, path) {
			return true
		}
	}
	return false
}

// matchesAnyType reports whether the file carries at least one of the
// requested type tags.
func matchesAnyType(path string, types []string) bool {
	tags := TypeTags(path)
	for _, want := range types {
		if tags[want] {
			return true
		}
	}
	return false
}

// extensionTags maps file extensions to type tags
var extensionTags = map[string]string{
	".go":    "go",
	".mod":   "go-mod",
	".sum":   "go-sum",
	".py":    "python",
	".pyi":   "python",
	".js":    "javascript",
	".ts":    "typescript",
	".jsx":   "javascript",
	".tsx":   "typescript",
	".java":  "java",
	".c":     "c",
	".cpp":   "c++",
	".cc":    "c++",
	".h":     "c",
	".hpp":   "c++",
	".rs":    "rust",
	".rb":    "ruby",
	".php":   "php",
	".swift": "swift",
	".kt":    "kotlin",
	".sh":    "shell",
	".bash":  "shell",
	".zsh":   "shell",
	".sql":   "sql",
	".md":    "markdown",
	".txt":   "text",
	".yml":   "yaml",
	".yaml":  "yaml",
	".json":  "json",
	".xml":   "xml",
	".html":  "html",
	".htm":   "html",
	".css":   "css",
	".proto": "protobuf",
	".toml":  "toml",
	".ini":   "ini",
	".env":   "env",
}

// specialFileTags maps well-known extensionless filenames to type tags
var specialFileTags = map[string]string{
	"makefile":      "make",
	"dockerfile":    "docker",
	"jenkinsfile":   "groovy",
	".gitignore":    "gitignore",
	".editorconfig": "editorconfig",
}

// TypeTags returns the set of type tags for a path. Every file carries
// the "file" tag; recognized types add their specific tag.
func TypeTags(path string) map[string]bool {
	tags := map[string]bool{"file": true}

	if tag, ok := extensionTags[strings.ToLower(filepath.Ext(path))]; ok {
		tags[tag] = true
	}
	if tag, ok := specialFileTags[strings.ToLower(filepath.Base(path))]; ok {
		tags[tag] = true
	}

	return tags
}

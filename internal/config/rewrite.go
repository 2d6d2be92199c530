package config

import (
	"fmt"
	"os"
	"strings"
)

// UpdateRev rewrites the rev pin of one source in a configuration
// document. The rewrite is textual so comments and formatting survive.
// It returns true when a rev line was changed.
func UpdateRev(path, repo, newRev string) (bool, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is the loaded config document
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	inTarget := false
	changed := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if value, ok := yamlScalar(trimmed, "repo"); ok {
			inTarget = value == repo
			continue
		}

		if !inTarget {
			continue
		}

		if current, ok := yamlScalar(trimmed, "rev"); ok {
			if current == newRev {
				return false, nil
			}
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			prefix := ""
			if strings.HasPrefix(trimmed, "- ") {
				prefix = "- "
			}
			lines[i] = fmt.Sprintf("%s%srev: %s", indent, prefix, newRev)
			changed = true
			inTarget = false
		}
	}

	if !changed {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}

// yamlScalar extracts the value of a "key: value" line, tolerating a
// leading list dash and surrounding quotes
func yamlScalar(trimmed, key string) (string, bool) {
	trimmed = strings.TrimPrefix(trimmed, "- ")
	if !strings.HasPrefix(trimmed, key+":") {
		return "", false
	}
	value := strings.TrimSpace(strings.TrimPrefix(trimmed, key+":"))
	value = strings.Trim(value, `"'`)
	return value, true
}

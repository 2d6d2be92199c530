package cmd

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistration(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"run", "install", "uninstall", "validate", "autoupdate"} {
		assert.True(t, names[want], "command %q must be registered", want)
	}
}

func TestRootPersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "no-color", "color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %q must exist", name)
	}
}

func TestRunCommandFlags(t *testing.T) {
	for _, name := range []string{"all-files", "files", "skip", "only", "parallel", "fail-fast", "progress", "quiet"} {
		assert.NotNil(t, runCmd.Flags().Lookup(name), "flag %q must exist", name)
	}
}

func TestInitColor(t *testing.T) {
	restore := color.NoColor
	defer func() { color.NoColor = restore }()

	tests := []struct {
		name    string
		noColor bool
		mode    string
		want    bool
	}{
		{"no-color flag wins", true, "always", true},
		{"mode never", false, "never", true},
		{"mode always", false, "always", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noColor = tt.noColor
			colorMode = tt.mode
			initColor()
			assert.Equal(t, tt.want, color.NoColor)
		})
	}

	noColor = false
	colorMode = "auto"
}

func TestInitColor_AutoRespectsNoColorEnv(t *testing.T) {
	restore := color.NoColor
	defer func() { color.NoColor = restore }()

	t.Setenv("NO_COLOR", "1")
	noColor = false
	colorMode = "auto"
	color.NoColor = false

	initColor()
	require.True(t, color.NoColor)
}

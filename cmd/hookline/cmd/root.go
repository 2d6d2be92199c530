// Package cmd implements the hookline command-line interface
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Required by cobra
var (
	verbose   bool
	noColor   bool
	colorMode string
)

// rootCmd represents the base command
//
//nolint:gochecknoglobals // Required by cobra
var rootCmd = &cobra.Command{
	Use:   "hookline",
	Short: "Hookline - declarative pre-commit hook orchestration",
	Long: `Hookline runs the hooks declared in .hookline.yaml against your
staged files before each commit. Hooks are external executables grouped
by source repository and pinned revision; hookline decides which hooks
to run, in what order, against which files, and aggregates their
results into a single pass/fail verdict.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		initColor()
	},
}

//nolint:gochecknoinits // Required by cobra
func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output (same as --color=never)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Control color output: auto, always, never")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(autoupdateCmd)
}

// Execute runs the root command with version information
func Execute(version, commit, buildDate string) error {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate)
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)
	return rootCmd.Execute()
}

// initColor applies the color flags to the global color state
func initColor() {
	if noColor {
		color.NoColor = true
		return
	}

	switch colorMode {
	case "never":
		color.NoColor = true
	case "always":
		color.NoColor = false
	default: // auto
		if os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		}
	}
}

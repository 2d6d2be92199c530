package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hookline/hookline/internal/config"
	"github.com/hookline/hookline/internal/git"
	"github.com/hookline/hookline/internal/output"
)

// validateCmd represents the validate command
//
//nolint:gochecknoglobals // Required by cobra
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and list hooks",
	Long: `Load and validate .hookline.yaml, then print the declared hook
inventory in execution order.`,
	RunE: validateConfig,
}

func validateConfig(_ *cobra.Command, _ []string) error {
	formatter := output.NewDefault()

	repoRoot, err := git.FindRepositoryRoot()
	if err != nil {
		formatter.Error("Failed to find git repository: %v", err)
		return fmt.Errorf("failed to find git repository: %w", err)
	}

	cfg, err := config.Load(repoRoot)
	if err != nil {
		formatter.Error("Configuration is invalid: %v", err)
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	formatter.Success("Configuration is valid (%s)", cfg.Path)
	formatter.Header("Configured Hooks")

	for _, src := range cfg.Sources {
		formatter.Subheader(fmt.Sprintf("%s @ %s", src.Repo, src.Rev))
		for _, h := range src.Hooks {
			detail := ""
			if len(h.Args) > 0 {
				detail += " args=" + strings.Join(h.Args, " ")
			}
			if h.Files != "" {
				detail += " files=" + h.Files
			}
			if len(h.Types) > 0 {
				detail += " types=" + strings.Join(h.Types, ",")
			}
			formatter.Detail("%-25s%s", h.ID, detail)
		}
	}

	return nil
}

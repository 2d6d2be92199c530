package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hookline/hookline/internal/config"
	"github.com/hookline/hookline/internal/git"
	"github.com/hookline/hookline/internal/output"
	"github.com/hookline/hookline/internal/revision"
)

// autoupdateCmd represents the autoupdate command
//
//nolint:gochecknoglobals // Required by cobra
var autoupdateCmd = &cobra.Command{
	Use:   "autoupdate",
	Short: "Update source rev pins to the latest released tags",
	Long: `Query each GitHub-hosted source for its latest published release
and rewrite the rev pins in .hookline.yaml. Sources that are not hosted
on github.com are left unchanged.`,
	RunE: autoupdateRevs,
}

func autoupdateRevs(cmd *cobra.Command, _ []string) error {
	formatter := output.NewDefault()

	repoRoot, err := git.FindRepositoryRoot()
	if err != nil {
		formatter.Error("Failed to find git repository: %v", err)
		return fmt.Errorf("failed to find git repository: %w", err)
	}

	cfg, err := config.Load(repoRoot)
	if err != nil {
		formatter.Error("Failed to load configuration: %v", err)
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	client := revision.NewClient(nil, rootCmd.Version)
	updated := 0

	for _, src := range cfg.Sources {
		latest, err := client.LatestTag(cmd.Context(), src.Repo)
		if err != nil {
			if errors.Is(err, revision.ErrNotGitHubSource) {
				formatter.Detail("%s: skipped (not a GitHub source)", src.Repo)
				continue
			}
			formatter.Warning("%s: %v", src.Repo, err)
			continue
		}

		if latest == src.Rev {
			formatter.Detail("%s: already at %s", src.Repo, src.Rev)
			continue
		}

		changed, err := config.UpdateRev(cfg.Path, src.Repo, latest)
		if err != nil {
			formatter.Error("%s: %v", src.Repo, err)
			return err
		}
		if changed {
			formatter.Success("%s: %s → %s", src.Repo, src.Rev, latest)
			updated++
		}
	}

	if updated == 0 {
		formatter.Info("All rev pins are up to date")
	}
	return nil
}

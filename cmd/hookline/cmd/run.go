package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hookline/hookline/internal/config"
	prerrors "github.com/hookline/hookline/internal/errors"
	"github.com/hookline/hookline/internal/git"
	"github.com/hookline/hookline/internal/output"
	"github.com/hookline/hookline/internal/runner"
)

//nolint:gochecknoglobals // Required by cobra
var (
	allFiles     bool
	files        []string
	skipHooks    []string
	onlyHooks    []string
	parallel     int
	failFast     bool
	showProgress bool
	quiet        bool
)

// runCmd represents the run command
//
//nolint:gochecknoglobals // Required by cobra
var runCmd = &cobra.Command{
	Use:   "run [hook-id] [flags]",
	Short: "Run configured hooks",
	Long: `Run the hooks declared in .hookline.yaml.

By default hooks run sequentially in declaration order against files
staged for commit. Each hook only sees the files its filters admit;
hooks with no applicable files are skipped without being invoked.`,
	Example: `  # Run all hooks on staged files
  hookline run

  # Run one hook by id
  hookline run check-yaml

  # Run all hooks on every tracked file
  hookline run --all-files

  # Run hooks concurrently with four workers
  hookline run --parallel 4

  # Skip specific hooks for this run
  hookline run --skip check-yaml,end-of-file-fixer`,
	RunE: runHooks,
}

//nolint:gochecknoinits // Required by cobra
func init() {
	runCmd.Flags().BoolVarP(&allFiles, "all-files", "a", false, "Run on all tracked files in the repository")
	runCmd.Flags().StringSliceVarP(&files, "files", "f", nil, "Specific files to check")
	runCmd.Flags().StringSliceVar(&skipHooks, "skip", nil, "Skip specific hooks")
	runCmd.Flags().StringSliceVar(&onlyHooks, "only", nil, "Run only specific hooks")
	runCmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "Number of parallel workers (0 = sequential)")
	runCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop on first hook failure")
	runCmd.Flags().BoolVar(&showProgress, "progress", true, "Show progress during execution")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress messages, show only results")
}

func runHooks(_ *cobra.Command, args []string) error {
	repoRoot, err := git.FindRepositoryRoot()
	if err != nil {
		formatter := output.NewDefault()
		formatter.Error("Failed to find git repository: %v", err)
		return fmt.Errorf("failed to find git repository: %w", err)
	}

	cfg, err := config.Load(repoRoot)
	if err != nil {
		formatter := output.NewDefault()
		formatter.Error("Failed to load configuration: %v", err)
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	formatter := output.New(output.Options{
		ColorEnabled: cfg.Settings.ColorOutput && !noColor,
	})

	filesToCheck, err := resolveTargetFiles(repoRoot)
	if err != nil {
		formatter.Error("%v", err)
		return err
	}

	r := runner.New(cfg, repoRoot)

	opts := runner.Options{
		Files:     filesToCheck,
		Parallel:  parallel,
		FailFast:  failFast || cfg.Settings.FailFast,
		SkipHooks: skipHooks,
		OnlyHooks: onlyHooks,
	}
	if len(args) > 0 {
		opts.OnlyHooks = []string{args[0]}
	}

	if showProgress && !quiet {
		opts.ProgressCallback = func(hookID, status string) {
			if status == "running" {
				formatter.Progress("Running %s...", hookID)
			}
		}
	}

	if verbose && !quiet {
		formatter.Info("Running hooks on %s", formatter.FormatFileList(filesToCheck, 3))
	}

	results, err := r.Run(context.Background(), opts)
	if err != nil {
		if errors.Is(err, prerrors.ErrNoHooksToRun) {
			formatter.Warning("No hooks to run")
			return nil
		}
		formatter.Error("Failed to run hooks: %v", err)
		return fmt.Errorf("failed to run hooks: %w", err)
	}

	displayResults(formatter, results)

	if results.Aggregate() == runner.StatusFail {
		return fmt.Errorf("%w: %d", prerrors.ErrHooksFailed, results.Failed+results.Errored)
	}

	return nil
}

// resolveTargetFiles determines the target file set from the flags.
// Staged files are the default.
func resolveTargetFiles(repoRoot string) ([]string, error) {
	if len(files) > 0 {
		return files, nil
	}

	repo := git.NewRepository(repoRoot)
	if allFiles {
		all, err := repo.GetAllFiles()
		if err != nil {
			return nil, fmt.Errorf("failed to get all files: %w", err)
		}
		return all, nil
	}

	staged, err := repo.GetStagedFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to get staged files: %w", err)
	}
	return staged, nil
}

func displayResults(formatter *output.Formatter, results *runner.Results) {
	if !quiet {
		formatter.Header("Hook Results")
	}

	for _, result := range results.RunResults {
		if quiet && result.Status != runner.StatusFail && result.Status != runner.StatusError {
			continue
		}

		formatter.StatusLine(result)

		if result.Status == runner.StatusFail || result.Status == runner.StatusError {
			if result.Error != "" {
				formatter.Detail("Error: %s", result.Error)
			}
			if result.Output != "" {
				formatter.CodeBlock(result.Output)
			}
			if verbose && len(result.Files) > 0 {
				formatter.Detail("Files: %s", formatter.FormatFileList(result.Files, 3))
			}
		}
	}

	if !quiet || results.Aggregate() == runner.StatusFail {
		formatter.Subheader("Summary")
		stats := formatter.FormatExecutionStats(results)
		switch {
		case results.Aggregate() == runner.StatusFail:
			formatter.Error("%s", stats)
		case results.Skipped > 0 && results.Passed == 0:
			formatter.Warning("%s", stats)
		default:
			formatter.Success("%s", stats)
		}
	}
}

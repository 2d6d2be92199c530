// Package runner provides the hook execution engine for hookline
package runner

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/hookline/hookline/internal/config"
	prerrors "github.com/hookline/hookline/internal/errors"
	"github.com/hookline/hookline/internal/filter"
	"github.com/hookline/hookline/internal/tools"
)

// Status is the outcome of one hook invocation
type Status int

// Hook invocation outcomes
const (
	// StatusPass means the hook ran and exited zero
	StatusPass Status = iota
	// StatusFail means the hook ran and exited nonzero
	StatusFail
	// StatusError means the hook could not be executed, crashed or timed out
	StatusError
	// StatusSkipped means the hook had no applicable files and was not invoked
	StatusSkipped
)

// String implements fmt.Stringer
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "passed"
	case StatusFail:
		return "failed"
	case StatusError:
		return "errored"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// RunResult is the immutable outcome of invoking one hook
type RunResult struct {
	ID       string
	Status   Status
	Output   string
	Error    string
	Duration time.Duration
	Files    []string
	Command  string
}

// Results contains the results of an orchestration run in declaration order
type Results struct {
	RunResults    []RunResult
	Passed        int
	Failed        int
	Errored       int
	Skipped       int
	TotalDuration time.Duration
	TotalFiles    int
}

// Aggregate derives the overall verdict: Fail iff at least one hook
// failed or errored.
func (r *Results) Aggregate() Status {
	if r.Failed > 0 || r.Errored > 0 {
		return StatusFail
	}
	return StatusPass
}

// ProgressCallback is called during hook execution for progress updates
type ProgressCallback func(hookID, status string)

// Options configures an orchestration run
type Options struct {
	Files            []string
	OnlyHooks        []string
	SkipHooks        []string
	Parallel         int // 0 = settings default, 1 = sequential, >1 = worker pool
	FailFast         bool
	ProgressCallback ProgressCallback
}

// Runner executes configured hooks against a set of target files
type Runner struct {
	config    *config.Config
	repoRoot  string
	resolver  tools.Resolver
	installer *tools.Installer
}

// New creates a Runner with the default tool registry and installer
func New(cfg *config.Config, repoRoot string) *Runner {
	return &Runner{
		config:    cfg,
		repoRoot:  repoRoot,
		resolver:  tools.NewRegistry(),
		installer: tools.NewInstaller(),
	}
}

// NewWithResolver creates a Runner with an injected executable resolver.
// Dependency installation is disabled; tests substitute fake tools here.
func NewWithResolver(cfg *config.Config, repoRoot string, resolver tools.Resolver) *Runner {
	return &Runner{
		config:   cfg,
		repoRoot: repoRoot,
		resolver: resolver,
	}
}

// entry pairs a hook with its owning source, at its declaration position
type entry struct {
	source *config.Source
	hook   *config.Hook
}

// Run executes the selected hooks and reports order-stable results
func (r *Runner) Run(ctx context.Context, opts Options) (*Results, error) {
	start := time.Now()

	opts.SkipHooks = r.combineSkipSources(opts.SkipHooks)

	entries, err := r.selectHooks(opts)
	if err != nil {
		return nil, err
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, time.Duration(r.config.Settings.Timeout)*time.Second)
	defer cancel()

	results := &Results{
		RunResults: make([]RunResult, len(entries)),
		TotalFiles: len(opts.Files),
	}

	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = r.config.Settings.ParallelWorkers
	}
	if parallel <= 0 {
		parallel = 1
	}
	if parallel > 1 && opts.FailFast {
		// Fail-fast requires deterministic ordering
		parallel = 1
	}
	if parallel > runtime.NumCPU() {
		parallel = runtime.NumCPU()
	}

	if parallel <= 1 {
		r.runSequential(ctxWithTimeout, entries, opts, results)
	} else {
		r.runParallel(ctxWithTimeout, entries, opts, results, parallel)
	}

	r.tally(results)
	results.TotalDuration = time.Since(start)
	return results, nil
}

// runSequential executes hooks one at a time in declaration order
func (r *Runner) runSequential(ctx context.Context, entries []entry, opts Options, results *Results) {
	for i, e := range entries {
		if opts.ProgressCallback != nil {
			opts.ProgressCallback(e.hook.ID, "running")
		}

		result := r.runHook(ctx, e, opts.Files)
		results.RunResults[i] = result

		if opts.ProgressCallback != nil {
			opts.ProgressCallback(e.hook.ID, result.Status.String())
		}

		if opts.FailFast && (result.Status == StatusFail || result.Status == StatusError) {
			// Remaining hooks are reported as skipped without invocation
			for j := i + 1; j < len(entries); j++ {
				results.RunResults[j] = RunResult{
					ID:     entries[j].hook.ID,
					Status: StatusSkipped,
				}
			}
			return
		}
	}
}

// runParallel executes hooks through a bounded worker pool. Each result
// is written at its declaration index, keeping the report order-stable.
func (r *Runner) runParallel(ctx context.Context, entries []entry, opts Options, results *Results, parallel int) {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, parallel)

	for i, e := range entries {
		wg.Add(1)
		go func(idx int, e entry) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if opts.ProgressCallback != nil {
				opts.ProgressCallback(e.hook.ID, "running")
			}

			result := r.runHook(ctx, e, opts.Files)
			results.RunResults[idx] = result

			if opts.ProgressCallback != nil {
				opts.ProgressCallback(e.hook.ID, result.Status.String())
			}
		}(i, e)
	}

	wg.Wait()
}

// runHook invokes a single hook against its applicable file subset
func (r *Runner) runHook(ctx context.Context, e entry, files []string) RunResult {
	start := time.Now()
	hook := e.hook

	applicable := filter.Apply(files, hook, r.config.Settings.ExcludePatterns)
	if len(applicable) == 0 {
		return RunResult{
			ID:       hook.ID,
			Status:   StatusSkipped,
			Duration: time.Since(start),
		}
	}

	if r.installer != nil && len(hook.AdditionalDeps) > 0 {
		if err := r.installer.EnsureInstalled(ctx, hook.ID, hook.AdditionalDeps); err != nil {
			return RunResult{
				ID:       hook.ID,
				Status:   StatusError,
				Error:    err.Error(),
				Duration: time.Since(start),
				Files:    applicable,
			}
		}
	}

	execPath, err := r.resolver.Resolve(hook.ID)
	if err != nil {
		return RunResult{
			ID:       hook.ID,
			Status:   StatusError,
			Error:    err.Error(),
			Duration: time.Since(start),
			Files:    applicable,
		}
	}

	timeout := hook.TimeoutOr(time.Duration(r.config.Settings.HookTimeout) * time.Second)
	hookCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string{}, hook.Args...), applicable...)
	cmd := exec.CommandContext(hookCtx, execPath, args...) //nolint:gosec // execPath resolved through the tool registry
	cmd.Dir = r.repoRoot

	output, runErr := cmd.CombinedOutput()

	result := RunResult{
		ID:       hook.ID,
		Output:   string(output),
		Duration: time.Since(start),
		Files:    applicable,
		Command:  execPath + " " + strings.Join(hook.Args, " "),
	}

	switch {
	case runErr == nil:
		result.Status = StatusPass
	case errors.Is(hookCtx.Err(), context.DeadlineExceeded):
		result.Status = StatusError
		result.Error = prerrors.NewHookTimeoutError(hook.ID, timeout).Error()
	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.Status = StatusFail
			result.Error = runErr.Error()
		} else {
			result.Status = StatusError
			result.Error = prerrors.NewToolExecutionError(result.Command, string(output)).Error()
		}
	}

	return result
}

// selectHooks flattens the configured hooks in declaration order and
// applies only/skip selection
func (r *Runner) selectHooks(opts Options) ([]entry, error) {
	var entries []entry

	for si := range r.config.Sources {
		src := &r.config.Sources[si]
		for hi := range src.Hooks {
			hook := &src.Hooks[hi]

			if len(opts.OnlyHooks) > 0 && !contains(opts.OnlyHooks, hook.ID) {
				continue
			}
			if contains(opts.SkipHooks, hook.ID) {
				continue
			}

			entries = append(entries, entry{source: src, hook: hook})
		}
	}

	if len(entries) == 0 {
		return nil, prerrors.ErrNoHooksToRun
	}
	return entries, nil
}

// tally fills the per-status counters from the collected results
func (r *Runner) tally(results *Results) {
	for _, result := range results.RunResults {
		switch result.Status {
		case StatusPass:
			results.Passed++
		case StatusFail:
			results.Failed++
		case StatusError:
			results.Errored++
		case StatusSkipped:
			results.Skipped++
		}
	}
}

// combineSkipSources merges SKIP environment variables with CLI skips
func (r *Runner) combineSkipSources(cliSkips []string) []string {
	allSkips := make([]string, 0, len(cliSkips))
	allSkips = append(allSkips, cliSkips...)

	// SKIP is the conventional variable; HOOKLINE_SKIP wins if both set
	for _, envVar := range []string{"HOOKLINE_SKIP", "SKIP"} {
		if value := strings.TrimSpace(os.Getenv(envVar)); value != "" {
			allSkips = append(allSkips, parseSkipValue(value, r.config.HookIDs())...)
			break
		}
	}

	return dedupeSkips(allSkips, r.config.HookIDs())
}

// parseSkipValue parses a comma-separated SKIP value; "all" selects
// every configured hook
func parseSkipValue(value string, known []string) []string {
	if strings.EqualFold(value, "all") {
		return append([]string{}, known...)
	}

	var skips []string
	for _, part := range strings.Split(value, ",") {
		if cleaned := strings.TrimSpace(part); cleaned != "" {
			skips = append(skips, cleaned)
		}
	}
	return skips
}

// dedupeSkips removes duplicates and unknown hook ids
func dedupeSkips(skips, known []string) []string {
	valid := make(map[string]bool, len(known))
	for _, id := range known {
		valid[id] = true
	}

	seen := make(map[string]bool, len(skips))
	result := make([]string, 0, len(skips))
	for _, skip := range skips {
		skip = strings.TrimSpace(skip)
		if skip == "" || seen[skip] || !valid[skip] {
			continue
		}
		seen[skip] = true
		result = append(result, skip)
	}
	return result
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}

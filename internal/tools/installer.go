package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	prerrors "github.com/hookline/hookline/internal/errors"
	"github.com/hookline/hookline/internal/progress"
)

// Installer installs additional hook dependencies on demand. Only
// Go-style module paths are supported; anything else is reported back
// to the user to install manually.
type Installer struct {
	timeout       time.Duration
	retryAttempts int
	retryDelay    time.Duration

	mu        sync.Mutex
	installed map[string]bool
}

// NewInstaller creates an installer with default timeout and retry policy
func NewInstaller() *Installer {
	return &Installer{
		timeout:       5 * time.Minute,
		retryAttempts: 3,
		retryDelay:    2 * time.Second,
		installed:     make(map[string]bool),
	}
}

// SetTimeout configures the per-dependency installation timeout
func (i *Installer) SetTimeout(timeout time.Duration) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.timeout = timeout
}

// EnsureInstalled installs every additional dependency of a hook that
// is not already present. Dependencies already on PATH are left alone.
func (i *Installer) EnsureInstalled(ctx context.Context, hookID string, deps []string) error {
	for _, dep := range deps {
		if err := i.ensureOne(ctx, hookID, dep); err != nil {
			return err
		}
	}
	return nil
}

func (i *Installer) ensureOne(ctx context.Context, hookID, dep string) error {
	i.mu.Lock()
	if i.installed[dep] {
		i.mu.Unlock()
		return nil
	}
	timeout := i.timeout
	i.mu.Unlock()

	binary := binaryName(dep)
	if _, err := exec.LookPath(binary); err == nil {
		i.markInstalled(dep)
		return nil
	}

	if !isModulePath(dep) {
		return &prerrors.HookError{
			Err:        prerrors.ErrDependencyInstallFailed,
			Message:    fmt.Sprintf("hook %q dependency %q is not installed", hookID, dep),
			Suggestion: fmt.Sprintf("Install %q manually; only Go module paths are installed automatically", dep),
		}
	}

	installCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tracker := progress.New(progress.Options{
		Operation: "Dependency installation",
		Context:   dep,
		Timeout:   timeout,
	})
	tracker.Start(installCtx)
	defer tracker.Stop()

	_, _ = fmt.Fprintf(os.Stdout, "%s Installing %s...\n", color.YellowString("→"), dep)

	installPath := dep
	if !strings.Contains(dep, "@") {
		installPath = dep + "@latest"
	}

	var output []byte
	err := i.retryWithBackoff(installCtx, func() error {
		cmd := exec.CommandContext(installCtx, "go", "install", installPath) //nolint:gosec // installPath comes from validated config
		cmd.Env = append(os.Environ(), "GO111MODULE=on")

		var cmdErr error
		output, cmdErr = cmd.CombinedOutput()
		return cmdErr
	})
	if err != nil {
		if errors.Is(installCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s timed out after %s", prerrors.ErrDependencyInstallFailed, dep, timeout)
		}
		return fmt.Errorf("%w for %s: %w\nOutput: %s", prerrors.ErrDependencyInstallFailed, dep, err, output)
	}

	i.markInstalled(dep)
	_, _ = fmt.Fprintf(os.Stdout, "%s Installed %s\n", color.GreenString("✓"), dep)
	return nil
}

func (i *Installer) markInstalled(dep string) {
	i.mu.Lock()
	i.installed[dep] = true
	i.mu.Unlock()
}

// retryWithBackoff retries fn on network errors with growing delays
func (i *Installer) retryWithBackoff(ctx context.Context, fn func() error) error {
	i.mu.Lock()
	attempts, delay := i.retryAttempts, i.retryDelay
	i.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(float64(delay) * (1.5 * float64(attempt)))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isNetworkError(lastErr) || ctx.Err() != nil {
			break
		}
	}
	return lastErr
}

// isModulePath reports whether a dependency looks like a Go module path
func isModulePath(dep string) bool {
	host, _, found := strings.Cut(dep, "/")
	return found && strings.Contains(host, ".")
}

// binaryName derives the installed binary name from a module path
func binaryName(dep string) string {
	name := dep
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	if slash := strings.LastIndex(name, "/"); slash >= 0 {
		name = name[slash+1:]
	}
	return name
}

// isNetworkError checks if an error is likely due to network issues
func isNetworkError(err error) bool {
	if err == nil {
		return false
	}

	errorStr := strings.ToLower(err.Error())
	networkErrorPatterns := []string{
		"connection refused",
		"connection timeout",
		"connection timed out",
		"connection reset",
		"network is unreachable",
		"no such host",
		"temporary failure in name resolution",
		"i/o timeout",
		"dial tcp",
		"tls handshake timeout",
		"proxy error",
		"bad gateway",
		"service unavailable",
		"gateway timeout",
	}

	for _, pattern := range networkErrorPatterns {
		if strings.Contains(errorStr, pattern) {
			return true
		}
	}
	return false
}

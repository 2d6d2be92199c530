// Package errors defines common errors for the hookline orchestrator
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	// ErrHooksFailed is returned when one or more hooks fail
	ErrHooksFailed = errors.New("hooks failed")

	// ErrNoHooksToRun is returned when no hooks are selected to run
	ErrNoHooksToRun = errors.New("no hooks to run")

	// ErrConfigNotFound is returned when .hookline.yaml cannot be found
	ErrConfigNotFound = errors.New(".hookline.yaml not found in repository root")

	// ErrRepositoryRootNotFound is returned when git repository root cannot be determined
	ErrRepositoryRootNotFound = errors.New("unable to determine repository root")

	// ErrToolNotFound is returned when a hook's executable is not available
	ErrToolNotFound = errors.New("hook executable not found")

	// ErrToolExecutionFailed is returned when a hook executable cannot be run
	ErrToolExecutionFailed = errors.New("hook execution failed")

	// ErrHookTimeout is returned when a hook exceeds its timeout
	ErrHookTimeout = errors.New("hook timed out")

	// ErrDependencyInstallFailed is returned when an additional dependency cannot be installed
	ErrDependencyInstallFailed = errors.New("dependency installation failed")

	// Git-related errors
	ErrNotGitRepository    = errors.New("not a git repository")
	ErrUnsupportedHookType = errors.New("unsupported hook type")
	ErrHookNotExecutable   = errors.New("hook file is not executable")
	ErrHookMarkerMissing   = errors.New("installed hook does not contain expected marker")
)

// HookError represents a failed or errored hook invocation with context
type HookError struct {
	// Base error
	Err error

	// Human-readable message explaining what went wrong
	Message string

	// Command that was invoked (if one was spawned)
	Command string

	// Combined stdout/stderr from the invocation
	Output string

	// Files the hook was invoked with
	Files []string

	// Actionable suggestion for how to fix the issue
	Suggestion string
}

// Error implements the error interface
func (e *HookError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements the error unwrapping interface
func (e *HookError) Unwrap() error {
	return e.Err
}

// Is implements the error checking interface
func (e *HookError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewToolNotFoundError creates an error for a hook whose executable is missing
func NewToolNotFoundError(id, executable string) *HookError {
	return &HookError{
		Err:        ErrToolNotFound,
		Message:    fmt.Sprintf("executable %q for hook %q not found in PATH", executable, id),
		Suggestion: fmt.Sprintf("Install %q or map the hook id to an executable in the tool registry", executable),
	}
}

// NewToolExecutionError creates an error for a hook that could not be executed
func NewToolExecutionError(command, output string) *HookError {
	return &HookError{
		Err:     ErrToolExecutionFailed,
		Command: command,
		Output:  output,
		Message: fmt.Sprintf("command %q failed to execute", command),
	}
}

// NewHookTimeoutError creates an error for a hook that exceeded its timeout
func NewHookTimeoutError(id string, timeout time.Duration) *HookError {
	return &HookError{
		Err:        ErrHookTimeout,
		Message:    fmt.Sprintf("hook %q timed out after %s", id, timeout),
		Suggestion: "Raise the hook's timeout in .hookline.yaml or HOOKLINE_HOOK_TIMEOUT_SECONDS",
	}
}

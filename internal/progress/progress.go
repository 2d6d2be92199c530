// Package progress provides timeout-aware progress indicators for
// long-running hook executions and dependency installs
package progress

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Tracker prints periodic progress updates for an operation until
// stopped or the context ends
type Tracker struct {
	operation      string
	context        string
	timeout        time.Duration
	interval       time.Duration
	startTime      time.Time
	done           chan bool
	mu             sync.Mutex
	canceled       bool
	progressFunc   func(elapsed, remaining time.Duration) string
	suppressOutput bool
}

// Options configures a progress tracker
type Options struct {
	Operation      string                                        // e.g. "Hook execution"
	Context        string                                        // e.g. the hook id
	Timeout        time.Duration                                 // Total timeout
	Interval       time.Duration                                 // Update interval (default: 10s)
	ProgressFunc   func(elapsed, remaining time.Duration) string // Custom message function
	SuppressOutput bool                                          // Don't print updates (tests)
}

// New creates a new progress tracker
func New(opts Options) *Tracker {
	if opts.Interval == 0 {
		opts.Interval = 10 * time.Second
	}
	if opts.ProgressFunc == nil {
		opts.ProgressFunc = defaultProgressMessage
	}

	return &Tracker{
		operation:      opts.Operation,
		context:        opts.Context,
		timeout:        opts.Timeout,
		interval:       opts.Interval,
		done:           make(chan bool, 1),
		progressFunc:   opts.ProgressFunc,
		suppressOutput: opts.SuppressOutput,
	}
}

// Start begins tracking progress in a separate goroutine
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	t.startTime = time.Now()
	t.mu.Unlock()

	go t.trackProgress(ctx)
}

// Stop stops the progress tracker
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.canceled {
		t.canceled = true
		select {
		case t.done <- true:
		default:
		}
	}
}

// GetElapsed returns the time elapsed since start
func (t *Tracker) GetElapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Since(t.startTime)
}

func (t *Tracker) trackProgress(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.done:
			return
		case <-ticker.C:
			t.updateProgress()
		}
	}
}

func (t *Tracker) updateProgress() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.canceled {
		return
	}

	elapsed := time.Since(t.startTime)
	remaining := t.timeout - elapsed
	if remaining <= 0 {
		return // timeout is enforced by the context
	}

	if t.suppressOutput {
		return
	}

	contextStr := ""
	if t.context != "" {
		contextStr = fmt.Sprintf(" (%s)", t.context)
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s %s%s - %s\n",
		color.CyanString("⏳"),
		t.operation,
		contextStr,
		t.progressFunc(elapsed, remaining))
}

// defaultProgressMessage creates a default progress message
func defaultProgressMessage(elapsed, remaining time.Duration) string {
	elapsedSeconds := int(elapsed.Seconds())
	remainingSeconds := int(remaining.Seconds())

	if remainingSeconds > 60 {
		return fmt.Sprintf("running for %ds, %dm %ds remaining",
			elapsedSeconds,
			remainingSeconds/60,
			remainingSeconds%60)
	}

	return fmt.Sprintf("running for %ds, %ds remaining",
		elapsedSeconds,
		remainingSeconds)
}

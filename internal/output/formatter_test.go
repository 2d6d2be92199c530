package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hookline/hookline/internal/runner"
)

// newTestFormatter returns a colorless formatter writing to buffers
func newTestFormatter() (*Formatter, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	f := New(Options{ColorEnabled: false, Out: out, Err: errOut})
	return f, out, errOut
}

func TestFormatter_Messages(t *testing.T) {
	f, out, errOut := newTestFormatter()

	f.Success("done in %d steps", 3)
	f.Info("loading config")
	f.Error("broken: %s", "details")
	f.Warning("careful")

	assert.Contains(t, out.String(), "✓ done in 3 steps")
	assert.Contains(t, out.String(), "ℹ loading config")
	assert.Contains(t, errOut.String(), "✗ broken: details")
	assert.Contains(t, errOut.String(), "⚠ careful")
}

func TestFormatter_HeaderAndDetail(t *testing.T) {
	f, out, _ := newTestFormatter()

	f.Header("Results")
	f.Subheader("hooks")
	f.Detail("id: %s", "check-yaml")
	f.CodeBlock("line one\nline two")

	got := out.String()
	assert.Contains(t, got, "Results\n───────\n")
	assert.Contains(t, got, "hooks:")
	assert.Contains(t, got, "  id: check-yaml")
	assert.Contains(t, got, "    line one")
	assert.Contains(t, got, "    line two")
}

func TestFormatter_StatusLine(t *testing.T) {
	tests := []struct {
		name       string
		status     runner.Status
		wantStream string
		wantPrefix string
	}{
		{"pass goes to stdout", runner.StatusPass, "out", "✓"},
		{"fail goes to stderr", runner.StatusFail, "err", "✗"},
		{"error goes to stderr", runner.StatusError, "err", "✗"},
		{"skipped warns", runner.StatusSkipped, "err", "⚠"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, out, errOut := newTestFormatter()

			f.StatusLine(runner.RunResult{
				ID:       "check-yaml",
				Status:   tt.status,
				Duration: 12 * time.Millisecond,
			})

			got := out.String()
			if tt.wantStream == "err" {
				got = errOut.String()
			}
			assert.Contains(t, got, tt.wantPrefix)
			assert.Contains(t, got, "check-yaml")
			assert.Contains(t, got, tt.status.String())
			assert.Contains(t, got, "12ms")
		})
	}
}

func TestFormatter_Duration(t *testing.T) {
	f, _, _ := newTestFormatter()

	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500μs"},
		{42 * time.Millisecond, "42ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1.5m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Duration(tt.d))
	}
}

func TestFormatter_FormatFileList(t *testing.T) {
	f, _, _ := newTestFormatter()

	assert.Equal(t, "no files", f.FormatFileList(nil, 3))
	assert.Equal(t, "a.go", f.FormatFileList([]string{"a.go"}, 3))
	assert.Equal(t, "a.go, b.go", f.FormatFileList([]string{"a.go", "b.go"}, 3))
	assert.Equal(t, "a.go, b.go ... and 2 more",
		f.FormatFileList([]string{"a.go", "b.go", "c.go", "d.go"}, 2))
}

func TestFormatter_FormatExecutionStats(t *testing.T) {
	f, _, _ := newTestFormatter()

	stats := f.FormatExecutionStats(&runner.Results{
		Passed:        3,
		Failed:        1,
		Skipped:       2,
		TotalFiles:    7,
		TotalDuration: 2 * time.Second,
	})

	assert.Equal(t, "3 passed, 1 failed, 2 skipped on 7 file(s) in 2.0s", stats)
}

func TestFormatter_FormatExecutionStatsOmitsZeroCounters(t *testing.T) {
	f, _, _ := newTestFormatter()

	stats := f.FormatExecutionStats(&runner.Results{
		Passed:        1,
		TotalDuration: 10 * time.Millisecond,
	})

	assert.Equal(t, "1 passed in 10ms", stats)
}

func TestShouldUseColor(t *testing.T) {
	assert.True(t, shouldUseColor(ColorAlways))
	assert.False(t, shouldUseColor(ColorNever))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, shouldUseColor(ColorAuto))
}

func TestIsCI(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "true")
	assert.True(t, isCI())
}

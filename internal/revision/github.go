// Package revision resolves the latest published revision of a hook
// source hosted on GitHub
package revision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"
)

// ErrGitHubAPIFailed is returned when the GitHub API returns a non-200 status
var ErrGitHubAPIFailed = errors.New("GitHub API request failed")

// ErrNotGitHubSource is returned for repo locations outside github.com
var ErrNotGitHubSource = errors.New("source is not hosted on github.com")

// Release represents a GitHub release
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
}

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client queries the GitHub API for source revisions
type Client struct {
	http    HTTPClient
	version string
}

// NewClient creates a revision client. A nil httpClient uses a default
// with a 15 second timeout.
func NewClient(httpClient HTTPClient, version string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if version == "" {
		version = "dev"
	}
	return &Client{http: httpClient, version: version}
}

// ParseGitHubRepo extracts owner and repo from a source location like
// https://github.com/pre-commit/pre-commit-hooks
func ParseGitHubRepo(location string) (owner, repo string, err error) {
	trimmed := strings.TrimSuffix(location, ".git")
	trimmed = strings.TrimPrefix(trimmed, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	trimmed = strings.TrimPrefix(trimmed, "git@github.com:")

	if !strings.HasPrefix(trimmed, "github.com/") && !strings.Contains(location, "git@github.com:") {
		return "", "", fmt.Errorf("%w: %s", ErrNotGitHubSource, location)
	}
	trimmed = strings.TrimPrefix(trimmed, "github.com/")

	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %s", ErrNotGitHubSource, location)
	}
	return parts[0], parts[1], nil
}

// LatestTag returns the tag name of the latest published release of a
// source location
func (c *Client) LatestTag(ctx context.Context, location string) (string, error) {
	owner, repo, err := ParseGitHubRepo(location)
	if err != nil {
		return "", err
	}

	release, err := c.latestRelease(ctx, owner, repo)
	if err != nil {
		return "", err
	}
	return release.TagName, nil
}

// latestRelease fetches the latest release of a repository
func (c *Client) latestRelease(ctx context.Context, owner, repo string) (*Release, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", owner, repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	userAgent := fmt.Sprintf("hookline/%s (%s/%s)", c.version, runtime.GOOS, runtime.GOARCH)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	if token := getGitHubToken(); token != "" {
		req.Header.Set("Authorization", "token "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: %s", ErrGitHubAPIFailed, formatGitHubError(resp.StatusCode, string(body)))
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &release, nil
}

// getGitHubToken returns a GitHub token from environment variables
func getGitHubToken() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token
	}
	return ""
}

// formatGitHubError formats GitHub API errors with helpful suggestions
func formatGitHubError(statusCode int, body string) string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "status %d: %s", statusCode, body)

	if statusCode == http.StatusForbidden && strings.Contains(body, "rate limit") {
		msg.WriteString("\n\nTo avoid rate limits:")
		msg.WriteString("\n• Set GITHUB_TOKEN with a GitHub personal access token")
		msg.WriteString("\n• Or set GH_TOKEN if using GitHub CLI")
	}

	return msg.String()
}

// Package config provides declarative configuration loading for hookline
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	prerrors "github.com/hookline/hookline/internal/errors"
)

// ConfigFileName is the name of the hook configuration document
const ConfigFileName = ".hookline.yaml"

// EnvFileName is the optional environment overrides file
const EnvFileName = ".hookline.env"

// Source identifies an external tool provider pinned to a revision.
// A Source exclusively owns its hooks.
type Source struct {
	Repo  string `yaml:"repo"`
	Rev   string `yaml:"rev"`
	Hooks []Hook `yaml:"hooks"`
}

// Hook is one invocable check declared under a Source
type Hook struct {
	ID             string   `yaml:"id"`
	Args           []string `yaml:"args,omitempty"`
	AdditionalDeps []string `yaml:"additional_dependencies,omitempty"`
	Files          string   `yaml:"files,omitempty"`
	Exclude        string   `yaml:"exclude,omitempty"`
	Types          []string `yaml:"types,omitempty"`
	Timeout        string   `yaml:"timeout,omitempty"`
}

// TimeoutOr returns the hook's parsed timeout override, or def when the
// hook declares none. Invalid values are rejected at load time.
func (h *Hook) TimeoutOr(def time.Duration) time.Duration {
	if h.Timeout == "" {
		return def
	}
	d, err := time.ParseDuration(h.Timeout)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// Settings holds run-level configuration sourced from the environment
type Settings struct {
	ParallelWorkers int      // HOOKLINE_PARALLEL_WORKERS (0 = auto)
	Timeout         int      // HOOKLINE_TIMEOUT_SECONDS (whole run)
	HookTimeout     int      // HOOKLINE_HOOK_TIMEOUT_SECONDS (per-hook default)
	FailFast        bool     // HOOKLINE_FAIL_FAST
	ColorOutput     bool     // HOOKLINE_COLOR_OUTPUT
	ExcludePatterns []string // HOOKLINE_EXCLUDE_PATTERNS
}

// Config is the loaded, read-only hook configuration
type Config struct {
	Sources  []Source
	Settings Settings

	// Path of the loaded configuration document
	Path string
}

// ConfigError represents a fatal configuration problem. It aborts the
// run before any hook is invoked.
type ConfigError struct {
	Errors []string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// document is the raw on-disk shape of .hookline.yaml
type document struct {
	Repos []Source `yaml:"repos"`
}

// Load reads .hookline.yaml from repoRoot, applies environment
// overrides from .hookline.env and HOOKLINE_* variables, and validates
// the result. Declaration order of sources and hooks is preserved.
func Load(repoRoot string) (*Config, error) {
	path, err := findConfigFile(repoRoot)
	if err != nil {
		return nil, err
	}

	// Environment overrides are optional; absence is not an error.
	envPath := filepath.Join(repoRoot, EnvFileName)
	if _, statErr := os.Stat(envPath); statErr == nil {
		if loadErr := godotenv.Load(envPath); loadErr != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, loadErr)
		}
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is derived from the repository root
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Errors: []string{fmt.Sprintf("malformed document: %v", err)}}
	}

	cfg := &Config{
		Sources:  doc.Repos,
		Settings: loadSettings(),
		Path:     path,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded document and settings, aggregating every
// problem into a single ConfigError.
func (c *Config) Validate() error {
	var errs []string

	if len(c.Sources) == 0 {
		errs = append(errs, "no repos declared")
	}

	for si, src := range c.Sources {
		if src.Repo == "" {
			errs = append(errs, fmt.Sprintf("repos[%d]: repo is required", si))
		}
		if src.Rev == "" {
			errs = append(errs, fmt.Sprintf("repos[%d] (%s): rev is required", si, src.Repo))
		}
		if len(src.Hooks) == 0 {
			errs = append(errs, fmt.Sprintf("repos[%d] (%s): at least one hook is required", si, src.Repo))
		}

		seen := make(map[string]bool, len(src.Hooks))
		for hi, h := range src.Hooks {
			if h.ID == "" {
				errs = append(errs, fmt.Sprintf("repos[%d].hooks[%d]: id is required", si, hi))
				continue
			}
			if seen[h.ID] {
				errs = append(errs, fmt.Sprintf("repos[%d] (%s): duplicate hook id %q", si, src.Repo, h.ID))
			}
			seen[h.ID] = true

			if h.Files != "" && !doublestar.ValidatePattern(h.Files) {
				errs = append(errs, fmt.Sprintf("hook %q: invalid files pattern %q", h.ID, h.Files))
			}
			if h.Exclude != "" && !doublestar.ValidatePattern(h.Exclude) {
				errs = append(errs, fmt.Sprintf("hook %q: invalid exclude pattern %q", h.ID, h.Exclude))
			}
			if h.Timeout != "" {
				if d, err := time.ParseDuration(h.Timeout); err != nil || d <= 0 {
					errs = append(errs, fmt.Sprintf("hook %q: invalid timeout %q", h.ID, h.Timeout))
				}
			}
		}
	}

	if c.Settings.Timeout <= 0 {
		errs = append(errs, "HOOKLINE_TIMEOUT_SECONDS must be greater than 0")
	}
	if c.Settings.HookTimeout <= 0 {
		errs = append(errs, "HOOKLINE_HOOK_TIMEOUT_SECONDS must be greater than 0")
	}
	if c.Settings.ParallelWorkers < 0 {
		errs = append(errs, "HOOKLINE_PARALLEL_WORKERS must be 0 (auto) or positive")
	}
	for i, pattern := range c.Settings.ExcludePatterns {
		if strings.TrimSpace(pattern) == "" {
			errs = append(errs, fmt.Sprintf("exclude pattern at index %d is empty", i))
		}
	}

	if len(errs) > 0 {
		return &ConfigError{Errors: errs}
	}
	return nil
}

// HookIDs returns every declared hook id in declaration order
func (c *Config) HookIDs() []string {
	var ids []string
	for _, src := range c.Sources {
		for _, h := range src.Hooks {
			ids = append(ids, h.ID)
		}
	}
	return ids
}

// findConfigFile locates the configuration document in repoRoot
func findConfigFile(repoRoot string) (string, error) {
	for _, name := range []string{ConfigFileName, ".hookline.yml"} {
		path := filepath.Join(repoRoot, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", prerrors.ErrConfigNotFound
}

// loadSettings reads run-level settings from the environment with defaults
func loadSettings() Settings {
	s := Settings{
		ParallelWorkers: getIntEnv("HOOKLINE_PARALLEL_WORKERS", 0),
		Timeout:         getIntEnv("HOOKLINE_TIMEOUT_SECONDS", 300),
		HookTimeout:     getIntEnv("HOOKLINE_HOOK_TIMEOUT_SECONDS", 60),
		FailFast:        getBoolEnv("HOOKLINE_FAIL_FAST", false),
		ColorOutput:     getBoolEnv("HOOKLINE_COLOR_OUTPUT", true),
	}

	excludes := getStringEnv("HOOKLINE_EXCLUDE_PATTERNS", "vendor/,node_modules/,.git/")
	if excludes != "" {
		s.ExcludePatterns = strings.Split(excludes, ",")
		for i := range s.ExcludePatterns {
			s.ExcludePatterns[i] = strings.TrimSpace(s.ExcludePatterns[i])
		}
	}

	return s
}

// Helper functions for environment variable parsing
func getBoolEnv(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return b
}

func getIntEnv(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

func getStringEnv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	return val
}

package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// Timing values are deliberately conservative: the capture engine talks to
// third-party sites and the scoring engine talks to a rate-limited API, and
// neither retries on failure.
const (
	// DefaultNavigationTimeout bounds how long a page navigation may wait
	// for network quiescence before the engine falls back to the DOM-ready
	// wait strategy. Pages with long-polling or streaming connections never
	// go fully idle, so this must not be treated as a hard failure.
	DefaultNavigationTimeout = 30 * time.Second

	// DefaultSettleDelay is the fixed wait after navigation (and after
	// consent dismissal) before screenshots are taken, to allow late-loading
	// dynamic content to render.
	DefaultSettleDelay = 2 * time.Second

	// DefaultCaptureDelay is the unconditional delay between consecutive
	// (URL, viewport) captures. This is a politeness setting to avoid
	// triggering rate limiting or anti-bot defenses on target sites.
	DefaultCaptureDelay = 2 * time.Second

	// DefaultScoringDelay is the fixed delay between consecutive vision
	// model calls, accommodating external API rate limits.
	DefaultScoringDelay = 1 * time.Second

	// DefaultScoringTimeout bounds a single vision model call. Vision
	// requests carry a full screenshot, so generous bounds are needed.
	DefaultScoringTimeout = 120 * time.Second

	// DefaultModel is the vision-capable model used for scoring when no
	// override is given.
	DefaultModel = "claude-sonnet-4-20250514"

	// DefaultViewport is the viewport used when none are requested.
	DefaultViewport = "desktop"

	// DefaultIndexSize caps the rolling index at the most recent N runs.
	DefaultIndexSize = 50

	// APIKeyEnv is the environment variable holding the vision model API key.
	APIKeyEnv = "ANTHROPIC_API_KEY"

	// AppName is the application name used for XDG directory paths.
	AppName = "uibench"
)

// Config holds all configuration options for UIBench.
// This struct is populated from CLI flags and the optional config file and
// passed through the application via dependency injection rather than
// global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CaptureConfig, ScoringConfig) for simplicity. The number of
// options is manageable, and nesting would add complexity without
// significant benefit.
type Config struct {
	// URLs is the list of target page URLs to analyze.
	// Bare domains are normalized to https:// by NormalizeURL.
	URLs []string

	// Viewports is the list of named viewport profiles to capture per URL.
	// Defaults to a single desktop viewport.
	Viewports []string

	// PresetName is the rubric preset to score against.
	// Unknown names degrade to the built-in default preset.
	PresetName string

	// Compare enables the cross-URL comparison pass.
	// Requires at least two target URLs.
	Compare bool

	// APIKey is the vision model API key. Its absence is a configuration
	// error that aborts the run before any capture work begins.
	APIKey string

	// Model is the vision model identifier used for scoring.
	Model string

	// OutputDir is the directory for screenshots, reports, and metadata.
	// Defaults to the XDG data directory.
	OutputDir string

	// PresetDir is an extra directory searched for preset files, before
	// the default search path.
	PresetDir string

	// NavigationTimeout bounds each page navigation's network-idle wait.
	NavigationTimeout time.Duration

	// SettleDelay is the fixed wait before screenshots are taken.
	SettleDelay time.Duration

	// CaptureDelay is the unconditional delay between consecutive captures.
	CaptureDelay time.Duration

	// ScoringDelay is the fixed delay between consecutive model calls.
	ScoringDelay time.Duration

	// ScoringTimeout bounds a single vision model call.
	ScoringTimeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// Summary renders a Markdown run summary to stdout after the run.
	Summary bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .uibench in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds per-URL overrides loaded from the config file.
	SiteConfigs *File
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (timeouts, delays, model
// identifier). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Viewports:         []string{DefaultViewport},
		Model:             DefaultModel,
		OutputDir:         XDGDataDir(),
		NavigationTimeout: DefaultNavigationTimeout,
		SettleDelay:       DefaultSettleDelay,
		CaptureDelay:      DefaultCaptureDelay,
		ScoringDelay:      DefaultScoringDelay,
		ScoringTimeout:    DefaultScoringTimeout,
		APIKey:            os.Getenv(APIKeyEnv),
	}
}

// XDGDataDir returns the XDG data directory for UIBench.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/uibench
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for UIBench.
// On Linux: ~/.config/uibench
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// IndexPath returns the rolling index file path inside the output directory.
func (c *Config) IndexPath() string {
	return filepath.Join(c.OutputDir, "index.json")
}

// ScreenshotDir returns the screenshot directory for a run.
func (c *Config) ScreenshotDir(runID string) string {
	return filepath.Join(c.OutputDir, "screenshots", runID)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any capture work, so a
// missing API key never costs a browser launch.
func (c *Config) Validate() error {
	if len(c.URLs) == 0 {
		return ErrNoTarget
	}

	// The scoring engine cannot run without a credential, and discovering
	// that after capture would waste a whole browser batch.
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}

	if c.Compare && len(c.URLs) < 2 {
		return ErrCompareNeedsTwo
	}

	if len(c.Viewports) == 0 {
		return ErrNoViewports
	}

	if c.NavigationTimeout <= 0 || c.ScoringTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.CaptureDelay < 0 || c.ScoringDelay < 0 || c.SettleDelay < 0 {
		return ErrInvalidDelay
	}

	return nil
}

// NormalizeURL validates a target URL and prefixes bare domains with https.
// It returns an error for targets that cannot name a web page at all.
func NormalizeURL(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", ErrNoTarget
	}

	if !strings.Contains(target, "://") {
		target = "https://" + target
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrUnsupportedScheme
	}
	if u.Host == "" {
		return "", ErrInvalidURL
	}

	return u.String(), nil
}

// ParseViewports splits a comma-separated viewport list into names.
// Empty segments are dropped; an empty input yields the default viewport.
func ParseViewports(list string) []string {
	parts := strings.Split(list, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			names = append(names, p)
		}
	}
	if len(names) == 0 {
		return []string{DefaultViewport}
	}
	return names
}

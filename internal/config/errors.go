package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. All of them are fatal before any side effects:
// the pipeline refuses to start rather than failing mid-run.
var (
	// ErrNoTarget is returned when no target URL is specified.
	ErrNoTarget = errors.New("no target specified: provide one or more URLs")

	// ErrMissingAPIKey is returned when the vision model API key is absent.
	// Scoring cannot run without it, so the run aborts before any capture.
	ErrMissingAPIKey = errors.New("missing API key: set " + APIKeyEnv)

	// ErrCompareNeedsTwo is returned when comparison mode is requested
	// with fewer than two target URLs.
	ErrCompareNeedsTwo = errors.New("comparison mode requires at least two URLs")

	// ErrNoViewports is returned when the viewport list is empty.
	ErrNoViewports = errors.New("no viewports specified")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	// A zero or negative timeout would cause immediate failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidDelay is returned when a pacing delay is negative.
	// Use 0 to disable a delay, not a negative value.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrUnsupportedScheme is returned for target URLs that are neither
	// http nor https.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme: only http and https are supported")

	// ErrInvalidURL is returned for targets that parse but name no host.
	ErrInvalidURL = errors.New("invalid URL: no host")
)

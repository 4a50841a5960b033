// Package log provides secure logging functionality with automatic
// sanitization of sensitive information, built on top of the standard slog
// package.
//
// UIBench handles two kinds of secrets that must never appear in logs: the
// vision model API key and per-site cookies/headers from the config file.
// The SecureHandler masks attribute values whose keys or shapes look like
// credentials before the record reaches the underlying handler, so even
// verbose debug logs are safe to share.
//
// Usage:
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log

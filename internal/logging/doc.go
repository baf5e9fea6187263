// Package logging assembles structured slog loggers and formatting helpers
// used across stashsync components.
//
// It centralizes level and format plumbing, exposes typed attribute helpers so
// components log with consistent field names, and provides redaction-aware
// previews for request and response bodies that may carry API keys. A no-op
// logger is available for tests and wiring code that cannot fail.
package logging

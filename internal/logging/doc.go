// Package logging assembles structured slog loggers used across mvvid.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so relocation code automatically
// tags log lines with the run's correlation ID and content type. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
//
// Log output is diagnostic. Operator-facing progress (tables, status lines)
// is rendered by the CLI and never routed through these loggers.
package logging

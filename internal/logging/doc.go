// Package logging assembles structured slog loggers and formatting helpers used
// across crate.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so service code can tag log lines with
// the running command and a correlation ID. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits the same field names (component, event_type, decision_type, ...).
package logging

// Package logging assembles the structured slog loggers used across
// mediashelf components.
//
// It owns the console/JSON handlers, centralizes level plumbing, and exposes
// attribute helpers so pipeline code tags log lines uniformly. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging

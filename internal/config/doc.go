// Package config loads and validates the mediashelf TOML configuration.
//
// The configuration is read once at startup into an immutable Config that is
// threaded explicitly through the classifier, planner, and executor. Path
// fields are expanded (~ resolution, absolute cleaning) during load so the
// rest of the system only ever sees normalized absolute paths.
package config

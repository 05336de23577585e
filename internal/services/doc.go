// Package services defines shared error utilities consumed across the
// organizing pipeline.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that tag failures for
//     consistent classification (fatal vs per-entry).
//   - The fatality policy: only conditions that compromise the journal's
//     trustworthiness (lock contention, unparseable journal) abort a run.
//
// Use these helpers when wiring new pipeline logic so error handling stays
// uniform across scan, apply, and rollback.
package services

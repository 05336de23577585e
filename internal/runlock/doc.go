// Package runlock enforces single-writer access to the journal and the
// destination tree.
//
// Apply and rollback runs take an exclusive flock-backed advisory lock before
// touching storage and fail fast with services.ErrConcurrentRun when another
// process holds it, so two runs can never interleave journal appends.
package runlock

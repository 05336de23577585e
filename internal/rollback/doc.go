// Package rollback undoes the moves recorded in an apply journal. Operations
// are reconstructed from their journal records and reversed newest-first so
// files moved later are restored before the files they may have displaced.
// The journal itself is read-only input and is never modified.
package rollback

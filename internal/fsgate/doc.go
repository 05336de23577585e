// Package fsgate is the only component that touches storage directly.
//
// It abstracts move/rename, existence and emptiness checks, and size reads
// behind a small Gateway interface so the executor and rollback engine stay
// testable. Moves never overwrite: an occupied destination fails with
// ErrDestinationExists. Cross-device moves fall back to a verified copy
// (SHA-256 and size check) followed by source removal.
package fsgate

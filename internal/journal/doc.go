// Package journal persists the append-only record of attempted move
// operations, one JSON object per line.
//
// The journal is the sole source of truth for rollback. It is never rewritten
// in place: the writer only appends, and every append is synced to disk
// before the corresponding filesystem move runs (begun records) or before
// control returns to the caller (committed/failed records). A crash between
// any two records therefore leaves at most one in-flight operation, which the
// rollback engine resolves from the state of the filesystem.
//
// The reader tolerates a trailing partial line (a crash mid-append) but
// fails with services.ErrCorruptJournal on malformed content anywhere else.
package journal

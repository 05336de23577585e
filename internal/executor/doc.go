// Package executor applies a move plan through the filesystem gateway while
// journaling every attempted operation.
//
// Each entry walks pending -> begun -> committed | failed. The begun record
// is durable on disk before the gateway move runs; the terminal record is
// durable before the next entry starts. A failure on one entry is recorded
// and skipped, never aborting the run. After all entries are processed the
// executor optionally prunes source directories emptied by committed moves,
// innermost-first, treating remaining contents as expected rather than an
// error.
package executor

// Package report holds the plain data structures backing status output.
//
// The core never formats text: renderers (table, JSON, CSV) live in the CLI
// layer and consume these structures.
package report

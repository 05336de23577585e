// Package organize wires the scanning, classification, planning, execution
// and rollback pieces into one pipeline. The CLI talks to this package only.
package organize

// Package media models candidate files and scans the inbox for them.
//
// Scan results are sorted by lowercased path so downstream planning is
// deterministic regardless of directory iteration order.
package media

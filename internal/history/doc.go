// Package history records apply and rollback runs in a small SQLite database
// so past activity can be inspected after the fact. The store keeps a bounded
// number of rows and is safe to delete between runs.
package history

// Package store provides the SQLite-backed key-value store that holds the
// client's session between invocations.
//
// It stands in for the browser's persistent storage: a flat namespace of
// string keys mapping to string values (JSON for structured values). The
// session package is its only writer.
//
// # Database Configuration
//
//   - WAL mode: readers do not block the single writer
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//
// The database file is created with 0600 permissions on first open because it
// holds bearer tokens.
package store

// Package storage defines persistence contracts for saved games.
//
// A save is an opaque JSON snapshot of a session's aggregate state plus the
// metadata needed to list and restore it. Implementations (in-memory and
// SQLite) live in subpackages.
//
// Common error types:
//   - ErrNotFound: requested save is missing
package storage

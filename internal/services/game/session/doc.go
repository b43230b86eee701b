// Package session runs one game session on top of the aggregate engine.
//
// The aggregate transition is pure and single-threaded by contract; Session
// serializes dispatches, keeps a bounded undo history of earlier states, and
// persists snapshots through a storage.SaveStore. Manager hands out sessions
// by id for the transports.
package session

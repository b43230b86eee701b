// Package sqlite implements the saved-game store on SQLite.
//
// Saves are stored as one row each, keyed by save id and indexed by session
// and creation time. The schema ships as embedded migrations applied on Open.
package sqlite

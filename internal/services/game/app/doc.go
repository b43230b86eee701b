// Package server composes the game gRPC entrypoint.
//
// It opens the save store, builds the session manager around a configured
// aggregate engine, and serves GameService plus gRPC health until the
// context ends.
package server

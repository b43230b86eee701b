// Package service runs the boothill MCP server.
//
// The server dials the game gRPC service, registers the session tools from
// the domain package, and serves them over stdio until the context ends.
package service

// Package api holds the transports that expose game sessions.
//
// Subpackages:
//   - grpc/game: GameService (dispatch, state, undo, save games) and its client
//   - grpc/metadata: request metadata helpers and interceptors
//   - grpc/interceptors: access logging
//
// The MCP bridge in internal/services/mcp calls GameService through the client.
package api

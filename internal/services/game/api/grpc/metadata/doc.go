// Package metadata provides the gRPC request headers understood by the game
// service.
//
// # Header Constants
//
//   - RequestIDHeader: correlates logs and spans across calls.
//   - InvocationIDHeader: tracks MCP tool invocations.
//   - SessionIDHeader: routes a call when the request body names no session.
//   - LocaleHeader: selects the language of localized error details.
package metadata

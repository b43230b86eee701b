// Package domain defines the MCP tools that drive a game session over gRPC.
//
// Each tool resolves the target session, attaches correlation metadata to the
// outgoing call, and echoes the request and invocation ids back in the tool
// result meta so orchestrators can line up their logs with the game server.
package domain

// Package timeouts defines the timeouts shared across boothill binaries.
package timeouts

import "time"

// GRPCDial caps the wait for a gRPC peer to become healthy.
const GRPCDial = 5 * time.Second

// GRPCRequest caps a single gRPC call made on behalf of an MCP tool.
const GRPCRequest = 5 * time.Second

// Shutdown limits how long a binary waits for telemetry and in-flight calls
// during graceful shutdown.
const Shutdown = 5 * time.Second

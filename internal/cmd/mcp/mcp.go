// Package mcp parses MCP command flags and starts the stdio bridge.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/boothill/internal/platform/cmd"
	"github.com/louisbranch/boothill/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Addr      string `env:"GAME_ADDR"      envDefault:"localhost:8082"`
	SessionID string `env:"MCP_SESSION_ID" envDefault:"default"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "game server address")
	fs.StringVar(&cfg.SessionID, "session", cfg.SessionID, "session used when a tool call names none")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return service.Run(ctx, service.Config{GRPCAddr: cfg.Addr, SessionID: cfg.SessionID})
	})
}

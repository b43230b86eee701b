package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"

	platformgrpc "github.com/louisbranch/boothill/internal/platform/grpc"
	"github.com/louisbranch/boothill/internal/platform/timeouts"
	gamegrpc "github.com/louisbranch/boothill/internal/services/game/api/grpc/game"
	"github.com/louisbranch/boothill/internal/services/mcp/domain"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Boot Hill MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
	// DefaultSessionID is used when neither the config nor a tool names a session.
	DefaultSessionID = "default"
)

// Config configures the MCP server.
type Config struct {
	// GRPCAddr is the game server address.
	GRPCAddr string
	// SessionID is the session tools fall back to when their input omits one.
	SessionID string
}

// Server hosts the MCP tools and owns the game connection.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
	sessionID string
}

type toolRegistration struct {
	register func(*mcp.Server)
}

func newToolRegistration[I any, O any](tool *mcp.Tool, handler mcp.ToolHandlerFor[I, O]) toolRegistration {
	return toolRegistration{
		register: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}

// newServer builds the MCP server around client. conn may be nil in tests.
func newServer(client domain.GameClient, conn *grpc.ClientConn, sessionID string) *Server {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		sessionID = DefaultSessionID
	}
	server := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil),
		conn:      conn,
		sessionID: sessionID,
	}
	for _, registration := range toolRegistrations(client, server.defaultSession) {
		registration.register(server.mcpServer)
	}
	return server
}

func toolRegistrations(client domain.GameClient, session domain.SessionResolver) []toolRegistration {
	return []toolRegistration{
		newToolRegistration(domain.DispatchActionTool(), domain.DispatchActionHandler(client, session)),
		newToolRegistration(domain.GetStateTool(), domain.GetStateHandler(client, session)),
		newToolRegistration(domain.UndoTool(), domain.UndoHandler(client, session)),
		newToolRegistration(domain.SaveGameTool(), domain.SaveGameHandler(client, session)),
		newToolRegistration(domain.LoadGameTool(), domain.LoadGameHandler(client, session)),
		newToolRegistration(domain.ListSavesTool(), domain.ListSavesHandler(client, session)),
		newToolRegistration(domain.ClassifyActionTool(), domain.ClassifyActionHandler()),
	}
}

func (s *Server) defaultSession() string {
	if s == nil {
		return ""
	}
	return s.sessionID
}

// Close releases the game connection.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}

// Run dials the game server and serves MCP over stdio until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return runWithTransport(ctx, cfg, &mcp.StdioTransport{})
}

// runWithTransport creates a server and serves it over the provided transport.
func runWithTransport(ctx context.Context, cfg Config, transport mcp.Transport) error {
	if ctx == nil {
		ctx = context.Background()
	}
	conn, err := dialGameGRPC(ctx, cfg.GRPCAddr)
	if err != nil {
		return err
	}
	server := newServer(gamegrpc.NewClient(conn), conn, cfg.SessionID)
	return server.serveWithTransport(ctx, transport)
}

// serveWithTransport runs the MCP server and closes the game connection on
// every exit path.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close gRPC connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close gRPC connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

func dialGameGRPC(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("game server address is required")
	}
	logf := func(format string, args ...any) {
		log.Printf("game %s", fmt.Sprintf(format, args...))
	}
	conn, err := platformgrpc.Connect(ctx, addr, timeouts.GRPCDial, logf)
	if err != nil {
		var dialErr *platformgrpc.DialError
		if errors.As(err, &dialErr) {
			if dialErr.Stage == platformgrpc.DialStageConnect {
				return nil, fmt.Errorf("connect to game server at %s: %w", addr, dialErr.Err)
			}
			return nil, fmt.Errorf("game server at %s is not healthy: %w", addr, dialErr.Err)
		}
		return nil, err
	}
	return conn, nil
}

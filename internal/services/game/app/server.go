package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	gamegrpc "github.com/louisbranch/boothill/internal/services/game/api/grpc/game"
	"github.com/louisbranch/boothill/internal/services/game/api/grpc/interceptors"
	grpcmeta "github.com/louisbranch/boothill/internal/services/game/api/grpc/metadata"
	"github.com/louisbranch/boothill/internal/services/game/session"
	"github.com/louisbranch/boothill/internal/services/game/storage"
	"github.com/louisbranch/boothill/internal/services/game/storage/memory"
	storagesqlite "github.com/louisbranch/boothill/internal/services/game/storage/sqlite"
)

// Server hosts the game gRPC service.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      storage.SaveStore
	sessions   *session.Manager
}

// New creates a game server listening on port.
func New(port int, opts Options) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port), opts)
}

// NewWithAddr creates a game server listening on addr.
func NewWithAddr(addr string, opts Options) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	store, err := openStore(opts.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}
	return newServer(listener, store, opts), nil
}

func newServer(listener net.Listener, store storage.SaveStore, opts Options) *Server {
	cfg := opts.sessionConfig()
	cfg.Store = store
	sessions := session.NewManager(cfg)

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpcmeta.UnaryServerInterceptor(nil),
			interceptors.AccessLogInterceptor(nil),
		),
	)
	gamegrpc.RegisterGameServiceServer(grpcServer, gamegrpc.NewService(sessions))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(gamegrpc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
		sessions:   sessions,
	}
}

// Addr returns the listener address for the game server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a game server on port until the context ends.
func Run(ctx context.Context, port int, opts Options) error {
	srv, err := New(port, opts)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// RunWithAddr creates and serves a game server on addr until the context ends.
func RunWithAddr(ctx context.Context, addr string, opts Options) error {
	srv, err := NewWithAddr(addr, opts)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// Serve starts the game server and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.closeStore()

	log.Printf("game server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	handleErr := func(err error) error {
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.grpcServer.GracefulStop()
		err := <-serveErr
		return handleErr(err)
	case err := <-serveErr:
		return handleErr(err)
	}
}

// openStore opens the SQLite save store at path, or an in-memory store when
// path is empty.
func openStore(path string) (storage.SaveStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		log.Printf("game save store: in memory")
		return memory.New(), nil
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	store, err := storagesqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create storage dir: %w", err)
		}
	}
	return nil
}

func (s *Server) closeStore() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close save store: %v", err)
	}
}

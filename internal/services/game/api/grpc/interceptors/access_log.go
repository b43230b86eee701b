// Package interceptors holds unary server interceptors for the game service.
package interceptors

import (
	"context"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	gamegrpc "github.com/louisbranch/boothill/internal/services/game/api/grpc/game"
	grpcmeta "github.com/louisbranch/boothill/internal/services/game/api/grpc/metadata"
)

// AccessLogInterceptor logs one line per unary call handled by the game
// service. logf defaults to log.Printf.
func AccessLogInterceptor(logf func(string, ...any)) grpc.UnaryServerInterceptor {
	if logf == nil {
		logf = log.Printf
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		started := time.Now()
		sessionID := extractSessionID(ctx, req)
		if sessionID != "" {
			trace.SpanFromContext(ctx).SetAttributes(attribute.String("session.id", sessionID))
		}

		resp, err := handler(ctx, req)

		logf("grpc %s kind=%s session=%s code=%s duration=%s request_id=%s",
			info.FullMethod,
			classifyMethodKind(info.FullMethod),
			sessionID,
			status.Code(err),
			time.Since(started).Round(time.Microsecond),
			grpcmeta.RequestIDFromContext(ctx),
		)
		return resp, err
	}
}

// extractSessionID reads the session from the request body, falling back to
// the routing header.
func extractSessionID(ctx context.Context, req any) string {
	if st, ok := req.(*structpb.Struct); ok {
		if id := strings.TrimSpace(st.GetFields()["sessionId"].GetStringValue()); id != "" {
			return id
		}
	}
	return grpcmeta.SessionIDFromContext(ctx)
}

func classifyMethodKind(fullMethod string) string {
	switch fullMethod {
	case gamegrpc.GetStateMethod, gamegrpc.ListSavesMethod:
		return "read"
	default:
		return "write"
	}
}

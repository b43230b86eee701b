package game

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "boothill.game.v1.GameService"

// Full method names.
const (
	DispatchMethod  = "/" + ServiceName + "/Dispatch"
	GetStateMethod  = "/" + ServiceName + "/GetState"
	SaveMethod      = "/" + ServiceName + "/Save"
	LoadMethod      = "/" + ServiceName + "/Load"
	ListSavesMethod = "/" + ServiceName + "/ListSaves"
	UndoMethod      = "/" + ServiceName + "/Undo"
)

// GameServiceServer is the server API for GameService.
type GameServiceServer interface {
	Dispatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetState(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Save(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Load(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSaves(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Undo(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterGameServiceServer registers srv on s.
func RegisterGameServiceServer(s grpc.ServiceRegistrar, srv GameServiceServer) {
	s.RegisterService(&GameServiceDesc, srv)
}

type unaryMethod func(GameServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GameServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GameServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// GameServiceDesc is the grpc.ServiceDesc for GameService.
var GameServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GameServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Dispatch", Handler: unaryHandler(DispatchMethod, GameServiceServer.Dispatch)},
		{MethodName: "GetState", Handler: unaryHandler(GetStateMethod, GameServiceServer.GetState)},
		{MethodName: "Save", Handler: unaryHandler(SaveMethod, GameServiceServer.Save)},
		{MethodName: "Load", Handler: unaryHandler(LoadMethod, GameServiceServer.Load)},
		{MethodName: "ListSaves", Handler: unaryHandler(ListSavesMethod, GameServiceServer.ListSaves)},
		{MethodName: "Undo", Handler: unaryHandler(UndoMethod, GameServiceServer.Undo)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "boothill/game/v1/game.proto",
}

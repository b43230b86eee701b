package game

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	apperrors "github.com/louisbranch/boothill/internal/platform/errors"
	grpcmeta "github.com/louisbranch/boothill/internal/services/game/api/grpc/metadata"
	"github.com/louisbranch/boothill/internal/services/game/domain/aggregate"
	"github.com/louisbranch/boothill/internal/services/game/session"
)

// Service implements GameServiceServer over a session manager.
type Service struct {
	sessions *session.Manager
}

var _ GameServiceServer = (*Service)(nil)

// NewService creates a GameService backed by sessions.
func NewService(sessions *session.Manager) *Service {
	return &Service{sessions: sessions}
}

func (s *Service) session(ctx context.Context, req *structpb.Struct) (*session.Session, error) {
	id := stringField(req, fieldSessionID)
	if id == "" {
		id = grpcmeta.SessionIDFromContext(ctx)
	}
	return s.sessions.Get(id)
}

// Dispatch applies one action and returns the resulting state.
func (s *Service) Dispatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := s.session(ctx, req)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	value, ok := req.GetFields()[fieldAction]
	if !ok {
		return nil, handleError(ctx, apperrors.New(apperrors.CodeActionTypeRequired, "action is required"))
	}
	a, err := actionFromStruct(value)
	if err != nil {
		return nil, handleError(ctx, apperrors.Wrap(apperrors.CodePayloadInvalid, err.Error(), err))
	}

	result, err := sess.Step(ctx, a)
	if err != nil {
		return nil, dispatchError(ctx, err)
	}
	return stateResponse(ctx, result.State, map[string]*structpb.Value{
		fieldChanged: structpb.NewBoolValue(result.Changed),
	})
}

// GetState returns the current state of a session.
func (s *Service) GetState(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := s.session(ctx, req)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	return stateResponse(ctx, sess.State(), nil)
}

// Save stores a snapshot of the session.
func (s *Service) Save(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := s.session(ctx, req)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	save, err := sess.Save(ctx, stringField(req, fieldName))
	if err != nil {
		return nil, handleError(ctx, err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{fieldSave: saveToValue(save)}}, nil
}

// Load replaces the session state with a saved game.
func (s *Service) Load(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := s.session(ctx, req)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	saveID := stringField(req, fieldSaveID)
	if saveID == "" {
		return nil, handleError(ctx, apperrors.New(apperrors.CodeSaveIDRequired, "save id is required"))
	}
	state, err := sess.Load(ctx, saveID)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	return stateResponse(ctx, state, nil)
}

// ListSaves lists a session's saves, newest first.
func (s *Service) ListSaves(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := s.session(ctx, req)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	saves, err := sess.ListSaves(ctx, intField(req, fieldLimit))
	if err != nil {
		return nil, handleError(ctx, err)
	}
	values := make([]*structpb.Value, 0, len(saves))
	for _, save := range saves {
		values = append(values, saveToValue(save))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldSaves: structpb.NewListValue(&structpb.ListValue{Values: values}),
	}}, nil
}

// Undo restores the state before the last change.
func (s *Service) Undo(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := s.session(ctx, req)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	state, err := sess.Undo(ctx)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	return stateResponse(ctx, state, nil)
}

func stateResponse(ctx context.Context, state *aggregate.State, extra map[string]*structpb.Value) (*structpb.Struct, error) {
	value, err := stateToValue(state)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	fields := map[string]*structpb.Value{fieldState: value}
	for key, v := range extra {
		fields[key] = v
	}
	return &structpb.Struct{Fields: fields}, nil
}

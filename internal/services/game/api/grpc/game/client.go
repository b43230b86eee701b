package game

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/louisbranch/boothill/internal/services/game/domain/action"
)

// Client calls GameService over a client connection.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// DispatchResult is the decoded Dispatch response.
type DispatchResult struct {
	State   map[string]any `json:"state"`
	Changed bool           `json:"changed"`
}

func (c *Client) call(ctx context.Context, method string, fields map[string]*structpb.Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in := &structpb.Struct{Fields: fields}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func sessionFields(sessionID string) map[string]*structpb.Value {
	return map[string]*structpb.Value{fieldSessionID: structpb.NewStringValue(sessionID)}
}

// Dispatch applies a to the session.
func (c *Client) Dispatch(ctx context.Context, sessionID string, a action.Action, opts ...grpc.CallOption) (DispatchResult, error) {
	encoded, err := actionToStruct(a)
	if err != nil {
		return DispatchResult{}, err
	}
	fields := sessionFields(sessionID)
	fields[fieldAction] = structpb.NewStructValue(encoded)
	out, err := c.call(ctx, DispatchMethod, fields, opts...)
	if err != nil {
		return DispatchResult{}, err
	}
	return DispatchResult{
		State:   structToMap(out.GetFields()[fieldState].GetStructValue()),
		Changed: out.GetFields()[fieldChanged].GetBoolValue(),
	}, nil
}

// GetState returns the session state as decoded JSON.
func (c *Client) GetState(ctx context.Context, sessionID string, opts ...grpc.CallOption) (map[string]any, error) {
	return c.stateCall(ctx, GetStateMethod, sessionFields(sessionID), opts...)
}

// Undo restores the previous state.
func (c *Client) Undo(ctx context.Context, sessionID string, opts ...grpc.CallOption) (map[string]any, error) {
	return c.stateCall(ctx, UndoMethod, sessionFields(sessionID), opts...)
}

// Load replaces the session state with a saved game.
func (c *Client) Load(ctx context.Context, sessionID, saveID string, opts ...grpc.CallOption) (map[string]any, error) {
	fields := sessionFields(sessionID)
	fields[fieldSaveID] = structpb.NewStringValue(saveID)
	return c.stateCall(ctx, LoadMethod, fields, opts...)
}

// Save stores a snapshot named name.
func (c *Client) Save(ctx context.Context, sessionID, name string, opts ...grpc.CallOption) (SaveInfo, error) {
	fields := sessionFields(sessionID)
	fields[fieldName] = structpb.NewStringValue(name)
	out, err := c.call(ctx, SaveMethod, fields, opts...)
	if err != nil {
		return SaveInfo{}, err
	}
	return saveInfoFromValue(out.GetFields()[fieldSave])
}

// ListSaves lists saves newest first.
func (c *Client) ListSaves(ctx context.Context, sessionID string, limit int, opts ...grpc.CallOption) ([]SaveInfo, error) {
	fields := sessionFields(sessionID)
	fields[fieldLimit] = structpb.NewNumberValue(float64(limit))
	out, err := c.call(ctx, ListSavesMethod, fields, opts...)
	if err != nil {
		return nil, err
	}
	values := out.GetFields()[fieldSaves].GetListValue().GetValues()
	saves := make([]SaveInfo, 0, len(values))
	for _, value := range values {
		info, err := saveInfoFromValue(value)
		if err != nil {
			return nil, fmt.Errorf("decode save: %w", err)
		}
		saves = append(saves, info)
	}
	return saves, nil
}

func (c *Client) stateCall(ctx context.Context, method string, fields map[string]*structpb.Value, opts ...grpc.CallOption) (map[string]any, error) {
	out, err := c.call(ctx, method, fields, opts...)
	if err != nil {
		return nil, err
	}
	return structToMap(out.GetFields()[fieldState].GetStructValue()), nil
}

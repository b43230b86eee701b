package game

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/louisbranch/boothill/internal/services/game/domain/action"
	"github.com/louisbranch/boothill/internal/services/game/domain/aggregate"
	"github.com/louisbranch/boothill/internal/services/game/storage"
)

// Request and response field names.
const (
	fieldSessionID = "sessionId"
	fieldAction    = "action"
	fieldType      = "type"
	fieldPayload   = "payload"
	fieldName      = "name"
	fieldSaveID    = "saveId"
	fieldLimit     = "limit"
	fieldState     = "state"
	fieldChanged   = "changed"
	fieldSave      = "save"
	fieldSaves     = "saves"
)

func structToMap(input *structpb.Struct) map[string]any {
	if input == nil {
		return nil
	}
	return input.AsMap()
}

func structFromJSON(data []byte) (*structpb.Struct, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return structpb.NewStruct(payload)
}

func stringField(req *structpb.Struct, key string) string {
	return strings.TrimSpace(req.GetFields()[key].GetStringValue())
}

func intField(req *structpb.Struct, key string) int {
	return int(req.GetFields()[key].GetNumberValue())
}

// actionFromStruct reads {"type": ..., "payload": ...}. A missing payload
// stays absent; an explicit null is kept as null.
func actionFromStruct(value *structpb.Value) (action.Action, error) {
	fields := value.GetStructValue().GetFields()
	if fields == nil {
		return action.Action{}, fmt.Errorf("action must be an object")
	}
	a := action.Action{Type: action.Type(fields[fieldType].GetStringValue())}
	payload, ok := fields[fieldPayload]
	if !ok {
		return a, nil
	}
	data, err := json.Marshal(payload.AsInterface())
	if err != nil {
		return action.Action{}, fmt.Errorf("encode payload: %w", err)
	}
	a.Payload = data
	return a, nil
}

// actionToStruct is the client-side inverse of actionFromStruct.
func actionToStruct(a action.Action) (*structpb.Struct, error) {
	fields := map[string]any{fieldType: string(a.Type)}
	if a.HasPayload() {
		var payload any
		if err := json.Unmarshal(a.Payload, &payload); err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
		fields[fieldPayload] = payload
	}
	return structpb.NewStruct(fields)
}

func stateToValue(state *aggregate.State) (*structpb.Value, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	st, err := structFromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("convert state: %w", err)
	}
	return structpb.NewStructValue(st), nil
}

func saveToValue(save storage.Save) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
		"id":        structpb.NewStringValue(save.ID),
		"sessionId": structpb.NewStringValue(save.SessionID),
		"name":      structpb.NewStringValue(save.Name),
		"createdAt": structpb.NewStringValue(save.CreatedAt.UTC().Format(time.RFC3339Nano)),
	}})
}

// SaveInfo describes a saved game without its state.
type SaveInfo struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func saveInfoFromValue(value *structpb.Value) (SaveInfo, error) {
	fields := value.GetStructValue().GetFields()
	info := SaveInfo{
		ID:        fields["id"].GetStringValue(),
		SessionID: fields["sessionId"].GetStringValue(),
		Name:      fields["name"].GetStringValue(),
	}
	if raw := fields["createdAt"].GetStringValue(); raw != "" {
		createdAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return SaveInfo{}, fmt.Errorf("parse createdAt: %w", err)
		}
		info.CreatedAt = createdAt
	}
	return info, nil
}

package action

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Type identifies what an action asks the engine to change.
type Type string

// String returns the raw type name.
func (t Type) String() string {
	return string(t)
}

// Action is a tagged description of an intended state change.
//
// Payload holds the raw JSON payload. A nil Payload means the action carries no
// payload; the literal `null` is an explicit null and is meaningful for some
// actions (for example clearing the opponent).
type Action struct {
	Type    Type            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

var (
	// ErrTypeRequired indicates an action without a type.
	ErrTypeRequired = errors.New("action type is required")
	// ErrPayloadRequired indicates an action that needs a payload but has none.
	ErrPayloadRequired = errors.New("action payload is required")
)

var nullPayload = json.RawMessage("null")

// New builds an action, encoding payload as JSON. A nil payload produces an
// action without payload.
func New(t Type, payload any) (Action, error) {
	if t == "" {
		return Action{}, ErrTypeRequired
	}
	if payload == nil {
		return Action{Type: t}, nil
	}
	if raw, ok := payload.(json.RawMessage); ok {
		return Action{Type: t, Payload: raw}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Action{}, fmt.Errorf("encode %s payload: %w", t, err)
	}
	return Action{Type: t, Payload: data}, nil
}

// Null builds an action whose payload is an explicit JSON null.
func Null(t Type) Action {
	return Action{Type: t, Payload: nullPayload}
}

// HasPayload reports whether the action carries a payload, including an
// explicit null.
func (a Action) HasPayload() bool {
	return len(bytes.TrimSpace(a.Payload)) > 0
}

// IsNull reports whether the payload is absent or an explicit JSON null.
func (a Action) IsNull() bool {
	trimmed := bytes.TrimSpace(a.Payload)
	return len(trimmed) == 0 || bytes.Equal(trimmed, nullPayload)
}

// DecodePayload decodes the action payload into T.
func DecodePayload[T any](a Action) (T, error) {
	var out T
	if !a.HasPayload() {
		return out, ErrPayloadRequired
	}
	if err := json.Unmarshal(a.Payload, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w", a.Type, err)
	}
	return out, nil
}

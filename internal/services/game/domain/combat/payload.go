package combat

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/louisbranch/boothill/internal/services/game/domain/action"
)

// UpdatePayload is the UPDATE_COMBAT_STATE payload. Only supplied fields
// change. CurrentTurn accepts every form CoerceTurn understands.
type UpdatePayload struct {
	IsActive            *bool           `json:"isActive,omitempty"`
	CombatType          *Type           `json:"combatType,omitempty"`
	Winner              *string         `json:"winner,omitempty"`
	Participants        []Participant   `json:"participants,omitempty"`
	Rounds              *int            `json:"rounds,omitempty"`
	CombatLog           []LogEntry      `json:"combatLog,omitempty"`
	CurrentTurn         json.RawMessage `json:"currentTurn,omitempty"`
	PlayerCharacterID   *string         `json:"playerCharacterId,omitempty"`
	OpponentCharacterID *string         `json:"opponentCharacterId,omitempty"`
	Modifiers           *Modifiers      `json:"modifiers,omitempty"`
	RoundStartTime      *int64          `json:"roundStartTime,omitempty"`
	CombatState         *RecordPatch    `json:"combatState,omitempty"`
}

// EndPayload is the optional END_COMBAT payload.
type EndPayload struct {
	Winner string `json:"winner,omitempty"`
}

type activePayload struct {
	IsActive *bool `json:"isActive"`
	Active   *bool `json:"active"`
}

type typePayload struct {
	CombatType Type `json:"combatType"`
}

// decodeActive reads SET_ACTIVE payloads: a bare boolean or {isActive}.
func decodeActive(a action.Action) (bool, error) {
	payload := bytes.TrimSpace(a.Payload)
	if len(payload) > 0 && payload[0] == '{' {
		var obj activePayload
		if err := json.Unmarshal(payload, &obj); err != nil {
			return false, fmt.Errorf("decode %s payload: %w", a.Type, err)
		}
		switch {
		case obj.IsActive != nil:
			return *obj.IsActive, nil
		case obj.Active != nil:
			return *obj.Active, nil
		default:
			return false, fmt.Errorf("decode %s payload: %w", a.Type, action.ErrPayloadRequired)
		}
	}
	return action.DecodePayload[bool](a)
}

// decodeType reads SET_COMBAT_TYPE payloads: a bare type or {combatType}.
func decodeType(a action.Action) (Type, error) {
	payload := bytes.TrimSpace(a.Payload)
	if len(payload) > 0 && payload[0] == '{' {
		var obj typePayload
		if err := json.Unmarshal(payload, &obj); err != nil {
			return TypeNone, fmt.Errorf("decode %s payload: %w", a.Type, err)
		}
		return obj.CombatType, nil
	}
	return action.DecodePayload[Type](a)
}

// decodeLogEntry reads ADD_LOG_ENTRY payloads: a bare string or a LogEntry.
func decodeLogEntry(a action.Action) (LogEntry, error) {
	payload := bytes.TrimSpace(a.Payload)
	if len(payload) > 0 && payload[0] == '"' {
		text, err := action.DecodePayload[string](a)
		return LogEntry{Text: text}, err
	}
	return action.DecodePayload[LogEntry](a)
}

// EndsCombat reports whether a ends combat: END_COMBAT, SET_ACTIVE(false) or
// an UPDATE_COMBAT_STATE that sets isActive to false.
func EndsCombat(a action.Action) bool {
	switch a.Type {
	case action.EndCombat:
		return true
	case action.SetCombatActive:
		active, err := decodeActive(a)
		return err == nil && !active
	case action.UpdateCombatState:
		payload, err := action.DecodePayload[UpdatePayload](a)
		return err == nil && payload.IsActive != nil && !*payload.IsActive
	default:
		return false
	}
}

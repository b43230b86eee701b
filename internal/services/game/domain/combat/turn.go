package combat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTurn indicates a turn value in none of the accepted forms.
var ErrInvalidTurn = errors.New("invalid turn")

const npcIDPrefix = "npc_"

type turnObject struct {
	Type     string `json:"type"`
	Side     string `json:"side"`
	ID       string `json:"id"`
	PlayerID string `json:"playerId"`
}

// CoerceTurn converts any accepted turn representation into the canonical
// Turn. Accepted forms are a bare character id, the side names "player" and
// "opponent", an object {type, id} and an object {playerId}. JSON null yields
// nil.
func CoerceTurn(raw json.RawMessage, playerID, opponentID string) (*Turn, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	switch trimmed[0] {
	case '"':
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTurn, err)
		}
		return turnFromValue(value, playerID, opponentID), nil
	case '{':
		var obj turnObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTurn, err)
		}
		id := strings.TrimSpace(obj.ID)
		if id == "" {
			id = strings.TrimSpace(obj.PlayerID)
		}
		sideName := obj.Type
		if sideName == "" {
			sideName = obj.Side
		}
		if side, ok := parseSide(sideName); ok {
			if id == "" {
				id = idForSide(side, playerID, opponentID)
			}
			return &Turn{Type: side, ID: id}, nil
		}
		if id == "" {
			return nil, fmt.Errorf("%w: object without type or id", ErrInvalidTurn)
		}
		return turnFromID(id, playerID, opponentID), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidTurn, trimmed)
	}
}

func turnFromValue(value, playerID, opponentID string) *Turn {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if side, ok := parseSide(value); ok {
		return &Turn{Type: side, ID: idForSide(side, playerID, opponentID)}
	}
	return turnFromID(value, playerID, opponentID)
}

// turnFromID resolves the side of a bare id. Ids matching neither combatant
// fall back to the npc_ prefix convention used for generated opponents.
func turnFromID(id, playerID, opponentID string) *Turn {
	switch {
	case playerID != "" && id == playerID:
		return &Turn{Type: SidePlayer, ID: id}
	case opponentID != "" && id == opponentID:
		return &Turn{Type: SideOpponent, ID: id}
	case strings.HasPrefix(id, npcIDPrefix):
		return &Turn{Type: SideOpponent, ID: id}
	default:
		return &Turn{Type: SidePlayer, ID: id}
	}
}

func parseSide(value string) (Side, bool) {
	switch Side(strings.ToLower(strings.TrimSpace(value))) {
	case SidePlayer:
		return SidePlayer, true
	case SideOpponent:
		return SideOpponent, true
	default:
		return "", false
	}
}

func idForSide(side Side, playerID, opponentID string) string {
	if side == SideOpponent {
		return opponentID
	}
	return playerID
}

package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/louisbranch/boothill/internal/services/game/domain/action"
)

// AddPayload is the ADD_ITEM payload. A missing quantity means one.
type AddPayload struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Quantity     *int          `json:"quantity,omitempty"`
	Category     Category      `json:"category,omitempty"`
	Effect       *Effect       `json:"effect,omitempty"`
	Requirements *Requirements `json:"requirements,omitempty"`
}

// QuantityPayload is the UPDATE_ITEM_QUANTITY payload.
type QuantityPayload struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// SetPayload is the object form of SET_INVENTORY.
type SetPayload struct {
	Items            []Item `json:"items"`
	EquippedWeaponID string `json:"equippedWeaponId,omitempty"`
}

type idPayload struct {
	ID     string `json:"id"`
	ItemID string `json:"itemId"`
}

// decodeID reads payloads that name one item: a bare id, {id} or {itemId}.
func decodeID(a action.Action) (string, error) {
	payload := bytes.TrimSpace(a.Payload)
	if len(payload) > 0 && payload[0] == '{' {
		var obj idPayload
		if err := json.Unmarshal(payload, &obj); err != nil {
			return "", fmt.Errorf("decode %s payload: %w", a.Type, err)
		}
		if obj.ID != "" {
			return obj.ID, nil
		}
		return obj.ItemID, nil
	}
	return action.DecodePayload[string](a)
}

// decodeSet reads SET_INVENTORY payloads: a bare item list or SetPayload.
func decodeSet(a action.Action) (*State, error) {
	payload := bytes.TrimSpace(a.Payload)
	if len(payload) > 0 && payload[0] == '[' {
		items, err := action.DecodePayload[[]Item](a)
		if err != nil {
			return nil, err
		}
		return FromItems(items), nil
	}
	set, err := action.DecodePayload[SetPayload](a)
	if err != nil {
		return nil, err
	}
	next := FromItems(set.Items)
	if set.EquippedWeaponID != "" {
		next.EquippedWeaponID = set.EquippedWeaponID
	}
	return next, nil
}

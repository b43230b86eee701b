package inventory

import (
	"fmt"
	"slices"

	"github.com/louisbranch/boothill/internal/services/game/domain/action"
)

// FoldHandledTypes returns the action types the inventory fold reacts to.
func FoldHandledTypes() []action.Type {
	return []action.Type{
		action.AddItem,
		action.RemoveItem,
		action.UseItem,
		action.UpdateItemQuantity,
		action.CleanInventory,
		action.SetInventory,
		action.EquipWeapon,
		action.UnequipWeapon,
	}
}

// Fold applies a to the inventory slice. The input is never modified and is
// returned as-is when the action does not change it.
func Fold(state *State, a action.Action) (*State, error) {
	if state == nil {
		state = Initial()
	}
	switch a.Type {
	case action.AddItem:
		payload, err := action.DecodePayload[AddPayload](a)
		if err != nil {
			return state, fmt.Errorf("inventory fold %s: %w", a.Type, err)
		}
		return add(state, payload), nil
	case action.RemoveItem:
		id, err := decodeID(a)
		if err != nil {
			return state, fmt.Errorf("inventory fold %s: %w", a.Type, err)
		}
		return remove(state, id), nil
	case action.UseItem:
		id, err := decodeID(a)
		if err != nil {
			return state, fmt.Errorf("inventory fold %s: %w", a.Type, err)
		}
		i := state.index(id)
		if i < 0 || !state.Items[i].Category.consumable() || state.Items[i].Quantity <= 0 {
			return state, nil
		}
		next := clone(state)
		next.Items[i].Quantity--
		return next, nil
	case action.UpdateItemQuantity:
		payload, err := action.DecodePayload[QuantityPayload](a)
		if err != nil {
			return state, fmt.Errorf("inventory fold %s: %w", a.Type, err)
		}
		if payload.Quantity <= 0 {
			return remove(state, payload.ID), nil
		}
		i := state.index(payload.ID)
		if i < 0 || state.Items[i].Quantity == payload.Quantity {
			return state, nil
		}
		next := clone(state)
		next.Items[i].Quantity = payload.Quantity
		return next, nil
	case action.CleanInventory:
		if !slices.ContainsFunc(state.Items, isEmpty) {
			return state, nil
		}
		next := clone(state)
		next.Items = slices.DeleteFunc(next.Items, isEmpty)
		if next.EquippedWeaponID != "" && next.index(next.EquippedWeaponID) < 0 {
			next.EquippedWeaponID = ""
		}
		return next, nil
	case action.SetInventory:
		next, err := decodeSet(a)
		if err != nil {
			return state, fmt.Errorf("inventory fold %s: %w", a.Type, err)
		}
		return next, nil
	case action.EquipWeapon:
		id, err := decodeID(a)
		if err != nil {
			return state, fmt.Errorf("inventory fold %s: %w", a.Type, err)
		}
		if state.index(id) < 0 {
			return state, nil
		}
		next := clone(state)
		for i := range next.Items {
			next.Items[i].IsEquipped = next.Items[i].ID == id
		}
		next.EquippedWeaponID = id
		return next, nil
	case action.UnequipWeapon:
		id, err := decodeID(a)
		if err != nil {
			return state, fmt.Errorf("inventory fold %s: %w", a.Type, err)
		}
		if id == "" || id != state.EquippedWeaponID {
			return state, nil
		}
		next := clone(state)
		for i := range next.Items {
			if next.Items[i].ID == id {
				next.Items[i].IsEquipped = false
			}
		}
		next.EquippedWeaponID = ""
		return next, nil
	}
	return state, nil
}

func add(state *State, payload AddPayload) *State {
	quantity := 1
	if payload.Quantity != nil {
		quantity = *payload.Quantity
	}
	if quantity <= 0 {
		return state
	}
	item := normalizeItem(Item{
		ID:           payload.ID,
		Name:         payload.Name,
		Description:  payload.Description,
		Quantity:     quantity,
		Category:     payload.Category,
		Effect:       payload.Effect,
		Requirements: payload.Requirements,
	})
	if item.ID == "" {
		return state
	}
	next := clone(state)
	if i := next.index(item.ID); i >= 0 {
		next.Items[i].Quantity += quantity
		return next
	}
	next.Items = append(next.Items, item)
	return next
}

func remove(state *State, id string) *State {
	i := state.index(id)
	if i < 0 {
		return state
	}
	next := clone(state)
	next.Items = slices.Delete(next.Items, i, i+1)
	if next.EquippedWeaponID == id {
		next.EquippedWeaponID = ""
	}
	return next
}

func isEmpty(item Item) bool {
	return item.Quantity <= 0
}

func clone(state *State) *State {
	next := *state
	next.Items = slices.Clone(state.Items)
	if next.Items == nil {
		next.Items = []Item{}
	}
	return &next
}

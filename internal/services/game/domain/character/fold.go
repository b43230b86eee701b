package character

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/louisbranch/boothill/internal/services/game/domain/action"
	"github.com/louisbranch/boothill/internal/services/game/domain/combat"
	"github.com/louisbranch/boothill/internal/services/game/domain/fold"
)

// ErrCharacterNotFound is returned in strict mode when an update targets an
// id that is neither the player nor the opponent.
var ErrCharacterNotFound = errors.New("character not found")

// Folder applies actions to the character slice.
type Folder struct {
	Env fold.Env
	// StrictUpdateTarget reports unknown update targets as
	// ErrCharacterNotFound instead of ignoring them.
	StrictUpdateTarget bool
}

// FoldHandledTypes returns the action types the character fold reacts to.
// The combat types are included because ending combat clears the opponent.
func FoldHandledTypes() []action.Type {
	return []action.Type{
		action.SetCharacter,
		action.UpdateCharacter,
		action.SetOpponent,
		action.ClearOpponent,
		action.AddWound,
		action.ResetStrength,
		action.SetBaseStrength,
		action.SetCombatActive,
		action.UpdateCombatState,
		action.EndCombat,
	}
}

// Fold applies a to the character slice. The input is never modified and is
// returned as-is when the action does not change it.
func (f Folder) Fold(state *State, a action.Action) (*State, error) {
	if state == nil {
		state = Initial()
	}
	switch a.Type {
	case action.SetCharacter:
		if a.IsNull() {
			return clearPlayer(state), nil
		}
		in, err := action.DecodePayload[Input](a)
		if err != nil {
			return state, fmt.Errorf("character fold %s: %w", a.Type, err)
		}
		if in.ID == "" {
			in.ID = f.Env.ID("player")
		}
		next := *state
		next.Player = NewPlayer(in)
		return &next, nil
	case action.SetOpponent:
		if a.IsNull() {
			return clearOpponent(state), nil
		}
		in, err := action.DecodePayload[Input](a)
		if err != nil {
			return state, fmt.Errorf("character fold %s: %w", a.Type, err)
		}
		if in.ID == "" {
			in.ID = f.opponentID()
		}
		next := *state
		next.Opponent = NewOpponent(in)
		return &next, nil
	case action.ClearOpponent:
		return clearOpponent(state), nil
	case action.UpdateCharacter:
		payload, err := action.DecodePayload[UpdatePayload](a)
		if err != nil {
			return state, fmt.Errorf("character fold %s: %w", a.Type, err)
		}
		return f.update(state, a, payload)
	case action.AddWound:
		payload, err := action.DecodePayload[WoundPayload](a)
		if err != nil {
			return state, fmt.Errorf("character fold %s: %w", a.Type, err)
		}
		target, ok := state.find(payload.CharacterID)
		if !ok {
			return f.missing(state, a, payload.CharacterID)
		}
		next := target.Clone()
		next.Wounds = append(next.Wounds, payload.Wound)
		next = ApplyDamage(next, payload.Wound.StrengthReduction, reasonWound+":"+payload.Wound.Location, f.Env.NowMillis())
		if next.Attributes.Strength == 0 {
			next.IsUnconscious = true
		}
		return state.replace(next), nil
	case action.ResetStrength:
		payload, err := action.DecodePayload[ResetStrengthPayload](a)
		if err != nil {
			return state, fmt.Errorf("character fold %s: %w", a.Type, err)
		}
		target, ok := state.find(payload.CharacterID)
		if !ok {
			return f.missing(state, a, payload.CharacterID)
		}
		base := target.Attributes.BaseStrength
		if target.Attributes.Strength == base && len(target.Wounds) == 0 && !target.IsUnconscious {
			return state, nil
		}
		next := target
		if target.Attributes.Strength != base {
			next = setStrength(target, base, ReasonReset, f.Env.NowMillis())
		} else {
			next = target.Clone()
		}
		next.Wounds = []Wound{}
		next.IsUnconscious = false
		return state.replace(next), nil
	case action.SetBaseStrength:
		payload, err := action.DecodePayload[BaseStrengthPayload](a)
		if err != nil {
			return state, fmt.Errorf("character fold %s: %w", a.Type, err)
		}
		target, ok := state.find(payload.CharacterID)
		if !ok {
			return f.missing(state, a, payload.CharacterID)
		}
		if target.Attributes.BaseStrength == payload.BaseStrength && target.StrengthHistory.BaseStrength == payload.BaseStrength {
			return state, nil
		}
		next := target.Clone()
		next.Attributes.BaseStrength = payload.BaseStrength
		next.StrengthHistory.BaseStrength = payload.BaseStrength
		return state.replace(next), nil
	default:
		if combat.EndsCombat(a) {
			return clearOpponent(state), nil
		}
	}
	return state, nil
}

func (f Folder) update(state *State, a action.Action, payload UpdatePayload) (*State, error) {
	target, ok := state.find(payload.ID)
	if !ok {
		return f.missing(state, a, payload.ID)
	}
	next := target.Clone()
	if payload.Name != nil {
		next.Name = *payload.Name
	}
	if attrs := payload.Attributes; attrs != nil {
		merged := attrs.merge(next.Attributes)
		merged.Strength = next.Attributes.Strength
		merged.BaseStrength = next.Attributes.BaseStrength
		next.Attributes = merged
		switch {
		case attrs.Strength != nil && payload.DamageInflicted != nil:
			next = ApplyDamage(next, *payload.DamageInflicted, payload.Reason, f.Env.NowMillis())
		case attrs.Strength != nil && *attrs.Strength != next.Attributes.Strength:
			reason := payload.Reason
			if reason == "" {
				reason = ReasonUpdate
			}
			next = setStrength(next, *attrs.Strength, reason, f.Env.NowMillis())
		}
	}
	next.MinAttributes = payload.MinAttributes.merge(next.MinAttributes)
	next.MaxAttributes = payload.MaxAttributes.merge(next.MaxAttributes)
	if payload.Wounds != nil {
		next.Wounds = append([]Wound{}, payload.Wounds...)
	}
	if payload.IsUnconscious != nil {
		next.IsUnconscious = *payload.IsUnconscious
	}
	if payload.Inventory != nil {
		next.Inventory = append([]ItemRef{}, payload.Inventory...)
	}
	if payload.Weapon != nil {
		weapon := *payload.Weapon
		next.Weapon = &weapon
	}
	if reflect.DeepEqual(next, target) {
		return state, nil
	}
	return state.replace(next), nil
}

func (f Folder) missing(state *State, a action.Action, id string) (*State, error) {
	if f.StrictUpdateTarget {
		return state, fmt.Errorf("character fold %s: %w: %q", a.Type, ErrCharacterNotFound, id)
	}
	return state, nil
}

// opponentID returns npc_<unix millis>_<random suffix>.
func (f Folder) opponentID() string {
	suffix := f.Env.ID("")
	if len(suffix) > 9 {
		suffix = suffix[:9]
	}
	return fmt.Sprintf("npc_%d_%s", f.Env.NowMillis(), suffix)
}

func clearPlayer(state *State) *State {
	if state.Player == nil {
		return state
	}
	next := *state
	next.Player = nil
	return &next
}

func clearOpponent(state *State) *State {
	if state.Opponent == nil {
		return state
	}
	next := *state
	next.Opponent = nil
	return &next
}

package combat

import (
	"fmt"

	"github.com/louisbranch/boothill/internal/services/game/domain/action"
	"github.com/louisbranch/boothill/internal/services/game/domain/fold"
)

const defaultLogType = "action"

// Folder applies actions to the combat slice.
type Folder struct {
	Env fold.Env
	// Policy decides whether an invalid legacy record blocks combat from
	// ending. The zero value is fail-open.
	Policy EndPolicy
	// Locale selects the language of validation messages.
	Locale string
	// Report, when set, receives every end-state validation result.
	Report func(ValidationResult)
}

// FoldHandledTypes returns the action types the combat fold reacts to.
func FoldHandledTypes() []action.Type {
	return []action.Type{
		action.SetCombatActive,
		action.SetCombatType,
		action.UpdateCombatState,
		action.AddCombatLogEntry,
		action.NextCombatRound,
		action.EndCombat,
	}
}

// Fold applies a to the combat slice. The input is never modified and is
// returned as-is when the action does not change it.
func (f Folder) Fold(state *State, a action.Action) (*State, error) {
	if state == nil {
		state = Initial()
	}
	switch a.Type {
	case action.SetCombatActive:
		active, err := decodeActive(a)
		if err != nil {
			return state, fmt.Errorf("combat fold %s: %w", a.Type, err)
		}
		if !active {
			return f.end(state, state, a, "")
		}
		if state.IsActive {
			return state, nil
		}
		next := state.clone()
		f.activate(next)
		if next.Legacy != nil {
			next.Legacy.sync(next, fieldSet{isActive: true})
		}
		return next, nil
	case action.SetCombatType:
		combatType, err := decodeType(a)
		if err == nil {
			err = combatType.validate()
		}
		if err != nil {
			return state, fmt.Errorf("combat fold %s: %w", a.Type, err)
		}
		if state.IsActive && state.CombatType == combatType && (combatType != TypeBrawling || state.Legacy != nil) {
			return state, nil
		}
		next := state.clone()
		next.CombatType = combatType
		if !next.IsActive {
			f.activate(next)
		}
		switch {
		case next.Legacy != nil:
			next.Legacy.sync(next, fieldSet{isActive: true, combatType: true})
		case combatType == TypeBrawling:
			next.Legacy = newRecord(next)
		}
		return next, nil
	case action.UpdateCombatState:
		payload, err := action.DecodePayload[UpdatePayload](a)
		if err != nil {
			return state, fmt.Errorf("combat fold %s: %w", a.Type, err)
		}
		next, err := f.update(state, payload)
		if err != nil {
			return state, fmt.Errorf("combat fold %s: %w", a.Type, err)
		}
		if payload.IsActive != nil && !*payload.IsActive {
			return f.end(state, next, a, "")
		}
		return next, nil
	case action.AddCombatLogEntry:
		entry, err := decodeLogEntry(a)
		if err != nil {
			return state, fmt.Errorf("combat fold %s: %w", a.Type, err)
		}
		if entry.Timestamp == 0 {
			entry.Timestamp = f.Env.NowMillis()
		}
		if entry.Type == "" {
			entry.Type = defaultLogType
		}
		next := state.clone()
		next.CombatLog = append(next.CombatLog, entry)
		if next.Legacy != nil {
			next.Legacy.CombatLog = append(next.Legacy.CombatLog, entry)
			if next.Legacy.Brawling != nil {
				next.Legacy.Brawling.RoundLog = append(next.Legacy.Brawling.RoundLog, entry)
			}
		}
		return next, nil
	case action.NextCombatRound:
		if !state.IsActive {
			return state, nil
		}
		next := state.clone()
		next.Rounds++
		next.RoundStartTime = f.Env.NowMillis()
		if next.Legacy != nil {
			next.Legacy.sync(next, fieldSet{rounds: true})
			if next.Legacy.Brawling != nil {
				next.Legacy.Brawling.RoundLog = []LogEntry{}
			}
		}
		return next, nil
	case action.EndCombat:
		var winner string
		if a.HasPayload() && !a.IsNull() {
			payload, err := action.DecodePayload[EndPayload](a)
			if err != nil {
				return state, fmt.Errorf("combat fold %s: %w", a.Type, err)
			}
			winner = payload.Winner
		}
		return f.end(state, state, a, winner)
	}
	return state, nil
}

func (f Folder) activate(next *State) {
	next.IsActive = true
	next.RoundStartTime = f.Env.NowMillis()
}

// update merges an UPDATE_COMBAT_STATE payload into a copy of state.
func (f Folder) update(state *State, p UpdatePayload) (*State, error) {
	if p.CombatType != nil {
		if err := p.CombatType.validate(); err != nil {
			return state, err
		}
	}
	next := state.clone()
	var touched fieldSet
	if p.IsActive != nil && *p.IsActive && !next.IsActive {
		f.activate(next)
		touched.isActive = true
	}
	if p.CombatType != nil {
		next.CombatType = *p.CombatType
		touched.combatType = true
	}
	if p.Winner != nil {
		next.Winner = *p.Winner
		touched.winner = true
	}
	if p.Participants != nil {
		next.Participants = append([]Participant{}, p.Participants...)
		touched.participants = true
	}
	if p.Rounds != nil {
		next.Rounds = *p.Rounds
		touched.rounds = true
	}
	if p.CombatLog != nil {
		next.CombatLog = append([]LogEntry{}, p.CombatLog...)
		touched.combatLog = true
	}
	if p.PlayerCharacterID != nil {
		next.PlayerCharacterID = *p.PlayerCharacterID
	}
	if p.OpponentCharacterID != nil {
		next.OpponentCharacterID = *p.OpponentCharacterID
	}
	if p.Modifiers != nil {
		next.Modifiers = *p.Modifiers
		touched.modifiers = true
	}
	if p.RoundStartTime != nil {
		next.RoundStartTime = *p.RoundStartTime
	}
	if p.CurrentTurn != nil {
		turn, err := CoerceTurn(p.CurrentTurn, next.PlayerCharacterID, next.OpponentCharacterID)
		if err != nil {
			return state, err
		}
		next.CurrentTurn = turn
	}
	if next.Legacy != nil {
		next.Legacy.sync(next, touched)
	}
	if p.CombatState != nil {
		next.Legacy = p.CombatState.apply(next.Legacy)
	}
	return next, nil
}

// end validates the legacy record of working, if any, and returns the
// wound-down slice. original is returned untouched when the policy rejects
// the end state.
func (f Folder) end(original, working *State, a action.Action, winner string) (*State, error) {
	if working.Legacy != nil {
		result := ValidateLocale(working.Legacy, f.Locale)
		if f.Report != nil {
			f.Report(result)
		}
		if !result.IsValid {
			if f.Policy == EndPolicyFailClosed {
				return original, fmt.Errorf("combat fold %s: %w", a.Type, &EndStateError{Result: result})
			}
			f.Env.Warnf("combat end-state invalid: %s", result.Summary())
		}
	}
	if working == original && working.ended() && (winner == "" || winner == working.Winner) {
		return original, nil
	}
	next := working
	if working == original {
		next = working.clone()
	}
	next.IsActive = false
	next.CombatType = TypeNone
	next.CurrentTurn = nil
	next.Modifiers = Modifiers{}
	next.PlayerCharacterID = ""
	next.OpponentCharacterID = ""
	next.Participants = []Participant{}
	next.RoundStartTime = 0
	next.Legacy = nil
	if winner != "" {
		next.Winner = winner
	}
	return next, nil
}

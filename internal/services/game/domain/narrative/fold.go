package narrative

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/louisbranch/boothill/internal/services/game/domain/action"
)

// ContextPatch is the UPDATE_NARRATIVE_CONTEXT payload. Supplied fields
// replace the current ones; impact tallies are merged key by key.
type ContextPatch struct {
	Themes          []string       `json:"themes,omitempty"`
	CharacterFocus  []string       `json:"characterFocus,omitempty"`
	ImpactState     map[string]int `json:"impactState,omitempty"`
	DecisionHistory []Decision     `json:"decisionHistory,omitempty"`
}

// FoldHandledTypes returns the action types the narrative fold reacts to.
func FoldHandledTypes() []action.Type {
	return []action.Type{
		action.AddNarrativeHistory,
		action.SetNarrative,
		action.SetStoryPoint,
		action.UpdateNarrativeContext,
		action.RecordDecision,
		action.ResetNarrative,
	}
}

// Fold applies a to the narrative slice. The input is never modified and is
// returned as-is when the action does not change it.
func Fold(state *State, a action.Action) (*State, error) {
	if state == nil {
		state = Initial()
	}
	switch a.Type {
	case action.AddNarrativeHistory:
		fragments, err := decodeFragments(a)
		if err != nil {
			return state, fmt.Errorf("narrative fold %s: %w", a.Type, err)
		}
		if len(fragments) == 0 {
			return state, nil
		}
		next := *state
		next.NarrativeHistory = append(slices.Clone(state.NarrativeHistory), fragments...)
		return &next, nil
	case action.SetNarrative:
		if isObject(a) {
			replacement, err := action.DecodePayload[State](a)
			if err != nil {
				return state, fmt.Errorf("narrative fold %s: %w", a.Type, err)
			}
			if replacement.NarrativeHistory == nil {
				replacement.NarrativeHistory = []string{}
			}
			return &replacement, nil
		}
		text, err := action.DecodePayload[string](a)
		if err != nil {
			return state, fmt.Errorf("narrative fold %s: %w", a.Type, err)
		}
		next := *state
		next.NarrativeHistory = append(slices.Clone(state.NarrativeHistory), text)
		return &next, nil
	case action.SetStoryPoint:
		next := *state
		if a.IsNull() {
			if state.CurrentStoryPoint == nil {
				return state, nil
			}
			next.CurrentStoryPoint = nil
			return &next, nil
		}
		point, err := action.DecodePayload[StoryPoint](a)
		if err != nil {
			return state, fmt.Errorf("narrative fold %s: %w", a.Type, err)
		}
		if point.Choices == nil {
			point.Choices = []Choice{}
		}
		next.CurrentStoryPoint = &point
		return &next, nil
	case action.UpdateNarrativeContext:
		patch, err := action.DecodePayload[ContextPatch](a)
		if err != nil {
			return state, fmt.Errorf("narrative fold %s: %w", a.Type, err)
		}
		nc := state.NarrativeContext.clone()
		if patch.Themes != nil {
			nc.Themes = slices.Clone(patch.Themes)
		}
		if patch.CharacterFocus != nil {
			nc.CharacterFocus = slices.Clone(patch.CharacterFocus)
		}
		maps.Copy(nc.ImpactState, patch.ImpactState)
		if patch.DecisionHistory != nil {
			nc.DecisionHistory = slices.Clone(patch.DecisionHistory)
		}
		next := *state
		next.NarrativeContext = nc
		return &next, nil
	case action.RecordDecision:
		decision, err := action.DecodePayload[Decision](a)
		if err != nil {
			return state, fmt.Errorf("narrative fold %s: %w", a.Type, err)
		}
		nc := state.NarrativeContext.clone()
		nc.DecisionHistory = append(nc.DecisionHistory, decision)
		for key, delta := range decision.Impact {
			nc.ImpactState[key] += delta
		}
		next := *state
		next.NarrativeContext = nc
		if state.CurrentStoryPoint != nil && decision.ID != "" && state.CurrentStoryPoint.ID == decision.ID {
			next.CurrentStoryPoint = nil
		}
		return &next, nil
	case action.ResetNarrative:
		if len(state.NarrativeHistory) == 0 && state.NarrativeHistory != nil &&
			state.CurrentStoryPoint == nil && state.NarrativeContext == nil {
			return state, nil
		}
		return Initial(), nil
	}
	return state, nil
}

// decodeFragments reads one fragment or a list of fragments.
func decodeFragments(a action.Action) ([]string, error) {
	payload := bytes.TrimSpace(a.Payload)
	if len(payload) > 0 && payload[0] == '[' {
		return action.DecodePayload[[]string](a)
	}
	text, err := action.DecodePayload[string](a)
	if err != nil {
		return nil, err
	}
	return []string{text}, nil
}

func isObject(a action.Action) bool {
	payload := bytes.TrimSpace(a.Payload)
	return len(payload) > 0 && payload[0] == '{'
}

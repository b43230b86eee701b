package aggregate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/louisbranch/boothill/internal/services/game/domain/action"
	"github.com/louisbranch/boothill/internal/services/game/domain/fold"
)

// globalTypes returns the action types resolved directly against the
// top-level fields.
func globalTypes() []action.Type {
	return []action.Type{
		action.SetPlayer,
		action.AddNPC,
		action.SetLocation,
		action.AddQuest,
		action.SetGameProgress,
		action.SetSavedTimestamp,
		action.SetSuggestedActions,
		action.SetClientReady,
	}
}

type idPayload struct {
	ID string `json:"id"`
}

// foldGlobals applies a to the top-level fields of next and reports whether
// any of them changed. Collections are replaced, never appended in place.
func foldGlobals(env fold.Env, next *State, a action.Action) (bool, error) {
	switch a.Type {
	case action.SetPlayer:
		id, err := decodeID(a)
		if err != nil {
			return false, fmt.Errorf("game fold %s: %w", a.Type, err)
		}
		if next.CurrentPlayer == id {
			return false, nil
		}
		next.CurrentPlayer = id
		return true, nil
	case action.AddNPC:
		id, err := decodeID(a)
		if err != nil {
			return false, fmt.Errorf("game fold %s: %w", a.Type, err)
		}
		if id == "" || slices.Contains(next.NPCs, id) {
			return false, nil
		}
		next.NPCs = append(slices.Clone(next.NPCs), id)
		return true, nil
	case action.SetLocation:
		location, err := decodeLocation(a)
		if err != nil {
			return false, fmt.Errorf("game fold %s: %w", a.Type, err)
		}
		if next.Location != nil && *next.Location == location {
			return false, nil
		}
		next.Location = &location
		return true, nil
	case action.AddQuest:
		id, err := decodeID(a)
		if err != nil {
			return false, fmt.Errorf("game fold %s: %w", a.Type, err)
		}
		if id == "" || slices.Contains(next.Quests, id) {
			return false, nil
		}
		next.Quests = append(slices.Clone(next.Quests), id)
		return true, nil
	case action.SetGameProgress:
		progress, err := action.DecodePayload[int](a)
		if err != nil {
			return false, fmt.Errorf("game fold %s: %w", a.Type, err)
		}
		if next.GameProgress == progress {
			return false, nil
		}
		next.GameProgress = progress
		return true, nil
	case action.SetSavedTimestamp:
		stamp := env.NowMillis()
		if !a.IsNull() {
			decoded, err := action.DecodePayload[int64](a)
			if err != nil {
				return false, fmt.Errorf("game fold %s: %w", a.Type, err)
			}
			stamp = decoded
		}
		if next.SavedTimestamp == stamp {
			return false, nil
		}
		next.SavedTimestamp = stamp
		return true, nil
	case action.SetSuggestedActions:
		var suggestions []SuggestedAction
		if !a.IsNull() {
			decoded, err := action.DecodePayload[[]SuggestedAction](a)
			if err != nil {
				return false, fmt.Errorf("game fold %s: %w", a.Type, err)
			}
			suggestions = decoded
		}
		if suggestions == nil {
			suggestions = []SuggestedAction{}
		}
		if next.SuggestedActions != nil && slices.Equal(next.SuggestedActions, suggestions) {
			return false, nil
		}
		next.SuggestedActions = suggestions
		return true, nil
	case action.SetClientReady:
		ready := true
		if !a.IsNull() {
			decoded, err := action.DecodePayload[bool](a)
			if err != nil {
				return false, fmt.Errorf("game fold %s: %w", a.Type, err)
			}
			ready = decoded
		}
		if next.IsClient == ready {
			return false, nil
		}
		next.IsClient = ready
		return true, nil
	}
	return false, nil
}

// decodeID reads a bare id or {id}.
func decodeID(a action.Action) (string, error) {
	payload := bytes.TrimSpace(a.Payload)
	if len(payload) > 0 && payload[0] == '{' {
		var obj idPayload
		if err := json.Unmarshal(payload, &obj); err != nil {
			return "", fmt.Errorf("decode %s payload: %w", a.Type, err)
		}
		return obj.ID, nil
	}
	return action.DecodePayload[string](a)
}

// decodeLocation reads a bare location name or a Location.
func decodeLocation(a action.Action) (Location, error) {
	payload := bytes.TrimSpace(a.Payload)
	if len(payload) > 0 && payload[0] == '"' {
		name, err := action.DecodePayload[string](a)
		return Location{Name: name}, err
	}
	return action.DecodePayload[Location](a)
}

package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/louisbranch/boothill/internal/services/game/domain/action"
	"github.com/louisbranch/boothill/internal/services/game/domain/fold"
)

// Folder applies actions to the journal slice.
type Folder struct {
	Env fold.Env
}

// FoldHandledTypes returns the action types the journal fold reacts to.
func FoldHandledTypes() []action.Type {
	return []action.Type{
		action.AddJournalEntry,
		action.UpdateJournalEntry,
		action.RemoveJournalEntry,
		action.SetJournalEntries,
		action.ClearJournal,
	}
}

type idPayload struct {
	ID string `json:"id"`
}

// Fold applies a to the journal slice. The input is never modified and is
// returned as-is when the action does not change it.
func (f Folder) Fold(state *State, a action.Action) (*State, error) {
	if state == nil {
		state = Initial()
	}
	switch a.Type {
	case action.AddJournalEntry:
		in, err := action.DecodePayload[Input](a)
		if err != nil {
			return state, fmt.Errorf("journal fold %s: %w", a.Type, err)
		}
		entries := make([]Entry, 0, len(state.Entries)+1)
		entries = append(entries, state.Entries...)
		return &State{Entries: append(entries, NewEntry(in, f.Env))}, nil
	case action.UpdateJournalEntry:
		patch, err := action.DecodePayload[Input](a)
		if err != nil {
			return state, fmt.Errorf("journal fold %s: %w", a.Type, err)
		}
		i := state.index(patch.ID)
		if i < 0 {
			return state, nil
		}
		entries := slices.Clone(state.Entries)
		entries[i] = NewEntry(entries[i].input().merge(patch), f.Env)
		return &State{Entries: entries}, nil
	case action.RemoveJournalEntry:
		id, err := decodeID(a)
		if err != nil {
			return state, fmt.Errorf("journal fold %s: %w", a.Type, err)
		}
		i := state.index(id)
		if i < 0 {
			return state, nil
		}
		entries := slices.Clone(state.Entries)
		return &State{Entries: slices.Delete(entries, i, i+1)}, nil
	case action.SetJournalEntries:
		inputs, err := action.DecodePayload[[]Input](a)
		if err != nil {
			return state, fmt.Errorf("journal fold %s: %w", a.Type, err)
		}
		return FromInputs(inputs, f.Env), nil
	case action.ClearJournal:
		if len(state.Entries) == 0 && state.Entries != nil {
			return state, nil
		}
		return Initial(), nil
	}
	return state, nil
}

func (s *State) index(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.Entries, func(entry Entry) bool { return entry.ID == id })
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

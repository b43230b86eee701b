package aggregate

import (
	"github.com/louisbranch/boothill/internal/services/game/domain/action"
	"github.com/louisbranch/boothill/internal/services/game/domain/character"
	"github.com/louisbranch/boothill/internal/services/game/domain/combat"
	"github.com/louisbranch/boothill/internal/services/game/domain/inventory"
	"github.com/louisbranch/boothill/internal/services/game/domain/journal"
	"github.com/louisbranch/boothill/internal/services/game/domain/narrative"
	"github.com/louisbranch/boothill/internal/services/game/domain/ui"
)

// foldEntry describes one slice of aggregate state and how an action folds
// into it. Every entry sees every action; folds ignore what they do not
// handle and keep their slice pointer.
type foldEntry struct {
	// domain names the slice for diagnostics.
	domain action.Domain
	// types returns the action types this entry reacts to.
	types func() []action.Type
	// fold applies one action to the slice and writes the result back into
	// the working state.
	fold func(e Engine, state *State, a action.Action) error
}

// sliceFoldEntries is the declarative fan-out table. Adding a slice requires
// only adding an entry here.
var sliceFoldEntries = []foldEntry{
	{
		domain: action.DomainCharacter,
		types:  character.FoldHandledTypes,
		fold: func(e Engine, state *State, a action.Action) error {
			folder := character.Folder{Env: e.Env, StrictUpdateTarget: e.StrictUpdateTarget}
			updated, err := folder.Fold(state.Character, a)
			if err != nil {
				return err
			}
			state.Character = updated
			return nil
		},
	},
	{
		domain: action.DomainCombat,
		types:  combat.FoldHandledTypes,
		fold: func(e Engine, state *State, a action.Action) error {
			folder := combat.Folder{
				Env:    e.Env,
				Policy: e.CombatEndPolicy,
				Locale: e.Locale,
				Report: e.OnCombatEnd,
			}
			updated, err := folder.Fold(state.Combat, a)
			if err != nil {
				return err
			}
			state.Combat = updated
			return nil
		},
	},
	{
		domain: action.DomainInventory,
		types:  inventory.FoldHandledTypes,
		fold: func(_ Engine, state *State, a action.Action) error {
			updated, err := inventory.Fold(state.Inventory, a)
			if err != nil {
				return err
			}
			state.Inventory = updated
			return nil
		},
	},
	{
		domain: action.DomainJournal,
		types:  journal.FoldHandledTypes,
		fold: func(e Engine, state *State, a action.Action) error {
			updated, err := journal.Folder{Env: e.Env}.Fold(state.Journal, a)
			if err != nil {
				return err
			}
			state.Journal = updated
			return nil
		},
	},
	{
		domain: action.DomainNarrative,
		types:  narrative.FoldHandledTypes,
		fold: func(_ Engine, state *State, a action.Action) error {
			updated, err := narrative.Fold(state.Narrative, a)
			if err != nil {
				return err
			}
			state.Narrative = updated
			return nil
		},
	},
	{
		domain: action.DomainUI,
		types:  ui.FoldHandledTypes,
		fold: func(e Engine, state *State, a action.Action) error {
			updated, err := ui.Folder{Env: e.Env}.Fold(state.UI, a)
			if err != nil {
				return err
			}
			state.UI = updated
			return nil
		},
	},
}

// HandledTypes returns the union of action types any part of the transition
// reacts to, including the top-level fields and whole-state operations.
func HandledTypes() []action.Type {
	seen := map[action.Type]struct{}{}
	var types []action.Type
	add := func(list []action.Type) {
		for _, t := range list {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			types = append(types, t)
		}
	}
	for _, entry := range sliceFoldEntries {
		add(entry.types())
	}
	add(globalTypes())
	add([]action.Type{action.SetState, action.ResetState})
	return types
}

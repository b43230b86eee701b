package aggregate

import (
	"github.com/louisbranch/boothill/internal/services/game/domain/character"
	"github.com/louisbranch/boothill/internal/services/game/domain/combat"
	"github.com/louisbranch/boothill/internal/services/game/domain/inventory"
	"github.com/louisbranch/boothill/internal/services/game/domain/journal"
	"github.com/louisbranch/boothill/internal/services/game/domain/narrative"
	"github.com/louisbranch/boothill/internal/services/game/domain/ui"
)

// DefaultLocation is where a fresh session starts.
var DefaultLocation = Location{Type: "town", Name: "Boot Hill"}

// Initial returns the canonical state of a fresh session.
func Initial() *State {
	location := DefaultLocation
	return &State{
		NPCs:             []string{},
		Location:         &location,
		Quests:           []string{},
		SuggestedActions: []SuggestedAction{},
		Character:        character.Initial(),
		Combat:           combat.Initial(),
		Inventory:        inventory.Initial(),
		Journal:          journal.Initial(),
		Narrative:        narrative.Initial(),
		UI:               ui.Initial(),
	}
}

// IsComplete reports whether every slice and collection of s is present.
func IsComplete(s *State) bool {
	return s != nil &&
		s.NPCs != nil &&
		s.Location != nil &&
		s.Quests != nil &&
		s.SuggestedActions != nil &&
		character.Valid(s.Character) &&
		combat.Valid(s.Combat) &&
		inventory.Valid(s.Inventory) &&
		journal.Valid(s.Journal) &&
		narrative.Valid(s.Narrative) &&
		ui.Valid(s.UI)
}

// Complete fills every missing slice or collection of s with its default. It
// returns s itself when s is already complete and never modifies s.
func Complete(s *State) *State {
	if s == nil {
		return Initial()
	}
	completedCharacter := character.Complete(s.Character)
	completedCombat := combat.Complete(s.Combat)
	if IsComplete(s) && completedCharacter == s.Character && completedCombat == s.Combat {
		return s
	}

	next := *s
	if next.NPCs == nil {
		next.NPCs = []string{}
	}
	if next.Location == nil {
		location := DefaultLocation
		next.Location = &location
	}
	if next.Quests == nil {
		next.Quests = []string{}
	}
	if next.SuggestedActions == nil {
		next.SuggestedActions = []SuggestedAction{}
	}
	next.Character = completedCharacter
	next.Combat = completedCombat
	if !inventory.Valid(next.Inventory) {
		next.Inventory = inventory.Initial()
	}
	if !journal.Valid(next.Journal) {
		next.Journal = journal.Initial()
	}
	if !narrative.Valid(next.Narrative) {
		next.Narrative = narrative.Initial()
	}
	if !ui.Valid(next.UI) {
		next.UI = ui.Initial()
	}
	return &next
}

package aggregate

import (
	"encoding/json"

	"github.com/louisbranch/boothill/internal/services/game/domain/character"
	"github.com/louisbranch/boothill/internal/services/game/domain/combat"
	"github.com/louisbranch/boothill/internal/services/game/domain/inventory"
	"github.com/louisbranch/boothill/internal/services/game/domain/journal"
	"github.com/louisbranch/boothill/internal/services/game/domain/narrative"
	"github.com/louisbranch/boothill/internal/services/game/domain/ui"
)

// Location is where the player currently is.
type Location struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SuggestedAction is an action offered to the player.
type SuggestedAction struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

// State is the composite session state. A completed State has every slice
// set; Player and Opponent inside the character slice may be nil.
type State struct {
	CurrentPlayer    string            `json:"currentPlayer"`
	NPCs             []string          `json:"npcs"`
	Location         *Location         `json:"location"`
	Quests           []string          `json:"quests"`
	GameProgress     int               `json:"gameProgress"`
	SavedTimestamp   int64             `json:"savedTimestamp,omitempty"`
	IsClient         bool              `json:"isClient"`
	SuggestedActions []SuggestedAction `json:"suggestedActions"`

	Character *character.State `json:"character"`
	Combat    *combat.State    `json:"combat"`
	Inventory *inventory.State `json:"inventory"`
	Journal   *journal.State   `json:"journal"`
	Narrative *narrative.State `json:"narrative"`
	UI        *ui.State        `json:"ui"`
}

// Player projects the player from the character slice.
func (s *State) Player() *character.Character {
	if s == nil || s.Character == nil {
		return nil
	}
	return s.Character.Player
}

// Opponent projects the opponent from the character slice.
func (s *State) Opponent() *character.Character {
	if s == nil || s.Character == nil {
		return nil
	}
	return s.Character.Opponent
}

// IsCombatActive projects the combat flag.
func (s *State) IsCombatActive() bool {
	return s != nil && s.Combat != nil && s.Combat.IsActive
}

// CombatState projects the legacy combat record, nil outside a brawl.
func (s *State) CombatState() *combat.Record {
	if s == nil || s.Combat == nil {
		return nil
	}
	return s.Combat.Legacy
}

// MarshalJSON adds the read-only player, opponent and isCombatActive
// projections for older readers.
func (s State) MarshalJSON() ([]byte, error) {
	type stored State
	return json.Marshal(struct {
		stored
		Player         *character.Character `json:"player"`
		Opponent       *character.Character `json:"opponent"`
		IsCombatActive bool                 `json:"isCombatActive"`
	}{
		stored:         stored(s),
		Player:         s.Player(),
		Opponent:       s.Opponent(),
		IsCombatActive: s.IsCombatActive(),
	})
}

// UnmarshalJSON decodes through Decode so partial and legacy shapes come out
// complete.
func (s *State) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

package combat

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidType indicates a combat type other than brawling, weapon or null.
var ErrInvalidType = errors.New("invalid combat type")

// Type is the kind of fight. The empty Type is encoded as JSON null.
type Type string

const (
	TypeNone     Type = ""
	TypeBrawling Type = "brawling"
	TypeWeapon   Type = "weapon"
)

// Valid reports whether t is one of the known combat types or TypeNone.
func (t Type) Valid() bool {
	switch t {
	case TypeNone, TypeBrawling, TypeWeapon:
		return true
	default:
		return false
	}
}

func (t Type) validate() error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, string(t))
	}
	return nil
}

// MarshalJSON encodes TypeNone as null.
func (t Type) MarshalJSON() ([]byte, error) {
	if t == TypeNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}

// UnmarshalJSON accepts null as TypeNone.
func (t *Type) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = TypeNone
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Type(raw)
	return nil
}

// Side says whose turn it is.
type Side string

const (
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

// Turn is the canonical stored form of the current turn.
type Turn struct {
	Type Side   `json:"type"`
	ID   string `json:"id"`
}

// Participant is one combatant.
type Participant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsNPC    bool   `json:"isNPC,omitempty"`
	Strength int    `json:"strength,omitempty"`
}

// LogEntry is one line of the combat log.
type LogEntry struct {
	Text      string `json:"text"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

// Modifiers are situational bonuses or penalties per side.
type Modifiers struct {
	Player   int `json:"player"`
	Opponent int `json:"opponent"`
}

// State is the combat slice.
type State struct {
	IsActive            bool          `json:"isActive"`
	CombatType          Type          `json:"combatType"`
	Winner              string        `json:"winner,omitempty"`
	Participants        []Participant `json:"participants"`
	Rounds              int           `json:"rounds"`
	CombatLog           []LogEntry    `json:"combatLog"`
	CurrentTurn         *Turn         `json:"currentTurn"`
	PlayerCharacterID   string        `json:"playerCharacterId,omitempty"`
	OpponentCharacterID string        `json:"opponentCharacterId,omitempty"`
	Modifiers           Modifiers     `json:"modifiers"`
	RoundStartTime      int64         `json:"roundStartTime,omitempty"`
	// Legacy is the legacy-shaped combat record. It only exists while a
	// brawl is running.
	Legacy *Record `json:"combatState,omitempty"`
}

// Initial returns the inactive combat slice.
func Initial() *State {
	return &State{
		Participants: []Participant{},
		CombatLog:    []LogEntry{},
	}
}

// Valid reports whether s is structurally usable as a combat slice.
func Valid(s *State) bool {
	return s != nil && s.Participants != nil && s.CombatLog != nil
}

// Complete returns s with nil collections replaced by empty ones. It returns
// s itself when nothing was missing.
func Complete(s *State) *State {
	if s == nil {
		return Initial()
	}
	if Valid(s) {
		return s
	}
	next := *s
	if next.Participants == nil {
		next.Participants = []Participant{}
	}
	if next.CombatLog == nil {
		next.CombatLog = []LogEntry{}
	}
	return &next
}

// ended reports whether s is already fully wound down.
func (s *State) ended() bool {
	return !s.IsActive &&
		s.CombatType == TypeNone &&
		s.CurrentTurn == nil &&
		s.Modifiers == (Modifiers{}) &&
		s.PlayerCharacterID == "" &&
		s.OpponentCharacterID == "" &&
		len(s.Participants) == 0 &&
		s.RoundStartTime == 0 &&
		s.Legacy == nil
}

func (s *State) clone() *State {
	next := *s
	next.Participants = slices.Clone(s.Participants)
	next.CombatLog = slices.Clone(s.CombatLog)
	if s.CurrentTurn != nil {
		turn := *s.CurrentTurn
		next.CurrentTurn = &turn
	}
	next.Legacy = s.Legacy.Clone()
	return &next
}

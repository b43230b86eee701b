package character

import "slices"

// Severity grades how badly a wound hurts.
type Severity string

const (
	SeverityLight   Severity = "light"
	SeveritySerious Severity = "serious"
	SeverityMortal  Severity = "mortal"
)

// State is the character slice.
type State struct {
	Player   *Character `json:"player"`
	Opponent *Character `json:"opponent"`
}

// Attributes is the Boot Hill attribute set.
type Attributes struct {
	Speed            int `json:"speed"`
	GunAccuracy      int `json:"gunAccuracy"`
	ThrowingAccuracy int `json:"throwingAccuracy"`
	Strength         int `json:"strength"`
	BaseStrength     int `json:"baseStrength"`
	Bravery          int `json:"bravery"`
	Experience       int `json:"experience"`
}

// Wound is an injury that reduced strength when it was received.
type Wound struct {
	Location          string   `json:"location"`
	Severity          Severity `json:"severity"`
	StrengthReduction int      `json:"strengthReduction"`
	TurnReceived      int      `json:"turnReceived"`
}

// Weapon references the weapon a character carries into a fight.
type Weapon struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Damage string `json:"damage,omitempty"`
}

// StrengthChange is one entry of the strength history.
type StrengthChange struct {
	PreviousValue int    `json:"previousValue"`
	NewValue      int    `json:"newValue"`
	Reason        string `json:"reason"`
	Timestamp     int64  `json:"timestamp"`
}

// StrengthHistory records the base strength and every change applied to the
// current strength, in the order the changes happened.
type StrengthHistory struct {
	BaseStrength int              `json:"baseStrength"`
	Changes      []StrengthChange `json:"changes"`
}

// Character is a player or non-player character.
type Character struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	IsNPC           bool            `json:"isNPC"`
	IsPlayer        bool            `json:"isPlayer"`
	Attributes      Attributes      `json:"attributes"`
	MinAttributes   Attributes      `json:"minAttributes"`
	MaxAttributes   Attributes      `json:"maxAttributes"`
	Wounds          []Wound         `json:"wounds"`
	IsUnconscious   bool            `json:"isUnconscious"`
	Inventory       []ItemRef       `json:"inventory"`
	Weapon          *Weapon         `json:"weapon,omitempty"`
	StrengthHistory StrengthHistory `json:"strengthHistory"`
}

// ItemRef is a lightweight reference to an inventory item carried by a
// character.
type ItemRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Clone returns a copy that shares no slices with c.
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	out.Wounds = slices.Clone(c.Wounds)
	out.Inventory = slices.Clone(c.Inventory)
	out.StrengthHistory.Changes = slices.Clone(c.StrengthHistory.Changes)
	if c.Weapon != nil {
		weapon := *c.Weapon
		out.Weapon = &weapon
	}
	return &out
}

// Initial returns the empty character slice.
func Initial() *State {
	return &State{}
}

// Valid reports whether s is structurally usable as a character slice.
func Valid(s *State) bool {
	return s != nil
}

// find returns the character with the given id, player first.
func (s *State) find(id string) (*Character, bool) {
	if id == "" {
		return nil, false
	}
	if s.Player != nil && s.Player.ID == id {
		return s.Player, true
	}
	if s.Opponent != nil && s.Opponent.ID == id {
		return s.Opponent, true
	}
	return nil, false
}

// replace returns a copy of s with the character whose id matches updated
// swapped for updated.
func (s *State) replace(updated *Character) *State {
	next := *s
	switch {
	case s.Player != nil && s.Player.ID == updated.ID:
		next.Player = updated
	case s.Opponent != nil && s.Opponent.ID == updated.ID:
		next.Opponent = updated
	}
	return &next
}

// Complete returns s with nil collections inside its characters replaced by
// empty ones. It returns s itself when nothing was missing.
func Complete(s *State) *State {
	if s == nil {
		return Initial()
	}
	player, playerChanged := completeCharacter(s.Player)
	opponent, opponentChanged := completeCharacter(s.Opponent)
	if !playerChanged && !opponentChanged {
		return s
	}
	return &State{Player: player, Opponent: opponent}
}

func completeCharacter(c *Character) (*Character, bool) {
	if c == nil || (c.Wounds != nil && c.Inventory != nil && c.StrengthHistory.Changes != nil) {
		return c, false
	}
	next := c.Clone()
	if next.Wounds == nil {
		next.Wounds = []Wound{}
	}
	if next.Inventory == nil {
		next.Inventory = []ItemRef{}
	}
	if next.StrengthHistory.Changes == nil {
		next.StrengthHistory.Changes = []StrengthChange{}
	}
	return next, true
}

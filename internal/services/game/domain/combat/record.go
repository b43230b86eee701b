package combat

import "slices"

// BrawlingDetail is the round-by-round brawling sub-state of the legacy
// record.
type BrawlingDetail struct {
	Round            int        `json:"round"`
	PlayerModifier   int        `json:"playerModifier"`
	OpponentModifier int        `json:"opponentModifier"`
	RoundLog         []LogEntry `json:"roundLog"`
}

// WeaponDetail is the weapon-combat sub-state of the legacy record.
type WeaponDetail struct {
	Round          int    `json:"round"`
	PlayerWeapon   string `json:"playerWeapon,omitempty"`
	OpponentWeapon string `json:"opponentWeapon,omitempty"`
	Range          int    `json:"range,omitempty"`
}

// Record is the legacy-shaped combat record. Nil Participants, Rounds or
// CombatLog mean the property is missing.
type Record struct {
	IsActive     bool            `json:"isActive"`
	CombatType   Type            `json:"combatType"`
	Winner       string          `json:"winner,omitempty"`
	Participants []Participant   `json:"participants"`
	Rounds       *int            `json:"rounds"`
	CombatLog    []LogEntry      `json:"combatLog"`
	Brawling     *BrawlingDetail `json:"brawling,omitempty"`
	Weapon       *WeaponDetail   `json:"weapon,omitempty"`
}

// RecordPatch is a partial legacy record supplied through
// UPDATE_COMBAT_STATE.
type RecordPatch struct {
	IsActive     *bool           `json:"isActive,omitempty"`
	CombatType   *Type           `json:"combatType,omitempty"`
	Winner       *string         `json:"winner,omitempty"`
	Participants []Participant   `json:"participants,omitempty"`
	Rounds       *int            `json:"rounds,omitempty"`
	CombatLog    []LogEntry      `json:"combatLog,omitempty"`
	Brawling     *BrawlingDetail `json:"brawling,omitempty"`
	Weapon       *WeaponDetail   `json:"weapon,omitempty"`
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	out.Participants = slices.Clone(r.Participants)
	out.CombatLog = slices.Clone(r.CombatLog)
	if r.Rounds != nil {
		rounds := *r.Rounds
		out.Rounds = &rounds
	}
	if r.Brawling != nil {
		brawling := *r.Brawling
		brawling.RoundLog = slices.Clone(r.Brawling.RoundLog)
		out.Brawling = &brawling
	}
	if r.Weapon != nil {
		weapon := *r.Weapon
		out.Weapon = &weapon
	}
	return &out
}

// apply returns a copy of r with the supplied patch fields overlaid. A nil r
// starts from an empty record.
func (p RecordPatch) apply(r *Record) *Record {
	out := r.Clone()
	if out == nil {
		out = &Record{}
	}
	if p.IsActive != nil {
		out.IsActive = *p.IsActive
	}
	if p.CombatType != nil {
		out.CombatType = *p.CombatType
	}
	if p.Winner != nil {
		out.Winner = *p.Winner
	}
	if p.Participants != nil {
		out.Participants = slices.Clone(p.Participants)
	}
	if p.Rounds != nil {
		rounds := *p.Rounds
		out.Rounds = &rounds
	}
	if p.CombatLog != nil {
		out.CombatLog = slices.Clone(p.CombatLog)
	}
	if p.Brawling != nil {
		brawling := *p.Brawling
		brawling.RoundLog = slices.Clone(p.Brawling.RoundLog)
		out.Brawling = &brawling
	}
	if p.Weapon != nil {
		weapon := *p.Weapon
		out.Weapon = &weapon
	}
	return out
}

// newRecord seeds a legacy record from the slice.
func newRecord(s *State) *Record {
	rounds := s.Rounds
	r := &Record{
		IsActive:     s.IsActive,
		CombatType:   s.CombatType,
		Winner:       s.Winner,
		Participants: append([]Participant{}, s.Participants...),
		Rounds:       &rounds,
		CombatLog:    append([]LogEntry{}, s.CombatLog...),
	}
	if s.CombatType == TypeBrawling {
		r.Brawling = &BrawlingDetail{
			Round:            max(1, s.Rounds),
			PlayerModifier:   s.Modifiers.Player,
			OpponentModifier: s.Modifiers.Opponent,
			RoundLog:         []LogEntry{},
		}
	}
	return r
}

// fieldSet names the slice fields an update touched.
type fieldSet struct {
	isActive     bool
	combatType   bool
	winner       bool
	participants bool
	rounds       bool
	combatLog    bool
	modifiers    bool
}

// sync copies the touched slice fields into r, which must not be shared.
func (r *Record) sync(s *State, fields fieldSet) {
	if fields.isActive {
		r.IsActive = s.IsActive
	}
	if fields.combatType {
		r.CombatType = s.CombatType
	}
	if fields.winner {
		r.Winner = s.Winner
	}
	if fields.participants {
		r.Participants = slices.Clone(s.Participants)
	}
	if fields.rounds {
		rounds := s.Rounds
		r.Rounds = &rounds
		if r.Brawling != nil {
			r.Brawling.Round = max(1, s.Rounds)
		}
	}
	if fields.combatLog {
		r.CombatLog = slices.Clone(s.CombatLog)
	}
	if fields.modifiers && r.Brawling != nil {
		r.Brawling.PlayerModifier = s.Modifiers.Player
		r.Brawling.OpponentModifier = s.Modifiers.Opponent
	}
}

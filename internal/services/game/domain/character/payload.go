package character

// AttributesInput is a partially supplied attribute set. Nil fields were not
// supplied by the caller.
type AttributesInput struct {
	Speed            *int `json:"speed,omitempty"`
	GunAccuracy      *int `json:"gunAccuracy,omitempty"`
	ThrowingAccuracy *int `json:"throwingAccuracy,omitempty"`
	Strength         *int `json:"strength,omitempty"`
	BaseStrength     *int `json:"baseStrength,omitempty"`
	Bravery          *int `json:"bravery,omitempty"`
	Experience       *int `json:"experience,omitempty"`
}

// Input describes a character for SET_CHARACTER and SET_OPPONENT.
type Input struct {
	ID              string           `json:"id,omitempty"`
	Name            string           `json:"name,omitempty"`
	IsNPC           *bool            `json:"isNPC,omitempty"`
	IsPlayer        *bool            `json:"isPlayer,omitempty"`
	Attributes      *AttributesInput `json:"attributes,omitempty"`
	MinAttributes   *AttributesInput `json:"minAttributes,omitempty"`
	MaxAttributes   *AttributesInput `json:"maxAttributes,omitempty"`
	Wounds          []Wound          `json:"wounds,omitempty"`
	IsUnconscious   bool             `json:"isUnconscious,omitempty"`
	Inventory       []ItemRef        `json:"inventory,omitempty"`
	Weapon          *Weapon          `json:"weapon,omitempty"`
	StrengthHistory *StrengthHistory `json:"strengthHistory,omitempty"`
}

// UpdatePayload is the UPDATE_CHARACTER payload. Only supplied fields change.
type UpdatePayload struct {
	ID              string           `json:"id"`
	Name            *string          `json:"name,omitempty"`
	Attributes      *AttributesInput `json:"attributes,omitempty"`
	MinAttributes   *AttributesInput `json:"minAttributes,omitempty"`
	MaxAttributes   *AttributesInput `json:"maxAttributes,omitempty"`
	Wounds          []Wound          `json:"wounds,omitempty"`
	IsUnconscious   *bool            `json:"isUnconscious,omitempty"`
	Inventory       []ItemRef        `json:"inventory,omitempty"`
	Weapon          *Weapon          `json:"weapon,omitempty"`
	DamageInflicted *int             `json:"damageInflicted,omitempty"`
	Reason          string           `json:"reason,omitempty"`
}

// WoundPayload is the ADD_WOUND payload.
type WoundPayload struct {
	CharacterID string `json:"characterId"`
	Wound       Wound  `json:"wound"`
}

// ResetStrengthPayload is the RESET_STRENGTH payload.
type ResetStrengthPayload struct {
	CharacterID string `json:"characterId"`
}

// BaseStrengthPayload is the SET_BASE_STRENGTH payload.
type BaseStrengthPayload struct {
	CharacterID  string `json:"characterId"`
	BaseStrength int    `json:"baseStrength"`
}

// merge overlays the supplied fields of in onto base.
func (in *AttributesInput) merge(base Attributes) Attributes {
	if in == nil {
		return base
	}
	set := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	set(&base.Speed, in.Speed)
	set(&base.GunAccuracy, in.GunAccuracy)
	set(&base.ThrowingAccuracy, in.ThrowingAccuracy)
	set(&base.Strength, in.Strength)
	set(&base.BaseStrength, in.BaseStrength)
	set(&base.Bravery, in.Bravery)
	set(&base.Experience, in.Experience)
	return base
}

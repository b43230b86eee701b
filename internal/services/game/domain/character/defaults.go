package character

// DefaultAttribute fills any attribute the caller did not supply.
const DefaultAttribute = 5

// Boot Hill attribute ranges for player characters.
var (
	PlayerMinAttributes = Attributes{
		Speed:            1,
		GunAccuracy:      1,
		ThrowingAccuracy: 1,
		Strength:         8,
		BaseStrength:     8,
		Bravery:          1,
		Experience:       0,
	}
	PlayerMaxAttributes = Attributes{
		Speed:            20,
		GunAccuracy:      20,
		ThrowingAccuracy: 20,
		Strength:         20,
		BaseStrength:     20,
		Bravery:          20,
		Experience:       11,
	}
)

// Opponent attribute ranges.
var (
	OpponentMinAttributes = Attributes{}
	OpponentMaxAttributes = Attributes{
		Speed:            10,
		GunAccuracy:      10,
		ThrowingAccuracy: 10,
		Strength:         10,
		BaseStrength:     10,
		Bravery:          10,
		Experience:       10,
	}
)

func uniformAttributes(value int) Attributes {
	return Attributes{
		Speed:            value,
		GunAccuracy:      value,
		ThrowingAccuracy: value,
		Strength:         value,
		BaseStrength:     value,
		Bravery:          value,
		Experience:       value,
	}
}

// baseStrengthOf picks the supplied base strength, then the supplied
// strength, then the default.
func baseStrengthOf(in *AttributesInput) int {
	if in != nil {
		if in.BaseStrength != nil {
			return *in.BaseStrength
		}
		if in.Strength != nil {
			return *in.Strength
		}
	}
	return DefaultAttribute
}

// build turns an input into a complete character using the given defaults.
func build(in Input, defaults, minimum, maximum Attributes) *Character {
	attributes := in.Attributes.merge(defaults)
	base := baseStrengthOf(in.Attributes)
	attributes.BaseStrength = base

	c := &Character{
		ID:            in.ID,
		Name:          in.Name,
		Attributes:    attributes,
		MinAttributes: in.MinAttributes.merge(minimum),
		MaxAttributes: in.MaxAttributes.merge(maximum),
		Wounds:        append([]Wound{}, in.Wounds...),
		IsUnconscious: in.IsUnconscious,
		Inventory:     append([]ItemRef{}, in.Inventory...),
		StrengthHistory: StrengthHistory{
			BaseStrength: base,
			Changes:      []StrengthChange{},
		},
	}
	if in.Weapon != nil {
		weapon := *in.Weapon
		c.Weapon = &weapon
	}
	if in.StrengthHistory != nil {
		if in.StrengthHistory.BaseStrength != 0 {
			c.StrengthHistory.BaseStrength = in.StrengthHistory.BaseStrength
		}
		c.StrengthHistory.Changes = append(c.StrengthHistory.Changes, in.StrengthHistory.Changes...)
	}
	return c
}

// NewPlayer builds a player character, filling defaults for anything the
// input leaves out.
func NewPlayer(in Input) *Character {
	defaults := uniformAttributes(DefaultAttribute)
	defaults.Experience = 0
	c := build(in, defaults, PlayerMinAttributes, PlayerMaxAttributes)
	c.IsPlayer = true
	if in.IsPlayer != nil {
		c.IsPlayer = *in.IsPlayer
	}
	if in.IsNPC != nil {
		c.IsNPC = *in.IsNPC
	}
	return c
}

// NewOpponent builds a non-player opponent. Unset attributes default to 5 and
// bounds to 0-10.
func NewOpponent(in Input) *Character {
	c := build(in, uniformAttributes(DefaultAttribute), OpponentMinAttributes, OpponentMaxAttributes)
	c.IsNPC = true
	c.IsPlayer = false
	return c
}

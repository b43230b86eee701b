package character

// Strength change reasons recorded in the history.
const (
	ReasonDamage = "damage"
	ReasonUpdate = "update"
	ReasonReset  = "reset"
	reasonWound  = "wound"
)

// StrengthAfterDamage derives the new strength from the current value and a
// damage amount. Strength never drops below zero.
func StrengthAfterDamage(current, damage int) int {
	return max(0, current-damage)
}

// Record returns a copy of h with change appended.
func (h StrengthHistory) Record(change StrengthChange) StrengthHistory {
	changes := make([]StrengthChange, 0, len(h.Changes)+1)
	changes = append(changes, h.Changes...)
	h.Changes = append(changes, change)
	return h
}

// ApplyDamage returns a copy of c whose strength was reduced by damage, with
// the change appended to its history. Base strength is left alone.
func ApplyDamage(c *Character, damage int, reason string, at int64) *Character {
	if reason == "" {
		reason = ReasonDamage
	}
	return setStrength(c, StrengthAfterDamage(c.Attributes.Strength, damage), reason, at)
}

// setStrength returns a copy of c with the current strength set to value and
// the change recorded.
func setStrength(c *Character, value int, reason string, at int64) *Character {
	next := c.Clone()
	next.StrengthHistory = c.StrengthHistory.Record(StrengthChange{
		PreviousValue: c.Attributes.Strength,
		NewValue:      value,
		Reason:        reason,
		Timestamp:     at,
	})
	next.Attributes.Strength = value
	return next
}

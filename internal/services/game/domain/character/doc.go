// Package character models the player and the current opponent.
//
// The slice holds at most one player and one opponent. Strength is never
// overwritten by damage updates: it is derived from the current value and
// the damage amount, and every derived change is appended to the
// character's strength history. The opponent is also cleared whenever the
// combat slice ends a fight, so "combat over" and "no opponent" always
// change together.
package character

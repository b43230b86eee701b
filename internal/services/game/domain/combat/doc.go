// Package combat models the fight lifecycle.
//
// Combat moves from inactive to active (brawling or weapon) and back. While a
// brawl is running the slice also carries the legacy combat record that
// older readers still inspect; that record is validated and dropped when the
// fight ends.
package combat

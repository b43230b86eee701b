// Package aggregate composes the domain slices into the full session state
// and owns the root transition.
//
// A transition normalizes the action, completes the incoming state, resolves
// the handful of top-level fields directly and then fans the action out to
// every slice fold. Slices that ignore the action hand back the same pointer,
// and when nothing changed the root hands back the same *State, so callers can
// detect changes by comparing pointers. Cross-slice obligations, such as
// clearing the opponent when combat ends, live inside the slice folds; the
// root does no reconciliation of its own.
package aggregate

// Package action defines the action envelope dispatched into the session state
// engine and the vocabulary of action types it understands.
//
// Two naming generations coexist:
// - namespaced types (`character/SET_CHARACTER`) route unambiguously to one slice,
// - legacy flat types (`SET_CHARACTER`) are still sent by older callers.
//
// Normalize rewrites legacy types into the namespaced form so slice folds only
// ever see one vocabulary. Classify reports the owning domain for routing and
// logging.
package action

package aggregate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/boothill/internal/services/game/domain/action"
	"github.com/louisbranch/boothill/internal/services/game/domain/combat"
	"github.com/louisbranch/boothill/internal/services/game/domain/fold"
)

// ErrStateRequired is returned when Transition receives a nil state.
var ErrStateRequired = errors.New("state is required")

// Engine runs transitions with a fixed set of policies. The zero value uses
// the process clock, random ids, the standard logger, permissive update
// targets and fail-open combat endings.
type Engine struct {
	Env fold.Env
	// StrictUpdateTarget reports character updates for unknown ids as
	// character.ErrCharacterNotFound instead of ignoring them.
	StrictUpdateTarget bool
	// CombatEndPolicy decides whether an invalid legacy combat record blocks
	// combat from ending.
	CombatEndPolicy combat.EndPolicy
	// Locale selects the language of combat validation messages.
	Locale string
	// OnCombatEnd, when set, receives every combat end-state validation.
	OnCombatEnd func(combat.ValidationResult)
}

var defaultEngine Engine

// Transition applies a to state with the default engine.
func Transition(state *State, a action.Action) (*State, error) {
	return defaultEngine.Transition(state, a)
}

// Transition returns the state that follows state once a is applied.
//
// state is never modified. When nothing changes the same pointer is
// returned; otherwise untouched slices keep their pointers. An action
// without a type is ignored. On error the input state is returned together
// with the error and no part of the action takes effect.
func (e Engine) Transition(state *State, a action.Action) (*State, error) {
	if state == nil {
		return nil, ErrStateRequired
	}
	if strings.TrimSpace(string(a.Type)) == "" {
		return state, nil
	}
	a = action.Normalize(a)

	switch a.Type {
	case action.SetState:
		if a.IsNull() {
			return state, nil
		}
		replacement, err := decode(a.Payload, e.Env)
		if err != nil {
			return state, fmt.Errorf("game fold %s: %w", a.Type, err)
		}
		return replacement, nil
	case action.ResetState:
		return Initial(), nil
	}

	current := Complete(state)
	next := *current
	changed, err := foldGlobals(e.Env, &next, a)
	if err != nil {
		return state, err
	}
	for _, entry := range sliceFoldEntries {
		if err := entry.fold(e, &next, a); err != nil {
			return state, err
		}
	}

	if current == state && !changed && sameSlices(&next, current) {
		return state, nil
	}
	return &next, nil
}

// Apply folds actions in order. It stops at the first error and returns the
// state reached before the failing action.
func (e Engine) Apply(state *State, actions ...action.Action) (*State, error) {
	for _, a := range actions {
		next, err := e.Transition(state, a)
		if err != nil {
			return state, err
		}
		state = next
	}
	return state, nil
}

func sameSlices(a, b *State) bool {
	return a.Character == b.Character &&
		a.Combat == b.Combat &&
		a.Inventory == b.Inventory &&
		a.Journal == b.Journal &&
		a.Narrative == b.Narrative &&
		a.UI == b.UI
}

package journal

import "github.com/louisbranch/boothill/internal/services/game/domain/fold"

// State is the journal slice.
type State struct {
	Entries []Entry `json:"entries"`
}

// Initial returns the empty journal.
func Initial() *State {
	return &State{Entries: []Entry{}}
}

// Valid reports whether s is structurally usable as a journal slice.
func Valid(s *State) bool {
	return s != nil && s.Entries != nil
}

// FromInputs builds a journal from loosely typed entries, as stored by older
// saves that kept the journal as a bare array.
func FromInputs(inputs []Input, env fold.Env) *State {
	s := &State{Entries: make([]Entry, 0, len(inputs))}
	for _, in := range inputs {
		s.Entries = append(s.Entries, NewEntry(in, env))
	}
	return s
}

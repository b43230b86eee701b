// Package narrative holds the story told so far, the story point the player
// is facing and the context that shapes what comes next.
package narrative

import (
	"maps"
	"slices"
)

// Choice is one option offered at a story point.
type Choice struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Consequence string `json:"consequence,omitempty"`
}

// StoryPoint is the scene currently presented to the player.
type StoryPoint struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Choices []Choice `json:"choices"`
}

// Decision records a choice the player made.
type Decision struct {
	ID        string         `json:"id"`
	Prompt    string         `json:"prompt,omitempty"`
	Choice    string         `json:"choice"`
	Timestamp int64          `json:"timestamp"`
	Impact    map[string]int `json:"impact,omitempty"`
}

// Context carries the themes, focus and tallies that steer the story.
type Context struct {
	Themes          []string       `json:"themes"`
	CharacterFocus  []string       `json:"characterFocus"`
	ImpactState     map[string]int `json:"impactState"`
	DecisionHistory []Decision     `json:"decisionHistory"`
}

// State is the narrative slice.
type State struct {
	NarrativeHistory  []string    `json:"narrativeHistory"`
	CurrentStoryPoint *StoryPoint `json:"currentStoryPoint"`
	NarrativeContext  *Context    `json:"narrativeContext"`
}

// Initial returns the empty narrative.
func Initial() *State {
	return &State{NarrativeHistory: []string{}}
}

// Valid reports whether s is structurally usable as a narrative slice.
func Valid(s *State) bool {
	return s != nil && s.NarrativeHistory != nil
}

func newContext() *Context {
	return &Context{
		Themes:          []string{},
		CharacterFocus:  []string{},
		ImpactState:     map[string]int{},
		DecisionHistory: []Decision{},
	}
}

func (c *Context) clone() *Context {
	if c == nil {
		return newContext()
	}
	out := &Context{
		Themes:          slices.Clone(c.Themes),
		CharacterFocus:  slices.Clone(c.CharacterFocus),
		ImpactState:     maps.Clone(c.ImpactState),
		DecisionHistory: slices.Clone(c.DecisionHistory),
	}
	if out.Themes == nil {
		out.Themes = []string{}
	}
	if out.CharacterFocus == nil {
		out.CharacterFocus = []string{}
	}
	if out.ImpactState == nil {
		out.ImpactState = map[string]int{}
	}
	if out.DecisionHistory == nil {
		out.DecisionHistory = []Decision{}
	}
	return out
}

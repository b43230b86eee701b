package narrative

import (
	"encoding/json"
	"testing"

	"github.com/louisbranch/boothill/internal/services/game/domain/action"
)

func act(typ action.Type, payload string) action.Action {
	a := action.Action{Type: typ}
	if payload != "" {
		a.Payload = json.RawMessage(payload)
	}
	return a
}

func mustFold(t *testing.T, state *State, a action.Action) *State {
	t.Helper()
	next, err := Fold(state, a)
	if err != nil {
		t.Fatalf("fold %s: %v", a.Type, err)
	}
	return next
}

func TestFoldAddNarrativeHistory(t *testing.T) {
	state := &State{NarrativeHistory: []string{"Dust rises."}}
	next := mustFold(t, state, act(action.AddNarrativeHistory, `"A rider approaches."`))
	if len(next.NarrativeHistory) != 2 || next.NarrativeHistory[1] != "A rider approaches." {
		t.Fatalf("history = %v, want fragment appended", next.NarrativeHistory)
	}
	if len(state.NarrativeHistory) != 1 {
		t.Fatal("expected input state to stay untouched")
	}

	many := mustFold(t, next, act(action.AddNarrativeHistory, `["One.","Two."]`))
	if len(many.NarrativeHistory) != 4 {
		t.Fatalf("history = %v, want 4 fragments", many.NarrativeHistory)
	}

	if same := mustFold(t, many, act(action.AddNarrativeHistory, `[]`)); same != many {
		t.Fatal("expected identical state for empty list")
	}
}

func TestFoldSetNarrative(t *testing.T) {
	state := &State{NarrativeHistory: []string{"old"}}
	appended := mustFold(t, state, act(action.SetNarrative, `"new"`))
	if len(appended.NarrativeHistory) != 2 || appended.NarrativeHistory[1] != "new" {
		t.Fatalf("history = %v, want string appended", appended.NarrativeHistory)
	}

	replaced := mustFold(t, state, act(action.SetNarrative, `{"currentStoryPoint":{"id":"sp1","title":"Showdown"}}`))
	if len(replaced.NarrativeHistory) != 0 || replaced.NarrativeHistory == nil {
		t.Fatalf("history = %v, want empty non-nil", replaced.NarrativeHistory)
	}
	if replaced.CurrentStoryPoint == nil || replaced.CurrentStoryPoint.ID != "sp1" {
		t.Fatalf("story point = %+v, want sp1", replaced.CurrentStoryPoint)
	}
}

func TestFoldSetStoryPoint(t *testing.T) {
	state := Initial()
	next := mustFold(t, state, act(action.SetStoryPoint, `{"id":"sp1","type":"decision","title":"Fork","content":"Left or right?"}`))
	if next.CurrentStoryPoint == nil || next.CurrentStoryPoint.Choices == nil {
		t.Fatalf("story point = %+v, want choices initialized", next.CurrentStoryPoint)
	}
	if state.CurrentStoryPoint != nil {
		t.Fatal("expected input state to stay untouched")
	}

	cleared := mustFold(t, next, act(action.SetStoryPoint, `null`))
	if cleared.CurrentStoryPoint != nil {
		t.Fatal("expected story point cleared")
	}
	if again := mustFold(t, cleared, act(action.SetStoryPoint, `null`)); again != cleared {
		t.Fatal("expected identical state when already clear")
	}
}

func TestFoldUpdateNarrativeContext(t *testing.T) {
	state := Initial()
	first := mustFold(t, state, act(action.UpdateNarrativeContext, `{"themes":["revenge"],"impactState":{"honor":2}}`))
	nc := first.NarrativeContext
	if nc == nil || len(nc.Themes) != 1 || nc.ImpactState["honor"] != 2 {
		t.Fatalf("context = %+v, want revenge theme and honor 2", nc)
	}
	if nc.CharacterFocus == nil || nc.DecisionHistory == nil {
		t.Fatal("expected empty collections initialized")
	}

	second := mustFold(t, first, act(action.UpdateNarrativeContext, `{"characterFocus":["sheriff"],"impactState":{"greed":1}}`))
	if second.NarrativeContext.ImpactState["honor"] != 2 || second.NarrativeContext.ImpactState["greed"] != 1 {
		t.Fatalf("impact = %v, want merged tallies", second.NarrativeContext.ImpactState)
	}
	if len(second.NarrativeContext.Themes) != 1 {
		t.Fatalf("themes = %v, want kept", second.NarrativeContext.Themes)
	}
	if _, ok := first.NarrativeContext.ImpactState["greed"]; ok {
		t.Fatal("expected previous context to stay untouched")
	}
}

func TestFoldRecordDecision(t *testing.T) {
	state := &State{
		NarrativeHistory:  []string{},
		CurrentStoryPoint: &StoryPoint{ID: "sp1", Choices: []Choice{{ID: "c1", Text: "Draw"}}},
		NarrativeContext: &Context{
			Themes:          []string{},
			CharacterFocus:  []string{},
			ImpactState:     map[string]int{"honor": 1},
			DecisionHistory: []Decision{},
		},
	}
	next := mustFold(t, state, act(action.RecordDecision, `{"id":"sp1","choice":"Draw","timestamp":9,"impact":{"honor":2,"fear":1}}`))
	nc := next.NarrativeContext
	if len(nc.DecisionHistory) != 1 || nc.DecisionHistory[0].Choice != "Draw" {
		t.Fatalf("decisions = %+v, want Draw recorded", nc.DecisionHistory)
	}
	if nc.ImpactState["honor"] != 3 || nc.ImpactState["fear"] != 1 {
		t.Fatalf("impact = %v, want honor 3 fear 1", nc.ImpactState)
	}
	if next.CurrentStoryPoint != nil {
		t.Fatal("expected answered story point cleared")
	}
	if state.NarrativeContext.ImpactState["honor"] != 1 || len(state.NarrativeContext.DecisionHistory) != 0 {
		t.Fatal("expected input state to stay untouched")
	}

	other := mustFold(t, state, act(action.RecordDecision, `{"id":"sp2","choice":"Run"}`))
	if other.CurrentStoryPoint == nil {
		t.Fatal("expected unrelated story point kept")
	}
}

func TestFoldResetNarrative(t *testing.T) {
	state := &State{NarrativeHistory: []string{"x"}, CurrentStoryPoint: &StoryPoint{ID: "sp1"}}
	next := mustFold(t, state, act(action.ResetNarrative, ""))
	if len(next.NarrativeHistory) != 0 || next.CurrentStoryPoint != nil || next.NarrativeContext != nil {
		t.Fatalf("narrative = %+v, want initial", next)
	}
	if again := mustFold(t, next, act(action.ResetNarrative, "")); again != next {
		t.Fatal("expected identical state when already reset")
	}
}

func TestFoldDecodeError(t *testing.T) {
	state := Initial()
	next, err := Fold(state, act(action.AddNarrativeHistory, `{"text":"x"}`))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if next != state {
		t.Fatal("expected identical state on error")
	}
}

func TestFoldIgnoresOtherActions(t *testing.T) {
	state := Initial()
	if next := mustFold(t, state, act(action.SetLoading, `true`)); next != state {
		t.Fatal("expected identical state")
	}
}

package action

import (
	"encoding/json"
	"testing"
)

func TestNormalizeRewritesLegacyType(t *testing.T) {
	tests := []struct {
		legacy Type
		want   Type
	}{
		{legacy: "SET_CHARACTER", want: SetCharacter},
		{legacy: "SET_COMBAT_ACTIVE", want: SetCombatActive},
		{legacy: "ADD_COMBAT_LOG", want: AddCombatLogEntry},
		{legacy: "UPDATE_JOURNAL", want: AddJournalEntry},
		{legacy: "SET_JOURNAL", want: SetJournalEntries},
		{legacy: "SAVE_GAME", want: SetSavedTimestamp},
		{legacy: "SET_STATE", want: SetState},
	}
	for _, tt := range tests {
		payload := json.RawMessage(`{"keep":"me"}`)
		got := Normalize(Action{Type: tt.legacy, Payload: payload})
		if got.Type != tt.want {
			t.Fatalf("Normalize(%s).Type = %s, want %s", tt.legacy, got.Type, tt.want)
		}
		if string(got.Payload) != string(payload) {
			t.Fatalf("Normalize(%s).Payload = %s, want %s", tt.legacy, got.Payload, payload)
		}
	}
}

func TestNormalizeKeepsNamespacedAndUnknownTypes(t *testing.T) {
	for _, typ := range []Type{AddItem, EndCombat, "DO_SOMETHING", "weather/SET_RAIN"} {
		if got := Normalize(Action{Type: typ}); got.Type != typ {
			t.Fatalf("Normalize(%s).Type = %s, want unchanged", typ, got.Type)
		}
	}
}

func TestLegacyReverseLookup(t *testing.T) {
	for legacy, namespaced := range legacyTypes {
		got, ok := Legacy(namespaced)
		if !ok {
			t.Fatalf("Legacy(%s) not found", namespaced)
		}
		if got != legacy {
			t.Fatalf("Legacy(%s) = %s, want %s", namespaced, got, legacy)
		}
	}
	if _, ok := Legacy("DO_SOMETHING"); ok {
		t.Fatal("expected unknown type to have no legacy name")
	}
}

func TestLegacyTableIsBijective(t *testing.T) {
	if len(namespacedTypes) != len(legacyTypes) {
		t.Fatalf("namespaced types = %d, legacy types = %d; a namespaced type is mapped twice", len(namespacedTypes), len(legacyTypes))
	}
}

func TestKnownAndIsLegacy(t *testing.T) {
	if !Known("ADD_ITEM") || !Known(AddItem) {
		t.Fatal("expected both vocabularies to be known")
	}
	if Known("DO_SOMETHING") {
		t.Fatal("expected unknown type")
	}
	if !IsLegacy("ADD_ITEM") {
		t.Fatal("expected ADD_ITEM to be legacy")
	}
	if IsLegacy(AddItem) {
		t.Fatal("expected namespaced type not to be legacy")
	}
}

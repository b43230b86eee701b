package combat

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCoerceTurn(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *Turn
	}{
		{name: "null", raw: `null`, want: nil},
		{name: "empty", raw: ``, want: nil},
		{name: "blank string", raw: `"  "`, want: nil},
		{name: "player side", raw: `"player"`, want: &Turn{Type: SidePlayer, ID: "pc-1"}},
		{name: "opponent side", raw: `"Opponent"`, want: &Turn{Type: SideOpponent, ID: "npc_1"}},
		{name: "player id", raw: `"pc-1"`, want: &Turn{Type: SidePlayer, ID: "pc-1"}},
		{name: "opponent id", raw: `"npc_1"`, want: &Turn{Type: SideOpponent, ID: "npc_1"}},
		{name: "unknown npc id", raw: `"npc_99"`, want: &Turn{Type: SideOpponent, ID: "npc_99"}},
		{name: "unknown id", raw: `"drifter"`, want: &Turn{Type: SidePlayer, ID: "drifter"}},
		{name: "typed object", raw: `{"type":"opponent","id":"npc_1"}`, want: &Turn{Type: SideOpponent, ID: "npc_1"}},
		{name: "side object", raw: `{"side":"player"}`, want: &Turn{Type: SidePlayer, ID: "pc-1"}},
		{name: "player id object", raw: `{"playerId":"pc-1"}`, want: &Turn{Type: SidePlayer, ID: "pc-1"}},
		{name: "id object", raw: `{"id":"npc_1"}`, want: &Turn{Type: SideOpponent, ID: "npc_1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceTurn(json.RawMessage(tt.raw), "pc-1", "npc_1")
			if err != nil {
				t.Fatalf("CoerceTurn: %v", err)
			}
			switch {
			case tt.want == nil && got != nil:
				t.Fatalf("turn = %+v, want nil", got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Fatalf("turn = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCoerceTurnRejects(t *testing.T) {
	for _, raw := range []string{`42`, `true`, `[]`, `{}`, `{"type":"bystander"}`} {
		if _, err := CoerceTurn(json.RawMessage(raw), "pc-1", "npc_1"); !errors.Is(err, ErrInvalidTurn) {
			t.Fatalf("CoerceTurn(%s) error = %v, want %v", raw, err, ErrInvalidTurn)
		}
	}
}

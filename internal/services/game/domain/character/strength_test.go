package character

import "testing"

func TestStrengthAfterDamage(t *testing.T) {
	tests := []struct {
		current, damage, want int
	}{
		{current: 10, damage: 4, want: 6},
		{current: 10, damage: 0, want: 10},
		{current: 10, damage: 10, want: 0},
		{current: 3, damage: 9, want: 0},
		{current: 0, damage: 1, want: 0},
	}
	for _, tt := range tests {
		if got := StrengthAfterDamage(tt.current, tt.damage); got != tt.want {
			t.Fatalf("StrengthAfterDamage(%d, %d) = %d, want %d", tt.current, tt.damage, got, tt.want)
		}
	}
}

func TestApplyDamageGrowsHistoryByOne(t *testing.T) {
	c := &Character{
		ID:         "pc-1",
		Attributes: Attributes{Strength: 12, BaseStrength: 12},
		StrengthHistory: StrengthHistory{
			BaseStrength: 12,
			Changes:      []StrengthChange{{PreviousValue: 14, NewValue: 12, Reason: ReasonDamage}},
		},
	}
	for damage := 0; damage <= 15; damage++ {
		next := ApplyDamage(c, damage, "", 42)
		want := StrengthAfterDamage(12, damage)
		if next.Attributes.Strength != want {
			t.Fatalf("damage %d: strength = %d, want %d", damage, next.Attributes.Strength, want)
		}
		if len(next.StrengthHistory.Changes) != 2 {
			t.Fatalf("damage %d: changes = %d, want 2", damage, len(next.StrengthHistory.Changes))
		}
		last := next.StrengthHistory.Changes[1]
		if last.PreviousValue != 12 || last.NewValue != want || last.Timestamp != 42 {
			t.Fatalf("damage %d: change = %+v, want 12 -> %d at 42", damage, last, want)
		}
		if next.StrengthHistory.Changes[0].PreviousValue != 14 {
			t.Fatal("expected earlier history to keep insertion order")
		}
		if next.Attributes.BaseStrength != 12 {
			t.Fatalf("damage %d: base strength = %d, want 12", damage, next.Attributes.BaseStrength)
		}
	}
	if len(c.StrengthHistory.Changes) != 1 || c.Attributes.Strength != 12 {
		t.Fatal("expected input character to stay untouched")
	}
}

func TestRecordDoesNotAliasHistory(t *testing.T) {
	base := StrengthHistory{Changes: make([]StrengthChange, 1, 4)}
	first := base.Record(StrengthChange{NewValue: 1})
	second := base.Record(StrengthChange{NewValue: 2})
	if first.Changes[1].NewValue != 1 || second.Changes[1].NewValue != 2 {
		t.Fatalf("records share storage: %+v / %+v", first.Changes, second.Changes)
	}
}

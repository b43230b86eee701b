package fold

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestEnvClockUsesConfiguredNow(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	env := Env{Now: func() time.Time { return fixed }}
	if got := env.Clock(); !got.Equal(fixed) {
		t.Fatalf("clock = %v, want %v", got, fixed)
	}
	if got := env.NowMillis(); got != fixed.UnixMilli() {
		t.Fatalf("now millis = %d, want %d", got, fixed.UnixMilli())
	}
}

func TestEnvIDPrefixesGeneratedValue(t *testing.T) {
	env := Env{NewID: func() (string, error) { return "abc", nil }}
	if got := env.ID("note"); got != "note_abc" {
		t.Fatalf("id = %s, want note_abc", got)
	}
	if got := env.ID(""); got != "abc" {
		t.Fatalf("id = %s, want abc", got)
	}
}

func TestEnvIDFallsBackWhenSourceFails(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	env := Env{
		Now:   func() time.Time { return fixed },
		NewID: func() (string, error) { return "", errors.New("boom") },
	}
	if got := env.ID("note"); got != "note_20260102030405.000" {
		t.Fatalf("id = %s, want note_20260102030405.000", got)
	}
}

func TestEnvDefaultIDIsNonEmpty(t *testing.T) {
	if got := (Env{}).ID(""); len(got) != 26 {
		t.Fatalf("id length = %d, want 26", len(got))
	}
}

func TestEnvWarnfUsesConfiguredLogger(t *testing.T) {
	var lines []string
	env := Env{Logf: func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}}
	env.Warnf("combat end-state invalid: %d errors", 2)
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	if !strings.HasPrefix(lines[0], "warning: ") {
		t.Fatalf("line = %q, want warning prefix", lines[0])
	}
}

package session

import (
	"errors"
	"slices"
	"testing"
)

func TestManagerGetReusesSessions(t *testing.T) {
	m := NewManager(Config{Engine: testEngine()})

	a, err := m.Get("alpha")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	again, err := m.Get(" alpha ")
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if a != again {
		t.Fatal("expected the same session for the same id")
	}
	if a.ID() != "alpha" {
		t.Fatalf("id = %q, want %q", a.ID(), "alpha")
	}

	if _, err := m.Get("beta"); err != nil {
		t.Fatalf("get beta: %v", err)
	}
	if got := m.IDs(); !slices.Equal(got, []string{"alpha", "beta"}) {
		t.Fatalf("ids = %v, want [alpha beta]", got)
	}

	m.Close("alpha")
	fresh, err := m.Get("alpha")
	if err != nil {
		t.Fatalf("get after close: %v", err)
	}
	if fresh == a {
		t.Fatal("expected a new session after close")
	}
}

func TestManagerRejectsBlankID(t *testing.T) {
	if _, err := NewManager(Config{}).Get("  "); !errors.Is(err, ErrSessionIDRequired) {
		t.Fatalf("error = %v, want %v", err, ErrSessionIDRequired)
	}
}

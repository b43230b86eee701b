package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/louisbranch/boothill/internal/services/game/domain/action"
	"github.com/louisbranch/boothill/internal/services/game/domain/aggregate"
	"github.com/louisbranch/boothill/internal/services/game/domain/fold"
	"github.com/louisbranch/boothill/internal/services/game/storage"
	"github.com/louisbranch/boothill/internal/services/game/storage/memory"
)

var fixedTime = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

func testEngine() aggregate.Engine {
	next := 0
	return aggregate.Engine{Env: fold.Env{
		Now: func() time.Time { return fixedTime },
		NewID: func() (string, error) {
			next++
			return fmt.Sprintf("id%d", next), nil
		},
		Logf: func(string, ...any) {},
	}}
}

func act(typ action.Type, payload string) action.Action {
	a := action.Action{Type: typ}
	if payload != "" {
		a.Payload = json.RawMessage(payload)
	}
	return a
}

func newTestSession(t *testing.T, cfg Config) (*Session, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	if cfg.ID == "" {
		cfg.ID = "sess"
	}
	cfg.Engine = testEngine()
	cfg.Tracer = provider.Tracer("session-test")
	return New(cfg), recorder
}

func TestDispatchAdvancesState(t *testing.T) {
	s, _ := newTestSession(t, Config{})
	before := s.State()

	next, err := s.Dispatch(context.Background(), act("SET_PLAYER", `"p1"`))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if next.CurrentPlayer != "p1" {
		t.Fatalf("current player = %q, want %q", next.CurrentPlayer, "p1")
	}
	if s.State() != next {
		t.Fatal("expected session to hold the new state")
	}
	if before.CurrentPlayer != "" {
		t.Fatal("expected previous state to stay untouched")
	}
	if s.UndoLen() != 1 {
		t.Fatalf("undo len = %d, want 1", s.UndoLen())
	}
}

func TestDispatchNoChangeSkipsUndo(t *testing.T) {
	s, _ := newTestSession(t, Config{})
	before := s.State()

	next, err := s.Dispatch(context.Background(), act("unknown/THING", `{}`))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if next != before {
		t.Fatal("expected identical state for an unknown action")
	}
	if s.UndoLen() != 0 {
		t.Fatalf("undo len = %d, want 0", s.UndoLen())
	}
}

func TestDispatchErrorKeepsState(t *testing.T) {
	s, recorder := newTestSession(t, Config{})
	before := s.State()

	got, err := s.Dispatch(context.Background(), act(action.SetGameProgress, `"far"`))
	if err == nil {
		t.Fatal("expected payload error")
	}
	if got != before || s.State() != before {
		t.Fatal("expected state to be kept on error")
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Fatalf("span status = %v, want %v", spans[0].Status().Code, codes.Error)
	}
}

func TestDispatchSpanAttributes(t *testing.T) {
	s, recorder := newTestSession(t, Config{})
	if _, err := s.Dispatch(context.Background(), act("ADD_ITEM", `{"name":"Rope"}`)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if spans[0].Name() != "session.Dispatch" {
		t.Fatalf("span name = %q, want %q", spans[0].Name(), "session.Dispatch")
	}
	want := map[attribute.Key]string{
		"session.id":    "sess",
		"action.type":   string(action.AddItem),
		"action.domain": string(action.DomainInventory),
	}
	got := map[attribute.Key]string{}
	for _, kv := range spans[0].Attributes() {
		got[kv.Key] = kv.Value.Emit()
	}
	for key, value := range want {
		if got[key] != value {
			t.Fatalf("attribute %s = %q, want %q", key, got[key], value)
		}
	}
	if got["state.changed"] != "true" {
		t.Fatalf("state.changed = %q, want true", got["state.changed"])
	}
}

func TestUndo(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, Config{})
	first := s.State()
	if _, err := s.Dispatch(ctx, act("SET_PLAYER", `"p1"`)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	second := s.State()
	if _, err := s.Dispatch(ctx, act("SET_PLAYER", `"p2"`)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	got, err := s.Undo(ctx)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got != second {
		t.Fatal("expected the second state back")
	}
	got, err = s.Undo(ctx)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got != first {
		t.Fatal("expected the first state back")
	}
	if _, err := s.Undo(ctx); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("error = %v, want %v", err, ErrNothingToUndo)
	}
}

func TestUndoDepthIsBounded(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, Config{UndoDepth: 2})
	for i := 1; i <= 4; i++ {
		if _, err := s.Dispatch(ctx, act(action.SetGameProgress, fmt.Sprint(i))); err != nil {
			t.Fatalf("dispatch %d: %v", i, err)
		}
	}
	if s.UndoLen() != 2 {
		t.Fatalf("undo len = %d, want 2", s.UndoLen())
	}
	for _, want := range []int{3, 2} {
		got, err := s.Undo(ctx)
		if err != nil {
			t.Fatalf("undo: %v", err)
		}
		if got.GameProgress != want {
			t.Fatalf("game progress = %d, want %d", got.GameProgress, want)
		}
	}
}

func TestUndoDisabled(t *testing.T) {
	s, _ := newTestSession(t, Config{UndoDepth: -1})
	if _, err := s.Dispatch(context.Background(), act("SET_PLAYER", `"p1"`)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if _, err := s.Undo(context.Background()); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("error = %v, want %v", err, ErrNothingToUndo)
	}
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	s, _ := newTestSession(t, Config{Store: store})
	if _, err := s.Dispatch(ctx, act("SET_PLAYER", `"p1"`)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	save, err := s.Save(ctx, "before the duel")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if save.SessionID != "sess" || save.Name != "before the duel" {
		t.Fatalf("save = %+v, want session and name set", save)
	}
	if got := s.State().SavedTimestamp; got != fixedTime.UnixMilli() {
		t.Fatalf("saved timestamp = %d, want %d", got, fixedTime.UnixMilli())
	}

	if _, err := s.Dispatch(ctx, act("SET_PLAYER", `"p2"`)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	loaded, err := s.Load(ctx, save.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.CurrentPlayer != "p1" || loaded.SavedTimestamp != fixedTime.UnixMilli() {
		t.Fatalf("loaded = %+v, want saved player and timestamp", loaded)
	}

	undone, err := s.Undo(ctx)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if undone.CurrentPlayer != "p2" {
		t.Fatalf("current player = %q, want %q", undone.CurrentPlayer, "p2")
	}
}

func TestLoadMigratesLegacySave(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	legacy := storage.Save{
		ID:        "legacy",
		SessionID: "sess",
		StateJSON: []byte(`{"currentPlayer":"p9","inventory":[{"id":"rope","name":"Rope","quantity":1}]}`),
		CreatedAt: fixedTime,
	}
	if err := store.PutSave(ctx, legacy); err != nil {
		t.Fatalf("put: %v", err)
	}
	s, _ := newTestSession(t, Config{Store: store})

	loaded, err := s.Load(ctx, "legacy")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !aggregate.IsComplete(loaded) {
		t.Fatal("expected a completed state")
	}
	if loaded.CurrentPlayer != "p9" {
		t.Fatalf("current player = %q, want %q", loaded.CurrentPlayer, "p9")
	}
}

func TestLoadRejectsOtherSession(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	if err := store.PutSave(ctx, storage.Save{ID: "x", SessionID: "other", StateJSON: []byte(`{}`)}); err != nil {
		t.Fatalf("put: %v", err)
	}
	s, _ := newTestSession(t, Config{Store: store})
	if _, err := s.Load(ctx, "x"); !errors.Is(err, ErrSaveSessionMismatch) {
		t.Fatalf("error = %v, want %v", err, ErrSaveSessionMismatch)
	}
}

func TestLoadMissingSave(t *testing.T) {
	s, _ := newTestSession(t, Config{Store: memory.New()})
	if _, err := s.Load(context.Background(), "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestSaveWithoutStore(t *testing.T) {
	s, _ := newTestSession(t, Config{})
	if _, err := s.Save(context.Background(), "x"); !errors.Is(err, ErrStoreRequired) {
		t.Fatalf("error = %v, want %v", err, ErrStoreRequired)
	}
	if _, err := s.ListSaves(context.Background(), 10); !errors.Is(err, ErrStoreRequired) {
		t.Fatalf("error = %v, want %v", err, ErrStoreRequired)
	}
}

func TestAutosave(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	s, _ := newTestSession(t, Config{Store: store, Autosave: true})

	if _, err := s.Dispatch(ctx, act("SET_PLAYER", `"p1"`)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if _, err := s.Dispatch(ctx, act("SET_PLAYER", `"p2"`)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	saves, err := s.ListSaves(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(saves) != 1 {
		t.Fatalf("saves = %d, want one rolling autosave", len(saves))
	}
	if saves[0].ID != "sess_autosave" || saves[0].Name != AutosaveName {
		t.Fatalf("save = %+v, want autosave slot", saves[0])
	}
	restored, err := aggregate.Decode(saves[0].StateJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if restored.CurrentPlayer != "p2" {
		t.Fatalf("current player = %q, want %q", restored.CurrentPlayer, "p2")
	}
}

func TestStepReportsChange(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, Config{})

	result, err := s.Step(ctx, act("SET_PLAYER", `"p1"`))
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !result.Changed || result.State.CurrentPlayer != "p1" {
		t.Fatalf("result = %+v, want changed state", result)
	}

	result, err = s.Step(ctx, act("SET_PLAYER", `"p1"`))
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if result.Changed {
		t.Fatal("expected repeated SET_PLAYER to leave the state untouched")
	}
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	platformotel "github.com/louisbranch/boothill/internal/platform/otel"
	"github.com/louisbranch/boothill/internal/services/game/domain/action"
	"github.com/louisbranch/boothill/internal/services/game/domain/aggregate"
	"github.com/louisbranch/boothill/internal/services/game/storage"
)

// DefaultUndoDepth bounds the undo history when Config leaves it unset.
const DefaultUndoDepth = 20

// AutosaveName labels the rolling autosave slot of a session.
const AutosaveName = "autosave"

var (
	// ErrNothingToUndo is returned by Undo when the history is empty.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrStoreRequired is returned by save operations on a session without a store.
	ErrStoreRequired = errors.New("save store is not configured")
	// ErrSaveSessionMismatch is returned when loading a save owned by another session.
	ErrSaveSessionMismatch = errors.New("save belongs to another session")
)

// Config configures a Session.
type Config struct {
	ID     string
	Engine aggregate.Engine
	Store  storage.SaveStore
	// UndoDepth caps the undo history. Negative disables undo.
	UndoDepth int
	// Autosave writes the autosave slot after every changing dispatch.
	Autosave bool
	// Initial seeds the session; defaults to aggregate.Initial().
	Initial *aggregate.State
	Tracer  trace.Tracer
}

// Session owns the current state of one game.
type Session struct {
	mu        sync.Mutex
	id        string
	engine    aggregate.Engine
	store     storage.SaveStore
	state     *aggregate.State
	undo      []*aggregate.State
	undoDepth int
	autosave  bool
	tracer    trace.Tracer
}

// New builds a session from cfg.
func New(cfg Config) *Session {
	state := cfg.Initial
	if state == nil {
		state = aggregate.Initial()
	}
	depth := cfg.UndoDepth
	if depth == 0 {
		depth = DefaultUndoDepth
	}
	if depth < 0 {
		depth = 0
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = platformotel.Tracer("github.com/louisbranch/boothill/internal/services/game/session")
	}
	return &Session{
		id:        strings.TrimSpace(cfg.ID),
		engine:    cfg.Engine,
		store:     cfg.Store,
		state:     state,
		undoDepth: depth,
		autosave:  cfg.Autosave,
		tracer:    tracer,
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// State returns the current state. Callers must treat it as read-only.
func (s *Session) State() *aggregate.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// UndoLen reports how many states Undo can restore.
func (s *Session) UndoLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo)
}

// Result is the outcome of one dispatch.
type Result struct {
	State *aggregate.State
	// Changed is false when the action left the state untouched.
	Changed bool
}

// Dispatch applies a to the current state. A rejected action leaves the
// session untouched and returns the current state with the error.
func (s *Session) Dispatch(ctx context.Context, a action.Action) (*aggregate.State, error) {
	result, err := s.Step(ctx, a)
	return result.State, err
}

// Step is Dispatch that also reports whether the state changed.
func (s *Session) Step(ctx context.Context, a action.Action) (Result, error) {
	normalized := action.Normalize(a)
	ctx, span := s.tracer.Start(ctx, "session.Dispatch", trace.WithAttributes(
		attribute.String("session.id", s.id),
		attribute.String("action.type", string(normalized.Type)),
		attribute.String("action.domain", string(action.Classify(normalized))),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.state
	next, err := s.engine.Transition(current, normalized)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{State: current}, err
	}
	changed := next != current
	span.SetAttributes(attribute.Bool("state.changed", changed))
	if !changed {
		return Result{State: current}, nil
	}

	s.pushUndo(current)
	s.state = next
	if s.autosave && s.store != nil {
		if _, err := s.persist(ctx, AutosaveName, s.autosaveID()); err != nil {
			span.RecordError(err)
			log.Printf("session %s autosave: %v", s.id, err)
		}
	}
	return Result{State: next, Changed: true}, nil
}

// Undo restores the state before the most recent change.
func (s *Session) Undo(ctx context.Context) (*aggregate.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.undo) == 0 {
		return s.state, ErrNothingToUndo
	}
	last := len(s.undo) - 1
	s.state = s.undo[last]
	s.undo[last] = nil
	s.undo = s.undo[:last]
	return s.state, nil
}

// Save stamps the saved timestamp and persists a snapshot under a new id.
func (s *Session) Save(ctx context.Context, name string) (storage.Save, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return storage.Save{}, ErrStoreRequired
	}
	stamped, err := s.engine.Transition(s.state, action.Null(action.SetSavedTimestamp))
	if err != nil {
		return storage.Save{}, fmt.Errorf("stamp save: %w", err)
	}
	previous := s.state
	s.state = stamped

	save, err := s.persist(ctx, strings.TrimSpace(name), s.engine.Env.ID("save"))
	if err != nil {
		s.state = previous
		return storage.Save{}, err
	}
	return save, nil
}

// Load replaces the current state with a stored save. Legacy snapshots are
// migrated on the way in. The replaced state can be restored with Undo.
func (s *Session) Load(ctx context.Context, saveID string) (*aggregate.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, ErrStoreRequired
	}
	save, err := s.store.GetSave(ctx, saveID)
	if err != nil {
		return nil, fmt.Errorf("get save %s: %w", saveID, err)
	}
	if s.id != "" && save.SessionID != s.id {
		return nil, fmt.Errorf("load save %s: %w", saveID, ErrSaveSessionMismatch)
	}
	loaded, err := aggregate.Decode(save.StateJSON)
	if err != nil {
		return nil, fmt.Errorf("decode save %s: %w", saveID, err)
	}
	s.pushUndo(s.state)
	s.state = loaded
	return loaded, nil
}

// ListSaves lists the saves of this session, newest first.
func (s *Session) ListSaves(ctx context.Context, limit int) ([]storage.Save, error) {
	if s.store == nil {
		return nil, ErrStoreRequired
	}
	return s.store.ListSaves(ctx, s.id, limit)
}

func (s *Session) pushUndo(state *aggregate.State) {
	if s.undoDepth == 0 || state == nil {
		return
	}
	if len(s.undo) == s.undoDepth {
		copy(s.undo, s.undo[1:])
		s.undo[len(s.undo)-1] = nil
		s.undo = s.undo[:len(s.undo)-1]
	}
	s.undo = append(s.undo, state)
}

func (s *Session) autosaveID() string {
	return s.id + "_" + AutosaveName
}

// persist writes the current state; the caller holds s.mu.
func (s *Session) persist(ctx context.Context, name, saveID string) (storage.Save, error) {
	data, err := json.Marshal(s.state)
	if err != nil {
		return storage.Save{}, fmt.Errorf("marshal state: %w", err)
	}
	save := storage.Save{
		ID:        saveID,
		SessionID: s.id,
		Name:      name,
		StateJSON: data,
		CreatedAt: s.engine.Env.Clock().UTC().Truncate(time.Millisecond),
	}
	if err := s.store.PutSave(ctx, save); err != nil {
		return storage.Save{}, fmt.Errorf("put save: %w", err)
	}
	return save, nil
}

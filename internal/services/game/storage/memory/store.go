// Package memory is an in-process SaveStore for tests and ephemeral sessions.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/louisbranch/boothill/internal/services/game/storage"
)

// Store keeps saves in a map guarded by a mutex.
type Store struct {
	mu    sync.RWMutex
	saves map[string]storage.Save
}

var _ storage.SaveStore = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{saves: map[string]storage.Save{}}
}

// PutSave stores a copy of save.
func (s *Store) PutSave(ctx context.Context, save storage.Save) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := save.Validate(); err != nil {
		return err
	}
	save.StateJSON = slices.Clone(save.StateJSON)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves[save.ID] = save
	return nil
}

// GetSave returns a copy of the save with id.
func (s *Store) GetSave(ctx context.Context, id string) (storage.Save, error) {
	if err := ctx.Err(); err != nil {
		return storage.Save{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	save, ok := s.saves[strings.TrimSpace(id)]
	if !ok {
		return storage.Save{}, storage.ErrNotFound
	}
	save.StateJSON = slices.Clone(save.StateJSON)
	return save, nil
}

// ListSaves returns saves newest first.
func (s *Store) ListSaves(ctx context.Context, sessionID string, limit int) ([]storage.Save, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]storage.Save, 0, len(s.saves))
	for _, save := range s.saves {
		if sessionID != "" && save.SessionID != sessionID {
			continue
		}
		save.StateJSON = slices.Clone(save.StateJSON)
		out = append(out, save)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b storage.Save) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	if limit = storage.NormalizeLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteSave removes the save with id.
func (s *Store) DeleteSave(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.saves[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.saves, id)
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

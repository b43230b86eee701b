package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound indicates a requested save is missing.
var ErrNotFound = errors.New("record not found")

// DefaultListLimit caps ListSaves when the caller passes no limit.
const DefaultListLimit = 50

// Save is one persisted snapshot of a session.
type Save struct {
	ID        string
	SessionID string
	Name      string
	// StateJSON is the aggregate state as produced by json.Marshal.
	StateJSON []byte
	CreatedAt time.Time
}

// Validate checks the fields every store requires.
func (s Save) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("save id is required")
	}
	if strings.TrimSpace(s.SessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	if len(s.StateJSON) == 0 {
		return fmt.Errorf("save state is required")
	}
	return nil
}

// SaveStore persists saved games.
type SaveStore interface {
	// PutSave inserts or replaces a save by id.
	PutSave(ctx context.Context, save Save) error
	// GetSave returns the save with id or ErrNotFound.
	GetSave(ctx context.Context, id string) (Save, error)
	// ListSaves returns the saves of a session, newest first. An empty
	// sessionID lists every session.
	ListSaves(ctx context.Context, sessionID string, limit int) ([]Save, error)
	// DeleteSave removes a save. Deleting a missing save returns ErrNotFound.
	DeleteSave(ctx context.Context, id string) error
	Close() error
}

// NormalizeLimit clamps a list limit into (0, DefaultListLimit].
func NormalizeLimit(limit int) int {
	if limit <= 0 || limit > DefaultListLimit {
		return DefaultListLimit
	}
	return limit
}

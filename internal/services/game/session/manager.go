package session

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrSessionIDRequired is returned for blank session ids.
var ErrSessionIDRequired = errors.New("session id is required")

// Manager creates sessions on first use and returns the same session for
// later calls with the same id.
type Manager struct {
	mu       sync.Mutex
	template Config
	sessions map[string]*Session
}

// NewManager returns a manager whose sessions share template except for ID.
func NewManager(template Config) *Manager {
	return &Manager{template: template, sessions: map[string]*Session{}}
}

// Get returns the session with id, creating it when missing.
func (m *Manager) Get(id string) (*Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrSessionIDRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	cfg := m.template
	cfg.ID = id
	cfg.Initial = nil
	s := New(cfg)
	m.sessions[id] = s
	return s, nil
}

// IDs lists the open sessions in sorted order.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close drops a session from memory. Saved games are kept.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, strings.TrimSpace(id))
}

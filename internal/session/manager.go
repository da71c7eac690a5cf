// Package session owns the keyed store of running matches. The game core
// is strictly single-match and unsynchronized; a Session wraps one match
// with the mutex that serializes all mutations, and the Manager maps
// caller-chosen keys (one per channel, table, or connection) to sessions.
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Skeome/Arcana-Sim/internal/game"
	"github.com/Skeome/Arcana-Sim/internal/game/ai"
)

var (
	// ErrExists is returned when a session key is already in use.
	ErrExists = errors.New("session already exists for this key")
	// ErrNotFound is returned when no session is registered for a key.
	ErrNotFound = errors.New("no session for this key")
)

// Session is one running match plus its serialization lock. When AISide is
// non-empty the session drives that side automatically after each human
// turn ends.
type Session struct {
	ID     string
	Key    string
	AISide string

	mu     sync.Mutex
	match  *game.MatchState
	driver *ai.Driver
}

// Do runs fn with exclusive access to the match. All reads and mutations
// must go through here; the core provides no locking of its own.
func (s *Session) Do(fn func(m *game.MatchState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.match)
}

// View returns a consistent snapshot of the match.
func (s *Session) View() game.MatchView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.View()
}

// RunAITurn plays the AI side's turn if it is up. No-op for two-human
// sessions, finished matches, or when it is not the AI's turn.
func (s *Session) RunAITurn() {
	if s.driver == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.match.GameOver || s.match.CurrentSide != s.AISide {
		return
	}
	s.driver.PlayTurn(s.match, s.AISide)
}

// Manager is the session store with explicit create/lookup/destroy
// lifecycle.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *zap.Logger
}

// NewManager creates an empty session store. logger may be nil.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Create registers a new session for key around the given match. aiSide
// may be empty for a two-human match; otherwise driver plays that side.
func (m *Manager) Create(key string, match *game.MatchState, aiSide string, driver *ai.Driver) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[key]; exists {
		return nil, ErrExists
	}
	s := &Session{
		ID:     uuid.NewString(),
		Key:    key,
		AISide: aiSide,
		match:  match,
		driver: driver,
	}
	m.sessions[key] = s
	if m.logger != nil {
		m.logger.Info("session created",
			zap.String("session_id", s.ID),
			zap.String("key", key),
			zap.String("ai_side", aiSide),
		)
	}
	return s, nil
}

// Get looks up the session for key.
func (m *Manager) Get(key string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[key]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Destroy removes the session for key. Removing an absent key is an error
// so callers can distinguish a double-destroy.
func (m *Manager) Destroy(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[key]
	if !ok {
		return ErrNotFound
	}
	delete(m.sessions, key)
	if m.logger != nil {
		m.logger.Info("session destroyed",
			zap.String("session_id", s.ID),
			zap.String("key", key),
		)
	}
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

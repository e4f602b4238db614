package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/AicraftersLab/Article-To-Post/internal/observability/metrics"
)

// ErrNotFound is returned when a session ID is unknown or already closed.
var ErrNotFound = errors.New("session not found")

// Store keeps all live sessions in memory. Sessions are never persisted;
// closing the process discards them.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*State)}
}

// Create starts a new session with a fresh ID.
func (s *Store) Create() *State {
	state := newState(uuid.New().String())

	s.mu.Lock()
	s.sessions[state.ID()] = state
	s.mu.Unlock()

	metrics.SessionsActive.Inc()
	return state
}

// Get returns the session with the given ID.
func (s *Store) Get(id string) (*State, error) {
	s.mu.RLock()
	state, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return state, nil
}

// Delete closes a session. Deleting an unknown ID is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		metrics.SessionsActive.Dec()
	}
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linesmerrill/fiscal-cidadao/models"
)

// Manager keeps the open sessions by id
type Manager struct {
	opts Options
	deps Deps
	seed func() models.AppState

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a manager whose sessions start from seed
func NewManager(seed func() models.AppState, opts Options, deps Deps) *Manager {
	return &Manager{
		opts:     opts,
		deps:     deps.withDefaults(),
		seed:     seed,
		sessions: make(map[string]*Session),
	}
}

// Create opens a new session with a fresh id
func (m *Manager) Create() *Session {
	s := New(uuid.NewString(), m.seed(), m.opts, m.deps)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	sessionsActive.Inc()
	zap.S().Debugw("session opened", "session", s.ID)
	return s
}

// Get returns the session with id, if it is open
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// GetOrCreate returns the session with id, or a new one if id is unknown. The bool reports
// whether a session was created.
func (m *Manager) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		if s, ok := m.Get(id); ok {
			s.Touch()
			return s, false
		}
	}
	return m.Create(), true
}

// Remove closes and forgets the session with id
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return false
	}
	s.Close()
	sessionsActive.Dec()
	return true
}

// Sweep closes every session idle for longer than idle and returns how many were closed
func (m *Manager) Sweep(idle time.Duration) int {
	cutoff := m.deps.Now().Add(-idle)

	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.Close()
		sessionsActive.Dec()
		sessionsExpired.Inc()
	}
	return len(stale)
}

// Len returns the number of open sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close closes every session
func (m *Manager) Close() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		s.Close()
		sessionsActive.Dec()
	}
}

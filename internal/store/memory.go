// Package store provides the in-memory session store.
package store

import (
	"sync"

	"pdf-translate-server/internal/domain"
)

// MemoryStore keeps sessions in a process-wide map. Contents are lost on
// restart; there is no background expiry.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	logger   domain.Logger
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore(logger domain.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*domain.Session),
		logger:   logger,
	}
}

// Create records a new session. The caller supplies the identifier; UUIDs
// guarantee identifiers are never reused.
func (s *MemoryStore) Create(sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID] = sess
	s.logger.Debug("session created", "session_id", sess.ID, "filename", sess.Filename)
	return nil
}

// Get returns a copy of the session so callers never share mutable state
// with the store.
func (s *MemoryStore) Get(id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *sess
	return &copied, nil
}

// SetEditedPath stores the edited file reference, unconditionally
// overwriting any previous one.
func (s *MemoryStore) SetEditedPath(id, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	sess.EditedPath = path
	return nil
}

// SetTranslatedPath records a successful translation result.
func (s *MemoryStore) SetTranslatedPath(id, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	sess.TranslatedPath = path
	return nil
}

// Delete removes the session record and returns it. A second delete for the
// same id yields ErrSessionNotFound.
func (s *MemoryStore) Delete(id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	s.logger.Debug("session deleted", "session_id", id)
	return sess, nil
}

// List returns a summary for every active session. No pagination.
func (s *MemoryStore) List() []domain.SessionSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.SessionSummary, 0, len(s.sessions))
	for id, sess := range s.sessions {
		summaries = append(summaries, domain.SessionSummary{
			SessionID:      id,
			Filename:       sess.Filename,
			HasTranslation: sess.HasTranslation(),
		})
	}
	return summaries
}

// Count returns the number of active sessions
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

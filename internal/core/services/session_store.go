package services

import (
	"sync"
	"time"

	portssvc "github.com/SscSPs/ledger_desk/internal/core/ports/services"
)

type sessionSlot struct {
	session  *LedgerSession
	lastUsed time.Time
}

// SessionStore keeps one LedgerSession per session id. Idle sessions are evicted
// when the store is next accessed; there is no background sweeper.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionSlot
	idleTTL  time.Duration
	factory  func() *LedgerSession
	now      func() time.Time
}

// NewSessionStore creates a store building new sessions with factory.
// A zero idleTTL keeps sessions forever.
func NewSessionStore(factory func() *LedgerSession, idleTTL time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionSlot),
		idleTTL:  idleTTL,
		factory:  factory,
		now:      time.Now,
	}
}

var _ portssvc.SessionProvider = (*SessionStore)(nil)

// Session implements portssvc.SessionProvider.
func (s *SessionStore) Session(sessionID string) portssvc.LedgerSessionSvc {
	return s.Get(sessionID)
}

// Get returns the session for sessionID, creating it when needed.
func (s *SessionStore) Get(sessionID string) *LedgerSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictIdle(now)

	slot, ok := s.sessions[sessionID]
	if !ok {
		slot = &sessionSlot{session: s.factory()}
		s.sessions[sessionID] = slot
	}
	slot.lastUsed = now
	return slot.session
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) evictIdle(now time.Time) {
	if s.idleTTL <= 0 {
		return
	}
	for id, slot := range s.sessions {
		if now.Sub(slot.lastUsed) > s.idleTTL {
			delete(s.sessions, id)
		}
	}
}

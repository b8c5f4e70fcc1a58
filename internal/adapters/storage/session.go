package storage

import (
	"context"
	"sync"
	"time"

	"github.com/jsamuelsen/quotebook/internal/domain"
)

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 24 * time.Hour

type session struct {
	values   map[string]string
	lastSeen time.Time
}

// MemorySessionStore keeps session values in memory and forgets sessions
// that have been idle longer than the TTL.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

// SessionOption configures a MemorySessionStore.
type SessionOption func(*MemorySessionStore)

// WithClock overrides the time source.
func WithClock(now func() time.Time) SessionOption {
	return func(s *MemorySessionStore) { s.now = now }
}

// NewMemorySessionStore creates a store. A non-positive ttl uses DefaultSessionTTL.
func NewMemorySessionStore(ttl time.Duration, opts ...SessionOption) *MemorySessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	s := &MemorySessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// live returns the session if it exists and has not expired. Caller holds mu.
func (s *MemorySessionStore) live(id string) *session {
	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}

	if s.now().Sub(sess.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil
	}

	return sess
}

// Get returns the value for key in the session or domain.ErrNotFound.
func (s *MemorySessionStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(sessionID)
	if sess == nil {
		return "", domain.NewNotFoundError("session", sessionID)
	}

	v, ok := sess.values[key]
	if !ok {
		return "", domain.NewNotFoundError("session key", key)
	}

	sess.lastSeen = s.now()

	return v, nil
}

// Set stores value under key, creating the session if needed.
func (s *MemorySessionStore) Set(ctx context.Context, sessionID, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(sessionID)
	if sess == nil {
		sess = &session{values: make(map[string]string)}
		s.sessions[sessionID] = sess
	}

	sess.values[key] = value
	sess.lastSeen = s.now()

	return nil
}

// Pop returns and removes the value under key.
func (s *MemorySessionStore) Pop(ctx context.Context, sessionID, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(sessionID)
	if sess == nil {
		return "", domain.NewNotFoundError("session", sessionID)
	}

	v, ok := sess.values[key]
	if !ok {
		return "", domain.NewNotFoundError("session key", key)
	}

	delete(sess.values, key)
	sess.lastSeen = s.now()

	return v, nil
}

// Sweep removes expired sessions and returns how many were removed.
func (s *MemorySessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0

	for id, sess := range s.sessions {
		if s.now().Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed
}

// Len returns the number of tracked sessions, expired or not.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Run sweeps expired sessions every interval until ctx is cancelled.
func (s *MemorySessionStore) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = s.ttl
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}

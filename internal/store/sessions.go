package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultIdleTTL     = 30 * time.Minute
	DefaultMaxSessions = 10000
)

type session struct {
	mem      *MemoryStore
	lastUsed time.Time
}

// Sessions hands every visitor an isolated MemoryStore. Logs idle for longer
// than the TTL are discarded, and when the cap is reached the least recently
// used session makes room for the new one.
type Sessions struct {
	mu      sync.Mutex
	logs    map[string]*session
	idleTTL time.Duration
	max     int
	now     func() time.Time
}

type SessionsOption func(*Sessions)

// WithIdleTTL sets how long an unused session survives; zero disables expiry.
func WithIdleTTL(d time.Duration) SessionsOption {
	return func(s *Sessions) { s.idleTTL = d }
}

// WithMaxSessions caps the number of live sessions; zero means no cap.
func WithMaxSessions(n int) SessionsOption {
	return func(s *Sessions) { s.max = n }
}

func withClock(now func() time.Time) SessionsOption {
	return func(s *Sessions) { s.now = now }
}

func NewSessions(opts ...SessionsOption) *Sessions {
	s := &Sessions{
		logs:    make(map[string]*session),
		idleTTL: DefaultIdleTTL,
		max:     DefaultMaxSessions,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New opens a session and returns its ID.
func (s *Sessions) New() (string, *MemoryStore) {
	id := uuid.NewString()
	mem := NewMemoryStore()

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)
	if s.max > 0 && len(s.logs) >= s.max {
		s.evictOldestLocked()
	}
	s.logs[id] = &session{mem: mem, lastUsed: now}
	return id, mem
}

// Get returns the live log for id and marks it used. Expired sessions are
// dropped and reported as missing.
func (s *Sessions) Get(id string) (*MemoryStore, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.logs[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.expired(sess, now) {
		delete(s.logs, id)
		return nil, false
	}
	sess.lastUsed = now
	return sess.mem, true
}

// GetOrCreate returns the log for id, opening a new session when id is
// unknown, expired or malformed. created is true when a new ID was issued.
func (s *Sessions) GetOrCreate(id string) (string, *MemoryStore, bool) {
	if mem, ok := s.Get(id); ok {
		return id, mem, false
	}
	newID, mem := s.New()
	return newID, mem, true
}

// Sweep discards every expired session and returns how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now())
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs)
}

func (s *Sessions) expired(sess *session, now time.Time) bool {
	return s.idleTTL > 0 && now.Sub(sess.lastUsed) > s.idleTTL
}

func (s *Sessions) sweepLocked(now time.Time) int {
	removed := 0
	for id, sess := range s.logs {
		if s.expired(sess, now) {
			delete(s.logs, id)
			removed++
		}
	}
	return removed
}

func (s *Sessions) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, sess := range s.logs {
		if oldestID == "" || sess.lastUsed.Before(oldest) {
			oldestID, oldest = id, sess.lastUsed
		}
	}
	delete(s.logs, oldestID)
}

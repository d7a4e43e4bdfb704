package form

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session owns one form.
type Session struct {
	ID string

	mu       sync.Mutex
	form     *Form
	lastSeen time.Time
}

// Do runs fn with exclusive access to the session's form.
func (s *Session) Do(fn func(f *Form)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.form)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Snapshot()
}

// DefaultMaxSessions bounds a Store built with a non-positive maximum.
const DefaultMaxSessions = 10000

// Store keeps sessions in memory. Sessions not touched for IdleTTL are
// dropped during a later lookup, and once MaxSessions are held the session
// idle the longest makes room for a new one.
type Store struct {
	limits      Limits
	idleTTL     time.Duration
	maxSessions int
	now         func() time.Time

	mu        sync.Mutex
	sessions  map[string]*Session
	lastSweep time.Time
}

func NewStore(limits Limits, idleTTL time.Duration, maxSessions int) *Store {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}

	return &Store{
		limits:      limits,
		idleTTL:     idleTTL,
		maxSessions: maxSessions,
		now:         time.Now,
		sessions:    map[string]*Session{},
	}
}

// Limits are the limits of the forms the store creates.
func (st *Store) Limits() Limits {
	return New(st.limits).Limits()
}

// Lookup returns the session with the id without creating one.
func (st *Store) Lookup(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.sweep(now)

	s, ok := st.sessions[id]
	if !ok || id == "" {
		return nil, false
	}

	s.lastSeen = now

	return s, true
}

// Session returns the session with the id, or a new one when the id is
// unknown. The second result reports whether the session was created.
func (st *Store) Session(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.sweep(now)

	if s, ok := st.sessions[id]; ok && id != "" {
		s.lastSeen = now
		return s, false
	}

	if len(st.sessions) >= st.maxSessions {
		st.evictIdlest()
	}

	s := &Session{
		ID:       uuid.NewString(),
		form:     New(st.limits),
		lastSeen: now,
	}
	st.sessions[s.ID] = s

	return s, true
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *Store) evictIdlest() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, s := range st.sessions {
		if oldestID == "" || s.lastSeen.Before(oldest) {
			oldestID, oldest = id, s.lastSeen
		}
	}

	delete(st.sessions, oldestID)
}

func (st *Store) sweep(now time.Time) {
	if st.idleTTL <= 0 || now.Sub(st.lastSweep) < st.idleTTL/2 {
		return
	}

	st.lastSweep = now
	for id, s := range st.sessions {
		if now.Sub(s.lastSeen) > st.idleTTL {
			delete(st.sessions, id)
		}
	}
}

package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/studentdash/internal/predict"
	"github.com/KaramelBytes/studentdash/internal/table"
)

// Session store defaults.
const (
	DefaultMaxSessions = 10000
	DefaultSessionTTL  = 24 * time.Hour
)

// UIState is one visitor's interactive state. It is never persisted.
type UIState struct {
	Table     table.State    `json:"table"`
	Inputs    predict.Inputs `json:"inputs"`
	Predicted *float64       `json:"predicted,omitempty"`
}

type sessionEntry struct {
	state    UIState
	lastSeen time.Time
}

// Sessions keeps UIState per visitor id in memory. Entries idle longer than
// the TTL expire, and the least recently seen entry is evicted once the store
// holds max entries.
type Sessions struct {
	mu     sync.Mutex
	states map[string]*sessionEntry
	max    int
	ttl    time.Duration
	now    func() time.Time
}

// NewSessions returns an empty session store with the default bounds.
func NewSessions() *Sessions {
	return NewBoundedSessions(DefaultMaxSessions, DefaultSessionTTL)
}

// NewBoundedSessions returns an empty store holding at most max entries, each
// expiring after ttl without use. Non-positive values select the defaults.
func NewBoundedSessions(max int, ttl time.Duration) *Sessions {
	if max <= 0 {
		max = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{states: make(map[string]*sessionEntry), max: max, ttl: ttl, now: time.Now}
}

// New allocates a fresh session id with default state.
func (s *Sessions) New() string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.makeRoom()
	s.states[id] = &sessionEntry{lastSeen: s.now()}
	return id
}

// Get returns the state for id and whether the session exists.
func (s *Sessions) Get(id string) (UIState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live(id)
	if !ok {
		return UIState{}, false
	}
	e.lastSeen = s.now()
	return e.state, true
}

// Update applies fn to the state for id, creating it if needed, and returns
// the stored result.
func (s *Sessions) Update(id string, fn func(UIState) UIState) UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live(id)
	if !ok {
		s.makeRoom()
		e = &sessionEntry{}
		s.states[id] = e
	}
	e.state = fn(e.state)
	e.lastSeen = s.now()
	return e.state
}

// Len returns the number of stored sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

// live returns the entry for id unless it has expired. Expired entries are
// removed. Callers hold mu.
func (s *Sessions) live(id string) (*sessionEntry, bool) {
	e, ok := s.states[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.lastSeen) > s.ttl {
		delete(s.states, id)
		return nil, false
	}
	return e, true
}

// makeRoom drops expired entries and, if the store is still full, the least
// recently seen one. Callers hold mu.
func (s *Sessions) makeRoom() {
	if len(s.states) < s.max {
		return
	}
	now := s.now()
	var oldestID string
	var oldest time.Time
	for id, e := range s.states {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.states, id)
			continue
		}
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	if len(s.states) >= s.max && oldestID != "" {
		delete(s.states, oldestID)
	}
}

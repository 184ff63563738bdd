// Package session keeps per-browser state in memory.
//
// A [Store] maps opaque session IDs to values. Nothing is persisted: the
// store lives as long as the process. An optional idle TTL bounds memory for
// long-running servers; with a zero TTL entries are kept until exit.
//
// # Usage
//
//	store := session.NewStore(30*time.Minute, func() *cardSession { return &cardSession{} })
//
//	v, ok := store.Get(cookie.Value)
//	if !ok {
//	    id, v = store.Create()
//	    // hand id to the browser
//	}
//
// Store guards its map only. Callers that mutate values from several
// goroutines must synchronize access to the values themselves.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is an in-memory session store. It is safe for concurrent use.
type Store[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	newFn   func() *T
	now     func() time.Time
	entries map[string]*entry[T]
}

type entry[T any] struct {
	value    *T
	lastSeen time.Time
}

// NewStore creates a Store whose entries expire after ttl without access.
// A zero ttl disables expiry. newFn builds the value of each new session.
func NewStore[T any](ttl time.Duration, newFn func() *T) *Store[T] {
	return &Store[T]{
		ttl:     ttl,
		newFn:   newFn,
		now:     time.Now,
		entries: make(map[string]*entry[T]),
	}
}

// Get returns the value for id and marks the session as used.
// Unknown and expired sessions report false.
func (s *Store[T]) Get(id string) (*T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.expired(e, now) {
		delete(s.entries, id)
		return nil, false
	}
	e.lastSeen = now
	return e.value, true
}

// Create starts a new session and returns its ID and value.
func (s *Store[T]) Create() (string, *T) {
	id := uuid.NewString()
	v := s.newFn()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &entry[T]{value: v, lastSeen: s.now()}
	return id, v
}

// Cleanup removes expired sessions and returns how many were removed.
func (s *Store[T]) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of sessions held, expired or not.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// TTL returns the idle expiry, zero if sessions never expire.
func (s *Store[T]) TTL() time.Duration { return s.ttl }

func (s *Store[T]) expired(e *entry[T], now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}

// Package session provides server-side session state for the admin surface.
//
// A session maps an opaque id to the authenticated Principal. The Store
// interface is deliberately small (get, create, destroy) so the in-memory
// implementation can later be swapped for a shared backend without touching
// route handlers. Absence of a session is the sole authorization signal for
// protected endpoints.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ivhu/farmstand"
)

// DefaultTTL bounds a session's lifetime when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// Store manages session lifecycle. Get returns farmstand.ErrNotFound for an
// unknown or expired id, which callers treat as unauthenticated.
type Store interface {
	Get(ctx context.Context, id string) (farmstand.Principal, error)
	Create(ctx context.Context, p farmstand.Principal) (string, error)
	Destroy(ctx context.Context, id string) error
}

type entry struct {
	principal farmstand.Principal
	expiresAt time.Time
}

// MemoryStore is an in-process Store with per-session expiry. Expired entries
// read as absent and are dropped opportunistically on access.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]entry
}

// NewMemoryStore creates a MemoryStore. A non-positive ttl falls back to
// DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]entry),
	}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (farmstand.Principal, error) {
	if err := ctx.Err(); err != nil {
		return farmstand.Principal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return farmstand.Principal{}, fmt.Errorf("get session: %w", farmstand.ErrNotFound)
	}

	if s.now().After(e.expiresAt) {
		delete(s.sessions, id)
		return farmstand.Principal{}, fmt.Errorf("get session: expired: %w", farmstand.ErrNotFound)
	}

	return e.principal, nil
}

func (s *MemoryStore) Create(ctx context.Context, p farmstand.Principal) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()
	s.sessions[id] = entry{principal: p, expiresAt: s.now().Add(s.ttl)}

	return id, nil
}

func (s *MemoryStore) Destroy(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Len returns the number of live (unexpired) sessions.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()
	return len(s.sessions)
}

func (s *MemoryStore) purgeExpiredLocked() {
	now := s.now()
	for id, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/seastone/gatehouse/core"
	"github.com/seastone/gatehouse/ports"
)

type memoryEntry struct {
	subject   string
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the RefreshStore
// interface, primarily for tests. Expired entries are dropped lazily on
// lookup rather than by a background sweeper.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration

	newToken func() string
}

// NewMemoryStore creates a new in-memory refresh token store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultRefreshTTL
	}

	return &MemoryStore{
		entries:  make(map[string]memoryEntry),
		ttl:      ttl,
		newToken: func() string { return uuid.New().String() },
	}
}

// Create generates an opaque refresh token and binds it to subject.
func (s *MemoryStore) Create(ctx context.Context, subject string) (string, error) {
	token := s.newToken()

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, exists := s.entries[token]; exists && time.Now().Before(entry.expiresAt) {
		return "", core.ErrTokenCollision
	}

	s.entries[token] = memoryEntry{
		subject:   subject,
		expiresAt: time.Now().Add(s.ttl),
	}

	return token, nil
}

// Validate resolves a refresh token to its subject.
func (s *MemoryStore) Validate(ctx context.Context, token string) (string, error) {
	s.mu.RLock()
	entry, exists := s.entries[token]
	s.mu.RUnlock()

	if !exists || time.Now().After(entry.expiresAt) {
		return "", core.ErrTokenInvalid
	}

	return entry.subject, nil
}

// Revoke deletes the token mapping. Revoking an absent token is a no-op.
func (s *MemoryStore) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, token)
	return nil
}

var _ ports.RefreshStore = (*MemoryStore)(nil)

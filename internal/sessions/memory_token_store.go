package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

// MemoryTokenStore keeps sessions in process memory. It backs single-node
// deployments without redis and every test.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemoryTokenStore(ttl time.Duration) *MemoryTokenStore {
	return &MemoryTokenStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (m *MemoryTokenStore) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[token] = memoryEntry{
		userID:    userID,
		expiresAt: time.Now().Add(m.ttl),
	}
	return token, nil
}

func (m *MemoryTokenStore) Resolve(ctx context.Context, token string) (string, error) {
	m.mu.RLock()
	entry, ok := m.entries[token]
	m.mu.RUnlock()

	if !ok {
		return "", ErrTokenNotFound
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, token)
		m.mu.Unlock()
		return "", ErrTokenNotFound
	}

	return entry.userID, nil
}

func (m *MemoryTokenStore) Revoke(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[token]; !ok {
		return ErrTokenNotFound
	}
	delete(m.entries, token)
	return nil
}

func (m *MemoryTokenStore) RevokeAll(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for token, entry := range m.entries {
		if entry.userID == userID {
			delete(m.entries, token)
		}
	}
	return nil
}

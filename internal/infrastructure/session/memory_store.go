package session

import (
	"context"
	"sync"
	"time"

	"github.com/ebookstore/backend/internal/domain/cart"
)

type memoryEntry struct {
	cart      *cart.Cart
	expiresAt time.Time
}

// MemoryStore is an in-process cart store for development and tests.
// Expiry is checked lazily on access.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	expiry  time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory cart store
func NewMemoryStore(expiry time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		expiry:  expiry,
		now:     time.Now,
	}
}

// Get returns the cart for the session, or an empty cart if none exists
// or the stored cart expired
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return cart.New(), nil
	}

	// Copy so callers never mutate the stored cart without Put
	clone := &cart.Cart{
		Entries:   append([]cart.Entry(nil), entry.cart.Entries...),
		ItemCount: entry.cart.ItemCount,
	}
	return clone, nil
}

// Put stores the cart, refreshing its idle expiry
func (s *MemoryStore) Put(ctx context.Context, sessionID string, c *cart.Cart) error {
	clone := &cart.Cart{
		Entries:   append([]cart.Entry(nil), c.Entries...),
		ItemCount: c.ItemCount,
	}

	s.mu.Lock()
	s.entries[sessionID] = memoryEntry{
		cart:      clone,
		expiresAt: s.now().Add(s.expiry),
	}
	s.mu.Unlock()
	return nil
}

// Remove deletes the session's cart
func (s *MemoryStore) Remove(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}

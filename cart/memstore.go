package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by tests and embedding callers.
// It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]Item
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]Item)}
}

// Add appends a cart line for the user and returns the stored item.
func (s *MemoryStore) Add(userID string, quantity int, product Product) (Item, error) {
	if userID == "" {
		return Item{}, fmt.Errorf("user id required: %w", ErrInvalidInput)
	}
	if quantity < 1 {
		return Item{}, fmt.Errorf("quantity must be positive: %w", ErrInvalidInput)
	}
	p := product
	item := Item{ID: uuid.NewString(), Quantity: quantity, Product: &p}
	s.mu.Lock()
	s.items[userID] = append(s.items[userID], item)
	s.mu.Unlock()
	return item, nil
}

// ItemsForUser returns copies of the user's cart lines. Mutating the
// returned slice or its products does not affect the store.
func (s *MemoryStore) ItemsForUser(ctx context.Context, userID string) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	stored, ok := s.items[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	out := make([]Item, len(stored))
	for i, it := range stored {
		out[i] = it
		if it.Product != nil {
			p := *it.Product
			out[i].Product = &p
		}
	}
	return out, nil
}

// Clear drops the user's cart.
func (s *MemoryStore) Clear(userID string) {
	s.mu.Lock()
	delete(s.items, userID)
	s.mu.Unlock()
}

package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/krishimart/krishimart/cart/pkg/response"
)

// MemoryStore keeps carts in process memory. Carts do not survive a
// restart; production runs the redis-backed store instead.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID][]response.CartItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: map[uuid.UUID][]response.CartItem{}}
}

func (s *MemoryStore) Add(c context.Context, userId uuid.UUID, item response.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userId] = append(s.carts[userId], item.Clone())
	return nil
}

// Remove drops the entry whose OrderID matches. Removing an unknown orderId
// is a no-op.
func (s *MemoryStore) Remove(c context.Context, userId uuid.UUID, orderId uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userId]
	remaining := make([]response.CartItem, 0, len(items))
	for _, item := range items {
		if item.OrderID == orderId {
			continue
		}
		remaining = append(remaining, item)
	}
	s.carts[userId] = remaining
	return nil
}

func (s *MemoryStore) Clear(c context.Context, userId uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userId)
	return nil
}

func (s *MemoryStore) Items(c context.Context, userId uuid.UUID) ([]response.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return response.CloneItems(s.carts[userId]), nil
}

package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/krishimart/krishimart/cart/pkg/response"
)

// CartStore holds per-user cart contents. Implementations must hand back
// copies so callers can never mutate stored entries in place.
type CartStore interface {
	Add(c context.Context, userId uuid.UUID, item response.CartItem) error
	Remove(c context.Context, userId uuid.UUID, orderId uuid.UUID) error
	Clear(c context.Context, userId uuid.UUID) error
	Items(c context.Context, userId uuid.UUID) ([]response.CartItem, error)
}

package request

import (
	"github.com/google/uuid"
)

type AddCartItem struct {
	ListingId uuid.UUID `validate:"required" json:"listing_id"`
}

type RemoveCartItem struct {
	OrderId uuid.UUID `validate:"required"`
	UserId  uuid.UUID `validate:"required"`
}

type FindCart struct {
	UserId uuid.UUID `validate:"required"`
}

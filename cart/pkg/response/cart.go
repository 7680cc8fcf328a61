package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/krishimart/krishimart/listing"
)

// CartItem is one leasable or rentable offering added to a cart. OrderID is
// the removable identity of the entry; ID is the underlying listing and may
// repeat across entries. Exactly one of LeaseAmount and DailyRental is set,
// selected by ItemType.
type CartItem struct {
	ID          uuid.UUID        `json:"id"`
	OrderID     uuid.UUID        `json:"order_id"`
	ItemType    listing.ItemType `json:"item_type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	Image       string           `json:"image"`
	LeaseAmount *decimal.Decimal `json:"leaseAmount,omitempty"`
	DailyRental *decimal.Decimal `json:"daily_rental,omitempty"`
	Duration    string           `json:"duration,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}

type Cart struct {
	UserId   uuid.UUID       `json:"user_id"`
	Items    []CartItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// NewCartItem stamps a fresh entry identity and creation time, so adding the
// same listing twice yields two independently removable entries.
func NewCartItem(l listing.Listing) CartItem {
	item := CartItem{
		ID:          l.ID,
		OrderID:     uuid.New(),
		ItemType:    l.Type,
		Title:       l.Title,
		Description: l.Description,
		Location:    l.Location,
		Image:       l.Image,
		Duration:    l.Duration,
		Timestamp:   time.Now().UTC(),
	}
	if l.Type == listing.ItemTypeEquipment {
		rental := l.DailyRental
		item.DailyRental = &rental
	} else {
		lease := l.LeaseAmount
		item.LeaseAmount = &lease
	}
	return item
}

// Price returns the price field selected by ItemType.
func (i CartItem) Price() decimal.Decimal {
	if i.ItemType == listing.ItemTypeEquipment {
		if i.DailyRental != nil {
			return *i.DailyRental
		}
		return decimal.Zero
	}
	if i.LeaseAmount != nil {
		return *i.LeaseAmount
	}
	return decimal.Zero
}

func (i CartItem) Clone() CartItem {
	cloned := i
	if i.LeaseAmount != nil {
		lease := *i.LeaseAmount
		cloned.LeaseAmount = &lease
	}
	if i.DailyRental != nil {
		rental := *i.DailyRental
		cloned.DailyRental = &rental
	}
	return cloned
}

func CloneItems(items []CartItem) []CartItem {
	cloned := make([]CartItem, len(items))
	for i, item := range items {
		cloned[i] = item.Clone()
	}
	return cloned
}

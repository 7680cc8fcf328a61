package listing

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemType string

const (
	ItemTypeLand      ItemType = "land"
	ItemTypeEquipment ItemType = "equipment"
)

// Listing is the tagged form of a backend listing. The variant is decided
// once at parse time: a raw listing carrying a daily_rental field is
// equipment for rent, anything else is a land parcel for lease.
type Listing struct {
	ID          uuid.UUID
	Type        ItemType
	Title       string
	Description string
	Location    string
	Image       string
	LeaseAmount decimal.Decimal
	DailyRental decimal.Decimal
	Duration    string
}

type rawListing struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	Image       string           `json:"image"`
	LeaseAmount *decimal.Decimal `json:"leaseAmount"`
	DailyRental *decimal.Decimal `json:"daily_rental"`
	Duration    string           `json:"duration"`
}

func Parse(data []byte) (Listing, error) {
	raw := rawListing{}
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return Listing{}, fmt.Errorf("failed parsing listing with error=%w", err)
	}

	listing := Listing{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		Location:    raw.Location,
		Image:       raw.Image,
		Duration:    raw.Duration,
	}
	if raw.DailyRental != nil {
		listing.Type = ItemTypeEquipment
		listing.DailyRental = *raw.DailyRental
		return listing, nil
	}
	listing.Type = ItemTypeLand
	if raw.LeaseAmount != nil {
		listing.LeaseAmount = *raw.LeaseAmount
	}
	return listing, nil
}

// Price returns the price field selected by the listing variant.
func (l Listing) Price() decimal.Decimal {
	if l.Type == ItemTypeEquipment {
		return l.DailyRental
	}
	return l.LeaseAmount
}

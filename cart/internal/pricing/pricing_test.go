package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/krishimart/krishimart/cart/pkg/response"
	"github.com/krishimart/krishimart/listing"
)

func landItem(lease string) response.CartItem {
	amount := decimal.RequireFromString(lease)
	return response.NewCartItem(listing.Listing{
		Type:        listing.ItemTypeLand,
		LeaseAmount: amount,
	})
}

func equipmentItem(rental string) response.CartItem {
	amount := decimal.RequireFromString(rental)
	return response.NewCartItem(listing.Listing{
		Type:        listing.ItemTypeEquipment,
		DailyRental: amount,
	})
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name             string
		items            []response.CartItem
		expectedSubtotal string
		expectedTax      string
		expectedTotal    string
	}{
		{
			name:             "given empty cart should return all zero",
			items:            nil,
			expectedSubtotal: "0",
			expectedTax:      "0",
			expectedTotal:    "0",
		},
		{
			name:             "given land and equipment should sum the selected price fields",
			items:            []response.CartItem{landItem("6000"), equipmentItem("1500")},
			expectedSubtotal: "7500",
			expectedTax:      "1350",
			expectedTotal:    "8850",
		},
		{
			name:             "given same listing twice should count both entries",
			items:            []response.CartItem{equipmentItem("1500"), equipmentItem("1500")},
			expectedSubtotal: "3000",
			expectedTax:      "540",
			expectedTotal:    "3540",
		},
		{
			name:             "given fractional tax should round to two decimals",
			items:            []response.CartItem{landItem("99.99")},
			expectedSubtotal: "99.99",
			expectedTax:      "18",
			expectedTotal:    "117.99",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := Calculate(tt.items)
			assert.Equal(t, tt.expectedSubtotal, quote.Subtotal.String())
			assert.Equal(t, tt.expectedTax, quote.Tax.String())
			assert.Equal(t, tt.expectedTotal, quote.Total.String())
			assert.True(t, quote.Total.Equal(quote.Subtotal.Add(quote.Tax)))
		})
	}
}

package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/krishimart/krishimart/cart/pkg/response"
)

// TaxRate is the flat 18% applied on the cart subtotal.
var TaxRate = decimal.New(18, -2)

type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Calculate prices the given cart contents. Tax is rounded to two decimal
// places before being added, so total always equals subtotal plus the tax
// shown to the user.
func Calculate(items []response.CartItem) Quote {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price())
	}
	tax := subtotal.Mul(TaxRate).Round(2)
	return Quote{Subtotal: subtotal, Tax: tax, Total: subtotal.Add(tax)}
}

package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentDetails struct {
	Method        string          `json:"method"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	TransactionId string          `json:"transaction_id"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Receipt is the checkout snapshot handed to the order summary: the cart
// contents at time of purchase plus the computed pricing. It is frozen at
// checkout and immune to later cart mutation.
type Receipt struct {
	ID             uuid.UUID      `json:"id"`
	UserId         uuid.UUID      `json:"user_id"`
	OrderDetails   []CartItem     `json:"order_details"`
	PaymentDetails PaymentDetails `json:"payment_details"`
}

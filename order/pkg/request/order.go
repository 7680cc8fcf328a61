package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptItem mirrors the cart entry shape at the time of purchase. The
// json tags match the cart payload so receipts round-trip unchanged.
type ReceiptItem struct {
	ID          uuid.UUID        `json:"id"`
	OrderID     uuid.UUID        `json:"order_id"`
	ItemType    string           `json:"item_type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	Image       string           `json:"image"`
	LeaseAmount *decimal.Decimal `json:"leaseAmount,omitempty"`
	DailyRental *decimal.Decimal `json:"daily_rental,omitempty"`
	Duration    string           `json:"duration,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}

type PaymentDetails struct {
	Method        string          `json:"method"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	TransactionId string          `json:"transaction_id"`
	Timestamp     time.Time       `json:"timestamp"`
}

type CreateReceipt struct {
	ID             uuid.UUID      `validate:"required"      json:"id"`
	UserId         uuid.UUID      `validate:"required"      json:"user_id"`
	OrderDetails   []ReceiptItem  `validate:"required,gt=0" json:"order_details"`
	PaymentDetails PaymentDetails `validate:"required"      json:"payment_details"`
}

type FindReceiptById struct {
	ReceiptId uuid.UUID `validate:"required"`
	UserId    uuid.UUID `validate:"required"`
}

type FindReceiptsByUserId struct {
	UserId uuid.UUID `validate:"required"`
}
